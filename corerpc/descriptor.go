package corerpc

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcparams"
	"github.com/lightningnetwork/corerpc/schema"
	v17 "github.com/lightningnetwork/corerpc/schema/v17"
	v19 "github.com/lightningnetwork/corerpc/schema/v19"
	v22 "github.com/lightningnetwork/corerpc/schema/v22"
	v25 "github.com/lightningnetwork/corerpc/schema/v25"
	v28 "github.com/lightningnetwork/corerpc/schema/v28"
)

// Result is a decoded wire value whose model type is only known at runtime.
type Result interface {
	json.Unmarshaler
	schema.NetworkAware

	// Model converts the wire value.
	Model() (any, error)
}

// wireResult adapts a wire type to Result.
type wireResult[W schema.Converter[M], M any] struct {
	wire W
}

// UnmarshalJSON decodes into the wire value.
func (r *wireResult[W, M]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &r.wire)
}

// SetParams forwards the chain parameters to wire types that decode
// addresses.
func (r *wireResult[W, M]) SetParams(params *chaincfg.Params) {
	if na, ok := any(&r.wire).(schema.NetworkAware); ok {
		na.SetParams(params)
	}
}

// Model implements Result.
func (r *wireResult[W, M]) Model() (any, error) {
	return r.wire.ToModel()
}

// Descriptor declares one RPC method for one version: its wire name, its
// positional parameters and the result it decodes into.
type Descriptor struct {
	// Method is the wire method name.
	Method string

	// Params are the positional parameters. Optional ones are trailing
	// and carry the default used to fill gaps.
	Params rpcparams.Signature

	// NewResult returns an empty value of the default result form.
	// Methods whose result shape depends on an argument, like getblock
	// verbosity, decode their non default forms through typed calls
	// only.
	NewResult func() Result

	// NullResult is set for methods that may return null.
	NullResult bool
}

// describe builds a descriptor. It panics on a parameter list with a
// required parameter after an optional one.
func describe[W schema.Converter[M], M any](method string,
	params ...rpcparams.Param) Descriptor {

	sig := rpcparams.Signature(params)
	if err := sig.Validate(); err != nil {
		panic(fmt.Sprintf("invalid declaration of %v: %v", method, err))
	}

	return Descriptor{
		Method: method,
		Params: sig,
		NewResult: func() Result {
			return &wireResult[W, M]{}
		},
	}
}

// nullable marks a descriptor as allowed to return null.
func nullable(d Descriptor) Descriptor {
	d.NullResult = true
	return d
}

var (
	required = rpcparams.Required
	optional = rpcparams.OptionalParam
)

// v17Methods are the methods of the oldest supported release.
func v17Methods() map[string]Descriptor {
	descriptors := []Descriptor{
		// Blockchain.
		describe[v17.GetBestBlockHash, chainhash.Hash](
			"getbestblockhash",
		),
		describe[v17.GetBlockVerboseOne, *model.GetBlockVerbose](
			"getblock", required("blockhash"),
			optional("verbosity", 1),
		),
		describe[v17.GetBlockchainInfo, *model.GetBlockchainInfo](
			"getblockchaininfo",
		),
		describe[v17.GetBlockCount, uint64]("getblockcount"),
		describe[v17.GetBlockHash, chainhash.Hash](
			"getblockhash", required("height"),
		),
		describe[
			v17.GetBlockHeaderVerbose, *model.GetBlockHeaderVerbose,
		](
			"getblockheader", required("blockhash"),
			optional("verbose", true),
		),
		describe[v17.GetBlockStats, *model.GetBlockStats](
			"getblockstats", required("hash_or_height"),
			optional("stats", nil),
		),
		describe[v17.GetChainTips, []model.ChainTip]("getchaintips"),
		describe[v17.GetChainTxStats, *model.GetChainTxStats](
			"getchaintxstats", optional("nblocks", nil),
			optional("blockhash", nil),
		),
		describe[v17.GetDifficulty, float64]("getdifficulty"),
		describe[v17.GetMempoolAncestors, []chainhash.Hash](
			"getmempoolancestors", required("txid"),
			optional("verbose", false),
		),
		nullable(describe[v17.GetTxOut, *model.GetTxOut](
			"gettxout", required("txid"), required("n"),
			optional("include_mempool", true),
		)),

		// Control.
		describe[v17.GetMemoryInfoStats, model.GetMemoryInfoStats](
			"getmemoryinfo", optional("mode", "stats"),
		),
		describe[v17.Logging, model.Logging](
			"logging", optional("include", []string{}),
			optional("exclude", []string{}),
		),
		describe[v17.Stop, string]("stop"),
		describe[v17.Uptime, uint64]("uptime"),

		// Generating.
		describe[v17.Generate, model.Generate](
			"generate", required("nblocks"),
			optional("maxtries", 1_000_000),
		),
		describe[v17.Generate, model.Generate](
			"generatetoaddress", required("nblocks"),
			required("address"),
			optional("maxtries", 1_000_000),
		),

		// Network.
		describe[v17.GetAddedNodeInfo, []model.AddedNodeInfo](
			"getaddednodeinfo", optional("node", nil),
		),
		describe[v17.GetNetTotals, *model.GetNetTotals]("getnettotals"),
		describe[v17.GetNetworkInfo, *model.GetNetworkInfo](
			"getnetworkinfo",
		),
		describe[v17.GetPeerInfo, []model.PeerInfo]("getpeerinfo"),

		// Raw transactions.
		describe[v17.SendRawTransaction, chainhash.Hash](
			"sendrawtransaction", required("hexstring"),
			optional("allowhighfees", false),
		),

		// Wallet.
		describe[v17.CreateWallet, *model.CreateWallet](
			"createwallet", required("wallet_name"),
			optional("disable_private_keys", false),
		),
		describe[v17.LoadWallet, *model.LoadWallet](
			"loadwallet", required("filename"),
		),
		nullable(describe[v17.UnloadWallet, *model.UnloadWallet](
			"unloadwallet", optional("wallet_name", nil),
		)),
		describe[v17.GetNewAddress, model.Address](
			"getnewaddress", optional("label", ""),
			optional("address_type", nil),
		),
		describe[v17.GetBalance, btcutil.Amount]("getbalance"),
		describe[v17.SendToAddress, *model.SendToAddress](
			"sendtoaddress", required("address"),
			required("amount"),
			optional("comment", ""), optional("comment_to", ""),
		),
		describe[v17.GetTransaction, *model.GetTransaction](
			"gettransaction", required("txid"),
			optional("include_watchonly", false),
		),
	}

	methods := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		methods[d.Method] = d
	}

	return methods
}

// methodsFor builds the method table of a version by applying each release's
// changes on top of v17.
func methodsFor(v Version) map[string]Descriptor {
	methods := v17Methods()
	override := func(d Descriptor) {
		methods[d.Method] = d
	}

	if v >= V19 {
		delete(methods, "generate")

		override(describe[
			v19.GetBlockchainInfo, *model.GetBlockchainInfo,
		]("getblockchaininfo"))
		override(describe[v19.GetBalances, *model.GetBalances](
			"getbalances",
		))
		override(describe[v17.SendRawTransaction, chainhash.Hash](
			"sendrawtransaction", required("hexstring"),
			optional("maxfeerate", 0.10),
		))
	}

	if v >= V22 {
		override(describe[v22.GetNetworkInfo, *model.GetNetworkInfo](
			"getnetworkinfo",
		))
		override(describe[v22.UnloadWallet, *model.UnloadWallet](
			"unloadwallet", optional("wallet_name", nil),
		))
	}

	if v >= V25 {
		override(describe[v25.CreateWallet, *model.CreateWallet](
			"createwallet", required("wallet_name"),
			optional("disable_private_keys", false),
		))
		override(describe[v25.LoadWallet, *model.LoadWallet](
			"loadwallet", required("filename"),
		))
	}

	if v >= V28 {
		override(describe[
			v28.GetBlockchainInfo, *model.GetBlockchainInfo,
		]("getblockchaininfo"))
		override(describe[v28.GetNetworkInfo, *model.GetNetworkInfo](
			"getnetworkinfo",
		))
		override(describe[v28.SubmitPackage, *model.SubmitPackage](
			"submitpackage", required("package"),
			optional("maxfeerate", 0.10),
			optional("maxburnamount", 0.0),
		))
	}

	return methods
}

// registry holds the method table of every version. It is never written
// after init.
var registry = func() map[Version]map[string]Descriptor {
	tables := make(map[Version]map[string]Descriptor)
	for _, v := range Versions() {
		tables[v] = methodsFor(v)
	}

	return tables
}()

// Describe returns the descriptor of method for version v.
func Describe(v Version, method string) (Descriptor, bool) {
	d, ok := registry[v][method]
	return d, ok
}

// Methods returns the sorted method names known for version v.
func Methods(v Version) []string {
	return slices.Sorted(maps.Keys(registry[v]))
}
