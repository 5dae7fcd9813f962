package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/davecgh/go-spew/spew"
	"github.com/lightningnetwork/corerpc/corerpc"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/urfave/cli"
)

// errUnsupported is returned for a command the client version cannot serve.
var errUnsupported = errors.New("not supported by this client version")

func printRespJSON(resp any) {
	b, err := json.Marshal(resp)
	if err != nil {
		fatal(err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, b, "", "    "); err != nil {
		fatal(err)
	}
	out.WriteString("\n")

	_, _ = out.WriteTo(os.Stdout)
}

// chainInfo is the printed form of getblockchaininfo.
type chainInfo struct {
	Chain                string   `json:"chain"`
	Blocks               uint32   `json:"blocks"`
	Headers              uint32   `json:"headers"`
	BestBlockHash        string   `json:"bestblockhash"`
	Difficulty           float64  `json:"difficulty"`
	MedianTime           uint32   `json:"mediantime"`
	VerificationProgress float64  `json:"verificationprogress"`
	InitialBlockDownload bool     `json:"initialblockdownload"`
	ChainWork            string   `json:"chainwork"`
	SizeOnDisk           uint64   `json:"size_on_disk"`
	Pruned               bool     `json:"pruned"`
	PruneHeight          *uint32  `json:"pruneheight,omitempty"`
	Warnings             []string `json:"warnings"`
}

func newChainInfo(info *model.GetBlockchainInfo) *chainInfo {
	c := &chainInfo{
		Chain:                info.Chain.String(),
		Blocks:               info.Blocks,
		Headers:              info.Headers,
		BestBlockHash:        info.BestBlockHash.String(),
		Difficulty:           info.Difficulty,
		MedianTime:           info.MedianTime,
		VerificationProgress: info.VerificationProgress,
		InitialBlockDownload: info.InitialBlockDownload,
		ChainWork:            info.ChainWork.Text(16),
		SizeOnDisk:           info.SizeOnDisk,
		Pruned:               info.Pruned,
		Warnings:             info.Warnings,
	}
	info.PruneHeight.WhenSome(func(h uint32) {
		c.PruneHeight = &h
	})

	return c
}

// networkInfo is the printed form of getnetworkinfo.
type networkInfo struct {
	Version         uint32   `json:"version"`
	Subversion      string   `json:"subversion"`
	ProtocolVersion uint32   `json:"protocolversion"`
	Connections     uint32   `json:"connections"`
	ConnectionsIn   *uint32  `json:"connections_in,omitempty"`
	ConnectionsOut  *uint32  `json:"connections_out,omitempty"`
	NetworkActive   bool     `json:"networkactive"`
	RelayFeeSatKW   int64    `json:"relayfee_sat_per_kw"`
	Warnings        []string `json:"warnings"`
}

func newNetworkInfo(info *model.GetNetworkInfo) *networkInfo {
	n := &networkInfo{
		Version:         info.Version,
		Subversion:      info.Subversion,
		ProtocolVersion: info.ProtocolVersion,
		Connections:     info.Connections,
		NetworkActive:   info.NetworkActive,
		RelayFeeSatKW:   int64(info.RelayFee),
		Warnings:        info.Warnings,
	}
	info.ConnectionsIn.WhenSome(func(c uint32) {
		n.ConnectionsIn = &c
	})
	info.ConnectionsOut.WhenSome(func(c uint32) {
		n.ConnectionsOut = &c
	})

	return n
}

var getBlockchainInfoCommand = cli.Command{
	Name:   "getblockchaininfo",
	Usage:  "Show the state of the chain.",
	Action: withSession(getBlockchainInfo),
}

func getBlockchainInfo(_ *cli.Context, s *session) error {
	info, err := s.client.GetBlockchainInfo(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(newChainInfo(info))

	return nil
}

var getNetworkInfoCommand = cli.Command{
	Name:   "getnetworkinfo",
	Usage:  "Show the state of the P2P network.",
	Action: withSession(getNetworkInfo),
}

func getNetworkInfo(_ *cli.Context, s *session) error {
	info, err := s.client.GetNetworkInfo(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(newNetworkInfo(info))

	return nil
}

var getBestBlockHashCommand = cli.Command{
	Name:   "getbestblockhash",
	Usage:  "Show the hash of the chain tip.",
	Action: withSession(getBestBlockHash),
}

func getBestBlockHash(_ *cli.Context, s *session) error {
	hash, err := s.client.GetBestBlockHash(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(map[string]string{"hash": hash.String()})

	return nil
}

var getBlockCommand = cli.Command{
	Name:      "getblock",
	Usage:     "Show a block summary.",
	ArgsUsage: "hash",
	Action:    withSession(getBlock),
}

func getBlock(ctx *cli.Context, s *session) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "getblock")
	}

	hash, err := chainhash.NewHashFromStr(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("invalid block hash: %w", err)
	}

	block, err := s.client.GetBlockVerbose(context.Background(), *hash)
	if err != nil {
		return err
	}

	txids := make([]string, len(block.Tx))
	for i, txid := range block.Tx {
		txids[i] = txid.String()
	}

	printRespJSON(struct {
		Hash          string   `json:"hash"`
		Confirmations int64    `json:"confirmations"`
		Height        uint32   `json:"height"`
		Time          uint32   `json:"time"`
		Weight        uint64   `json:"weight"`
		Bits          string   `json:"bits"`
		Tx            []string `json:"tx"`
	}{
		Hash:          block.Hash.String(),
		Confirmations: block.Confirmations,
		Height:        block.Height,
		Time:          block.Time,
		Weight:        block.Weight,
		Bits:          fmt.Sprintf("%08x", uint32(block.Bits)),
		Tx:            txids,
	})

	return nil
}

var getTxOutCommand = cli.Command{
	Name:      "gettxout",
	Usage:     "Show an unspent transaction output.",
	ArgsUsage: "txid vout",
	Flags: []cli.Flag{
		cli.BoolTFlag{
			Name:  "include_mempool",
			Usage: "Also look at mempool spends and outputs.",
		},
	},
	Action: withSession(getTxOut),
}

func getTxOut(ctx *cli.Context, s *session) error {
	if ctx.NArg() != 2 {
		return cli.ShowCommandHelp(ctx, "gettxout")
	}

	txid, err := chainhash.NewHashFromStr(ctx.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid txid: %w", err)
	}

	vout, err := strconv.ParseUint(ctx.Args().Get(1), 10, 32)
	if err != nil {
		return fmt.Errorf("invalid vout: %w", err)
	}

	includeMempool := fn.None[bool]()
	if ctx.IsSet("include_mempool") {
		includeMempool = fn.Some(ctx.BoolT("include_mempool"))
	}

	out, err := s.client.GetTxOut(
		context.Background(), *txid, uint32(vout), includeMempool,
	)
	if err != nil {
		return err
	}

	type txOut struct {
		BestBlock     string   `json:"bestblock"`
		Confirmations int64    `json:"confirmations"`
		Value         int64    `json:"value_sat"`
		Class         string   `json:"type"`
		Addresses     []string `json:"addresses"`
		Coinbase      bool     `json:"coinbase"`
	}

	resp := fn.MapOption(func(o *model.GetTxOut) *txOut {
		addrs := make([]string, len(o.Addresses))
		for i, addr := range o.Addresses {
			addrs[i] = addr.String()
		}

		return &txOut{
			BestBlock:     o.BestBlock.String(),
			Confirmations: o.Confirmations,
			Value:         o.TxOut.Value,
			Class:         o.Class.String(),
			Addresses:     addrs,
			Coinbase:      o.Coinbase,
		}
	})(out)

	// A spent or unknown output prints as null.
	printRespJSON(resp.UnwrapOr(nil))

	return nil
}

var getBalanceCommand = cli.Command{
	Name:   "getbalance",
	Usage:  "Show the trusted wallet balance.",
	Action: withSession(getBalance),
}

func getBalance(_ *cli.Context, s *session) error {
	balance, err := s.client.GetBalance(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(map[string]int64{"balance_sat": int64(balance)})

	return nil
}

var getBalancesCommand = cli.Command{
	Name:   "getbalances",
	Usage:  "Show the wallet balances by trust level (v19 and later).",
	Action: withSession(getBalances),
}

func getBalances(_ *cli.Context, s *session) error {
	bc, ok := s.client.(corerpc.BalancesClient)
	if !ok {
		return fmt.Errorf("getbalances: %w: %v", errUnsupported,
			s.client.Version())
	}

	balances, err := bc.GetBalances(context.Background())
	if err != nil {
		return err
	}

	resp := map[string]int64{
		"trusted_sat":           int64(balances.Mine.Trusted),
		"untrusted_pending_sat": int64(balances.Mine.UntrustedPending),
		"immature_sat":          int64(balances.Mine.Immature),
	}
	balances.Mine.Used.WhenSome(func(a btcutil.Amount) {
		resp["used_sat"] = int64(a)
	})
	balances.WatchOnly.WhenSome(func(w model.BalancesWatchOnly) {
		resp["watchonly_trusted_sat"] = int64(w.Trusted)
	})

	printRespJSON(resp)

	return nil
}

var getNewAddressCommand = cli.Command{
	Name:  "getnewaddress",
	Usage: "Derive a new receive address.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "label",
			Usage: "The label of the address.",
		},
		cli.StringFlag{
			Name: "type",
			Usage: "The address type: legacy, p2sh-segwit, " +
				"bech32 or bech32m.",
		},
	},
	Action: withSession(getNewAddress),
}

func getNewAddress(ctx *cli.Context, s *session) error {
	label := fn.None[string]()
	if ctx.IsSet("label") {
		label = fn.Some(ctx.String("label"))
	}

	addrType := fn.None[model.AddressType]()
	if ctx.IsSet("type") {
		t, err := model.ParseAddressType(ctx.String("type"))
		if err != nil {
			return err
		}
		addrType = fn.Some(t)
	}

	addr, err := s.client.GetNewAddress(
		context.Background(), label, addrType,
	)
	if err != nil {
		return err
	}

	printRespJSON(map[string]string{"address": addr.String()})

	return nil
}

var sendToAddressCommand = cli.Command{
	Name:      "sendtoaddress",
	Usage:     "Pay an amount in satoshis to an address.",
	ArgsUsage: "address amount_sat",
	Action:    withSession(sendToAddress),
}

func sendToAddress(ctx *cli.Context, s *session) error {
	if ctx.NArg() != 2 {
		return cli.ShowCommandHelp(ctx, "sendtoaddress")
	}

	addr, err := btcutil.DecodeAddress(
		ctx.Args().Get(0), s.client.Params(),
	)
	if err != nil {
		return fmt.Errorf("invalid address: %w", err)
	}

	amount, err := parseSats(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	sent, err := s.client.SendToAddress(
		context.Background(), addr, amount,
	)
	if err != nil {
		return err
	}

	printRespJSON(map[string]string{"txid": sent.Txid.String()})

	return nil
}

// parseSats parses a positive amount in satoshis.
func parseSats(s string) (btcutil.Amount, error) {
	sats, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}

	if sats <= 0 || sats > btcutil.MaxSatoshi {
		return 0, fmt.Errorf("amount %d out of range", sats)
	}

	return btcutil.Amount(sats), nil
}

var versionCommand = cli.Command{
	Name:   "version",
	Usage:  "Show the client version and the server version.",
	Action: withSession(version),
}

func version(_ *cli.Context, s *session) error {
	serverVersion, err := s.client.ServerVersion(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(map[string]any{
		"client": s.client.Version().String(),
		"server": serverVersion,
	})

	return nil
}

var checkVersionCommand = cli.Command{
	Name: "checkversion",
	Usage: "Check the server is one of the releases the client " +
		"version was built for.",
	Action: withSession(checkVersion),
}

func checkVersion(_ *cli.Context, s *session) error {
	err := s.client.CheckExpectedServerVersion(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(map[string]any{
		"client":   s.client.Version().String(),
		"expected": s.client.Version().ExpectedVersions(),
	})

	return nil
}

var statusCommand = cli.Command{
	Name:   "status",
	Usage:  "Show the chain tip, sync state and network in one go.",
	Action: withSession(status),
}

func status(_ *cli.Context, s *session) error {
	snapshot, err := corerpc.Snapshot(context.Background(), s.client)
	if err != nil {
		return err
	}

	printRespJSON(struct {
		BestBlock string       `json:"bestblock"`
		Chain     *chainInfo   `json:"chain"`
		Network   *networkInfo `json:"network"`
	}{
		BestBlock: snapshot.BestBlock.String(),
		Chain:     newChainInfo(snapshot.Blockchain),
		Network:   newNetworkInfo(snapshot.Network),
	})

	return nil
}

var callCommand = cli.Command{
	Name: "call",
	Usage: "Call any method the client version declares, with JSON " +
		"encoded arguments.",
	ArgsUsage: "method [arg...]",
	Description: `
	Arguments are given as JSON values, for example:

	    corectl call getblockhash 100
	    corectl call getnewaddress '""' '"bech32"'

	Trailing arguments may be left out. The converted result is dumped.`,
	Action: withSession(call),
}

func call(ctx *cli.Context, s *session) error {
	if ctx.NArg() < 1 {
		return cli.ShowCommandHelp(ctx, "call")
	}

	args := make([]json.RawMessage, 0, ctx.NArg()-1)
	for _, arg := range ctx.Args().Tail() {
		if !json.Valid([]byte(arg)) {
			return fmt.Errorf("argument %q is not valid JSON", arg)
		}
		args = append(args, json.RawMessage(arg))
	}

	result, err := s.client.Invoke(
		context.Background(), ctx.Args().First(), args...,
	)
	if err != nil {
		return err
	}

	spew.Dump(result)

	return nil
}
