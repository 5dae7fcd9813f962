package corerpc

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcauth"
	"github.com/lightningnetwork/corerpc/rpcparams"
	v17 "github.com/lightningnetwork/corerpc/schema/v17"
	v19 "github.com/lightningnetwork/corerpc/schema/v19"
	v22 "github.com/lightningnetwork/corerpc/schema/v22"
	v25 "github.com/lightningnetwork/corerpc/schema/v25"
	v28 "github.com/lightningnetwork/corerpc/schema/v28"
	"github.com/lightningnetwork/corerpc/transport"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// The wire types of each release family, in the order blockchain info,
// network info, unloadwallet, createwallet and loadwallet.
type (
	v17Base = client[
		v17.GetBlockchainInfo, v17.GetNetworkInfo, v17.UnloadWallet,
		v17.CreateWallet, v17.LoadWallet,
	]

	v19Base = client[
		v19.GetBlockchainInfo, v17.GetNetworkInfo, v17.UnloadWallet,
		v17.CreateWallet, v17.LoadWallet,
	]

	v22Base = client[
		v19.GetBlockchainInfo, v22.GetNetworkInfo, v22.UnloadWallet,
		v17.CreateWallet, v17.LoadWallet,
	]

	v25Base = client[
		v19.GetBlockchainInfo, v22.GetNetworkInfo, v22.UnloadWallet,
		v25.CreateWallet, v25.LoadWallet,
	]

	v28Base = client[
		v28.GetBlockchainInfo, v28.GetNetworkInfo, v22.UnloadWallet,
		v25.CreateWallet, v25.LoadWallet,
	]
)

// softforksV17 reads the legacy softforks list and bip9_softforks map.
type softforksV17 struct {
	v17.GetBlockchainInfo
}

// ToModel converts the deployments only.
func (s softforksV17) ToModel() (model.Softforks, error) {
	return s.SoftforksToModel()
}

// softforksV19 reads the softforks map of v19 to v22.
type softforksV19 struct {
	v19.GetBlockchainInfo
}

// ToModel converts the deployments only.
func (s softforksV19) ToModel() (model.Softforks, error) {
	return s.SoftforksToModel()
}

// V17Client speaks v17 and v18.
type V17Client struct {
	*v17Base
}

// GetSoftforks returns the deployments reported by getblockchaininfo.
func (c *V17Client) GetSoftforks(ctx context.Context) (model.Softforks,
	error) {

	return call[softforksV17, model.Softforks](
		ctx, c.core, "getblockchaininfo",
	)
}

// Generate mines nblocks blocks to a new wallet address.
func (c *V17Client) Generate(ctx context.Context,
	nblocks uint32) (model.Generate, error) {

	return c.generate(ctx, nblocks)
}

// V19Client speaks v19 to v21.
type V19Client struct {
	*v19Base
}

// GetSoftforks returns the deployments reported by getblockchaininfo.
func (c *V19Client) GetSoftforks(ctx context.Context) (model.Softforks,
	error) {

	return getSoftforksV19(ctx, c.core)
}

// GetBalances returns the wallet balances by trust level.
func (c *V19Client) GetBalances(ctx context.Context) (*model.GetBalances,
	error) {

	return getBalances(ctx, c.core)
}

// V22Client speaks v22, the last release reporting softforks.
type V22Client struct {
	*v22Base
}

// GetSoftforks returns the deployments reported by getblockchaininfo.
func (c *V22Client) GetSoftforks(ctx context.Context) (model.Softforks,
	error) {

	return getSoftforksV19(ctx, c.core)
}

// GetBalances returns the wallet balances by trust level.
func (c *V22Client) GetBalances(ctx context.Context) (*model.GetBalances,
	error) {

	return getBalances(ctx, c.core)
}

// V23Client speaks v23 and v24.
type V23Client struct {
	*v22Base
}

// GetBalances returns the wallet balances by trust level.
func (c *V23Client) GetBalances(ctx context.Context) (*model.GetBalances,
	error) {

	return getBalances(ctx, c.core)
}

// V25Client speaks v25 to v27.
type V25Client struct {
	*v25Base
}

// GetBalances returns the wallet balances by trust level.
func (c *V25Client) GetBalances(ctx context.Context) (*model.GetBalances,
	error) {

	return getBalances(ctx, c.core)
}

// V28Client speaks v28.
type V28Client struct {
	*v28Base
}

// GetBalances returns the wallet balances by trust level.
func (c *V28Client) GetBalances(ctx context.Context) (*model.GetBalances,
	error) {

	return getBalances(ctx, c.core)
}

// SubmitPackage submits a package of raw transactions, parents first. The
// server defaults apply to the fee rate and burn limits left unset.
func (c *V28Client) SubmitPackage(ctx context.Context, txs []*wire.MsgTx,
	maxFeeRate fn.Option[model.SatPerKVByte],
	maxBurnAmount fn.Option[btcutil.Amount]) (*model.SubmitPackage, error) {

	pkg := make([]string, len(txs))
	for i, tx := range txs {
		txHex, err := txArg(tx)
		if err != nil {
			return nil, fmt.Errorf("package[%d]: %w", i, err)
		}
		pkg[i] = txHex
	}

	feeRate := fn.MapOption(rpcparams.FeeRate)(maxFeeRate)
	burn := fn.MapOption(rpcparams.Amount)(maxBurnAmount)

	return call[v28.SubmitPackage, *model.SubmitPackage](
		ctx, c.core, "submitpackage", pkg, rpcparams.Optional(feeRate),
		rpcparams.Optional(burn),
	)
}

// getSoftforksV19 reads the softforks map of getblockchaininfo.
func getSoftforksV19(ctx context.Context, c *core) (model.Softforks, error) {
	return call[softforksV19, model.Softforks](
		ctx, c, "getblockchaininfo",
	)
}

// getBalances calls getbalances.
func getBalances(ctx context.Context, c *core) (*model.GetBalances, error) {
	return call[v19.GetBalances, *model.GetBalances](
		ctx, c, "getbalances",
	)
}

// Compile time checks of which interfaces each version satisfies.
var (
	_ SoftforkClient = (*V17Client)(nil)
	_ GenerateClient = (*V17Client)(nil)
	_ SoftforkClient = (*V19Client)(nil)
	_ BalancesClient = (*V19Client)(nil)
	_ SoftforkClient = (*V22Client)(nil)
	_ BalancesClient = (*V22Client)(nil)
	_ BalancesClient = (*V23Client)(nil)
	_ BalancesClient = (*V25Client)(nil)
	_ BalancesClient = (*V28Client)(nil)
	_ PackageClient  = (*V28Client)(nil)
)

// options are the settings shared by every client.
type options struct {
	params *chaincfg.Params
}

// defaultOptions decodes addresses against mainnet.
func defaultOptions() *options {
	return &options{
		params: &chaincfg.MainNetParams,
	}
}

// Option configures a client.
type Option func(*options)

// WithParams sets the chain parameters addresses are decoded against first.
// Addresses of other networks still decode.
func WithParams(params *chaincfg.Params) Option {
	return func(o *options) {
		o.params = params
	}
}

// WithNetwork is WithParams for a network name reported by the server.
func WithNetwork(network model.Network) Option {
	return WithParams(network.Params())
}

// New returns the client for version v on top of t. The concrete type is one
// of V17Client, V19Client, V22Client, V23Client, V25Client or V28Client; the
// wider interfaces are reached with a type assertion.
func New(v Version, t transport.Transport, opts ...Option) (Client, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, uint8(v))
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	c := newCore(v, t, o)

	log.Debugf("Created %v client for network %v", v, o.params.Name)

	switch {
	case v <= V18:
		return &V17Client{&v17Base{core: c}}, nil

	case v <= V21:
		return &V19Client{&v19Base{core: c}}, nil

	case v == V22:
		return &V22Client{&v22Base{core: c}}, nil

	case v <= V24:
		return &V23Client{&v22Base{core: c}}, nil

	case v <= V27:
		return &V25Client{&v25Base{core: c}}, nil

	default:
		return &V28Client{&v28Base{core: c}}, nil
	}
}

// NewWithAuth builds a JSON-RPC 1.0 transport to rawURL and returns the
// client for version v. rawURL is host:port, optionally with an http or
// https scheme and a /wallet/<name> path. A None auth fails with a
// Credential error before anything is sent.
func NewWithAuth(v Version, rawURL string, auth rpcauth.Auth,
	opts ...Option) (Client, error) {

	cfg, err := transportConfig(rawURL, auth)
	if err != nil {
		return nil, err
	}

	t, err := transport.NewRPCClient(cfg)
	if err != nil {
		return nil, err
	}

	return New(v, t, opts...)
}

// transportConfig parses a server URL.
func transportConfig(rawURL string,
	auth rpcauth.Auth) (*transport.Config, error) {

	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	cfg := &transport.Config{
		Host:       u.Host,
		Auth:       auth,
		DisableTLS: u.Scheme != "https",
	}

	if wallet, ok := strings.CutPrefix(u.Path, "/wallet/"); ok {
		cfg.Wallet = wallet
	}

	return cfg, nil
}
