package model

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// CreateWallet is the result of createwallet.
type CreateWallet struct {
	// Name is the wallet name, or its full path if it was created with
	// one.
	Name     string
	Warnings []string
}

// LoadWallet is the result of loadwallet.
type LoadWallet struct {
	Name     string
	Warnings []string
}

// UnloadWallet is the result of unloadwallet. Servers before v22 return
// null and convert to an empty result.
type UnloadWallet struct {
	Warnings []string
}

// GetBalances is the result of getbalances.
type GetBalances struct {
	Mine BalancesMine

	// WatchOnly is only set for wallets with watch-only addresses.
	WatchOnly fn.Option[BalancesWatchOnly]
}

// BalancesMine are the balances of outputs the wallet can sign for.
type BalancesMine struct {
	Trusted          btcutil.Amount
	UntrustedPending btcutil.Amount
	Immature         btcutil.Amount

	// Used is only set when the wallet has avoid_reuse enabled.
	Used fn.Option[btcutil.Amount]
}

// BalancesWatchOnly are the balances of watch-only outputs.
type BalancesWatchOnly struct {
	Trusted          btcutil.Amount
	UntrustedPending btcutil.Amount
	Immature         btcutil.Amount
}

// SendToAddress is the result of sendtoaddress.
type SendToAddress struct {
	Txid chainhash.Hash
}

// GetTransaction is the result of gettransaction. Amounts are signed, so
// outgoing payments are negative.
type GetTransaction struct {
	Amount btcutil.Amount
	Fee    fn.Option[btcutil.Amount]

	// Confirmations is negative for transactions conflicting with the
	// main chain.
	Confirmations int64

	Txid              chainhash.Hash
	BlockHash         fn.Option[chainhash.Hash]
	Time              int64
	TimeReceived      int64
	Bip125Replaceable string
	Details           []TransactionDetail
	Tx                *wire.MsgTx
}

// TransactionDetail is one entry of a gettransaction result.
type TransactionDetail struct {
	// Address is unset for outputs without a standard address.
	Address   fn.Option[Address]
	Category  TransactionCategory
	Amount    btcutil.Amount
	Label     fn.Option[string]
	Vout      uint32
	Fee       fn.Option[btcutil.Amount]
	Abandoned fn.Option[bool]
}
