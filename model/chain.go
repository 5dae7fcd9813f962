// Package model holds the canonical, version independent results of the
// bitcoind RPC methods. Every server version's wire types convert into these,
// so calling code only ever deals with one representation.
package model

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/lightningnetwork/corerpc/rpcerr"
)

// Network is a chain a bitcoind instance can run on.
type Network uint8

const (
	// NetworkMainnet is the main bitcoin network.
	NetworkMainnet Network = iota

	// NetworkTestnet3 is the third public test network.
	NetworkTestnet3

	// NetworkTestnet4 is the fourth public test network.
	NetworkTestnet4

	// NetworkSignet is the default signet.
	NetworkSignet

	// NetworkRegtest is the local regression test network.
	NetworkRegtest
)

// ParseNetwork maps the chain name reported by getblockchaininfo to a
// Network.
func ParseNetwork(name string) (Network, error) {
	switch name {
	case "main":
		return NetworkMainnet, nil
	case "test":
		return NetworkTestnet3, nil
	case "testnet4":
		return NetworkTestnet4, nil
	case "signet":
		return NetworkSignet, nil
	case "regtest":
		return NetworkRegtest, nil
	default:
		return 0, fmt.Errorf("%w: network %q", rpcerr.ErrUnknownVariant,
			name)
	}
}

// String returns the chain name as bitcoind reports it.
func (n Network) String() string {
	switch n {
	case NetworkMainnet:
		return "main"
	case NetworkTestnet3:
		return "test"
	case NetworkTestnet4:
		return "testnet4"
	case NetworkSignet:
		return "signet"
	case NetworkRegtest:
		return "regtest"
	default:
		return fmt.Sprintf("network(%d)", uint8(n))
	}
}

// Params returns the chain parameters used to decode addresses for the
// network. Testnet4 addresses share the testnet3 encoding.
func (n Network) Params() *chaincfg.Params {
	switch n {
	case NetworkTestnet3, NetworkTestnet4:
		return &chaincfg.TestNet3Params
	case NetworkSignet:
		return &chaincfg.SigNetParams
	case NetworkRegtest:
		return &chaincfg.RegressionNetParams
	default:
		return &chaincfg.MainNetParams
	}
}

// Networks lists every known network, mainnet first.
var Networks = []Network{
	NetworkMainnet, NetworkTestnet3, NetworkTestnet4, NetworkSignet,
	NetworkRegtest,
}

// CompactTarget is the compact encoding of a proof of work target, as found
// in the bits field of a block header.
type CompactTarget uint32

// Target expands the compact form into the full target.
func (c CompactTarget) Target() *big.Int {
	return blockchain.CompactToBig(uint32(c))
}

// String returns the eight digit hex form used by bitcoind.
func (c CompactTarget) String() string {
	return fmt.Sprintf("%08x", uint32(c))
}

// Address is an address returned by the server. The encoded form is kept
// since it was decoded without knowing which network the server runs on.
type Address struct {
	// Encoded is the address exactly as the server returned it.
	Encoded string

	// Decoded is the parsed address.
	Decoded btcutil.Address
}

// String returns the encoded address.
func (a Address) String() string {
	return a.Encoded
}

// IsForNet reports whether the address belongs to the given network.
func (a Address) IsForNet(params *chaincfg.Params) bool {
	return a.Decoded != nil && a.Decoded.IsForNet(params)
}
