package model

import (
	"fmt"

	"github.com/lightningnetwork/corerpc/rpcerr"
)

// unknownVariant builds the error returned for an unrecognized enum string.
func unknownVariant(enum, value string) error {
	return fmt.Errorf("%w: %s %q", rpcerr.ErrUnknownVariant, enum, value)
}

// ChainTipsStatus is the status of a getchaintips entry.
type ChainTipsStatus uint8

const (
	// ChainTipInvalid means the branch contains at least one invalid
	// block.
	ChainTipInvalid ChainTipsStatus = iota + 1

	// ChainTipHeadersOnly means not all blocks of the branch are
	// available, but the headers are valid.
	ChainTipHeadersOnly

	// ChainTipValidHeaders means all blocks are available but were never
	// fully validated.
	ChainTipValidHeaders

	// ChainTipValidFork means the branch is fully validated but not part
	// of the active chain.
	ChainTipValidFork

	// ChainTipActive is the tip of the active chain.
	ChainTipActive
)

var chainTipsStatuses = map[string]ChainTipsStatus{
	"invalid":       ChainTipInvalid,
	"headers-only":  ChainTipHeadersOnly,
	"valid-headers": ChainTipValidHeaders,
	"valid-fork":    ChainTipValidFork,
	"active":        ChainTipActive,
}

// ParseChainTipsStatus maps a wire status string.
func ParseChainTipsStatus(s string) (ChainTipsStatus, error) {
	status, ok := chainTipsStatuses[s]
	if !ok {
		return 0, unknownVariant("chain tip status", s)
	}

	return status, nil
}

// String returns the wire form of the status.
func (c ChainTipsStatus) String() string {
	for name, status := range chainTipsStatuses {
		if status == c {
			return name
		}
	}

	return "unknown"
}

// Bip9SoftforkStatus is the deployment state of a BIP-9 softfork.
type Bip9SoftforkStatus uint8

const (
	// Bip9Defined is the first state of every deployment.
	Bip9Defined Bip9SoftforkStatus = iota + 1

	// Bip9Started means signalling is underway.
	Bip9Started

	// Bip9LockedIn means the threshold was reached and activation is
	// pending.
	Bip9LockedIn

	// Bip9Active means the rules are enforced.
	Bip9Active

	// Bip9Failed means the deployment timed out.
	Bip9Failed
)

var bip9Statuses = map[string]Bip9SoftforkStatus{
	"defined":   Bip9Defined,
	"started":   Bip9Started,
	"locked_in": Bip9LockedIn,
	"active":    Bip9Active,
	"failed":    Bip9Failed,
}

// ParseBip9SoftforkStatus maps a wire status string.
func ParseBip9SoftforkStatus(s string) (Bip9SoftforkStatus, error) {
	status, ok := bip9Statuses[s]
	if !ok {
		return 0, unknownVariant("bip9 status", s)
	}

	return status, nil
}

// String returns the wire form of the status.
func (b Bip9SoftforkStatus) String() string {
	for name, status := range bip9Statuses {
		if status == b {
			return name
		}
	}

	return "unknown"
}

// SoftforkType tells how a softfork was deployed.
type SoftforkType uint8

const (
	// SoftforkBuried is a softfork activated at a fixed height (BIP-90).
	SoftforkBuried SoftforkType = iota + 1

	// SoftforkBip9 is a softfork deployed through version bits.
	SoftforkBip9
)

// ParseSoftforkType maps a wire type string.
func ParseSoftforkType(s string) (SoftforkType, error) {
	switch s {
	case "buried":
		return SoftforkBuried, nil
	case "bip9":
		return SoftforkBip9, nil
	default:
		return 0, unknownVariant("softfork type", s)
	}
}

// String returns the wire form of the type.
func (s SoftforkType) String() string {
	switch s {
	case SoftforkBuried:
		return "buried"
	case SoftforkBip9:
		return "bip9"
	default:
		return "unknown"
	}
}

// TransactionCategory is the category of a wallet transaction detail.
type TransactionCategory uint8

const (
	// CategorySend is an outgoing payment.
	CategorySend TransactionCategory = iota + 1

	// CategoryReceive is an incoming payment.
	CategoryReceive

	// CategoryGenerate is a mature coinbase output.
	CategoryGenerate

	// CategoryImmature is a coinbase output that cannot be spent yet.
	CategoryImmature

	// CategoryOrphan is a coinbase output of a block that left the main
	// chain.
	CategoryOrphan
)

var categories = map[string]TransactionCategory{
	"send":     CategorySend,
	"receive":  CategoryReceive,
	"generate": CategoryGenerate,
	"immature": CategoryImmature,
	"orphan":   CategoryOrphan,
}

// ParseTransactionCategory maps a wire category string.
func ParseTransactionCategory(s string) (TransactionCategory, error) {
	category, ok := categories[s]
	if !ok {
		return 0, unknownVariant("transaction category", s)
	}

	return category, nil
}

// String returns the wire form of the category.
func (t TransactionCategory) String() string {
	for name, category := range categories {
		if category == t {
			return name
		}
	}

	return "unknown"
}

// AddressType selects the kind of address getnewaddress derives.
type AddressType string

const (
	// AddressLegacy is a P2PKH address.
	AddressLegacy AddressType = "legacy"

	// AddressP2SHSegwit is a P2WPKH address nested in P2SH.
	AddressP2SHSegwit AddressType = "p2sh-segwit"

	// AddressBech32 is a native segwit v0 address.
	AddressBech32 AddressType = "bech32"

	// AddressBech32m is a taproot address. Servers before v23 reject it.
	AddressBech32m AddressType = "bech32m"
)

// ParseAddressType validates an address type name.
func ParseAddressType(s string) (AddressType, error) {
	switch t := AddressType(s); t {
	case AddressLegacy, AddressP2SHSegwit, AddressBech32, AddressBech32m:
		return t, nil
	default:
		return "", unknownVariant("address type", s)
	}
}
