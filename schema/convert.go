// Package schema holds the field converters shared by the per version wire
// packages under schema/. Each converter tags its failure with the wire name
// of the field it was given, so a failed conversion always names the field
// that broke it.
package schema

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// Converter is implemented by every wire result type. ToModel never panics on
// server supplied data and reports the first field that failed.
type Converter[M any] interface {
	ToModel() (M, error)
}

// NetworkAware is implemented by wire types that decode addresses. The client
// hands them its chain parameters before calling ToModel.
type NetworkAware interface {
	SetParams(params *chaincfg.Params)
}

var (
	// ErrHexPrefix is returned for a hex field that carries an 0x prefix
	// where the server never sends one.
	ErrHexPrefix = errors.New("unexpected 0x prefix")

	// ErrCompactLength is returned for a bits field that is not exactly
	// eight hex digits.
	ErrCompactLength = errors.New("compact target must be 8 hex digits")

	// ErrEmptyHex is returned for an empty numeric hex field.
	ErrEmptyHex = errors.New("empty hex string")

	// ErrAddressNetwork is returned for an address that does not decode
	// on any known network.
	ErrAddressNetwork = errors.New("address not valid on any network")

	// ErrScriptMismatch is returned when the address reported for an
	// output does not pay to the output's script.
	ErrScriptMismatch = errors.New("address does not match script")

	// ErrTrailingBytes is returned when consensus data has bytes left over
	// after decoding.
	ErrTrailingBytes = errors.New("trailing bytes after decoding")
)

// ToUint32 narrows a signed wire integer. Negative and too large values are
// rejected, never wrapped.
func ToUint32(v int64, field string) (uint32, error) {
	switch {
	case v < 0:
		return 0, &rpcerr.NumericError{
			Kind: rpcerr.NumericNegative, Field: field, Value: v,
		}

	case v > math.MaxUint32:
		return 0, &rpcerr.NumericError{
			Kind: rpcerr.NumericOverflow, Field: field, Value: v,
		}
	}

	return uint32(v), nil
}

// ToUint64 rejects a negative wire integer.
func ToUint64(v int64, field string) (uint64, error) {
	if v < 0 {
		return 0, &rpcerr.NumericError{
			Kind: rpcerr.NumericNegative, Field: field, Value: v,
		}
	}

	return uint64(v), nil
}

// OptionalUint32 narrows an optional wire integer. An absent value is None. A
// present negative value is an error rather than None, since the server uses
// absence, not -1, to mean "not applicable" for optional fields.
func OptionalUint32(v *int64, field string) (fn.Option[uint32], error) {
	if v == nil {
		return fn.None[uint32](), nil
	}

	u, err := ToUint32(*v, field)
	if err != nil {
		return fn.None[uint32](), err
	}

	return fn.Some(u), nil
}

// OptionalUint64 rejects a present negative value.
func OptionalUint64(v *int64, field string) (fn.Option[uint64], error) {
	if v == nil {
		return fn.None[uint64](), nil
	}

	u, err := ToUint64(*v, field)
	if err != nil {
		return fn.None[uint64](), err
	}

	return fn.Some(u), nil
}

// ParseHash parses a block hash or txid in RPC byte order.
func ParseHash(s, field string) (chainhash.Hash, error) {
	if len(s) != chainhash.MaxHashStringSize {
		return chainhash.Hash{}, rpcerr.NewConversionError(
			field, fmt.Errorf("%w: got %d characters",
				hex.ErrLength, len(s)),
		)
	}

	hash, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return chainhash.Hash{}, rpcerr.NewConversionError(field, err)
	}

	return *hash, nil
}

// ParseOptionalHash parses a hash that may be absent.
func ParseOptionalHash(s *string,
	field string) (fn.Option[chainhash.Hash], error) {

	if s == nil {
		return fn.None[chainhash.Hash](), nil
	}

	hash, err := ParseHash(*s, field)
	if err != nil {
		return fn.None[chainhash.Hash](), err
	}

	return fn.Some(hash), nil
}

// ParseHashes parses a list of hashes. The failing index is part of the
// field name.
func ParseHashes(list []string, field string) ([]chainhash.Hash, error) {
	hashes := make([]chainhash.Hash, len(list))
	for i, s := range list {
		hash, err := ParseHash(s, IndexField(field, i))
		if err != nil {
			return nil, err
		}
		hashes[i] = hash
	}

	return hashes, nil
}

// IndexField names one element of a list field.
func IndexField(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}

// parseUnprefixedHex decodes a hex number that must not carry a prefix.
func parseUnprefixedHex(s string) (*big.Int, error) {
	if s == "" {
		return nil, ErrEmptyHex
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return nil, ErrHexPrefix
	}

	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex number %q", s)
	}

	return n, nil
}

// ParseCompact parses the unprefixed eight digit hex bits field.
func ParseCompact(s, field string) (model.CompactTarget, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return 0, rpcerr.NewConversionError(field, ErrHexPrefix)
	}
	if len(s) != 8 {
		return 0, rpcerr.NewConversionError(field, ErrCompactLength)
	}

	bits, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, rpcerr.NewConversionError(field, err)
	}

	return model.CompactTarget(bits), nil
}

// ParseWork parses an unprefixed hex chainwork value of any length.
func ParseWork(s, field string) (*big.Int, error) {
	work, err := parseUnprefixedHex(s)
	if err != nil {
		return nil, rpcerr.NewConversionError(field, err)
	}

	return work, nil
}

// ParseServiceFlags parses the unprefixed hex services bitfield.
func ParseServiceFlags(s, field string) (wire.ServiceFlag, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return 0, rpcerr.NewConversionError(field, ErrHexPrefix)
	}

	flags, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, rpcerr.NewConversionError(field, err)
	}

	return wire.ServiceFlag(flags), nil
}

// ParseAmount converts a BTC value to satoshis. The sign is kept, so it also
// serves signed wallet amounts and fees.
func ParseAmount(btc float64, field string) (btcutil.Amount, error) {
	amt, err := newAmount(btc)
	if err != nil {
		return 0, rpcerr.NewConversionError(field, err)
	}

	return amt, nil
}

// maxBTC is the money supply in BTC.
const maxBTC = float64(btcutil.MaxSatoshi) / btcutil.SatoshiPerBitcoin

// newAmount is btcutil.NewAmount limited to the money supply.
func newAmount(btc float64) (btcutil.Amount, error) {
	if math.Abs(btc) > maxBTC {
		return 0, fmt.Errorf("amount %v out of range", btc)
	}

	return btcutil.NewAmount(btc)
}

// ParseOptionalAmount converts an optional BTC value.
func ParseOptionalAmount(btc *float64,
	field string) (fn.Option[btcutil.Amount], error) {

	if btc == nil {
		return fn.None[btcutil.Amount](), nil
	}

	amt, err := ParseAmount(*btc, field)
	if err != nil {
		return fn.None[btcutil.Amount](), err
	}

	return fn.Some(amt), nil
}

// SizeUnit is the size a server's BTC/kB fee rates are quoted against.
type SizeUnit uint8

const (
	// Bytes is the unit of servers before v22, which quote rates in BTC/kB.
	Bytes SizeUnit = iota + 1

	// VirtualBytes is the unit of v22 and later, which quote rates in
	// BTC/kvB.
	VirtualBytes
)

// String returns the unit name as the server documents it.
func (u SizeUnit) String() string {
	switch u {
	case Bytes:
		return "BTC/kB"
	case VirtualBytes:
		return "BTC/kvB"
	default:
		return "unknown"
	}
}

// FeeRateFromBTCPerKB converts a fee rate quoted in BTC per thousand size
// units into sat/kw. A BTC/kB rate of a server before v22 is read as
// sat/kw unchanged, as those releases predate virtual sizes. A BTC/kvB rate
// is divided by the four weight units of a virtual byte.
func FeeRateFromBTCPerKB(btc float64, unit SizeUnit) (model.SatPerKWeight,
	error) {

	sats, err := newAmount(btc)
	if err != nil {
		return 0, err
	}
	if sats < 0 {
		return 0, fmt.Errorf("negative fee rate %v %v", btc, unit)
	}

	switch unit {
	case Bytes:
		return model.SatPerKWeight(sats), nil

	case VirtualBytes:
		return model.SatPerKVByte(sats).FeePerKWeight(), nil

	default:
		return 0, fmt.Errorf("unknown size unit %d", unit)
	}
}

// ParseFeeRate converts a fee rate field quoted in BTC per thousand units.
func ParseFeeRate(btc float64, unit SizeUnit,
	field string) (model.SatPerKWeight, error) {

	rate, err := FeeRateFromBTCPerKB(btc, unit)
	if err != nil {
		return 0, rpcerr.NewConversionError(field, err)
	}

	return rate, nil
}

// FeeRateFromSatPerVByte converts an integer sat/vB rate, as reported by
// getblockstats, to sat/kw.
func FeeRateFromSatPerVByte(v int64, field string) (model.SatPerKWeight,
	error) {

	if _, err := ToUint64(v, field); err != nil {
		return 0, err
	}

	return model.SatPerVByte(v).FeePerKWeight(), nil
}

// ParseNetwork maps the chain name of getblockchaininfo.
func ParseNetwork(s, field string) (model.Network, error) {
	network, err := model.ParseNetwork(s)
	if err != nil {
		return 0, rpcerr.NewConversionError(field, err)
	}

	return network, nil
}

// ParseAddress decodes an address against the given network first, and then
// against every known network. The server is trusted to return addresses for
// the chain it runs on, so the network is not enforced.
func ParseAddress(s string, params *chaincfg.Params,
	field string) (model.Address, error) {

	if params == nil {
		params = &chaincfg.MainNetParams
	}

	if addr, err := btcutil.DecodeAddress(s, params); err == nil {
		return model.Address{Encoded: s, Decoded: addr}, nil
	}

	for _, network := range model.Networks {
		addr, err := btcutil.DecodeAddress(s, network.Params())
		if err == nil {
			return model.Address{Encoded: s, Decoded: addr}, nil
		}
	}

	return model.Address{}, rpcerr.NewConversionError(
		field, fmt.Errorf("%w: %q", ErrAddressNetwork, s),
	)
}

// ParseOptionalAddress decodes an address that may be absent.
func ParseOptionalAddress(s *string, params *chaincfg.Params,
	field string) (fn.Option[model.Address], error) {

	if s == nil || *s == "" {
		return fn.None[model.Address](), nil
	}

	addr, err := ParseAddress(*s, params, field)
	if err != nil {
		return fn.None[model.Address](), err
	}

	return fn.Some(addr), nil
}

// decodeHex decodes a hex field into bytes.
func decodeHex(s, field string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, rpcerr.NewConversionError(field, err)
	}

	return b, nil
}

// ParseScript decodes a hex script.
func ParseScript(s, field string) ([]byte, error) {
	return decodeHex(s, field)
}

// DecodeTx decodes a hex serialized transaction.
func DecodeTx(s, field string) (*wire.MsgTx, error) {
	b, err := decodeHex(s, field)
	if err != nil {
		return nil, err
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	r := bytes.NewReader(b)
	if err := tx.Deserialize(r); err != nil {
		return nil, rpcerr.NewConversionError(field, err)
	}
	if r.Len() != 0 {
		return nil, rpcerr.NewConversionError(field, ErrTrailingBytes)
	}

	return tx, nil
}

// DecodeBlock decodes a hex serialized block.
func DecodeBlock(s, field string) (*wire.MsgBlock, error) {
	b, err := decodeHex(s, field)
	if err != nil {
		return nil, err
	}

	var block wire.MsgBlock
	r := bytes.NewReader(b)
	if err := block.Deserialize(r); err != nil {
		return nil, rpcerr.NewConversionError(field, err)
	}
	if r.Len() != 0 {
		return nil, rpcerr.NewConversionError(field, ErrTrailingBytes)
	}

	return &block, nil
}

// DecodeHeader decodes a hex serialized block header.
func DecodeHeader(s, field string) (*wire.BlockHeader, error) {
	b, err := decodeHex(s, field)
	if err != nil {
		return nil, err
	}

	var header wire.BlockHeader
	r := bytes.NewReader(b)
	if err := header.Deserialize(r); err != nil {
		return nil, rpcerr.NewConversionError(field, err)
	}
	if r.Len() != 0 {
		return nil, rpcerr.NewConversionError(field, ErrTrailingBytes)
	}

	return &header, nil
}

// checkedClasses are the script classes whose address encodes the whole
// script, so the address can be checked against it.
var checkedClasses = map[txscript.ScriptClass]bool{
	txscript.PubKeyHashTy:          true,
	txscript.ScriptHashTy:          true,
	txscript.WitnessV0PubKeyHashTy: true,
	txscript.WitnessV0ScriptHashTy: true,
	txscript.WitnessV1TaprootTy:    true,
}

// CheckAddressScript verifies that addr pays to script for the script
// classes where that is well defined, and returns the script class.
func CheckAddressScript(script []byte, addr model.Address,
	field string) (txscript.ScriptClass, error) {

	class := txscript.GetScriptClass(script)
	if !checkedClasses[class] || addr.Decoded == nil {
		return class, nil
	}

	expected, err := txscript.PayToAddrScript(addr.Decoded)
	if err != nil {
		return class, rpcerr.NewConversionError(field, err)
	}
	if !bytes.Equal(expected, script) {
		return class, rpcerr.NewConversionError(
			field, fmt.Errorf("%w: %s", ErrScriptMismatch, addr),
		)
	}

	return class, nil
}

// ScriptClass returns the standard class of a script.
func ScriptClass(script []byte) txscript.ScriptClass {
	return txscript.GetScriptClass(script)
}
