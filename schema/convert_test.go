package schema

import (
	"bytes"
	"encoding/hex"
	"math"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestNarrowing checks that negative and oversized integers are rejected
// with the field name attached.
func TestNarrowing(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		value int64
		kind  rpcerr.NumericKind
		ok    bool
	}{
		{name: "zero", value: 0, ok: true},
		{name: "max", value: math.MaxUint32, ok: true},
		{name: "negative", value: -1, kind: rpcerr.NumericNegative},
		{
			name:  "overflow",
			value: math.MaxUint32 + 1,
			kind:  rpcerr.NumericOverflow,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v, err := ToUint32(tc.value, "height")
			if tc.ok {
				require.NoError(t, err)
				require.EqualValues(t, tc.value, v)

				return
			}

			var numErr *rpcerr.NumericError
			require.ErrorAs(t, err, &numErr)
			require.Equal(t, tc.kind, numErr.Kind)
			require.Equal(t, "height", numErr.Field)
			require.Equal(t, tc.value, numErr.Value)
		})
	}
}

// TestOptionalUint32 checks that absence is None and a present negative
// value is an error.
func TestOptionalUint32(t *testing.T) {
	t.Parallel()

	v, err := OptionalUint32(nil, "pruneheight")
	require.NoError(t, err)
	require.True(t, v.IsNone())

	seven := int64(7)
	v, err = OptionalUint32(&seven, "pruneheight")
	require.NoError(t, err)
	require.Equal(t, uint32(7), v.UnwrapOr(0))

	negative := int64(-1)
	_, err = OptionalUint32(&negative, "pruneheight")

	var numErr *rpcerr.NumericError
	require.ErrorAs(t, err, &numErr)
	require.Equal(t, rpcerr.NumericNegative, numErr.Kind)
}

// TestParseHashRoundTrip checks that any hash survives its RPC string form.
func TestParseHashRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		var hash chainhash.Hash
		copy(hash[:], rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "b"))

		parsed, err := ParseHash(hash.String(), "hash")
		require.NoError(t, err)
		require.Equal(t, hash, parsed)
	})
}

// TestParseHashRejects checks malformed hashes.
func TestParseHashRejects(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "00", "zz" + hex.EncodeToString(
		make([]byte, 31),
	)} {
		_, err := ParseHash(s, "blockhash")

		var convErr *rpcerr.ConversionError
		require.ErrorAs(t, err, &convErr)
		require.Equal(t, "blockhash", convErr.Field)
	}

	_, err := ParseHashes([]string{chainhash.Hash{}.String(), "x"}, "tx")

	var convErr *rpcerr.ConversionError
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, "tx[1]", convErr.Field)
}

// TestParseHexNumbers covers the compact target and chain work fields.
func TestParseHexNumbers(t *testing.T) {
	t.Parallel()

	bits, err := ParseCompact("1d00ffff", "bits")
	require.NoError(t, err)
	require.Equal(t, model.CompactTarget(0x1d00ffff), bits)

	_, err = ParseCompact("0x1d00ffff", "bits")
	require.ErrorIs(t, err, ErrHexPrefix)

	_, err = ParseCompact("1d00fff", "bits")
	require.ErrorIs(t, err, ErrCompactLength)

	work, err := ParseWork(
		"0000000000000000000000000000000000000000000000000000000100010001",
		"chainwork",
	)
	require.NoError(t, err)
	require.EqualValues(t, 0x100010001, work.Int64())

	_, err = ParseWork("0x01", "chainwork")
	require.ErrorIs(t, err, ErrHexPrefix)

	_, err = ParseWork("", "chainwork")
	require.ErrorIs(t, err, ErrEmptyHex)

	services, err := ParseServiceFlags("0000000000000409", "localservices")
	require.NoError(t, err)
	require.EqualValues(t, 0x409, services)
}

// TestParseAmount checks BTC to satoshi conversion and its limits.
func TestParseAmount(t *testing.T) {
	t.Parallel()

	amt, err := ParseAmount(0.0005, "value")
	require.NoError(t, err)
	require.Equal(t, btcutil.Amount(50_000), amt)

	amt, err = ParseAmount(-0.1, "amount")
	require.NoError(t, err)
	require.Equal(t, btcutil.Amount(-10_000_000), amt)

	for _, bad := range []float64{
		math.NaN(), math.Inf(1), math.Inf(-1), 21_000_001,
	} {
		_, err := ParseAmount(bad, "value")
		require.Error(t, err)
		require.True(t, rpcerr.Is(err, rpcerr.KindConversion))
	}

	none, err := ParseOptionalAmount(nil, "fee")
	require.NoError(t, err)
	require.True(t, none.IsNone())

	rapid.Check(t, func(t *rapid.T) {
		sats := rapid.Int64Range(
			-100_000_000_000_000, 100_000_000_000_000,
		).Draw(t, "sats")

		amt, err := ParseAmount(btcutil.Amount(sats).ToBTC(), "value")
		require.NoError(t, err)
		require.Equal(t, btcutil.Amount(sats), amt)
	})
}

// TestFeeRateUnits checks fee rate conversion for each size unit.
func TestFeeRateUnits(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		unit     SizeUnit
		btc      float64
		expected model.SatPerKWeight
	}{
		{unit: Bytes, btc: 0.00001, expected: 1000},
		{unit: Bytes, btc: 0.00000253, expected: 253},
		{unit: VirtualBytes, btc: 0.00001, expected: 250},
		{unit: VirtualBytes, btc: 0.00000253, expected: 63},
		{unit: VirtualBytes, btc: 0, expected: 0},
	}
	for _, tc := range testCases {
		rate, err := FeeRateFromBTCPerKB(tc.btc, tc.unit)
		require.NoError(t, err)
		require.Equal(t, tc.expected, rate, tc.unit.String())
	}

	_, err := FeeRateFromBTCPerKB(-0.00001, VirtualBytes)
	require.Error(t, err)

	_, err = FeeRateFromBTCPerKB(0.00001, SizeUnit(99))
	require.Error(t, err)

	rate, err := FeeRateFromSatPerVByte(2, "avgfeerate")
	require.NoError(t, err)
	require.Equal(t, model.SatPerKWeight(500), rate)

	_, err = FeeRateFromSatPerVByte(-2, "avgfeerate")
	require.True(t, rpcerr.Is(err, rpcerr.KindConversion))
}

// TestParseAddressFallback checks that an address from another network
// still decodes.
func TestParseAddressFallback(t *testing.T) {
	t.Parallel()

	regtest, err := btcutil.NewAddressWitnessPubKeyHash(
		make([]byte, 20), &chaincfg.RegressionNetParams,
	)
	require.NoError(t, err)
	encoded := regtest.EncodeAddress()

	addr, err := ParseAddress(encoded, &chaincfg.MainNetParams, "address")
	require.NoError(t, err)
	require.Equal(t, encoded, addr.String())
	require.True(t, addr.Decoded.IsForNet(&chaincfg.RegressionNetParams))

	_, err = ParseAddress("notanaddress", nil, "address")
	require.ErrorIs(t, err, ErrAddressNetwork)

	none, err := ParseOptionalAddress(nil, nil, "address")
	require.NoError(t, err)
	require.True(t, none.IsNone())
}

// TestCheckAddressScript checks that an address must pay to the script it
// was reported with.
func TestCheckAddressScript(t *testing.T) {
	t.Parallel()

	params := &chaincfg.RegressionNetParams

	mine, err := btcutil.NewAddressWitnessPubKeyHash(
		make([]byte, 20), params,
	)
	require.NoError(t, err)

	other, err := btcutil.NewAddressWitnessPubKeyHash(
		bytes.Repeat([]byte{1}, 20), params,
	)
	require.NoError(t, err)

	script, err := txscript.PayToAddrScript(mine)
	require.NoError(t, err)

	class, err := CheckAddressScript(
		script, model.Address{Encoded: mine.String(), Decoded: mine},
		"scriptPubKey",
	)
	require.NoError(t, err)
	require.Equal(t, txscript.WitnessV0PubKeyHashTy, class)

	_, err = CheckAddressScript(
		script, model.Address{Encoded: other.String(), Decoded: other},
		"scriptPubKey",
	)
	require.ErrorIs(t, err, ErrScriptMismatch)
}

// TestDecodeConsensus checks block and header decoding, including trailing
// bytes.
func TestDecodeConsensus(t *testing.T) {
	t.Parallel()

	genesis := chaincfg.MainNetParams.GenesisBlock

	var buf bytes.Buffer
	require.NoError(t, genesis.Serialize(&buf))
	blockHex := hex.EncodeToString(buf.Bytes())

	block, err := DecodeBlock(blockHex, "block")
	require.NoError(t, err)
	require.Equal(t, *chaincfg.MainNetParams.GenesisHash, block.BlockHash())

	header, err := DecodeHeader(blockHex[:160], "header")
	require.NoError(t, err)
	require.Equal(t, *chaincfg.MainNetParams.GenesisHash, header.BlockHash())

	_, err = DecodeHeader(blockHex[:162], "header")
	require.ErrorIs(t, err, ErrTrailingBytes)

	_, err = DecodeTx("zz", "hex")
	require.True(t, rpcerr.Is(err, rpcerr.KindConversion))
}
