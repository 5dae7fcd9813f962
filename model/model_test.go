package model

import (
	"math/big"
	"testing"

	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestFeeRateConversion checks the conversions between fee rate units.
func TestFeeRateConversion(t *testing.T) {
	t.Parallel()

	rate := SatPerVByte(1)
	require.Equal(t, SatPerKVByte(1000), rate.FeePerKVByte())
	require.Equal(t, SatPerKWeight(250), rate.FeePerKWeight())

	kvb := SatPerKVByte(1000)
	require.Equal(t, SatPerKWeight(250), kvb.FeePerKWeight())
	require.Equal(t, kvb, kvb.FeePerKWeight().FeePerKVByte())
	require.Equal(t, SatPerVByte(1), kvb.FeePerKWeight().FeePerVByte())

	require.EqualValues(t, 250, SatPerKWeight(1000).FeeForWeight(250))
	require.EqualValues(t, 150, SatPerKWeight(1000).FeeForVByte(150))
}

// TestEnumRejection makes sure no unknown wire string maps to a variant.
func TestEnumRejection(t *testing.T) {
	t.Parallel()

	known := map[string]bool{
		"invalid": true, "headers-only": true, "valid-headers": true,
		"valid-fork": true, "active": true, "defined": true,
		"started": true, "locked_in": true, "failed": true,
		"buried": true, "bip9": true, "send": true, "receive": true,
		"generate": true, "immature": true, "orphan": true,
		"legacy": true, "p2sh-segwit": true, "bech32": true,
		"bech32m": true, "main": true, "test": true, "testnet4": true,
		"signet": true, "regtest": true,
	}

	parsers := map[string]func(string) error{
		"chain tip": func(s string) error {
			_, err := ParseChainTipsStatus(s)
			return err
		},
		"bip9": func(s string) error {
			_, err := ParseBip9SoftforkStatus(s)
			return err
		},
		"softfork type": func(s string) error {
			_, err := ParseSoftforkType(s)
			return err
		},
		"category": func(s string) error {
			_, err := ParseTransactionCategory(s)
			return err
		},
		"address type": func(s string) error {
			_, err := ParseAddressType(s)
			return err
		},
		"network": func(s string) error {
			_, err := ParseNetwork(s)
			return err
		},
	}

	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		if known[s] {
			t.Skip("known variant")
		}

		for name, parse := range parsers {
			err := parse(s)
			if err == nil {
				t.Fatalf("%s accepted %q", name, s)
			}
			require.ErrorIs(t, err, rpcerr.ErrUnknownVariant)
		}
	})
}

// TestEnumRoundTrip checks that each variant's String is accepted by its
// parser.
func TestEnumRoundTrip(t *testing.T) {
	t.Parallel()

	for _, status := range chainTipsStatuses {
		parsed, err := ParseChainTipsStatus(status.String())
		require.NoError(t, err)
		require.Equal(t, status, parsed)
	}

	for _, status := range bip9Statuses {
		parsed, err := ParseBip9SoftforkStatus(status.String())
		require.NoError(t, err)
		require.Equal(t, status, parsed)
	}

	for _, category := range categories {
		parsed, err := ParseTransactionCategory(category.String())
		require.NoError(t, err)
		require.Equal(t, category, parsed)
	}

	for _, typ := range []SoftforkType{SoftforkBuried, SoftforkBip9} {
		parsed, err := ParseSoftforkType(typ.String())
		require.NoError(t, err)
		require.Equal(t, typ, parsed)
	}

	for _, network := range Networks {
		parsed, err := ParseNetwork(network.String())
		require.NoError(t, err)
		require.Equal(t, network, parsed)
		require.NotNil(t, network.Params())
	}
}

// TestCompactTarget checks the expansion of the genesis block target.
func TestCompactTarget(t *testing.T) {
	t.Parallel()

	bits := CompactTarget(0x1d00ffff)
	expected, ok := new(big.Int).SetString(
		"ffff0000000000000000000000000000000000000000000000000000", 16,
	)
	require.True(t, ok)
	require.Zero(t, expected.Cmp(bits.Target()))
	require.Equal(t, "1d00ffff", bits.String())
}
