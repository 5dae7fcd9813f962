package v19

import (
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/corerpc/schema"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// GetBalances is the result of getbalances. Balances are in BTC.
type GetBalances struct {
	Mine      BalancesMine       `json:"mine"`
	WatchOnly *BalancesWatchOnly `json:"watchonly"`
}

// BalancesMine are the balances of outputs the wallet can sign for.
type BalancesMine struct {
	Trusted          float64  `json:"trusted"`
	UntrustedPending float64  `json:"untrusted_pending"`
	Immature         float64  `json:"immature"`
	Used             *float64 `json:"used"`
}

// BalancesWatchOnly are the balances of watch-only outputs.
type BalancesWatchOnly struct {
	Trusted          float64 `json:"trusted"`
	UntrustedPending float64 `json:"untrusted_pending"`
	Immature         float64 `json:"immature"`
}

// ToModel converts the balances.
func (g GetBalances) ToModel() (*model.GetBalances, error) {
	trusted, err := schema.ParseAmount(g.Mine.Trusted, "mine.trusted")
	if err != nil {
		return nil, err
	}

	pending, err := schema.ParseAmount(
		g.Mine.UntrustedPending, "mine.untrusted_pending",
	)
	if err != nil {
		return nil, err
	}

	immature, err := schema.ParseAmount(g.Mine.Immature, "mine.immature")
	if err != nil {
		return nil, err
	}

	used, err := schema.ParseOptionalAmount(g.Mine.Used, "mine.used")
	if err != nil {
		return nil, err
	}

	balances := &model.GetBalances{
		Mine: model.BalancesMine{
			Trusted:          trusted,
			UntrustedPending: pending,
			Immature:         immature,
			Used:             used,
		},
		WatchOnly: fn.None[model.BalancesWatchOnly](),
	}

	if g.WatchOnly == nil {
		return balances, nil
	}

	watchOnly, err := g.WatchOnly.ToModel()
	if err != nil {
		return nil, rpcerr.NewConversionError("watchonly", err)
	}
	balances.WatchOnly = fn.Some(watchOnly)

	return balances, nil
}

// ToModel converts the watch-only balances.
func (b BalancesWatchOnly) ToModel() (model.BalancesWatchOnly, error) {
	trusted, err := schema.ParseAmount(b.Trusted, "trusted")
	if err != nil {
		return model.BalancesWatchOnly{}, err
	}

	pending, err := schema.ParseAmount(
		b.UntrustedPending, "untrusted_pending",
	)
	if err != nil {
		return model.BalancesWatchOnly{}, err
	}

	immature, err := schema.ParseAmount(b.Immature, "immature")
	if err != nil {
		return model.BalancesWatchOnly{}, err
	}

	return model.BalancesWatchOnly{
		Trusted:          trusted,
		UntrustedPending: pending,
		Immature:         immature,
	}, nil
}
