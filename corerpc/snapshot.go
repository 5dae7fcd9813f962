package corerpc

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/corerpc/model"
	"golang.org/x/sync/errgroup"
)

// ChainSnapshot is the chain and network state read by Snapshot.
type ChainSnapshot struct {
	Blockchain *model.GetBlockchainInfo
	Network    *model.GetNetworkInfo
	BestBlock  chainhash.Hash
}

// Snapshot reads getblockchaininfo, getnetworkinfo and getbestblockhash
// concurrently. The calls share c, so its transport must be safe for
// concurrent use. The first failure cancels the others.
func Snapshot(ctx context.Context, c Client) (*ChainSnapshot, error) {
	var snapshot ChainSnapshot

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		info, err := c.GetBlockchainInfo(ctx)
		snapshot.Blockchain = info

		return err
	})

	g.Go(func() error {
		info, err := c.GetNetworkInfo(ctx)
		snapshot.Network = info

		return err
	})

	g.Go(func() error {
		hash, err := c.GetBestBlockHash(ctx)
		snapshot.BestBlock = hash

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &snapshot, nil
}
