// Package v19 holds the wire types that changed in Bitcoin Core v0.19. The
// v20 and v21 clients use them unchanged.
package v19

import (
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/corerpc/schema"
	v17 "github.com/lightningnetwork/corerpc/schema/v17"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// GetBlockchainInfo is the result of getblockchaininfo for v19 to v22.
type GetBlockchainInfo struct {
	v17.BlockchainInfoBase

	// Softforks maps a deployment name to its status.
	Softforks map[string]Softfork `json:"softforks"`

	Warnings string `json:"warnings"`
}

// Softfork is one entry of the softforks map.
type Softfork struct {
	Type   string        `json:"type"`
	Bip9   *Bip9Softfork `json:"bip9"`
	Height *int64        `json:"height"`
	Active bool          `json:"active"`
}

// Bip9Softfork is the version bits state nested in a softfork entry.
type Bip9Softfork struct {
	Status     string                 `json:"status"`
	Bit        *uint8                 `json:"bit"`
	StartTime  int64                  `json:"start_time"`
	Timeout    int64                  `json:"timeout"`
	Since      int64                  `json:"since"`
	Statistics *v17.Bip9SoftforkStats `json:"statistics"`
}

// ToModel converts the softfork entry.
func (s Softfork) ToModel() (model.Softfork, error) {
	typ, err := model.ParseSoftforkType(s.Type)
	if err != nil {
		return model.Softfork{}, rpcerr.NewConversionError("type", err)
	}

	height, err := schema.OptionalUint32(s.Height, "height")
	if err != nil {
		return model.Softfork{}, err
	}

	bip9 := fn.None[model.Bip9SoftforkInfo]()
	if s.Bip9 != nil {
		info, err := v17.ConvertBip9(
			s.Bip9.Status, s.Bip9.Bit, s.Bip9.StartTime,
			s.Bip9.Timeout, s.Bip9.Since, s.Bip9.Statistics,
		)
		if err != nil {
			return model.Softfork{}, rpcerr.NewConversionError(
				"bip9", err,
			)
		}
		bip9 = fn.Some(info)
	}

	return model.Softfork{
		Type:   typ,
		Bip9:   bip9,
		Height: height,
		Active: s.Active,
	}, nil
}

// ToModel converts everything but the softforks.
func (g GetBlockchainInfo) ToModel() (*model.GetBlockchainInfo, error) {
	return g.ToModelWithWarnings(v17.WarningList(g.Warnings))
}

// SoftforksToModel converts the softforks map.
func (g GetBlockchainInfo) SoftforksToModel() (model.Softforks, error) {
	softforks := make(model.Softforks, len(g.Softforks))
	for name, fork := range g.Softforks {
		converted, err := fork.ToModel()
		if err != nil {
			return nil, rpcerr.NewConversionError(
				"softforks."+name, err,
			)
		}
		softforks[name] = converted
	}

	return softforks, nil
}
