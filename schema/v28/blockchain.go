// Package v28 holds the wire types that changed in Bitcoin Core v28, where
// warnings became a list and submitpackage gained its current shape.
package v28

import (
	"github.com/lightningnetwork/corerpc/model"
	v17 "github.com/lightningnetwork/corerpc/schema/v17"
	v22 "github.com/lightningnetwork/corerpc/schema/v22"
)

// GetBlockchainInfo is the result of getblockchaininfo from v28.
type GetBlockchainInfo struct {
	v17.BlockchainInfoBase

	Warnings []string `json:"warnings"`
}

// ToModel converts the chain info.
func (g GetBlockchainInfo) ToModel() (*model.GetBlockchainInfo, error) {
	return g.ToModelWithWarnings(warningsOrEmpty(g.Warnings))
}

// GetNetworkInfo is the result of getnetworkinfo from v28.
type GetNetworkInfo struct {
	v22.NetworkInfoFields

	Warnings []string `json:"warnings"`
}

// ToModel converts the network info.
func (g GetNetworkInfo) ToModel() (*model.GetNetworkInfo, error) {
	return g.ToModelWithWarnings(warningsOrEmpty(g.Warnings))
}

func warningsOrEmpty(warnings []string) []string {
	if warnings == nil {
		return []string{}
	}

	return warnings
}
