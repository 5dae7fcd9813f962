// Package v22 holds the wire types that changed in Bitcoin Core v22. From
// this release fee rates are quoted per virtual kilobyte.
package v22

import (
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/schema"
	v17 "github.com/lightningnetwork/corerpc/schema/v17"
)

// NetworkInfoFields are the getnetworkinfo fields of v22 and later, other
// than warnings.
type NetworkInfoFields struct {
	v17.NetworkInfoBase

	LocalServicesNames []string `json:"localservicesnames"`
	ConnectionsIn      *int64   `json:"connections_in"`
	ConnectionsOut     *int64   `json:"connections_out"`
}

// ToModelWithWarnings converts the fields with fee rates in BTC/kvB.
func (n NetworkInfoFields) ToModelWithWarnings(
	warnings []string) (*model.GetNetworkInfo, error) {

	info, err := n.NetworkInfoBase.ToModelWithWarnings(
		warnings, schema.VirtualBytes,
	)
	if err != nil {
		return nil, err
	}

	connectionsIn, err := schema.OptionalUint32(
		n.ConnectionsIn, "connections_in",
	)
	if err != nil {
		return nil, err
	}

	connectionsOut, err := schema.OptionalUint32(
		n.ConnectionsOut, "connections_out",
	)
	if err != nil {
		return nil, err
	}

	if n.LocalServicesNames != nil {
		info.LocalServicesNames = n.LocalServicesNames
	}
	info.ConnectionsIn = connectionsIn
	info.ConnectionsOut = connectionsOut

	return info, nil
}

// GetNetworkInfo is the result of getnetworkinfo for v22 to v27.
type GetNetworkInfo struct {
	NetworkInfoFields

	Warnings string `json:"warnings"`
}

// ToModel converts the network info.
func (g GetNetworkInfo) ToModel() (*model.GetNetworkInfo, error) {
	return g.ToModelWithWarnings(v17.WarningList(g.Warnings))
}
