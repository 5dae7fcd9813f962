package v17

import (
	"math"

	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/corerpc/schema"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// NetworkInfoBase holds the getnetworkinfo fields shared by every version.
type NetworkInfoBase struct {
	Version         int64                `json:"version"`
	Subversion      string               `json:"subversion"`
	ProtocolVersion int64                `json:"protocolversion"`
	LocalServices   string               `json:"localservices"`
	LocalRelay      bool                 `json:"localrelay"`
	TimeOffset      int64                `json:"timeoffset"`
	Connections     int64                `json:"connections"`
	NetworkActive   bool                 `json:"networkactive"`
	Networks        []NetworkInfoNetwork `json:"networks"`
	RelayFee        float64              `json:"relayfee"`
	IncrementalFee  float64              `json:"incrementalfee"`
	LocalAddresses  []NetworkInfoAddress `json:"localaddresses"`
}

// NetworkInfoNetwork is one entry of networks.
type NetworkInfoNetwork struct {
	Name                      string `json:"name"`
	Limited                   bool   `json:"limited"`
	Reachable                 bool   `json:"reachable"`
	Proxy                     string `json:"proxy"`
	ProxyRandomizeCredentials bool   `json:"proxy_randomize_credentials"`
}

// NetworkInfoAddress is one entry of localaddresses.
type NetworkInfoAddress struct {
	Address string `json:"address"`
	Port    int64  `json:"port"`
	Score   int64  `json:"score"`
}

// ToModelWithWarnings converts the shared fields. Fee rates are read in the
// given unit.
func (n NetworkInfoBase) ToModelWithWarnings(warnings []string,
	unit schema.SizeUnit) (*model.GetNetworkInfo, error) {

	version, err := schema.ToUint32(n.Version, "version")
	if err != nil {
		return nil, err
	}

	protocolVersion, err := schema.ToUint32(
		n.ProtocolVersion, "protocolversion",
	)
	if err != nil {
		return nil, err
	}

	services, err := schema.ParseServiceFlags(
		n.LocalServices, "localservices",
	)
	if err != nil {
		return nil, err
	}

	connections, err := schema.ToUint32(n.Connections, "connections")
	if err != nil {
		return nil, err
	}

	relayFee, err := schema.ParseFeeRate(n.RelayFee, unit, "relayfee")
	if err != nil {
		return nil, err
	}

	incrementalFee, err := schema.ParseFeeRate(
		n.IncrementalFee, unit, "incrementalfee",
	)
	if err != nil {
		return nil, err
	}

	networks := make([]model.NetworkInfoNetwork, len(n.Networks))
	for i, net := range n.Networks {
		networks[i] = model.NetworkInfoNetwork{
			Name:      net.Name,
			Limited:   net.Limited,
			Reachable: net.Reachable,
			Proxy:     net.Proxy,

			ProxyRandomizeCredentials: net.
				ProxyRandomizeCredentials,
		}
	}

	addresses := make([]model.NetworkInfoAddress, len(n.LocalAddresses))
	for i, addr := range n.LocalAddresses {
		field := schema.IndexField("localaddresses", i)

		port, err := schema.ToUint32(addr.Port, field+".port")
		if err != nil {
			return nil, err
		}
		if port > math.MaxUint16 {
			return nil, &rpcerr.NumericError{
				Kind:  rpcerr.NumericOverflow,
				Field: field + ".port",
				Value: addr.Port,
			}
		}

		score, err := schema.ToUint32(addr.Score, field+".score")
		if err != nil {
			return nil, err
		}

		addresses[i] = model.NetworkInfoAddress{
			Address: addr.Address,
			Port:    uint16(port),
			Score:   score,
		}
	}

	return &model.GetNetworkInfo{
		Version:            version,
		Subversion:         n.Subversion,
		ProtocolVersion:    protocolVersion,
		LocalServices:      services,
		LocalServicesNames: []string{},
		LocalRelay:         n.LocalRelay,
		TimeOffset:         n.TimeOffset,
		Connections:        connections,
		ConnectionsIn:      fn.None[uint32](),
		ConnectionsOut:     fn.None[uint32](),
		NetworkActive:      n.NetworkActive,
		Networks:           networks,
		RelayFee:           relayFee,
		IncrementalFee:     incrementalFee,
		LocalAddresses:     addresses,
		Warnings:           warnings,
	}, nil
}

// GetNetworkInfo is the result of getnetworkinfo for v17 to v21.
type GetNetworkInfo struct {
	NetworkInfoBase

	Warnings string `json:"warnings"`
}

// ToModel converts the network info. Fee rates are BTC/kB.
func (g GetNetworkInfo) ToModel() (*model.GetNetworkInfo, error) {
	return g.ToModelWithWarnings(WarningList(g.Warnings), schema.Bytes)
}

// GetAddedNodeInfo is the result of getaddednodeinfo.
type GetAddedNodeInfo []AddedNodeInfo

// AddedNodeInfo is one added node.
type AddedNodeInfo struct {
	AddedNode string             `json:"addednode"`
	Connected bool               `json:"connected"`
	Addresses []AddedNodeAddress `json:"addresses"`
}

// AddedNodeAddress is one resolved address of an added node.
type AddedNodeAddress struct {
	Address   string `json:"address"`
	Connected string `json:"connected"`
}

// ToModel converts the node list.
func (g GetAddedNodeInfo) ToModel() ([]model.AddedNodeInfo, error) {
	nodes := make([]model.AddedNodeInfo, len(g))
	for i, node := range g {
		addresses := make([]model.AddedNodeAddress, len(node.Addresses))
		for j, addr := range node.Addresses {
			addresses[j] = model.AddedNodeAddress{
				Address:   addr.Address,
				Connected: addr.Connected,
			}
		}

		nodes[i] = model.AddedNodeInfo{
			AddedNode: node.AddedNode,
			Connected: node.Connected,
			Addresses: addresses,
		}
	}

	return nodes, nil
}

// GetNetTotals is the result of getnettotals.
type GetNetTotals struct {
	TotalBytesRecv int64        `json:"totalbytesrecv"`
	TotalBytesSent int64        `json:"totalbytessent"`
	TimeMillis     int64        `json:"timemillis"`
	UploadTarget   UploadTarget `json:"uploadtarget"`
}

// UploadTarget is the upload limit state.
type UploadTarget struct {
	Timeframe             int64 `json:"timeframe"`
	Target                int64 `json:"target"`
	TargetReached         bool  `json:"target_reached"`
	ServeHistoricalBlocks bool  `json:"serve_historical_blocks"`
	BytesLeftInCycle      int64 `json:"bytes_left_in_cycle"`
	TimeLeftInCycle       int64 `json:"time_left_in_cycle"`
}

// ToModel converts the totals.
func (g GetNetTotals) ToModel() (*model.GetNetTotals, error) {
	target := g.UploadTarget
	totals := model.GetNetTotals{
		TimeMillis: g.TimeMillis,
		UploadTarget: model.UploadTarget{
			TargetReached:         target.TargetReached,
			ServeHistoricalBlocks: target.ServeHistoricalBlocks,
		},
	}

	fields := []struct {
		field string
		value int64
		dest  *uint64
	}{
		{"totalbytesrecv", g.TotalBytesRecv, &totals.TotalBytesRecv},
		{"totalbytessent", g.TotalBytesSent, &totals.TotalBytesSent},
		{
			"uploadtarget.timeframe", g.UploadTarget.Timeframe,
			&totals.UploadTarget.Timeframe,
		},
		{
			"uploadtarget.target", g.UploadTarget.Target,
			&totals.UploadTarget.Target,
		},
		{
			"uploadtarget.bytes_left_in_cycle",
			g.UploadTarget.BytesLeftInCycle,
			&totals.UploadTarget.BytesLeftInCycle,
		},
		{
			"uploadtarget.time_left_in_cycle",
			g.UploadTarget.TimeLeftInCycle,
			&totals.UploadTarget.TimeLeftInCycle,
		},
	}
	for _, f := range fields {
		v, err := schema.ToUint64(f.value, f.field)
		if err != nil {
			return nil, err
		}
		*f.dest = v
	}

	return &totals, nil
}

// GetPeerInfo is the result of getpeerinfo.
type GetPeerInfo []PeerInfo

// PeerInfo is the stable subset of a peer entry. Unknown keys are ignored.
type PeerInfo struct {
	ID             int64    `json:"id"`
	Addr           string   `json:"addr"`
	AddrLocal      *string  `json:"addrlocal"`
	Services       string   `json:"services"`
	LastSend       int64    `json:"lastsend"`
	LastRecv       int64    `json:"lastrecv"`
	BytesSent      int64    `json:"bytessent"`
	BytesRecv      int64    `json:"bytesrecv"`
	ConnTime       int64    `json:"conntime"`
	PingTime       *float64 `json:"pingtime"`
	Version        int64    `json:"version"`
	SubVer         string   `json:"subver"`
	Inbound        bool     `json:"inbound"`
	StartingHeight *int64   `json:"startingheight"`
}

// ToModel converts one peer.
func (p PeerInfo) ToModel() (model.PeerInfo, error) {
	id, err := schema.ToUint64(p.ID, "id")
	if err != nil {
		return model.PeerInfo{}, err
	}

	services, err := schema.ParseServiceFlags(p.Services, "services")
	if err != nil {
		return model.PeerInfo{}, err
	}

	bytesSent, err := schema.ToUint64(p.BytesSent, "bytessent")
	if err != nil {
		return model.PeerInfo{}, err
	}

	bytesRecv, err := schema.ToUint64(p.BytesRecv, "bytesrecv")
	if err != nil {
		return model.PeerInfo{}, err
	}

	version, err := schema.ToUint32(p.Version, "version")
	if err != nil {
		return model.PeerInfo{}, err
	}

	return model.PeerInfo{
		ID:             id,
		Addr:           p.Addr,
		AddrLocal:      fn.OptionFromPtr(p.AddrLocal),
		Services:       services,
		LastSend:       p.LastSend,
		LastRecv:       p.LastRecv,
		BytesSent:      bytesSent,
		BytesRecv:      bytesRecv,
		ConnTime:       p.ConnTime,
		PingTime:       fn.OptionFromPtr(p.PingTime),
		Version:        version,
		SubVer:         p.SubVer,
		Inbound:        p.Inbound,
		StartingHeight: fn.OptionFromPtr(p.StartingHeight),
	}, nil
}

// ToModel converts every peer.
func (g GetPeerInfo) ToModel() ([]model.PeerInfo, error) {
	peers := make([]model.PeerInfo, len(g))
	for i, peer := range g {
		converted, err := peer.ToModel()
		if err != nil {
			return nil, rpcerr.NewConversionError(
				schema.IndexField("", i), err,
			)
		}
		peers[i] = converted
	}

	return peers, nil
}
