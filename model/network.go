package model

import (
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// GetNetworkInfo is the result of getnetworkinfo.
type GetNetworkInfo struct {
	// Version is the server version, MAJOR*10000 + MINOR*100 + PATCH.
	Version         uint32
	Subversion      string
	ProtocolVersion uint32
	LocalServices   wire.ServiceFlag

	// LocalServicesNames is empty for servers before v22.
	LocalServicesNames []string

	LocalRelay  bool
	TimeOffset  int64
	Connections uint32

	// ConnectionsIn and ConnectionsOut are only reported from v22.
	ConnectionsIn  fn.Option[uint32]
	ConnectionsOut fn.Option[uint32]

	NetworkActive  bool
	Networks       []NetworkInfoNetwork
	RelayFee       SatPerKWeight
	IncrementalFee SatPerKWeight
	LocalAddresses []NetworkInfoAddress
	Warnings       []string
}

// NetworkInfoNetwork describes one reachable network.
type NetworkInfoNetwork struct {
	Name                      string
	Limited                   bool
	Reachable                 bool
	Proxy                     string
	ProxyRandomizeCredentials bool
}

// NetworkInfoAddress is a local address the server advertises.
type NetworkInfoAddress struct {
	Address string
	Port    uint16
	Score   uint32
}

// AddedNodeInfo is one entry of getaddednodeinfo.
type AddedNodeInfo struct {
	AddedNode string
	Connected bool
	Addresses []AddedNodeAddress
}

// AddedNodeAddress is a resolved address of an added node.
type AddedNodeAddress struct {
	Address string

	// Connected is "inbound" or "outbound".
	Connected string
}

// GetNetTotals is the result of getnettotals.
type GetNetTotals struct {
	TotalBytesRecv uint64
	TotalBytesSent uint64
	TimeMillis     int64
	UploadTarget   UploadTarget
}

// UploadTarget is the upload limit state of getnettotals.
type UploadTarget struct {
	Timeframe             uint64
	Target                uint64
	TargetReached         bool
	ServeHistoricalBlocks bool
	BytesLeftInCycle      uint64
	TimeLeftInCycle       uint64
}

// PeerInfo is the stable subset of a getpeerinfo entry.
type PeerInfo struct {
	ID             uint64
	Addr           string
	AddrLocal      fn.Option[string]
	Services       wire.ServiceFlag
	LastSend       int64
	LastRecv       int64
	BytesSent      uint64
	BytesRecv      uint64
	ConnTime       int64
	PingTime       fn.Option[float64]
	Version        uint32
	SubVer         string
	Inbound        bool

	// StartingHeight is omitted by v28 and later unless deprecated fields
	// are enabled.
	StartingHeight fn.Option[int64]
}
