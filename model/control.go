package model

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// MemoryLocked is the locked memory pool section of getmemoryinfo.
type MemoryLocked struct {
	Used       uint64
	Free       uint64
	Total      uint64
	Locked     uint64
	ChunksUsed uint64
	ChunksFree uint64
}

// GetMemoryInfoStats is the result of getmemoryinfo in stats mode.
type GetMemoryInfoStats map[string]MemoryLocked

// Logging maps each logging category to whether it is enabled.
type Logging map[string]bool

// Enabled returns the enabled categories.
func (l Logging) Enabled() []string {
	var enabled []string
	for category, on := range l {
		if on {
			enabled = append(enabled, category)
		}
	}

	return enabled
}

// Generate is the list of block hashes returned by generate and
// generatetoaddress.
type Generate []chainhash.Hash

func unixTime(secs uint32) time.Time {
	return time.Unix(int64(secs), 0)
}
