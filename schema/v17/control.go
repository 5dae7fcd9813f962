package v17

import (
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/corerpc/schema"
)

// GetMemoryInfoStats is the result of getmemoryinfo in stats mode.
type GetMemoryInfoStats map[string]MemoryLocked

// MemoryLocked is the locked memory pool section.
type MemoryLocked struct {
	Used       int64 `json:"used"`
	Free       int64 `json:"free"`
	Total      int64 `json:"total"`
	Locked     int64 `json:"locked"`
	ChunksUsed int64 `json:"chunks_used"`
	ChunksFree int64 `json:"chunks_free"`
}

// ToModel converts the pool sizes.
func (m MemoryLocked) ToModel() (model.MemoryLocked, error) {
	var converted model.MemoryLocked
	fields := []struct {
		field string
		value int64
		dest  *uint64
	}{
		{"used", m.Used, &converted.Used},
		{"free", m.Free, &converted.Free},
		{"total", m.Total, &converted.Total},
		{"locked", m.Locked, &converted.Locked},
		{"chunks_used", m.ChunksUsed, &converted.ChunksUsed},
		{"chunks_free", m.ChunksFree, &converted.ChunksFree},
	}
	for _, f := range fields {
		v, err := schema.ToUint64(f.value, f.field)
		if err != nil {
			return model.MemoryLocked{}, err
		}
		*f.dest = v
	}

	return converted, nil
}

// ToModel converts every pool.
func (g GetMemoryInfoStats) ToModel() (model.GetMemoryInfoStats, error) {
	stats := make(model.GetMemoryInfoStats, len(g))
	for name, pool := range g {
		converted, err := pool.ToModel()
		if err != nil {
			return nil, rpcerr.NewConversionError(name, err)
		}
		stats[name] = converted
	}

	return stats, nil
}

// Logging is the result of logging.
type Logging map[string]bool

// ToModel returns the categories.
func (l Logging) ToModel() (model.Logging, error) {
	return model.Logging(l), nil
}

// Stop is the result of stop.
type Stop string

// ToModel returns the shutdown message.
func (s Stop) ToModel() (string, error) {
	return string(s), nil
}

// Uptime is the result of uptime, in seconds.
type Uptime int64

// ToModel returns the uptime in seconds.
func (u Uptime) ToModel() (uint64, error) {
	return schema.ToUint64(int64(u), "uptime")
}

// Generate is the result of generate and generatetoaddress.
type Generate []string

// ToModel parses the block hashes.
func (g Generate) ToModel() (model.Generate, error) {
	hashes, err := schema.ParseHashes(g, "")
	if err != nil {
		return nil, err
	}

	return model.Generate(hashes), nil
}
