package v17

import (
	"encoding/json"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/corerpc/schema"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// GetBestBlockHash is the result of getbestblockhash.
type GetBestBlockHash string

// ToModel parses the hash.
func (g GetBestBlockHash) ToModel() (chainhash.Hash, error) {
	return schema.ParseHash(string(g), "bestblockhash")
}

// GetBlockHash is the result of getblockhash.
type GetBlockHash string

// ToModel parses the hash.
func (g GetBlockHash) ToModel() (chainhash.Hash, error) {
	return schema.ParseHash(string(g), "blockhash")
}

// GetBlockCount is the result of getblockcount.
type GetBlockCount uint64

// ToModel returns the count.
func (g GetBlockCount) ToModel() (uint64, error) {
	return uint64(g), nil
}

// GetDifficulty is the result of getdifficulty.
type GetDifficulty float64

// ToModel returns the difficulty.
func (g GetDifficulty) ToModel() (float64, error) {
	return float64(g), nil
}

// GetBlockVerboseZero is the result of getblock with verbosity 0, the hex
// serialized block.
type GetBlockVerboseZero string

// ToModel decodes the block.
func (g GetBlockVerboseZero) ToModel() (*wire.MsgBlock, error) {
	return schema.DecodeBlock(string(g), "block")
}

// GetBlockVerboseOne is the result of getblock with verbosity 1.
type GetBlockVerboseOne struct {
	Hash              string   `json:"hash"`
	Confirmations     int64    `json:"confirmations"`
	Size              int64    `json:"size"`
	StrippedSize      *int64   `json:"strippedsize"`
	Weight            uint64   `json:"weight"`
	Height            int64    `json:"height"`
	Version           int32    `json:"version"`
	VersionHex        string   `json:"versionHex"`
	MerkleRoot        string   `json:"merkleroot"`
	Tx                []string `json:"tx"`
	Time              int64    `json:"time"`
	MedianTime        *int64   `json:"mediantime"`
	Nonce             int64    `json:"nonce"`
	Bits              string   `json:"bits"`
	Difficulty        float64  `json:"difficulty"`
	ChainWork         string   `json:"chainwork"`
	NTx               int64    `json:"nTx"`
	PreviousBlockHash *string  `json:"previousblockhash"`
	NextBlockHash     *string  `json:"nextblockhash"`
}

// ToModel converts the verbose block. Confirmations stays signed since -1
// marks a block outside the main chain.
func (g GetBlockVerboseOne) ToModel() (*model.GetBlockVerbose, error) {
	hash, err := schema.ParseHash(g.Hash, "hash")
	if err != nil {
		return nil, err
	}

	size, err := schema.ToUint32(g.Size, "size")
	if err != nil {
		return nil, err
	}

	strippedSize, err := schema.OptionalUint32(
		g.StrippedSize, "strippedsize",
	)
	if err != nil {
		return nil, err
	}

	height, err := schema.ToUint32(g.Height, "height")
	if err != nil {
		return nil, err
	}

	merkleRoot, err := schema.ParseHash(g.MerkleRoot, "merkleroot")
	if err != nil {
		return nil, err
	}

	txids, err := schema.ParseHashes(g.Tx, "tx")
	if err != nil {
		return nil, err
	}

	blockTime, err := schema.ToUint32(g.Time, "time")
	if err != nil {
		return nil, err
	}

	medianTime, err := schema.OptionalUint32(g.MedianTime, "mediantime")
	if err != nil {
		return nil, err
	}

	nonce, err := schema.ToUint32(g.Nonce, "nonce")
	if err != nil {
		return nil, err
	}

	bits, err := schema.ParseCompact(g.Bits, "bits")
	if err != nil {
		return nil, err
	}

	chainWork, err := schema.ParseWork(g.ChainWork, "chainwork")
	if err != nil {
		return nil, err
	}

	nTx, err := schema.ToUint32(g.NTx, "nTx")
	if err != nil {
		return nil, err
	}

	prev, err := schema.ParseOptionalHash(
		g.PreviousBlockHash, "previousblockhash",
	)
	if err != nil {
		return nil, err
	}

	next, err := schema.ParseOptionalHash(g.NextBlockHash, "nextblockhash")
	if err != nil {
		return nil, err
	}

	return &model.GetBlockVerbose{
		Hash:              hash,
		Confirmations:     g.Confirmations,
		Size:              size,
		StrippedSize:      strippedSize,
		Weight:            g.Weight,
		Height:            height,
		Version:           g.Version,
		MerkleRoot:        merkleRoot,
		Tx:                txids,
		Time:              blockTime,
		MedianTime:        medianTime,
		Nonce:             nonce,
		Bits:              bits,
		Difficulty:        g.Difficulty,
		ChainWork:         chainWork,
		NTx:               nTx,
		PreviousBlockHash: prev,
		NextBlockHash:     next,
	}, nil
}

// BlockchainInfoBase holds the getblockchaininfo fields every version
// reports the same way.
type BlockchainInfoBase struct {
	Chain                string  `json:"chain"`
	Blocks               int64   `json:"blocks"`
	Headers              int64   `json:"headers"`
	BestBlockHash        string  `json:"bestblockhash"`
	Difficulty           float64 `json:"difficulty"`
	MedianTime           int64   `json:"mediantime"`
	VerificationProgress float64 `json:"verificationprogress"`
	InitialBlockDownload bool    `json:"initialblockdownload"`
	ChainWork            string  `json:"chainwork"`
	SizeOnDisk           uint64  `json:"size_on_disk"`
	Pruned               bool    `json:"pruned"`
	PruneHeight          *int64  `json:"pruneheight"`
	AutomaticPruning     *bool   `json:"automatic_pruning"`
	PruneTargetSize      *int64  `json:"prune_target_size"`
}

// ToModelWithWarnings converts the shared fields. Each version passes its
// warnings already normalized to a list.
func (b BlockchainInfoBase) ToModelWithWarnings(
	warnings []string) (*model.GetBlockchainInfo, error) {

	chain, err := schema.ParseNetwork(b.Chain, "chain")
	if err != nil {
		return nil, err
	}

	blocks, err := schema.ToUint32(b.Blocks, "blocks")
	if err != nil {
		return nil, err
	}

	headers, err := schema.ToUint32(b.Headers, "headers")
	if err != nil {
		return nil, err
	}

	bestBlockHash, err := schema.ParseHash(b.BestBlockHash, "bestblockhash")
	if err != nil {
		return nil, err
	}

	medianTime, err := schema.ToUint32(b.MedianTime, "mediantime")
	if err != nil {
		return nil, err
	}

	chainWork, err := schema.ParseWork(b.ChainWork, "chainwork")
	if err != nil {
		return nil, err
	}

	pruneHeight, err := schema.OptionalUint32(b.PruneHeight, "pruneheight")
	if err != nil {
		return nil, err
	}

	pruneTargetSize, err := schema.OptionalUint64(
		b.PruneTargetSize, "prune_target_size",
	)
	if err != nil {
		return nil, err
	}

	return &model.GetBlockchainInfo{
		Chain:                chain,
		Blocks:               blocks,
		Headers:              headers,
		BestBlockHash:        bestBlockHash,
		Difficulty:           b.Difficulty,
		MedianTime:           medianTime,
		VerificationProgress: b.VerificationProgress,
		InitialBlockDownload: b.InitialBlockDownload,
		ChainWork:            chainWork,
		SizeOnDisk:           b.SizeOnDisk,
		Pruned:               b.Pruned,
		PruneHeight:          pruneHeight,
		AutomaticPruning:     fn.OptionFromPtr(b.AutomaticPruning),
		PruneTargetSize:      pruneTargetSize,
		Warnings:             warnings,
	}, nil
}

// WarningList turns the single warnings string of older servers into a
// list. An empty string means no warnings.
func WarningList(warnings string) []string {
	if warnings == "" {
		return []string{}
	}

	return []string{warnings}
}

// GetBlockchainInfo is the result of getblockchaininfo for v17 and v18.
type GetBlockchainInfo struct {
	BlockchainInfoBase

	// Softforks is the legacy list of buried deployments.
	Softforks []Softfork `json:"softforks"`

	// Bip9Softforks maps a deployment name to its version bits state.
	Bip9Softforks map[string]Bip9Softfork `json:"bip9_softforks"`

	Warnings string `json:"warnings"`
}

// Softfork is an entry of the legacy softforks list.
type Softfork struct {
	ID      string         `json:"id"`
	Version int64          `json:"version"`
	Reject  SoftforkReject `json:"reject"`
}

// SoftforkReject tells whether blocks below the softfork version are
// rejected.
type SoftforkReject struct {
	Status bool `json:"status"`
}

// Bip9Softfork is an entry of the bip9_softforks map.
type Bip9Softfork struct {
	Status     string             `json:"status"`
	Bit        *uint8             `json:"bit"`
	StartTime  int64              `json:"startTime"`
	Timeout    int64              `json:"timeout"`
	Since      int64              `json:"since"`
	Statistics *Bip9SoftforkStats `json:"statistics"`
}

// Bip9SoftforkStats is the signalling progress of a started deployment.
type Bip9SoftforkStats struct {
	Period    int64  `json:"period"`
	Threshold *int64 `json:"threshold"`
	Elapsed   int64  `json:"elapsed"`
	Count     int64  `json:"count"`
	Possible  *bool  `json:"possible"`
}

// ToModel converts the statistics.
func (s Bip9SoftforkStats) ToModel() (model.Bip9SoftforkStatistics, error) {
	period, err := schema.ToUint32(s.Period, "period")
	if err != nil {
		return model.Bip9SoftforkStatistics{}, err
	}

	threshold, err := schema.OptionalUint32(s.Threshold, "threshold")
	if err != nil {
		return model.Bip9SoftforkStatistics{}, err
	}

	elapsed, err := schema.ToUint32(s.Elapsed, "elapsed")
	if err != nil {
		return model.Bip9SoftforkStatistics{}, err
	}

	count, err := schema.ToUint32(s.Count, "count")
	if err != nil {
		return model.Bip9SoftforkStatistics{}, err
	}

	return model.Bip9SoftforkStatistics{
		Period:    period,
		Threshold: threshold,
		Elapsed:   elapsed,
		Count:     count,
		Possible:  fn.OptionFromPtr(s.Possible),
	}, nil
}

// ConvertBip9 converts the version bits fields shared by the v17 map and the
// v19 nested object.
func ConvertBip9(status string, bit *uint8, startTime, timeout,
	since int64,
	stats *Bip9SoftforkStats) (model.Bip9SoftforkInfo, error) {

	parsedStatus, err := model.ParseBip9SoftforkStatus(status)
	if err != nil {
		return model.Bip9SoftforkInfo{}, rpcerr.NewConversionError(
			"status", err,
		)
	}

	sinceHeight, err := schema.ToUint32(since, "since")
	if err != nil {
		return model.Bip9SoftforkInfo{}, err
	}

	statistics := fn.None[model.Bip9SoftforkStatistics]()
	if stats != nil {
		converted, err := stats.ToModel()
		if err != nil {
			return model.Bip9SoftforkInfo{},
				rpcerr.NewConversionError("statistics", err)
		}
		statistics = fn.Some(converted)
	}

	return model.Bip9SoftforkInfo{
		Status:     parsedStatus,
		Bit:        fn.OptionFromPtr(bit),
		StartTime:  startTime,
		Timeout:    timeout,
		Since:      sinceHeight,
		Statistics: statistics,
	}, nil
}

// ToModel converts everything but the softforks.
func (g GetBlockchainInfo) ToModel() (*model.GetBlockchainInfo, error) {
	return g.ToModelWithWarnings(WarningList(g.Warnings))
}

// SoftforksToModel merges the legacy list and the bip9 map. Legacy entries
// become buried softforks named after their id.
func (g GetBlockchainInfo) SoftforksToModel() (model.Softforks, error) {
	softforks := make(model.Softforks, len(g.Softforks)+
		len(g.Bip9Softforks))

	for _, fork := range g.Softforks {
		softforks[fork.ID] = model.Softfork{
			Type:   model.SoftforkBuried,
			Bip9:   fn.None[model.Bip9SoftforkInfo](),
			Height: fn.None[uint32](),
			Active: fork.Reject.Status,
		}
	}

	for name, fork := range g.Bip9Softforks {
		info, err := ConvertBip9(
			fork.Status, fork.Bit, fork.StartTime, fork.Timeout,
			fork.Since, fork.Statistics,
		)
		if err != nil {
			return nil, rpcerr.NewConversionError(
				"bip9_softforks."+name, err,
			)
		}

		softforks[name] = model.Softfork{
			Type:   model.SoftforkBip9,
			Bip9:   fn.Some(info),
			Height: fn.None[uint32](),
			Active: info.Status == model.Bip9Active,
		}
	}

	return softforks, nil
}

// GetBlockHeader is the result of getblockheader with verbose false.
type GetBlockHeader string

// ToModel decodes the header.
func (g GetBlockHeader) ToModel() (*wire.BlockHeader, error) {
	return schema.DecodeHeader(string(g), "header")
}

// GetBlockHeaderVerbose is the result of getblockheader with verbose set.
type GetBlockHeaderVerbose struct {
	Hash              string  `json:"hash"`
	Confirmations     int64   `json:"confirmations"`
	Height            int64   `json:"height"`
	Version           int32   `json:"version"`
	VersionHex        string  `json:"versionHex"`
	MerkleRoot        string  `json:"merkleroot"`
	Time              int64   `json:"time"`
	MedianTime        int64   `json:"mediantime"`
	Nonce             int64   `json:"nonce"`
	Bits              string  `json:"bits"`
	Difficulty        float64 `json:"difficulty"`
	ChainWork         string  `json:"chainwork"`
	NTx               int64   `json:"nTx"`
	PreviousBlockHash *string `json:"previousblockhash"`
	NextBlockHash     *string `json:"nextblockhash"`
}

// ToModel converts the verbose header.
func (g GetBlockHeaderVerbose) ToModel() (*model.GetBlockHeaderVerbose,
	error) {

	hash, err := schema.ParseHash(g.Hash, "hash")
	if err != nil {
		return nil, err
	}

	height, err := schema.ToUint32(g.Height, "height")
	if err != nil {
		return nil, err
	}

	merkleRoot, err := schema.ParseHash(g.MerkleRoot, "merkleroot")
	if err != nil {
		return nil, err
	}

	headerTime, err := schema.ToUint32(g.Time, "time")
	if err != nil {
		return nil, err
	}

	medianTime, err := schema.ToUint32(g.MedianTime, "mediantime")
	if err != nil {
		return nil, err
	}

	nonce, err := schema.ToUint32(g.Nonce, "nonce")
	if err != nil {
		return nil, err
	}

	bits, err := schema.ParseCompact(g.Bits, "bits")
	if err != nil {
		return nil, err
	}

	chainWork, err := schema.ParseWork(g.ChainWork, "chainwork")
	if err != nil {
		return nil, err
	}

	nTx, err := schema.ToUint32(g.NTx, "nTx")
	if err != nil {
		return nil, err
	}

	prev, err := schema.ParseOptionalHash(
		g.PreviousBlockHash, "previousblockhash",
	)
	if err != nil {
		return nil, err
	}

	next, err := schema.ParseOptionalHash(g.NextBlockHash, "nextblockhash")
	if err != nil {
		return nil, err
	}

	return &model.GetBlockHeaderVerbose{
		Hash:              hash,
		Confirmations:     g.Confirmations,
		Height:            height,
		Version:           g.Version,
		MerkleRoot:        merkleRoot,
		Time:              headerTime,
		MedianTime:        medianTime,
		Nonce:             nonce,
		Bits:              bits,
		Difficulty:        g.Difficulty,
		ChainWork:         chainWork,
		NTx:               nTx,
		PreviousBlockHash: prev,
		NextBlockHash:     next,
	}, nil
}

// GetBlockStats is the result of getblockstats. Amounts are in satoshis and
// fee rates in sat/vB.
type GetBlockStats struct {
	AverageFee         int64    `json:"avgfee"`
	AverageFeeRate     int64    `json:"avgfeerate"`
	AverageTxSize      int64    `json:"avgtxsize"`
	BlockHash          string   `json:"blockhash"`
	FeeRatePercentiles [5]int64 `json:"feerate_percentiles"`
	Height             int64    `json:"height"`
	Inputs             int64    `json:"ins"`
	MaxFee             int64    `json:"maxfee"`
	MaxFeeRate         int64    `json:"maxfeerate"`
	MaxTxSize          int64    `json:"maxtxsize"`
	MedianFee          int64    `json:"medianfee"`
	MedianTime         int64    `json:"mediantime"`
	MedianTxSize       int64    `json:"mediantxsize"`
	MinimumFee         int64    `json:"minfee"`
	MinimumFeeRate     int64    `json:"minfeerate"`
	MinimumTxSize      int64    `json:"mintxsize"`
	Outputs            int64    `json:"outs"`
	Subsidy            int64    `json:"subsidy"`
	SegwitTotalSize    int64    `json:"swtotal_size"`
	SegwitTotalWeight  int64    `json:"swtotal_weight"`
	SegwitTxs          int64    `json:"swtxs"`
	Time               int64    `json:"time"`
	TotalOut           int64    `json:"total_out"`
	TotalSize          int64    `json:"total_size"`
	TotalWeight        int64    `json:"total_weight"`
	TotalFee           int64    `json:"totalfee"`
	Txs                int64    `json:"txs"`
	UtxoIncrease       int32    `json:"utxo_increase"`
	UtxoSizeIncrease   int32    `json:"utxo_size_inc"`
}

// ToModel converts the block statistics.
func (g GetBlockStats) ToModel() (*model.GetBlockStats, error) {
	blockHash, err := schema.ParseHash(g.BlockHash, "blockhash")
	if err != nil {
		return nil, err
	}

	var stats model.GetBlockStats
	stats.BlockHash = blockHash
	stats.UtxoIncrease = g.UtxoIncrease
	stats.UtxoSizeIncrease = g.UtxoSizeIncrease

	narrow := []struct {
		field string
		value int64
		dest  *uint32
	}{
		{"avgtxsize", g.AverageTxSize, &stats.AverageTxSize},
		{"height", g.Height, &stats.Height},
		{"ins", g.Inputs, &stats.Inputs},
		{"maxtxsize", g.MaxTxSize, &stats.MaxTxSize},
		{"mediantime", g.MedianTime, &stats.MedianTime},
		{"mediantxsize", g.MedianTxSize, &stats.MedianTxSize},
		{"mintxsize", g.MinimumTxSize, &stats.MinimumTxSize},
		{"outs", g.Outputs, &stats.Outputs},
		{"swtotal_size", g.SegwitTotalSize, &stats.SegwitTotalSize},
		{"swtxs", g.SegwitTxs, &stats.SegwitTxs},
		{"time", g.Time, &stats.Time},
		{"total_size", g.TotalSize, &stats.TotalSize},
		{"txs", g.Txs, &stats.Txs},
	}
	for _, n := range narrow {
		v, err := schema.ToUint32(n.value, n.field)
		if err != nil {
			return nil, err
		}
		*n.dest = v
	}

	weights := []struct {
		field string
		value int64
		dest  *uint64
	}{
		{
			"swtotal_weight", g.SegwitTotalWeight,
			&stats.SegwitTotalWeight,
		},
		{"total_weight", g.TotalWeight, &stats.TotalWeight},
	}
	for _, w := range weights {
		v, err := schema.ToUint64(w.value, w.field)
		if err != nil {
			return nil, err
		}
		*w.dest = v
	}

	amounts := []struct {
		field string
		value int64
		dest  *model.SatPerKWeight
	}{
		{"avgfeerate", g.AverageFeeRate, &stats.AverageFeeRate},
		{"maxfeerate", g.MaxFeeRate, &stats.MaxFeeRate},
		{"minfeerate", g.MinimumFeeRate, &stats.MinimumFeeRate},
	}
	for _, a := range amounts {
		rate, err := schema.FeeRateFromSatPerVByte(a.value, a.field)
		if err != nil {
			return nil, err
		}
		*a.dest = rate
	}

	for i, v := range g.FeeRatePercentiles {
		rate, err := schema.FeeRateFromSatPerVByte(
			v, schema.IndexField("feerate_percentiles", i),
		)
		if err != nil {
			return nil, err
		}
		stats.FeeRatePercentiles[i] = rate
	}

	fees := []struct {
		field string
		value int64
		dest  *int64
	}{
		{"avgfee", g.AverageFee, (*int64)(&stats.AverageFee)},
		{"maxfee", g.MaxFee, (*int64)(&stats.MaxFee)},
		{"medianfee", g.MedianFee, (*int64)(&stats.MedianFee)},
		{"minfee", g.MinimumFee, (*int64)(&stats.MinimumFee)},
		{"subsidy", g.Subsidy, (*int64)(&stats.Subsidy)},
		{"total_out", g.TotalOut, (*int64)(&stats.TotalOut)},
		{"totalfee", g.TotalFee, (*int64)(&stats.TotalFee)},
	}
	for _, f := range fees {
		if _, err := schema.ToUint64(f.value, f.field); err != nil {
			return nil, err
		}
		*f.dest = f.value
	}

	return &stats, nil
}

// GetChainTips is the result of getchaintips.
type GetChainTips []ChainTip

// ChainTip is one entry of getchaintips.
type ChainTip struct {
	Height       int64  `json:"height"`
	Hash         string `json:"hash"`
	BranchLength int64  `json:"branchlen"`
	Status       string `json:"status"`
}

// ToModel converts the tip.
func (c ChainTip) ToModel() (model.ChainTip, error) {
	height, err := schema.ToUint32(c.Height, "height")
	if err != nil {
		return model.ChainTip{}, err
	}

	hash, err := schema.ParseHash(c.Hash, "hash")
	if err != nil {
		return model.ChainTip{}, err
	}

	branchLength, err := schema.ToUint32(c.BranchLength, "branchlen")
	if err != nil {
		return model.ChainTip{}, err
	}

	status, err := model.ParseChainTipsStatus(c.Status)
	if err != nil {
		return model.ChainTip{}, rpcerr.NewConversionError(
			"status", err,
		)
	}

	return model.ChainTip{
		Height:       height,
		Hash:         hash,
		BranchLength: branchLength,
		Status:       status,
	}, nil
}

// ToModel converts every tip, stopping at the first failure.
func (g GetChainTips) ToModel() ([]model.ChainTip, error) {
	tips := make([]model.ChainTip, len(g))
	for i, tip := range g {
		converted, err := tip.ToModel()
		if err != nil {
			return nil, rpcerr.NewConversionError(
				schema.IndexField("", i), err,
			)
		}
		tips[i] = converted
	}

	return tips, nil
}

// GetChainTxStats is the result of getchaintxstats.
type GetChainTxStats struct {
	Time                 int64    `json:"time"`
	TxCount              int64    `json:"txcount"`
	WindowFinalBlockHash string   `json:"window_final_block_hash"`
	WindowBlockCount     int64    `json:"window_block_count"`
	WindowTxCount        *int64   `json:"window_tx_count"`
	WindowInterval       *int64   `json:"window_interval"`
	TxRate               *float64 `json:"txrate"`
}

// ToModel converts the statistics.
func (g GetChainTxStats) ToModel() (*model.GetChainTxStats, error) {
	statsTime, err := schema.ToUint32(g.Time, "time")
	if err != nil {
		return nil, err
	}

	txCount, err := schema.ToUint64(g.TxCount, "txcount")
	if err != nil {
		return nil, err
	}

	finalHash, err := schema.ParseHash(
		g.WindowFinalBlockHash, "window_final_block_hash",
	)
	if err != nil {
		return nil, err
	}

	blockCount, err := schema.ToUint32(
		g.WindowBlockCount, "window_block_count",
	)
	if err != nil {
		return nil, err
	}

	windowTxCount, err := schema.OptionalUint32(
		g.WindowTxCount, "window_tx_count",
	)
	if err != nil {
		return nil, err
	}

	windowInterval, err := schema.OptionalUint32(
		g.WindowInterval, "window_interval",
	)
	if err != nil {
		return nil, err
	}

	return &model.GetChainTxStats{
		Time:                 statsTime,
		TxCount:              txCount,
		WindowFinalBlockHash: finalHash,
		WindowBlockCount:     blockCount,
		WindowTxCount:        windowTxCount,
		WindowInterval:       windowInterval,
		TxRate:               fn.OptionFromPtr(g.TxRate),
	}, nil
}

// GetMempoolAncestors is the result of getmempoolancestors without verbose.
type GetMempoolAncestors []string

// ToModel parses the txids.
func (g GetMempoolAncestors) ToModel() ([]chainhash.Hash, error) {
	return schema.ParseHashes(g, "")
}

// GetMempoolAncestorsVerbose is the result of getmempoolancestors with
// verbose set, keyed by txid.
type GetMempoolAncestorsVerbose map[string]json.RawMessage

// ToModel parses the txid keys and keeps the entries undecoded.
func (g GetMempoolAncestorsVerbose) ToModel() (model.MempoolAncestorsVerbose,
	error) {

	ancestors := make(model.MempoolAncestorsVerbose, len(g))
	for txid, entry := range g {
		hash, err := schema.ParseHash(txid, txid)
		if err != nil {
			return nil, err
		}
		ancestors[hash] = entry
	}

	return ancestors, nil
}
