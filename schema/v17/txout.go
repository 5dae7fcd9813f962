package v17

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/corerpc/schema"
)

// GetTxOut is the result of gettxout for an unspent output. The server
// returns null for a spent output, which never reaches this type.
type GetTxOut struct {
	BestBlock     string       `json:"bestblock"`
	Confirmations int64        `json:"confirmations"`
	Value         float64      `json:"value"`
	ScriptPubKey  ScriptPubKey `json:"scriptPubKey"`
	Coinbase      bool         `json:"coinbase"`

	params *chaincfg.Params
}

// ScriptPubKey is the decoded output script. Servers before v22 list the
// addresses, later ones report a single address.
type ScriptPubKey struct {
	Asm       string   `json:"asm"`
	Hex       string   `json:"hex"`
	ReqSigs   *int64   `json:"reqSigs"`
	Type      string   `json:"type"`
	Addresses []string `json:"addresses"`
	Address   *string  `json:"address"`
}

// SetParams sets the network addresses are decoded against.
func (g *GetTxOut) SetParams(params *chaincfg.Params) {
	g.params = params
}

// ToModel converts the output. An address that does not pay to the script
// is a conversion error.
func (g GetTxOut) ToModel() (*model.GetTxOut, error) {
	bestBlock, err := schema.ParseHash(g.BestBlock, "bestblock")
	if err != nil {
		return nil, err
	}

	value, err := schema.ParseAmount(g.Value, "value")
	if err != nil {
		return nil, err
	}

	script, err := schema.ParseScript(
		g.ScriptPubKey.Hex, "scriptPubKey.hex",
	)
	if err != nil {
		return nil, err
	}

	encoded := g.ScriptPubKey.Addresses
	if g.ScriptPubKey.Address != nil {
		encoded = []string{*g.ScriptPubKey.Address}
	}

	addresses := make([]model.Address, 0, len(encoded))
	for i, s := range encoded {
		addr, err := schema.ParseAddress(
			s, g.params, schema.IndexField("addresses", i),
		)
		if err != nil {
			return nil, rpcerr.NewConversionError(
				"scriptPubKey", err,
			)
		}
		addresses = append(addresses, addr)
	}

	class := schema.ScriptClass(script)
	if len(addresses) == 1 {
		class, err = schema.CheckAddressScript(
			script, addresses[0], "scriptPubKey",
		)
		if err != nil {
			return nil, err
		}
	}

	return &model.GetTxOut{
		BestBlock:     bestBlock,
		Confirmations: g.Confirmations,
		TxOut:         *wire.NewTxOut(int64(value), script),
		Class:         class,
		Addresses:     addresses,
		Coinbase:      g.Coinbase,
	}, nil
}
