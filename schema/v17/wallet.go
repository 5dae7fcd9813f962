package v17

import (
	"encoding/json"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/corerpc/schema"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// CreateWallet is the result of createwallet before v25.
type CreateWallet struct {
	Name    string `json:"name"`
	Warning string `json:"warning"`
}

// ToModel converts the result. An empty warning means none.
func (c CreateWallet) ToModel() (*model.CreateWallet, error) {
	return &model.CreateWallet{
		Name:     c.Name,
		Warnings: WarningList(c.Warning),
	}, nil
}

// LoadWallet is the result of loadwallet before v25.
type LoadWallet struct {
	Name    string `json:"name"`
	Warning string `json:"warning"`
}

// ToModel converts the result.
func (l LoadWallet) ToModel() (*model.LoadWallet, error) {
	return &model.LoadWallet{
		Name:     l.Name,
		Warnings: WarningList(l.Warning),
	}, nil
}

// UnloadWallet is the null result of unloadwallet before v22.
type UnloadWallet struct{}

// ToModel returns an empty result.
func (UnloadWallet) ToModel() (*model.UnloadWallet, error) {
	return &model.UnloadWallet{Warnings: []string{}}, nil
}

// GetNewAddress is the result of getnewaddress, a bare address string.
type GetNewAddress struct {
	Address string

	params *chaincfg.Params
}

// UnmarshalJSON reads the address string.
func (g *GetNewAddress) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &g.Address)
}

// SetParams sets the network the address is decoded against.
func (g *GetNewAddress) SetParams(params *chaincfg.Params) {
	g.params = params
}

// ToModel decodes the address.
func (g GetNewAddress) ToModel() (model.Address, error) {
	return schema.ParseAddress(g.Address, g.params, "address")
}

// GetBalance is the result of getbalance in BTC.
type GetBalance float64

// ToModel converts the balance.
func (g GetBalance) ToModel() (btcutil.Amount, error) {
	return schema.ParseAmount(float64(g), "balance")
}

// SendToAddress is the result of sendtoaddress, the txid.
type SendToAddress string

// ToModel parses the txid.
func (s SendToAddress) ToModel() (*model.SendToAddress, error) {
	txid, err := schema.ParseHash(string(s), "txid")
	if err != nil {
		return nil, err
	}

	return &model.SendToAddress{Txid: txid}, nil
}

// GetTransaction is the result of gettransaction.
type GetTransaction struct {
	Amount            float64             `json:"amount"`
	Fee               *float64            `json:"fee"`
	Confirmations     int64               `json:"confirmations"`
	BlockHash         *string             `json:"blockhash"`
	Txid              string              `json:"txid"`
	Time              int64               `json:"time"`
	TimeReceived      int64               `json:"timereceived"`
	Bip125Replaceable string              `json:"bip125-replaceable"`
	Details           []TransactionDetail `json:"details"`
	Hex               string              `json:"hex"`

	params *chaincfg.Params
}

// TransactionDetail is one entry of details.
type TransactionDetail struct {
	Address   *string  `json:"address"`
	Category  string   `json:"category"`
	Amount    float64  `json:"amount"`
	Label     *string  `json:"label"`
	Vout      int64    `json:"vout"`
	Fee       *float64 `json:"fee"`
	Abandoned *bool    `json:"abandoned"`
}

// SetParams sets the network detail addresses are decoded against.
func (g *GetTransaction) SetParams(params *chaincfg.Params) {
	g.params = params
}

// ToModel converts a detail entry.
func (d TransactionDetail) ToModel(
	params *chaincfg.Params) (model.TransactionDetail, error) {

	addr, err := schema.ParseOptionalAddress(d.Address, params, "address")
	if err != nil {
		return model.TransactionDetail{}, err
	}

	category, err := model.ParseTransactionCategory(d.Category)
	if err != nil {
		return model.TransactionDetail{}, rpcerr.NewConversionError(
			"category", err,
		)
	}

	amount, err := schema.ParseAmount(d.Amount, "amount")
	if err != nil {
		return model.TransactionDetail{}, err
	}

	vout, err := schema.ToUint32(d.Vout, "vout")
	if err != nil {
		return model.TransactionDetail{}, err
	}

	fee, err := schema.ParseOptionalAmount(d.Fee, "fee")
	if err != nil {
		return model.TransactionDetail{}, err
	}

	return model.TransactionDetail{
		Address:   addr,
		Category:  category,
		Amount:    amount,
		Label:     fn.OptionFromPtr(d.Label),
		Vout:      vout,
		Fee:       fee,
		Abandoned: fn.OptionFromPtr(d.Abandoned),
	}, nil
}

// ToModel converts the transaction and decodes its hex.
func (g GetTransaction) ToModel() (*model.GetTransaction, error) {
	amount, err := schema.ParseAmount(g.Amount, "amount")
	if err != nil {
		return nil, err
	}

	fee, err := schema.ParseOptionalAmount(g.Fee, "fee")
	if err != nil {
		return nil, err
	}

	blockHash, err := schema.ParseOptionalHash(g.BlockHash, "blockhash")
	if err != nil {
		return nil, err
	}

	txid, err := schema.ParseHash(g.Txid, "txid")
	if err != nil {
		return nil, err
	}

	details := make([]model.TransactionDetail, len(g.Details))
	for i, detail := range g.Details {
		converted, err := detail.ToModel(g.params)
		if err != nil {
			return nil, rpcerr.NewConversionError(
				schema.IndexField("details", i), err,
			)
		}
		details[i] = converted
	}

	tx, err := schema.DecodeTx(g.Hex, "hex")
	if err != nil {
		return nil, err
	}

	return &model.GetTransaction{
		Amount:            amount,
		Fee:               fee,
		Confirmations:     g.Confirmations,
		Txid:              txid,
		BlockHash:         blockHash,
		Time:              g.Time,
		TimeReceived:      g.TimeReceived,
		Bip125Replaceable: g.Bip125Replaceable,
		Details:           details,
		Tx:                tx,
	}, nil
}
