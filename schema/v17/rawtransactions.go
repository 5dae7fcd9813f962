package v17

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/corerpc/schema"
)

// SendRawTransaction is the result of sendrawtransaction, the txid.
type SendRawTransaction string

// ToModel parses the txid.
func (s SendRawTransaction) ToModel() (chainhash.Hash, error) {
	return schema.ParseHash(string(s), "txid")
}
