package v22

import (
	"github.com/lightningnetwork/corerpc/model"
	v17 "github.com/lightningnetwork/corerpc/schema/v17"
)

// UnloadWallet is the result of unloadwallet from v22.
type UnloadWallet struct {
	Warning string `json:"warning"`
}

// ToModel converts the result.
func (u UnloadWallet) ToModel() (*model.UnloadWallet, error) {
	return &model.UnloadWallet{
		Warnings: v17.WarningList(u.Warning),
	}, nil
}
