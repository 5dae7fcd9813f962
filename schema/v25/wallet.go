// Package v25 holds the wire types that changed in Bitcoin Core v25.
package v25

import (
	"github.com/lightningnetwork/corerpc/model"
)

// CreateWallet is the result of createwallet from v25.
type CreateWallet struct {
	Name     string   `json:"name"`
	Warnings []string `json:"warnings"`
}

// ToModel converts the result. Absent warnings become an empty list.
func (c CreateWallet) ToModel() (*model.CreateWallet, error) {
	return &model.CreateWallet{
		Name:     c.Name,
		Warnings: warningsOrEmpty(c.Warnings),
	}, nil
}

// LoadWallet is the result of loadwallet from v25.
type LoadWallet struct {
	Name     string   `json:"name"`
	Warnings []string `json:"warnings"`
}

// ToModel converts the result.
func (l LoadWallet) ToModel() (*model.LoadWallet, error) {
	return &model.LoadWallet{
		Name:     l.Name,
		Warnings: warningsOrEmpty(l.Warnings),
	}, nil
}

func warningsOrEmpty(warnings []string) []string {
	if warnings == nil {
		return []string{}
	}

	return warnings
}
