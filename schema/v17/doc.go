// Package v17 holds the wire types of Bitcoin Core v0.17. Later version
// packages embed or reuse these types wherever the wire shape is unchanged.
package v17
