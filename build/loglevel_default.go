//go:build !trace && !debug
// +build !trace,!debug

package build

// LogLevel specifies the level of the stdout logger used by development
// builds.
const LogLevel = "info"
