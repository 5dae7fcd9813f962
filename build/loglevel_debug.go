//go:build debug
// +build debug

package build

// LogLevel specifies the level of the stdout logger used by development
// builds.
const LogLevel = "debug"
