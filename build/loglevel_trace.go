//go:build trace
// +build trace

package build

// LogLevel specifies the level of the stdout logger used by development
// builds.
const LogLevel = "trace"
