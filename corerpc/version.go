package corerpc

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/corerpc/schema"
	"github.com/lightningnetwork/corerpc/transport"
)

// Version names the bitcoind release line a client speaks. The value is the
// major release number.
type Version uint8

const (
	V17 Version = 17
	V18 Version = 18
	V19 Version = 19
	V20 Version = 20
	V21 Version = 21
	V22 Version = 22
	V23 Version = 23
	V24 Version = 24
	V25 Version = 25
	V26 Version = 26
	V27 Version = 27
	V28 Version = 28

	// MinVersion and MaxVersion bound the supported release lines.
	MinVersion = V17
	MaxVersion = V28
)

// ErrUnknownVersion is returned for a version outside V17 to V28.
var ErrUnknownVersion = errors.New("unknown version")

// expectedVersions are the server versions each client is validated
// against, one entry per point release.
var expectedVersions = map[Version][]int{
	V17: {170100},
	V18: {180100},
	V19: {190100},
	V20: {200200},
	V21: {210200},
	V22: {220000, 220100},
	V23: {230000, 230100, 230200},
	V24: {240001, 240100, 240200},
	V25: {250000, 250100, 250200},
	V26: {260000, 260100, 260200},
	V27: {270000, 270100},
	V28: {280000},
}

// Versions returns every supported version, oldest first.
func Versions() []Version {
	versions := make([]Version, 0, MaxVersion-MinVersion+1)
	for v := MinVersion; v <= MaxVersion; v++ {
		versions = append(versions, v)
	}

	return versions
}

// IsValid reports whether v is a supported version.
func (v Version) IsValid() bool {
	return v >= MinVersion && v <= MaxVersion
}

// String returns the version as v17 through v28.
func (v Version) String() string {
	return fmt.Sprintf("v%d", uint8(v))
}

// ExpectedVersions returns a copy of the server versions this client version
// accepts.
func (v Version) ExpectedVersions() []int {
	return slices.Clone(expectedVersions[v])
}

// ParseVersion parses "v28" or "28".
func ParseVersion(s string) (Version, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "v"), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVersion, s)
	}

	v := Version(n)
	if !v.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVersion, s)
	}

	return v, nil
}

// CheckVersion returns a VersionMismatch error when actual is not in
// expected.
func CheckVersion(expected []int, actual int) error {
	if slices.Contains(expected, actual) {
		return nil
	}

	return rpcerr.New(
		rpcerr.KindVersionMismatch, "", &rpcerr.VersionMismatchError{
			Got:      actual,
			Expected: slices.Clone(expected),
		},
	)
}

// VersionFor maps a server version integer, such as 270100, to the client
// version of its major release. Releases newer than MaxVersion map to
// MaxVersion.
func VersionFor(serverVersion int) (Version, error) {
	major := serverVersion / 10000

	switch {
	case major < int(MinVersion):
		return 0, rpcerr.New(
			rpcerr.KindVersionMismatch, "",
			&rpcerr.VersionMismatchError{
				Got:      serverVersion,
				Expected: MinVersion.ExpectedVersions(),
			},
		)

	case major > int(MaxVersion):
		log.Warnf("Server version %d is newer than %v, using %v",
			serverVersion, MaxVersion, MaxVersion)

		return MaxVersion, nil
	}

	return Version(major), nil
}

// networkVersion is the only getnetworkinfo field every release shares in
// the same shape.
type networkVersion struct {
	Version int64 `json:"version"`
}

// ToModel returns the version.
func (n networkVersion) ToModel() (uint32, error) {
	return schema.ToUint32(n.Version, "version")
}

// Detect asks the server for its version and returns the client version to
// use with it.
func Detect(ctx context.Context, t transport.Transport) (Version, error) {
	c := newCore(MinVersion, t, defaultOptions())

	serverVersion, err := call[networkVersion, uint32](
		ctx, c, "getnetworkinfo",
	)
	if err != nil {
		return 0, err
	}

	version, err := VersionFor(int(serverVersion))
	if err != nil {
		return 0, err
	}

	log.Infof("Detected server version %d, using %v client",
		serverVersion, version)

	return version, nil
}
