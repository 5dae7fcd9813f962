package corecfg

import (
	"net"
	"path/filepath"

	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/rpcauth"
)

// networkLayout is where bitcoind keeps the files of one network under its
// data directory, and the port its RPC server listens on by default.
type networkLayout struct {
	subDir  string
	rpcPort string
}

var layouts = map[model.Network]networkLayout{
	model.NetworkMainnet:  {subDir: "", rpcPort: "8332"},
	model.NetworkTestnet3: {subDir: "testnet3", rpcPort: "18332"},
	model.NetworkTestnet4: {subDir: "testnet4", rpcPort: "48332"},
	model.NetworkSignet:   {subDir: "signet", rpcPort: "38332"},
	model.NetworkRegtest:  {subDir: "regtest", rpcPort: "18443"},
}

// DefaultRPCPort returns the port bitcoind serves RPC on for network.
func DefaultRPCPort(network model.Network) string {
	return layouts[network].rpcPort
}

// DefaultCookiePath returns the cookie file bitcoind writes for network
// under dir.
func DefaultCookiePath(dir string, network model.Network) string {
	return filepath.Join(dir, layouts[network].subDir, ".cookie")
}

// withDefaultPort adds the network's RPC port to host if it has none.
func withDefaultPort(host string, network model.Network) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}

	return net.JoinHostPort(host, DefaultRPCPort(network))
}

// Auth returns the credentials to use. A configured user and password take
// precedence, then the configured cookie file, then the cookie bitcoind
// writes under dir for the selected network.
func (c *Config) Auth() rpcauth.Auth {
	switch {
	case c.RPCUser != "" || c.RPCPass != "":
		return rpcauth.UserPass{User: c.RPCUser, Pass: c.RPCPass}

	case c.RPCCookie != "":
		return rpcauth.CookieFile(c.RPCCookie)

	default:
		return rpcauth.CookieFile(
			DefaultCookiePath(c.Dir, c.network),
		)
	}
}
