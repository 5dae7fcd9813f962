// Package corecfg holds the configuration of corectl: how to reach and
// authenticate against bitcoind, which client version to speak and where to
// log.
package corecfg

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/go-playground/validator/v10"
	"github.com/jessevdk/go-flags"
	"github.com/lightningnetwork/corerpc/build"
	"github.com/lightningnetwork/corerpc/corerpc"
	"github.com/lightningnetwork/corerpc/model"
	"github.com/lightningnetwork/corerpc/transport"
	"github.com/lightningnetwork/lnd/fn/v2"
)

const (
	// DefaultConfigFilename is the name of the config file corectl reads
	// from its application directory.
	DefaultConfigFilename = "corectl.conf"

	// VersionAuto asks the server for its version before building the
	// client.
	VersionAuto = "auto"

	// ProtocolJSONRPC1 is the JSON-RPC 1.0 dialect every release speaks.
	ProtocolJSONRPC1 = "jsonrpc1"

	// ProtocolJSONRPC2 is JSON-RPC 2.0, accepted from v28.
	ProtocolJSONRPC2 = "jsonrpc2"

	defaultRPCHost    = "localhost"
	defaultNetwork    = "main"
	defaultTimeout    = 30 * time.Second
	defaultDebugLevel = "info"
)

var (
	// DefaultAppDir is where corectl keeps its config file and logs.
	DefaultAppDir = btcutil.AppDataDir("corectl", false)

	// DefaultConfigFile is the config file read when none is given.
	DefaultConfigFile = filepath.Join(DefaultAppDir, DefaultConfigFilename)

	defaultBitcoindDir = btcutil.AppDataDir("bitcoin", false)
	defaultLogDir      = filepath.Join(DefaultAppDir, "logs")

	// ErrConflictingAuth is returned when both a user and password and a
	// cookie file are configured.
	ErrConflictingAuth = errors.New("rpcuser/rpcpass and rpccookie are " +
		"mutually exclusive")

	// ErrIncompleteUserPass is returned when only one of the user and
	// password is set.
	ErrIncompleteUserPass = errors.New("rpcuser and rpcpass must be set " +
		"together")
)

// Prometheus configures the metrics endpoint.
//
//nolint:lll
type Prometheus struct {
	Listen string `long:"listen" description:"The host:port to serve Prometheus metrics on. Metrics are off when unset." validate:"omitempty,hostname_port"`
}

// Config is the full corectl configuration.
//
//nolint:lll
type Config struct {
	ConfigFile string `long:"configfile" description:"Path to the configuration file."`

	Dir        string        `long:"dir" description:"The bitcoind data directory, used to find the cookie file."`
	RPCHost    string        `long:"rpchost" description:"The bitcoind RPC address. If a port is omitted, the default port of the network is used." validate:"required"`
	RPCUser    string        `long:"rpcuser" description:"Username for RPC connections."`
	RPCPass    string        `long:"rpcpass" default-mask:"-" description:"Password for RPC connections."`
	RPCCookie  string        `long:"rpccookie" description:"Authentication cookie file. If neither this nor rpcuser is set, the .cookie of the network under dir is used."`
	Wallet     string        `long:"wallet" description:"Send wallet calls to this wallet's endpoint."`
	RPCVersion string        `long:"version" description:"The client version to speak, v17 to v28, or auto to ask the server." validate:"required"`
	Network    string        `long:"network" description:"The chain bitcoind runs on." choice:"main" choice:"test" choice:"testnet4" choice:"signet" choice:"regtest" validate:"oneof=main test testnet4 signet regtest"`
	Timeout    time.Duration `long:"timeout" description:"The timeout of a single RPC call." validate:"gt=0"`
	Protocol   string        `long:"protocol" description:"The JSON-RPC dialect to use." choice:"jsonrpc1" choice:"jsonrpc2" validate:"oneof=jsonrpc1 jsonrpc2"`
	DisableTLS bool          `long:"disabletls" description:"Force plain HTTP even for an https rpchost."`

	DebugLevel string `long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical}. A comma separated list of <subsystem>=<level> pairs sets levels per subsystem."`
	LogDir     string `long:"logdir" description:"Directory to write the rotated log file to."`

	LogConfig *build.LogConfig `group:"logging" namespace:"logging"`

	Prometheus *Prometheus `group:"prometheus" namespace:"prometheus"`

	// network and version are set by Validate.
	network model.Network
	version fn.Option[corerpc.Version]
}

// DefaultConfig returns a config with every default filled in.
func DefaultConfig() Config {
	return Config{
		ConfigFile: DefaultConfigFile,
		Dir:        defaultBitcoindDir,
		RPCHost:    defaultRPCHost,
		RPCVersion: VersionAuto,
		Network:    defaultNetwork,
		Timeout:    defaultTimeout,
		Protocol:   ProtocolJSONRPC1,
		DebugLevel: defaultDebugLevel,
		LogDir:     defaultLogDir,
		LogConfig:  build.DefaultLogConfig(),
		Prometheus: &Prometheus{},
	}
}

// LoadConfig builds the config from the defaults, then the config file, then
// args, each overriding the one before. A missing config file is only an
// error if it was asked for explicitly.
func LoadConfig(args []string) (*Config, error) {
	// Pre-parse the command line to pick up an alternative config file.
	preCfg := DefaultConfig()
	if _, err := flags.ParseArgs(&preCfg, args); err != nil {
		return nil, err
	}

	cfg := preCfg
	configFile := CleanAndExpandPath(preCfg.ConfigFile)

	err := flags.IniParse(configFile, &cfg)
	if err != nil {
		// A parse error is always fatal. Any other error means the
		// file could not be read, which is fine for the default.
		var iniErr *flags.IniError
		if errors.As(err, &iniErr) ||
			configFile != CleanAndExpandPath(DefaultConfigFile) {

			return nil, fmt.Errorf("unable to load config file "+
				"%v: %w", configFile, err)
		}
	}

	// Parse the command line again so it takes precedence over the file.
	if _, err := flags.ParseArgs(&cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the config and expands its paths. It must be called before
// any of the accessors.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := c.LogConfig.Validate(); err != nil {
		return err
	}

	switch {
	case (c.RPCUser != "" || c.RPCPass != "") && c.RPCCookie != "":
		return ErrConflictingAuth

	case (c.RPCUser == "") != (c.RPCPass == ""):
		return ErrIncompleteUserPass
	}

	network, err := model.ParseNetwork(c.Network)
	if err != nil {
		return err
	}
	c.network = network

	c.version = fn.None[corerpc.Version]()
	if c.RPCVersion != VersionAuto {
		v, err := corerpc.ParseVersion(c.RPCVersion)
		if err != nil {
			return err
		}
		c.version = fn.Some(v)
	}

	// With auto the version is only known once the server answered.
	v := c.version.UnwrapOr(corerpc.MaxVersion)
	if c.Protocol == ProtocolJSONRPC2 && v < corerpc.V28 {
		return fmt.Errorf("%v does not accept %v", v, ProtocolJSONRPC2)
	}

	c.ConfigFile = CleanAndExpandPath(c.ConfigFile)
	c.Dir = CleanAndExpandPath(c.Dir)
	c.RPCCookie = CleanAndExpandPath(c.RPCCookie)
	c.LogDir = CleanAndExpandPath(c.LogDir)

	return nil
}

// ChainNetwork returns the configured network.
func (c *Config) ChainNetwork() model.Network {
	return c.network
}

// Params returns the chain parameters of the configured network.
func (c *Config) Params() *chaincfg.Params {
	return c.network.Params()
}

// ClientVersion returns the configured client version, or None for auto.
func (c *Config) ClientVersion() fn.Option[corerpc.Version] {
	return c.version
}

// TransportConfig returns the transport settings for the configured server.
func (c *Config) TransportConfig() (*transport.Config, error) {
	rawURL := c.RPCHost
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid rpchost: %w", err)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("invalid rpchost %q: no host", c.RPCHost)
	}

	return &transport.Config{
		Host:       withDefaultPort(u.Host, c.network),
		Auth:       c.Auth(),
		Wallet:     c.Wallet,
		DisableTLS: c.DisableTLS || u.Scheme != "https",
		Timeout:    c.Timeout,
	}, nil
}
