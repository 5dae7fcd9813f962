package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lightningnetwork/corerpc/corecfg"
	"github.com/lightningnetwork/corerpc/corerpc"
	"github.com/lightningnetwork/corerpc/monitoring"
	"github.com/lightningnetwork/corerpc/transport"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[corectl] %v\n", err)
	os.Exit(1)
}

// globalArgs turns the global flags set on the command line into go-flags
// arguments, so corecfg applies its defaults and config file underneath
// them.
func globalArgs(ctx *cli.Context) []string {
	var args []string
	for _, flag := range ctx.App.Flags {
		name := strings.Split(flag.GetName(), ",")[0]
		if !ctx.GlobalIsSet(name) {
			continue
		}

		if _, ok := flag.(cli.BoolFlag); ok {
			args = append(args, "--"+name)
			continue
		}

		args = append(args, fmt.Sprintf("--%s=%s", name,
			ctx.GlobalString(name)))
	}

	return args
}

// session is everything a command needs to talk to bitcoind.
type session struct {
	cfg    *corecfg.Config
	client corerpc.Client
}

// newSession loads the config, sets up logging and metrics, and builds the
// client. The returned cleanup must be called once the command is done.
func newSession(ctx *cli.Context) (*session, func(), error) {
	cfg, err := corecfg.LoadConfig(globalArgs(ctx))
	if err != nil {
		return nil, nil, fmt.Errorf("could not load config: %w", err)
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return nil, nil, err
	}

	t, err := newTransport(cfg)
	if err != nil {
		closeLog()
		return nil, nil, err
	}

	metricsCtx, stopMetrics := context.WithCancel(context.Background())
	cleanup := func() {
		stopMetrics()
		if s, ok := t.(interface{ Shutdown() }); ok {
			s.Shutdown()
		}
		closeLog()
	}

	if cfg.Prometheus.Listen != "" {
		metrics := monitoring.NewMetrics()
		registry := prometheus.NewRegistry()
		if err := metrics.Register(registry); err != nil {
			cleanup()
			return nil, nil, err
		}

		go func() {
			err := monitoring.Serve(
				metricsCtx, cfg.Prometheus.Listen, registry,
			)
			if err != nil {
				log.Errorf("Metrics server failed: %v", err)
			}
		}()

		metered := transport.WithMetrics(
			t, metrics, clock.NewDefaultClock(),
		)
		return newClient(cfg, metered, cleanup)
	}

	return newClient(cfg, t, cleanup)
}

// newClient builds the client on top of t, detecting the version first if
// asked to. cleanup is run if that fails.
func newClient(cfg *corecfg.Config, t transport.Transport,
	cleanup func()) (*session, func(), error) {

	version, err := cfg.ClientVersion().UnwrapOrFuncErr(
		func() (corerpc.Version, error) {
			return corerpc.Detect(context.Background(), t)
		},
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	if cfg.Protocol == corecfg.ProtocolJSONRPC2 && version < corerpc.V28 {
		cleanup()
		return nil, nil, fmt.Errorf("server speaks %v, which does not "+
			"accept %v", version, corecfg.ProtocolJSONRPC2)
	}

	client, err := corerpc.New(
		version, t, corerpc.WithParams(cfg.Params()),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &session{cfg: cfg, client: client}, cleanup, nil
}

// newTransport builds the transport for the configured dialect.
func newTransport(cfg *corecfg.Config) (transport.Transport, error) {
	tcfg, err := cfg.TransportConfig()
	if err != nil {
		return nil, err
	}

	if cfg.Protocol == corecfg.ProtocolJSONRPC2 {
		j, err := transport.NewJSON2(tcfg)
		if err != nil {
			return nil, err
		}

		return j, nil
	}

	r, err := transport.NewRPCClient(tcfg)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// withSession wraps a command action that talks to bitcoind.
func withSession(action func(*cli.Context, *session) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		s, cleanup, err := newSession(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		return action(ctx, s)
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "corectl"
	app.Usage = "query bitcoind through a version normalizing client"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:      "configfile",
			Usage:     "The path to the corectl config file.",
			TakesFile: true,
		},
		cli.StringFlag{
			Name:      "dir",
			Usage:     "The bitcoind data directory.",
			TakesFile: true,
		},
		cli.StringFlag{
			Name: "rpchost",
			Usage: "The bitcoind RPC address, optionally with an " +
				"http(s) scheme.",
		},
		cli.StringFlag{
			Name:  "rpcuser",
			Usage: "Username for RPC connections.",
		},
		cli.StringFlag{
			Name:  "rpcpass",
			Usage: "Password for RPC connections.",
		},
		cli.StringFlag{
			Name:      "rpccookie",
			Usage:     "The bitcoind cookie file.",
			TakesFile: true,
		},
		cli.StringFlag{
			Name:  "wallet",
			Usage: "The wallet to send wallet calls to.",
		},
		cli.StringFlag{
			Name:  "version",
			Usage: "The client version, v17 to v28 or auto.",
		},
		cli.StringFlag{
			Name: "network, n",
			Usage: "The network bitcoind runs on: main, test, " +
				"testnet4, signet or regtest.",
		},
		cli.DurationFlag{
			Name:  "timeout",
			Usage: "The timeout of a single RPC call.",
		},
		cli.StringFlag{
			Name:  "protocol",
			Usage: "The JSON-RPC dialect: jsonrpc1 or jsonrpc2.",
		},
		cli.BoolFlag{
			Name:  "disabletls",
			Usage: "Force plain HTTP.",
		},
		cli.StringFlag{
			Name:  "debuglevel",
			Usage: "The log level, e.g. debug or info,TRPT=trace.",
		},
		cli.StringFlag{
			Name:      "logdir",
			Usage:     "The directory of the rotated log file.",
			TakesFile: true,
		},
		cli.StringFlag{
			Name:  "prometheus.listen",
			Usage: "Serve call metrics on this host:port.",
		},
	}
	app.Commands = []cli.Command{
		getBlockchainInfoCommand,
		getNetworkInfoCommand,
		getBestBlockHashCommand,
		getBlockCommand,
		getTxOutCommand,
		getBalanceCommand,
		getBalancesCommand,
		getNewAddressCommand,
		sendToAddressCommand,
		versionCommand,
		checkVersionCommand,
		statusCommand,
		callCommand,
		watchCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
