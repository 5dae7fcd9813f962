package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lightningnetwork/lnd/healthcheck"
	"github.com/urfave/cli"
)

var watchCommand = cli.Command{
	Name: "watch",
	Usage: "Periodically check bitcoind is reachable and runs an " +
		"expected version.",
	Description: `
	Runs getnetworkinfo and the version check every interval until
	interrupted. The command exits with an error once a check has failed
	attempts times in a row.`,
	Flags: []cli.Flag{
		cli.DurationFlag{
			Name:  "interval",
			Value: time.Minute,
			Usage: "The time between checks.",
		},
		cli.DurationFlag{
			Name:  "checktimeout",
			Value: 10 * time.Second,
			Usage: "The timeout of one check.",
		},
		cli.DurationFlag{
			Name:  "backoff",
			Value: 5 * time.Second,
			Usage: "The wait before retrying a failed check.",
		},
		cli.IntFlag{
			Name:  "attempts",
			Value: 3,
			Usage: "The failed checks in a row that end the watch.",
		},
	},
	Action: withSession(watch),
}

// versionCheck returns the health check run by watch.
func versionCheck(s *session, timeout time.Duration) func() error {
	return func() error {
		ctx, cancel := context.WithTimeout(
			context.Background(), timeout,
		)
		defer cancel()

		if err := s.client.CheckExpectedServerVersion(ctx); err != nil {
			log.Warnf("Health check failed: %v", err)
			return err
		}

		log.Debugf("Health check passed")

		return nil
	}
}

func watch(ctx *cli.Context, s *session) error {
	failed := make(chan string, 1)

	timeout := ctx.Duration("checktimeout")
	monitor := healthcheck.NewMonitor(&healthcheck.Config{
		Checks: []*healthcheck.Observation{
			healthcheck.NewObservation(
				"bitcoind", versionCheck(s, timeout),
				ctx.Duration("interval"), timeout,
				ctx.Duration("backoff"), ctx.Int("attempts"),
			),
		},
		Shutdown: func(format string, params ...interface{}) {
			select {
			case failed <- fmt.Sprintf(format, params...):
			default:
			}
		},
	})

	if err := monitor.Start(); err != nil {
		return err
	}
	defer func() {
		if err := monitor.Stop(); err != nil {
			log.Errorf("Unable to stop monitor: %v", err)
		}
	}()

	log.Infof("Watching %v every %v", s.cfg.RPCHost,
		ctx.Duration("interval"))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	select {
	case reason := <-failed:
		return fmt.Errorf("watch ended: %v", reason)

	case sig := <-interrupt:
		log.Infof("Received %v, stopping", sig)
		return nil
	}
}
