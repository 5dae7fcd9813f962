package monitoring

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// shutdownTimeout bounds the graceful shutdown of the exporter.
const shutdownTimeout = 5 * time.Second

// Serve runs the Prometheus exporter on listen until ctx is done. Metrics are
// served under /metrics.
func Serve(ctx context.Context, listen string,
	gatherer prometheus.Gatherer) error {

	lis, err := net.Listen("tcp", listen)
	if err != nil {
		return err
	}

	return ServeListener(ctx, lis, gatherer)
}

// ServeListener is Serve on an existing listener.
func ServeListener(ctx context.Context, lis net.Listener,
	gatherer prometheus.Gatherer) error {

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		gatherer, promhttp.HandlerOpts{},
	))

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Infof("Prometheus exporter started on %v/metrics", lis.Addr())

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Serve(lis)
	}()

	select {
	case err := <-errChan:
		return err

	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), shutdownTimeout,
	)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if serveErr := <-errChan; !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}

	log.Infof("Prometheus exporter stopped")

	return err
}
