package transport

import (
	"context"
	"encoding/json"

	"github.com/lightningnetwork/corerpc/monitoring"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/lnd/clock"
)

// metered records every call of the wrapped transport.
type metered struct {
	next    Transport
	metrics *monitoring.Metrics
	clock   clock.Clock
}

// WithMetrics wraps next so every call is counted by method and result and
// its latency observed. Latency is measured with clk.
func WithMetrics(next Transport, metrics *monitoring.Metrics,
	clk clock.Clock) Transport {

	return &metered{
		next:    next,
		metrics: metrics,
		clock:   clk,
	}
}

// Call implements Transport.
func (m *metered) Call(ctx context.Context, method string,
	params []json.RawMessage) (json.RawMessage, error) {

	start := m.clock.Now()
	result, err := m.next.Call(ctx, method, params)
	m.metrics.Observe(method, resultLabel(err), m.clock.Now().Sub(start))

	return result, err
}

// resultLabel names the outcome of a call.
func resultLabel(err error) string {
	if err == nil {
		return monitoring.ResultOK
	}

	kind, ok := rpcerr.KindOf(err)
	if !ok {
		return "unknown"
	}

	return kind.String()
}
