package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lightningnetwork/corerpc/monitoring"
	"github.com/lightningnetwork/corerpc/rpcauth"
	"github.com/lightningnetwork/corerpc/rpcerr"
	"github.com/lightningnetwork/corerpc/rpcparams"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const (
	testUser = "user"
	testPass = "pass"
)

// serverRequest is the request body seen by the test server.
type serverRequest struct {
	Version string            `json:"jsonrpc"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
	ID      json.RawMessage   `json:"id"`
}

// serverReply is what the test handler answers for a request.
type serverReply struct {
	result json.RawMessage
	code   int
	msg    string
}

// newServer starts a bitcoind-like JSON-RPC server. Error replies are sent
// with HTTP 500 the way bitcoind does for JSON-RPC 1.0.
func newServer(t *testing.T, version string,
	handle func(req serverRequest) serverReply) *httptest.Server {

	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || user != testUser || pass != testPass {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			var req serverRequest
			err := json.NewDecoder(r.Body).Decode(&req)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			reply := handle(req)
			resp := map[string]any{
				"jsonrpc": version,
				"id":      req.ID,
			}

			status := http.StatusOK
			if reply.code != 0 {
				resp["result"] = nil
				resp["error"] = map[string]any{
					"code":    reply.code,
					"message": reply.msg,
				}
				if version == "1.0" {
					status = http.StatusInternalServerError
				}
			} else {
				resp["result"] = reply.result
				if version == "1.0" {
					resp["error"] = nil
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(resp)
		},
	))
	t.Cleanup(server.Close)

	return server
}

// scripted answers getblockcount, a null for gettxout and an error for
// everything else.
func scripted(req serverRequest) serverReply {
	switch req.Method {
	case "getblockcount":
		return serverReply{result: json.RawMessage("840000")}

	case "gettxout":
		return serverReply{result: rpcparams.Null}

	default:
		return serverReply{
			code: rpcerr.CodeMethodNotFound,
			msg:  "Method not found",
		}
	}
}

func hostOf(server *httptest.Server) string {
	return strings.TrimPrefix(server.URL, "http://")
}

// newTransports builds each HTTP transport against its own server.
func newTransports(t *testing.T, auth rpcauth.Auth) map[string]Transport {
	t.Helper()

	v1 := newServer(t, "1.0", scripted)
	rpcClient, err := NewRPCClient(&Config{
		Host:       hostOf(v1),
		Auth:       auth,
		DisableTLS: true,
	})
	require.NoError(t, err)
	t.Cleanup(rpcClient.Shutdown)

	v2 := newServer(t, "2.0", scripted)
	jsonRPC2, err := NewJSON2(&Config{
		Host:       hostOf(v2),
		Auth:       auth,
		DisableTLS: true,
		Timeout:    5 * time.Second,
	})
	require.NoError(t, err)

	return map[string]Transport{
		"rpcclient": rpcClient,
		"json2":     jsonRPC2,
	}
}

// TestHTTPTransports checks results, nulls and server errors through both
// HTTP transports.
func TestHTTPTransports(t *testing.T) {
	t.Parallel()

	auth := rpcauth.UserPass{User: testUser, Pass: testPass}
	for name, tr := range newTransports(t, auth) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()

			result, err := tr.Call(ctx, "getblockcount", nil)
			require.NoError(t, err)
			require.JSONEq(t, "840000", string(result))

			result, err = tr.Call(ctx, "gettxout", []json.RawMessage{
				json.RawMessage(`"00"`), json.RawMessage("0"),
			})
			require.NoError(t, err)
			require.True(t, rpcparams.IsNull(result))

			_, err = tr.Call(ctx, "nosuchmethod", nil)
			require.True(t, rpcerr.Is(err, rpcerr.KindProtocol))

			var serverErr *rpcerr.ServerError
			require.ErrorAs(t, err, &serverErr)
			require.Equal(t, rpcerr.CodeMethodNotFound, serverErr.Code)
			require.Equal(t, "Method not found", serverErr.Message)
		})
	}
}

// TestHTTPTransportsUnauthorized checks that rejected credentials are a
// transport failure.
func TestHTTPTransportsUnauthorized(t *testing.T) {
	t.Parallel()

	auth := rpcauth.UserPass{User: testUser, Pass: "wrong"}
	for name, tr := range newTransports(t, auth) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := tr.Call(
				context.Background(), "getblockcount", nil,
			)
			require.True(t, rpcerr.Is(err, rpcerr.KindTransport))
		})
	}
}

// TestMissingCredentials checks that building a transport without
// credentials fails before any request.
func TestMissingCredentials(t *testing.T) {
	t.Parallel()

	_, err := NewRPCClient(&Config{Host: "127.0.0.1:1", DisableTLS: true})
	require.ErrorIs(t, err, rpcerr.ErrMissingUserPassword)
	require.True(t, rpcerr.Is(err, rpcerr.KindCredential))

	_, err = NewJSON2(&Config{Host: "127.0.0.1:1", Auth: rpcauth.None{}})
	require.ErrorIs(t, err, rpcerr.ErrMissingUserPassword)
}

// TestWalletEndpoint checks that wallet calls go to the wallet path.
func TestWalletEndpoint(t *testing.T) {
	t.Parallel()

	paths := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			paths <- r.URL.Path
			_, _ = w.Write([]byte(
				`{"jsonrpc":"2.0","result":1,"id":1}`,
			))
		},
	))
	t.Cleanup(server.Close)

	tr, err := NewJSON2(&Config{
		Host:       hostOf(server),
		Auth:       rpcauth.UserPass{User: testUser, Pass: testPass},
		Wallet:     "my wallet",
		DisableTLS: true,
	})
	require.NoError(t, err)

	_, err = tr.Call(context.Background(), "getbalance", nil)
	require.NoError(t, err)
	require.Equal(t, "/wallet/my wallet", <-paths)
}

// TestJSON2Cancel checks that a cancelled context aborts a pending call.
func TestJSON2Cancel(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		},
	))
	t.Cleanup(server.Close)

	tr, err := NewJSON2(&Config{
		Host:       hostOf(server),
		Auth:       rpcauth.UserPass{User: testUser, Pass: testPass},
		DisableTLS: true,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(
		context.Background(), 50*time.Millisecond,
	)
	defer cancel()

	_, err = tr.Call(ctx, "getblockcount", nil)
	require.True(t, rpcerr.Is(err, rpcerr.KindTransport))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestRPCClientTimeout checks that a call without a deadline is bounded by
// the configured timeout.
func TestRPCClientTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		},
	))
	t.Cleanup(server.Close)
	t.Cleanup(func() {
		close(release)
	})

	tr, err := NewRPCClient(&Config{
		Host:       hostOf(server),
		Auth:       rpcauth.UserPass{User: testUser, Pass: testPass},
		DisableTLS: true,
		Timeout:    50 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(tr.Shutdown)

	start := time.Now()
	_, err = tr.Call(context.Background(), "getblockcount", nil)
	require.True(t, rpcerr.Is(err, rpcerr.KindTransport))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 5*time.Second)
}

// TestMock checks scripted replies are handed out in order and recorded.
func TestMock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mock := NewMock().
		On("getblockcount", 1).
		On("getblockcount", 2).
		OnRaw("gettxout", "").
		OnServerError("getblock", rpcerr.CodeInvalidParameter, "bad")

	for _, want := range []string{"1", "2", "2"} {
		result, err := mock.Call(ctx, "getblockcount", nil)
		require.NoError(t, err)
		require.Equal(t, want, string(result))
	}

	result, err := mock.Call(ctx, "gettxout", []json.RawMessage{
		json.RawMessage(`"00"`),
	})
	require.NoError(t, err)
	require.Equal(t, rpcparams.Null, result)

	_, err = mock.Call(ctx, "getblock", nil)
	require.True(t, rpcerr.Is(err, rpcerr.KindProtocol))

	_, err = mock.Call(ctx, "unknown", nil)
	var serverErr *rpcerr.ServerError
	require.ErrorAs(t, err, &serverErr)
	require.Equal(t, rpcerr.CodeMethodNotFound, serverErr.Code)

	require.Len(t, mock.Requests(), 6)

	req, ok := mock.LastRequest("gettxout")
	require.True(t, ok)
	require.Equal(t, []json.RawMessage{json.RawMessage(`"00"`)}, req.Params)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = mock.Call(cancelled, "getblockcount", nil)
	require.True(t, rpcerr.Is(err, rpcerr.KindTransport))
}

// TestWithMetrics checks calls are counted by result and timed with the
// given clock.
func TestWithMetrics(t *testing.T) {
	t.Parallel()

	testClock := clock.NewTestClock(time.Unix(1_700_000_000, 0))
	metrics := monitoring.NewMetrics()
	require.NoError(t, metrics.Register(prometheus.NewRegistry()))

	errBoom := errors.New("boom")
	inner := Func(func(ctx context.Context, method string,
		params []json.RawMessage) (json.RawMessage, error) {

		testClock.SetTime(testClock.Now().Add(2 * time.Second))

		if method == "fail" {
			return nil, transportError(method, errBoom)
		}

		return json.RawMessage("1"), nil
	})

	tr := WithMetrics(inner, metrics, testClock)

	_, err := tr.Call(context.Background(), "uptime", nil)
	require.NoError(t, err)

	_, err = tr.Call(context.Background(), "fail", nil)
	require.ErrorIs(t, err, errBoom)

	require.InDelta(t, 1, testutil.ToFloat64(
		metrics.Calls.WithLabelValues("uptime", monitoring.ResultOK),
	), 0)
	require.InDelta(t, 1, testutil.ToFloat64(
		metrics.Calls.WithLabelValues("fail", "transport"),
	), 0)
	require.Equal(t, 2, testutil.CollectAndCount(metrics.Latency))
}
