package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmshop/config"
)

func newGatewayEcho(customerURL, orderURL string) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = JSONErrorHandler(zerolog.Nop())
	cfg := config.Config{CustomerServiceURL: customerURL, OrderServiceURL: orderURL}
	NewGatewayHandler(cfg, zerolog.Nop()).Register(e)
	return e
}

func TestGatewayHealthz(t *testing.T) {
	e := newGatewayEcho("http://127.0.0.1:1", "http://127.0.0.1:1")
	rec := doJSON(e, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestProxyForwardsRequestAndRelaysTiming(t *testing.T) {
	var gotMethod, gotPath, gotBody, gotContentType string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)

		w.Header().Set("Server-Timing", "conn;dur=1.0, query;dur=0.5")
		w.Header().Set("X-Upstream-Secret", "drop-me")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))
	t.Cleanup(upstream.Close)

	e := newGatewayEcho(upstream.URL, "http://127.0.0.1:1")
	rec := doJSON(e, http.MethodPost, "/customers/42", `{"name":"Ada"}`)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/customers/42", gotPath)
	assert.Equal(t, `{"name":"Ada"}`, gotBody)
	assert.Equal(t, "application/json", gotContentType)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
	assert.Equal(t, "conn;dur=1.0, query;dur=0.5", rec.Header().Get("Server-Timing"))
	assert.Empty(t, rec.Header().Get("X-Upstream-Secret"), "only Server-Timing is relayed")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/json")
}

func TestProxyRoutesOrdersPrefix(t *testing.T) {
	var gotPath string
	orders := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(orders.Close)

	e := newGatewayEcho("http://127.0.0.1:1", orders.URL)
	rec := doJSON(e, http.MethodGet, "/orders", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/orders", gotPath)
}

func TestProxyRelaysUpstreamStatusUnchanged(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Customer not found"}`))
	}))
	t.Cleanup(upstream.Close)

	e := newGatewayEcho(upstream.URL, "http://127.0.0.1:1")
	rec := doJSON(e, http.MethodGet, "/customers/99", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Customer not found"}`, rec.Body.String())
}

func TestProxyUpstreamUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // free the port so the dial fails

	e := newGatewayEcho(srv.URL, srv.URL)
	rec := doJSON(e, http.MethodGet, "/customers", "")

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got["error"], "Upstream unavailable")
}

func TestGatewayUnmatchedPath(t *testing.T) {
	e := newGatewayEcho("http://127.0.0.1:1", "http://127.0.0.1:1")
	rec := doJSON(e, http.MethodGet, "/products", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestCompute(t *testing.T) {
	e := newGatewayEcho("http://127.0.0.1:1", "http://127.0.0.1:1")
	rec := doJSON(e, http.MethodGet, "/compute?n=10", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(10), got["n"])
	assert.Equal(t, "55", got["result"])
	assert.Contains(t, got, "compute_ms")
	assert.Contains(t, rec.Header().Get("Server-Timing"), "compute;dur=")
}

func TestComputeDefaultsTo1000(t *testing.T) {
	for _, target := range []string{"/compute", "/compute?n=banana"} {
		rec := doJSON(newGatewayEcho("http://127.0.0.1:1", "http://127.0.0.1:1"), http.MethodGet, target, "")

		assert.Equal(t, http.StatusOK, rec.Code, target)

		var got map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, float64(1000), got["n"], target)
		assert.NotEmpty(t, got["result"], target)
	}
}

func TestFibonacci(t *testing.T) {
	cases := map[uint64]uint64{
		0:  0,
		1:  1,
		2:  1,
		10: 55,
		20: 6765,
		90: 2880067194370816120,
	}
	for n, want := range cases {
		assert.Equal(t, want, fibonacci(n), "fib(%d)", n)
	}
	// past fib(93) the value wraps instead of failing
	assert.NotPanics(t, func() { fibonacci(1000) })
}
