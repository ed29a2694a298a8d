package web

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"crmshop/config"
	"crmshop/responses"
)

// Bounds proxied calls so a stalled backend cannot pin gateway goroutines.
const proxyTimeout = 10 * time.Second

// GatewayHandler is pure dispatch: it forwards /customers* and /orders*
// traffic to the backend base URLs and serves the self-contained compute
// endpoint for latency comparison. No business logic lives here.
type GatewayHandler struct {
	client       *http.Client
	customerBase string
	orderBase    string
	log          zerolog.Logger
}

func NewGatewayHandler(cfg config.Config, logger zerolog.Logger) *GatewayHandler {
	return &GatewayHandler{
		client:       &http.Client{Timeout: proxyTimeout},
		customerBase: strings.TrimRight(cfg.CustomerServiceURL, "/"),
		orderBase:    strings.TrimRight(cfg.OrderServiceURL, "/"),
		log:          logger,
	}
}

// Register mounts the gateway routes. First match wins: customers, then
// orders, then the literal routes; everything else is a JSON 404.
func (h *GatewayHandler) Register(e *echo.Echo) {
	e.GET("/healthz", Healthz)
	e.GET("/compute", h.Compute)
	e.Any("/customers", h.proxy(h.customerBase))
	e.Any("/customers/*", h.proxy(h.customerBase))
	e.Any("/orders", h.proxy(h.orderBase))
	e.Any("/orders/*", h.proxy(h.orderBase))
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, responses.ErrorResponse{Error: "Not found"})
	})
}

// proxy forwards the request verbatim to base + original path. The upstream
// status and Server-Timing header are relayed; every other upstream header is
// dropped and the response is always application/json.
func (h *GatewayHandler) proxy(base string) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		body, err := io.ReadAll(req.Body)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		out, err := http.NewRequestWithContext(req.Context(), req.Method, base+req.URL.Path, bytes.NewReader(body))
		if err != nil {
			return err
		}
		out.Header.Set("Content-Type", "application/json")

		resp, err := h.client.Do(out)
		if err != nil {
			h.log.Warn().Err(err).Str("path", req.URL.Path).Msg("upstream unreachable")
			return c.JSON(http.StatusBadGateway,
				responses.ErrorResponse{Error: fmt.Sprintf("Upstream unavailable: %v", err)})
		}
		defer resp.Body.Close()

		upstream, err := io.ReadAll(resp.Body)
		if err != nil {
			h.log.Warn().Err(err).Str("path", req.URL.Path).Msg("upstream body read failed")
			return c.JSON(http.StatusBadGateway,
				responses.ErrorResponse{Error: fmt.Sprintf("Upstream unavailable: %v", err)})
		}

		if timing := resp.Header.Get("Server-Timing"); timing != "" {
			c.Response().Header().Set("Server-Timing", timing)
		}
		return c.Blob(resp.StatusCode, echo.MIMEApplicationJSON, upstream)
	}
}

// Compute answers the n-th Fibonacci number under 64-bit wraparound. n
// defaults to 1000 when absent or unparsable, so the default workload is
// deliberately heavier than a proxied CRUD call.
func (h *GatewayHandler) Compute(c echo.Context) error {
	n := uint64(1000)
	if raw := c.QueryParam("n"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 64); err == nil {
			n = v
		}
	}

	t := time.Now()
	result := fibonacci(n)
	computeMS := msSince(t)

	c.Response().Header().Set("Server-Timing", fmt.Sprintf("compute;dur=%.3f", computeMS))
	return c.JSON(http.StatusOK, responses.ComputeResponse{
		N:         n,
		Result:    strconv.FormatUint(result, 10),
		ComputeMS: computeMS,
	})
}

// fibonacci iterates the recurrence fib(0)=0, fib(1)=1 with wrapping uint64
// arithmetic. Large n overflows; the caller reports whatever wraps out.
func fibonacci(n uint64) uint64 {
	if n <= 1 {
		return n
	}
	a, b := uint64(0), uint64(1)
	for i := uint64(2); i <= n; i++ {
		a, b = b, a+b
	}
	return b
}
