package responses

// ErrorResponse is the envelope for every failure, across all three services.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status string `json:"status"`
}

// PingResponse reports store round-trip latency from /customers/ping.
type PingResponse struct {
	Status  string  `json:"status"`
	ConnMS  float64 `json:"conn_ms"`
	QueryMS float64 `json:"query_ms"`
}

// ComputeResponse is the /compute body. Result is a decimal string because
// the Fibonacci value wraps around uint64 for large n.
type ComputeResponse struct {
	N         uint64  `json:"n"`
	Result    string  `json:"result"`
	ComputeMS float64 `json:"compute_ms"`
}
