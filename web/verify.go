package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Bounds the existence check so an unresponsive customer service fails the
// order instead of stalling the handler.
const verifyTimeout = 10 * time.Second

// CustomerVerifier reports whether a customer exists. found=false with a nil
// error means the customer service answered and the customer is confirmed
// absent; a non-nil error means the service could not be reached, which
// callers must surface as a distinct failure class.
type CustomerVerifier interface {
	Verify(ctx context.Context, customerID int64) (found bool, err error)
}

// HTTPVerifier checks the customer service's GET /customers/{id} endpoint.
type HTTPVerifier struct {
	client  *http.Client
	baseURL string
}

func NewHTTPVerifier(baseURL string) *HTTPVerifier {
	return &HTTPVerifier{
		client:  &http.Client{Timeout: verifyTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, customerID int64) (bool, error) {
	url := fmt.Sprintf("%s/customers/%d", v.baseURL, customerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	// only an explicit 200 counts as confirmed existence
	return resp.StatusCode == http.StatusOK, nil
}
