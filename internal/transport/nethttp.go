package transport

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/mirelk/jsonlens/internal/logging"
)

// net/http backed implementation of Transport.
type NetHTTPTransport struct {
	client *http.Client
	logger logging.Logger
}

// NewNetHTTPTransport wraps an *http.Client. If httpClient is nil a default
// client with a 30s timeout is used; no per-request deadline is imposed
// beyond that.
func NewNetHTTPTransport(logger logging.Logger, httpClient *http.Client) *NetHTTPTransport {
	componentLogger := logger.With(logging.Field{Key: "component", Value: "transport.nethttp"})

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	componentLogger.Info("created nethttp transport",
		logging.Field{Key: "timeout", Value: httpClient.Timeout.String()})

	return &NetHTTPTransport{
		client: httpClient,
		logger: componentLogger,
	}
}

// Get performs a single GET. All failure modes come back as *Failure; the
// returned RawResponse is always 2xx.
func (nt *NetHTTPTransport) Get(ctx context.Context, url string) (*RawResponse, *Failure) {
	nt.logger.Debug("sending http request",
		logging.Field{Key: "method", Value: http.MethodGet},
		logging.Field{Key: "url", Value: url})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, Failuref("create request: %v", err)
	}

	resp, err := nt.client.Do(httpReq)
	if err != nil {
		nt.logger.Warn("http request failed",
			logging.Field{Key: "url", Value: url},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, Failuref("http get: %v", err)
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		nt.logger.Warn("failed to read response body",
			logging.Field{Key: "url", Value: url},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, Failuref("read body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		nt.logger.Warn("unexpected http status",
			logging.Field{Key: "url", Value: url},
			logging.Field{Key: "status", Value: resp.StatusCode})
		return nil, &Failure{
			Message:    "unexpected status " + resp.Status + bodyExcerpt(body),
			StatusCode: resp.StatusCode,
		}
	}

	return &RawResponse{
		Body:       body,
		StatusCode: resp.StatusCode,
		FetchedAt:  time.Now(),
	}, nil
}

func (nt *NetHTTPTransport) Close() error {
	nt.logger.Info("closing nethttp transport")
	return nil
}

// HTTPClient returns the underlying *http.Client.
func (nt *NetHTTPTransport) HTTPClient() *http.Client {
	return nt.client
}

// bodyExcerpt returns the first part of a body for inclusion in a failure
// message, so the user can inspect what the endpoint sent back.
func bodyExcerpt(body []byte) string {
	const max = 200
	if len(body) == 0 {
		return ""
	}
	if len(body) > max {
		body = body[:max]
	}
	return ": " + string(body)
}
