package transport

import (
	"context"
	"sync"
	"time"
)

// StubResponse is one canned answer held by a StubTransport. When Err is
// non-empty the stub fails the request with that message instead of
// returning a body.
type StubResponse struct {
	StatusCode int
	Body       []byte
	Err        string
}

// StubTransport replays canned responses keyed by exact URL. It backs tests
// and offline demos; no network is touched.
type StubTransport struct {
	mu        sync.RWMutex
	responses map[string]StubResponse
}

// NewStubTransport creates an empty stub. Add answers with Set.
func NewStubTransport() *StubTransport {
	return &StubTransport{responses: make(map[string]StubResponse)}
}

// Set registers the canned response for a URL, replacing any previous one.
func (st *StubTransport) Set(url string, resp StubResponse) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.responses[url] = resp
}

func (st *StubTransport) Get(ctx context.Context, url string) (*RawResponse, *Failure) {
	if err := ctx.Err(); err != nil {
		return nil, Failuref("context: %v", err)
	}

	st.mu.RLock()
	resp, ok := st.responses[url]
	st.mu.RUnlock()

	if !ok {
		return nil, Failuref("no stub response for %s", url)
	}
	if resp.Err != "" {
		return nil, &Failure{Message: resp.Err}
	}

	status := resp.StatusCode
	if status == 0 {
		status = 200
	}
	if status < 200 || status > 299 {
		return nil, &Failure{
			Message:    "unexpected status" + bodyExcerpt(resp.Body),
			StatusCode: status,
		}
	}

	return &RawResponse{
		Body:       resp.Body,
		StatusCode: status,
		FetchedAt:  time.Now(),
	}, nil
}

func (st *StubTransport) Close() error { return nil }
