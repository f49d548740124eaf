package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mirelk/jsonlens/internal/testutil"
	"github.com/mirelk/jsonlens/internal/transport"
)

func TestNetHTTPTransport_Get(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tr := transport.NewNetHTTPTransport(&testutil.DummyLogger{}, srv.Client())
	defer tr.Close()

	resp, fail := tr.Get(context.Background(), srv.URL)
	if fail != nil {
		t.Fatalf("Get returned failure: %v", fail)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("body = %q", resp.Body)
	}
	if resp.FetchedAt.IsZero() {
		t.Error("FetchedAt not set")
	}
}

// TestNetHTTPTransport_NonOKStatus checks that a non-2xx status comes back as
// a transport failure carrying the status and a body excerpt.
func TestNetHTTPTransport_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nothing here", http.StatusNotFound)
	}))
	defer srv.Close()

	tr := transport.NewNetHTTPTransport(&testutil.DummyLogger{}, srv.Client())
	defer tr.Close()

	resp, fail := tr.Get(context.Background(), srv.URL+"/missing")
	if resp != nil {
		t.Fatal("expected nil response for 404")
	}
	if fail == nil {
		t.Fatal("expected failure for 404")
	}
	if fail.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fail.StatusCode)
	}
	if !strings.Contains(fail.Message, "nothing here") {
		t.Errorf("failure message %q missing the body excerpt", fail.Message)
	}
}

func TestNetHTTPTransport_ConnectionError(t *testing.T) {
	t.Parallel()

	// A server that is already closed refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	tr := transport.NewNetHTTPTransport(&testutil.DummyLogger{}, nil)
	defer tr.Close()

	resp, fail := tr.Get(context.Background(), url)
	if resp != nil || fail == nil {
		t.Fatal("expected a transport failure for a refused connection")
	}
	if fail.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for a non-HTTP failure", fail.StatusCode)
	}
}

func TestNetHTTPTransport_InvalidURL(t *testing.T) {
	t.Parallel()

	tr := transport.NewNetHTTPTransport(&testutil.DummyLogger{}, nil)
	defer tr.Close()

	resp, fail := tr.Get(context.Background(), "https://host with spaces/p")
	if resp != nil || fail == nil {
		t.Fatal("expected a failure for a malformed URL")
	}
}

func TestNetHTTPTransport_DefaultClient(t *testing.T) {
	t.Parallel()

	tr := transport.NewNetHTTPTransport(&testutil.DummyLogger{}, nil)
	defer tr.Close()

	if tr.HTTPClient() == nil {
		t.Fatal("expected a default http client")
	}
	if tr.HTTPClient().Timeout == 0 {
		t.Error("expected a default timeout")
	}
}
