package transport

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mirelk/jsonlens/internal/logging"
)

// BackendConstructor constructs a Transport given the config and logger.
type BackendConstructor func(cfg Config, logger logging.Logger) (Transport, error)

var (
	mu       sync.RWMutex
	registry = map[string]BackendConstructor{}
)

// RegisterBackend registers a named backend constructor. Name is lower-cased
// internally. Calling RegisterBackend with the same name overwrites the
// previous constructor.
func RegisterBackend(name string, ctor BackendConstructor) {
	if name == "" || ctor == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(name)] = ctor
}

// New constructs the configured Transport backend. It returns an error if the
// named backend has not been registered.
func New(cfg Config, logger logging.Logger) (Transport, error) {
	backend := strings.ToLower(strings.TrimSpace(string(cfg.Backend)))
	if backend == "" {
		backend = string(BackendNetHTTP)
	}

	mu.RLock()
	ctor, ok := registry[backend]
	mu.RUnlock()
	if !ok || ctor == nil {
		return nil, fmt.Errorf("transport backend %q not registered: available backends=%v", backend, ListBackends())
	}

	tr, err := ctor(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to construct transport backend %q: %w", backend, err)
	}
	if tr == nil {
		return nil, errors.New("transport constructor returned nil")
	}
	return tr, nil
}

// ListBackends returns the list of registered backend names.
func ListBackends() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	return out
}

// RegisterDefaultBackends registers the nethttp and stub backends. Call this
// from init() or early in main() to make backends available to New.
func RegisterDefaultBackends() {
	RegisterBackend(string(BackendNetHTTP), func(cfg Config, logger logging.Logger) (Transport, error) {
		return NewNetHTTPTransport(logger, nil), nil
	})

	RegisterBackend(string(BackendStub), func(cfg Config, logger logging.Logger) (Transport, error) {
		if logger != nil {
			logger.Debug("created stub transport")
		}
		return NewStubTransport(), nil
	})
}
