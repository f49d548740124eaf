package server

import (
	"github.com/mirelk/jsonlens/internal/logging"
	"github.com/mirelk/jsonlens/internal/transport"
)

type Config struct {
	// ListenAddr is the HTTP listen address for the document server.
	ListenAddr string

	// StorageRoot is where the preset catalog database lives.
	StorageRoot string

	// TransportBackend names the transport used for pipeline runs. Empty
	// means nethttp.
	TransportBackend transport.Backend

	// Transport, when non-nil, overrides the backend lookup entirely. Tests
	// inject stubs through this.
	Transport transport.Transport

	// Logger is optional; a stdout logger is used when nil.
	Logger logging.Logger
}
