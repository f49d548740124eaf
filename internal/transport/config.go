package transport

// Backend names a transport implementation.
type Backend string

const (
	BackendNetHTTP Backend = "nethttp"
	BackendStub    Backend = "stub"
)

// Config is the minimal configuration needed to construct a Transport.
type Config struct {
	Backend Backend
}
