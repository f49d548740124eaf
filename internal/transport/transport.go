package transport

import "context"

// Transport performs the network leg of a pipeline run: a single GET against
// a fully-built URL. Implementations must never panic or leak errors as
// panics; every failure mode is captured into a *Failure so the caller can
// render it. A nil Failure means the RawResponse is valid and 2xx.
type Transport interface {
	Get(ctx context.Context, url string) (*RawResponse, *Failure)

	Close() error
}
