// Package pipeline coordinates one request/response/render pass and owns the
// document context: the single current request spec and the single current
// display artifact. The context is created when the page loads, mutated on
// every parameter edit and discarded when the page goes away; nothing here is
// a package-level singleton.
package pipeline

import (
	"sync"

	"github.com/mirelk/jsonlens/internal/render"
	"github.com/mirelk/jsonlens/internal/request"
)

// Document is the explicit mutable context threaded through the pipeline. It
// owns the parameter store, the selected view and extraction profile, and the
// current artifact. There is exactly one logical writer per artifact: Apply.
type Document struct {
	store *request.Store

	mu       sync.Mutex
	view     render.View
	profile  string
	artifact *render.Artifact
	subs     map[chan *render.Artifact]struct{}
}

// NewDocument creates a document seeded with the given spec, view and
// extraction profile name.
func NewDocument(spec request.Spec, view render.View, profile string) *Document {
	return &Document{
		store:   request.NewStore(spec),
		view:    view,
		profile: profile,
		subs:    make(map[chan *render.Artifact]struct{}),
	}
}

// Store exposes the parameter store.
func (d *Document) Store() *request.Store { return d.store }

// View returns the current view mode and profile name.
func (d *Document) View() (render.View, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view, d.profile
}

// SetView switches the view mode and profile. It bumps the generation so any
// in-flight run under the old settings is superseded.
func (d *Document) SetView(view render.View, profile string) uint64 {
	d.mu.Lock()
	d.view = view
	d.profile = profile
	d.mu.Unlock()
	return d.store.Touch()
}

// Artifact returns the current display artifact, or nil before the first run
// completes.
func (d *Document) Artifact() *render.Artifact {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.artifact
}

// Apply installs the artifact as the current one, replacing its predecessor,
// but only if its generation is still the latest issued. Stale results are
// discarded so an out-of-order completion can never overwrite a newer one.
// It reports whether the artifact was applied.
func (d *Document) Apply(art *render.Artifact) bool {
	if art == nil {
		return false
	}
	if art.Generation != d.store.Generation() {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.artifact = art

	// Non-blocking send; a slow subscriber misses intermediate artifacts.
	// Sending under the lock keeps Unsubscribe from closing a channel
	// mid-delivery.
	for ch := range d.subs {
		select {
		case ch <- art:
		default:
		}
	}
	return true
}

// Subscribe registers a channel that receives every applied artifact. The
// returned channel is buffered; callers must Unsubscribe when done.
func (d *Document) Subscribe() chan *render.Artifact {
	ch := make(chan *render.Artifact, 4)
	d.mu.Lock()
	d.subs[ch] = struct{}{}
	d.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
func (d *Document) Unsubscribe(ch chan *render.Artifact) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.subs[ch]; ok {
		delete(d.subs, ch)
		close(ch)
	}
}
