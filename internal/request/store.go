package request

import "sync"

// Store is the parameter store: it owns the single current Spec and a
// monotonically increasing generation counter. Every edit bumps the
// generation; a pipeline run captures the generation at issue time so stale
// results can be told apart from the latest one.
//
// Store is safe for concurrent use by HTTP handlers and in-flight runs.
type Store struct {
	mu   sync.Mutex
	spec Spec
	gen  uint64
}

// NewStore creates a Store seeded with the given spec at generation 1.
func NewStore(spec Spec) *Store {
	return &Store{spec: spec.Normalize(), gen: 1}
}

// Snapshot returns the current spec together with the generation it belongs to.
func (st *Store) Snapshot() (Spec, uint64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.spec, st.gen
}

// Update replaces the current spec and bumps the generation. It returns the
// new generation.
func (st *Store) Update(spec Spec) uint64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.spec = spec.Normalize()
	st.gen++
	return st.gen
}

// Touch bumps the generation without changing the spec. Used when an edit
// outside the spec itself (view mode, extraction profile) must supersede any
// in-flight run.
func (st *Store) Touch() uint64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.gen++
	return st.gen
}

// Generation returns the latest issued generation.
func (st *Store) Generation() uint64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.gen
}
