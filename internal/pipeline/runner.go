package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/mirelk/jsonlens/internal/decode"
	"github.com/mirelk/jsonlens/internal/extract"
	"github.com/mirelk/jsonlens/internal/logging"
	"github.com/mirelk/jsonlens/internal/render"
	"github.com/mirelk/jsonlens/internal/transport"
)

// Runner executes pipeline runs against a document: build URL, fetch, decode,
// extract (in field view) and render. Every failure kind converts to a
// renderable artifact at this boundary; a run never terminates the process.
type Runner struct {
	doc      *Document
	tr       transport.Transport
	profiles map[string]extract.Profile
	renderer *render.Renderer
	logger   logging.Logger
}

// NewRunner wires a runner to its document, transport, profiles and renderer.
// A nil profiles map falls back to the built-in profiles.
func NewRunner(doc *Document, tr transport.Transport, profiles map[string]extract.Profile, renderer *render.Renderer, logger logging.Logger) *Runner {
	if profiles == nil {
		profiles = extract.BuiltinProfiles()
	}
	if renderer == nil {
		renderer = render.NewRenderer()
	}
	return &Runner{
		doc:      doc,
		tr:       tr,
		profiles: profiles,
		renderer: renderer,
		logger:   logger.With(logging.Field{Key: "component", Value: "pipeline"}),
	}
}

// Document returns the document this runner drives.
func (r *Runner) Document() *Document { return r.doc }

// Profiles returns the extraction profiles known to this runner.
func (r *Runner) Profiles() map[string]extract.Profile { return r.profiles }

// Run performs one pipeline run. The spec and generation are captured up
// front; the finished artifact is applied to the document only if that
// generation is still the latest, otherwise it is discarded as stale. The
// built artifact is returned either way so callers can inspect it.
func (r *Runner) Run(ctx context.Context) *render.Artifact {
	spec, gen := r.doc.Store().Snapshot()
	view, profileName := r.doc.View()
	runID := uuid.New().String()
	url := spec.URL()

	r.logger.Info("pipeline run started",
		logging.Field{Key: "run_id", Value: runID},
		logging.Field{Key: "generation", Value: gen},
		logging.Field{Key: "url", Value: url})

	art := r.execute(ctx, url, view, profileName)
	art.Generation = gen
	art.RunID = runID

	if r.doc.Apply(art) {
		r.logger.Info("pipeline run applied",
			logging.Field{Key: "run_id", Value: runID},
			logging.Field{Key: "kind", Value: string(art.Kind)})
	} else {
		r.logger.Debug("pipeline run superseded, artifact discarded",
			logging.Field{Key: "run_id", Value: runID},
			logging.Field{Key: "generation", Value: gen})
	}
	return art
}

func (r *Runner) execute(ctx context.Context, url string, view render.View, profileName string) *render.Artifact {
	raw, tf := r.tr.Get(ctx, url)
	if tf != nil {
		r.logger.Warn("transport failure",
			logging.Field{Key: "url", Value: url},
			logging.Field{Key: "error", Value: tf.Error()})
		return r.renderer.TransportFailure(tf)
	}

	val, df := decode.Decode(raw.Body)
	if df != nil {
		r.logger.Warn("decode failure",
			logging.Field{Key: "url", Value: url},
			logging.Field{Key: "error", Value: df.Message})
		return r.renderer.DecodeFailure(df)
	}

	if view == render.ViewFields {
		profile, ok := r.profiles[profileName]
		if !ok {
			r.logger.Warn("unknown extraction profile, rendering pretty view",
				logging.Field{Key: "profile", Value: profileName})
			return r.renderer.Pretty(val)
		}
		return r.renderer.Fields(profile.Extract(val))
	}
	return r.renderer.Pretty(val)
}
