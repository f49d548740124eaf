// Package render turns pipeline results into display artifacts: an HTML
// fragment plus the text it was built from, ready to be placed into the
// surrounding page. One artifact exists at a time; rendering a new one
// replaces the previous one at the document level.
package render

import (
	"bytes"
	"html/template"
	"time"

	"github.com/tidwall/pretty"

	"github.com/mirelk/jsonlens/internal/decode"
	"github.com/mirelk/jsonlens/internal/extract"
	"github.com/mirelk/jsonlens/internal/transport"
)

// Kind tags what an artifact shows.
type Kind string

const (
	KindPretty         Kind = "pretty"
	KindFields         Kind = "fields"
	KindTransportError Kind = "transport_error"
	KindDecodeError    Kind = "decode_error"
)

// View selects between the two success renderings.
type View string

const (
	ViewPretty View = "pretty"
	ViewFields View = "fields"
)

// Artifact is the display artifact of one pipeline run. Generation and RunID
// are stamped by the pipeline; the renderer only fills Kind, Text, HTML and
// RenderedAt.
type Artifact struct {
	Kind       Kind      `json:"kind"`
	Text       string    `json:"text,omitempty"`
	HTML       string    `json:"html"`
	Generation uint64    `json:"generation"`
	RunID      string    `json:"run_id,omitempty"`
	RenderedAt time.Time `json:"rendered_at"`
}

// DefaultPlaceholderImageURL is shown when a field view has no usable
// image-URL field.
const DefaultPlaceholderImageURL = "https://placehold.co/400x300?text=no+image"

var prettyOpts = &pretty.Options{Indent: "    "}

var (
	prettyTmpl = template.Must(template.New("pretty").Parse(
		`<pre class="json-view">{{.}}</pre>`))

	fieldsTmpl = template.Must(template.New("fields").Parse(
		`<figure class="field-view">
<img src="{{.ImageURL}}" alt="{{.Alt}}">
{{range .Captions}}<figcaption><span class="field-name">{{.Name}}</span>: <span class="field-value">{{.Value}}</span></figcaption>
{{end}}</figure>`))

	transportErrTmpl = template.Must(template.New("transportErr").Parse(
		`<div class="pipeline-error transport-error">request failed: {{.}}</div>`))

	decodeErrTmpl = template.Must(template.New("decodeErr").Parse(
		`<div class="pipeline-error decode-error">
<p>response is not valid JSON: {{.Message}}</p>
<pre class="raw-payload">{{.Raw}}</pre>
</div>`))
)

// Renderer builds artifacts. PlaceholderImageURL substitutes for a missing or
// empty image field in field views.
type Renderer struct {
	PlaceholderImageURL string
}

// NewRenderer returns a Renderer with the default placeholder image.
func NewRenderer() *Renderer {
	return &Renderer{PlaceholderImageURL: DefaultPlaceholderImageURL}
}

// Pretty serializes the decoded value back to indented text (4-space indent,
// key order and sequence order preserved as received) and wraps it for the
// page.
func (r *Renderer) Pretty(v *decode.Value) *Artifact {
	text := string(pretty.PrettyOptions(v.Raw(), prettyOpts))
	return &Artifact{
		Kind:       KindPretty,
		Text:       text,
		HTML:       execute(prettyTmpl, text),
		RenderedAt: time.Now(),
	}
}

// Fields renders the field view: an image element for a usable image-URL
// field (placeholder otherwise) plus one caption line per remaining field.
// Unavailable sentinels stay visible in the captions.
func (r *Renderer) Fields(fields []extract.Field) *Artifact {
	data := struct {
		ImageURL string
		Alt      string
		Captions []extract.Field
	}{
		ImageURL: r.PlaceholderImageURL,
		Alt:      "API result",
	}

	for _, f := range fields {
		if f.Name == extract.FieldImageURL {
			if f.Value != "" && f.Value != extract.Unavailable {
				data.ImageURL = f.Value
			}
			continue
		}
		if f.Name == extract.FieldTitle && f.Value != extract.Unavailable {
			data.Alt = f.Value
		}
		data.Captions = append(data.Captions, f)
	}

	return &Artifact{
		Kind:       KindFields,
		HTML:       execute(fieldsTmpl, data),
		RenderedAt: time.Now(),
	}
}

// TransportFailure renders a short inline message in place of the normal
// artifact.
func (r *Renderer) TransportFailure(f *transport.Failure) *Artifact {
	return &Artifact{
		Kind:       KindTransportError,
		Text:       f.Error(),
		HTML:       execute(transportErrTmpl, f.Error()),
		RenderedAt: time.Now(),
	}
}

// DecodeFailure renders the parse error together with the raw payload so the
// user can inspect what came back.
func (r *Renderer) DecodeFailure(f *decode.Failure) *Artifact {
	return &Artifact{
		Kind:       KindDecodeError,
		Text:       f.Message,
		HTML:       execute(decodeErrTmpl, f),
		RenderedAt: time.Now(),
	}
}

func execute(t *template.Template, data any) string {
	var buf bytes.Buffer
	// The templates only touch fields that exist; an execute error here would
	// be a programming bug, surfaced as an empty fragment.
	_ = t.Execute(&buf, data)
	return buf.String()
}
