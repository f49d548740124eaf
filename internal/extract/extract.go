// Package extract pulls named display fields out of a decoded value using
// per-endpoint profiles. Extraction is best-effort and per-field: a path that
// misses (absent key, out-of-range index, wrong type along the way) yields
// the Unavailable sentinel for that field only.
package extract

import (
	"github.com/tidwall/gjson"

	"github.com/mirelk/jsonlens/internal/decode"
)

// Unavailable marks a field that was requested but not found. It is rendered
// visibly so the user can see the gap; it is distinct from JSON null and from
// an empty string supplied by the endpoint.
const Unavailable = "(unavailable)"

// FieldSpec maps an output name to a path over the decoded document. Paths
// use dotted steps: a numeric step indexes into a sequence, any other step
// looks up a key in a mapping (e.g. "0.breeds.0.name").
type FieldSpec struct {
	Out  string `json:"out"`
	Path string `json:"path"`
}

// Profile is an ordered list of field specs for one endpoint shape.
type Profile struct {
	Name   string      `json:"name"`
	Fields []FieldSpec `json:"fields"`
}

// Field is one extracted output value, in profile order.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Extract resolves every field of the profile against v. Fields are
// independent; a miss in one never affects the others.
func (p Profile) Extract(v *decode.Value) []Field {
	out := make([]Field, 0, len(p.Fields))
	for _, fs := range p.Fields {
		out = append(out, Field{Name: fs.Out, Value: resolve(v, fs.Path)})
	}
	return out
}

func resolve(v *decode.Value, path string) string {
	res := v.Get(path)
	if !res.Exists() || res.Type == gjson.Null {
		return Unavailable
	}
	return res.String()
}

// Lookup finds a field by name in an extracted set. The second return is
// false when the profile never produced that name.
func Lookup(fields []Field, name string) (string, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}
