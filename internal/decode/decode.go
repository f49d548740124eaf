// Package decode turns a raw response body into a structured value. The
// decoded value keeps the original document text, so key order and sequence
// order survive exactly as the endpoint sent them.
package decode

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Value is an immutable decoded payload: the raw JSON text plus its parsed
// root. Produced once per pipeline run and discarded when the next run
// replaces it.
type Value struct {
	raw  []byte
	root gjson.Result
}

// Failure is the decode-level failure variant. Raw holds the offending
// payload byte-for-byte so the caller can show it next to the parse error.
type Failure struct {
	Raw     string
	Message string
}

func (f *Failure) Error() string { return f.Message }

// Decode parses body as JSON (RFC 8259). On malformed input it returns a
// Failure carrying the raw text and a human-readable syntax error; transport
// problems never reach here, so any failure is strictly a parse failure.
func Decode(body []byte) (*Value, *Failure) {
	if !gjson.ValidBytes(body) {
		return nil, &Failure{
			Raw:     string(body),
			Message: syntaxMessage(body),
		}
	}

	raw := make([]byte, len(body))
	copy(raw, body)
	return &Value{raw: raw, root: gjson.ParseBytes(raw)}, nil
}

// Raw returns the original document text.
func (v *Value) Raw() []byte { return v.raw }

// Root returns the parsed root result.
func (v *Value) Root() gjson.Result { return v.root }

// Get resolves a gjson path against the document.
func (v *Value) Get(path string) gjson.Result {
	return gjson.GetBytes(v.raw, path)
}

// syntaxMessage runs the payload through encoding/json solely to harvest a
// readable error message; gjson validates but does not report positions.
func syntaxMessage(body []byte) string {
	var parsed interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return err.Error()
	}
	return "invalid JSON"
}
