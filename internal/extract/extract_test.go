package extract_test

import (
	"testing"

	"github.com/mirelk/jsonlens/internal/decode"
	"github.com/mirelk/jsonlens/internal/extract"
)

func mustDecode(t *testing.T, body string) *decode.Value {
	t.Helper()
	v, fail := decode.Decode([]byte(body))
	if fail != nil {
		t.Fatalf("decode %q: %v", body, fail)
	}
	return v
}

// TestProfile_EmptySequenceYieldsSentinel checks that indexing into an empty
// sequence produces the unavailable sentinel, not an error.
func TestProfile_EmptySequenceYieldsSentinel(t *testing.T) {
	t.Parallel()

	v := mustDecode(t, `{"breeds":[]}`)
	p := extract.Profile{
		Name: "test",
		Fields: []extract.FieldSpec{
			{Out: "name", Path: "breeds.0.name"},
			{Out: "description", Path: "breeds.0.description"},
		},
	}

	fields := p.Extract(v)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	for _, f := range fields {
		if f.Value != extract.Unavailable {
			t.Errorf("field %q = %q, want the unavailable sentinel", f.Name, f.Value)
		}
	}
}

// TestProfile_FieldsAreIndependent checks that one missing path does not
// affect extraction of the others.
func TestProfile_FieldsAreIndependent(t *testing.T) {
	t.Parallel()

	v := mustDecode(t, `[{"id":"abc","url":"http://img/abc.jpg","breeds":[]}]`)
	p := extract.Profile{
		Name: "test",
		Fields: []extract.FieldSpec{
			{Out: "imageUrl", Path: "0.url"},
			{Out: "title", Path: "0.breeds.0.name"},
			{Out: "id", Path: "0.id"},
		},
	}

	fields := p.Extract(v)

	if got, _ := extract.Lookup(fields, "imageUrl"); got != "http://img/abc.jpg" {
		t.Errorf("imageUrl = %q, want the url", got)
	}
	if got, _ := extract.Lookup(fields, "title"); got != extract.Unavailable {
		t.Errorf("title = %q, want sentinel", got)
	}
	if got, _ := extract.Lookup(fields, "id"); got != "abc" {
		t.Errorf("id = %q, want abc", got)
	}
}

func TestProfile_TypeMismatchYieldsSentinel(t *testing.T) {
	t.Parallel()

	// "breeds" is a string here; indexing into it must miss, not crash.
	v := mustDecode(t, `{"breeds":"not a list"}`)
	p := extract.Profile{
		Fields: []extract.FieldSpec{{Out: "name", Path: "breeds.0.name"}},
	}

	fields := p.Extract(v)
	if fields[0].Value != extract.Unavailable {
		t.Errorf("got %q, want sentinel on type mismatch", fields[0].Value)
	}
}

func TestProfile_NullYieldsSentinel(t *testing.T) {
	t.Parallel()

	v := mustDecode(t, `{"title":null,"description":""}`)
	p := extract.Profile{
		Fields: []extract.FieldSpec{
			{Out: "title", Path: "title"},
			{Out: "description", Path: "description"},
		},
	}

	fields := p.Extract(v)
	if got, _ := extract.Lookup(fields, "title"); got != extract.Unavailable {
		t.Errorf("null title = %q, want sentinel", got)
	}
	// An empty string supplied by the endpoint is a value, not a gap.
	if got, _ := extract.Lookup(fields, "description"); got != "" {
		t.Errorf("empty description = %q, want empty string", got)
	}
}

func TestBuiltinProfiles_CoverDemoShapes(t *testing.T) {
	t.Parallel()

	profiles := extract.BuiltinProfiles()
	cat, ok := profiles[extract.ProfileCatImage]
	if !ok {
		t.Fatal("missing cat-image profile")
	}

	v := mustDecode(t, `[{"url":"http://img/1.jpg","breeds":[{"name":"Aegean","description":"Friendly."}]}]`)
	fields := cat.Extract(v)

	if got, _ := extract.Lookup(fields, extract.FieldImageURL); got != "http://img/1.jpg" {
		t.Errorf("imageUrl = %q", got)
	}
	if got, _ := extract.Lookup(fields, extract.FieldTitle); got != "Aegean" {
		t.Errorf("title = %q", got)
	}
	if got, _ := extract.Lookup(fields, extract.FieldDescription); got != "Friendly." {
		t.Errorf("description = %q", got)
	}

	if _, ok := profiles[extract.ProfileMuseumObject]; !ok {
		t.Fatal("missing museum-object profile")
	}
}
