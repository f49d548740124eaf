package render_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/mirelk/jsonlens/internal/decode"
	"github.com/mirelk/jsonlens/internal/extract"
	"github.com/mirelk/jsonlens/internal/render"
	"github.com/mirelk/jsonlens/internal/transport"
)

func mustDecode(t *testing.T, body string) *decode.Value {
	t.Helper()
	v, fail := decode.Decode([]byte(body))
	if fail != nil {
		t.Fatalf("decode %q: %v", body, fail)
	}
	return v
}

func parseHTML(t *testing.T, fragment string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("parse artifact HTML: %v", err)
	}
	return doc
}

// TestPretty_RoundTrip checks that pretty-printing then re-decoding yields a
// structurally equal document.
func TestPretty_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`{"breeds":[]}`,
		`[{"id":"abc","url":"http://img/abc.jpg","breeds":[{"name":"Aegean"}]}]`,
		`{"a":1,"b":[true,false,null],"c":{"d":"x"}}`,
		`"just a string"`,
	}

	r := render.NewRenderer()
	for _, in := range inputs {
		art := r.Pretty(mustDecode(t, in))
		if art.Kind != render.KindPretty {
			t.Fatalf("kind = %q, want pretty", art.Kind)
		}

		var want, got any
		if err := json.Unmarshal([]byte(in), &want); err != nil {
			t.Fatalf("unmarshal input: %v", err)
		}
		if err := json.Unmarshal([]byte(art.Text), &got); err != nil {
			t.Fatalf("pretty output is not valid JSON: %v\n%s", err, art.Text)
		}
		if !reflect.DeepEqual(want, got) {
			t.Errorf("round trip changed the document:\nin:  %s\nout: %s", in, art.Text)
		}
	}
}

func TestPretty_IndentsWithFourSpaces(t *testing.T) {
	t.Parallel()

	art := render.NewRenderer().Pretty(mustDecode(t, `{"breeds":[]}`))

	want := "{\n    \"breeds\": []\n}"
	if got := strings.TrimSpace(art.Text); got != want {
		t.Errorf("pretty text = %q, want %q", got, want)
	}
	if !strings.Contains(art.HTML, "<pre") {
		t.Errorf("pretty HTML should wrap the text in a pre element: %s", art.HTML)
	}
}

func TestFields_ImageAndCaptions(t *testing.T) {
	t.Parallel()

	art := render.NewRenderer().Fields([]extract.Field{
		{Name: extract.FieldImageURL, Value: "http://img/abc.jpg"},
		{Name: extract.FieldTitle, Value: "Aegean"},
		{Name: extract.FieldDescription, Value: extract.Unavailable},
	})
	if art.Kind != render.KindFields {
		t.Fatalf("kind = %q, want fields", art.Kind)
	}

	doc := parseHTML(t, art.HTML)
	if src, _ := doc.Find("img").Attr("src"); src != "http://img/abc.jpg" {
		t.Errorf("img src = %q, want the extracted url", src)
	}

	captions := doc.Find("figcaption").Text()
	if !strings.Contains(captions, "Aegean") {
		t.Errorf("captions missing title: %q", captions)
	}
	// The unavailable sentinel must stay visible, not be dropped.
	if !strings.Contains(captions, extract.Unavailable) {
		t.Errorf("captions missing sentinel: %q", captions)
	}
}

func TestFields_PlaceholderWhenImageMissing(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value string
	}{
		{"sentinel", extract.Unavailable},
		{"empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := render.NewRenderer()
			art := r.Fields([]extract.Field{
				{Name: extract.FieldImageURL, Value: tc.value},
				{Name: extract.FieldTitle, Value: "something"},
			})

			doc := parseHTML(t, art.HTML)
			if src, _ := doc.Find("img").Attr("src"); src != render.DefaultPlaceholderImageURL {
				t.Errorf("img src = %q, want the placeholder", src)
			}
		})
	}
}

func TestTransportFailure_ShortMessage(t *testing.T) {
	t.Parallel()

	art := render.NewRenderer().TransportFailure(&transport.Failure{Message: "connection refused"})
	if art.Kind != render.KindTransportError {
		t.Fatalf("kind = %q, want transport_error", art.Kind)
	}

	doc := parseHTML(t, art.HTML)
	text := doc.Find(".pipeline-error").Text()
	if !strings.Contains(text, "connection refused") {
		t.Errorf("error text %q missing the failure message", text)
	}
}

// TestDecodeFailure_ShowsRawPayload checks the decode error view includes the
// raw payload next to the parse error so the user can inspect it.
func TestDecodeFailure_ShowsRawPayload(t *testing.T) {
	t.Parallel()

	raw := `{"url": "http://x"`
	art := render.NewRenderer().DecodeFailure(&decode.Failure{Raw: raw, Message: "unexpected end of JSON input"})
	if art.Kind != render.KindDecodeError {
		t.Fatalf("kind = %q, want decode_error", art.Kind)
	}

	doc := parseHTML(t, art.HTML)
	if got := doc.Find("pre.raw-payload").Text(); got != raw {
		t.Errorf("raw payload = %q, want %q", got, raw)
	}
	if !strings.Contains(doc.Text(), "unexpected end of JSON input") {
		t.Errorf("view missing the parse error message")
	}
}
