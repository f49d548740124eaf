package request

// Method is the HTTP method of a request spec. Only GET is supported; the
// type exists so the input surface can stay an enum rather than free text.
type Method string

const (
	// MethodGet is the only supported method.
	MethodGet Method = "GET"
)

// Spec holds the user-editable request fields: method, host, path, query
// string and an optional path-appended parameter. Host and path concatenated
// under an https scheme must form the intended URL; no validation happens
// here, malformed values simply fail later at the transport.
type Spec struct {
	Method    Method `json:"method"`
	Host      string `json:"host"`
	Path      string `json:"path"`
	Query     string `json:"query"`
	PathParam string `json:"path_param,omitempty"`
}

// URL composes the fully-qualified URL for the spec:
//
//	https://<host><path><pathParam>[?<query>]
//
// The path parameter is appended verbatim after the path, and the query is
// appended verbatim after "?" when non-empty. Characters are passed through
// untouched; the builder never errors.
func (s Spec) URL() string {
	u := "https://" + s.Host + s.Path
	if s.PathParam != "" {
		u += s.PathParam
	}
	if s.Query != "" {
		u += "?" + s.Query
	}
	return u
}

// Normalize fills in defaults that keep a spec usable: an empty method
// becomes GET. It returns the normalized copy.
func (s Spec) Normalize() Spec {
	if s.Method == "" {
		s.Method = MethodGet
	}
	return s
}
