package server

import (
	"github.com/mirelk/jsonlens/internal/render"
	"github.com/mirelk/jsonlens/internal/request"
)

// DocumentState is the editable state of the document: the current request
// spec plus view mode, extraction profile and the latest issued generation.
type DocumentState struct {
	Spec       request.Spec `json:"spec"`
	View       string       `json:"view" example:"fields"`
	Profile    string       `json:"profile" example:"cat-image"`
	Generation uint64       `json:"generation" example:"3"`
}

// UpdateSpecRequest carries a parameter edit. View and Profile are optional;
// when empty the current ones are kept.
type UpdateSpecRequest struct {
	Method    string `json:"method" example:"GET"`
	Host      string `json:"host" example:"api.thecatapi.com"`
	Path      string `json:"path" example:"/v1/images/search"`
	Query     string `json:"query" example:"limit=1"`
	PathParam string `json:"path_param" example:""`
	View      string `json:"view" example:"pretty"`
	Profile   string `json:"profile" example:""`
}

// SavePresetRequest stores the given endpoint configuration under a slug.
type SavePresetRequest struct {
	Slug      string `json:"slug" example:"cat-image"`
	Name      string `json:"name" example:"Random cat image"`
	Method    string `json:"method" example:"GET"`
	Host      string `json:"host" example:"api.thecatapi.com"`
	Path      string `json:"path" example:"/v1/images/search"`
	Query     string `json:"query" example:"limit=1"`
	PathParam string `json:"path_param" example:""`
	Profile   string `json:"profile" example:"cat-image"`
	View      string `json:"view" example:"fields"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}

func (r UpdateSpecRequest) spec() request.Spec {
	return request.Spec{
		Method:    request.Method(r.Method),
		Host:      r.Host,
		Path:      r.Path,
		Query:     r.Query,
		PathParam: r.PathParam,
	}.Normalize()
}

func (r SavePresetRequest) spec() request.Spec {
	return request.Spec{
		Method:    request.Method(r.Method),
		Host:      r.Host,
		Path:      r.Path,
		Query:     r.Query,
		PathParam: r.PathParam,
	}.Normalize()
}

func viewOrDefault(v string, fallback render.View) render.View {
	switch render.View(v) {
	case render.ViewPretty, render.ViewFields:
		return render.View(v)
	default:
		return fallback
	}
}
