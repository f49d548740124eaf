package server

import (
	"html/template"
	"net/http"

	"github.com/mirelk/jsonlens/internal/logging"
)

// The document page: editable request fields on top, the artifact slot
// below. The page talks to the JSON API and replaces the artifact slot with
// whatever the websocket pushes.
var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, s.documentState()); err != nil {
		s.logger.Warn("rendering document page", logging.Field{Key: "error", Value: err.Error()})
	}
}

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>jsonlens</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; }
label { display: block; margin: 0.4rem 0; }
input, select { width: 24rem; }
#artifact { border: 1px solid #ccc; padding: 1rem; margin-top: 1.5rem; }
#artifact img { max-width: 100%; }
.pipeline-error { color: #a00; }
.raw-payload { background: #f6f6f6; padding: 0.5rem; overflow-x: auto; }
</style>
</head>
<body>
<h1>jsonlens</h1>
<form id="spec-form">
  <label>Method
    <select name="method"><option>GET</option></select>
  </label>
  <label>Host <input name="host" value="{{.Spec.Host}}"></label>
  <label>Path <input name="path" value="{{.Spec.Path}}"></label>
  <label>Query <input name="query" value="{{.Spec.Query}}"></label>
  <label>Path parameter <input name="path_param" value="{{.Spec.PathParam}}"></label>
  <label>View
    <select name="view">
      <option value="pretty">pretty JSON</option>
      <option value="fields">field display</option>
    </select>
  </label>
  <label>Profile <input name="profile" value="{{.Profile}}"></label>
  <button type="submit">Send</button>
</form>
<div id="artifact">waiting for the first run&hellip;</div>
<script>
const form = document.getElementById("spec-form");
form.view.value = {{.View}};
form.addEventListener("submit", async (e) => {
  e.preventDefault();
  const body = Object.fromEntries(new FormData(form));
  await fetch("/spec", {
    method: "PUT",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify(body),
  });
});
const proto = location.protocol === "https:" ? "wss:" : "ws:";
const ws = new WebSocket(proto + "//" + location.host + "/ws/artifact");
ws.onmessage = (ev) => {
  const artifact = JSON.parse(ev.data);
  document.getElementById("artifact").innerHTML = artifact.html;
};
</script>
</body>
</html>
`
