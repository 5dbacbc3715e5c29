package server

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

type page struct {
	Path     string
	Title    string
	Endpoint string
	Fields   []string
	Summary  string
}

var pages = []page{
	{
		Path: "euler", Title: "Euler mejorado", Endpoint: "/calcular_euler",
		Fields:  []string{"funcion", "x0", "y0", "h", "xn"},
		Summary: "Heun predictor-corrector for y' = f(x, y).",
	},
	{
		Path: "runge_kutta", Title: "Runge-Kutta 4", Endpoint: "/calcular_rk4",
		Fields:  []string{"funcion", "x0", "y0", "h", "xn"},
		Summary: "Classical fourth-order Runge-Kutta for y' = f(x, y).",
	},
	{
		Path: "newton", Title: "Newton-Raphson", Endpoint: "/calcular_newton",
		Fields:  []string{"funcion", "x0", "tol", "max_iter"},
		Summary: "Root of f(x) = 0 with the derivative taken symbolically.",
	},
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>{{.Heading}}</title></head>
<body>
<h1>{{.Heading}}</h1>
{{range .Pages}}<section>
<h2><a href="/{{.Path}}">{{.Title}}</a></h2>
<p>{{.Summary}}</p>
<p><code>POST {{.Endpoint}}</code> with JSON fields {{range $i, $f := .Fields}}{{if $i}}, {{end}}<code>{{$f}}</code>{{end}}.</p>
</section>
{{end}}<p><code>POST /get_derivative</code> returns f'(x) as text and LaTeX.</p>
</body>
</html>
`))

func (s *Server) handlePage(path string) http.HandlerFunc {
	data := struct {
		Heading string
		Pages   []page
	}{Heading: "Métodos Numéricos", Pages: pages}

	for _, p := range pages {
		if p.Path == path {
			data.Heading = p.Title
			data.Pages = []page{p}
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, data); err != nil {
			s.log(r).Error("render page", zap.Error(err))
		}
	}
}
