package http

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

type views struct {
	tmpl *template.Template
}

func newViews() *views {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}
	return &views{
		tmpl: template.Must(template.New("views").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind.
func (v *views) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := v.tmpl.ExecuteTemplate(&buf, name+".html", data); err != nil {
		log.Printf("render %s: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
