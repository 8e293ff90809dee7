// Package webapp is the server-rendered browser front end. It talks to
// the backend API through the typed client, keeps the authenticated
// session in the session store, and renders pages from embedded
// templates.
package webapp

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer implements echo.Renderer over the embedded page templates.
// Every page file defines a uniquely named template, so a single parsed
// set serves all pages.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(template.New("").
			Funcs(templateFuncs()).
			ParseFS(templatesFS, "templates/*.html")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// PageData is the envelope every page template receives.
type PageData struct {
	Title string
	User  *domain.SessionRecord
	// Flash is an inline message carried into the next render.
	Flash string
	// Refresh, when set, becomes the page's meta-refresh directive,
	// e.g. "2;url=/dashboard".
	Refresh string
	Data    interface{}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(v float64) string {
			return fmt.Sprintf("$%.2f", v)
		},
		"number": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("2006-01-02 15:04")
		},
		"pngSrc": func(b64 string) template.URL {
			return template.URL("data:image/png;base64," + b64)
		},
	}
}
