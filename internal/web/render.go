package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer implements echo.Renderer over the embedded html/template set.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every embedded template. Each page declares itself
// with {{define "name"}} and is rendered by that name.
func NewRenderer() (*Renderer, error) {
	t, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	if r.templates.Lookup(name) == nil {
		return fmt.Errorf("template %q not found", name)
	}
	return r.templates.ExecuteTemplate(w, name, data)
}

// StaticHandler serves the embedded stylesheet under /static.
func StaticHandler() echo.HandlerFunc {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(http.FS(sub))))
}

// Register wires the renderer, the landing page and the static assets.
func Register(e *echo.Echo, r *Renderer) {
	e.Renderer = r
	e.GET("/", Home)
	e.GET("/static/*", StaticHandler())
}

// Home renders the landing page.
func Home(c echo.Context) error {
	return c.Render(http.StatusOK, "index", nil)
}
