package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	PageDashboard = "dashboard.html"
	PagePayments  = "payments.html"
	PageDetail    = "payment_detail.html"
	PageNew       = "payment_new.html"
)

const (
	FragmentDashboard = "dashboard_summary"
	FragmentList      = "payments_list"
	FragmentDetail    = "payment_detail"
)

var pageFiles = []string{PageDashboard, PagePayments, PageDetail, PageNew}

// Renderer implements echo.Renderer. Page names render the whole layout,
// fragment names render a single partial.
type Renderer struct {
	pages     map[string]*template.Template
	fragments *template.Template
}

func NewRenderer() (*Renderer, error) {
	fragments, err := template.New("partials").ParseFS(templateFS, "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parsing partials: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		t, err := template.New(name).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing page %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Renderer{pages: pages, fragments: fragments}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	if page, ok := r.pages[name]; ok {
		return page.ExecuteTemplate(w, "layout", data)
	}
	if r.fragments.Lookup(name) == nil {
		return fmt.Errorf("unknown template %q", name)
	}
	return r.fragments.ExecuteTemplate(w, name, data)
}

// Static returns the embedded stylesheet and script.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
