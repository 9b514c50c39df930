package gallery

import (
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/vegagallery/vegagallery/pkg/errors"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

//go:embed assets/*
var assetsFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// AssetNames lists the static files every generated gallery ships with.
var AssetNames = []string{"lazyload.js", "gallery.css"}

// Site is one complete generated gallery.
type Site struct {
	Config      Config
	RunID       string
	GeneratedAt time.Time
	Pages       []Page
}

// TotalCharts returns the chart count across all pages.
func (s *Site) TotalCharts() int {
	total := 0
	for _, p := range s.Pages {
		total += len(p.Placeholders)
	}
	return total
}

// PageFilename returns the output file name for a state page.
func PageFilename(st State) string {
	return st.Slug() + ".html"
}

// navItem is one navigation link in the rendered templates.
type navItem struct {
	Code string
	Name string
	Href string
}

func (s *Site) nav() []navItem {
	items := make([]navItem, len(s.Pages))
	for i, p := range s.Pages {
		items[i] = navItem{
			Code: p.State.Code,
			Name: p.State.Name,
			Href: PageFilename(p.State),
		}
	}
	return items
}

// bootstrap is the window.GALLERY payload the lazy-load script consumes.
type bootstrap struct {
	Cap    int         `json:"cap"`
	Charts []bootChart `json:"charts"`
}

type bootChart struct {
	ID        string          `json:"id"`
	Module    string          `json:"module"`
	EstMillis int             `json:"estMillis"`
	Spec      json.RawMessage `json:"spec"`
}

// RenderPage writes one state page as HTML.
func RenderPage(w io.Writer, site *Site, page Page) error {
	boot := bootstrap{
		Cap:    site.Config.ConcurrencyCap,
		Charts: make([]bootChart, len(page.Placeholders)),
	}
	for i, p := range page.Placeholders {
		boot.Charts[i] = bootChart{
			ID:        p.ID,
			Module:    p.Module,
			EstMillis: p.EstMillis,
			Spec:      p.Spec,
		}
	}
	// json.Marshal escapes <, > and & by default, so the payload is safe
	// inside a script element.
	bootJSON, err := json.Marshal(boot)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal chart specs for %s", page.State.Code)
	}

	data := struct {
		Title        string
		State        State
		RunID        string
		Nav          []navItem
		Placeholders []Placeholder
		ChartCount   int
		Cap          int
		Boot         template.JS
	}{
		Title:        site.Config.Title,
		State:        page.State,
		RunID:        site.RunID,
		Nav:          site.nav(),
		Placeholders: page.Placeholders,
		ChartCount:   len(page.Placeholders),
		Cap:          site.Config.ConcurrencyCap,
		Boot:         template.JS(bootJSON),
	}

	if err := pageTemplates.ExecuteTemplate(w, "page.html.tmpl", data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render page %s", page.State.Code)
	}
	return nil
}

// RenderIndex writes the gallery home page as HTML.
func RenderIndex(w io.Writer, site *Site) error {
	data := struct {
		Title       string
		RunID       string
		PageCount   int
		TotalCharts int
		Cap         int
		Nav         []navItem
		GeneratedAt string
	}{
		Title:       site.Config.Title,
		RunID:       site.RunID,
		PageCount:   len(site.Pages),
		TotalCharts: site.TotalCharts(),
		Cap:         site.Config.ConcurrencyCap,
		Nav:         site.nav(),
		GeneratedAt: site.GeneratedAt.UTC().Format(time.RFC3339),
	}

	if err := pageTemplates.ExecuteTemplate(w, "index.html.tmpl", data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render index")
	}
	return nil
}

// Asset returns the contents of an embedded static asset by name.
func Asset(name string) ([]byte, error) {
	data, err := fs.ReadFile(assetsFS, "assets/"+name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "asset %s", name)
	}
	return data, nil
}
