package gallery

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func testSite(t *testing.T) *Site {
	t.Helper()
	cfg := DefaultConfig()
	cfg.States = []string{"CA", "TX"}
	cfg.PlotsPerPage = 4

	site := &Site{
		Config:      cfg,
		RunID:       "run-test",
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	seed := cfg.BaseSeed
	for _, st := range cfg.SelectedStates() {
		spec := cfg.PageSpecFor(st, seed)
		page, err := BuildPage(spec, nil)
		if err != nil {
			t.Fatalf("BuildPage(%s): %v", st.Code, err)
		}
		site.Pages = append(site.Pages, page)
		seed += int64(spec.Plots)
	}
	return site
}

func TestRenderPage(t *testing.T) {
	site := testSite(t)
	var buf bytes.Buffer
	if err := RenderPage(&buf, site, site.Pages[0]); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		`<title>Vega Gallery - California</title>`,
		`content="run-test"`,
		`id="vis-ca-1"`,
		`id="vis-ca-4"`,
		`href="tx.html"`,
		`window.GALLERY = `,
		`"cap":6`,
		`vega-embed@6`,
		`src="lazyload.js"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(html, "vis-ca-5") {
		t.Error("page has more placeholders than configured")
	}
}

func TestRenderIndex(t *testing.T) {
	site := testSite(t)
	var buf bytes.Buffer
	if err := RenderIndex(&buf, site); err != nil {
		t.Fatalf("RenderIndex: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		`<title>Vega Gallery</title>`,
		`href="ca.html"`,
		`href="tx.html"`,
		`>8<`,            // total charts across two 4-chart pages
		`2025-06-01T12:00:00Z`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestPageFilename(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"CA", "ca.html"},
		{"NH", "nh.html"},
		{"RI", "ri.html"},
	}
	for _, tt := range tests {
		st := FindState(tt.code)
		if st == nil {
			t.Fatalf("FindState(%s) = nil", tt.code)
		}
		if got := PageFilename(*st); got != tt.want {
			t.Errorf("PageFilename(%s) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestAssets(t *testing.T) {
	for _, name := range AssetNames {
		data, err := Asset(name)
		if err != nil {
			t.Errorf("Asset(%s): %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("Asset(%s) is empty", name)
		}
	}
	if _, err := Asset("missing.js"); err == nil {
		t.Error("Asset(missing.js) succeeded, want error")
	}
}
