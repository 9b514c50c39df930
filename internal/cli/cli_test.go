package cli

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}

	want := map[string]bool{
		"generate":   false,
		"plots":      false,
		"serve":      false,
		"simulate":   false,
		"cache":      false,
		"completion": false,
	}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestResolveConfigFlagOverrides(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)

	cfg, err := c.resolveConfig(generateFlags{
		title:        "Test Gallery",
		states:       []string{"ca", " tx"},
		modules:      []string{"scatter"},
		plotsPerPage: 7,
		baseSeed:     99,
		cap:          3,
	})
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}

	if cfg.Title != "Test Gallery" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if len(cfg.States) != 2 || cfg.States[0] != "CA" || cfg.States[1] != "TX" {
		t.Errorf("States = %v, want [CA TX]", cfg.States)
	}
	if cfg.PlotsPerPage != 7 {
		t.Errorf("PlotsPerPage = %d, want 7", cfg.PlotsPerPage)
	}
	if cfg.BaseSeed != 99 {
		t.Errorf("BaseSeed = %d, want 99", cfg.BaseSeed)
	}
	if cfg.ConcurrencyCap != 3 {
		t.Errorf("ConcurrencyCap = %d, want 3", cfg.ConcurrencyCap)
	}
}

func TestResolveConfigRejectsUnknownState(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)

	if _, err := c.resolveConfig(generateFlags{states: []string{"ZZ"}}); err == nil {
		t.Error("expected error for unknown state code")
	}
}
