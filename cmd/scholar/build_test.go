package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chaofengc/scholar/internal/site"
)

func TestInitThenBuildOffline(t *testing.T) {
	dir := t.TempDir()

	if err := runInit(nil, []string{dir}); err != nil {
		t.Fatalf("runInit() error: %v", err)
	}
	if !site.IsSite(dir) {
		t.Fatal("init did not create site.yml")
	}
	for _, name := range []string{
		site.BibFile, site.PubConfigFile, site.CoauthorsFile,
		site.MembersFile, site.ProjectsFile, site.GalleryFile, site.NewsFile,
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("init missing %s: %v", name, err)
		}
	}

	cfg, err := site.Load(dir)
	if err != nil {
		t.Fatalf("loading scaffolded config: %v", err)
	}

	// An offline build of a fresh site must succeed on the sample data.
	if err := buildSite(context.Background(), dir, cfg, nil, true); err != nil {
		t.Fatalf("buildSite() error: %v", err)
	}

	body, err := os.ReadFile(filepath.Join(cfg.Output(dir), "publications.html"))
	if err != nil {
		t.Fatalf("reading built page: %v", err)
	}
	if !strings.Contains(string(body), "pub-title") {
		t.Error("built publications page carries no publication entries")
	}
}

func TestBuildSite_FallsBackToSampleWithoutBibFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &site.Config{Title: "T", Author: "A"}
	if err := cfg.Save(dir); err != nil {
		t.Fatal(err)
	}

	if err := buildSite(context.Background(), dir, cfg, nil, true); err != nil {
		t.Fatalf("buildSite() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Output(dir), "index.html")); err != nil {
		t.Errorf("no index.html rendered: %v", err)
	}
}
