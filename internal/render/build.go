package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/chaofengc/scholar/internal/bibtex"
	"github.com/chaofengc/scholar/internal/markdown"
	"github.com/chaofengc/scholar/internal/site"
)

// StarFunc resolves a repository reference to a star count, zero when unknown.
type StarFunc func(ctx context.Context, repo string) int

// Builder writes the full set of site pages to an output directory.
type Builder struct {
	Site     *site.Config
	Renderer *Renderer
	Data     site.Data
	Stars    StarFunc
	Log      zerolog.Logger
}

// MemberView is a member with the bio rendered from Markdown.
type MemberView struct {
	site.Member
	BioHTML template.HTML
}

// ProjectView is a project card with rendered description and star count.
type ProjectView struct {
	site.Project
	DescriptionHTML template.HTML
	Stars           int
}

// NewsView is one dated news line with rendered text.
type NewsView struct {
	Date string
	HTML template.HTML
}

// pageData is the payload shared by all page templates; each page reads the
// fields it needs.
type pageData struct {
	Site     *site.Config
	Title    string
	Selected []PubView
	Groups   []YearGroup
	News     []NewsView
	Members  []MemberView
	Projects []ProjectView
	Gallery  []site.GalleryItem
}

// Build renders every page plus the stylesheet into outDir. Page data that
// fails to render degrades (a missing star count, an unparsable bio) rather
// than failing the build; only filesystem errors are fatal.
func (b *Builder) Build(ctx context.Context, entries []bibtex.Entry, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	pages := []struct {
		file string
		tmpl *template.Template
		data pageData
	}{
		{"index.html", indexTmpl, pageData{
			Title:    "Home",
			Selected: b.Renderer.Views(b.Renderer.Selected(entries)),
			News:     b.newsViews(),
		}},
		{"publications.html", publicationsTmpl, pageData{
			Title:  "Publications",
			Groups: b.Renderer.GroupByYear(entries),
		}},
		{"members.html", membersTmpl, pageData{
			Title:   "Members",
			Members: b.memberViews(),
		}},
		{"projects.html", projectsTmpl, pageData{
			Title:    "Projects",
			Projects: b.projectViews(ctx),
		}},
		{"gallery.html", galleryTmpl, pageData{
			Title:   "Gallery",
			Gallery: b.Data.Gallery,
		}},
	}

	for _, p := range pages {
		p.data.Site = b.Site
		if err := writePage(filepath.Join(outDir, p.file), p.tmpl, p.data); err != nil {
			return err
		}
		b.Log.Debug().Str("page", p.file).Msg("rendered")
	}

	if err := writeStylesheet(outDir); err != nil {
		return err
	}
	return nil
}

func (b *Builder) newsViews() []NewsView {
	views := make([]NewsView, len(b.Data.News))
	for i, n := range b.Data.News {
		views[i] = NewsView{Date: n.Date, HTML: markdown.ToHTMLOrText(n.Text)}
	}
	return views
}

func (b *Builder) memberViews() []MemberView {
	views := make([]MemberView, len(b.Data.Members))
	for i, m := range b.Data.Members {
		views[i] = MemberView{Member: m, BioHTML: markdown.ToHTMLOrText(m.Bio)}
	}
	return views
}

func (b *Builder) projectViews(ctx context.Context) []ProjectView {
	views := make([]ProjectView, len(b.Data.Projects))
	for i, p := range b.Data.Projects {
		v := ProjectView{Project: p, DescriptionHTML: markdown.ToHTMLOrText(p.Description)}
		if p.Repo != "" && b.Stars != nil {
			v.Stars = b.Stars(ctx, p.Repo)
		}
		views[i] = v
	}
	return views
}

// writePage executes a page template into a buffer first so a template error
// never leaves a truncated file behind.
func writePage(path string, tmpl *template.Template, data pageData) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("rendering %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// CopyStatic copies the site's static asset directory into outDir. A missing
// source directory is not an error; sites without assets are fine.
func CopyStatic(srcDir, outDir string) error {
	info, err := os.Stat(srcDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", srcDir)
	}
	dst := filepath.Join(outDir, filepath.Base(srcDir))
	// os.CopyFS refuses to overwrite, so clear the previous copy first.
	if err := os.RemoveAll(dst); err != nil {
		return err
	}
	if err := os.CopyFS(dst, os.DirFS(srcDir)); err != nil {
		return fmt.Errorf("copying static assets: %w", err)
	}
	return nil
}
