// Package render turns parsed bibliography entries and site data files into
// static HTML pages.
package render

import (
	"html/template"
	"regexp"

	"github.com/chaofengc/scholar/internal/author"
	"github.com/chaofengc/scholar/internal/bibtex"
	"github.com/chaofengc/scholar/internal/site"
)

// Superscript markers attached to decorated author names.
const (
	CoFirstMarker       = "*"
	CorrespondingMarker = "✉" // envelope
)

// doiResolver is the fixed DOI resolver URL prefix.
const doiResolver = "https://doi.org/"

// AuthorView is one decorated author name. Decorations are independent and
// cumulative: a name can be bolded, marked, and linked at the same time.
type AuthorView struct {
	Name          string
	Website       string // hyperlink target, empty for undecorated names
	Distinguished bool   // the site owner, rendered bold
	CoFirst       bool
	Corresponding bool
}

// PubView is one publication prepared for the page templates.
type PubView struct {
	CiteKey  string
	Title    string
	Authors  []AuthorView
	Venue    template.HTML
	PDF      string
	Code     string
	DOI      string
	Image    string
	Citation string
	Selected bool
}

// Renderer decorates entries using per-entry overrides and coauthor
// metadata. A zero config or coauthor map yields undecorated output;
// no entry is ever rejected for missing data.
type Renderer struct {
	owner     string
	config    site.PubConfig
	coauthors site.CoauthorInfo
}

// New creates a renderer. owner is the distinguished display name bolded in
// author lists; config and coauthors may be empty.
func New(owner string, config site.PubConfig, coauthors site.CoauthorInfo) *Renderer {
	return &Renderer{owner: owner, config: config, coauthors: coauthors}
}

// View prepares one entry for rendering. Absent fields come out as empty
// strings, never as errors.
func (r *Renderer) View(e bibtex.Entry) PubView {
	ov := r.config[e.CiteKey]

	return PubView{
		CiteKey:  e.CiteKey,
		Title:    e.Field("title"),
		Authors:  r.authorViews(e.Field("author"), ov),
		Venue:    r.venueHTML(e, ov),
		PDF:      firstNonEmpty(ov.PDF, e.Field("url"), e.Field("pdf")),
		Code:     firstNonEmpty(ov.GitHub, e.Field("github"), ov.Code, e.Field("code")),
		DOI:      doiLink(e.Field("doi")),
		Image:    ov.Image,
		Citation: bibtex.FormatCitation(e),
		Selected: r.isSelected(e, ov),
	}
}

// Views prepares a list of entries in order.
func (r *Renderer) Views(entries []bibtex.Entry) []PubView {
	views := make([]PubView, len(entries))
	for i, e := range entries {
		views[i] = r.View(e)
	}
	return views
}

// Selected returns the entries featured on the summary view: override
// select flag or an entry-level selected field.
func (r *Renderer) Selected(entries []bibtex.Entry) []bibtex.Entry {
	var out []bibtex.Entry
	for _, e := range entries {
		if r.isSelected(e, r.config[e.CiteKey]) {
			out = append(out, e)
		}
	}
	return out
}

func (r *Renderer) isSelected(e bibtex.Entry, ov site.PubOverride) bool {
	return ov.Select || e.Field("selected") == "true"
}

// authorViews splits a raw author field and applies decorations per name.
func (r *Renderer) authorViews(raw string, ov site.PubOverride) []AuthorView {
	coFirst := author.NewSet(ov.CoFirstAuthors)
	corresponding := author.NewSet(ov.CorrespondingAuthors)

	names := author.SplitList(raw)
	views := make([]AuthorView, len(names))
	for i, name := range names {
		views[i] = AuthorView{
			Name:          name,
			Website:       r.website(name),
			Distinguished: author.Match(name, r.owner) && r.owner != "",
			CoFirst:       coFirst.Contains(name),
			Corresponding: corresponding.Contains(name),
		}
	}
	return views
}

// website returns the coauthor website for a display name, if any.
func (r *Renderer) website(name string) string {
	if meta, ok := r.coauthors[name]; ok {
		return meta.Website
	}
	// Tolerate case and spacing differences between the bibliography and
	// the coauthor file.
	for display, meta := range r.coauthors {
		if author.Match(display, name) {
			return meta.Website
		}
	}
	return ""
}

// parenPattern finds parenthesized substrings in venue strings.
var parenPattern = regexp.MustCompile(`\(([^)]*)\)`)

// venueHTML builds the venue line: override or type-dependent field, with
// parenthesized substrings emphasized, followed by the year and an optional
// acceptance annotation.
func (r *Renderer) venueHTML(e bibtex.Entry, ov site.PubOverride) template.HTML {
	venue := ov.Venue
	if venue == "" {
		switch e.Type {
		case "article":
			venue = e.Field("journal")
		case "inproceedings", "conference":
			venue = e.Field("booktitle")
		default:
			venue = e.Field("publisher")
		}
	}

	out := parenPattern.ReplaceAllString(template.HTMLEscapeString(venue), "(<em>$1</em>)")
	if year := e.Field("year"); year != "" {
		out += ", " + template.HTMLEscapeString(year)
	}
	if ov.AcceptInfo != "" {
		out += ` <span class="accept">` + template.HTMLEscapeString(ov.AcceptInfo) + `</span>`
	}
	return template.HTML(out)
}

// doiLink builds the resolver URL for a DOI, or "" when absent.
func doiLink(doi string) string {
	if doi == "" {
		return ""
	}
	return doiResolver + doi
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
