// Package bibtex parses BibTeX-style bibliography markup into entries and
// provides sorting, filtering, and citation formatting over them.
package bibtex

import (
	"sort"
	"strconv"
	"strings"
)

// Entry represents one parsed bibliographic record.
type Entry struct {
	// Type is the lower-cased entry type tag (article, inproceedings, ...).
	Type string `json:"type"`
	// CiteKey is the short identifier used to reference the entry.
	CiteKey string `json:"cite_key"`
	// Fields maps lower-cased field names to trimmed values.
	// Absent fields are missing keys, never empty placeholders.
	Fields map[string]string `json:"fields"`
}

// acceptedTypes is the fixed set of entry types retained by Parse.
// Entries of any other type are silently dropped.
var acceptedTypes = map[string]bool{
	"article":       true,
	"inproceedings": true,
	"conference":    true,
	"book":          true,
	"techreport":    true,
	"phdthesis":     true,
	"mastersthesis": true,
	"misc":          true,
}

// Field returns a field value, or the empty string when absent.
func (e Entry) Field(name string) string {
	return e.Fields[name]
}

// Year returns the numeric year of the entry, or 0 when the year field is
// missing or not a number.
func (e Entry) Year() int {
	y, err := strconv.Atoi(strings.TrimSpace(e.Fields["year"]))
	if err != nil || y < 0 {
		return 0
	}
	return y
}

// SortByYear sorts entries by numeric year, newest first. Entries without a
// parsable year sort last. The sort is stable and in place; the slice is also
// returned for chaining.
func SortByYear(entries []Entry) []Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Year() > entries[j].Year()
	})
	return entries
}

// typeAliases maps coarse categories to the underlying entry type sets.
var typeAliases = map[string][]string{
	"journal":    {"article"},
	"conference": {"inproceedings", "conference"},
	"preprint":   {"misc", "unpublished"},
}

// FilterByType returns the entries matching a coarse category ("journal",
// "conference", "preprint"), a literal entry type, or everything for "all".
func FilterByType(entries []Entry, kind string) []Entry {
	if kind == "all" {
		return entries
	}

	types, ok := typeAliases[kind]
	if !ok {
		types = []string{kind}
	}

	var out []Entry
	for _, e := range entries {
		for _, t := range types {
			if e.Type == t {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
