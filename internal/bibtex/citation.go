package bibtex

import (
	"fmt"
	"sort"
	"strings"
)

// leadFields are emitted first, in this order, in generated citation text.
// Remaining fields follow alphabetically.
var leadFields = []string{"title", "author", "journal", "booktitle", "year"}

// FormatCitation re-serializes an entry as citation text.
//
// This is a fixed-template rendering of the parsed fields, not a replay of
// the original source text, so whitespace and field order can differ from
// the input. Empty fields are omitted entirely: no bare `name = {}` lines.
func FormatCitation(e Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", e.Type, e.CiteKey)

	emitted := make(map[string]bool)
	for _, name := range leadFields {
		if writeField(&b, name, e.Fields[name]) {
			emitted[name] = true
		}
	}

	var rest []string
	for name, value := range e.Fields {
		if !emitted[name] && strings.TrimSpace(value) != "" {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		writeField(&b, name, e.Fields[name])
	}

	b.WriteString("}\n")
	return b.String()
}

// writeField writes one field line, skipping empty values.
func writeField(b *strings.Builder, name, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	fmt.Fprintf(b, "  %s = {%s},\n", name, value)
	return true
}
