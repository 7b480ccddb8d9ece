package bibtex

import (
	"fmt"
	"regexp"
	"strings"
)

// Patterns for scanning bibliography markup.
var (
	// commentPattern matches a % comment through end of line.
	commentPattern = regexp.MustCompile(`%[^\n]*`)

	// fieldPattern matches one field assignment: name = {value} or
	// name = "value". The value scan is non-greedy and does not balance
	// nested braces, so a value containing an inner {...} terminates at
	// the first closing brace. Known limitation, kept for compatibility
	// with the data files this tool consumes.
	fieldPattern = regexp.MustCompile(`(?s)([A-Za-z][A-Za-z0-9_-]*)\s*=\s*(?:\{(.*?)\}|"(.*?)")`)
)

// Parse converts bibliography markup into an ordered list of entries.
//
// A block extends from one @ marker to just before the next @ marker or end
// of input. Malformed blocks are recorded as errors and skipped; parsing
// never aborts because of one bad block. Entries whose type is outside the
// accepted set are dropped silently. Duplicate cite keys are preserved as
// separate entries, in input order.
func Parse(text string) ([]Entry, []error) {
	text = commentPattern.ReplaceAllString(text, "")

	var entries []Entry
	var errs []error

	starts := blockStarts(text)
	for i, start := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}

		entry, err := parseBlock(text[start:end])
		if err != nil {
			errs = append(errs, fmt.Errorf("block %d: %w", i+1, err))
			continue
		}
		if !acceptedTypes[entry.Type] {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, errs
}

// blockStarts returns the offsets of all @ markers in the text.
func blockStarts(text string) []int {
	var starts []int
	for i := 0; i < len(text); i++ {
		if text[i] == '@' {
			starts = append(starts, i)
		}
	}
	return starts
}

// parseBlock parses one @type{key, body} block into an Entry.
func parseBlock(block string) (Entry, error) {
	open := strings.Index(block, "{")
	if open < 0 {
		return Entry{}, fmt.Errorf("missing '{' after entry type")
	}

	typ := strings.ToLower(strings.TrimSpace(block[1:open]))
	if typ == "" {
		return Entry{}, fmt.Errorf("missing entry type")
	}

	rest := block[open+1:]
	comma := strings.Index(rest, ",")
	if comma < 0 {
		return Entry{}, fmt.Errorf("missing ',' after cite key")
	}

	key := strings.TrimSpace(rest[:comma])
	if key == "" {
		return Entry{}, fmt.Errorf("empty cite key")
	}

	fields := make(map[string]string)
	for _, m := range fieldPattern.FindAllStringSubmatch(rest[comma+1:], -1) {
		value := m[2]
		if m[3] != "" {
			value = m[3]
		}
		fields[strings.ToLower(m[1])] = strings.TrimSpace(value)
	}

	return Entry{Type: typ, CiteKey: key, Fields: fields}, nil
}
