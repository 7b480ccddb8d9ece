// Package pdfcheck verifies that linked paper PDFs match their bibliography
// entries by comparing DOIs.
package pdfcheck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/chaofengc/scholar/internal/bibtex"
)

// doiPattern matches DOIs: 10.XXXX/... with XXXX being 4+ digits.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// doiSearchPages is how many leading pages are scanned for a DOI.
const doiSearchPages = 3

// Result is the outcome of checking one PDF against its entry.
type Result struct {
	CiteKey  string
	Path     string
	WantDOI  string // DOI from the entry, normalized
	FoundDOI string // DOI found in the PDF, normalized; empty if none
	Match    bool
}

// Check compares the DOI in the entry against the DOI found in the PDF at
// path. A missing entry DOI or an unscannable PDF is an error; a PDF without
// any detectable DOI is reported as a non-match, not an error.
func Check(e bibtex.Entry, path string) (Result, error) {
	want := NormalizeDOI(e.Field("doi"))
	if want == "" {
		return Result{}, fmt.Errorf("entry %s has no doi field to verify against", e.CiteKey)
	}

	found, err := ExtractDOI(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", path, err)
	}
	found = NormalizeDOI(found)

	return Result{
		CiteKey:  e.CiteKey,
		Path:     path,
		WantDOI:  want,
		FoundDOI: found,
		Match:    found != "" && found == want,
	}, nil
}

// ExtractDOI scans the first pages of a PDF for a DOI. An empty return with
// a nil error means no DOI was found.
func ExtractDOI(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	maxPages := doiSearchPages
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if doi := FindDOI(text); doi != "" {
			return doi, nil
		}
	}
	return "", nil
}

// FindDOI returns the first plausible DOI in text, or "".
func FindDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if validDOI(match) {
			return match
		}
	}
	return ""
}

// NormalizeDOI strips resolver prefixes and lowercases for comparison.
// DOI names are case-insensitive.
func NormalizeDOI(doi string) string {
	doi = strings.ToLower(strings.TrimSpace(doi))
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi:"} {
		if rest, ok := strings.CutPrefix(doi, prefix); ok {
			return rest
		}
	}
	return doi
}

func validDOI(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	slash := strings.Index(doi, "/")
	return slash != -1 && slash < len(doi)-1
}
