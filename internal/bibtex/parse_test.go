package bibtex

import (
	"strings"
	"testing"
)

func TestParse_BasicArticle(t *testing.T) {
	entries, errs := Parse("@article{a2020x, title={T}, author={A and B}, year={2020}}")

	if len(errs) != 0 {
		t.Fatalf("Parse() errors = %v, want none", errs)
	}
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.Type != "article" {
		t.Errorf("Type = %q, want %q", e.Type, "article")
	}
	if e.CiteKey != "a2020x" {
		t.Errorf("CiteKey = %q, want %q", e.CiteKey, "a2020x")
	}
	if e.Fields["title"] != "T" {
		t.Errorf("title = %q, want %q", e.Fields["title"], "T")
	}
	if e.Fields["author"] != "A and B" {
		t.Errorf("author = %q, want %q", e.Fields["author"], "A and B")
	}
	if e.Fields["year"] != "2020" {
		t.Errorf("year = %q, want %q", e.Fields["year"], "2020")
	}
}

func TestParse_NoBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"plain text", "no entries here, just prose"},
		{"only comments", "% a comment\n% another comment\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, errs := Parse(tt.input)
			if len(entries) != 0 {
				t.Errorf("Parse() returned %d entries, want 0", len(entries))
			}
			if len(errs) != 0 {
				t.Errorf("Parse() returned %d errors, want 0", len(errs))
			}
		})
	}
}

func TestParse_UnacceptedTypeDroppedSilently(t *testing.T) {
	input := `
@article{keep2021, title={Kept}, year={2021}}
@patent{drop2021, title={Dropped}, year={2021}}
@software{also2021, title={Also Dropped}}
`
	entries, errs := Parse(input)

	if len(errs) != 0 {
		t.Errorf("Parse() errors = %v, want none for unaccepted types", errs)
	}
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}
	if entries[0].CiteKey != "keep2021" {
		t.Errorf("kept entry = %q, want keep2021", entries[0].CiteKey)
	}
}

func TestParse_MalformedBlockSkippedParsingContinues(t *testing.T) {
	input := `
@article{good2022, title={Good}, year={2022}}
@article no-braces-here
@misc{good2023, title={Also Good}, year={2023}}
`
	entries, errs := Parse(input)

	if len(errs) != 1 {
		t.Fatalf("Parse() returned %d errors, want 1: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Error(), "block 2") {
		t.Errorf("error should identify block 2, got: %v", errs[0])
	}
	if len(entries) != 2 {
		t.Fatalf("Parse() returned %d entries, want 2", len(entries))
	}
	if entries[0].CiteKey != "good2022" || entries[1].CiteKey != "good2023" {
		t.Errorf("entries = %q, %q, want good2022, good2023", entries[0].CiteKey, entries[1].CiteKey)
	}
}

func TestParse_DuplicateKeysPreserved(t *testing.T) {
	input := `
@article{dup2020, title={First}, year={2020}}
@article{dup2020, title={Second}, year={2021}}
`
	entries, errs := Parse(input)

	if len(errs) != 0 {
		t.Fatalf("Parse() errors = %v, want none", errs)
	}
	// Duplicates are not deduplicated: both blocks appear, in input order.
	if len(entries) != 2 {
		t.Fatalf("Parse() returned %d entries, want 2", len(entries))
	}
	if entries[0].Fields["title"] != "First" || entries[1].Fields["title"] != "Second" {
		t.Errorf("duplicate entries out of order: %v", entries)
	}
}

func TestParse_CommentsStripped(t *testing.T) {
	input := `
% This whole entry is commented out:
% @article{gone2020, title={Gone}}
@article{here2020, title={Here}, year={2020}}
`
	entries, errs := Parse(input)

	if len(errs) != 0 {
		t.Fatalf("Parse() errors = %v, want none", errs)
	}
	if len(entries) != 1 || entries[0].CiteKey != "here2020" {
		t.Fatalf("Parse() = %v, want single here2020 entry", entries)
	}
}

func TestParse_QuotedValues(t *testing.T) {
	entries, errs := Parse(`@article{q2019, title="Quoted Title", year="2019"}`)

	if len(errs) != 0 {
		t.Fatalf("Parse() errors = %v, want none", errs)
	}
	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}
	if entries[0].Fields["title"] != "Quoted Title" {
		t.Errorf("title = %q, want %q", entries[0].Fields["title"], "Quoted Title")
	}
}

func TestParse_FieldNamesCaseInsensitive(t *testing.T) {
	entries, _ := Parse(`@article{c2018, TITLE={Upper}, Author={Someone}, YeAr={2018}}`)

	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Fields["title"] != "Upper" || e.Fields["author"] != "Someone" || e.Fields["year"] != "2018" {
		t.Errorf("field names should be stored lower-cased, got %v", e.Fields)
	}
}

func TestParse_TypeCaseInsensitive(t *testing.T) {
	entries, _ := Parse(`@ARTICLE{u2017, title={X}}`)
	if len(entries) != 1 || entries[0].Type != "article" {
		t.Fatalf("Parse() = %v, want one article entry", entries)
	}
}

// The field value scan is non-greedy and does not balance nested braces:
// a value containing an inner {...} terminates at the first closing brace.
// This test documents the limitation so a future fix is a deliberate choice.
func TestParse_NestedBracesTerminateEarly(t *testing.T) {
	entries, _ := Parse(`@article{n2016, title={The {HIV} Epidemic}, year={2016}}`)

	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}
	if got := entries[0].Fields["title"]; got != "The {HIV" {
		t.Errorf("title = %q, want truncated %q (nested braces are not balanced)", got, "The {HIV")
	}
}

func TestParse_MissingFieldsAreAbsentKeys(t *testing.T) {
	entries, _ := Parse(`@misc{m2015, title={Only Title}}`)

	if len(entries) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(entries))
	}
	if _, ok := entries[0].Fields["author"]; ok {
		t.Errorf("absent author should be a missing key, not a placeholder")
	}
}
