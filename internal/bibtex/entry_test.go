package bibtex

import (
	"testing"
)

func entry(typ, key, year string) Entry {
	fields := map[string]string{}
	if year != "" {
		fields["year"] = year
	}
	return Entry{Type: typ, CiteKey: key, Fields: fields}
}

func keys(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.CiteKey
	}
	return out
}

func TestSortByYear(t *testing.T) {
	entries := []Entry{
		entry("article", "old", "2018"),
		entry("article", "noyear", ""),
		entry("article", "new", "2023"),
		entry("article", "badyear", "n/a"),
		entry("article", "mid", "2020"),
	}

	got := keys(SortByYear(entries))
	want := []string{"new", "mid", "old", "noyear", "badyear"}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortByYear() order = %v, want %v", got, want)
		}
	}
}

func TestSortByYear_StableForEqualYears(t *testing.T) {
	entries := []Entry{
		entry("article", "first", "2021"),
		entry("article", "second", "2021"),
		entry("article", "third", "2021"),
	}

	got := keys(SortByYear(entries))
	want := []string{"first", "second", "third"}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortByYear() should be stable, got %v, want %v", got, want)
		}
	}
}

func TestFilterByType(t *testing.T) {
	entries := []Entry{
		entry("article", "j1", "2020"),
		entry("inproceedings", "c1", "2020"),
		entry("conference", "c2", "2019"),
		entry("misc", "p1", "2022"),
		entry("book", "b1", "2015"),
	}

	tests := []struct {
		kind string
		want []string
	}{
		{"journal", []string{"j1"}},
		{"conference", []string{"c1", "c2"}},
		{"preprint", []string{"p1"}},
		{"book", []string{"b1"}}, // literal type match
		{"phdthesis", nil},       // no matches
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got := keys(FilterByType(entries, tt.kind))
			if len(got) != len(tt.want) {
				t.Fatalf("FilterByType(%q) = %v, want %v", tt.kind, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("FilterByType(%q) = %v, want %v", tt.kind, got, tt.want)
				}
			}
		})
	}
}

func TestFilterByType_AllIsIdentity(t *testing.T) {
	entries := []Entry{
		entry("article", "j1", "2020"),
		entry("misc", "p1", "2022"),
	}

	got := FilterByType(entries, "all")
	if len(got) != len(entries) {
		t.Fatalf("FilterByType(all) = %d entries, want %d", len(got), len(entries))
	}
	for i := range entries {
		if got[i].CiteKey != entries[i].CiteKey {
			t.Errorf("FilterByType(all) changed order at %d: %q", i, got[i].CiteKey)
		}
	}
}

func TestEntryYear(t *testing.T) {
	tests := []struct {
		year string
		want int
	}{
		{"2021", 2021},
		{" 2021 ", 2021},
		{"", 0},
		{"n/a", 0},
		{"-5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			e := entry("article", "x", tt.year)
			if got := e.Year(); got != tt.want {
				t.Errorf("Year() with year=%q = %d, want %d", tt.year, got, tt.want)
			}
		})
	}
}
