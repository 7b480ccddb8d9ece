package render

import (
	"strings"
	"testing"

	"github.com/chaofengc/scholar/internal/bibtex"
	"github.com/chaofengc/scholar/internal/site"
)

func entry(typ, key string, fields map[string]string) bibtex.Entry {
	return bibtex.Entry{Type: typ, CiteKey: key, Fields: fields}
}

func TestView_AuthorMarkers(t *testing.T) {
	r := New("B", site.PubConfig{
		"p1": {
			CoFirstAuthors:       []string{"A"},
			CorrespondingAuthors: []string{"C"},
		},
	}, nil)

	v := r.View(entry("article", "p1", map[string]string{"author": "A and B and C"}))

	if len(v.Authors) != 3 {
		t.Fatalf("len(Authors) = %d, want 3", len(v.Authors))
	}
	a, b, c := v.Authors[0], v.Authors[1], v.Authors[2]

	if !a.CoFirst || a.Corresponding || a.Distinguished {
		t.Errorf("A = %+v, want co-first only", a)
	}
	if b.CoFirst || b.Corresponding || !b.Distinguished {
		t.Errorf("B = %+v, want distinguished only", b)
	}
	if !c.Corresponding || c.CoFirst || c.Distinguished {
		t.Errorf("C = %+v, want corresponding only", c)
	}
}

func TestView_DecorationsAreCumulative(t *testing.T) {
	r := New("Chen, A.", site.PubConfig{
		"p1": {
			CoFirstAuthors:       []string{"Chen, A."},
			CorrespondingAuthors: []string{"Chen, A."},
		},
	}, site.CoauthorInfo{
		"Chen, A.": {Website: "https://chen.example.org"},
	})

	v := r.View(entry("article", "p1", map[string]string{"author": "Chen, A."}))

	got := v.Authors[0]
	if !got.Distinguished || !got.CoFirst || !got.Corresponding || got.Website == "" {
		t.Errorf("decorations should stack, got %+v", got)
	}
}

func TestView_CoauthorWebsiteMatchIsLenient(t *testing.T) {
	r := New("", nil, site.CoauthorInfo{
		"anna  kim": {Website: "https://kim.example.org"},
	})

	v := r.View(entry("article", "p1", map[string]string{"author": "Anna Kim and Nobody Else"}))

	if v.Authors[0].Website != "https://kim.example.org" {
		t.Errorf("Website = %q, want lenient match on case and spacing", v.Authors[0].Website)
	}
	if v.Authors[1].Website != "" {
		t.Errorf("unmatched coauthor should stay unlinked, got %q", v.Authors[1].Website)
	}
}

func TestView_VenueByType(t *testing.T) {
	tests := []struct {
		name   string
		entry  bibtex.Entry
		config site.PubConfig
		want   string
	}{
		{
			name:  "article uses journal",
			entry: entry("article", "k", map[string]string{"journal": "IEEE TIP", "year": "2023"}),
			want:  "IEEE TIP, 2023",
		},
		{
			name:  "inproceedings uses booktitle",
			entry: entry("inproceedings", "k", map[string]string{"booktitle": "CVPR", "year": "2022"}),
			want:  "CVPR, 2022",
		},
		{
			name:  "other types use publisher",
			entry: entry("book", "k", map[string]string{"publisher": "Springer", "year": "2021"}),
			want:  "Springer, 2021",
		},
		{
			name:   "override wins",
			entry:  entry("article", "k", map[string]string{"journal": "arXiv", "year": "2024"}),
			config: site.PubConfig{"k": {Venue: "NeurIPS"}},
			want:   "NeurIPS, 2024",
		},
		{
			name:  "no year no suffix",
			entry: entry("article", "k", map[string]string{"journal": "IEEE TIP"}),
			want:  "IEEE TIP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New("", tt.config, nil)
			if got := string(r.View(tt.entry).Venue); got != tt.want {
				t.Errorf("Venue = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestView_VenueParentheticalEmphasis(t *testing.T) {
	r := New("", nil, nil)
	v := r.View(entry("inproceedings", "k", map[string]string{
		"booktitle": "European Conference on Computer Vision (ECCV)",
		"year":      "2022",
	}))

	if want := "(<em>ECCV</em>)"; !strings.Contains(string(v.Venue), want) {
		t.Errorf("Venue = %q, want substring %q", v.Venue, want)
	}
}

func TestView_AcceptInfo(t *testing.T) {
	r := New("", site.PubConfig{"k": {AcceptInfo: "Oral, top 2%"}}, nil)
	v := r.View(entry("article", "k", map[string]string{"journal": "J", "year": "2024"}))

	if !strings.Contains(string(v.Venue), "Oral, top 2%") {
		t.Errorf("Venue = %q, want acceptance annotation appended", v.Venue)
	}
}

func TestView_LinkPreference(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]string
		override site.PubOverride
		wantPDF  string
		wantCode string
	}{
		{
			name:     "overrides win",
			fields:   map[string]string{"url": "https://x/e.pdf", "github": "https://github.com/a/b"},
			override: site.PubOverride{PDF: "https://o/p.pdf", GitHub: "https://github.com/c/d"},
			wantPDF:  "https://o/p.pdf",
			wantCode: "https://github.com/c/d",
		},
		{
			name:     "entry url beats entry pdf",
			fields:   map[string]string{"url": "https://x/u.pdf", "pdf": "https://x/p.pdf"},
			wantPDF:  "https://x/u.pdf",
			wantCode: "",
		},
		{
			name:     "pdf field is the last resort",
			fields:   map[string]string{"pdf": "https://x/p.pdf"},
			wantPDF:  "https://x/p.pdf",
			wantCode: "",
		},
		{
			name:     "code falls through github then code fields",
			fields:   map[string]string{"code": "https://gitlab.com/a/b"},
			wantCode: "https://gitlab.com/a/b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := site.PubConfig{"k": tt.override}
			v := New("", cfg, nil).View(entry("article", "k", tt.fields))
			if v.PDF != tt.wantPDF {
				t.Errorf("PDF = %q, want %q", v.PDF, tt.wantPDF)
			}
			if v.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", v.Code, tt.wantCode)
			}
		})
	}
}

func TestView_DOILink(t *testing.T) {
	r := New("", nil, nil)

	v := r.View(entry("article", "k", map[string]string{"doi": "10.1109/TIP.2023.123"}))
	if want := "https://doi.org/10.1109/TIP.2023.123"; v.DOI != want {
		t.Errorf("DOI = %q, want %q", v.DOI, want)
	}

	if v := r.View(entry("article", "k", nil)); v.DOI != "" {
		t.Errorf("DOI for entry without doi field = %q, want empty", v.DOI)
	}
}

func TestSelected(t *testing.T) {
	r := New("", site.PubConfig{"a": {Select: true}}, nil)

	entries := []bibtex.Entry{
		entry("article", "a", nil),
		entry("article", "b", map[string]string{"selected": "true"}),
		entry("article", "c", nil),
	}

	got := r.Selected(entries)
	if len(got) != 2 || got[0].CiteKey != "a" || got[1].CiteKey != "b" {
		t.Errorf("Selected() keys = %v, want [a b]", got)
	}
}
