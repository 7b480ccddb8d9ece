package render

import (
	"sort"
	"strconv"

	"github.com/chaofengc/scholar/internal/bibtex"
)

// UnknownYear labels the bucket for entries without a usable year.
const UnknownYear = "Unknown"

// YearGroup is one year section on the publications page.
type YearGroup struct {
	Label string // four-digit year, or UnknownYear
	Pubs  []PubView
}

// GroupByYear buckets entries by year, newest bucket first, preserving the
// input order inside each bucket. Entries with a missing or non-numeric year
// share a trailing UnknownYear bucket.
func (r *Renderer) GroupByYear(entries []bibtex.Entry) []YearGroup {
	buckets := make(map[int][]PubView)
	var unknown []PubView

	for _, e := range entries {
		year := e.Year()
		if year == 0 {
			unknown = append(unknown, r.View(e))
			continue
		}
		buckets[year] = append(buckets[year], r.View(e))
	}

	years := make([]int, 0, len(buckets))
	for year := range buckets {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	groups := make([]YearGroup, 0, len(years)+1)
	for _, year := range years {
		groups = append(groups, YearGroup{Label: strconv.Itoa(year), Pubs: buckets[year]})
	}
	if len(unknown) > 0 {
		groups = append(groups, YearGroup{Label: UnknownYear, Pubs: unknown})
	}
	return groups
}
