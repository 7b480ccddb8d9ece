package site

import (
	"path/filepath"
)

// Member is one group member listing.
type Member struct {
	Name    string `json:"name"`
	Role    string `json:"role,omitempty"`
	Website string `json:"website,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
	Bio     string `json:"bio,omitempty"` // Markdown
}

// Project is one project card.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"` // Markdown
	Repo        string `json:"repo,omitempty"`        // GitHub owner/repo or URL
	Link        string `json:"link,omitempty"`
	Image       string `json:"image,omitempty"`
}

// GalleryItem is one gallery image.
type GalleryItem struct {
	Image   string `json:"image"`
	Caption string `json:"caption,omitempty"`
}

// NewsItem is one dated news line.
type NewsItem struct {
	Date string `json:"date"` // YYYY-MM-DD
	Text string `json:"text"` // Markdown
}

// Data bundles the optional JSON-sourced site sections.
type Data struct {
	Members  []Member
	Projects []Project
	Gallery  []GalleryItem
	News     []NewsItem
}

// LoadData reads the optional data files from the site root.
//
// Each file degrades independently to an empty list when missing or
// malformed; the advisory errors are returned for logging, one per failed
// file, and never abort a build.
func LoadData(root string) (Data, []error) {
	var d Data
	var errs []error

	if err := readJSON(filepath.Join(root, MembersFile), &d.Members); err != nil {
		d.Members = nil
		errs = append(errs, err)
	}
	if err := readJSON(filepath.Join(root, ProjectsFile), &d.Projects); err != nil {
		d.Projects = nil
		errs = append(errs, err)
	}
	if err := readJSON(filepath.Join(root, GalleryFile), &d.Gallery); err != nil {
		d.Gallery = nil
		errs = append(errs, err)
	}
	if err := readJSON(filepath.Join(root, NewsFile), &d.News); err != nil {
		d.News = nil
		errs = append(errs, err)
	}

	return d, errs
}
