package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PubOverride is a per-entry display override, keyed by cite key.
type PubOverride struct {
	Select               bool     `json:"select,omitempty"` // Feature on the selected-publications view
	Venue                string   `json:"venue,omitempty"`  // Display override for the venue string
	AcceptInfo           string   `json:"accept_info,omitempty"`
	PDF                  string   `json:"pdf,omitempty"`
	GitHub               string   `json:"github,omitempty"`
	Code                 string   `json:"code,omitempty"`
	CoFirstAuthors       []string `json:"co_first_authors,omitempty"`
	CorrespondingAuthors []string `json:"corresponding_authors,omitempty"`
	Image                string   `json:"image,omitempty"`
}

// PubConfig maps cite keys to display overrides.
type PubConfig map[string]PubOverride

// Coauthor holds decoration metadata for one author display name.
type Coauthor struct {
	Website     string `json:"website,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
}

// CoauthorInfo maps exact author display names to their metadata.
type CoauthorInfo map[string]Coauthor

// LoadPubConfig reads pubs_config.json from the site root.
//
// The returned config is always usable: on a missing or malformed file it is
// empty and the error is advisory. Callers log the error and keep rendering;
// an unreadable override file never blocks a build.
func LoadPubConfig(root string) (PubConfig, error) {
	cfg := PubConfig{}
	err := readJSON(filepath.Join(root, PubConfigFile), &cfg)
	if err != nil {
		return PubConfig{}, err
	}
	return cfg, nil
}

// LoadCoauthors reads coauthors.json from the site root. Same degradation
// contract as LoadPubConfig: always returns a usable (possibly empty) map.
func LoadCoauthors(root string) (CoauthorInfo, error) {
	info := CoauthorInfo{}
	err := readJSON(filepath.Join(root, CoauthorsFile), &info)
	if err != nil {
		return CoauthorInfo{}, err
	}
	return info, nil
}

// readJSON reads a JSON file into v. A missing file is reported via
// os.IsNotExist-compatible wrapped errors.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}
