// Package site defines the site source directory model: YAML configuration,
// JSON data files, and directory discovery.
package site

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents site configuration stored in site.yml.
type Config struct {
	Title   string `yaml:"title"`
	Author  string `yaml:"author"` // Distinguished name, bolded in author lists
	Tagline string `yaml:"tagline,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`

	Bibliography Bibliography `yaml:"bibliography,omitempty"`

	OutputDir string       `yaml:"output_dir,omitempty"` // Defaults to "public"
	Nav       []NavItem    `yaml:"nav,omitempty"`
	Footer    string       `yaml:"footer,omitempty"`
	Deploy    DeployTarget `yaml:"deploy,omitempty"`
}

// Bibliography configures where the bibliography text comes from.
type Bibliography struct {
	// URL is an optional remote source, tried before the local file.
	URL string `yaml:"url,omitempty"`
}

// NavItem is one navigation entry.
type NavItem struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// DeployTarget describes the remote host the built site is uploaded to.
type DeployTarget struct {
	Host string `yaml:"host,omitempty"`
	User string `yaml:"user,omitempty"`
	Path string `yaml:"path,omitempty"`
	Port int    `yaml:"port,omitempty"` // Defaults to 22
}

// File and directory names inside a site source directory.
const (
	ConfigFile    = "site.yml"
	BibFile       = "publications.bib"
	PubConfigFile = "pubs_config.json"
	CoauthorsFile = "coauthors.json"
	MembersFile   = "members.json"
	ProjectsFile  = "projects.json"
	GalleryFile   = "gallery.json"
	NewsFile      = "news.json"
	StaticDir     = "static"

	ScholarDir = ".scholar"
	CacheDir   = "cache"
	DBFile     = "site.db"

	DefaultOutputDir = "public"
)

// ConfigPath returns the path to site.yml from a site root.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigFile)
}

// BibPath returns the path to the local bibliography file from a site root.
func BibPath(root string) string {
	return filepath.Join(root, BibFile)
}

// StaticPath returns the path to the static assets directory.
func StaticPath(root string) string {
	return filepath.Join(root, StaticDir)
}

// CachePath returns the path to the cache directory from a site root.
func CachePath(root string) string {
	return filepath.Join(root, ScholarDir, CacheDir)
}

// DBPath returns the path to the cache database from a site root.
func DBPath(root string) string {
	return filepath.Join(root, ScholarDir, CacheDir, DBFile)
}

// IsSite checks whether the given directory contains a site (has site.yml).
func IsSite(root string) bool {
	info, err := os.Stat(ConfigPath(root))
	return err == nil && info.Mode().IsRegular()
}

// FindSite walks up from the given path to find a site source directory.
// Returns the site root path or an error if none is found.
func FindSite(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsSite(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a site directory (no %s found)", ConfigFile)
		}
		abs = parent
	}
}

// Load reads site configuration from the site at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading site config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing site config: %w", err)
	}

	return &cfg, nil
}

// Save writes site configuration to the site at the given root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding site config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing site config: %w", err)
	}

	return nil
}

// Output returns the absolute output directory for the site.
func (c *Config) Output(root string) string {
	dir := c.OutputDir
	if dir == "" {
		dir = DefaultOutputDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// SSHPort returns the deploy port, defaulting to 22.
func (d DeployTarget) SSHPort() int {
	if d.Port > 0 {
		return d.Port
	}
	return 22
}
