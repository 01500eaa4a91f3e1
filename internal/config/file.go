// Package config holds the YAML configuration of ltugen and the helpers that
// locate, read and write it.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const appDir = "ltugen"

// SiteConfig holds the facts shown in the site shell and on the About page.
type SiteConfig struct {
	Title         string `yaml:"title" json:"title"`
	StudentName   string `yaml:"student_name" json:"student_name"`
	StudentNumber string `yaml:"student_number" json:"student_number"`
	Course        string `yaml:"course" json:"course"`
	University    string `yaml:"university" json:"university"`
	Assignment    string `yaml:"assignment,omitempty" json:"assignment,omitempty"`
	VideoURL      string `yaml:"video_url,omitempty" json:"video_url,omitempty"`
}

// StorageConfig selects where tab collections are persisted.
type StorageConfig struct {
	Backend string `yaml:"backend" json:"backend"` // file, sqlite or memory
	Path    string `yaml:"path,omitempty" json:"path,omitempty"`
}

// GeneratorConfig tunes the HTML generator.
type GeneratorConfig struct {
	EscapeContent bool `yaml:"escape_content" json:"escape_content"`
}

// FileConfig is the top-level shape of config.yml.
type FileConfig struct {
	Site      SiteConfig      `yaml:"site" json:"site"`
	Storage   StorageConfig   `yaml:"storage" json:"storage"`
	Generator GeneratorConfig `yaml:"generator" json:"generator"`
}

// Default returns the configuration written when no file exists yet.
func Default() FileConfig {
	return FileConfig{
		Site: SiteConfig{
			Title:         "LTU HTML Generator",
			StudentName:   "Shaan Kishore Gunwani",
			StudentNumber: "22586489",
			Course:        "CSE3CWA",
			University:    "La Trobe University",
			Assignment:    "Assignment 1",
			VideoURL:      "https://drive.google.com/file/d/1q6_3oYj3gy8nfahpivcEF2be0XCoLlWI/preview",
		},
		Storage: StorageConfig{
			Backend: "file",
			Path:    "tabs.json",
		},
	}
}

// ReadConfig reads path and overlays it on Default, so a partial file keeps
// defaults for the keys it omits.
func ReadConfig(path string) (FileConfig, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// WriteConfig writes cfg to path as YAML.
func WriteConfig(path string, cfg FileConfig) error {
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// StoragePath resolves the storage path relative to the config file directory.
func (c FileConfig) StoragePath(configPath string) string {
	p := c.Storage.Path
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

// candidatePaths lists the places searched for config.yml, most specific first.
func candidatePaths() []string {
	names := []string{"config.yml", "config.yaml"}
	candidates := []string{}

	for _, n := range names {
		candidates = append(candidates, "./"+n)
	}

	home, _ := os.UserHomeDir()
	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			for _, n := range names {
				candidates = append(candidates, filepath.Join(appdata, appDir, n))
			}
		}
		if home != "" {
			for _, n := range names {
				candidates = append(candidates, filepath.Join(home, appDir, n))
			}
		}
		return candidates
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		for _, n := range names {
			candidates = append(candidates, filepath.Join(xdg, appDir, n))
		}
	}
	if home != "" {
		for _, n := range names {
			candidates = append(candidates, filepath.Join(home, ".config", appDir, n))
			candidates = append(candidates, filepath.Join(home, "."+appDir, n))
		}
	}
	for _, n := range names {
		candidates = append(candidates, filepath.Join("/etc", appDir, n))
	}
	return candidates
}

// FindPath returns the first existing config file. When none exists it
// writes the defaults to createPath and returns it.
func FindPath(createPath string) (string, error) {
	for _, p := range candidatePaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return createPath, EnsureFile(createPath)
}

// EnsureFile creates path with the default configuration when it is missing.
func EnsureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return WriteConfig(path, Default())
}
