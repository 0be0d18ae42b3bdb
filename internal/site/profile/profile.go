// Package profile loads the site owner profile rendered on the landing page.
package profile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Link is one external link shown on the landing page.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Project is one portfolio project card.
type Project struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	URL         string   `yaml:"url"`
	Tags        []string `yaml:"tags"`
}

// Profile holds the portfolio content for the landing page.
type Profile struct {
	Name     string    `yaml:"name"`
	Tagline  string    `yaml:"tagline"`
	Bio      string    `yaml:"bio"`
	Location string    `yaml:"location"`
	Links    []Link    `yaml:"links"`
	Projects []Project `yaml:"projects"`
}

// Default returns the profile used when no profile file is configured.
func Default() Profile {
	return Profile{
		Name:    "Louis Branch",
		Tagline: "Software engineer",
	}
}

// Load reads and validates a profile file.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile file: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile file: %w", err)
	}
	if err := p.validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadOrDefault loads the profile at path, falling back to Default when the
// path is empty or the file does not exist.
func LoadOrDefault(path string) (Profile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

func (p Profile) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is required")
	}
	for i, link := range p.Links {
		if strings.TrimSpace(link.Label) == "" || strings.TrimSpace(link.URL) == "" {
			return fmt.Errorf("link %d needs both label and url", i)
		}
	}
	for i, project := range p.Projects {
		if strings.TrimSpace(project.Name) == "" {
			return fmt.Errorf("project %d needs a name", i)
		}
	}
	return nil
}
