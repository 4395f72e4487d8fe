package portfolio

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// All is the pseudo-category that matches every project.
const All = "all"

//go:embed default.yaml
var defaultDocument []byte

// Project is one entry on the projects page.
type Project struct {
	Title      string   `yaml:"title" json:"title"`
	Summary    string   `yaml:"summary" json:"summary"`
	Categories []string `yaml:"categories" json:"categories"`
	Tags       []string `yaml:"tags" json:"tags"`
	URL        string   `yaml:"url" json:"url,omitempty"`
}

// HasCategory reports whether the project is filed under category.
func (p Project) HasCategory(category string) bool {
	for _, c := range p.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// Skill is a named skill with a proficiency level in percent.
type Skill struct {
	Name  string `yaml:"name" json:"name"`
	Level int    `yaml:"level" json:"level"`
}

// Stat is a headline number on the about page.
type Stat struct {
	Label string `yaml:"label" json:"label"`
	Value int    `yaml:"value" json:"value"`
}

// Profile is the site's content.
type Profile struct {
	Name     string    `yaml:"name" json:"name"`
	Role     string    `yaml:"role" json:"role"`
	Email    string    `yaml:"email" json:"email"`
	Taglines []string  `yaml:"taglines" json:"taglines"`
	About    string    `yaml:"about" json:"about"`
	Skills   []Skill   `yaml:"skills" json:"skills"`
	Stats    []Stat    `yaml:"stats" json:"stats"`
	Projects []Project `yaml:"projects" json:"projects"`
}

// Default returns the built-in profile.
func Default() Profile {
	p, err := Parse(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("portfolio: embedded profile is invalid: %v", err))
	}
	return p
}

// Load reads a profile from a YAML file.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a YAML profile document.
func Parse(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks the fields the interface cannot do without.
func (p Profile) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	for i, sk := range p.Skills {
		if strings.TrimSpace(sk.Name) == "" {
			errs = append(errs, fmt.Errorf("skills[%d]: name is required", i))
		}
		if sk.Level < 0 || sk.Level > 100 {
			errs = append(errs, fmt.Errorf("skills[%d]: level must be between 0 and 100", i))
		}
	}
	for i, st := range p.Stats {
		if st.Value < 0 {
			errs = append(errs, fmt.Errorf("stats[%d]: value must not be negative", i))
		}
	}
	for i, pr := range p.Projects {
		if strings.TrimSpace(pr.Title) == "" {
			errs = append(errs, fmt.Errorf("projects[%d]: title is required", i))
		}
	}
	return errors.Join(errs...)
}

// Categories returns All followed by every distinct project category in the
// order first seen. Categories are compared case-insensitively.
func Categories(projects []Project) []string {
	out := []string{All}
	seen := map[string]bool{All: true}
	for _, p := range projects {
		for _, c := range p.Categories {
			key := strings.ToLower(c)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}

// Filter returns the projects filed under category, keeping their order.
// All or an empty category returns every project. The result is never nil.
func Filter(projects []Project, category string) []Project {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, All) {
		return append([]Project{}, projects...)
	}
	out := []Project{}
	for _, p := range projects {
		if p.HasCategory(category) {
			out = append(out, p)
		}
	}
	return out
}
