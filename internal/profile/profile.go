// Package profile holds the static portfolio content shown in the Profile,
// Skills, Quests, and Achievements tabs.
package profile

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/questfolio/questfolio/internal/config"
)

//go:embed profile.yaml
var defaultProfileYAML []byte

// MaxStars is the top skill rating.
const MaxStars = 5

// Profile is the character sheet of the portfolio owner.
type Profile struct {
	Name         string   `yaml:"name" json:"name"`
	Title        string   `yaml:"title" json:"title"`
	Stats        []Stat   `yaml:"stats" json:"stats"`
	Skills       []Skill  `yaml:"skills" json:"skills"`
	Quests       []Quest  `yaml:"quests" json:"quests"`
	Achievements []string `yaml:"achievements" json:"achievements"`
	Links        []Link   `yaml:"links" json:"links"`
}

// Stat is a character stat bar, 0-100.
type Stat struct {
	Name  string `yaml:"name" json:"name"`
	Value int    `yaml:"value" json:"value"`
	Color string `yaml:"color" json:"color"`
}

// Skill is a rated skill, 0-MaxStars.
type Skill struct {
	Name  string `yaml:"name" json:"name"`
	Stars int    `yaml:"stars" json:"stars"`
}

// Quest is a completed (or ongoing) project.
type Quest struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Progress    int    `yaml:"progress" json:"progress"`
}

// Link is a contact link shown in the footer.
type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// Validate checks ranges and required fields.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile: name is required")
	}
	for _, s := range p.Stats {
		if s.Value < 0 || s.Value > 100 {
			return fmt.Errorf("profile: stat %q value %d outside 0-100", s.Name, s.Value)
		}
	}
	for _, s := range p.Skills {
		if s.Stars < 0 || s.Stars > MaxStars {
			return fmt.Errorf("profile: skill %q has %d stars, max %d", s.Name, s.Stars, MaxStars)
		}
	}
	for _, q := range p.Quests {
		if q.Progress < 0 || q.Progress > 100 {
			return fmt.Errorf("profile: quest %q progress %d outside 0-100", q.Name, q.Progress)
		}
	}
	return nil
}

// Parse decodes and validates a profile document.
func Parse(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Default returns the embedded profile.
func Default() Profile {
	p, err := Parse(defaultProfileYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded profile is invalid: %v", err))
	}
	return p
}

// Load loads the profile content.
// Search order: customPath -> ~/.questfolio/profile.yaml -> ./configs/profile.yaml -> embedded default
func Load(customPath string) (Profile, error) {
	data, _, err := config.Resolve(customPath, "profile.yaml", defaultProfileYAML, func(b []byte) error {
		_, err := Parse(b)
		return err
	})
	if err != nil {
		return Default(), err
	}
	return Parse(data)
}
