package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	p := Default()

	if p.Name != `Fei Xiang "Darren" Peng` {
		t.Errorf("name = %q", p.Name)
	}
	if !strings.Contains(p.Title, "Wizard") {
		t.Errorf("title = %q", p.Title)
	}

	wantStats := map[string]int{"Programming": 95, "AI/ML": 92, "Mathematics": 98, "Leadership": 88}
	if len(p.Stats) != len(wantStats) {
		t.Fatalf("stats = %d, want %d", len(p.Stats), len(wantStats))
	}
	for _, s := range p.Stats {
		if wantStats[s.Name] != s.Value {
			t.Errorf("stat %s = %d, want %d", s.Name, s.Value, wantStats[s.Name])
		}
	}

	if len(p.Skills) != 9 {
		t.Errorf("skills = %d, want 9", len(p.Skills))
	}
	for _, s := range p.Skills {
		if s.Stars != MaxStars {
			t.Errorf("skill %s stars = %d, want %d", s.Name, s.Stars, MaxStars)
		}
	}
	if len(p.Quests) != 4 || len(p.Achievements) != 4 || len(p.Links) != 3 {
		t.Errorf("quests/achievements/links = %d/%d/%d, want 4/4/3",
			len(p.Quests), len(p.Achievements), len(p.Links))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", "name: [oops"},
		{"no name", "title: x"},
		{"stat range", "name: a\nstats:\n  - {name: s, value: 101}"},
		{"too many stars", "name: a\nskills:\n  - {name: s, stars: 6}"},
		{"quest progress", "name: a\nquests:\n  - {name: q, progress: -1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Errorf("Parse() error = nil, want error")
			}
		})
	}
}

func TestLoadCustom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "me.yaml")
	if err := os.WriteFile(path, []byte("name: Tester\nachievements: [one]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Name != "Tester" || len(p.Achievements) != 1 {
		t.Errorf("profile = %+v", p)
	}

	p, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Errorf("Load(missing) error = nil, want error")
	}
	if p.Name != Default().Name {
		t.Errorf("Load(missing) should return the default profile alongside the error")
	}
}
