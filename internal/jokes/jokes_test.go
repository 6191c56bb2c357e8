package jokes

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Joke
	}{
		{
			name: "single",
			text: "Setup?<>Punchline!",
			want: []Joke{{Setup: "Setup?", Punchline: "Punchline!"}},
		},
		{
			name: "blank lines skipped",
			text: "\nA<>B\n\n   \nC<>D\n",
			want: []Joke{{Setup: "A", Punchline: "B"}, {Setup: "C", Punchline: "D"}},
		},
		{
			name: "crlf and padding",
			text: " A <> B \r\n",
			want: []Joke{{Setup: "A", Punchline: "B"}},
		},
		{
			name: "missing separator",
			text: "Just a setup",
			want: []Joke{{Setup: "Just a setup"}},
		},
		{
			name: "empty",
			text: "\n\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestEmbeddedJokes(t *testing.T) {
	jokes := Parse(string(defaultJokes))
	if len(jokes) < 10 {
		t.Fatalf("embedded jokes = %d, want at least 10", len(jokes))
	}
	for i, j := range jokes {
		if j.Setup == "" || j.Punchline == "" {
			t.Errorf("joke %d incomplete: %+v", i, j)
		}
	}
}

func TestRandomFallback(t *testing.T) {
	var nilBook *Book
	if got := nilBook.Random(); got != Fallback {
		t.Errorf("nil book Random() = %+v, want fallback", got)
	}
	if got := NewBook(nil, 1).Random(); got != Fallback {
		t.Errorf("empty book Random() = %+v, want fallback", got)
	}
}

func TestRandomDeterministic(t *testing.T) {
	jokes := Parse(string(defaultJokes))
	a := NewBook(jokes, 7)
	b := NewBook(jokes, 7)
	for range 10 {
		if a.Random() != b.Random() {
			t.Fatal("same seed produced different jokes")
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	if err := os.WriteFile(good, []byte("Q<>A\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, []byte("\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := Load(good, 1)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := b.Random(); got != (Joke{Setup: "Q", Punchline: "A"}) {
		t.Errorf("Random() = %+v", got)
	}

	for _, path := range []string{empty, filepath.Join(dir, "missing.txt")} {
		b, err := Load(path, 1)
		if err == nil {
			t.Errorf("Load(%s) error = nil, want error", path)
		}
		if got := b.Random(); got != Fallback {
			t.Errorf("Load(%s) book Random() = %+v, want fallback", path, got)
		}
	}
}

func TestLoadEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	b, err := Load("", 1)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.Len() != len(Parse(string(defaultJokes))) {
		t.Errorf("Len() = %d", b.Len())
	}
}
