// Package jokes supplies the "Dad Joke of the Day" widget: a list of
// setup/punchline pairs loaded from a text file, one joke per line.
package jokes

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/questfolio/questfolio/internal/config"
)

// Separator splits a line into setup and punchline.
const Separator = "<>"

//go:embed dad-jokes.txt
var defaultJokes []byte

// Fallback is served whenever no joke can be loaded.
var Fallback = Joke{
	Setup:     "Why don't scientists trust atoms?",
	Punchline: "Because they make up everything!",
}

// ErrEmpty is returned when a source contains no jokes.
var ErrEmpty = errors.New("jokes: no jokes found")

// Joke is a single setup and punchline.
type Joke struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// Parse reads one joke per non-blank line. A line without a separator becomes
// a joke with an empty punchline.
func Parse(text string) []Joke {
	var out []Joke
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		setup, punchline, _ := strings.Cut(line, Separator)
		out = append(out, Joke{
			Setup:     strings.TrimSpace(setup),
			Punchline: strings.TrimSpace(punchline),
		})
	}
	return out
}

// Book is a loaded joke collection with its own random source.
// It is safe for concurrent use.
type Book struct {
	mu    sync.Mutex
	jokes []Joke
	rng   *rand.Rand
}

// NewBook creates a book over jokes. A seed of 0 uses the current time.
func NewBook(jokes []Joke, seed int64) *Book {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Book{
		jokes: append([]Joke(nil), jokes...),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Load builds a book from the jokes file.
// Search order: customPath -> ~/.questfolio/jokes.txt -> ./configs/jokes.txt -> embedded default
func Load(customPath string, seed int64) (*Book, error) {
	data, _, err := config.Resolve(customPath, "jokes.txt", defaultJokes, func(b []byte) error {
		if len(Parse(string(b))) == 0 {
			return ErrEmpty
		}
		return nil
	})
	if err != nil {
		return NewBook(nil, seed), fmt.Errorf("jokes: %w", err)
	}
	return NewBook(Parse(string(data)), seed), nil
}

// Len returns the number of jokes in the book.
func (b *Book) Len() int {
	return len(b.jokes)
}

// Random picks a joke uniformly, or Fallback when the book is empty.
func (b *Book) Random() Joke {
	if b == nil || len(b.jokes) == 0 {
		return Fallback
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.jokes[b.rng.Intn(len(b.jokes))]
}
