package tui

import (
	"testing"

	"github.com/questfolio/questfolio/internal/core"
)

func TestSessionSeeds(t *testing.T) {
	t.Run("base seed", func(t *testing.T) {
		s := &SSHServer{deps: Deps{Runtime: core.RuntimeConfig{Seed: 42}}}
		for _, want := range []int64{43, 44, 45} {
			if got := s.nextSeed(); got != want {
				t.Errorf("nextSeed() = %d, want %d", got, want)
			}
		}
	})

	t.Run("time based", func(t *testing.T) {
		s := &SSHServer{}
		if got := s.nextSeed(); got == 0 {
			t.Error("nextSeed() = 0, want a time based seed")
		}
	})
}
