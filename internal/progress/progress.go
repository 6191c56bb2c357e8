// Package progress tracks the portfolio owner's level and experience, which
// grow as food is eaten in the Snake tab.
package progress

import "fmt"

// Rules define how experience is earned and when it rolls into a level.
type Rules struct {
	ExpPerFood  int
	ExpPerLevel int
}

// DefaultRules returns +5 experience per food with a level every 100.
func DefaultRules() Rules {
	return Rules{ExpPerFood: 5, ExpPerLevel: 100}
}

// State is a point-in-time view of the tracker.
type State struct {
	Level int `json:"level"`
	Exp   int `json:"exp"`
}

// Percent returns experience toward the next level in [0,100].
func (s State) Percent(r Rules) int {
	if r.ExpPerLevel <= 0 {
		return 0
	}
	return s.Exp * 100 / r.ExpPerLevel
}

func (s State) String() string {
	return fmt.Sprintf("level %d (%d exp)", s.Level, s.Exp)
}

// Tracker accumulates experience. It is a plain value owned by a single UI
// model and is not safe for concurrent use.
type Tracker struct {
	rules Rules
	state State
}

// NewTracker creates a tracker starting at the given state. Non-positive rule
// values fall back to DefaultRules.
func NewTracker(rules Rules, start State) *Tracker {
	def := DefaultRules()
	if rules.ExpPerLevel <= 0 {
		rules.ExpPerLevel = def.ExpPerLevel
	}
	if rules.ExpPerFood < 0 {
		rules.ExpPerFood = def.ExpPerFood
	}
	if start.Level < 1 {
		start.Level = 1
	}
	t := &Tracker{rules: rules}
	t.state = t.normalize(start)
	return t
}

// Rules returns the tracker's rules.
func (t *Tracker) Rules() Rules {
	return t.rules
}

// State returns the current level and experience.
func (t *Tracker) State() State {
	return t.state
}

// FoodConsumed awards the experience for one food and returns the number of
// levels gained.
func (t *Tracker) FoodConsumed() int {
	return t.Award(t.rules.ExpPerFood)
}

// Award adds exp experience, rolling every full ExpPerLevel into a level and
// carrying the remainder. It returns the number of levels gained.
func (t *Tracker) Award(exp int) int {
	if exp <= 0 {
		return 0
	}
	before := t.state.Level
	t.state.Exp += exp
	t.state = t.normalize(t.state)
	return t.state.Level - before
}

func (t *Tracker) normalize(s State) State {
	if s.Exp < 0 {
		s.Exp = 0
	}
	for s.Exp >= t.rules.ExpPerLevel {
		s.Level++
		s.Exp -= t.rules.ExpPerLevel
	}
	return s
}
