package progress

import "testing"

func TestFoodConsumed(t *testing.T) {
	tests := []struct {
		name      string
		foods     int
		wantLevel int
		wantExp   int
	}{
		{"none", 0, 1, 0},
		{"one", 1, 1, 5},
		{"nineteen", 19, 1, 95},
		{"twenty rolls over", 20, 2, 0},
		{"twenty one carries", 21, 2, 5},
		{"two levels", 40, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(DefaultRules(), State{Level: 1})
			for range tt.foods {
				tr.FoodConsumed()
			}
			got := tr.State()
			if got.Level != tt.wantLevel || got.Exp != tt.wantExp {
				t.Errorf("state = %v, want level %d exp %d", got, tt.wantLevel, tt.wantExp)
			}
		})
	}
}

func TestAwardLargeAmount(t *testing.T) {
	tr := NewTracker(DefaultRules(), State{Level: 1, Exp: 90})
	gained := tr.Award(215)

	if gained != 3 {
		t.Errorf("gained = %d, want 3", gained)
	}
	if got := tr.State(); got != (State{Level: 4, Exp: 5}) {
		t.Errorf("state = %v, want level 4 exp 5", got)
	}
}

func TestAwardIgnoresNonPositive(t *testing.T) {
	tr := NewTracker(DefaultRules(), State{Level: 2, Exp: 10})
	tr.Award(0)
	tr.Award(-50)
	if got := tr.State(); got != (State{Level: 2, Exp: 10}) {
		t.Errorf("state = %v, want unchanged", got)
	}
}

func TestNewTrackerNormalizes(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
		start State
		want  State
	}{
		{"zero level", DefaultRules(), State{}, State{Level: 1}},
		{"overflowing exp", DefaultRules(), State{Level: 1, Exp: 250}, State{Level: 3, Exp: 50}},
		{"negative exp", DefaultRules(), State{Level: 1, Exp: -3}, State{Level: 1}},
		{"bad rules", Rules{}, State{Level: 1, Exp: 150}, State{Level: 2, Exp: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewTracker(tt.rules, tt.start).State(); got != tt.want {
				t.Errorf("state = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	r := Rules{ExpPerFood: 5, ExpPerLevel: 200}
	if got := (State{Level: 1, Exp: 50}).Percent(r); got != 25 {
		t.Errorf("Percent() = %d, want 25", got)
	}
}
