package snake

// Status is the game's position in its two-state lifecycle.
type Status string

const (
	StatusRunning Status = "running"
	StatusOver    Status = "over"
)

// Event is something the engine reports to collaborators after a tick.
type Event int

const (
	// EventFoodConsumed fires once per food eaten.
	EventFoodConsumed Event = iota + 1
	// EventGameOver fires on the tick that ends the game.
	EventGameOver
)

func (ev Event) String() string {
	switch ev {
	case EventFoodConsumed:
		return "food_consumed"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// StepResult is returned by Advance.
type StepResult struct {
	Snapshot Snapshot
	Events   []Event
}

// Has reports whether ev occurred during the step.
func (r StepResult) Has(ev Event) bool {
	for _, e := range r.Events {
		if e == ev {
			return true
		}
	}
	return false
}

// Snapshot captures the observable game state. It shares no memory with the
// engine, so callers may keep or modify it freely.
type Snapshot struct {
	Tick      uint64
	GridSize  int
	Snake     []Point // Head first
	Food      Point
	Direction Direction
	Score     int
	Status    Status
}

// Head returns the first snake segment.
func (s Snapshot) Head() Point {
	if len(s.Snake) == 0 {
		return Point{}
	}
	return s.Snake[0]
}

// Over reports whether the game has ended.
func (s Snapshot) Over() bool {
	return s.Status == StatusOver
}

// Snapshot returns the current game snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:      e.tick,
		GridSize:  e.cfg.GridSize,
		Snake:     append([]Point(nil), e.snake...),
		Food:      e.food,
		Direction: e.direction,
		Score:     e.score,
		Status:    e.status,
	}
}
