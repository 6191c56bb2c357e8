// Package snake implements the grid simulation behind the Snake tab: movement,
// collision, food placement, and scoring. The engine is pure and single-threaded;
// Runner adds the timer and locking needed to drive it from a UI.
package snake

import (
	"fmt"
	"math/rand"
	"time"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

// Vector returns the unit step for the direction.
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return d
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Point represents a grid cell.
type Point struct {
	X, Y int
}

// Add returns p moved one step in direction d.
func (p Point) Add(d Direction) Point {
	dx, dy := d.Vector()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Config holds the fixed parameters of a game session.
type Config struct {
	GridSize   int     // Cells per side
	StartSnake []Point // Head first
	StartDir   Direction
	StartFood  Point

	// ForbidReverse drops a SetDirection that points straight back along the
	// direction applied on the last tick.
	ForbidReverse bool

	// FoodAvoidsSnake draws new food from unoccupied cells only.
	FoodAvoidsSnake bool

	Seed int64 // 0 = time based
}

// DefaultConfig returns the classic 20x20 board with the snake at (10,10)
// heading right and food at (15,15).
func DefaultConfig() Config {
	return Config{
		GridSize:   20,
		StartSnake: []Point{{X: 10, Y: 10}},
		StartDir:   DirRight,
		StartFood:  Point{X: 15, Y: 15},
	}
}

// Validate checks that the config describes a playable board.
func (c Config) Validate() error {
	if c.GridSize < 2 {
		return fmt.Errorf("snake: grid size must be at least 2, got %d", c.GridSize)
	}
	if len(c.StartSnake) == 0 {
		return fmt.Errorf("snake: start snake must have at least one segment")
	}
	if !c.StartDir.Valid() {
		return fmt.Errorf("snake: invalid start direction %d", c.StartDir)
	}
	seen := make(map[Point]bool, len(c.StartSnake))
	for _, p := range c.StartSnake {
		if !c.inBounds(p) {
			return fmt.Errorf("snake: start segment (%d, %d) outside %dx%d grid", p.X, p.Y, c.GridSize, c.GridSize)
		}
		if seen[p] {
			return fmt.Errorf("snake: start segment (%d, %d) repeated", p.X, p.Y)
		}
		seen[p] = true
	}
	if !c.inBounds(c.StartFood) {
		return fmt.Errorf("snake: start food (%d, %d) outside %dx%d grid", c.StartFood.X, c.StartFood.Y, c.GridSize, c.GridSize)
	}
	return nil
}

func (c Config) inBounds(p Point) bool {
	return p.X >= 0 && p.X < c.GridSize && p.Y >= 0 && p.Y < c.GridSize
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRand sets the random source used for food placement.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// Engine owns the whole game state. It is not safe for concurrent use; see Runner.
type Engine struct {
	cfg  Config
	rng  *rand.Rand
	tick uint64

	snake     []Point // Head at index 0
	direction Direction
	nextDir   Direction // Latched by SetDirection, applied by Advance
	food      Point
	score     int
	status    Status
}

// New creates an engine in its initial state. An invalid config falls back to
// DefaultConfig with the same flags and seed.
func New(cfg Config, opts ...Option) *Engine {
	if err := cfg.Validate(); err != nil {
		def := DefaultConfig()
		def.ForbidReverse = cfg.ForbidReverse
		def.FoodAvoidsSnake = cfg.FoodAvoidsSnake
		def.Seed = cfg.Seed
		cfg = def
	}
	cfg.StartSnake = append([]Point(nil), cfg.StartSnake...)

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewSource(seed))
	}

	e.Reset()
	return e
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Reset restores the initial snake, direction, food, and score.
func (e *Engine) Reset() {
	e.tick = 0
	e.snake = append([]Point(nil), e.cfg.StartSnake...)
	e.direction = e.cfg.StartDir
	e.nextDir = e.cfg.StartDir
	e.food = e.cfg.StartFood
	e.score = 0
	e.status = StatusRunning
}

// SetDirection latches d for the next tick. Anything other than the four
// cardinal directions is ignored.
func (e *Engine) SetDirection(d Direction) {
	if !d.Valid() {
		return
	}
	if e.cfg.ForbidReverse && len(e.snake) > 1 && d == e.direction.Opposite() {
		return
	}
	e.nextDir = d
}

// Advance moves the snake one cell. It is a no-op once the game is over.
func (e *Engine) Advance() StepResult {
	if e.status == StatusOver {
		return StepResult{Snapshot: e.Snapshot()}
	}
	e.tick++

	e.direction = e.nextDir
	newHead := e.snake[0].Add(e.direction)

	if !e.cfg.inBounds(newHead) || e.isSnakeAt(newHead) {
		e.status = StatusOver
		return StepResult{Snapshot: e.Snapshot(), Events: []Event{EventGameOver}}
	}

	e.snake = append([]Point{newHead}, e.snake...)

	var events []Event
	if newHead == e.food {
		e.score++
		e.spawnFood()
		events = append(events, EventFoodConsumed)
	} else {
		e.snake = e.snake[:len(e.snake)-1]
	}

	return StepResult{Snapshot: e.Snapshot(), Events: events}
}

// spawnFood places the next food. By default any cell may be chosen, including
// ones under the snake.
func (e *Engine) spawnFood() {
	n := e.cfg.GridSize
	if !e.cfg.FoodAvoidsSnake {
		e.food = Point{X: e.rng.Intn(n), Y: e.rng.Intn(n)}
		return
	}

	var emptyCells []Point
	for y := range n {
		for x := range n {
			p := Point{X: x, Y: y}
			if !e.isSnakeAt(p) {
				emptyCells = append(emptyCells, p)
			}
		}
	}
	if len(emptyCells) == 0 {
		// Board is full; leave food where it is (now under the head)
		return
	}
	e.food = emptyCells[e.rng.Intn(len(emptyCells))]
}

// isSnakeAt checks if the snake occupies the given point.
func (e *Engine) isSnakeAt(p Point) bool {
	for _, seg := range e.snake {
		if seg == p {
			return true
		}
	}
	return false
}
