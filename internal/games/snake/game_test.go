package snake

import (
	"math/rand"
	"reflect"
	"testing"
)

func newTestEngine(cfg Config) *Engine {
	return New(cfg, WithRand(rand.New(rand.NewSource(42))))
}

func TestInitialState(t *testing.T) {
	e := newTestEngine(DefaultConfig())
	snap := e.Snapshot()

	if !reflect.DeepEqual(snap.Snake, []Point{{X: 10, Y: 10}}) {
		t.Errorf("snake = %v, want [{10 10}]", snap.Snake)
	}
	if snap.Direction != DirRight {
		t.Errorf("direction = %v, want right", snap.Direction)
	}
	if snap.Food != (Point{X: 15, Y: 15}) {
		t.Errorf("food = %v, want {15 15}", snap.Food)
	}
	if snap.Score != 0 {
		t.Errorf("score = %d, want 0", snap.Score)
	}
	if snap.Status != StatusRunning {
		t.Errorf("status = %v, want running", snap.Status)
	}
	if snap.GridSize != 20 {
		t.Errorf("grid size = %d, want 20", snap.GridSize)
	}
}

func TestAdvanceMoves(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		want Point
	}{
		{"right", DirRight, Point{X: 11, Y: 10}},
		{"left", DirLeft, Point{X: 9, Y: 10}},
		{"up", DirUp, Point{X: 10, Y: 9}},
		{"down", DirDown, Point{X: 10, Y: 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(DefaultConfig())
			e.SetDirection(tt.dir)
			res := e.Advance()

			if got := res.Snapshot.Head(); got != tt.want {
				t.Errorf("head = %v, want %v", got, tt.want)
			}
			if len(res.Snapshot.Snake) != 1 {
				t.Errorf("length = %d, want 1", len(res.Snapshot.Snake))
			}
			if len(res.Events) != 0 {
				t.Errorf("events = %v, want none", res.Events)
			}
		})
	}
}

func TestEatFood(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartFood = Point{X: 11, Y: 10}
	e := newTestEngine(cfg)

	res := e.Advance()
	snap := res.Snapshot

	if !reflect.DeepEqual(snap.Snake, []Point{{X: 11, Y: 10}, {X: 10, Y: 10}}) {
		t.Errorf("snake = %v, want head {11 10} with body kept", snap.Snake)
	}
	if snap.Score != 1 {
		t.Errorf("score = %d, want 1", snap.Score)
	}
	if snap.Status != StatusRunning {
		t.Errorf("status = %v, want running", snap.Status)
	}
	if !res.Has(EventFoodConsumed) {
		t.Errorf("events = %v, want food_consumed", res.Events)
	}
	if snap.Food.X < 0 || snap.Food.X >= 20 || snap.Food.Y < 0 || snap.Food.Y >= 20 {
		t.Errorf("food %v out of bounds", snap.Food)
	}
}

func TestGrowthThenMove(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartFood = Point{X: 11, Y: 10}
	e := newTestEngine(cfg)

	e.Advance()
	e.food = Point{X: 0, Y: 0}
	res := e.Advance()

	want := []Point{{X: 12, Y: 10}, {X: 11, Y: 10}}
	if !reflect.DeepEqual(res.Snapshot.Snake, want) {
		t.Errorf("snake = %v, want %v", res.Snapshot.Snake, want)
	}
}

func TestWallCollision(t *testing.T) {
	tests := []struct {
		name  string
		start Point
		dir   Direction
	}{
		{"left wall", Point{X: 0, Y: 10}, DirLeft},
		{"right wall", Point{X: 19, Y: 10}, DirRight},
		{"top wall", Point{X: 10, Y: 0}, DirUp},
		{"bottom wall", Point{X: 10, Y: 19}, DirDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.StartSnake = []Point{tt.start}
			e := newTestEngine(cfg)
			e.SetDirection(tt.dir)

			res := e.Advance()
			if res.Snapshot.Status != StatusOver {
				t.Fatalf("status = %v, want over", res.Snapshot.Status)
			}
			if !reflect.DeepEqual(res.Snapshot.Snake, []Point{tt.start}) {
				t.Errorf("snake = %v, want unchanged %v", res.Snapshot.Snake, tt.start)
			}
			if !res.Has(EventGameOver) {
				t.Errorf("events = %v, want game_over", res.Events)
			}
		})
	}
}

func TestReverseIntoBody(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartSnake = []Point{{X: 10, Y: 10}, {X: 9, Y: 10}}
	e := newTestEngine(cfg)

	e.SetDirection(DirLeft)
	res := e.Advance()

	if res.Snapshot.Status != StatusOver {
		t.Fatalf("status = %v, want over", res.Snapshot.Status)
	}
	if !reflect.DeepEqual(res.Snapshot.Snake, cfg.StartSnake) {
		t.Errorf("snake = %v, want unchanged", res.Snapshot.Snake)
	}
}

func TestTailCountsAsCollision(t *testing.T) {
	// A 2x2 loop: moving into the current tail ends the game because the tail
	// is checked before it moves away.
	cfg := DefaultConfig()
	cfg.StartSnake = []Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}}
	e := newTestEngine(cfg)

	e.SetDirection(DirRight)
	res := e.Advance()
	if res.Snapshot.Status != StatusOver {
		t.Errorf("status = %v, want over", res.Snapshot.Status)
	}
}

func TestForbidReverse(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartSnake = []Point{{X: 10, Y: 10}, {X: 9, Y: 10}}
	cfg.ForbidReverse = true
	e := newTestEngine(cfg)

	e.SetDirection(DirLeft)
	res := e.Advance()

	if res.Snapshot.Status != StatusRunning {
		t.Fatalf("status = %v, want running", res.Snapshot.Status)
	}
	if got := res.Snapshot.Head(); got != (Point{X: 11, Y: 10}) {
		t.Errorf("head = %v, want {11 10}", got)
	}
}

func TestOverIsTerminal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartSnake = []Point{{X: 0, Y: 0}}
	e := newTestEngine(cfg)
	e.SetDirection(DirUp)
	e.Advance()

	before := e.Snapshot()
	e.SetDirection(DirDown)
	res := e.Advance()

	if res.Snapshot.Status != StatusOver {
		t.Errorf("status = %v, want over", res.Snapshot.Status)
	}
	if len(res.Events) != 0 {
		t.Errorf("events = %v, want none after game over", res.Events)
	}
	if !reflect.DeepEqual(before, res.Snapshot) {
		t.Errorf("snapshot changed after game over")
	}
}

func TestInvalidDirectionIgnored(t *testing.T) {
	e := newTestEngine(DefaultConfig())
	e.SetDirection(Direction(42))
	e.SetDirection(Direction(-1))

	res := e.Advance()
	if got := res.Snapshot.Head(); got != (Point{X: 11, Y: 10}) {
		t.Errorf("head = %v, want {11 10}", got)
	}
}

func TestLatestDirectionWins(t *testing.T) {
	e := newTestEngine(DefaultConfig())
	e.SetDirection(DirUp)
	e.SetDirection(DirDown)

	res := e.Advance()
	if got := res.Snapshot.Head(); got != (Point{X: 10, Y: 11}) {
		t.Errorf("head = %v, want {10 11}", got)
	}
}

func TestReset(t *testing.T) {
	e := newTestEngine(DefaultConfig())
	e.SetDirection(DirUp)
	for range 15 {
		e.Advance()
	}
	if e.Snapshot().Status != StatusOver {
		t.Fatalf("expected game over after running into the top wall")
	}

	e.Reset()
	first := e.Snapshot()
	e.Reset()
	second := e.Snapshot()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("consecutive resets differ: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(first.Snake, []Point{{X: 10, Y: 10}}) || first.Direction != DirRight ||
		first.Food != (Point{X: 15, Y: 15}) || first.Score != 0 || first.Status != StatusRunning {
		t.Errorf("reset state = %+v, want initial values", first)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	e := newTestEngine(DefaultConfig())
	snap := e.Snapshot()
	snap.Snake[0] = Point{X: 0, Y: 0}

	if e.Snapshot().Head() != (Point{X: 10, Y: 10}) {
		t.Errorf("mutating a snapshot changed the engine")
	}
}

func TestDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 12345
	cfg.StartFood = Point{X: 11, Y: 10}

	g1 := New(cfg)
	g2 := New(cfg)

	for i := range 8 {
		if i == 3 {
			g1.SetDirection(DirDown)
			g2.SetDirection(DirDown)
		}
		g1.Advance()
		g2.Advance()
	}

	if !reflect.DeepEqual(g1.Snapshot(), g2.Snapshot()) {
		t.Errorf("snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestBoundsInvariant(t *testing.T) {
	e := newTestEngine(DefaultConfig())
	rng := rand.New(rand.NewSource(7))

	for range 2000 {
		e.SetDirection(Direction(rng.Intn(4)))
		res := e.Advance()
		snap := res.Snapshot

		for _, p := range append(snap.Snake, snap.Food) {
			if p.X < 0 || p.X >= snap.GridSize || p.Y < 0 || p.Y >= snap.GridSize {
				t.Fatalf("point %v out of bounds at tick %d", p, snap.Tick)
			}
		}
		if snap.Status == StatusRunning {
			seen := make(map[Point]bool)
			for _, p := range snap.Snake {
				if seen[p] {
					t.Fatalf("snake overlaps itself at %v", p)
				}
				seen[p] = true
			}
		}
		if snap.Over() {
			e.Reset()
		}
	}
}

func TestFoodAvoidsSnake(t *testing.T) {
	cfg := Config{
		GridSize:        2,
		StartSnake:      []Point{{X: 0, Y: 0}, {X: 0, Y: 1}},
		StartDir:        DirRight,
		StartFood:       Point{X: 1, Y: 0},
		FoodAvoidsSnake: true,
	}
	e := newTestEngine(cfg)

	res := e.Advance()
	if !res.Has(EventFoodConsumed) {
		t.Fatalf("expected food to be eaten")
	}
	if got := res.Snapshot.Food; got != (Point{X: 1, Y: 1}) {
		t.Errorf("food = %v, want the only free cell {1 1}", got)
	}
}

func TestInvalidConfigFallsBack(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero grid", Config{StartSnake: []Point{{}}}},
		{"empty snake", Config{GridSize: 10}},
		{"snake outside", Config{GridSize: 5, StartSnake: []Point{{X: 5, Y: 0}}}},
		{"repeated segment", Config{GridSize: 5, StartSnake: []Point{{X: 1, Y: 1}, {X: 1, Y: 1}}}},
		{"food outside", Config{GridSize: 5, StartSnake: []Point{{X: 1, Y: 1}}, StartFood: Point{X: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Fatalf("Validate() = nil, want error")
			}
			e := newTestEngine(tt.cfg)
			if e.Config().GridSize != 20 {
				t.Errorf("grid size = %d, want default 20", e.Config().GridSize)
			}
		})
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v: opposite of opposite = %v", d, d.Opposite().Opposite())
		}
		dx, dy := d.Vector()
		ox, oy := d.Opposite().Vector()
		if dx+ox != 0 || dy+oy != 0 {
			t.Errorf("%v and its opposite do not cancel", d)
		}
	}
}
