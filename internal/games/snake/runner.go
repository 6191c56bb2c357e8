package snake

import (
	"context"
	"sync"
	"time"
)

// Frame is published once per tick while an activation is live.
type Frame struct {
	StepResult
}

// Runner serializes access to an Engine and drives it from a ticker while
// activated. All methods are safe for concurrent use.
type Runner struct {
	mu     sync.Mutex
	engine *Engine
	active *Activation
}

// NewRunner takes ownership of e.
func NewRunner(e *Engine) *Runner {
	return &Runner{engine: e}
}

// SetDirection forwards d to the engine. Input arriving while no activation is
// live is dropped.
func (r *Runner) SetDirection(d Direction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return
	}
	r.engine.SetDirection(d)
}

// Reset restarts the game.
func (r *Runner) Reset() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engine.Reset()
	return r.engine.Snapshot()
}

// Snapshot returns the current game state.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Snapshot()
}

// Active reports whether an activation is live.
func (r *Runner) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil
}

// Activate starts ticking the engine every interval until the returned
// activation is stopped or ctx is done. Any previous activation is stopped first.
func (r *Runner) Activate(ctx context.Context, interval time.Duration) *Activation {
	r.mu.Lock()
	prev := r.active
	r.mu.Unlock()
	if prev != nil {
		prev.Stop()
	}

	ctx, cancel := context.WithCancel(ctx)
	a := &Activation{
		runner: r,
		cancel: cancel,
		frames: make(chan Frame, 1),
	}

	r.mu.Lock()
	r.active = a
	r.mu.Unlock()

	a.wg.Add(1)
	go a.loop(ctx, interval)

	return a
}

// release clears a as the live activation if it still is.
func (r *Runner) release(a *Activation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == a {
		r.active = nil
	}
}

// advance steps the engine once if a is still the live activation.
func (r *Runner) advance(a *Activation) (StepResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != a {
		return StepResult{}, false
	}
	return r.engine.Advance(), true
}

// Activation is a scoped hold on the runner's tick timer.
type Activation struct {
	runner   *Runner
	cancel   context.CancelFunc
	frames   chan Frame
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// Frames delivers one frame per tick. The channel holds at most one frame; a
// slow reader sees the newest snapshot. It is closed once the activation ends,
// whether by Stop or by the parent context; a frame still buffered at that
// point stays readable.
func (a *Activation) Frames() <-chan Frame {
	return a.frames
}

// Stop cancels the timer, waits for the tick goroutine to exit, and closes the
// frame channel. Calling it more than once is safe.
func (a *Activation) Stop() {
	a.stopOnce.Do(func() {
		a.cancel()
		a.wg.Wait()
	})
}

// loop is the only sender on frames, so it closes the channel on the way out.
func (a *Activation) loop(ctx context.Context, interval time.Duration) {
	defer a.wg.Done()
	defer close(a.frames)
	defer a.runner.release(a)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, ok := a.runner.advance(a)
			if !ok {
				return
			}
			a.publish(Frame{StepResult: res})
		}
	}
}

// publish replaces any unread frame with f. Events from the dropped frame are
// carried over so no food is lost to a slow reader.
func (a *Activation) publish(f Frame) {
	for {
		select {
		case a.frames <- f:
			return
		default:
		}
		select {
		case old := <-a.frames:
			f.Events = append(old.Events, f.Events...)
		default:
		}
	}
}
