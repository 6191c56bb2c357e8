package snake

import "github.com/questfolio/questfolio/internal/core"

// Board colors.
const (
	ColorBackground = core.ColorBlack
	ColorSnake      = core.ColorGreen
	ColorFood       = core.ColorRed
)

// Surface is anything the board can be painted onto.
type Surface interface {
	FillRect(r core.Rect, c core.Color)
}

// Render paints snap onto dst with each grid cell cellSize units wide and tall:
// background first, then snake segments, then food. A nil surface is a no-op.
func Render(dst Surface, snap Snapshot, cellSize int) {
	if dst == nil || cellSize <= 0 {
		return
	}

	side := snap.GridSize * cellSize
	dst.FillRect(core.NewRect(0, 0, side, side), ColorBackground)

	for _, seg := range snap.Snake {
		dst.FillRect(cellRect(seg, cellSize), ColorSnake)
	}
	dst.FillRect(cellRect(snap.Food, cellSize), ColorFood)
}

func cellRect(p Point, cellSize int) core.Rect {
	return core.NewRect(p.X*cellSize, p.Y*cellSize, cellSize, cellSize)
}

// stretched scales every rectangle before forwarding it.
type stretched struct {
	dst    Surface
	sx, sy int
}

func (s stretched) FillRect(r core.Rect, c core.Color) {
	s.dst.FillRect(r.Scale(s.sx, s.sy), c)
}

// Stretch wraps dst so that one unit becomes sx columns and sy rows. Terminal
// cells are roughly twice as tall as wide, so Stretch(screen, 2, 1) keeps the
// board square.
func Stretch(dst Surface, sx, sy int) Surface {
	if dst == nil {
		return nil
	}
	return stretched{dst: dst, sx: sx, sy: sy}
}
