package game

import "fmt"

// Cell is one discrete position on the board.
type Cell struct {
	X int
	Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns the cell one move away in the given heading. The second
// result is false when the move would take a coordinate below zero.
func (c Cell) Step(h Heading) (Cell, bool) {
	dx, dy := h.Delta()
	next := Cell{X: c.X + dx, Y: c.Y + dy}
	if next.X < 0 || next.Y < 0 {
		return c, false
	}
	return next, true
}

// Neighbours returns the orthogonal neighbours of c in left, up, right, down
// order. Neighbours with a negative coordinate are skipped; the upper board
// edge is not checked.
func (c Cell) Neighbours() []Cell {
	result := make([]Cell, 0, 4)
	for _, h := range headings {
		if next, ok := c.Step(h); ok {
			result = append(result, next)
		}
	}
	return result
}

// SquaredDistance is the squared straight-line distance between two cells.
func SquaredDistance(a, b Cell) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Size is the fixed width and height of a board.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Contains reports whether c lies in [0,Width) x [0,Height).
func (s Size) Contains(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.Width && c.Y < s.Height
}

// Area is the number of cells on the board.
func (s Size) Area() int {
	return s.Width * s.Height
}

// Validate rejects boards too small to hold the initial snake.
func (s Size) Validate() error {
	if s.Width < MinBoardSide || s.Height < MinBoardSide {
		return fmt.Errorf("%w: %s, both sides must be at least %d", ErrBoardTooSmall, s, MinBoardSide)
	}
	return nil
}
