package game

import "fmt"

// OutcomeKind tags the result of a single Advance call.
type OutcomeKind int

const (
	Moved OutcomeKind = iota // head moved, tail removed
	Grew                     // head moved onto food, tail kept
	Died                     // candidate cell was occupied or off the board
)

func (k OutcomeKind) String() string {
	switch k {
	case Moved:
		return "moved"
	case Grew:
		return "grew"
	case Died:
		return "died"
	default:
		return "unknown"
	}
}

// Outcome is the result of one tick. Head is set for Moved and Grew, Food
// only for Grew.
type Outcome struct {
	Kind OutcomeKind
	Head Cell
	Food Cell
}

func (o Outcome) String() string {
	switch o.Kind {
	case Moved:
		return fmt.Sprintf("moved to %s", o.Head)
	case Grew:
		return fmt.Sprintf("grew to %s, food at %s", o.Head, o.Food)
	default:
		return o.Kind.String()
	}
}

// Snapshot is a copy of the state a planner or renderer may read freely.
type Snapshot struct {
	Size    Size
	Snake   []Cell
	Food    Cell
	Heading Heading
	Score   int
	Filled  bool
}

// Head returns the first snake cell, or false for an empty snake.
func (s Snapshot) Head() (Cell, bool) {
	if len(s.Snake) == 0 {
		return Cell{}, false
	}
	return s.Snake[0], true
}
