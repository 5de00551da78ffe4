package game

import (
	"fmt"
	"strings"
)

// Heading is the cardinal direction the snake travels in.
type Heading int

const (
	Left Heading = iota
	Up
	Right
	Down
)

// Axis groups headings that would reverse into each other.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

var headings = []Heading{Left, Up, Right, Down}

// Axis returns Horizontal for Left/Right and Vertical for Up/Down.
func (h Heading) Axis() Axis {
	switch h {
	case Up, Down:
		return Vertical
	default:
		return Horizontal
	}
}

// Delta is the coordinate offset of one step. Up decreases Y.
func (h Heading) Delta() (dx, dy int) {
	switch h {
	case Left:
		return -1, 0
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	}
	return 0, 0
}

func (h Heading) String() string {
	switch h {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// ParseHeading accepts the names produced by Heading.String, case-insensitively.
func ParseHeading(s string) (Heading, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, nil
	case "up":
		return Up, nil
	case "right":
		return Right, nil
	case "down":
		return Down, nil
	}
	return 0, fmt.Errorf("unknown heading %q", s)
}
