package game

import (
	"math/rand"
	"time"
)

// State is the authoritative snake, food and board of a single game. It is
// mutated only through SetHeading and Advance and is not safe for concurrent
// use; the driving loop owns it.
type State struct {
	size     Size
	snake    []Cell // head at index 0
	occupied map[Cell]struct{}
	food     Cell
	heading  Heading
	score    int
	filled   bool
	rng      *rand.Rand
}

type Option func(*State)

// WithSeed makes food placement deterministic.
func WithSeed(seed int64) Option {
	return func(s *State) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// NewState builds a game with a five cell horizontal snake heading right and
// a randomly placed food cell.
func NewState(size Size, opts ...Option) (*State, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}

	s := &State{
		size:     size,
		occupied: make(map[Cell]struct{}, InitialSnakeLength),
		heading:  InitialHeading,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s.snake = buildSnake(size)
	for _, c := range s.snake {
		s.occupied[c] = struct{}{}
	}
	s.placeFood()

	return s, nil
}

// buildSnake lays the initial snake out from the board centre towards -x.
// On boards narrower than 8 the head is shifted right so the tail stays on
// the board.
func buildSnake(size Size) []Cell {
	head := Cell{X: max(size.Width/2, InitialSnakeLength-1), Y: size.Height / 2}
	snake := make([]Cell, 0, InitialSnakeLength)
	for i := 0; i < InitialSnakeLength; i++ {
		snake = append(snake, Cell{X: head.X - i, Y: head.Y})
	}
	return snake
}

// SetHeading changes the heading for the next Advance. A heading on the same
// axis as the current one is ignored.
func (s *State) SetHeading(h Heading) {
	if h.Axis() == s.heading.Axis() {
		return
	}
	s.heading = h
}

// Advance moves the snake one cell. A Died outcome leaves the state exactly
// as it was.
func (s *State) Advance() Outcome {
	candidate, ok := s.snake[0].Step(s.heading)
	if !ok || !s.size.Contains(candidate) {
		return Outcome{Kind: Died}
	}
	if _, hit := s.occupied[candidate]; hit {
		return Outcome{Kind: Died}
	}

	s.snake = append(s.snake, Cell{})
	copy(s.snake[1:], s.snake)
	s.snake[0] = candidate
	s.occupied[candidate] = struct{}{}

	if candidate == s.food {
		s.score++
		s.placeFood()
		return Outcome{Kind: Grew, Head: candidate, Food: s.food}
	}

	tail := s.snake[len(s.snake)-1]
	s.snake = s.snake[:len(s.snake)-1]
	delete(s.occupied, tail)

	return Outcome{Kind: Moved, Head: candidate}
}

// placeFood draws uniformly from the cells the snake does not cover. When
// none are left the board is filled and the food stays where it was.
func (s *State) placeFood() {
	free := make([]Cell, 0, s.size.Area()-len(s.snake))
	for y := 0; y < s.size.Height; y++ {
		for x := 0; x < s.size.Width; x++ {
			c := Cell{X: x, Y: y}
			if _, hit := s.occupied[c]; !hit {
				free = append(free, c)
			}
		}
	}

	if len(free) == 0 {
		s.filled = true
		return
	}
	s.food = free[s.rng.Intn(len(free))]
}

// Snake returns a copy of the body, head first.
func (s *State) Snake() []Cell {
	out := make([]Cell, len(s.snake))
	copy(out, s.snake)
	return out
}

func (s *State) Head() Cell       { return s.snake[0] }
func (s *State) Len() int         { return len(s.snake) }
func (s *State) Food() Cell       { return s.food }
func (s *State) Heading() Heading { return s.heading }
func (s *State) Size() Size       { return s.size }

// Score counts the food eaten so far.
func (s *State) Score() int { return s.score }

// Filled reports that the snake covers the whole board.
func (s *State) Filled() bool { return s.filled }

// Occupied reports whether c is part of the snake.
func (s *State) Occupied(c Cell) bool {
	_, hit := s.occupied[c]
	return hit
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Size:    s.size,
		Snake:   s.Snake(),
		Food:    s.food,
		Heading: s.heading,
		Score:   s.score,
		Filled:  s.filled,
	}
}
