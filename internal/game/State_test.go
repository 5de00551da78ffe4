package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, size Size) *State {
	t.Helper()
	s, err := NewState(size, WithSeed(42))
	require.NoError(t, err)
	return s
}

func TestNewState(t *testing.T) {
	for _, size := range []Size{{5, 5}, {6, 9}, {7, 5}, {8, 8}, {10, 10}, {33, 17}} {
		t.Run(size.String(), func(t *testing.T) {
			s := newTestState(t, size)

			snake := s.Snake()
			require.Len(t, snake, InitialSnakeLength)
			seen := make(map[Cell]bool)
			for i, c := range snake {
				assert.True(t, size.Contains(c), "cell %s off the board", c)
				assert.False(t, seen[c], "duplicate cell %s", c)
				seen[c] = true
				if i > 0 {
					assert.Equal(t, Cell{X: snake[i-1].X - 1, Y: snake[i-1].Y}, c)
				}
			}
			assert.Equal(t, Right, s.Heading())
			assert.True(t, size.Contains(s.Food()))
			assert.False(t, seen[s.Food()], "food placed on the snake")
			assert.Equal(t, 0, s.Score())
		})
	}
}

func TestNewStateBuildsSnakeFromCentre(t *testing.T) {
	s := newTestState(t, Size{10, 10})
	assert.Equal(t, []Cell{{5, 5}, {4, 5}, {3, 5}, {2, 5}, {1, 5}}, s.Snake())
}

func TestNewStateRejectsSmallBoards(t *testing.T) {
	for _, size := range []Size{{4, 10}, {10, 4}, {0, 0}, {-3, 8}} {
		_, err := NewState(size)
		assert.ErrorIs(t, err, ErrBoardTooSmall, size.String())
	}
}

func TestSetHeadingIgnoresSameAxis(t *testing.T) {
	s := newTestState(t, Size{10, 10})

	s.SetHeading(Left)
	assert.Equal(t, Right, s.Heading())
	s.SetHeading(Right)
	assert.Equal(t, Right, s.Heading())

	s.SetHeading(Up)
	assert.Equal(t, Up, s.Heading())
	s.SetHeading(Down)
	assert.Equal(t, Up, s.Heading())
	s.SetHeading(Left)
	assert.Equal(t, Left, s.Heading())
}

func TestSetHeadingComparesCurrentHeading(t *testing.T) {
	for _, current := range headings {
		for _, requested := range headings {
			s := newTestState(t, Size{10, 10})
			s.heading = current

			s.SetHeading(requested)
			want := requested
			if requested.Axis() == current.Axis() {
				want = current
			}
			assert.Equal(t, want, s.Heading(), "current=%s requested=%s", current, requested)
		}
	}
}

func TestSetHeadingTwiceInOneTick(t *testing.T) {
	s := newTestState(t, Size{10, 10})
	s.food = Cell{0, 0}

	// Up then Left before a step turns the head back into the neck.
	s.SetHeading(Up)
	s.SetHeading(Left)
	assert.Equal(t, Left, s.Heading())
	assert.Equal(t, Died, s.Advance().Kind)
	assert.Equal(t, Cell{5, 5}, s.Head())
}

func TestAdvanceGrows(t *testing.T) {
	s := newTestState(t, Size{10, 10})
	s.food = Cell{5, 6}
	s.SetHeading(Down)

	out := s.Advance()
	require.Equal(t, Grew, out.Kind)
	assert.Equal(t, Cell{5, 6}, out.Head)
	assert.Equal(t, s.Food(), out.Food)
	assert.Equal(t, []Cell{{5, 6}, {5, 5}, {4, 5}, {3, 5}, {2, 5}, {1, 5}}, s.Snake())
	assert.Equal(t, 1, s.Score())
	assert.False(t, s.Occupied(s.Food()))
}

func TestAdvanceMoves(t *testing.T) {
	s := newTestState(t, Size{10, 10})
	s.food = Cell{6, 6}
	s.SetHeading(Down)

	out := s.Advance()
	require.Equal(t, Moved, out.Kind)
	assert.Equal(t, Cell{5, 6}, out.Head)
	assert.Equal(t, []Cell{{5, 6}, {5, 5}, {4, 5}, {3, 5}, {2, 5}}, s.Snake())
	assert.False(t, s.Occupied(Cell{1, 5}))
}

func TestAdvanceDiesOnWall(t *testing.T) {
	s := newTestState(t, Size{10, 10})
	s.food = Cell{6, 6}
	s.SetHeading(Down)
	for i := 0; i < 4; i++ {
		require.Equal(t, Moved, s.Advance().Kind)
	}

	assert.Equal(t, Outcome{Kind: Died}, s.Advance())
	assert.Equal(t, Outcome{Kind: Died}, s.Advance())
	assert.Equal(t, Cell{6, 6}, s.Food())
	assert.Equal(t, []Cell{{5, 9}, {5, 8}, {5, 7}, {5, 6}, {5, 5}}, s.Snake())
}

func TestAdvanceDiesOnUnderflow(t *testing.T) {
	s := newTestState(t, Size{10, 10})
	s.food = Cell{9, 9}
	s.SetHeading(Up)
	for i := 0; i < 5; i++ {
		require.Equal(t, Moved, s.Advance().Kind)
	}
	assert.Equal(t, Cell{5, 0}, s.Head())
	assert.Equal(t, Died, s.Advance().Kind)
	assert.Equal(t, Cell{5, 0}, s.Head())
}

func TestAdvanceDiesOnSelf(t *testing.T) {
	s := newTestState(t, Size{10, 10})
	s.food = Cell{9, 9}
	s.SetHeading(Down)
	require.Equal(t, Moved, s.Advance().Kind)
	s.SetHeading(Left)
	require.Equal(t, Moved, s.Advance().Kind)

	s.SetHeading(Up)
	before := s.Snapshot()
	assert.Equal(t, Died, s.Advance().Kind)
	assert.Equal(t, before, s.Snapshot())
}

func TestAdvanceKeepsSnakeConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		s, err := NewState(Size{8, 7}, WithSeed(int64(round)))
		require.NoError(t, err)

		for tick := 0; tick < 500; tick++ {
			s.SetHeading(headings[rng.Intn(len(headings))])
			before := s.Snapshot()
			out := s.Advance()

			switch out.Kind {
			case Died:
				assert.Equal(t, before, s.Snapshot())
			case Moved:
				assert.Equal(t, len(before.Snake), s.Len())
				assert.Equal(t, out.Head, s.Head())
			case Grew:
				assert.Equal(t, len(before.Snake)+1, s.Len())
				assert.Equal(t, before.Score+1, s.Score())
				if !s.Filled() {
					assert.False(t, s.Occupied(s.Food()), "food placed on the snake")
				}
			}

			seen := make(map[Cell]bool)
			for _, c := range s.Snake() {
				require.False(t, seen[c], "duplicate cell %s", c)
				require.True(t, s.Size().Contains(c))
				seen[c] = true
			}
			if out.Kind == Died {
				break
			}
		}
	}
}

func TestFoodPlacementIsSeeded(t *testing.T) {
	a, err := NewState(Size{20, 20}, WithSeed(99))
	require.NoError(t, err)
	b, err := NewState(Size{20, 20}, WithSeed(99))
	require.NoError(t, err)
	assert.Equal(t, a.Food(), b.Food())
}

func TestFilledBoard(t *testing.T) {
	s := newTestState(t, Size{5, 5})
	// Leave exactly one free cell and eat it.
	s.snake = s.snake[:0]
	s.occupied = make(map[Cell]struct{})
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if x == 4 && y == 0 {
				continue
			}
			c := Cell{x, y}
			s.snake = append(s.snake, c)
			s.occupied[c] = struct{}{}
		}
	}
	// Head must sit next to the free cell.
	s.snake[0], s.snake[3] = s.snake[3], s.snake[0]
	require.Equal(t, Cell{3, 0}, s.snake[0])
	s.food = Cell{4, 0}

	out := s.Advance()
	require.Equal(t, Grew, out.Kind)
	assert.True(t, s.Filled())
	assert.Equal(t, 25, s.Len())
	assert.Equal(t, Died, s.Advance().Kind)
}
