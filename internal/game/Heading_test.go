package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadingAxis(t *testing.T) {
	assert.Equal(t, Horizontal, Left.Axis())
	assert.Equal(t, Horizontal, Right.Axis())
	assert.Equal(t, Vertical, Up.Axis())
	assert.Equal(t, Vertical, Down.Axis())
}

func TestParseHeading(t *testing.T) {
	for _, h := range headings {
		got, err := ParseHeading(h.String())
		require.NoError(t, err)
		assert.Equal(t, h, got)
	}

	got, err := ParseHeading(" UP ")
	require.NoError(t, err)
	assert.Equal(t, Up, got)

	_, err = ParseHeading("sideways")
	assert.Error(t, err)
}

func TestCellStep(t *testing.T) {
	c := Cell{0, 3}

	_, ok := c.Step(Left)
	assert.False(t, ok)

	next, ok := c.Step(Up)
	require.True(t, ok)
	assert.Equal(t, Cell{0, 2}, next)

	next, ok = c.Step(Down)
	require.True(t, ok)
	assert.Equal(t, Cell{0, 4}, next)

	_, ok = Cell{2, 0}.Step(Up)
	assert.False(t, ok)
}

func TestCellNeighbours(t *testing.T) {
	assert.Equal(t, []Cell{{2, 3}, {3, 2}, {4, 3}, {3, 4}}, Cell{3, 3}.Neighbours())
	assert.Equal(t, []Cell{{1, 0}, {0, 1}}, Cell{0, 0}.Neighbours())
	assert.Equal(t, []Cell{{0, 0}, {2, 0}, {1, 1}}, Cell{1, 0}.Neighbours())
}

func TestSizeContains(t *testing.T) {
	s := Size{5, 6}
	assert.True(t, s.Contains(Cell{0, 0}))
	assert.True(t, s.Contains(Cell{4, 5}))
	assert.False(t, s.Contains(Cell{5, 0}))
	assert.False(t, s.Contains(Cell{0, 6}))
	assert.False(t, s.Contains(Cell{-1, 2}))
}

func TestSquaredDistance(t *testing.T) {
	assert.Equal(t, 25, SquaredDistance(Cell{1, 1}, Cell{4, 5}))
	assert.Equal(t, 0, SquaredDistance(Cell{3, 3}, Cell{3, 3}))
}
