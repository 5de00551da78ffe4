package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mshel/snakepilot/internal/autopilot"
	"github.com/Mshel/snakepilot/internal/config"
	"github.com/Mshel/snakepilot/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStrategy struct {
	heading game.Heading
	err     error
	calls   int
}

func (s *stubStrategy) Name() string { return "stub" }

func (s *stubStrategy) NextHeading(game.Snapshot) (game.Heading, error) {
	s.calls++
	return s.heading, s.err
}

func newManager(t *testing.T, size game.Size, opts Options) *GameManager {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 7
	}
	gm, err := NewGameManager(size, opts)
	require.NoError(t, err)
	return gm
}

func TestNewGameManagerRejectsSmallBoard(t *testing.T) {
	_, err := NewGameManager(game.Size{Width: 4, Height: 10}, Options{})
	assert.ErrorIs(t, err, game.ErrBoardTooSmall)
}

func TestTickManual(t *testing.T) {
	gm := newManager(t, game.Size{Width: 20, Height: 20}, Options{})
	before := gm.Snapshot()
	head, _ := before.Head()

	msg, ok := gm.Tick().(TickMsg)
	require.True(t, ok)
	assert.False(t, msg.Autopilot)
	assert.NoError(t, msg.PlanErr)
	assert.Equal(t, game.Cell{X: head.X + 1, Y: head.Y}, msg.Outcome.Head)
	assert.Equal(t, game.Right, msg.Snapshot.Heading)
}

func TestSteerIgnoredUnderAutopilot(t *testing.T) {
	gm := newManager(t, game.Size{Width: 20, Height: 20}, Options{})
	gm.steer(game.Up)
	assert.Equal(t, game.Up, gm.Snapshot().Heading)

	gm.toggleAutopilot()
	gm.steer(game.Left)
	assert.Equal(t, game.Up, gm.Snapshot().Heading)
}

func TestTickAutopilot(t *testing.T) {
	gm := newManager(t, game.Size{Width: 12, Height: 12}, Options{Autopilot: true})
	assert.Equal(t, "flood", gm.StrategyName())

	grew := false
	for i := 0; i < 200; i++ {
		msg, ok := gm.Tick().(TickMsg)
		require.True(t, ok, "snake died under autopilot on tick %d", i)
		assert.True(t, msg.Autopilot)
		require.NoError(t, msg.PlanErr)
		if msg.Outcome.Kind == game.Grew {
			grew = true
			break
		}
	}
	assert.True(t, grew)
}

func TestTickHoldsHeadingWhenPlanningFails(t *testing.T) {
	planErr := errors.Join(autopilot.ErrPlanningFailed, errors.New("food is unreachable"))
	stub := &stubStrategy{heading: game.Up, err: planErr}
	gm := newManager(t, game.Size{Width: 20, Height: 20}, Options{Autopilot: true, Strategy: stub})

	msg, ok := gm.Tick().(TickMsg)
	require.True(t, ok)
	assert.Equal(t, 1, stub.calls)
	assert.ErrorIs(t, msg.PlanErr, autopilot.ErrPlanningFailed)
	assert.Equal(t, game.Right, msg.Snapshot.Heading)
	assert.True(t, gm.Autopilot())
}

func TestTickUsesStrategyHeading(t *testing.T) {
	stub := &stubStrategy{heading: game.Down}
	gm := newManager(t, game.Size{Width: 20, Height: 20}, Options{Autopilot: true, Strategy: stub})

	msg, ok := gm.Tick().(TickMsg)
	require.True(t, ok)
	assert.Equal(t, game.Down, msg.Snapshot.Heading)
}

func TestRunEndsWithGameOver(t *testing.T) {
	// On a 5x5 board the snake starts with its head on the right edge.
	gm := newManager(t, game.Size{Width: 5, Height: 5}, Options{ManualTick: time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, gm.Run(ctx))

	msg := <-gm.UpdateChannel
	over, ok := msg.(GameOverMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, game.Died, over.Outcome.Kind)
	assert.Len(t, over.Snapshot.Snake, game.InitialSnakeLength)
}

func TestRunStopsOnCancel(t *testing.T) {
	gm := newManager(t, game.Size{Width: 20, Height: 20}, Options{ManualTick: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gm.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunTogglesAutopilot(t *testing.T) {
	gm := newManager(t, game.Size{Width: 40, Height: 40}, Options{ManualTick: time.Hour, AutopilotTick: time.Millisecond})
	gm.AutopilotChannel <- struct{}{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- gm.Run(ctx) }()

	select {
	case msg := <-gm.UpdateChannel:
		tick, ok := msg.(TickMsg)
		require.True(t, ok, "got %T", msg)
		assert.True(t, tick.Autopilot)
	case <-time.After(5 * time.Second):
		t.Fatal("no tick after enabling autopilot")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 42
	cfg.Autopilot.Enabled = true

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, int64(42), opts.Seed)
	assert.True(t, opts.Autopilot)
	assert.Equal(t, cfg.Tick.Manual, opts.ManualTick)
	assert.Equal(t, cfg.Tick.Autopilot, opts.AutopilotTick)
}
