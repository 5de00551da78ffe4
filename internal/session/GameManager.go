package session

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/Mshel/snakepilot/internal/autopilot"
	"github.com/Mshel/snakepilot/internal/config"
	"github.com/Mshel/snakepilot/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// TickMsg is sent to the UI after every tick the snake survives.
type TickMsg struct {
	Snapshot  game.Snapshot
	Outcome   game.Outcome
	Autopilot bool
	PlanErr   error // set when autopilot could not pick a heading this tick
}

// GameOverMsg is sent once, when the snake dies.
type GameOverMsg struct {
	Snapshot game.Snapshot
	Outcome  game.Outcome
}

type Options struct {
	Seed          int64 // 0 seeds from the clock
	ManualTick    time.Duration
	AutopilotTick time.Duration
	Autopilot     bool
	Strategy      autopilot.Strategy // nil uses the flood planner
	Logger        *log.Logger
}

// OptionsFromConfig maps the tick and autopilot settings onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Seed:          cfg.Seed,
		ManualTick:    cfg.Tick.Manual,
		AutopilotTick: cfg.Tick.Autopilot,
		Autopilot:     cfg.Autopilot.Enabled,
	}
}

// GameManager owns one game.State and drives it from a ticker. Input arrives
// over HeadingChannel and AutopilotChannel and every tick result leaves over
// UpdateChannel, so only the Run goroutine touches the state once it starts.
type GameManager struct {
	HeadingChannel   chan game.Heading
	AutopilotChannel chan struct{}
	UpdateChannel    chan tea.Msg

	state         *game.State
	strategy      autopilot.Strategy
	autopilot     bool
	manualTick    time.Duration
	autopilotTick time.Duration
	logger        *log.Logger
}

func NewGameManager(size game.Size, opts Options) (*GameManager, error) {
	var stateOpts []game.Option
	if opts.Seed != 0 {
		stateOpts = append(stateOpts, game.WithSeed(opts.Seed))
	}
	state, err := game.NewState(size, stateOpts...)
	if err != nil {
		return nil, err
	}

	gm := &GameManager{
		HeadingChannel:   make(chan game.Heading, 10),
		AutopilotChannel: make(chan struct{}, 1),
		UpdateChannel:    make(chan tea.Msg, 256),
		state:            state,
		strategy:         opts.Strategy,
		autopilot:        opts.Autopilot,
		manualTick:       opts.ManualTick,
		autopilotTick:    opts.AutopilotTick,
		logger:           opts.Logger,
	}
	if gm.strategy == nil {
		gm.strategy = autopilot.FloodStrategy{}
	}
	if gm.logger == nil {
		gm.logger = log.New(io.Discard)
	}
	if gm.manualTick <= 0 {
		gm.manualTick = 100 * time.Millisecond
	}
	if gm.autopilotTick <= 0 {
		gm.autopilotTick = 30 * time.Millisecond
	}
	return gm, nil
}

// Snapshot reads the state. Call it before Run starts or after it returns.
func (gm *GameManager) Snapshot() game.Snapshot {
	return gm.state.Snapshot()
}

func (gm *GameManager) Autopilot() bool {
	return gm.autopilot
}

func (gm *GameManager) StrategyName() string {
	return gm.strategy.Name()
}

// Run ticks the game until the snake dies or ctx is cancelled. It returns
// nil after publishing GameOverMsg and ctx.Err() on cancellation.
func (gm *GameManager) Run(ctx context.Context) error {
	gm.logger.Info("game loop started", "board", gm.state.Size(), "autopilot", gm.autopilot, "strategy", gm.strategy.Name())

	ticker := time.NewTicker(gm.period())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			gm.logger.Info("game loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case heading := <-gm.HeadingChannel:
			gm.steer(heading)
		case <-gm.AutopilotChannel:
			gm.toggleAutopilot()
			ticker.Reset(gm.period())
		case <-ticker.C:
			msg := gm.Tick()
			select {
			case gm.UpdateChannel <- msg:
			case <-ctx.Done():
				return ctx.Err()
			}
			if over, ok := msg.(GameOverMsg); ok {
				gm.logger.Info("game over", "score", over.Snapshot.Score, "length", len(over.Snapshot.Snake))
				return nil
			}
		}
	}
}

// Tick runs one step: plan when autopilot is on, then advance.
func (gm *GameManager) Tick() tea.Msg {
	var planErr error
	if gm.autopilot {
		heading, err := gm.strategy.NextHeading(gm.state.Snapshot())
		if err != nil {
			planErr = err
			gm.logger.Warn("autopilot could not plan, holding heading", "heading", gm.state.Heading(), "err", err)
			if !errors.Is(err, autopilot.ErrPlanningFailed) && !errors.Is(err, autopilot.ErrScriptStrategy) {
				gm.logger.Error("unexpected strategy error", "strategy", gm.strategy.Name(), "err", err)
			}
		} else {
			gm.state.SetHeading(heading)
		}
	}

	outcome := gm.state.Advance()
	snapshot := gm.state.Snapshot()
	if outcome.Kind == game.Died {
		return GameOverMsg{Snapshot: snapshot, Outcome: outcome}
	}
	if outcome.Kind == game.Grew {
		gm.logger.Debug("food eaten", "score", snapshot.Score, "food", outcome.Food)
	}
	return TickMsg{
		Snapshot:  snapshot,
		Outcome:   outcome,
		Autopilot: gm.autopilot,
		PlanErr:   planErr,
	}
}

// steer applies a player heading. Autopilot owns the heading while it is on.
func (gm *GameManager) steer(heading game.Heading) {
	if gm.autopilot {
		return
	}
	gm.state.SetHeading(heading)
}

func (gm *GameManager) toggleAutopilot() {
	gm.autopilot = !gm.autopilot
	gm.logger.Info("autopilot toggled", "enabled", gm.autopilot)
}

func (gm *GameManager) period() time.Duration {
	if gm.autopilot {
		return gm.autopilotTick
	}
	return gm.manualTick
}
