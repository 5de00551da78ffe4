package ui

import (
	"context"
	"errors"
	"io"

	"github.com/Mshel/snakepilot/internal/autopilot"
	"github.com/Mshel/snakepilot/internal/config"
	"github.com/Mshel/snakepilot/internal/game"
	"github.com/Mshel/snakepilot/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
	GameOverScreen
)

// Messages for state transitions
type IntroSubmitMsg int

const (
	IntroPlay IntroSubmitMsg = iota
	IntroWatch
)

type SetupSubmitMsg struct {
	Size game.Size
}

// runningGame is the game loop behind the game screen.
type runningGame struct {
	cancel   context.CancelFunc
	strategy autopilot.Strategy
}

type ControllerModel struct {
	CurrentScreen Screen
	Config        *config.Config
	Logger        *log.Logger

	IntroModel    tea.Model
	SetupModel    tea.Model
	GameModel     tea.Model
	GameOverModel tea.Model

	ScreenWidth  int
	ScreenHeight int

	ctx     context.Context
	watch   bool
	running *runningGame
}

// NewControllerModel builds the screen flow for one terminal. Games started
// from it stop when ctx is done.
func NewControllerModel(ctx context.Context, cfg *config.Config, logger *log.Logger, screenWidth int, screenHeight int) ControllerModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return ControllerModel{
		CurrentScreen: IntroScreen,
		Config:        cfg,
		Logger:        logger,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(cfg, screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		ctx:          ctx,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	case GameOverScreen:
		if m.GameOverModel != nil {
			return m.GameOverModel.View()
		}
		return "Game Over"
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		key := msg.String()
		if key == "ctrl+c" || (key == "q" && m.CurrentScreen != SetupScreen) {
			m.stopGame()
			return m, tea.Quit
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SetupModel, _ = m.SetupModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, _ = m.GameModel.Update(msg)
		}
		if m.GameOverModel != nil {
			m.GameOverModel, _ = m.GameOverModel.Update(msg)
		}
		return m, nil

	case IntroSubmitMsg:
		m.watch = msg == IntroWatch
		m.CurrentScreen = SetupScreen
		return m, m.SetupModel.Init()

	case SetupSubmitMsg:
		if err := m.startGame(msg.Size); err != nil {
			m.Logger.Error("could not start game", "board", msg.Size, "err", err)
			if setup, ok := m.SetupModel.(SetupModel); ok {
				setup.err = err
				m.SetupModel = setup
			}
			return m, nil
		}
		m.CurrentScreen = GameScreen
		return m, m.GameModel.Init()

	case session.GameOverMsg:
		ticks := 0
		if view, ok := m.GameModel.(GameViewModel); ok {
			ticks = view.TickCount
		}
		m.stopGame()
		m.Logger.Info("game over", "score", msg.Snapshot.Score, "length", len(msg.Snapshot.Snake), "ticks", ticks)
		m.GameOverModel = NewGameOverModel(msg.Snapshot, ticks, m.ScreenWidth, m.ScreenHeight)
		m.CurrentScreen = GameOverScreen
		return m, m.GameOverModel.Init()

	case GameOverSubmitMsg:
		if msg == GameOverExit {
			return m, tea.Quit
		}
		m.GameModel = nil
		m.GameOverModel = nil
		m.CurrentScreen = SetupScreen
		return m, m.SetupModel.Init()
	}

	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel, cmd = m.IntroModel.Update(msg)
	case SetupScreen:
		m.SetupModel, cmd = m.SetupModel.Update(msg)
	case GameScreen:
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
		}
	case GameOverScreen:
		if m.GameOverModel != nil {
			m.GameOverModel, cmd = m.GameOverModel.Update(msg)
		}
	}

	return m, cmd
}

// startGame builds a game manager for size and starts its loop.
func (m *ControllerModel) startGame(size game.Size) error {
	strategy, err := autopilot.NewStrategy(m.Config.Autopilot.Script)
	if err != nil {
		return err
	}

	opts := session.OptionsFromConfig(m.Config)
	opts.Autopilot = opts.Autopilot || m.watch
	opts.Strategy = strategy
	opts.Logger = m.Logger
	gm, err := session.NewGameManager(size, opts)
	if err != nil {
		autopilot.Close(strategy)
		return err
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.running = &runningGame{cancel: cancel, strategy: strategy}
	m.GameModel = NewGameModel(ctx, gm, m.ScreenWidth, m.ScreenHeight)

	logger := m.Logger
	go func() {
		if err := gm.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("game loop ended", "err", err)
		}
	}()
	return nil
}

func (m *ControllerModel) stopGame() {
	if m.running == nil {
		return
	}
	m.running.cancel()
	autopilot.Close(m.running.strategy)
	m.running = nil
}
