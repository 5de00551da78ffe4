package ui

import (
	"fmt"

	"github.com/Mshel/snakepilot/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type GameOverSubmitMsg int

const (
	GameOverPlayAgain GameOverSubmitMsg = iota
	GameOverExit
)

// GameOverModel shows the final snake and asks whether to play again.
type GameOverModel struct {
	Final          game.Snapshot
	Ticks          int
	SelectedButton GameOverSubmitMsg
	ScreenWidth    int
	ScreenHeight   int
}

var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))
)

func NewGameOverModel(final game.Snapshot, ticks, w, h int) GameOverModel {
	return GameOverModel{
		Final:          final,
		Ticks:          ticks,
		SelectedButton: GameOverPlayAgain,
		ScreenWidth:    w,
		ScreenHeight:   h,
	}
}

func (g GameOverModel) Init() tea.Cmd { return nil }

func (g GameOverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		g.ScreenWidth = msg.Width
		g.ScreenHeight = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			g.SelectedButton = GameOverPlayAgain
		case "right", "l":
			g.SelectedButton = GameOverExit
		case "enter":
			selected := g.SelectedButton
			return g, func() tea.Msg { return selected }
		}
	}
	return g, nil
}

func (g GameOverModel) View() string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Padding(1, 5).
		Align(lipgloss.Center)

	title := messageStyle.Render("G A M E   O V E R")
	if g.Final.Filled {
		title = messageStyle.Foreground(lipgloss.Color("78")).Render("B O A R D   F I L L E D")
	}

	stats := fmt.Sprintf("\nFinal Stats:\nLength: %d\nScore: %d\nTicks survived: %d\nBoard: %s\n",
		len(g.Final.Snake), g.Final.Score, g.Ticks, g.Final.Size)

	playAgain := gameOverButtonStyle.Render("PLAY AGAIN")
	exit := gameOverButtonStyle.Render("EXIT")
	if g.SelectedButton == GameOverPlayAgain {
		playAgain = selectedButtonStyle.Render("PLAY AGAIN")
	} else {
		exit = selectedButtonStyle.Render("EXIT")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, playAgain, exit)
	content := lipgloss.JoinVertical(lipgloss.Center, title, stats, buttons)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 2).Render(content),
	)
}
