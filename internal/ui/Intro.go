package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected IntroSubmitMsg
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: IntroPlay, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			// two buttons, so both directions flip the selection
			if m.selected == IntroPlay {
				m.selected = IntroWatch
			} else {
				m.selected = IntroPlay
			}
		case "enter":
			selected := m.selected
			return m, func() tea.Msg { return selected }
		}
	}
	return m, nil
}

var snakeAscii = `
   ▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄
   █  ▄▀▀▀ █▄  █ ▄▀▀▄ █ ▄▀ █▀▀▀ █▀▀▄ ▀█▀ █    ▄▀▀▄ ▀█▀  █
   █  ▀▀▀▄ █ ▀▄█ █▀▀█ █▀▄  █▀▀  █▀▀   █  █    █  █  █   █
   █  ▄▄▄▀ █   █ █  █ █  █ █▄▄▄ █    ▄█▄ █▄▄▄ ▀▄▄▀  █   █
   █▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄█
                                                      ▀▀▶ ●
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78"))

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("78")).
					Foreground(lipgloss.Color("0"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(snakeAscii))
	sb.WriteString("\n")

	play := introButtonStyle.Render("Play")
	watch := introButtonStyle.Render("Watch Autopilot")

	if m.selected == IntroPlay {
		play = introSelectedButtonStyle.Render("Play")
	} else {
		watch = introSelectedButtonStyle.Render("Watch Autopilot")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, play, watch)
	help := helpStyle.Render("(left/right to choose, enter to start, q to quit)")
	content := lipgloss.JoinVertical(lipgloss.Center, sb.String(), buttons, help)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
