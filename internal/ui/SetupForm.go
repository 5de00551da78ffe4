package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/snakepilot/internal/config"
	"github.com/Mshel/snakepilot/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

const (
	focusWidth = iota
	focusHeight
	focusSubmit
	focusCount
)

// SetupModel asks for the board size.
type SetupModel struct {
	inputs     []textinput.Model
	focusIndex int
	err        error
	width      int
	height     int
	config     *config.Config
}

func newSizeInput(placeholder string, value int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(strconv.Itoa(value))
	ti.CharLimit = 3
	ti.Width = 5
	ti.PromptStyle = blurredStyle
	ti.TextStyle = blurredStyle
	return ti
}

func NewInitialSetupModel(cfg *config.Config, w, h int) SetupModel {
	m := SetupModel{
		inputs: []textinput.Model{
			newSizeInput("width", cfg.Board.Width),
			newSizeInput("height", cfg.Board.Height),
		},
		width:  w,
		height: h,
		config: cfg,
	}
	m.focus(focusWidth)
	return m
}

func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SetupModel) focus(index int) {
	m.focusIndex = (index + focusCount) % focusCount
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
		} else {
			m.inputs[i].Blur()
			m.inputs[i].PromptStyle = blurredStyle
			m.inputs[i].TextStyle = blurredStyle
		}
	}
}

// size parses and checks the entered board size.
func (m SetupModel) size() (game.Size, error) {
	width, err := strconv.Atoi(strings.TrimSpace(m.inputs[focusWidth].Value()))
	if err != nil {
		return game.Size{}, fmt.Errorf("width must be a number")
	}
	height, err := strconv.Atoi(strings.TrimSpace(m.inputs[focusHeight].Value()))
	if err != nil {
		return game.Size{}, fmt.Errorf("height must be a number")
	}
	size := game.Size{Width: width, Height: height}
	if err := m.config.CheckBoard(size); err != nil {
		return game.Size{}, err
	}
	return size, nil
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch s := msg.String(); s {
		case "tab", "down":
			m.focus(m.focusIndex + 1)
			return m, nil
		case "shift+tab", "up":
			m.focus(m.focusIndex - 1)
			return m, nil
		case "enter":
			if m.focusIndex != focusSubmit {
				m.focus(m.focusIndex + 1)
				return m, nil
			}
			size, err := m.size()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			return m, func() tea.Msg { return SetupSubmitMsg{Size: size} }
		}

		if m.focusIndex < len(m.inputs) {
			var cmd tea.Cmd
			m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().Bold(true).Render("Board size")))
	b.WriteString("\n\n")
	for i, label := range []string{"Width ", "Height"} {
		style := blurredStyle
		if m.focusIndex == i {
			style = focusedStyle
		}
		b.WriteString(center(style.Render(label) + " " + m.inputs[i].View()))
		b.WriteString("\n")
	}
	b.WriteString(center(helpStyle.Render(fmt.Sprintf("between %d and %dx%d", game.MinBoardSide, m.config.Board.MaxWidth, m.config.Board.MaxHeight))))
	b.WriteString("\n\n")

	submitButton := blurredButtonStyle.Render("Start")
	if m.focusIndex == focusSubmit {
		submitButton = submitButtonStyle.Render("Start")
	}
	b.WriteString(center(submitButton))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(center(errorStyle.Render(m.err.Error())))
	}
	b.WriteString("\n")

	b.WriteString(center(helpStyle.Render("(tab/shift+tab to navigate, enter to confirm, ctrl+c to quit)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
