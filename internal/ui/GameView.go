package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mshel/snakepilot/internal/game"
	"github.com/Mshel/snakepilot/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	voidColor    = lipgloss.Color("233")
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	voidStyle  = lipgloss.NewStyle().Background(voidColor).Render(" ")
	foodStyle  = lipgloss.NewStyle().Background(voidColor).Foreground(lipgloss.Color("9")).Bold(true)
	bodyStyle  = lipgloss.NewStyle().Background(voidColor).Foreground(lipgloss.Color("78"))
	headStyle  = bodyStyle.Bold(true).Foreground(lipgloss.Color("120"))
	titleStyle = lipgloss.NewStyle().Bold(true)

	headRunes = map[game.Heading]string{
		game.Up:    "▲",
		game.Down:  "▼",
		game.Left:  "◀",
		game.Right: "▶",
	}

	foodRune = "●"
)

const (
	statusPanelWidth = 34
	borderSize       = 2
)

// GameViewModel renders one running game and forwards input to its manager.
type GameViewModel struct {
	ScreenWidth  int
	ScreenHeight int
	TickCount    int

	ctx          context.Context
	gameManager  *session.GameManager
	snapshot     game.Snapshot
	autopilot    bool
	strategyName string
	lastPlanErr  error
	failures     int
}

// NewGameModel shows gm until ctx, the context its Run loop was started with,
// is done.
func NewGameModel(ctx context.Context, gm *session.GameManager, screenWidth int, screenHeight int) GameViewModel {
	return GameViewModel{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		ctx:          ctx,
		gameManager:  gm,
		snapshot:     gm.Snapshot(),
		autopilot:    gm.Autopilot(),
		strategyName: gm.StrategyName(),
	}
}

func (m GameViewModel) Init() tea.Cmd {
	return m.listenForGameUpdates()
}

func (m GameViewModel) listenForGameUpdates() tea.Cmd {
	ctx, ch := m.ctx, m.gameManager.UpdateChannel
	return func() tea.Msg {
		select {
		case msg := <-ch:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "p" {
			select {
			case m.gameManager.AutopilotChannel <- struct{}{}:
			default:
			}
			return m, nil
		}

		heading, ok := keyHeading(msg.String())
		if !ok {
			return m, nil
		}
		select {
		case m.gameManager.HeadingChannel <- heading:
		default:
		}
		return m, nil

	case session.TickMsg:
		m.TickCount++
		m.snapshot = msg.Snapshot
		m.autopilot = msg.Autopilot
		if msg.PlanErr != nil {
			m.lastPlanErr = msg.PlanErr
			m.failures++
		}
		return m, m.listenForGameUpdates()
	}

	return m, nil
}

// keyHeading maps arrow keys and WASD to a heading.
func keyHeading(key string) (game.Heading, bool) {
	switch key {
	case "w", "up":
		return game.Up, true
	case "s", "down":
		return game.Down, true
	case "a", "left":
		return game.Left, true
	case "d", "right":
		return game.Right, true
	}
	return 0, false
}

func (m GameViewModel) View() string {
	mapWidth := max(1, m.ScreenWidth-statusPanelWidth-borderSize*2)
	mapHeight := max(1, m.ScreenHeight-borderSize)

	mapContent := renderBoard(m.snapshot, mapWidth, mapHeight)
	statusContent := m.renderStatusPanel()

	return lipgloss.JoinHorizontal(lipgloss.Top,
		mapViewStyle.Render(mapContent),
		statusPanelStyle.Width(statusPanelWidth).Render(statusContent),
	)
}

// viewport returns the first and one-past-last index of a window of at most
// span cells over a side of length total, centred on focus where possible.
func viewport(focus, span, total int) (int, int) {
	span = min(span, total)
	start := max(0, focus-span/2)
	if start+span > total {
		start = max(0, total-span)
	}
	return start, min(total, start+span)
}

// renderBoard draws the part of the board that fits in width x height,
// following the head when the board is larger than the view.
func renderBoard(snap game.Snapshot, width, height int) string {
	head, _ := snap.Head()
	startCol, endCol := viewport(head.X, width, snap.Size.Width)
	startRow, endRow := viewport(head.Y, height, snap.Size.Height)

	body := make(map[game.Cell]int, len(snap.Snake))
	for i, c := range snap.Snake {
		body[c] = i
	}

	var sb strings.Builder
	for row := startRow; row < endRow; row++ {
		for col := startCol; col < endCol; col++ {
			cell := game.Cell{X: col, Y: row}
			index, onSnake := body[cell]
			switch {
			case onSnake && index == 0:
				sb.WriteString(headStyle.Render(headRunes[snap.Heading]))
			case onSnake:
				sb.WriteString(bodyStyle.Render(bodyRune(snap.Snake, index)))
			case cell == snap.Food && !snap.Filled:
				sb.WriteString(foodStyle.Render(foodRune))
			default:
				sb.WriteString(voidStyle)
			}
		}
		if row < endRow-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// bodyRune joins a segment to the segments before and after it.
func bodyRune(snake []game.Cell, index int) string {
	var hasUp, hasDown, hasLeft, hasRight bool
	cell := snake[index]
	for _, i := range []int{index - 1, index + 1} {
		if i < 0 || i >= len(snake) {
			continue
		}
		switch n := snake[i]; {
		case n.X == cell.X && n.Y == cell.Y-1:
			hasUp = true
		case n.X == cell.X && n.Y == cell.Y+1:
			hasDown = true
		case n.Y == cell.Y && n.X == cell.X-1:
			hasLeft = true
		case n.Y == cell.Y && n.X == cell.X+1:
			hasRight = true
		}
	}

	switch {
	case (hasUp && hasDown) || (hasUp && !hasLeft && !hasRight) || (hasDown && !hasLeft && !hasRight):
		return "│"
	case (hasLeft && hasRight) || (hasLeft && !hasUp && !hasDown) || (hasRight && !hasUp && !hasDown):
		return "─"
	case hasUp && hasRight:
		return "└"
	case hasUp && hasLeft:
		return "┘"
	case hasDown && hasRight:
		return "┌"
	case hasDown && hasLeft:
		return "┐"
	default:
		return "•"
	}
}

func (m GameViewModel) renderStatusPanel() string {
	var statusContent strings.Builder

	statusContent.WriteString(titleStyle.Render("--- Snake ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("Board: %s\n", m.snapshot.Size))
	statusContent.WriteString(fmt.Sprintf("Length: %d\n", len(m.snapshot.Snake)))
	statusContent.WriteString(fmt.Sprintf("Score: %d\n", m.snapshot.Score))
	statusContent.WriteString(fmt.Sprintf("Heading: %s %s\n", headRunes[m.snapshot.Heading], m.snapshot.Heading))
	statusContent.WriteString(fmt.Sprintf("Ticks: %d\n", m.TickCount))
	if m.snapshot.Filled {
		statusContent.WriteString(foodStyle.UnsetBackground().Render("Board filled!") + "\n")
	}

	statusContent.WriteString("\n" + titleStyle.Render("--- Autopilot ---") + "\n")
	if m.autopilot {
		statusContent.WriteString(fmt.Sprintf("On (%s)\n", m.strategyName))
	} else {
		statusContent.WriteString("Off\n")
	}
	if m.lastPlanErr != nil {
		statusContent.WriteString(fmt.Sprintf("Failures: %d\n", m.failures))
		statusContent.WriteString(errorStyle.Width(statusPanelWidth-4).Render(m.lastPlanErr.Error()) + "\n")
	}

	statusContent.WriteString("\n" + titleStyle.Render("--- Controls ---") + "\n")
	statusContent.WriteString("WASD / Arrows: Steer\n")
	statusContent.WriteString("P: Toggle autopilot\n")
	statusContent.WriteString("Q / Ctrl+C: Quit\n")
	statusContent.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render("snakepilot v0.1"))

	return statusContent.String()
}
