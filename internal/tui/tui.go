package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/unosim/internal/game"
)

// DefaultInterval is the delay between automatic turns
const DefaultInterval = 500 * time.Millisecond

const (
	minInterval = 25 * time.Millisecond
	maxInterval = 5 * time.Second
)

// TickMsg advances the game by one turn while the viewer is running
type TickMsg time.Time

// Options configures the watch viewer
type Options struct {
	Interval time.Duration // Delay between turns, DefaultInterval when zero
	MaxTurns int           // Stop after this many turns, unlimited when zero
	Paused   bool          // Start paused; step with n
}

// WatchModel is a Bubble Tea model that plays a single game turn by turn
type WatchModel struct {
	engine    *game.Engine
	formatter *game.EventFormatter
	logger    *log.Logger

	// UI components
	logViewport viewport.Model

	// State
	gameLog  []string
	interval time.Duration
	maxTurns int
	paused   bool
	quitting bool
	err      error

	// Dimensions
	width       int
	height      int
	initialized bool
}

// NewWatchModel creates a viewer for an initialized engine. The model
// subscribes to the engine's event bus to fill its log.
func NewWatchModel(engine *game.Engine, logger *log.Logger, opts Options) *WatchModel {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	m := &WatchModel{
		engine: engine,
		formatter: game.NewEventFormatter(game.FormattingOptions{
			ShowTurnStarts: true,
			ShowRules:      true,
			CardStyle:      CardStyle,
		}),
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		interval:    opts.Interval,
		maxTurns:    opts.MaxTurns,
		paused:      opts.Paused,
	}
	engine.EventBus().Subscribe(m)
	return m
}

// OnEvent appends the formatted event to the log
func (m *WatchModel) OnEvent(event game.GameEvent) {
	if line := m.formatter.Format(event); line != "" {
		m.AddLogEntry(line)
	}
}

// Init starts the turn ticker
func (m *WatchModel) Init() tea.Cmd {
	if m.paused {
		return nil
	}
	return m.tick()
}

func (m *WatchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles messages in the TUI
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case TickMsg:
		if m.paused || m.Done() {
			return m, nil
		}
		m.Step()
		if !m.Done() {
			cmds = append(cmds, m.tick())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
			if !m.paused && !m.Done() {
				return m, m.tick()
			}
			// Space also pages the viewport, so stop here
			return m, nil
		case "n", "enter", "right":
			if m.paused {
				m.Step()
			}
		case "+", "=":
			m.interval = max(m.interval/2, minInterval)
		case "-":
			m.interval = min(m.interval*2, maxInterval)
		case "home", "g":
			m.logViewport.GotoTop()
		case "end", "G":
			m.logViewport.GotoBottom()
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// Step plays one turn unless the game has finished
func (m *WatchModel) Step() {
	if m.Done() {
		return
	}
	if err := m.engine.PlayTurn(); err != nil {
		m.err = err
		m.logger.Error("Turn failed", "error", err)
		m.AddLogEntry(ErrorStyle.Render("Error: " + err.Error()))
		return
	}

	switch {
	case m.engine.IsGameOver():
		// The engine has already published GameOverEvent
	case m.engine.Stalled():
		m.AddLogEntry(WarningStyle.Render("Nobody can move, the game is stalled"))
	case m.maxTurns > 0 && m.engine.Turns() >= m.maxTurns:
		m.AddLogEntry(WarningStyle.Render(fmt.Sprintf("Stopped after %d turns", m.engine.Turns())))
	}
}

// Done returns true once no further turns will be played
func (m *WatchModel) Done() bool {
	return m.err != nil ||
		m.engine.IsGameOver() ||
		m.engine.Stalled() ||
		(m.maxTurns > 0 && m.engine.Turns() >= m.maxTurns)
}

// Paused returns whether automatic stepping is paused
func (m *WatchModel) Paused() bool {
	return m.paused
}

// Interval returns the current delay between turns
func (m *WatchModel) Interval() time.Duration {
	return m.interval
}

// Err returns the error that stopped the game, if any
func (m *WatchModel) Err() error {
	return m.err
}

// Log returns a copy of the log lines
func (m *WatchModel) Log() []string {
	out := make([]string, len(m.gameLog))
	copy(out, m.gameLog)
	return out
}

// AddLogEntry adds an entry to the game log and scrolls to it
func (m *WatchModel) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the TUI
func (m *WatchModel) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	statusContent := m.renderStatusPane()
	statusHeight := lipgloss.Height(statusContent)

	statusStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(max(m.width-2, 1)).
		Height(max(statusHeight, 1))
	statusPane := statusStyle.Render(statusContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	paneHeight := max(m.height-statusHeight-4, 1) // Borders of both rows

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight

	// On first proper sizing, follow the tail of the log
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, statusPane)
}

// renderSidebarPane lists the table: top card, direction and hand sizes
func (m *WatchModel) renderSidebarPane() string {
	snap, err := m.engine.Snapshot()
	if err != nil {
		return ErrorStyle.Render(err.Error())
	}

	var content strings.Builder
	content.WriteString(HeaderStyle.Render(fmt.Sprintf(" Turn %d ", snap.Turns)))
	content.WriteString("\n\n")
	fmt.Fprintf(&content, "Top: %s\n", CardStyle(snap.Top))
	fmt.Fprintf(&content, "Direction: %s\n", snap.Direction)
	fmt.Fprintf(&content, "Deck: %d  Discard: %d\n\n", snap.DeckSize, snap.DiscardSize)

	content.WriteString(InfoStyle.Render("Players:"))
	content.WriteString("\n")
	for player, size := range snap.HandSizes {
		line := fmt.Sprintf("  P%d: %d cards", player, size)
		switch {
		case snap.GameOver && player == snap.Winner:
			content.WriteString(SuccessStyle.Render(line + "  winner"))
		case !snap.GameOver && player == snap.CurrentPlayer:
			content.WriteString(CurrentPlayerStyle.Render("> " + line[2:]))
		default:
			content.WriteString(PlayerInfoStyle.Render(line))
		}
		content.WriteString("\n")
	}

	return content.String()
}

// renderStatusPane shows the run state and key help
func (m *WatchModel) renderStatusPane() string {
	var status string
	switch {
	case m.err != nil:
		status = ErrorStyle.Render("Stopped: " + m.err.Error())
	case m.engine.IsGameOver():
		status = SuccessStyle.Render(fmt.Sprintf("Player %d wins after %d turns", m.engine.Winner(), m.engine.Turns()))
	case m.Done():
		status = WarningStyle.Render(fmt.Sprintf("No winner after %d turns", m.engine.Turns()))
	case m.paused:
		status = WarningStyle.Render("Paused")
	default:
		status = SuccessStyle.Render(fmt.Sprintf("Running, one turn every %s", m.interval))
	}

	help := InfoStyle.Render("space pause • n step • +/- speed • ↑↓ scroll • q quit")
	return status + "\n" + help
}
