package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rcliao/cosmic-whispers/internal/model"
	"github.com/rcliao/cosmic-whispers/internal/session"
)

func init() {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the reading tent interactively",
		Long: "Open an interactive reading display. With --date and --location a new reading is requested; " +
			"otherwise the most recent reading from history is shown.",
		Run: runTUI,
	}

	addDetailFlags(cmd)

	RootCmd.AddCommand(cmd)
}

func runTUI(cmd *cobra.Command, args []string) {
	var details *model.UserDetails
	if cmd.Flags().Changed("date") || cmd.Flags().Changed("location") {
		d, err := detailsFromFlags(cmd)
		if err != nil {
			exitErr("tui", err)
		}
		details = &d
	}

	c, _, cleanup := newController()
	defer cleanup()

	m := newTUIModel(cmd.Context(), c, details)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
		exitErr("tui", err)
	}
}

// frameInterval is how often the display re-reads the reveal state.
const frameInterval = 16 * time.Millisecond

var spinnerFrames = []string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}

type frameMsg time.Time

type divinedMsg struct {
	reading model.AstrologyReading
	err     error
}

type tuiModel struct {
	ctx     context.Context
	c       *session.Controller
	details *model.UserDetails

	history     []model.AstrologyReading
	showHistory bool
	cursor      int
	frame       int
	width       int
	err         error
}

func newTUIModel(ctx context.Context, c *session.Controller, details *model.UserDetails) tuiModel {
	m := tuiModel{ctx: ctx, c: c, details: details, width: 80}
	m.history = c.History(ctx)
	if details == nil {
		if len(m.history) > 0 {
			if _, err := c.SelectFromHistory(ctx, m.history[0].ID); err != nil {
				m.err = err
			}
		} else {
			m.showHistory = true
		}
	}
	return m
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m tuiModel) submit() tea.Cmd {
	ctx, c, d := m.ctx, m.c, *m.details
	return func() tea.Msg {
		r, err := c.Submit(ctx, d)
		return divinedMsg{reading: r, err: err}
	}
}

func (m tuiModel) Init() tea.Cmd {
	if m.details != nil {
		return tea.Batch(tick(), m.submit())
	}
	return tick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case frameMsg:
		m.frame++
		return m, tick()

	case divinedMsg:
		m.err = msg.err
		m.history = m.c.History(m.ctx)

	case tea.KeyMsg:
		if m.showHistory {
			return m.updateHistory(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.c.Close()
			return m, tea.Quit
		case "left", "h":
			m.c.Previous()
		case "right", "l":
			m.c.Next()
		case "tab":
			m.showHistory = true
			m.history = m.c.History(m.ctx)
			m.cursor = 0
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			m.c.JumpTo(int(msg.String()[0] - '1'))
		}
	}
	return m, nil
}

func (m tuiModel) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.c.Close()
		return m, tea.Quit
	case "tab", "esc":
		m.showHistory = false
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.history)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.history) {
			_, m.err = m.c.SelectFromHistory(m.ctx, m.history[m.cursor].ID)
			m.showHistory = false
		}
	}
	return m, nil
}

func (m tuiModel) View() string {
	v := m.c.View()
	width := max(m.width-4, 20)

	var b strings.Builder
	switch {
	case m.showHistory:
		b.WriteString(m.historyView())
	case v.Pending:
		b.WriteString("\n  ")
		b.WriteString(spinnerFrames[m.frame/6%len(spinnerFrames)])
		b.WriteString(dimStyle.Render("  Madame Nebula gazes into the crystal ball..."))
		b.WriteString("\n")
	case v.Reading != nil:
		b.WriteString(readingView(v, width))
	default:
		b.WriteString(dimStyle.Render("No reading yet. Press tab for past readings."))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.showHistory {
		b.WriteString(dimStyle.Render("↑/↓ choose · enter open · tab back · q quit"))
	} else {
		b.WriteString(dimStyle.Render("←/→ sections · 1-9 jump · tab history · q quit"))
	}
	return b.String()
}

func readingView(v session.View, width int) string {
	r := *v.Reading

	var b strings.Builder
	b.WriteString(header(r))
	b.WriteString("\n\n")

	tabs := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		if i == v.Active {
			tabs[i] = activeTab.Render(s.Title)
		} else {
			tabs[i] = tabStyle.Render(s.Title)
		}
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...)))
	b.WriteString("\n\n")

	b.WriteString(sectionTitle(r.Sections[v.Active].Title))
	b.WriteString("\n\n")

	text := strings.Join(v.Reveal.Lines(), "\n")
	if v.Reveal.Cursor {
		text += cursorStyle.Render(" ")
	}
	b.WriteString(panelStyle.Width(width).Render(text))
	b.WriteString("\n")

	prev, next := "‹", "›"
	if v.Active == 0 {
		prev = " "
	}
	if v.Active == len(r.Sections)-1 {
		next = " "
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s %d/%d %s", prev, v.Active+1, len(r.Sections), next)))
	b.WriteString("\n")
	return b.String()
}

func (m tuiModel) historyView() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Past Readings"))
	b.WriteString("\n\n")
	if len(m.history) == 0 {
		b.WriteString(dimStyle.Render("No previous readings found in the cosmic archives."))
		b.WriteString("\n")
		return b.String()
	}
	for i, r := range m.history {
		line := fmt.Sprintf("%-24s %s", r.UserDetails.BirthLocation, r.CreatedAt().Format("Jan 2, 2006"))
		if i == m.cursor {
			b.WriteString(activeTab.Render("› " + line))
		} else {
			b.WriteString(tabStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

var _ tea.Model = tuiModel{}
