package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keytype/internal/keyboard"
	statsPkg "github.com/verte-zerg/keytype/internal/stats"
	"github.com/verte-zerg/keytype/internal/trainer"
	"github.com/verte-zerg/keytype/internal/typing"
)

const (
	historyLimit  = 30
	historyWindow = 3
)

// LayoutSaver persists the active layout.
type LayoutSaver interface {
	SetLayout(ctx context.Context, layout keyboard.Layout) error
}

type startMsg struct{}

type layoutSavedMsg struct {
	layout keyboard.Layout
	err    error
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	trainer *trainer.Trainer
	layout  keyboard.Layout
	saver   LayoutSaver

	keys keyMap
	help help.Model

	width  int
	height int

	lastCode     string
	showKeyboard bool
	history      []float64
	notice       string
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs a typing TUI model. saver may be nil, in which case
// layout changes last only for the current run.
func NewModel(machine *typing.Machine, layout keyboard.Layout, saver LayoutSaver) *Model {
	m := &Model{
		layout:       layout,
		saver:        saver,
		keys:         defaultKeyMap(),
		help:         help.New(),
		showKeyboard: true,
	}
	m.trainer = trainer.New(machine, trainer.LayoutFunc(m.currentLayout))
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		return startMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case startMsg:
		m.trainer.Reset()
		return m, nil
	case layoutSavedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("failed to save layout %s: %v", msg.layout, msg.err)
		} else {
			m.notice = ""
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Layout):
			return m, m.cycleLayout()
		case key.Matches(msg, m.keys.Keyboard):
			m.showKeyboard = !m.showKeyboard
			return m, nil
		}
		for _, ev := range eventsFromKey(msg) {
			m.dispatch(ev)
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	session := m.trainer.Session()
	var content string
	switch session.Status() {
	case typing.StatusLoading:
		content = pendingStyle.Render("Loading words...")
	case typing.StatusEmpty:
		content = noticeStyle.Render("No words to type. Check the word list and press esc to retry.")
	default:
		content = m.renderWords(session)
	}
	if m.showKeyboard {
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", RenderKeyboard(m.layout, m.lastCode, true))
	}

	footer := m.renderFooter(session)
	helpLine := m.help.View(m.keys)
	if m.width == 0 || m.height == 0 {
		return strings.Join([]string{content, footer, helpLine}, "\n")
	}
	if m.height < 4 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 2
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	helpPlaced := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, helpLine)
	return body + "\n" + footerLine + "\n" + helpPlaced
}

// Session returns the session being typed.
func (m *Model) Session() typing.Session {
	return m.trainer.Session()
}

func (m *Model) currentLayout() keyboard.Layout {
	return m.layout
}

func (m *Model) renderWords(session typing.Session) string {
	styledRunes := buildStyledRunes(session)
	if m.width == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	return lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
}

func (m *Model) dispatch(ev keyboard.Event) {
	before := m.trainer.Session()
	m.trainer.HandleKeyDown(&ev)
	if ev.Code != "" {
		m.lastCode = ev.Code
	}
	if ev.Key == " " && !ev.Alt && completesSession(before) {
		m.recordWPM(before.Stats.WPM)
	}
}

// completesSession reports whether advancing s finishes its last word.
func completesSession(s typing.Session) bool {
	cur, ok := s.Current()
	if !ok || s.CurrentIndex != len(s.Words)-1 {
		return false
	}
	return cur.Complete() && cur.IsCorrect
}

func (m *Model) recordWPM(wpm float64) {
	m.history = append(m.history, wpm)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
}

func (m *Model) cycleLayout() tea.Cmd {
	m.layout = m.layout.Next()
	if m.saver == nil {
		return nil
	}
	layout := m.layout
	saver := m.saver
	return func() tea.Msg {
		return layoutSavedMsg{layout: layout, err: saver.SetLayout(context.Background(), layout)}
	}
}

func (m *Model) renderFooter(session typing.Session) string {
	progress := 0
	if len(session.Words) > 0 {
		progress = int(float64(session.CurrentIndex) / float64(len(session.Words)) * 100)
	}
	st := session.Stats
	segments := []string{
		fmt.Sprintf("Layout %s", m.layout),
		fmt.Sprintf("Progress %d%%", progress),
		fmt.Sprintf("%.0f WPM · %.1f%%", st.WPM, st.Accuracy),
	}
	if len(m.history) > 0 {
		last := m.history[len(m.history)-1]
		trend := statsPkg.Sparkline(statsPkg.MovingAverage(m.history, historyWindow))
		segments = append(segments, fmt.Sprintf("Last %.0f WPM %s", last, trend))
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	if m.notice != "" {
		footer += "  " + noticeStyle.Render(m.notice)
	}
	return footer
}
