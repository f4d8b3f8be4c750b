// ABOUTME: Bubble Tea model for the stopwatch: banner, live elapsed time and a notification log
// ABOUTME: Keys go through the shared keybindings; a tea.Tick refresh re-reads the stopwatch

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/stopwatch-go/internal/config"
	"github.com/mauromedda/stopwatch-go/internal/keybindings"
	"github.com/mauromedda/stopwatch-go/internal/stopwatch"
	"github.com/mauromedda/stopwatch-go/pkg/tui/key"
	"github.com/mauromedda/stopwatch-go/pkg/tui/theme"
	"github.com/mauromedda/stopwatch-go/pkg/tui/width"
)

// Title heads the view.
const Title = "Stopwatch Application"

// maxNotices bounds the notification log shown under the clock.
const maxNotices = 8

// RefreshMsg asks the model to re-read the stopwatch.
type RefreshMsg time.Time

type notice struct {
	role theme.Role
	text string
}

// noticeLog is shared by every copy of the model so that stopwatch
// observers, which outlive a single Update, append to the same log.
type noticeLog struct {
	entries []notice
}

func (l *noticeLog) add(role theme.Role, text string) {
	l.entries = append(l.entries, notice{role: role, text: text})
	if over := len(l.entries) - maxNotices; over > 0 {
		l.entries = l.entries[over:]
	}
}

// Model is the tea.Model driving one stopwatch.
type Model struct {
	sw       *stopwatch.Stopwatch
	bindings *keybindings.Manager
	theme    *theme.Theme
	interval time.Duration
	notices  *noticeLog
	width    int
	quitting bool

	unsubscribe func()
}

// NewModel subscribes to sw and returns the initial model. Call Close when
// the program has ended.
func NewModel(sw *stopwatch.Stopwatch, bindings *keybindings.Manager, th *theme.Theme, interval time.Duration) Model {
	if bindings == nil {
		bindings = keybindings.New(nil)
	}
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}
	notices := &noticeLog{}
	m := Model{
		sw:       sw,
		bindings: bindings,
		theme:    th,
		interval: interval,
		notices:  notices,
	}
	m.unsubscribe = sw.SubscribeAll(func(n stopwatch.Notification) {
		notices.add(noticeRole(n.Kind), n.Message)
	})
	return m
}

// Close removes the model's stopwatch observers.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init starts the refresh loop.
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

// Update handles keys, refresh ticks and resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case RefreshMsg:
		if m.quitting {
			return m, nil
		}
		return m, m.refresh()

	case tea.KeyMsg:
		// Keys typed faster than the input poll arrive as one multi-rune event.
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 && !msg.Paste {
			var cmd tea.Cmd
			for _, r := range msg.Runes {
				m, cmd = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: msg.Alt})
				if m.quitting {
					break
				}
			}
			return m, cmd
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) refresh() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return RefreshMsg(t)
	})
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	action, ok := m.bindings.ActionForKey(fromTea(msg))
	if !ok {
		m.notices.add(theme.RoleError, m.bindings.InvalidInputLine())
		return m, nil
	}

	switch action {
	case config.ActionStart:
		m.advise(m.sw.Start())
	case config.ActionStop:
		m.advise(m.sw.Stop())
	case config.ActionReset:
		m.sw.Reset()
	case config.ActionQuit:
		m.advise(m.sw.Stop())
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) advise(err error) {
	if msg, ok := stopwatch.AdvisoryMessage(err); ok {
		m.notices.add(theme.RoleWarning, msg)
	}
}

// View renders the banner, the elapsed time and recent notices.
func (m Model) View() string {
	lines := []string{
		m.theme.Render(theme.RoleTitle, Title),
		m.theme.Render(theme.RoleHint, m.bindings.HintLine()),
		"",
		"Time Elapsed: " + m.theme.Render(theme.RoleElapsed, m.sw.GetFormattedTime()),
		"",
	}
	for _, n := range m.notices.entries {
		text := n.text
		if m.width > 0 {
			text = width.Truncate(text, m.width)
		}
		lines = append(lines, m.theme.Render(n.role, text))
	}

	view := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if m.quitting {
		return view + "\n"
	}
	return view
}

func noticeRole(kind stopwatch.Kind) theme.Role {
	switch kind {
	case stopwatch.KindStarted:
		return theme.RoleSuccess
	case stopwatch.KindStopped:
		return theme.RoleWarning
	default:
		return theme.RoleInfo
	}
}

// fromTea converts a Bubble Tea key event to the key type the bindings use.
func fromTea(msg tea.KeyMsg) key.Key {
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return key.Key{Type: key.KeyUnknown}
		}
		return key.Key{Type: key.KeyRune, Rune: msg.Runes[0], Alt: msg.Alt}
	case tea.KeySpace:
		return key.Key{Type: key.KeyRune, Rune: ' ', Alt: msg.Alt}
	case tea.KeyCtrlC:
		return key.Key{Type: key.KeyCtrlC, Ctrl: true}
	case tea.KeyCtrlD:
		return key.Key{Type: key.KeyCtrlD, Ctrl: true}
	case tea.KeyEnter:
		return key.Key{Type: key.KeyEnter}
	case tea.KeyEsc:
		return key.Key{Type: key.KeyEscape}
	}
	return key.Key{Type: key.KeyUnknown}
}
