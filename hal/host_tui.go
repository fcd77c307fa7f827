//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"segclock/internal/buildinfo"
)

const (
	tuiFrameInterval = 50 * time.Millisecond
	tuiPotStep       = 0.05
	tuiLogLines      = 6
)

var (
	tuiDigitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4030")).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#553322"))
	tuiTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")).Bold(true)
	tuiStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	tuiLogStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777")).Faint(true)
	tuiErrStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6666"))
)

// tuiKeyMap defines the terminal simulator key bindings.
type tuiKeyMap struct {
	Reset   key.Binding
	Mode    key.Binding
	PotUp   key.Binding
	PotDown key.Binding
	Quit    key.Binding
}

func defaultTUIKeyMap() tuiKeyMap {
	return tuiKeyMap{
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Mode: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "mode (toggle: terminals report no key release)"),
		),
		PotUp: key.NewBinding(
			key.WithKeys("+", "=", "up"),
			key.WithHelp("+", "pot up"),
		),
		PotDown: key.NewBinding(
			key.WithKeys("-", "down"),
			key.WithHelp("-", "pot down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunTUI runs the simulated board in the terminal until the user quits or
// ctx is done.
func RunTUI(ctx context.Context, newApp func(HAL) (Runner, error)) error {
	logs := newLogRing(tuiLogLines)
	h := NewSim(newHostTimer(), logs)
	r, err := newApp(h)
	if err != nil {
		return err
	}
	defer r.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.Run(gctx); err != nil && gctx.Err() == nil {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		p := tea.NewProgram(newTUIModel(h, logs), tea.WithContext(gctx), tea.WithAltScreen())
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	})
	return g.Wait()
}

type tuiFrameMsg time.Time

type tuiModel struct {
	h    *Sim
	logs *logRing
	keys tuiKeyMap

	// releaseReset lets the reset press last one frame, long enough for
	// the main loop to see it.
	releaseReset bool
}

func newTUIModel(h *Sim, logs *logRing) *tuiModel {
	return &tuiModel{h: h, logs: logs, keys: defaultTUIKeyMap()}
}

func tuiFrame() tea.Cmd {
	return tea.Tick(tuiFrameInterval, func(t time.Time) tea.Msg {
		return tuiFrameMsg(t)
	})
}

func (m *tuiModel) Init() tea.Cmd {
	return tuiFrame()
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tuiFrameMsg:
		if m.releaseReset {
			m.h.reset.Release()
			m.releaseReset = false
		}
		return m, tuiFrame()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reset):
			m.h.reset.Press()
			m.releaseReset = true
		case key.Matches(msg, m.keys.Mode):
			setButton(m.h.mode, !m.h.mode.Pressed())
		case key.Matches(msg, m.keys.PotUp):
			m.h.pot.Add(tuiPotStep)
		case key.Matches(msg, m.keys.PotDown):
			m.h.pot.Add(-tuiPotStep)
		}
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(tuiTitleStyle.Render("segclock " + buildinfo.Short()))
	b.WriteString("\n")
	b.WriteString(tuiDigitStyle.Render(m.h.panel.Text()))
	b.WriteString("\n")
	b.WriteString(tuiStatusStyle.Render(m.h.status()))
	b.WriteString("\n\n")
	for _, line := range m.logs.Lines() {
		style := tuiLogStyle
		if strings.Contains(line, "error") {
			style = tuiErrStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(tuiStatusStyle.Render(m.helpLine()))
	return b.String()
}

func (m *tuiModel) helpLine() string {
	bindings := []key.Binding{m.keys.Reset, m.keys.Mode, m.keys.PotUp, m.keys.PotDown, m.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// logRing keeps the last few lines written to it.
type logRing struct {
	mu    sync.Mutex
	max   int
	lines []string
	part  []byte
}

func newLogRing(max int) *logRing {
	return &logRing{max: max}
}

func (l *logRing) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.part = append(l.part, p...)
	for {
		i := bytes.IndexByte(l.part, '\n')
		if i < 0 {
			break
		}
		l.lines = append(l.lines, string(l.part[:i]))
		l.part = l.part[i+1:]
	}
	if n := len(l.lines) - l.max; n > 0 {
		l.lines = append(l.lines[:0], l.lines[n:]...)
	}
	return len(p), nil
}

// Lines returns the retained lines, oldest first.
func (l *logRing) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}
