package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/typewriter/internal/config"
	"github.com/llehouerou/typewriter/internal/markup"
	"github.com/llehouerou/typewriter/internal/state"
	"github.com/llehouerou/typewriter/internal/typewriter"
)

var (
	contentStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

var samples = []string{
	`<h1>The Typewriter</h1><p>Each character appears <b>one at a time</b>, ` +
		`the way a person would type it. Pause whenever you like and the ` +
		`cursor <i>holds its place</i>.</p><p>Seeking jumps straight to any ` +
		`point, forward or back, without replaying the animation.</p>`,
	`<h2>Shopping list</h2><ul><li>Coffee beans</li><li>Rye bread</li>` +
		`<li>A <b>very</b> sharp pencil</li></ul><hr>` +
		`<p>Markup is preserved while the text reveals.</p>`,
	`<p>Plain text works too. No tags, just words revealed at a steady ` +
		`pace until the line is done.</p>`,
}

type renderMsg string

type lifecycleMsg typewriter.LifecycleEvent

type progressMsg typewriter.ProgressSnapshot

type seekMsg typewriter.SeekOutcome

type errMsg typewriter.ErrorEvent

type subClosedMsg struct{}

type model struct {
	controller *typewriter.Controller
	sub        *typewriter.Subscription
	renderCh   chan string
	stateMgr   state.Interface
	keep       int

	bar      progress.Model
	rendered string
	snap     typewriter.ProgressSnapshot
	event    string
	sessions []state.Session
	started  time.Time
	sample   int
	width    int
	height   int
}

func initialModel(log *slog.Logger) (model, error) {
	cfg, err := config.Load()
	if err != nil {
		return model{}, err
	}

	stateMgr, err := state.Open()
	if err != nil {
		return model{}, err
	}

	sessions, err := stateMgr.RecentSessions(5)
	if err != nil {
		stateMgr.Close()
		return model{}, err
	}

	renderCh := make(chan string, 256)
	surface := markup.NewSurface(samples[0], func(text string) {
		// Drop frames rather than stall the reveal loop.
		select {
		case renderCh <- text:
		default:
		}
	})

	controller := typewriter.New(surface,
		typewriter.WithTiming(cfg.Timing()),
		typewriter.WithLogger(log),
	)

	return model{
		controller: controller,
		sub:        controller.Subscribe(),
		renderCh:   renderCh,
		stateMgr:   stateMgr,
		keep:       cfg.GetHistoryLimit(),
		bar:        progress.New(progress.WithDefaultGradient()),
		sessions:   sessions,
	}, nil
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		waitRender(m.renderCh),
		waitLifecycle(m.sub),
		waitProgress(m.sub),
		waitSeek(m.sub),
		waitError(m.sub),
	)
}

func waitRender(ch chan string) tea.Cmd {
	return func() tea.Msg {
		text, ok := <-ch
		if !ok {
			return subClosedMsg{}
		}
		return renderMsg(text)
	}
}

func waitLifecycle(sub *typewriter.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.Lifecycle:
			return lifecycleMsg(e)
		case <-sub.Done:
			return subClosedMsg{}
		}
	}
}

func waitProgress(sub *typewriter.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-sub.Progress:
			return progressMsg(snap)
		case <-sub.Done:
			return subClosedMsg{}
		}
	}
}

func waitSeek(sub *typewriter.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case o := <-sub.Seek:
			return seekMsg(o)
		case <-sub.Done:
			return subClosedMsg{}
		}
	}
}

func waitError(sub *typewriter.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.Error:
			return errMsg(e)
		case <-sub.Done:
			return subClosedMsg{}
		}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = msg.Width - 8
		if m.bar.Width > 60 {
			m.bar.Width = 60
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case renderMsg:
		m.rendered = string(msg)
		return m, waitRender(m.renderCh)

	case lifecycleMsg:
		return m.handleLifecycle(typewriter.LifecycleEvent(msg))

	case progressMsg:
		m.snap = typewriter.ProgressSnapshot(msg)
		return m, waitProgress(m.sub)

	case seekMsg:
		o := typewriter.SeekOutcome(msg)
		m.event = fmt.Sprintf("seek to char %s of %s (%.0f%%)",
			humanize.Comma(int64(o.CharIndex)),
			humanize.Comma(int64(o.TotalChars)),
			o.Percent)
		return m, waitSeek(m.sub)

	case errMsg:
		m.event = fmt.Sprintf("error in %s: %v", msg.Operation, msg.Err)
		return m, waitError(m.sub)

	case subClosedMsg:
		return m, nil
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		m.controller.Close()
		m.stateMgr.Close()
		return m, tea.Quit
	case "enter":
		m.controller.Start()
	case " ":
		switch m.controller.Phase() {
		case typewriter.PhaseActive:
			m.controller.Pause()
		case typewriter.PhaseSuspended:
			m.controller.Resume()
		}
	case "c":
		m.controller.Complete()
	case "r":
		m.controller.Reset()
		m.rendered = ""
		m.snap = typewriter.ProgressSnapshot{}
	case "left":
		m.controller.SeekToPercent(m.snap.Percent - 5)
	case "right":
		m.controller.SeekToPercent(m.snap.Percent + 5)
	case "n":
		m.sample = (m.sample + 1) % len(samples)
		m.controller.SetContent(samples[m.sample])
		m.rendered = ""
		m.snap = typewriter.ProgressSnapshot{}
		m.event = fmt.Sprintf("sample %d/%d", m.sample+1, len(samples))
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			m.controller.SeekToPercent(float64(key[0]-'0') * 10)
		}
	}

	return m, nil
}

func (m model) handleLifecycle(e typewriter.LifecycleEvent) (tea.Model, tea.Cmd) {
	m.event = strings.ToLower(e.Kind.String())

	switch e.Kind {
	case typewriter.LifecycleStarted:
		m.started = time.Now()
	case typewriter.LifecycleCompleted:
		if !m.started.IsZero() {
			m.saveSession()
			m.started = time.Time{}
		}
	}

	return m, waitLifecycle(m.sub)
}

func (m *model) saveSession() {
	snap := m.controller.Progress()
	err := m.stateMgr.SaveSession(state.Session{
		StartedAt:     m.started,
		TotalChars:    snap.Total,
		RevealedChars: snap.Current,
		Duration:      time.Since(m.started),
		Completed:     true,
	}, m.keep)
	if err != nil {
		m.event = fmt.Sprintf("error saving session: %v", err)
		return
	}
	if sessions, err := m.stateMgr.RecentSessions(5); err == nil {
		m.sessions = sessions
	}
}

func (m model) View() string {
	var b strings.Builder

	innerWidth := m.width - 4
	if innerWidth < 20 {
		innerWidth = 20
	}

	content := m.rendered
	if content == "" {
		content = helpStyle.Render("press enter to start")
	}
	b.WriteString(contentStyle.Width(innerWidth).Render(content))
	b.WriteString("\n\n")

	b.WriteString("  " + m.bar.ViewAs(m.snap.Position) + "\n\n")

	status := fmt.Sprintf("  %s  %s / %s chars (%.0f%%)",
		m.controller.Phase(),
		humanize.Comma(int64(m.snap.Current)),
		humanize.Comma(int64(m.snap.Total)),
		m.snap.Percent)
	b.WriteString(statusStyle.Render(status))
	if m.event != "" {
		b.WriteString(eventStyle.Render("  · " + m.event))
	}
	b.WriteString("\n")

	if len(m.sessions) > 0 {
		b.WriteString("\n" + statusStyle.Render("  recent:") + "\n")
		for _, s := range m.sessions {
			line := fmt.Sprintf("    %s · %s chars in %s",
				humanize.Time(s.StartedAt),
				humanize.Comma(int64(s.RevealedChars)),
				s.Duration.Round(100*time.Millisecond))
			b.WriteString(statusStyle.Render(runewidth.Truncate(line, innerWidth, "…")) + "\n")
		}
	}

	help := "  enter start · space pause/resume · c complete · r reset · " +
		"←/→ ±5% · 0-9 jump · n next sample · q quit"
	b.WriteString("\n" + helpStyle.Render(runewidth.Truncate(help, innerWidth+4, "…")))

	return b.String()
}

func openLogger() (*slog.Logger, func()) {
	path, err := xdg.StateFile(filepath.Join("typewriter", "typewriter.log"))
	if err != nil {
		return slog.New(slog.DiscardHandler), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.DiscardHandler), func() {}
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() }
}

func main() {
	log, closeLog := openLogger()
	defer closeLog()

	m, err := initialModel(log)
	if err != nil {
		fmt.Printf("Error initializing: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
