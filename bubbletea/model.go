package bubbletea

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/courtside/scout"
	"github.com/courtside/scout/markdown"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the scout TUI. One research
// session is visible at a time; submitting a new topic supersedes the
// running one.
type Model struct {
	// Input is the topic input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable report area. Exported for test access.
	Viewport viewport.Model

	run    ResearchFunc
	theme  scout.Theme
	styles Styles
	spin   spinner.Model

	feed      *snapshotFeed
	cancel    func()
	sessionID string
	topic     string

	snap     scout.Snapshot
	haveSnap bool
	running  bool
	err      error
	ready    bool
}

// New creates a TUI Model around the given research function.
func New(run ResearchFunc, theme scout.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Research a player, team, or matchup..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return Model{
		Input:  ti,
		run:    run,
		theme:  theme,
		styles: NewStyles(theme),
		spin:   sp,
	}
}

// Running returns whether a session is currently streaming.
func (m Model) Running() bool { return m.running }

// Err returns the last submission error, if any.
func (m Model) Err() error { return m.err }

// Snapshot returns the last snapshot rendered by the model.
func (m Model) Snapshot() (scout.Snapshot, bool) { return m.snap, m.haveSnap }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SnapshotMsg:
		return m.handleSnapshot(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusH := 1
	gaps := 2
	vpHeight := msg.Height - inputH - statusH - gaps
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.Viewport.SetContent(m.renderContent())
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
		m.Viewport.SetContent(m.renderContent())
	}

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEsc:
		if m.running && m.cancel != nil {
			m.cancel()
		}
		return m, nil

	case tea.KeyEnter:
		topic := strings.TrimSpace(m.Input.Value())
		if topic == "" {
			return m, nil
		}
		// A running session is simply superseded; the controller
		// cancels it before opening the new stream.
		return m.submit(topic)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if msg.Type != tea.KeyRunes {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) submit(topic string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil

	feed := newSnapshotFeed()
	cancel, err := m.run(context.Background(), scout.Request{Topic: topic}, feed.push)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.feed = feed
	m.cancel = cancel
	m.topic = topic
	m.running = true
	// Submit publishes the initial snapshot before returning, so the
	// new session's ID is already known.
	if snap, ok := feed.peek(); ok {
		m.sessionID = snap.ID
	}

	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m, tea.Batch(feed.await(), m.spin.Tick)
}

func (m Model) handleSnapshot(msg SnapshotMsg) (tea.Model, tea.Cmd) {
	// A pending await from a superseded session can still deliver its
	// final snapshot; drop anything not belonging to the live session.
	if m.sessionID != "" && msg.Snapshot.ID != m.sessionID {
		return m, nil
	}

	m.snap = msg.Snapshot
	m.haveSnap = true
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	if msg.Snapshot.Status.Terminal() {
		m.running = false
		m.cancel = nil
		return m, m.Input.Focus()
	}
	return m, m.feed.await()
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render("Error: " + m.err.Error())
	}
	if m.running {
		status := m.spin.View() + " researching"
		if m.topic != "" {
			status += " " + m.topic
		}
		if n := len(m.snap.Steps); n > 0 {
			status += " · " + lastStep(m.snap)
		}
		// Fit the plain text first: truncating after styling would cut
		// through ANSI escapes.
		return m.styles.Muted.Render(fitLine(status, m.Viewport.Width))
	}
	if m.haveSnap {
		switch m.snap.Status {
		case scout.StatusCompleted:
			return m.styles.Success.Render("report complete") +
				m.styles.Muted.Render(" · enter to research again, ctrl+c to quit")
		case scout.StatusErrored:
			if m.snap.Err != nil {
				return m.styles.Error.Render(m.snap.Err.Error())
			}
			return m.styles.Error.Render("stream failed")
		case scout.StatusCancelled:
			return m.styles.Muted.Render("cancelled · enter to research again")
		}
	}
	return m.styles.Muted.Render("Enter to research, Ctrl+C to quit")
}

func (m Model) renderContent() string {
	var b strings.Builder

	if m.topic != "" {
		b.WriteString(m.styles.Topic.Render(m.topic))
		b.WriteString("\n\n")
	}

	if m.haveSnap && m.snap.Text != "" {
		b.WriteString(markdown.Render(m.snap.Text, m.Viewport.Width, m.theme))
		b.WriteString("\n")
	}

	if m.haveSnap && len(m.snap.Suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Accent.Render("Follow-ups"))
		b.WriteString("\n")
		for _, s := range m.snap.Suggestions {
			b.WriteString(m.styles.Suggestion.Render(fitLine("→ "+s, m.Viewport.Width)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// lastStep renders the newest intermediate step as a short one-liner.
func lastStep(snap scout.Snapshot) string {
	raw := string(snap.Steps[len(snap.Steps)-1])
	return strings.Join(strings.Fields(raw), " ")
}
