package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"calltrace/internal/trace"
)

type viewerModel struct {
	title    string
	events   <-chan trace.Event
	spinner  spinner.Model
	view     viewport.Model
	lines    []string
	tree     func() string
	ready    bool
	done     bool
	width    int
	height   int
	received int
}

type eventMsg trace.Event
type doneMsg struct{}

// NewViewerModel returns a Bubble Tea model that streams call events
// while the workload runs and shows the finished call tree once the
// events channel closes. tree is evaluated at that point.
func NewViewerModel(title string, events <-chan trace.Event, tree func() string) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return &viewerModel{
		title:   title,
		events:  events,
		spinner: sp,
		tree:    tree,
		width:   80,
		height:  24,
	}
}

func (m *viewerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *viewerModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		ev := trace.Event(msg)
		m.received++
		m.lines = append(m.lines, strings.TrimRight(string(trace.FormatEvent(&ev, trace.FormatText)), "\n"))
		m.syncContent(true)
		return m, m.listenForEvent()

	case doneMsg:
		m.done = true
		m.lines = append(m.lines, "", strings.TrimRight(m.tree(), "\n"))
		m.syncContent(true)
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		if !m.ready {
			m.view = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
			m.syncContent(false)
		} else {
			m.view.Width = msg.Width
			m.view.Height = msg.Height - headerHeight
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *viewerModel) syncContent(follow bool) {
	if !m.ready {
		return
	}
	truncated := make([]string, len(m.lines))
	for i, line := range m.lines {
		truncated[i] = runewidth.Truncate(line, m.width, "...")
	}
	m.view.SetContent(strings.Join(truncated, "\n"))
	if follow {
		m.view.GotoBottom()
	}
}

func (m *viewerModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("%s (%d events, q to quit)", header, m.received)
	} else {
		header = fmt.Sprintf("%s %s (%d events)", m.spinner.View(), header, m.received)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")
	if m.ready {
		b.WriteString(m.view.View())
	}
	return b.String()
}
