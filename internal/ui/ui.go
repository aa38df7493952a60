// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ui is the interactive terminal front end: a single query input,
// a run key, a clear key, and a scrollable result pane. A failed run shows
// an error banner and the program stays usable.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/research-agent/internal/render"
	"github.com/pdiddy/research-agent/pkg/types"
)

// Runner executes one submission and reports everything it produced.
// agent.Session implements it.
type Runner interface {
	Run(ctx context.Context, query string) render.Report
}

// Example queries per variant are offered on the start screen; tab cycles
// them into the input.
var (
	PubMedExamples = []string{
		"What is ulcerative colitis?",
		"Advancements in cancer detection using AI",
		"CRISPR off-target effects in gene therapy",
	}
	SmartExamples = []string{
		"What is ulcerative colitis?",
		"What's happening in France?",
		"New AI methods for cancer detection",
	}
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#88C0D0"))
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D8DEE9"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EBCB8B"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BF616A"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4C566A"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#616E88"))
)

// chromeHeight is the number of lines around the viewport: title, caption,
// blank, input, status, blank, help.
const chromeHeight = 7

type screen struct {
	title       string
	caption     string
	placeholder string
	status      string
	intro       string
	examples    []string
}

func screenFor(v types.Variant) screen {
	if v == types.VariantSmart {
		return screen{
			title:       "Smart AI Agent",
			caption:     "Ask medical or general questions. The agent picks the right tool.",
			placeholder: "e.g. What's happening in France?",
			status:      "Agent is reasoning with tools...",
			intro: "This agent uses a hosted language model and two tools:\n\n" +
				"- **PubMed** for biomedical research\n" +
				"- **Web search** for general questions\n\n" +
				"It picks the best tool for your query.\n",
			examples: SmartExamples,
		}
	}
	return screen{
		title:       "PubMed LLM Agent",
		caption:     "Search biomedical literature using PubMed and a hosted language model.",
		placeholder: "e.g. advancements in cancer detection using AI",
		status:      "Running agent with PubMed + LLM...",
		intro: "Answers are summarized by the model from PubMed results, " +
			"followed by the raw list of matching articles.\n",
		examples: PubMedExamples,
	}
}

// runFinishedMsg carries a report back from the run command. id ties it to
// the run that produced it so results of cleared runs are dropped.
type runFinishedMsg struct {
	id     int
	report render.Report
}

// Model is the bubbletea model of the terminal front end.
type Model struct {
	ctx     context.Context
	runner  Runner
	variant types.Variant
	opts    render.Options
	screen  screen

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	ready    bool
	width    int

	running   bool
	runID     int
	cancelRun context.CancelFunc
	example   int

	report *render.Report
}

// New returns a model that submits queries to runner. ctx bounds every run.
func New(ctx context.Context, runner Runner, variant types.Variant, opts render.Options) Model {
	sc := screenFor(variant)

	ti := textinput.New()
	ti.Placeholder = sc.placeholder
	ti.Prompt = "> "
	ti.CharLimit = 500
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	return Model{
		ctx:      ctx,
		runner:   runner,
		variant:  variant,
		opts:     opts,
		screen:   sc,
		input:    ti,
		spinner:  s,
		viewport: viewport.New(render.DefaultWidth, 20),
		width:    render.DefaultWidth,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, window resizes, spinner ticks, and run results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "ctrl+l":
			return m.clear(), nil
		case "tab":
			if !m.running {
				m.input.SetValue(m.screen.examples[m.example%len(m.screen.examples)])
				m.input.CursorEnd()
				m.example++
			}
			return m, nil
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		h := msg.Height - chromeHeight
		if h < 3 {
			h = 3
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = h
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		m.ready = true
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case runFinishedMsg:
		if msg.id != m.runID {
			return m, nil
		}
		m.running = false
		m.cancelRun = nil
		report := msg.report
		m.report = &report
		m.refresh()
		m.viewport.GotoTop()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit starts a run for the current input. Blank input and a second
// submit while a run is in flight are ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if m.running || query == "" {
		return m, nil
	}

	m.runID++
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelRun = cancel
	m.running = true
	m.report = nil
	m.refresh()
	return m, tea.Batch(run(ctx, cancel, m.runner, m.runID, query), m.spinner.Tick)
}

func run(ctx context.Context, cancel context.CancelFunc, runner Runner, id int, query string) tea.Cmd {
	return func() tea.Msg {
		defer cancel()
		return runFinishedMsg{id: id, report: runner.Run(ctx, query)}
	}
}

// clear resets the input and result pane. An in-flight run is cancelled and
// its result discarded.
func (m Model) clear() Model {
	m.cancel()
	m.runID++
	m.running = false
	m.report = nil
	m.input.Reset()
	m.refresh()
	m.viewport.GotoTop()
	return m
}

func (m *Model) cancel() {
	if m.cancelRun != nil {
		m.cancelRun()
		m.cancelRun = nil
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.content())
}

// content renders the result pane: the intro before the first run, the
// report afterwards.
func (m Model) content() string {
	if m.report == nil {
		if m.running {
			return ""
		}
		return render.Terminal(m.intro(), m.width)
	}
	if m.report.Err != nil {
		return errorStyle.Render(render.ErrorBanner(m.report.Err))
	}
	return render.Terminal(render.Markdown(*m.report, m.opts), m.width)
}

func (m Model) intro() string {
	var b strings.Builder
	b.WriteString(m.screen.intro)
	b.WriteString("\n**Example queries:**\n\n")
	for _, q := range m.screen.examples {
		fmt.Fprintf(&b, "- %s\n", q)
	}
	return b.String()
}

// View draws the screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.screen.title))
	b.WriteString("\n")
	b.WriteString(captionStyle.Render(m.screen.caption))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.running {
		b.WriteString(m.spinner.View() + " " + statusStyle.Render(m.screen.status))
	} else if m.report != nil && m.report.Err != nil {
		b.WriteString(errorStyle.Render("Run failed"))
	} else {
		b.WriteString(dimStyle.Render(string(m.variant)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter run • ctrl+l clear • tab example • pgup/pgdn scroll • esc quit"))
	return b.String()
}

// Running reports whether a run is in flight.
func (m Model) Running() bool { return m.running }

// Report returns the last completed report, or nil.
func (m Model) Report() *render.Report { return m.report }

// Query returns the current input text.
func (m Model) Query() string { return m.input.Value() }

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}
