package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nguyentantai21042004/recap-mailer/internal/workflow"
)

// form field indices
const (
	fieldFile = iota
	fieldPrompt
	fieldSummary
	fieldRecipients
	fieldCount
)

type operation int

const (
	opNone operation = iota
	opGenerate
	opSend
)

// opDoneMsg reports the end of a Generate or Send command.
type opDoneMsg struct {
	op  operation
	err error
}

// Model is the terminal front end of one workflow session.
type Model struct {
	ctx context.Context
	ctl *workflow.Controller

	fileInput       textinput.Model
	promptInput     textarea.Model
	summaryInput    textarea.Model
	recipientsInput textinput.Model

	focus    int
	pending  operation
	filePath string
	fileErr  string
	width    int
	quitting bool
}

// New creates the front end for ctl.
func New(ctx context.Context, ctl *workflow.Controller) Model {
	fi := textinput.New()
	fi.Placeholder = "path/to/transcript.txt"
	fi.CharLimit = 1024
	fi.Focus()

	pi := textarea.New()
	pi.Placeholder = "e.g., Summarize in bullet points for executives"
	pi.ShowLineNumbers = false
	pi.CharLimit = 0
	pi.SetHeight(3)

	si := textarea.New()
	si.Placeholder = "Generated summary will appear here..."
	si.ShowLineNumbers = false
	si.CharLimit = 0
	si.MaxHeight = 0
	si.SetHeight(10)

	ri := textinput.New()
	ri.Placeholder = "e.g., email1@example.com, email2@example.com"
	ri.CharLimit = 0

	return Model{
		ctx:             ctx,
		ctl:             ctl,
		fileInput:       fi,
		promptInput:     pi,
		summaryInput:    si,
		recipientsInput: ri,
		focus:           fieldFile,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := max(20, msg.Width-4)
		m.fileInput.Width = w
		m.recipientsInput.Width = w
		m.promptInput.SetWidth(w)
		m.summaryInput.SetWidth(w)
		return m, nil

	case opDoneMsg:
		return m.finish(msg), nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "ctrl+r":
		return m.reset(), nil

	case "ctrl+g":
		return m.startGenerate()

	case "ctrl+s":
		return m.startSend()

	case "tab":
		return m.moveFocus(1), nil

	case "shift+tab":
		return m.moveFocus(-1), nil
	}

	// inputs are read-only while a command is in flight
	if m.busy() {
		return m, nil
	}
	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldFile:
		m.fileInput, cmd = m.fileInput.Update(msg)
	case fieldPrompt:
		m.promptInput, cmd = m.promptInput.Update(msg)
		m.ctl.SetPrompt(m.promptInput.Value())
	case fieldSummary:
		m.summaryInput, cmd = m.summaryInput.Update(msg)
		m.ctl.SetSummary(m.summaryInput.Value())
	case fieldRecipients:
		m.recipientsInput, cmd = m.recipientsInput.Update(msg)
		m.ctl.SetRecipients(m.recipientsInput.Value())
	}
	return m, cmd
}

func (m Model) moveFocus(delta int) Model {
	if m.focus == fieldFile {
		m = m.selectFile()
	}
	m.blurCurrent()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	m.focusCurrent()
	return m
}

func (m *Model) blurCurrent() {
	switch m.focus {
	case fieldFile:
		m.fileInput.Blur()
	case fieldPrompt:
		m.promptInput.Blur()
	case fieldSummary:
		m.summaryInput.Blur()
	case fieldRecipients:
		m.recipientsInput.Blur()
	}
}

func (m *Model) focusCurrent() {
	switch m.focus {
	case fieldFile:
		m.fileInput.Focus()
	case fieldPrompt:
		m.promptInput.Focus()
	case fieldSummary:
		m.summaryInput.Focus()
	case fieldRecipients:
		m.recipientsInput.Focus()
	}
}

// selectFile resolves the typed path into the session's transcript, the way a
// file picker hands a file to the page.
func (m Model) selectFile() Model {
	path := strings.TrimSpace(m.fileInput.Value())
	// a path that failed to open earlier is tried again, it may exist by now
	if path == m.filePath && m.fileErr == "" && (path == "" || m.ctl.State().File != nil) {
		return m
	}
	m.filePath = path
	m.fileErr = ""

	if path == "" {
		m.ctl.SetFile(nil)
		return m
	}

	f, err := workflow.OpenTranscriptFile(path)
	if err != nil {
		m.fileErr = err.Error()
		m.ctl.SetFile(nil)
		return m
	}
	m.ctl.SetFile(f)
	return m
}

func (m Model) busy() bool {
	return m.pending != opNone || m.ctl.State().Busy()
}

func (m Model) startGenerate() (tea.Model, tea.Cmd) {
	if m.busy() {
		return m, nil
	}
	m = m.selectFile()
	m.pending = opGenerate

	ctx, ctl := m.ctx, m.ctl
	return m, func() tea.Msg {
		return opDoneMsg{op: opGenerate, err: ctl.Generate(ctx)}
	}
}

func (m Model) startSend() (tea.Model, tea.Cmd) {
	if m.busy() || m.ctl.State().Summary == "" {
		return m, nil
	}
	m.pending = opSend

	ctx, ctl := m.ctx, m.ctl
	return m, func() tea.Msg {
		return opDoneMsg{op: opSend, err: ctl.Send(ctx)}
	}
}

func (m Model) finish(msg opDoneMsg) Model {
	if errors.Is(msg.err, workflow.ErrSuperseded) || msg.op != m.pending {
		// Reset already cleared the form and the pending flag.
		return m
	}
	m.pending = opNone
	if msg.op == opGenerate && msg.err == nil {
		m.summaryInput.SetValue(m.ctl.State().Summary)
	}
	return m
}

// reset clears the session and applies the effects it asks for.
func (m Model) reset() Model {
	for _, effect := range m.ctl.Reset() {
		if effect == workflow.EffectClearFileInput {
			m.fileInput.SetValue("")
			m.filePath = ""
			m.fileErr = ""
		}
	}
	m.promptInput.Reset()
	m.summaryInput.Reset()
	m.recipientsInput.SetValue("")
	m.pending = opNone
	return m
}
