package tui

import (
	"strings"

	"github.com/nguyentantai21042004/recap-mailer/internal/workflow"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.ctl.State()
	var b strings.Builder

	b.WriteString(titleStyle.Render("AI-Powered Meeting Summarizer"))
	b.WriteString("\n\n")

	m.section(&b, fieldFile, "Upload Transcript (.txt)", m.fileInput.View(), m.fileHint(st))
	m.section(&b, fieldPrompt, "Custom Prompt", m.promptInput.View(), "Enter instructions for AI summarization.")

	switch m.pending {
	case opGenerate:
		b.WriteString(busyStyle.Render("Generating..."))
	case opSend:
		b.WriteString(busyStyle.Render("Sending..."))
	default:
		b.WriteString(hintStyle.Render("[ctrl+g] Generate Summary"))
	}
	b.WriteString("\n\n")

	m.section(&b, fieldSummary, "Editable Summary", m.summaryInput.View(), "Edit the generated summary as needed.")
	m.section(&b, fieldRecipients, "Recipients (comma-separated emails)", m.recipientsInput.View(), "Enter valid email addresses separated by commas.")

	if st.Status.Tone != workflow.ToneEmpty {
		b.WriteString(statusView(st.Status))
		b.WriteString("\n\n")
	}

	help := "tab: next field • ctrl+g: generate • ctrl+r: reset • esc: quit"
	if st.CanSend() && m.pending == opNone {
		help = "tab: next field • ctrl+g: generate • ctrl+s: share via email • ctrl+r: reset • esc: quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

func (m Model) section(b *strings.Builder, field int, label, input, hint string) {
	style := labelStyle
	if m.focus == field {
		style = focusedLabelStyle
	}
	b.WriteString(style.Render(label))
	b.WriteString("\n")
	b.WriteString(input)
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(hint))
	b.WriteString("\n\n")
}

func (m Model) fileHint(st workflow.State) string {
	switch {
	case m.fileErr != "":
		return m.fileErr
	case st.File != nil:
		return st.File.Name + " (" + st.File.MIMEType + ")"
	default:
		return "Only .txt files up to 5MB."
	}
}

func statusView(s workflow.Status) string {
	if s.Tone == workflow.ToneError {
		return errorStyle.Render(s.Text)
	}
	return successStyle.Render(s.Text)
}
