package workflow

import "strings"

const (
	msgGenerated      = "Summary generated successfully"
	msgGenerateFailed = "Error generating summary"
	msgSendFailed     = "Error sending email"
)

// Tone tags a status message.
type Tone int

const (
	ToneEmpty Tone = iota
	ToneSuccess
	ToneError
)

func (t Tone) String() string {
	switch t {
	case ToneSuccess:
		return "success"
	case ToneError:
		return "error"
	default:
		return "empty"
	}
}

// Status is the outcome of the most recently completed operation.
type Status struct {
	Tone Tone
	Text string
}

func successStatus(text string) Status { return Status{Tone: ToneSuccess, Text: text} }
func errorStatus(text string) Status   { return Status{Tone: ToneError, Text: text} }

// Phase is the in-flight operation, if any.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseGenerating
	PhaseSending
)

// Stage is the workflow position shown to the user.
type Stage int

const (
	StageIdleEmpty Stage = iota
	StageGenerating
	StageIdleReady
	StageSending
)

func (s Stage) String() string {
	switch s {
	case StageGenerating:
		return "generating"
	case StageIdleReady:
		return "ready"
	case StageSending:
		return "sending"
	default:
		return "idle"
	}
}

// Effect is an instruction for the I/O layer hosting the workflow.
type Effect int

const (
	// EffectClearFileInput asks the host to clear its file-selection widget.
	EffectClearFileInput Effect = iota + 1
)

// State is a snapshot of one workflow session. Transitions return a new value.
type State struct {
	File       *TranscriptFile
	Prompt     string
	Summary    string
	Recipients string
	Status     Status
	Phase      Phase
}

// Busy reports whether a Generate or Send call is outstanding.
func (s State) Busy() bool {
	return s.Phase != PhaseIdle
}

func (s State) Stage() Stage {
	switch s.Phase {
	case PhaseGenerating:
		return StageGenerating
	case PhaseSending:
		return StageSending
	}
	if s.Summary == "" {
		return StageIdleEmpty
	}
	return StageIdleReady
}

// CanSend mirrors the enabled state of the send action.
func (s State) CanSend() bool {
	return !s.Busy() && s.Summary != ""
}

// BeginGenerate validates the generate preconditions. On failure the returned
// state carries the reason as an error status.
func BeginGenerate(s State) (State, error) {
	if s.Busy() {
		return s, ErrBusy
	}
	if err := ValidateFile(s.File); err != nil {
		s.Status = errorStatus(err.Error())
		return s, err
	}
	if strings.TrimSpace(s.Prompt) == "" {
		s.Status = errorStatus(ReasonEmptyPrompt.Error())
		return s, ReasonEmptyPrompt
	}
	s.Phase = PhaseGenerating
	s.Status = Status{}
	return s, nil
}

func CompleteGenerate(s State, summary string) State {
	s.Summary = summary
	s.Status = successStatus(msgGenerated)
	s.Phase = PhaseIdle
	return s
}

// FailGenerate keeps the previous summary.
func FailGenerate(s State, err error) State {
	s.Status = errorStatus(remoteMessage(err, msgGenerateFailed))
	s.Phase = PhaseIdle
	return s
}

// BeginSend validates the send preconditions. On failure the returned state
// carries the reason as an error status.
func BeginSend(s State) (State, error) {
	if s.Busy() {
		return s, ErrBusy
	}
	if strings.TrimSpace(s.Summary) == "" {
		s.Status = errorStatus(ReasonEmptySummary.Error())
		return s, ReasonEmptySummary
	}
	if err := ValidateEmails(s.Recipients); err != nil {
		s.Status = errorStatus(err.Error())
		return s, err
	}
	s.Phase = PhaseSending
	s.Status = Status{}
	return s, nil
}

func CompleteSend(s State, confirmation string) State {
	s.Status = successStatus(confirmation)
	s.Phase = PhaseIdle
	return s
}

func FailSend(s State, err error) State {
	s.Status = errorStatus(remoteMessage(err, msgSendFailed))
	s.Phase = PhaseIdle
	return s
}

// Reset returns the initial state and the effects the host must apply.
func Reset() (State, []Effect) {
	return State{}, []Effect{EffectClearFileInput}
}
