package workflow

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/recap-mailer/internal/logger"
)

// Controller owns one workflow session and runs its commands.
// It is safe for concurrent use; the lock is never held across a remote call.
type Controller struct {
	mu     sync.Mutex
	state  State
	epoch  uint64
	remote Remote
	logger logger.Logger
}

// NewController creates a session in its initial state.
func NewController(remote Remote, log logger.Logger) *Controller {
	if log == nil {
		log = logger.Discard()
	}
	return &Controller{
		remote: remote,
		logger: log,
	}
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetFile replaces the selected transcript; nil clears it.
func (c *Controller) SetFile(f *TranscriptFile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.File = f
}

func (c *Controller) SetPrompt(prompt string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Prompt = prompt
}

// SetSummary records a manual edit of the summary.
func (c *Controller) SetSummary(summary string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Summary = summary
}

func (c *Controller) SetRecipients(recipients string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Recipients = recipients
}

// Generate validates the transcript and prompt, then asks the remote service for a summary.
// The returned error is the validation reason, the remote failure, ErrBusy or ErrSuperseded;
// the session status is updated for every outcome except ErrBusy and ErrSuperseded.
func (c *Controller) Generate(ctx context.Context) error {
	c.mu.Lock()
	next, err := BeginGenerate(c.state)
	c.state = next
	if err != nil {
		c.mu.Unlock()
		c.logger.Debug(ctx, "Generate rejected: %v", err)
		return err
	}
	file, prompt, epoch := next.File, next.Prompt, c.epoch
	c.mu.Unlock()

	c.logger.Info(ctx, "Generating summary for %s (%d bytes)", file.Name, file.Size)
	summary, err := c.remote.Summarize(ctx, file, prompt)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		c.logger.Debug(ctx, "Discarding summary for %s: session was reset", file.Name)
		return ErrSuperseded
	}
	if err != nil {
		c.state = FailGenerate(c.state, err)
		c.logger.Warn(ctx, "Generate failed: %v", err)
		return err
	}
	c.state = CompleteGenerate(c.state, summary)
	c.logger.Info(ctx, "Summary generated for %s (%d chars)", file.Name, len(summary))
	return nil
}

// Send validates the summary and recipients, then asks the remote service to email them.
func (c *Controller) Send(ctx context.Context) error {
	c.mu.Lock()
	next, err := BeginSend(c.state)
	c.state = next
	if err != nil {
		c.mu.Unlock()
		c.logger.Debug(ctx, "Send rejected: %v", err)
		return err
	}
	summary, recipients, epoch := next.Summary, ParseRecipients(next.Recipients), c.epoch
	c.mu.Unlock()

	c.logger.Info(ctx, "Dispatching summary to %d recipient(s)", len(recipients))
	confirmation, err := c.remote.Dispatch(ctx, summary, recipients)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		c.logger.Debug(ctx, "Discarding dispatch result: session was reset")
		return ErrSuperseded
	}
	if err != nil {
		c.state = FailSend(c.state, err)
		c.logger.Warn(ctx, "Send failed: %v", err)
		return err
	}
	c.state = CompleteSend(c.state, confirmation)
	return nil
}

// Reset clears the session, even while a command is in flight, and returns the
// effects the host must apply to its own widgets.
func (c *Controller) Reset() []Effect {
	c.mu.Lock()
	defer c.mu.Unlock()
	var effects []Effect
	c.state, effects = Reset()
	c.epoch++
	return effects
}
