// FILE: pkg/emailflow/workflow.go
// PURPOSE: Email drafting workflow: LLM-backed draft generation/revision with
//          structured Subject/Body parsing, and validated SMTP dispatch.

package emailflow

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"

	"ai-assistant-be/internal/constant"
	"ai-assistant-be/pkg/fault"
	"ai-assistant-be/pkg/llm"
	"ai-assistant-be/pkg/session"
)

// Sender is the outbound mail boundary, implemented by internal/pkg/mailer.
type Sender interface {
	Send(recipient, subject, body string) error
}

// Workflow generates, revises and sends email drafts.
type Workflow struct {
	provider llm.CompletionProvider
	sender   Sender
	validate *validator.Validate
	logger   *log.Logger
}

func NewWorkflow(provider llm.CompletionProvider, sender Sender, logger *log.Logger) *Workflow {
	return &Workflow{
		provider: provider,
		sender:   sender,
		validate: validator.New(),
		logger:   logger,
	}
}

// Generate produces a draft from a free-form description.
func (w *Workflow) Generate(ctx context.Context, description string) (*session.Draft, error) {
	prompt := fmt.Sprintf(constant.EmailDraftPrompt, description)
	return w.complete(ctx, prompt)
}

// Modify regenerates the draft from the original full content plus the user's
// suggestions. The previous parse result is deliberately not reused.
func (w *Workflow) Modify(ctx context.Context, fullContent, suggestions string) (*session.Draft, error) {
	prompt := fmt.Sprintf(constant.EmailModifyPrompt, fullContent, suggestions)
	return w.complete(ctx, prompt)
}

func (w *Workflow) complete(ctx context.Context, prompt string) (*session.Draft, error) {
	reply, err := w.provider.Generate(ctx, prompt)
	if err != nil {
		w.logger.Printf("[ERROR] Email draft completion failed: %v", err)
		return nil, fault.Wrap(fault.Transport, "email generation failed", err)
	}

	return ParseDraft(reply), nil
}

// Send validates the recipient address and dispatches the draft. Both a bad
// address and a dial failure come back as workflow faults so the dialogue can
// re-prompt without losing the draft.
func (w *Workflow) Send(recipient, subject, body string) error {
	if err := w.validate.Var(recipient, "required,email"); err != nil {
		return fault.New(fault.Workflow, fmt.Sprintf("'%s' is not a valid email address", recipient))
	}

	if err := w.sender.Send(recipient, subject, body); err != nil {
		w.logger.Printf("[ERROR] Email send failed: %v", err)
		return fault.Wrap(fault.Workflow, "sending failed", err)
	}

	return nil
}

// ParseDraft extracts Subject and Body from the structured completion. The
// model is prompted for an exact format but the parse stays lenient: a reply
// without markers becomes the body with a derived subject. FullContent always
// keeps the raw reply.
func ParseDraft(reply string) *session.Draft {
	draft := &session.Draft{FullContent: reply}

	lines := strings.Split(reply, "\n")
	bodyStart := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		if draft.Subject == "" && strings.HasPrefix(lower, "subject:") {
			draft.Subject = strings.TrimSpace(trimmed[len("subject:"):])
			continue
		}
		if strings.HasPrefix(lower, "body:") {
			rest := strings.TrimSpace(trimmed[len("body:"):])
			if rest != "" {
				// Body started on the marker line itself.
				lines[i] = rest
				bodyStart = i
			} else {
				bodyStart = i + 1
			}
			break
		}
	}

	if bodyStart >= 0 && bodyStart <= len(lines) {
		draft.Body = strings.TrimSpace(strings.Join(lines[bodyStart:], "\n"))
	}

	if draft.Subject == "" {
		draft.Subject = "Generated Email"
	}
	if draft.Body == "" {
		draft.Body = strings.TrimSpace(reply)
	}

	return draft
}
