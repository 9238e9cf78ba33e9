// FILE: pkg/session/session.go
// PURPOSE: Per-conversation state tracked by the dialogue engine.

package session

import (
	"sync"

	"ai-assistant-be/pkg/dataset"
)

// Draft is a generated email prior to sending. FullContent keeps the raw model
// output so later modifications always rework the original text.
type Draft struct {
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	FullContent string `json:"full_content"`
}

// State is the active conversation state. One instance per session id; turns
// against the same session are serialized through Lock/Unlock by the caller.
//
// Invariant: EmailStage != "" exactly when Mode == "email". Use EnterEmail /
// SetEmailStage / LeaveEmail instead of writing the fields directly.
type State struct {
	ID           string
	Mode         string // "chat" | "email" | "data_analysis" | "analyze_image"
	EmailStage   string // "" | "init" | "review" | "modify" | "confirm"
	Email        *Draft
	LastResponse string
	Sample       *dataset.Sample // current tabular sample, replaced on new upload
	ImageKey     string          // fingerprint of the most recently analyzed image

	mu sync.Mutex
}

const (
	ModeChat         = "chat"
	ModeEmail        = "email"
	ModeDataAnalysis = "data_analysis"
	ModeAnalyzeImage = "analyze_image"

	StageInit    = "init"
	StageReview  = "review"
	StageModify  = "modify"
	StageConfirm = "confirm"
)

// New returns a fresh session in chat mode.
func New(id string) *State {
	return &State{
		ID:   id,
		Mode: ModeChat,
	}
}

// Lock serializes turns against this session. The dialogue engine holds the
// lock for the whole transition but never across streaming delivery.
func (s *State) Lock()   { s.mu.Lock() }
func (s *State) Unlock() { s.mu.Unlock() }

// EnterEmail switches to the email workflow at the init stage.
func (s *State) EnterEmail() {
	s.Mode = ModeEmail
	s.EmailStage = StageInit
}

// SetEmailStage advances the email sub-machine. No-op outside email mode so
// the stage/mode invariant cannot be broken from a stale caller.
func (s *State) SetEmailStage(stage string) {
	if s.Mode != ModeEmail {
		return
	}
	s.EmailStage = stage
}

// LeaveEmail returns to chat mode, clearing the stage and the draft.
func (s *State) LeaveEmail() {
	s.Mode = ModeChat
	s.EmailStage = ""
	s.Email = nil
}

// SetMode switches between the non-email modes. Entering email must go through
// EnterEmail; leaving it through LeaveEmail.
func (s *State) SetMode(mode string) {
	if mode == ModeEmail {
		s.EnterEmail()
		return
	}
	if s.Mode == ModeEmail {
		s.EmailStage = ""
		s.Email = nil
	}
	s.Mode = mode
}
