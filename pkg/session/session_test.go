package session

import "testing"

// The invariant under test: EmailStage is non-empty exactly when Mode is email.
func checkInvariant(t *testing.T, s *State) {
	t.Helper()
	inEmail := s.Mode == ModeEmail
	hasStage := s.EmailStage != ""
	if inEmail != hasStage {
		t.Errorf("invariant broken: mode=%q stage=%q", s.Mode, s.EmailStage)
	}
}

func TestNewDefaults(t *testing.T) {
	s := New("abc")
	if s.Mode != ModeChat {
		t.Errorf("Mode = %q, want %q", s.Mode, ModeChat)
	}
	if s.EmailStage != "" || s.Email != nil || s.LastResponse != "" {
		t.Errorf("fresh session not empty: %+v", s)
	}
	checkInvariant(t, s)
}

func TestEmailLifecycle(t *testing.T) {
	s := New("abc")

	s.EnterEmail()
	if s.Mode != ModeEmail || s.EmailStage != StageInit {
		t.Errorf("after EnterEmail: mode=%q stage=%q", s.Mode, s.EmailStage)
	}
	checkInvariant(t, s)

	s.Email = &Draft{Subject: "x"}
	s.SetEmailStage(StageReview)
	if s.EmailStage != StageReview {
		t.Errorf("stage = %q, want %q", s.EmailStage, StageReview)
	}
	checkInvariant(t, s)

	s.LeaveEmail()
	if s.Mode != ModeChat || s.EmailStage != "" || s.Email != nil {
		t.Errorf("after LeaveEmail: %+v", s)
	}
	checkInvariant(t, s)
}

func TestSetEmailStageOutsideEmailIsNoop(t *testing.T) {
	s := New("abc")
	s.SetEmailStage(StageConfirm)
	if s.EmailStage != "" {
		t.Errorf("stage = %q, want empty outside email mode", s.EmailStage)
	}
	checkInvariant(t, s)
}

func TestSetModeClearsEmailState(t *testing.T) {
	s := New("abc")
	s.EnterEmail()
	s.Email = &Draft{Subject: "x"}

	s.SetMode(ModeDataAnalysis)
	if s.Mode != ModeDataAnalysis || s.EmailStage != "" || s.Email != nil {
		t.Errorf("after SetMode: %+v", s)
	}
	checkInvariant(t, s)
}

func TestSetModeEmailRoutesThroughEnterEmail(t *testing.T) {
	s := New("abc")
	s.SetMode(ModeEmail)
	if s.EmailStage != StageInit {
		t.Errorf("stage = %q, want %q", s.EmailStage, StageInit)
	}
	checkInvariant(t, s)
}
