// FILE: internal/service/assistant_service.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"ai-assistant-be/internal/constant"
	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/internal/repository/memory"
	"ai-assistant-be/pkg/dataset"
	"ai-assistant-be/pkg/document"
	"ai-assistant-be/pkg/emailflow"
	"ai-assistant-be/pkg/events"
	"ai-assistant-be/pkg/fault"
	"ai-assistant-be/pkg/intent"
	"ai-assistant-be/pkg/llm"
	"ai-assistant-be/pkg/session"
	"ai-assistant-be/pkg/vision"
)

type IAssistantService interface {
	// HandleTurn runs one dialogue turn. The session state is fully updated
	// before the result is returned, so streaming delivery of the response
	// text never observes a half-applied transition.
	HandleTurn(ctx context.Context, sessionID, message string) (*dto.TurnResult, error)

	// HandleUpload dispatches an uploaded file by extension: images go to the
	// scan analysis pipeline, tabular files to the data-analysis pipeline,
	// anything else is acknowledged without processing.
	HandleUpload(ctx context.Context, sessionID, filename string, data []byte) (*dto.TurnResult, error)
}

type assistantService struct {
	sessions   *memory.SessionRepository
	classifier *intent.Classifier
	provider   llm.CompletionProvider
	emailFlow  *emailflow.Workflow
	analyzer   *vision.Analyzer
	insights   *dataset.InsightGenerator
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewAssistantService(
	sessions *memory.SessionRepository,
	classifier *intent.Classifier,
	provider llm.CompletionProvider,
	emailFlow *emailflow.Workflow,
	analyzer *vision.Analyzer,
	insights *dataset.InsightGenerator,
	publisher IPublisherService,
	appLogger logger.ILogger,
) IAssistantService {
	return &assistantService{
		sessions:   sessions,
		classifier: classifier,
		provider:   provider,
		emailFlow:  emailFlow,
		analyzer:   analyzer,
		insights:   insights,
		publisher:  publisher,
		logger:     appLogger,
	}
}

func (s *assistantService) HandleTurn(ctx context.Context, sessionID, message string) (*dto.TurnResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fault.New(fault.Input, "message cannot be empty")
	}

	state := s.sessions.GetOrCreate(sessionID)
	state.Lock()
	defer state.Unlock()

	var result *dto.TurnResult
	if state.Mode == session.ModeEmail {
		// The email sub-machine short-circuits intent detection.
		result = s.handleEmailStage(ctx, state, message)
	} else {
		result = s.handleIntent(ctx, state, message)
	}

	result.SessionId = state.ID
	result.Mode = state.Mode
	result.Stage = state.EmailStage
	return result, nil
}

func (s *assistantService) handleEmailStage(ctx context.Context, state *session.State, message string) *dto.TurnResult {
	switch state.EmailStage {
	case session.StageInit:
		return s.emailInit(ctx, state, message)
	case session.StageReview:
		return s.emailReview(state, message)
	case session.StageModify:
		return s.emailModify(ctx, state, message)
	case session.StageConfirm:
		return s.emailConfirm(ctx, state, message)
	default:
		// Unreachable while the stage/mode invariant holds; recover anyway.
		state.LeaveEmail()
		return s.handleIntent(ctx, state, message)
	}
}

func (s *assistantService) emailInit(ctx context.Context, state *session.State, description string) *dto.TurnResult {
	draft, err := s.emailFlow.Generate(ctx, description)
	if err != nil {
		s.logger.Error("assistant", "Email draft generation failed", map[string]interface{}{
			"session_id": state.ID,
			"error":      err.Error(),
		})
		return &dto.TurnResult{Response: constant.ReplyEmailGenerateFailed}
	}

	state.Email = draft
	state.SetEmailStage(session.StageReview)
	return &dto.TurnResult{Response: renderDraft(draft, constant.ReplyEmailReviewOptions)}
}

func (s *assistantService) emailReview(state *session.State, message string) *dto.TurnResult {
	switch strings.ToLower(strings.TrimSpace(message)) {
	case "yes":
		state.SetEmailStage(session.StageConfirm)
		return &dto.TurnResult{Response: constant.ReplyEmailAskRecipient}
	case "change":
		state.SetEmailStage(session.StageModify)
		return &dto.TurnResult{Response: constant.ReplyEmailAskSuggestions}
	case "cancel":
		state.LeaveEmail()
		return &dto.TurnResult{Response: constant.ReplyEmailCancelled}
	default:
		return &dto.TurnResult{Response: constant.ReplyEmailInvalidChoice}
	}
}

func (s *assistantService) emailModify(ctx context.Context, state *session.State, suggestions string) *dto.TurnResult {
	draft, err := s.emailFlow.Modify(ctx, state.Email.FullContent, suggestions)
	if err != nil {
		s.logger.Error("assistant", "Email draft modification failed", map[string]interface{}{
			"session_id": state.ID,
			"error":      err.Error(),
		})
		return &dto.TurnResult{Response: constant.ReplyEmailModifyFailed}
	}

	state.Email = draft
	state.SetEmailStage(session.StageReview)
	return &dto.TurnResult{Response: renderDraft(draft, constant.ReplyEmailReviewOptionsFurther)}
}

func (s *assistantService) emailConfirm(ctx context.Context, state *session.State, recipient string) *dto.TurnResult {
	recipient = strings.TrimSpace(recipient)
	draft := state.Email

	if err := s.emailFlow.Send(recipient, draft.Subject, draft.Body); err != nil {
		// The draft survives a failed send; the user retries with a new address.
		return &dto.TurnResult{
			Response: fault.ReasonOf(err) + "\n" + constant.ReplyEmailAskRecipient,
		}
	}

	s.publishEvent(ctx, events.EmailSent(state.ID, recipient, draft.Subject))
	state.LeaveEmail()
	return &dto.TurnResult{Response: constant.ReplyEmailSent}
}

func (s *assistantService) handleIntent(ctx context.Context, state *session.State, message string) *dto.TurnResult {
	switch s.classifier.Classify(ctx, message) {
	case intent.IntentEmail:
		state.EnterEmail()
		return &dto.TurnResult{Response: constant.ReplyEmailIntro}

	case intent.IntentAnalyze:
		return s.handleAnalyze(ctx, state, message)

	case intent.IntentAnalyzeImage:
		if state.Mode != session.ModeAnalyzeImage {
			state.SetMode(session.ModeAnalyzeImage)
			return &dto.TurnResult{Response: constant.ReplyAnalyzeImageIntro}
		}
		// Images arrive through the upload boundary, never as chat text.
		return &dto.TurnResult{Response: constant.ReplyAnalyzeImageAgain}

	case intent.IntentSave:
		return s.handleSave(ctx, state)

	default:
		return s.handleChat(ctx, state, message)
	}
}

func (s *assistantService) handleAnalyze(ctx context.Context, state *session.State, message string) *dto.TurnResult {
	if state.Mode != session.ModeDataAnalysis {
		state.SetMode(session.ModeDataAnalysis)
		return &dto.TurnResult{Response: constant.ReplyAnalyzeIntro}
	}

	// Already in analysis mode: the message is a file path.
	sample, err := dataset.ReadSampleFile(strings.TrimSpace(message))
	if err != nil {
		return &dto.TurnResult{
			Response: fault.ReasonOf(err) + "\n" + constant.ReplyAnalyzeAskPath,
		}
	}

	return s.analyzeSample(ctx, state, sample)
}

func (s *assistantService) analyzeSample(ctx context.Context, state *session.State, sample *dataset.Sample) *dto.TurnResult {
	insights := s.insights.Generate(ctx, sample)
	response := dataset.FormatInsights(insights)

	state.Sample = sample
	state.LastResponse = response

	s.publishEvent(ctx, events.DataAnalyzed(state.ID, sample.RecordCount(), sample.ColumnNames()))
	return &dto.TurnResult{Response: response}
}

func (s *assistantService) handleSave(ctx context.Context, state *session.State) *dto.TurnResult {
	if state.LastResponse == "" {
		return &dto.TurnResult{Response: constant.ReplyNothingToSave}
	}

	doc := document.Build(state.LastResponse, state.Sample)
	s.publishEvent(ctx, events.DocumentExported(state.ID, doc.Filename))

	return &dto.TurnResult{
		Response: constant.ReplyDocumentSaved,
		Document: &dto.DocumentPayload{
			Content:  doc.Content,
			Filename: doc.Filename,
		},
	}
}

func (s *assistantService) handleChat(ctx context.Context, state *session.State, message string) *dto.TurnResult {
	state.SetMode(session.ModeChat)

	reply, err := s.provider.Generate(ctx, message)
	if err != nil {
		s.logger.Error("assistant", "Chat completion failed", map[string]interface{}{
			"session_id": state.ID,
			"error":      err.Error(),
		})
		return &dto.TurnResult{Response: constant.ReplyChatUnavailable}
	}

	state.LastResponse = reply
	return &dto.TurnResult{Response: reply}
}

func (s *assistantService) HandleUpload(ctx context.Context, sessionID, filename string, data []byte) (*dto.TurnResult, error) {
	if len(data) == 0 {
		return nil, fault.New(fault.Input, "uploaded file is empty")
	}

	state := s.sessions.GetOrCreate(sessionID)
	state.Lock()
	defer state.Unlock()

	var result *dto.TurnResult
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "png", "jpg", "jpeg", "dicom":
		result = s.uploadImage(ctx, state, data)
	case "csv", "xlsx", "xls":
		result = s.uploadTabular(ctx, state, filename, data)
	default:
		result = &dto.TurnResult{Response: constant.ReplyAttachmentAck}
	}

	result.SessionId = state.ID
	result.Mode = state.Mode
	result.Stage = state.EmailStage
	return result, nil
}

func (s *assistantService) uploadImage(ctx context.Context, state *session.State, data []byte) *dto.TurnResult {
	state.SetMode(session.ModeAnalyzeImage)

	result, cached, err := s.analyzer.Analyze(ctx, data)
	if err != nil {
		s.logger.Error("assistant", "Image analysis failed", map[string]interface{}{
			"session_id": state.ID,
			"error":      err.Error(),
		})
		return &dto.TurnResult{Response: constant.ReplyImageUnavailable}
	}

	fingerprint := vision.Fingerprint(data)
	response := vision.Format(result)

	state.ImageKey = fingerprint
	state.LastResponse = response

	s.publishEvent(ctx, events.ImageAnalyzed(fingerprint, result.Stage, cached))
	return &dto.TurnResult{Response: response}
}

func (s *assistantService) uploadTabular(ctx context.Context, state *session.State, filename string, data []byte) *dto.TurnResult {
	state.SetMode(session.ModeDataAnalysis)

	sample, err := dataset.ReadSample(bytes.NewReader(data), filepath.Ext(filename))
	if err != nil {
		return &dto.TurnResult{
			Response: fault.ReasonOf(err) + "\n" + constant.ReplyAnalyzeAskPath,
		}
	}

	return s.analyzeSample(ctx, state, sample)
}

// publishEvent fans an event out to the audit consumer. Event delivery is
// best-effort and never fails the user's turn.
func (s *assistantService) publishEvent(ctx context.Context, event events.BaseEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("assistant", "Event encoding failed", map[string]interface{}{"type": event.Type, "error": err.Error()})
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("assistant", "Event publish failed", map[string]interface{}{"type": event.Type, "error": err.Error()})
	}
}

func renderDraft(draft *session.Draft, options string) string {
	return fmt.Sprintf("Here's the generated email:\n\nSubject: %s\n\nBody:\n%s\n\n%s", draft.Subject, draft.Body, options)
}
