package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"ai-assistant-be/internal/constant"
	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/pkg/serverutils"
	"ai-assistant-be/internal/service"
)

type stubAssistantService struct {
	turn       *dto.TurnResult
	upload     *dto.TurnResult
	uploadName string
	uploadData []byte
}

func (s *stubAssistantService) HandleTurn(ctx context.Context, sessionID, message string) (*dto.TurnResult, error) {
	return s.turn, nil
}

func (s *stubAssistantService) HandleUpload(ctx context.Context, sessionID, filename string, data []byte) (*dto.TurnResult, error) {
	s.uploadName = filename
	s.uploadData = data
	return s.upload, nil
}

func newTestApp(svc service.IAssistantService, uploadsDir string) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewAssistantController(svc, uploadsDir).RegisterRoutes(app.Group("/api"))
	return app
}

func TestChunkRunes(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
		want []string
	}{
		{name: "even split", text: "abcdefghij", size: 5, want: []string{"abcde", "fghij"}},
		{name: "remainder fragment", text: "abcdefg", size: 5, want: []string{"abcde", "fg"}},
		{name: "shorter than one fragment", text: "hi", size: 5, want: []string{"hi"}},
		{name: "empty text", text: "", size: 5, want: nil},
		{name: "multi-byte runes stay intact", text: "日本語のテキスト", size: 3, want: []string{"日本語", "のテキ", "スト"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chunkRunes(tt.text, tt.size)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("chunkRunes(%q, %d) = %v, want %v", tt.text, tt.size, got, tt.want)
			}
		})
	}
}

func TestChunkRunesStreamFragmentSizes(t *testing.T) {
	chunks := chunkRunes(strings.Repeat("ü", 45), constant.StreamChunkSize)

	if len(chunks) != 3 {
		t.Fatalf("fragments = %d, want 3", len(chunks))
	}
	for i, want := range []int{20, 20, 5} {
		if got := utf8.RuneCountInString(chunks[i]); got != want {
			t.Errorf("fragment %d = %d runes, want %d", i, got, want)
		}
	}
}

func TestChatStreamFramesAndTerminator(t *testing.T) {
	svc := &stubAssistantService{
		turn: &dto.TurnResult{
			SessionId: "s1",
			Response:  strings.Repeat("a", 25),
			Mode:      "data_analysis",
			Document:  &dto.DocumentPayload{Content: "report body", Filename: "analysis_report_1.txt"},
		},
	}
	app := newTestApp(svc, t.TempDir())

	req, _ := http.NewRequest(http.MethodPost, "/api/assistant/v1/chat/stream",
		strings.NewReader(`{"session_id":"s1","message":"analyze"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", got)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	events := strings.Split(strings.TrimSpace(string(body)), "\n\n")
	if len(events) != 4 {
		t.Fatalf("events = %d, want 2 fragments + document + terminator:\n%s", len(events), body)
	}
	if events[len(events)-1] != "data: "+constant.StreamEndMarker {
		t.Errorf("terminator = %q", events[len(events)-1])
	}

	var frames []streamFrame
	for _, event := range events[:len(events)-1] {
		payload, ok := strings.CutPrefix(event, "data: ")
		if !ok {
			t.Fatalf("event without data prefix: %q", event)
		}
		var frame streamFrame
		if err := json.Unmarshal([]byte(payload), &frame); err != nil {
			t.Fatalf("decode frame %q: %v", payload, err)
		}
		frames = append(frames, frame)
	}

	if got := utf8.RuneCountInString(frames[0].Response); got != constant.StreamChunkSize {
		t.Errorf("first fragment = %d runes, want %d", got, constant.StreamChunkSize)
	}
	if got := utf8.RuneCountInString(frames[1].Response); got != 5 {
		t.Errorf("second fragment = %d runes, want 5", got)
	}
	if frames[0].Mode != "data_analysis" {
		t.Errorf("fragment mode = %q", frames[0].Mode)
	}
	if frames[2].Document == nil || frames[2].Document.Filename != "analysis_report_1.txt" {
		t.Errorf("document frame = %+v", frames[2])
	}
	if frames[2].Response != "" {
		t.Errorf("document frame carries response text: %q", frames[2].Response)
	}
}

func TestUploadPersistsFile(t *testing.T) {
	svc := &stubAssistantService{
		upload: &dto.TurnResult{SessionId: "s1", Response: "ok", Mode: "analyze_image"},
	}
	uploadsDir := filepath.Join(t.TempDir(), "uploads")
	app := newTestApp(svc, uploadsDir)

	content := []byte("fake image bytes")
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", "scan.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(content)
	form.WriteField("session_id", "s1")
	form.Close()

	req, _ := http.NewRequest(http.MethodPost, "/api/assistant/v1/upload", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if svc.uploadName != "scan.png" || !bytes.Equal(svc.uploadData, content) {
		t.Errorf("service got %q (%d bytes)", svc.uploadName, len(svc.uploadData))
	}

	stored, err := os.ReadFile(filepath.Join(uploadsDir, "scan.png"))
	if err != nil {
		t.Fatalf("upload not stored: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Errorf("stored bytes differ from upload")
	}
}
