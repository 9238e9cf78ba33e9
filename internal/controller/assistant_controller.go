package controller

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"ai-assistant-be/internal/constant"
	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/pkg/serverutils"
	"ai-assistant-be/internal/service"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	ChatStream(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
	uploadsDir       string
}

func NewAssistantController(assistantService service.IAssistantService, uploadsDir string) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
		uploadsDir:       uploadsDir,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("chat", c.Chat)
	h.Post("chat/stream", c.ChatStream)
	h.Post("upload", c.Upload)
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	req, err := c.parseTurnRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.assistantService.HandleTurn(ctx.Context(), req.SessionId, req.Message)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Turn processed", res))
}

// streamFrame is one SSE data payload. A turn is delivered as a sequence of
// response fragments, an optional document frame, then the end marker.
type streamFrame struct {
	Response string               `json:"response,omitempty"`
	Mode     string               `json:"mode"`
	Stage    string               `json:"stage,omitempty"`
	Document *dto.DocumentPayload `json:"document,omitempty"`
}

func (c *assistantController) ChatStream(ctx *fiber.Ctx) error {
	req, err := c.parseTurnRequest(ctx)
	if err != nil {
		return err
	}

	// The turn runs to completion here: session state is final before the
	// first fragment goes out. Fragmentation is presentation only.
	res, err := c.assistantService.HandleTurn(ctx.Context(), req.SessionId, req.Message)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		for _, fragment := range chunkRunes(res.Response, constant.StreamChunkSize) {
			frame := streamFrame{
				Response: fragment,
				Mode:     res.Mode,
				Stage:    res.Stage,
			}
			if writeFrame(w, frame) != nil {
				return
			}
			time.Sleep(constant.StreamChunkDelayMs * time.Millisecond)
		}

		if res.Document != nil {
			if writeFrame(w, streamFrame{Mode: res.Mode, Stage: res.Stage, Document: res.Document}) != nil {
				return
			}
		}

		fmt.Fprintf(w, "data: %s\n\n", constant.StreamEndMarker)
		w.Flush()
	}))

	return nil
}

// chunkRunes splits text into fragments of at most size runes. Counting runes
// rather than bytes keeps multi-byte characters intact across fragments.
func chunkRunes(text string, size int) []string {
	runes := []rune(text)
	var chunks []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

func writeFrame(w *bufio.Writer, frame streamFrame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

func (c *assistantController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "File is required"))
	}

	sessionID := ctx.FormValue("session_id")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Cannot open uploaded file"))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Cannot read uploaded file"))
	}

	// Keep a copy on disk; the uploads dir is served statically by the server.
	if err := c.persistUpload(fileHeader.Filename, data); err != nil {
		return err
	}

	res, err := c.assistantService.HandleUpload(ctx.Context(), sessionID, fileHeader.Filename, data)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Upload processed", res))
}

func (c *assistantController) persistUpload(filename string, data []byte) error {
	if err := os.MkdirAll(c.uploadsDir, 0o755); err != nil {
		return fmt.Errorf("create uploads directory: %w", err)
	}

	path := filepath.Join(c.uploadsDir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("store upload: %w", err)
	}

	return nil
}

func (c *assistantController) parseTurnRequest(ctx *fiber.Ctx) (*dto.TurnRequest, error) {
	var req dto.TurnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	if req.SessionId == "" {
		req.SessionId = uuid.New().String()
	}

	return &req, nil
}
