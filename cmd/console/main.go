package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/fatih/color"
	"github.com/google/uuid"

	"ai-assistant-be/internal/config"
	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/internal/pkg/mailer"
	"ai-assistant-be/internal/repository/memory"
	"ai-assistant-be/internal/service"
	"ai-assistant-be/pkg/dataset"
	"ai-assistant-be/pkg/document"
	"ai-assistant-be/pkg/emailflow"
	"ai-assistant-be/pkg/intent"
	"ai-assistant-be/pkg/llm/factory"
	"ai-assistant-be/pkg/vision"
)

// Interactive console front-end. Runs the same dialogue engine as the HTTP
// server but without a database: the analysis cache is memo-only and saved
// documents are written to the export directory instead of being inlined.
func main() {
	cfg := config.Load()

	llmLogger := log.New(os.Stdout, "[LLM] ", log.LstdFlags)
	sysLogger := logger.NewIsolatedLogger(cfg.App.LogFilePath)

	llmProvider, err := factory.NewCompletionProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.ChatModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}

	analysisCache, err := vision.NewCache(vision.MemoCapacity, nil, llmLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize analysis cache: %v", err)
	}

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Sender,
	)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))

	assistant := service.NewAssistantService(
		memory.NewSessionRepository(),
		intent.NewClassifier(llmProvider, llmLogger),
		llmProvider,
		emailflow.NewWorkflow(llmProvider, emailService, llmLogger),
		vision.NewAnalyzer(llmProvider, analysisCache, cfg.Ai.VisionModel, llmLogger),
		dataset.NewInsightGenerator(llmProvider, llmLogger),
		service.NewPublisherService(cfg.Topics.SystemEvents, pubSub),
		sysLogger,
	)

	run(assistant, cfg.App.ExportDir)
}

func run(assistant service.IAssistantService, exportDir string) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	sessionID := uuid.New().String()
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	green.Println("AI Assistant ready. Type 'exit' to quit, 'upload <path>' to analyze a file.")

	for {
		cyan.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		var turn *dto.TurnResult
		var err error
		if path, ok := strings.CutPrefix(input, "upload "); ok {
			turn, err = upload(ctx, assistant, sessionID, strings.TrimSpace(path))
		} else {
			turn, err = assistant.HandleTurn(ctx, sessionID, input)
		}
		if err != nil {
			red.Printf("Error: %v\n", err)
			continue
		}

		green.Printf("Assistant: %s\n", turn.Response)

		if turn.Document != nil {
			doc := &document.Document{
				Content:  turn.Document.Content,
				Filename: turn.Document.Filename,
			}
			path, err := doc.WriteFile(exportDir)
			if err != nil {
				red.Printf("Error: %v\n", err)
				continue
			}
			yellow.Printf("Report saved to %s\n", path)
		}
	}

	fmt.Println("Goodbye!")
}

func upload(ctx context.Context, assistant service.IAssistantService, sessionID, path string) (*dto.TurnResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return assistant.HandleUpload(ctx, sessionID, filepath.Base(path), data)
}
