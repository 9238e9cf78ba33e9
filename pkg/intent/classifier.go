// FILE: pkg/intent/classifier.go
// PURPOSE: Single-shot LLM intent classification with a closed label set.

package intent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-assistant-be/internal/constant"
	"ai-assistant-be/pkg/llm"
)

// Intent is the classified purpose of a user turn.
type Intent string

const (
	IntentEmail        Intent = "email"
	IntentSave         Intent = "save"
	IntentAnalyze      Intent = "analyze"
	IntentAnalyzeImage Intent = "analyze_image"
	IntentNormal       Intent = "normal"
)

var validIntents = map[Intent]bool{
	IntentEmail:        true,
	IntentSave:         true,
	IntentAnalyze:      true,
	IntentAnalyzeImage: true,
	IntentNormal:       true,
}

// Classifier resolves user text to an Intent via the completion provider.
type Classifier struct {
	provider llm.CompletionProvider
	logger   *log.Logger
}

func NewClassifier(provider llm.CompletionProvider, logger *log.Logger) *Classifier {
	return &Classifier{
		provider: provider,
		logger:   logger,
	}
}

// Classify maps user text onto the closed label set. Callers must not pass
// empty text. It never fails: any transport error or off-vocabulary reply
// degrades to IntentNormal after logging. Single attempt, no retries.
func (c *Classifier) Classify(ctx context.Context, text string) Intent {
	prompt := fmt.Sprintf(constant.IntentPrompt, text)

	reply, err := c.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		c.logger.Printf("[ERROR] Intent detection failed: %v", err)
		return IntentNormal
	}

	label := Intent(strings.ToLower(strings.TrimSpace(reply)))
	if !validIntents[label] {
		c.logger.Printf("[WARN] Intent reply outside label set: %q", reply)
		return IntentNormal
	}

	c.logger.Printf("[INTENT] Detected: %s", label)
	return label
}
