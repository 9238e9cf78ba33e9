// FILE: pkg/vision/analyzer.go
// PURPOSE: Scan analysis pipeline: fingerprint, cache lookup, two-stage
//          completion (diagnostic pass + markdown formatting pass), structured
//          extraction, cache write.

package vision

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-assistant-be/internal/constant"
	"ai-assistant-be/pkg/fault"
	"ai-assistant-be/pkg/llm"
)

// Analyzer runs the scan analysis pipeline against a vision-capable model.
type Analyzer struct {
	provider    llm.CompletionProvider
	cache       *Cache
	visionModel string
	logger      *log.Logger
}

func NewAnalyzer(provider llm.CompletionProvider, cache *Cache, visionModel string, logger *log.Logger) *Analyzer {
	return &Analyzer{
		provider:    provider,
		cache:       cache,
		visionModel: visionModel,
		logger:      logger,
	}
}

// Analyze fingerprints the raw bytes, serves from cache when possible, and
// otherwise runs the two-stage pipeline. The second return reports a cache
// hit. Any failure is logged and returned as a terminal unknown-stage
// zero-confidence result together with the fault; failures are never cached.
func (a *Analyzer) Analyze(ctx context.Context, raw []byte) (*Result, bool, error) {
	fingerprint := Fingerprint(raw)

	if cached, ok := a.cache.Get(ctx, fingerprint); ok {
		a.logger.Printf("[CACHE] Analysis hit for %s", fingerprint)
		return cached, true, nil
	}

	imageB64, err := EncodeInline(raw)
	if err != nil {
		a.logger.Printf("[ERROR] Image preparation failed: %v", err)
		return failureResult(), false, err
	}

	// Stage 1: diagnostic pass over the image.
	reply, err := a.provider.GenerateWithImage(
		ctx,
		constant.ScanAnalysisPrompt,
		imageB64,
		llm.WithModel(a.visionModel),
	)
	if err != nil {
		a.logger.Printf("[ERROR] Scan analysis completion failed: %v", err)
		return failureResult(), false, fault.Wrap(fault.Transport, "scan analysis failed", err)
	}

	result := &Result{
		Stage:        ExtractStage(reply),
		Observations: ExtractObservations(reply),
		Confidence:   ExtractConfidence(reply),
		RawResponse:  reply,
	}

	// Stage 2: reformat the structured analysis as a markdown report.
	markdown, err := a.formatMarkdown(ctx, result)
	if err != nil {
		a.logger.Printf("[ERROR] Markdown formatting pass failed: %v", err)
		return failureResult(), false, fault.Wrap(fault.Transport, "report formatting failed", err)
	}
	result.Markdown = markdown

	a.cache.Put(ctx, fingerprint, result)
	return result, false, nil
}

// formatMarkdown asks the model to restructure the analysis into the mandated
// four-section markdown report. A missing fenced block falls back to the raw
// second-stage reply; a transport failure aborts the whole analysis so a
// partial result is never cached.
func (a *Analyzer) formatMarkdown(ctx context.Context, result *Result) (string, error) {
	analysisText := fmt.Sprintf(
		"Stage: %s\nObservations: %s\nConfidence: %.2f\nRaw Response:\n%s",
		result.Stage,
		strings.Join(result.Observations, "; "),
		result.Confidence,
		result.RawResponse,
	)

	prompt := fmt.Sprintf(constant.MarkdownReportPrompt, analysisText)

	reply, err := a.provider.Generate(ctx, prompt, llm.WithModel(a.visionModel))
	if err != nil {
		return "", err
	}

	return ExtractMarkdown(reply), nil
}

// Format renders the analysis as the user-facing reply text.
func Format(result *Result) string {
	var b strings.Builder

	b.WriteString("📊 Breast MRI Scan Analysis\n")
	b.WriteString(strings.Repeat("=", 30) + "\n\n")

	b.WriteString(fmt.Sprintf("Stage: %s\n", strings.ToUpper(result.Stage)))
	b.WriteString(fmt.Sprintf("Confidence: %.1f%%\n\n", result.Confidence*100))

	b.WriteString("Key Observations:\n")
	for _, obs := range result.Observations {
		b.WriteString("• " + obs + "\n")
	}

	b.WriteString("\nDetailed Analysis:\n")
	b.WriteString(result.RawResponse)

	return b.String()
}
