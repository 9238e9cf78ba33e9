package vision

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-assistant-be/pkg/fault"
	"ai-assistant-be/pkg/llm"
)

// scriptedProvider returns canned replies in order, one per completion call.
type scriptedProvider struct {
	replies []string
	errs    []error
	calls   int
}

func (p *scriptedProvider) next() (string, error) {
	i := p.calls
	p.calls++
	var err error
	if i < len(p.errs) {
		err = p.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(p.replies) {
		return p.replies[i], nil
	}
	return "", errors.New("no scripted reply")
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.next()
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.next()
}

func (p *scriptedProvider) GenerateWithImage(ctx context.Context, prompt, imageB64 string, options ...llm.Option) (string, error) {
	return p.next()
}

func newTestAnalyzer(t *testing.T, provider llm.CompletionProvider) *Analyzer {
	t.Helper()
	cache, err := NewCache(MemoCapacity, nil, testLogger())
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	return NewAnalyzer(provider, cache, "vision-model", testLogger())
}

func TestAnalyzePipeline(t *testing.T) {
	provider := &scriptedProvider{replies: []string{
		"This is a middle stage scan. I observe increased density. Confidence: 80%",
		"```markdown\n## Analysis\nDense tissue.\n```",
	}}
	analyzer := newTestAnalyzer(t, provider)

	result, cached, err := analyzer.Analyze(context.Background(), pngBytes(t, 32, 32))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if cached {
		t.Error("cached = true on first analysis")
	}
	if result.Stage != StageMiddle {
		t.Errorf("Stage = %q, want %q", result.Stage, StageMiddle)
	}
	if result.Confidence != 0.8 {
		t.Errorf("Confidence = %v, want 0.8", result.Confidence)
	}
	if len(result.Observations) != 1 {
		t.Errorf("Observations = %v, want one line", result.Observations)
	}
	if result.Markdown != "## Analysis\nDense tissue." {
		t.Errorf("Markdown = %q", result.Markdown)
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2 (two-stage pipeline)", provider.calls)
	}
}

func TestAnalyzeIdenticalBytesHitCache(t *testing.T) {
	provider := &scriptedProvider{replies: []string{
		"preliminary stage, findings indicate a small mass. Confidence: 60%",
		"```markdown\n## Report\n```",
	}}
	analyzer := newTestAnalyzer(t, provider)

	raw := pngBytes(t, 32, 32)
	ctx := context.Background()

	first, cached, err := analyzer.Analyze(ctx, raw)
	if err != nil || cached {
		t.Fatalf("first Analyze() = cached %v, err %v", cached, err)
	}

	second, cached, err := analyzer.Analyze(ctx, raw)
	if err != nil {
		t.Fatalf("second Analyze() error = %v", err)
	}
	if !cached {
		t.Error("second Analyze() cached = false, want cache hit")
	}
	if second != first {
		t.Error("cached result differs from original")
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2 (no re-analysis)", provider.calls)
	}
}

func TestAnalyzeTransportFailureNotCached(t *testing.T) {
	provider := &scriptedProvider{
		errs: []error{errors.New("model offline")},
		replies: []string{
			"",
			"final stage scan, margins reveal growth. Confidence: 90%",
			"```markdown\n## Report\n```",
		},
	}
	analyzer := newTestAnalyzer(t, provider)

	raw := pngBytes(t, 32, 32)
	ctx := context.Background()

	result, _, err := analyzer.Analyze(ctx, raw)
	if !fault.Is(err, fault.Transport) {
		t.Fatalf("Analyze() error = %v, want transport fault", err)
	}
	if result.Stage != StageUnknown || result.Confidence != 0 {
		t.Errorf("failure result = %+v, want unknown stage and zero confidence", result)
	}

	// The failure was not cached: a retry runs the full pipeline.
	retry, cached, err := analyzer.Analyze(ctx, raw)
	if err != nil {
		t.Fatalf("retry Analyze() error = %v", err)
	}
	if cached {
		t.Error("retry served from cache, failure was cached")
	}
	if retry.Stage != StageFinal {
		t.Errorf("retry Stage = %q, want %q", retry.Stage, StageFinal)
	}
}

func TestAnalyzeFormattingFailureNotCached(t *testing.T) {
	provider := &scriptedProvider{
		errs: []error{nil, errors.New("model offline")},
		replies: []string{
			"middle stage, tissue shows density. Confidence: 70%",
		},
	}
	analyzer := newTestAnalyzer(t, provider)

	raw := pngBytes(t, 32, 32)
	result, _, err := analyzer.Analyze(context.Background(), raw)
	if !fault.Is(err, fault.Transport) {
		t.Fatalf("Analyze() error = %v, want transport fault", err)
	}
	if result.Stage != StageUnknown {
		t.Errorf("partial result leaked: %+v", result)
	}
}

func TestAnalyzeUndecodableInput(t *testing.T) {
	provider := &scriptedProvider{}
	analyzer := newTestAnalyzer(t, provider)

	result, _, err := analyzer.Analyze(context.Background(), []byte("not an image"))
	if !fault.Is(err, fault.Input) {
		t.Fatalf("Analyze() error = %v, want input fault", err)
	}
	if result.Stage != StageUnknown || result.Confidence != 0 {
		t.Errorf("failure result = %+v", result)
	}
	if provider.calls != 0 {
		t.Errorf("provider calls = %d, want 0", provider.calls)
	}
}

func TestAnalyzeStageAlwaysInVocabulary(t *testing.T) {
	replies := []string{
		"completely unstructured text",
		"FINAL STAGE detected, confidence 300%",
		"preliminary notes indicate something",
	}

	valid := map[string]bool{StagePreliminary: true, StageMiddle: true, StageFinal: true, StageUnknown: true}

	for _, reply := range replies {
		provider := &scriptedProvider{replies: []string{reply, "```markdown\nr\n```"}}
		analyzer := newTestAnalyzer(t, provider)

		result, _, err := analyzer.Analyze(context.Background(), pngBytes(t, 16, 16))
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if !valid[result.Stage] {
			t.Errorf("Stage = %q, outside vocabulary", result.Stage)
		}
		if result.Confidence < 0 || result.Confidence > 1 {
			t.Errorf("Confidence = %v, outside [0, 1]", result.Confidence)
		}
	}
}

func TestFormat(t *testing.T) {
	text := Format(&Result{
		Stage:        StageMiddle,
		Observations: []string{"density observed"},
		Confidence:   0.8,
		RawResponse:  "raw text",
	})

	for _, want := range []string{"Breast MRI Scan Analysis", "Stage: MIDDLE", "Confidence: 80.0%", "• density observed", "raw text"} {
		if !strings.Contains(text, want) {
			t.Errorf("Format() missing %q:\n%s", want, text)
		}
	}
}
