// FILE: pkg/dataset/insights.go
// PURPOSE: LLM-backed insight generation over a tabular sample with
//          section-header parsing of the structured reply.

package dataset

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-assistant-be/internal/constant"
	"ai-assistant-be/pkg/llm"
)

// Insights is the structured result of a data-analysis completion.
type Insights struct {
	Analysis       string   `json:"analysis"`
	Queries        []string `json:"queries"`
	Visualizations []string `json:"visualizations"`
}

// InsightGenerator turns a sample into insights through a single completion
// call with a fixed structured-output prompt.
type InsightGenerator struct {
	provider llm.CompletionProvider
	logger   *log.Logger
}

func NewInsightGenerator(provider llm.CompletionProvider, logger *log.Logger) *InsightGenerator {
	return &InsightGenerator{
		provider: provider,
		logger:   logger,
	}
}

// Generate asks the model for insights. A completion failure degrades to
// placeholder insights rather than an error; the turn stays answerable.
func (g *InsightGenerator) Generate(ctx context.Context, sample *Sample) *Insights {
	prompt := fmt.Sprintf(constant.DataInsightsPrompt, sample.Render(), sample.ColumnInfo())

	reply, err := g.provider.Generate(ctx, prompt)
	if err != nil {
		g.logger.Printf("[ERROR] Insight generation failed: %v", err)
		return &Insights{
			Analysis:       "Error generating insights.",
			Queries:        []string{"Error generating queries."},
			Visualizations: []string{"Error generating visualization suggestions."},
		}
	}

	return ParseInsights(reply)
}

// ParseInsights splits the reply on the three mandated section headers.
// Unknown lines before the first header are dropped.
func ParseInsights(reply string) *Insights {
	insights := &Insights{}

	section := ""
	var analysis strings.Builder
	for _, line := range strings.Split(reply, "\n") {
		switch {
		case strings.HasPrefix(line, "ANALYSIS:"):
			section = "analysis"
			continue
		case strings.HasPrefix(line, "SUGGESTED QUERIES:"):
			section = "queries"
			continue
		case strings.HasPrefix(line, "VISUALIZATION SUGGESTIONS:"):
			section = "visualizations"
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch section {
		case "analysis":
			analysis.WriteString(line)
			analysis.WriteString("\n")
		case "queries":
			if strings.HasPrefix(trimmed, "- ") {
				insights.Queries = append(insights.Queries, trimmed[2:])
			}
		case "visualizations":
			if strings.HasPrefix(trimmed, "- ") {
				insights.Visualizations = append(insights.Visualizations, trimmed[2:])
			}
		}
	}

	insights.Analysis = analysis.String()
	return insights
}

// FormatInsights renders insights as the user-facing reply text.
func FormatInsights(insights *Insights) string {
	var b strings.Builder

	b.WriteString("📊 Data Analysis Results:\n\n")

	b.WriteString("🔍 Analysis:\n")
	b.WriteString(strings.TrimSpace(insights.Analysis))
	b.WriteString("\n\n")

	b.WriteString("❓ Suggested Queries:\n")
	for _, q := range insights.Queries {
		b.WriteString("- " + q + "\n")
	}

	b.WriteString("\n📈 Visualization Suggestions:\n")
	for _, v := range insights.Visualizations {
		b.WriteString("- " + v + "\n")
	}

	return b.String()
}
