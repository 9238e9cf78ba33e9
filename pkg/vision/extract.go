// FILE: pkg/vision/extract.go
// PURPOSE: Best-effort extraction of structured fields from free-text model
//          output. The upstream completion is not schema-constrained, so every
//          extractor has a defined fallback instead of an error path.

package vision

import (
	"regexp"
	"strconv"
	"strings"
)

var stageVocabulary = []string{StagePreliminary, StageMiddle, StageFinal}

var observationKeywords = []string{
	"observe", "note", "finding", "indicate", "show", "reveal", "detect",
}

var confidencePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

var markdownFencePattern = regexp.MustCompile("```markdown\\n([\\s\\S]*?)\\n```")

// ExtractStage finds the first stage word present in the reply, case
// insensitive. No match yields StageUnknown.
func ExtractStage(reply string) string {
	lower := strings.ToLower(reply)
	for _, stage := range stageVocabulary {
		if strings.Contains(lower, stage) {
			return stage
		}
	}
	return StageUnknown
}

// ExtractObservations collects, verbatim, every line containing one of the
// observation keywords.
func ExtractObservations(reply string) []string {
	observations := []string{}
	for _, line := range strings.Split(reply, "\n") {
		lower := strings.ToLower(line)
		for _, keyword := range observationKeywords {
			if strings.Contains(lower, keyword) {
				observations = append(observations, strings.TrimSpace(line))
				break
			}
		}
	}
	return observations
}

// ExtractConfidence looks for a percentage figure when the reply mentions
// confidence, and maps it into [0, 1]. Absence yields 0.
func ExtractConfidence(reply string) float64 {
	if !strings.Contains(strings.ToLower(reply), "confidence") {
		return 0.0
	}

	match := confidencePattern.FindStringSubmatch(reply)
	if match == nil {
		return 0.0
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0.0
	}

	confidence := value / 100
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// ExtractMarkdown pulls the content strictly between the ```markdown fence
// markers. When no fenced block is present the raw reply is used as is.
func ExtractMarkdown(reply string) string {
	match := markdownFencePattern.FindStringSubmatch(reply)
	if match == nil {
		return reply
	}
	return match[1]
}
