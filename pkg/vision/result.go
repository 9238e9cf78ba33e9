// FILE: pkg/vision/result.go
// PURPOSE: Structured outcome of a scan analysis.

package vision

// Stage vocabulary. Extraction never produces anything outside this set.
const (
	StagePreliminary = "preliminary"
	StageMiddle      = "middle"
	StageFinal       = "final"
	StageUnknown     = "unknown"
)

// Result is the structured analysis of one scan. Immutable once cached.
type Result struct {
	Stage        string   `json:"stage"`
	Observations []string `json:"observations"`
	Confidence   float64  `json:"confidence"`
	RawResponse  string   `json:"raw_response"`
	Markdown     string   `json:"markdown"`
}

// failureResult is what Analyze hands back alongside the error when any
// pipeline step fails. Never cached.
func failureResult() *Result {
	return &Result{
		Stage:        StageUnknown,
		Observations: []string{},
		Confidence:   0.0,
	}
}
