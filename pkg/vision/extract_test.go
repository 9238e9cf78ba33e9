package vision

import (
	"reflect"
	"testing"
)

func TestExtractStage(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{name: "preliminary", reply: "This appears to be a Preliminary stage scan.", want: StagePreliminary},
		{name: "middle", reply: "Findings are consistent with a MIDDLE stage.", want: StageMiddle},
		{name: "final", reply: "final stage characteristics observed", want: StageFinal},
		{name: "first match wins", reply: "Not final: the scan shows preliminary and final markers.", want: StagePreliminary},
		{name: "no match", reply: "The scan is inconclusive.", want: StageUnknown},
		{name: "empty reply", reply: "", want: StageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractStage(tt.reply); got != tt.want {
				t.Errorf("ExtractStage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractObservations(t *testing.T) {
	reply := "Stage: middle\nI observe increased density in the upper quadrant.\nNothing unusual elsewhere.\nThe margins indicate irregular growth.\n  Results show calcifications.  "

	got := ExtractObservations(reply)
	want := []string{
		"I observe increased density in the upper quadrant.",
		"The margins indicate irregular growth.",
		"Results show calcifications.",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractObservations() = %v, want %v", got, want)
	}
}

func TestExtractObservationsNoMatches(t *testing.T) {
	got := ExtractObservations("Nothing of interest here.")
	if len(got) != 0 {
		t.Errorf("ExtractObservations() = %v, want empty", got)
	}
}

func TestExtractConfidence(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  float64
	}{
		{name: "plain percentage", reply: "Confidence: 85%", want: 0.85},
		{name: "decimal percentage", reply: "confidence is around 72.5 %", want: 0.725},
		{name: "over one hundred clamps", reply: "confidence 150%", want: 1.0},
		{name: "no confidence word", reply: "About 85% of the tissue is dense.", want: 0.0},
		{name: "confidence without number", reply: "High confidence in this assessment.", want: 0.0},
		{name: "empty reply", reply: "", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractConfidence(tt.reply)
			if got != tt.want {
				t.Errorf("ExtractConfidence() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("ExtractConfidence() = %v, outside [0, 1]", got)
			}
		})
	}
}

func TestExtractMarkdown(t *testing.T) {
	t.Run("fenced block", func(t *testing.T) {
		reply := "Here is the report:\n```markdown\n## Analysis\nContent here.\n```\nDone."
		want := "## Analysis\nContent here."
		if got := ExtractMarkdown(reply); got != want {
			t.Errorf("ExtractMarkdown() = %q, want %q", got, want)
		}
	})

	t.Run("no fence falls back to raw", func(t *testing.T) {
		reply := "## Analysis\nNo fences at all."
		if got := ExtractMarkdown(reply); got != reply {
			t.Errorf("ExtractMarkdown() = %q, want raw reply", got)
		}
	})
}
