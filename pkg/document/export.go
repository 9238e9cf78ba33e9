// FILE: pkg/document/export.go
// PURPOSE: Report assembly for the save intent. The content is delivered
//          either inline (service mode) or as a file write (console mode),
//          never both.

package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ai-assistant-be/pkg/dataset"
	"ai-assistant-be/pkg/fault"
)

// Document is an exported report ready for delivery.
type Document struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
}

// Build assembles a report from the last assistant response plus, when a
// tabular sample is held, its record-count/column summary. The filename is
// derived from the current unix timestamp.
func Build(lastResponse string, sample *dataset.Sample) *Document {
	var b strings.Builder

	b.WriteString("Analysis Report\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	b.WriteString(lastResponse)

	if sample != nil {
		b.WriteString("\n\nData Summary:\n")
		b.WriteString(fmt.Sprintf("Total Records: %d\n", sample.RecordCount()))
		b.WriteString(fmt.Sprintf("Columns: %s\n", strings.Join(sample.ColumnNames(), ", ")))
	}

	return &Document{
		Content:  b.String(),
		Filename: fmt.Sprintf("analysis_report_%d.txt", time.Now().Unix()),
	}
}

// WriteFile persists the document under dir and returns the full path.
func (d *Document) WriteFile(dir string) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fault.Wrap(fault.Input, "cannot create export directory", err)
		}
	}

	path := filepath.Join(dir, d.Filename)
	if err := os.WriteFile(path, []byte(d.Content), 0o644); err != nil {
		return "", fault.Wrap(fault.Input, "cannot write document", err)
	}

	return path, nil
}
