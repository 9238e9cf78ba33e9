// FILE: pkg/dataset/reader.go
// PURPOSE: Tabular file reading. Produces a small preview sample (first rows +
//          column typing) that the insight generator and document export consume.

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ai-assistant-be/pkg/fault"
)

// SampleRows is how many data rows a sample keeps.
const SampleRows = 4

type Column struct {
	Name string `json:"name"`
	Type string `json:"type"` // "integer" | "float" | "boolean" | "string"
}

// Sample is a read-only preview of an uploaded tabular file.
type Sample struct {
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// RecordCount returns the number of rows held by the sample.
func (s *Sample) RecordCount() int {
	return len(s.Rows)
}

// ColumnNames returns the column names in order.
func (s *Sample) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Render prints the sample as an aligned text block for prompt embedding.
func (s *Sample) Render() string {
	var b strings.Builder
	b.WriteString(strings.Join(s.ColumnNames(), " | "))
	b.WriteString("\n")
	for _, row := range s.Rows {
		b.WriteString(strings.Join(row, " | "))
		b.WriteString("\n")
	}
	return b.String()
}

// ColumnInfo renders "- name: type" lines for prompt embedding.
func (s *Sample) ColumnInfo() string {
	lines := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		lines[i] = fmt.Sprintf("- %s: %s", c.Name, c.Type)
	}
	return strings.Join(lines, "\n")
}

// ReadSampleFile reads a CSV or Excel file from disk.
func ReadSampleFile(path string) (*Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fault.Wrap(fault.Input, "cannot open file", err)
	}
	defer f.Close()

	return ReadSample(f, filepath.Ext(path))
}

// ReadSample reads a CSV or Excel stream. ext decides the parser and must
// include the leading dot.
func ReadSample(r io.Reader, ext string) (*Sample, error) {
	switch strings.ToLower(ext) {
	case ".csv":
		return readCSV(r)
	case ".xlsx", ".xls":
		return readExcel(r)
	default:
		return nil, fault.New(fault.Input, "Unsupported file format. Please upload a CSV or Excel file.")
	}
}

func readCSV(r io.Reader) (*Sample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fault.Wrap(fault.Input, "cannot read CSV header", err)
	}

	var rows [][]string
	for len(rows) < SampleRows {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fault.Wrap(fault.Input, "cannot read CSV row", err)
		}
		rows = append(rows, padRow(record, len(header)))
	}

	return buildSample(header, rows), nil
}

func readExcel(r io.Reader) (*Sample, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fault.Wrap(fault.Input, "cannot open Excel file", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fault.New(fault.Input, "Excel file has no sheets")
	}

	all, err := f.GetRows(sheet)
	if err != nil {
		return nil, fault.Wrap(fault.Input, "cannot read Excel rows", err)
	}
	if len(all) == 0 {
		return nil, fault.New(fault.Input, "Excel sheet is empty")
	}

	header := all[0]
	var rows [][]string
	for _, record := range all[1:] {
		if len(rows) == SampleRows {
			break
		}
		rows = append(rows, padRow(record, len(header)))
	}

	return buildSample(header, rows), nil
}

func padRow(record []string, width int) []string {
	if len(record) >= width {
		return record[:width]
	}
	padded := make([]string, width)
	copy(padded, record)
	return padded
}

func buildSample(header []string, rows [][]string) *Sample {
	columns := make([]Column, len(header))
	for i, name := range header {
		columns[i] = Column{Name: strings.TrimSpace(name), Type: inferType(rows, i)}
	}
	return &Sample{Columns: columns, Rows: rows}
}

// inferType picks the narrowest type every non-empty value in the column fits.
func inferType(rows [][]string, col int) string {
	isInt, isFloat, isBool := true, true, true
	seen := false

	for _, row := range rows {
		v := strings.TrimSpace(row[col])
		if v == "" {
			continue
		}
		seen = true
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			isFloat = false
		}
		if _, err := strconv.ParseBool(v); err != nil {
			isBool = false
		}
	}

	switch {
	case !seen:
		return "string"
	case isInt:
		return "integer"
	case isFloat:
		return "float"
	case isBool:
		return "boolean"
	default:
		return "string"
	}
}
