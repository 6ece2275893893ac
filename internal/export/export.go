// Package export writes a projected task list as JSON, CSV or PDF.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"todo/internal/task"
	"todo/internal/view"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat parses a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string { return "." + string(f) }

// Document is the JSON export shape.
type Document struct {
	Filter  task.Filter `json:"filter"`
	Counts  view.Counts `json:"counts"`
	Summary string      `json:"summary,omitempty"`
	Tasks   []Entry     `json:"tasks"`
}

// Entry is one exported task.
type Entry struct {
	Number      int     `json:"number"`
	ID          task.ID `json:"id"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
}

// NewDocument converts a projection to its export shape.
func NewDocument(p view.Projection) Document {
	doc := Document{
		Filter:  p.Filter,
		Counts:  p.Counts,
		Summary: p.Summary,
		Tasks:   make([]Entry, 0, len(p.Rows)),
	}
	for _, r := range p.Rows {
		doc.Tasks = append(doc.Tasks, Entry{
			Number:      r.Number,
			ID:          r.Task.ID,
			Description: r.Task.Description,
			Completed:   r.Task.Completed,
		})
	}
	return doc
}

// Write encodes p to w in format f.
func Write(w io.Writer, f Format, p view.Projection) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(p))
	case FormatCSV:
		return writeCSV(w, p)
	case FormatPDF:
		return writePDF(w, p)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

func writeCSV(w io.Writer, p view.Projection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"number", "id", "description", "status"}); err != nil {
		return err
	}
	for _, r := range p.Rows {
		if err := cw.Write([]string{
			strconv.Itoa(r.Number),
			string(r.Task.ID),
			r.Task.Description,
			r.Task.Status(),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, p view.Projection) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("To-Do List", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, fmt.Sprintf("To-Do List (%s)", p.Filter.Label()))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	if p.Summary != "" {
		pdf.Cell(40, 6, p.Summary)
		pdf.Ln(8)
	}
	if p.Empty {
		pdf.MultiCell(0, 6, p.EmptyMessage, "0", "L", false)
	}
	for _, r := range p.Rows {
		mark := "[ ]"
		if r.Task.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%d. %s %s", r.Number, mark, r.Task.Description)
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}
	return pdf.Output(w)
}
