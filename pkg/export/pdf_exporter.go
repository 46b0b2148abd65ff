package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Receipt describes the data rendered into an acknowledgement document.
type Receipt struct {
	ReferenceID string
	Title       string
	IssuedAt    string
	Lines       []ReceiptLine
	Footer      string
}

// ReceiptLine is a single label/value row.
type ReceiptLine struct {
	Label string
	Value string
}

// PDFExporter renders application acknowledgements into a one-page PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates the acknowledgement document.
func (e *PDFExporter) Render(r Receipt) ([]byte, error) {
	if r.ReferenceID == "" {
		return nil, fmt.Errorf("receipt requires a reference id")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, strings.ToUpper(r.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Reference: %s", r.ReferenceID), "", 1, "L", false, 0, "")
	if r.IssuedAt != "" {
		pdf.CellFormat(0, 7, fmt.Sprintf("Date: %s", r.IssuedAt), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	for _, line := range r.Lines {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(60, 8, line.Label, "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(120, 8, line.Value, "1", 1, "L", false, 0, "")
	}

	if r.Footer != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, r.Footer, "", "L", false)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}
