package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// ApplicationsDocument describes a student's application-list export.
type ApplicationsDocument struct {
	StudentName string
	Email       string
	Course      string
	Department  string
	GPA         float64
	Entries     []ApplicationEntry
}

// ApplicationEntry is one applied scholarship in the document.
type ApplicationEntry struct {
	Name      string
	Provider  string
	Amount    string
	Deadline  string
	Status    string
	AppliedAt string
}

// PDFExporter renders a student's applications into a PDF document.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates the applications PDF: a title, the student's academic
// block, then each application as a numbered section. Long lists paginate.
func (e *PDFExporter) Render(doc ApplicationsDocument) ([]byte, error) {
	if doc.StudentName == "" {
		return nil, fmt.Errorf("pdf requires a student name")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 15, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 12, "My Scholarship Applications", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Name: %s", doc.StudentName), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Email: %s", doc.Email), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Course: %s", doc.Course), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Department: %s", doc.Department), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("GPA: %.2f", doc.GPA), "", 1, "", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "Applied Scholarships:", "", 1, "", false, 0, "")
	pdf.Ln(2)

	for i, entry := range doc.Entries {
		if pdf.GetY() > 260 {
			pdf.AddPage()
		}

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d. %s", i+1, entry.Name), "", 1, "", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.SetX(25)
		pdf.CellFormat(0, 5, fmt.Sprintf("Provider: %s", entry.Provider), "", 1, "", false, 0, "")
		pdf.SetX(25)
		pdf.CellFormat(0, 5, fmt.Sprintf("Amount: %s", entry.Amount), "", 1, "", false, 0, "")
		pdf.SetX(25)
		pdf.CellFormat(0, 5, fmt.Sprintf("Deadline: %s", entry.Deadline), "", 1, "", false, 0, "")
		pdf.SetX(25)
		pdf.CellFormat(0, 5, fmt.Sprintf("Status: %s", entry.Status), "", 1, "", false, 0, "")
		pdf.SetX(25)
		pdf.CellFormat(0, 5, fmt.Sprintf("Applied on: %s", entry.AppliedAt), "", 1, "", false, 0, "")
		pdf.Ln(4)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
