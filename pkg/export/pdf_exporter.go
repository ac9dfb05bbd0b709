package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/campusd/course-planner-api/internal/models"
)

var pdfColumns = []struct {
	header string
	width  float64
}{
	{"Time", 35},
	{"Course", 30},
	{"Section", 30},
	{"Room", 30},
	{"Instructors", 65},
}

// PDFExporter renders a schedule's weekly grids into a printable document,
// one term per page.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render produces the PDF for both term views.
func (e *PDFExporter) Render(fall, winter models.TermWeek) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)

	e.renderTerm(pdf, models.TermFall.Display(), fall)
	e.renderTerm(pdf, models.TermWinter.Display(), winter)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render schedule pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) renderTerm(pdf *gofpdf.Fpdf, title string, week models.TermWeek) {
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	for i, day := range models.Weekdays {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, day.Display(), "", 1, "L", false, 0, "")

		if len(week[i]) == 0 {
			pdf.SetFont("Arial", "I", 9)
			pdf.CellFormat(0, 6, "no classes", "", 1, "L", false, 0, "")
			pdf.Ln(2)
			continue
		}

		pdf.SetFont("Arial", "B", 9)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, col.header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, entry := range week[i] {
			values := []string{
				entry.Slot.TimeRange(),
				entry.Course.Code,
				entry.Section.ID,
				entry.Slot.Room(entry.Course.Term),
				entry.Section.InstructorLine(),
			}
			for j, col := range pdfColumns {
				pdf.CellFormat(col.width, 6, values[j], "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(3)
	}
}
