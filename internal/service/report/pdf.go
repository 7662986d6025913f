package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

const (
	pdfRowHeight   = 7
	pdfBottomLimit = 190 // landscape A4 is 210mm tall, keep room for the footer
)

var (
	summaryWidths = []float64{38, 62, 30, 26, 30, 26, 26, 24}
	recordWidths  = []float64{30, 52, 24, 22, 30, 28, 22, 44, 18}
)

// renderPDF lays out the summary table followed by the raw records, repeating headers on every page.
func renderPDF(rep report.Report, loc *time.Location) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.SetAutoPageBreak(false, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Reporte de asistencia"))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Periodo: %s a %s",
		rep.Window.Start.Format(validator.DateLayout),
		rep.Window.LastDay().Format(validator.DateLayout),
	)))
	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 8, tr("Generado: "+rep.GeneratedAt.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	if len(rep.Summaries) == 0 {
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, tr(report.NoticeEmpty))
		pdf.Ln(8)
	} else {
		table(pdf, tr, summaryHeaders, summaryWidths, len(rep.Summaries), func(i int) []string {
			s := rep.Summaries[i]
			return []string{
				s.Username,
				s.DisplayName(),
				fmt.Sprint(s.DiasTrabajados),
				fmt.Sprint(s.TotalTardanzas),
				fmt.Sprintf("%.2f", s.Hours()),
				fmt.Sprint(s.DiasVacaciones),
				fmt.Sprint(s.DiasEnfermedad),
				fmt.Sprint(s.DiasPermiso),
			}
		})
	}

	if len(rep.Records) > 0 {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 10, tr("Registros"))
		pdf.Ln(10)
		table(pdf, tr, recordHeaders, recordWidths, len(rep.Records), func(i int) []string {
			rr := toRecordRow(rep.Records[i], loc)
			return []string{rr.Username, rr.Name, rr.Date, rr.CheckIn, rr.LunchIn, rr.LunchOut, rr.CheckOut, rr.Status, fmt.Sprintf("%.2f", rr.Hours)}
		})
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func table(pdf *gofpdf.Fpdf, tr func(string) string, headers []string, widths []float64, n int, row func(int) []string) {
	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(68, 114, 196)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range headers {
			pdf.CellFormat(widths[i], pdfRowHeight, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(0, 0, 0)
	}

	header()
	for i := 0; i < n; i++ {
		if pdf.GetY()+pdfRowHeight > pdfBottomLimit {
			pdf.AddPage()
			header()
		}
		for j, v := range row(i) {
			pdf.CellFormat(widths[j], pdfRowHeight, tr(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
