package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

const (
	sheetSummary = "Resumen"
	sheetRecords = "Registros"
)

// renderXLSX writes the summary sheet and the raw records sheet.
func renderXLSX(rep report.Report, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetRecords); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	// Summary: title, period, then the table from row 4.
	title := fmt.Sprintf("Reporte de asistencia %s a %s",
		rep.Window.Start.Format(validator.DateLayout),
		rep.Window.LastDay().Format(validator.DateLayout),
	)
	if err := f.SetCellValue(sheetSummary, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheetSummary, "A2", "Generado: "+rep.GeneratedAt.Format("2006-01-02 15:04")); err != nil {
		return nil, err
	}
	if err := writeHeader(f, sheetSummary, 4, summaryHeaders, headerStyle); err != nil {
		return nil, err
	}

	row := 5
	if len(rep.Summaries) == 0 {
		if err := f.SetCellValue(sheetSummary, cell(1, row), report.NoticeEmpty); err != nil {
			return nil, err
		}
	}
	for _, s := range rep.Summaries {
		values := []any{s.Username, s.DisplayName(), s.DiasTrabajados, s.TotalTardanzas, s.Hours(), s.DiasVacaciones, s.DiasEnfermedad, s.DiasPermiso}
		if err := f.SetSheetRow(sheetSummary, cell(1, row), &values); err != nil {
			return nil, err
		}
		row++
	}

	// Raw records
	if err := writeHeader(f, sheetRecords, 1, recordHeaders, headerStyle); err != nil {
		return nil, err
	}
	row = 2
	for _, r := range rep.Records {
		rr := toRecordRow(r, loc)
		values := []any{rr.Username, rr.Name, rr.Date, rr.CheckIn, rr.LunchIn, rr.LunchOut, rr.CheckOut, rr.Status, rr.Hours}
		if err := f.SetSheetRow(sheetRecords, cell(1, row), &values); err != nil {
			return nil, err
		}
		row++
	}

	if err := f.SetColWidth(sheetSummary, "A", "B", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetSummary, "C", "H", 16); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetRecords, "A", "B", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetRecords, "C", "I", 16); err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, row int, headers []string, style int) error {
	if err := f.SetSheetRow(sheet, cell(1, row), &headers); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell(1, row), cell(len(headers), row), style)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
