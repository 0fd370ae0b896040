package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

type sheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]interface{}
}

// ExportSummary renders the summary and stats as an XLSX workbook, one sheet per aggregate
func ExportSummary(summary *Summary, stats *Stats, generatedAt time.Time) ([]byte, error) {
	sheets := []sheet{
		{
			name:    "Stats",
			headers: []string{"Metric", "Value"},
			widths:  []float64{24, 16},
			rows: [][]interface{}{
				{"Generated", generatedAt.UTC().Format(time.RFC3339)},
				{"Total properties", stats.TotalProperties},
				{"Rented properties", stats.RentedProperties},
				{"Total rent", stats.TotalRent},
				{"Total debt", stats.TotalDebt},
				{"Active users", stats.ActiveUsers},
			},
		},
		{name: "Revenue", headers: []string{"Month", "Total"}, widths: []float64{12, 16}},
		{name: "Debt by province", headers: []string{"Province", "Total debt"}, widths: []float64{24, 16}},
		{name: "Occupancy", headers: []string{"Status", "Count"}, widths: []float64{16, 10}},
		{name: "Payment status", headers: []string{"Payment status", "Count"}, widths: []float64{18, 10}},
	}
	for _, r := range summary.RevenueByMonth {
		sheets[1].rows = append(sheets[1].rows, []interface{}{r.Month, r.Total})
	}
	for _, d := range summary.DebtByProvince {
		sheets[2].rows = append(sheets[2].rows, []interface{}{d.Province, d.TotalDebt})
	}
	for _, o := range summary.OccupancyStats {
		sheets[3].rows = append(sheets[3].rows, []interface{}{o.Status, o.Count})
	}
	for _, p := range summary.PaymentStatusStats {
		sheets[4].rows = append(sheets[4].rows, []interface{}{p.PaymentStatus, p.Count})
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}

		if err := writeSheet(f, s, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	header := make([]interface{}, len(s.headers))
	for i, h := range s.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", s.name, err)
	}

	last, err := excelize.CoordinatesToCellName(len(s.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", s.name, err)
	}

	for i, w := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, col, col, w); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, s.name, err)
		}
	}
	return nil
}
