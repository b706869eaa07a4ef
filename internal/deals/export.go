package deals

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

var historyColumns = []string{
	"Scored At", "Year", "Make", "Model", "Trim", "Asking Price", "MSRP",
	"Days On Lot", "Score", "Grade", "True Cost", "Likely Offer",
}

func historyRow(r *ScoreRecord) []interface{} {
	return []interface{}{
		r.ScoredAt.Format("2006-01-02 15:04:05"),
		r.VehicleYear, r.VehicleMake, r.Model, r.Trim,
		r.AskingPrice, r.MSRP, r.DaysOnLot, r.Score, r.Grade,
		r.TrueCost, r.LikelyOffer,
	}
}

// exportHistoryCSV renders score history as CSV.
func exportHistoryCSV(records []*ScoreRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(historyColumns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range records {
		row := historyRow(r)
		record := make([]string, len(row))
		for i, val := range row {
			switch v := val.(type) {
			case string:
				record[i] = v
			case int:
				record[i] = strconv.Itoa(v)
			case float64:
				record[i] = strconv.FormatFloat(v, 'f', 2, 64)
			default:
				record[i] = fmt.Sprintf("%v", v)
			}
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// exportHistoryExcel renders score history as a styled Excel workbook.
func exportHistoryExcel(records []*ScoreRecord) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	const sheetName = "Score History"
	file.SetSheetName("Sheet1", sheetName)

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range historyColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheetName, cell, col)
		file.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, r := range records {
		for colIdx, val := range historyRow(r) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			file.SetCellValue(sheetName, cell, val)
		}
	}

	// Freeze the header row
	file.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	if len(records) > 0 {
		lastCol, _ := excelize.CoordinatesToCellName(len(historyColumns), 1)
		file.AutoFilter(sheetName, "A1:"+lastCol, nil)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
