package usecase

import (
	"bytes"
	"fmt"

	"go-applicant-tracker/internal/domain"

	"github.com/xuri/excelize/v2"
)

var rosterHeaders = []string{
	"Rank", "Applicant ID", "Name", "Email", "Job ID", "Assessment ID",
	"Assessment Score", "Practical Score", "Interview Score", "Status", "Application Date",
}

// exportRoster renders a ranked roster as an XLSX workbook.
func exportRoster(sheetName string, attempts []domain.Attempt) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, h := range rosterHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	// Dark blue header with white text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(rosterHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, a := range attempts {
		row := []interface{}{
			rowIdx + 1, a.UserID, a.ApplicantName, a.ApplicantEmail, a.JobID, a.AssessmentID,
			scoreCell(a.AssessmentScore), scoreCell(a.PracticalScore), scoreCell(a.InterviewScore),
			string(a.Status), a.CreatedAt.Format("02/01/2006"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write roster row: %w", err)
		}
	}

	for i := range rosterHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func scoreCell(score *int64) interface{} {
	if score == nil {
		return ""
	}
	return *score
}
