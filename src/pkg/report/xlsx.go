package report

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
	"github.com/xuri/excelize/v2"

	"transcript-ocr/src/pkg/transcript"
	"transcript-ocr/src/pkg/util"
)

const (
	DefaultOutputDir = "results"
	sheetName        = "Sheet1"
	fileSuffix       = "_result.xlsx"
)

// Header is the column order of every produced spreadsheet.
var Header = []string{"Semester", "Month/Year", "Code", "Description", "Credit", "Grade", "SGPA", "CGPA"}

// ReportRow is one row of a produced spreadsheet, as read back by ReadReport.
type ReportRow struct {
	transcript.Subject
	SGPA float64 `json:"sgpa"`
	CGPA float64 `json:"cgpa"`
}

// OutputPath returns <outputDir>/<regNo>_result.xlsx.
func OutputPath(outputDir string, regNo string) string {
	if strings.TrimSpace(outputDir) == "" {
		outputDir = DefaultOutputDir
	}
	return filepath.Join(outputDir, regNo+fileSuffix)
}

/*
WriteReport writes one spreadsheet row per subject into
<outputDir>/<regNo>_result.xlsx, with SGPA and CGPA repeated on every row.

The output directory is created if needed and an existing file is replaced.
An empty subjects slice still produces a header-only sheet; callers that
consider that a failure must check before calling.
*/
func WriteReport(subjects []transcript.Subject, regNo string, sgpa float64, cgpa float64, outputDir string) (outputPath string, e *xerr.Error) {
	outputPath = OutputPath(outputDir, regNo)

	e = util.EnsureOutputDirectory(filepath.Dir(outputPath))
	if e != nil {
		return "", e
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	e = writeRow(f, 1, stringsToCells(Header))
	if e != nil {
		return "", e
	}

	for i, subject := range subjects {
		row := []interface{}{
			subject.Semester,
			subject.MonthYear,
			subject.Code,
			subject.Description,
			subject.Credit,
			subject.Grade,
			sgpa,
			cgpa,
		}
		e = writeRow(f, i+2, row)
		if e != nil {
			return "", e
		}
	}

	saveErr := f.SaveAs(outputPath)
	if saveErr != nil {
		e = xerr.NewError(saveErr, "save spreadsheet", outputPath)
		return "", e
	}

	tl.Log(
		tl.Info1, palette.Green, "Saved %s rows to '%s'",
		fmt.Sprintf("%d", len(subjects)), outputPath,
	)

	return outputPath, nil
}

func writeRow(f *excelize.File, rowNumber int, cells []interface{}) (e *xerr.Error) {
	cellName, nameErr := excelize.CoordinatesToCellName(1, rowNumber)
	if nameErr != nil {
		return xerr.NewError(nameErr, "build cell name", fmt.Sprintf("row %d", rowNumber))
	}

	setErr := f.SetSheetRow(sheetName, cellName, &cells)
	if setErr != nil {
		return xerr.NewError(setErr, "write spreadsheet row", cellName)
	}

	return nil
}

func stringsToCells(values []string) []interface{} {
	cells := make([]interface{}, 0, len(values))
	for _, v := range values {
		cells = append(cells, v)
	}
	return cells
}

/*
ReadReport reads a spreadsheet produced by WriteReport back into rows.

The header row is checked against Header; a mismatch or a non-numeric SGPA /
CGPA cell is returned as a *xerr.Error.
*/
func ReadReport(path string) (rows []ReportRow, e *xerr.Error) {
	f, openErr := excelize.OpenFile(path)
	if openErr != nil {
		return nil, xerr.NewError(openErr, "open spreadsheet", path)
	}
	defer func() {
		_ = f.Close()
	}()

	cellRows, rowsErr := f.GetRows(sheetName)
	if rowsErr != nil {
		return nil, xerr.NewError(rowsErr, "read spreadsheet rows", path)
	}
	if len(cellRows) == 0 || strings.Join(cellRows[0], ",") != strings.Join(Header, ",") {
		err := fmt.Errorf("unexpected header row")
		return nil, xerr.NewError(err, "check spreadsheet header", path)
	}

	rows = make([]ReportRow, 0, len(cellRows)-1)
	for i, cells := range cellRows[1:] {
		// GetRows trims trailing empty cells.
		padded := make([]string, len(Header))
		copy(padded, cells)

		sgpa, sgpaErr := strconv.ParseFloat(padded[6], 64)
		if sgpaErr != nil {
			return nil, xerr.NewError(sgpaErr, "parse SGPA cell", fmt.Sprintf("%s row %d", path, i+2))
		}
		cgpa, cgpaErr := strconv.ParseFloat(padded[7], 64)
		if cgpaErr != nil {
			return nil, xerr.NewError(cgpaErr, "parse CGPA cell", fmt.Sprintf("%s row %d", path, i+2))
		}

		rows = append(rows, ReportRow{
			Subject: transcript.Subject{
				Semester:    padded[0],
				MonthYear:   padded[1],
				Code:        padded[2],
				Description: padded[3],
				Credit:      padded[4],
				Grade:       padded[5],
			},
			SGPA: sgpa,
			CGPA: cgpa,
		})
	}

	return rows, nil
}
