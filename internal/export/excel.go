// Package export renders ranked application lists as Excel workbooks for
// employers who review candidates outside the product.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hireflux/ats-service/internal/fitindex"
	"github.com/hireflux/ats-service/internal/types"
)

// Sheet names in the generated workbook.
const (
	summarySheet      = "Summary"
	rankedSheet       = "Ranked Candidates"
	explanationsSheet = "Explanations"
)

// Fill colors per fit band, and the shared header fill.
const (
	headerFill    = "4472C4"
	excellentFill = "C6EFCE" // fit >= 90
	goodFill      = "FFEB9C" // fit >= 70
	fairFill      = "FFC7CE" // fit >= 50
	poorFill      = "FF9999" // below 50
)

// Meta describes the export context shown on the summary sheet.
type Meta struct {
	JobTitle    string
	GeneratedAt time.Time
}

// Row is one ranked application in the workbook.
type Row struct {
	Rank      int
	Candidate string
	Status    types.ApplicationStatus
	AppliedAt time.Time
	Fit       *types.FitScoreResult // nil when the application is unscored
}

// factorLabels are the ranked-sheet column headers for each factor, in
// canonical factor order.
var factorLabels = map[types.Factor]string{
	types.FactorSkillsMatch:       "Skills",
	types.FactorExperienceLevel:   "Experience",
	types.FactorLocationMatch:     "Location",
	types.FactorCultureFit:        "Culture",
	types.FactorSalaryExpectation: "Salary",
	types.FactorAvailability:      "Availability",
}

// WriteWorkbook builds the ranked-applications workbook and writes it to w.
func WriteWorkbook(w io.Writer, meta Meta, rows []Row) error {
	f, err := Workbook(meta, rows)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Workbook builds the ranked-applications workbook.
func Workbook(meta Meta, rows []Row) (*excelize.File, error) {
	f := excelize.NewFile()

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(rankedSheet); err != nil {
		return nil, fmt.Errorf("failed to create ranked sheet: %w", err)
	}
	if _, err := f.NewSheet(explanationsSheet); err != nil {
		return nil, fmt.Errorf("failed to create explanations sheet: %w", err)
	}

	if err := buildSummarySheet(f, meta, rows); err != nil {
		return nil, fmt.Errorf("failed to build summary sheet: %w", err)
	}
	if err := buildRankedSheet(f, rows); err != nil {
		return nil, fmt.Errorf("failed to build ranked sheet: %w", err)
	}
	if err := buildExplanationsSheet(f, rows); err != nil {
		return nil, fmt.Errorf("failed to build explanations sheet: %w", err)
	}

	return f, nil
}

// thinBorder is the cell border applied to all data cells.
var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
}

func bandStyle(f *excelize.File, fill string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
		Border: thinBorder,
	})
}

// bandFill selects the fill color for a fit index.
func bandFill(fit int) string {
	switch {
	case fit >= 90:
		return excellentFill
	case fit >= 70:
		return goodFill
	case fit >= 50:
		return fairFill
	default:
		return poorFill
	}
}

func buildSummarySheet(f *excelize.File, meta Meta, rows []Row) error {
	_ = f.SetColWidth(summarySheet, "A", "A", 28)
	_ = f.SetColWidth(summarySheet, "B", "B", 50)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	row := 1
	setLabeled := func(label string, value any) {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), label)
		_ = f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), value)
		row++
	}
	setSection := func(title string) {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), title)
		_ = f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), titleStyle)
		_ = f.MergeCell(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
		row++
	}

	setSection("Ranked Applications Report")
	row++

	setLabeled("Job Title:", meta.JobTitle)
	setLabeled("Generated:", meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	setLabeled("Total Applications:", len(rows))

	var (
		excellent, good, fair, poor int
		scored                      int
		sum                         int
		top                         int
	)
	for _, r := range rows {
		if r.Fit == nil {
			continue
		}
		scored++
		fit := r.Fit.Overall
		sum += fit
		if fit > top {
			top = fit
		}
		switch {
		case fit >= 90:
			excellent++
		case fit >= 70:
			good++
		case fit >= 50:
			fair++
		default:
			poor++
		}
	}
	setLabeled("Scored Applications:", scored)
	row++

	setSection("Fit Index Distribution")
	setLabeled("Excellent (90-100):", excellent)
	setLabeled("Good (70-89):", good)
	setLabeled("Fair (50-69):", fair)
	setLabeled("Poor (<50):", poor)
	row++

	if scored > 0 {
		setLabeled("Average Fit Index:", fmt.Sprintf("%.1f", float64(sum)/float64(scored)))
		setLabeled("Top Fit Index:", top)
	}

	return nil
}

func buildRankedSheet(f *excelize.File, rows []Row) error {
	factors := fitindex.Factors()
	headers := []string{"Rank", "Candidate", "Status", "Applied", "Fit Index"}
	for _, factor := range factors {
		headers = append(headers, factorLabels[factor])
	}

	_ = f.SetColWidth(rankedSheet, "A", "A", 8)
	_ = f.SetColWidth(rankedSheet, "B", "B", 30)
	_ = f.SetColWidth(rankedSheet, "C", "C", 14)
	_ = f.SetColWidth(rankedSheet, "D", "D", 18)
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	_ = f.SetColWidth(rankedSheet, "E", lastCol, 12)

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		_ = f.SetCellValue(rankedSheet, cell, h)
		_ = f.SetCellStyle(rankedSheet, cell, cell, header)
	}

	plainStyle, err := f.NewStyle(&excelize.Style{Border: thinBorder})
	if err != nil {
		return err
	}
	// One style per band, created once and reused across rows
	bandStyles := make(map[string]int, 4)
	for _, fill := range []string{excellentFill, goodFill, fairFill, poorFill} {
		style, err := bandStyle(f, fill)
		if err != nil {
			return err
		}
		bandStyles[fill] = style
	}

	for i, r := range rows {
		rowNum := i + 2
		_ = f.SetCellValue(rankedSheet, fmt.Sprintf("A%d", rowNum), r.Rank)
		_ = f.SetCellValue(rankedSheet, fmt.Sprintf("B%d", rowNum), r.Candidate)
		_ = f.SetCellValue(rankedSheet, fmt.Sprintf("C%d", rowNum), string(r.Status))
		_ = f.SetCellValue(rankedSheet, fmt.Sprintf("D%d", rowNum), r.AppliedAt.Format("2006-01-02 15:04"))

		style := plainStyle
		if r.Fit != nil {
			_ = f.SetCellValue(rankedSheet, fmt.Sprintf("E%d", rowNum), r.Fit.Overall)
			for j, factor := range factors {
				cell, err := excelize.CoordinatesToCellName(6+j, rowNum)
				if err != nil {
					return err
				}
				if fs, ok := r.Fit.Breakdown[factor]; ok {
					_ = f.SetCellValue(rankedSheet, cell, fs.Score)
				}
			}
			style = bandStyles[bandFill(r.Fit.Overall)]
		} else {
			_ = f.SetCellValue(rankedSheet, fmt.Sprintf("E%d", rowNum), "not scored")
		}
		_ = f.SetCellStyle(rankedSheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), style)
	}

	if len(rows) > 0 {
		_ = f.AutoFilter(rankedSheet, fmt.Sprintf("A1:%s%d", lastCol, len(rows)+1), []excelize.AutoFilterOptions{})
	}

	// Freeze top row
	_ = f.SetPanes(rankedSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}

func buildExplanationsSheet(f *excelize.File, rows []Row) error {
	_ = f.SetColWidth(explanationsSheet, "A", "A", 8)
	_ = f.SetColWidth(explanationsSheet, "B", "B", 30)
	_ = f.SetColWidth(explanationsSheet, "C", "C", 12)
	_ = f.SetColWidth(explanationsSheet, "D", "D", 70)

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	headers := []string{"Rank", "Candidate", "Type", "Explanation"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		_ = f.SetCellValue(explanationsSheet, cell, h)
		_ = f.SetCellStyle(explanationsSheet, cell, cell, header)
	}

	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    thinBorder,
	})
	if err != nil {
		return err
	}

	rowNum := 2
	writeLine := func(rank int, candidate, kind, text string) {
		_ = f.SetCellValue(explanationsSheet, fmt.Sprintf("A%d", rowNum), rank)
		_ = f.SetCellValue(explanationsSheet, fmt.Sprintf("B%d", rowNum), candidate)
		_ = f.SetCellValue(explanationsSheet, fmt.Sprintf("C%d", rowNum), kind)
		_ = f.SetCellValue(explanationsSheet, fmt.Sprintf("D%d", rowNum), text)
		_ = f.SetCellStyle(explanationsSheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("D%d", rowNum), wrapStyle)
		rowNum++
	}

	for _, r := range rows {
		if r.Fit == nil {
			continue
		}
		for _, s := range r.Fit.Strengths {
			writeLine(r.Rank, r.Candidate, "Strength", s)
		}
		for _, c := range r.Fit.Concerns {
			writeLine(r.Rank, r.Candidate, "Concern", c)
		}
	}

	// Freeze top row
	_ = f.SetPanes(explanationsSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}
