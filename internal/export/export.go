// Package export writes the displayed question list to a spreadsheet.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/trivia-browser/internal/browser"
	"github.com/SAP-F-2025/trivia-browser/internal/directory"
)

const SheetName = "Questions"

var header = []interface{}{"ID", "Question", "Answer", "Category", "Difficulty"}

// FileName names an export of s taken at t
func FileName(s browser.ViewState, t time.Time) string {
	var scope string
	switch s.Mode {
	case browser.ModeByCategory:
		scope = fmt.Sprintf("category-%d", s.CategoryID)
	case browser.ModeBySearch:
		scope = "search"
	default:
		scope = fmt.Sprintf("page-%d", s.Page)
	}
	return fmt.Sprintf("questions-%s-%s.xlsx", scope, t.Format("20060102-150405"))
}

// WriteView writes one row per displayed question under a header row.
// Categories missing from dir get an empty label.
func WriteView(path string, s browser.ViewState, dir directory.Directory) error {
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fmt.Errorf("export path %q must end in .xlsx", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "E1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "C", 60); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	for i, q := range s.Questions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		label, _ := dir.Label(q.Category)
		row := []interface{}{q.ID, q.Question, q.Answer, label, q.Difficulty}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write question %d: %w", q.ID, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
