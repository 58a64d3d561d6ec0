// Package export renders requirements as a spreadsheet download.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rdboard/rd-tracker-backend/internal/requirements/domain"
)

const SheetName = "R&D Projects"

var header = []any{"id", "title", "description", "stage", "priority", "assignee", "due_date", "created_at", "updated_at"}

// FileName is the download name for an export taken at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("RD_Projects_%d.xlsx", t.UnixMilli())
}

// WriteWorkbook writes one header row followed by one row per requirement, in
// the order given.
func WriteWorkbook(w io.Writer, reqs []domain.Requirement) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, r := range reqs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			r.ID,
			r.Title,
			r.Description,
			string(r.Stage),
			string(r.Priority),
			r.Assignee,
			r.DueDate,
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
