// Package report writes the yearly progress workbook.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"lifequest/internal/engine"
)

const (
	SheetSummary  = "Summary"
	SheetDailyXP  = "Daily XP"
	SheetGoals    = "Goals"
	SheetBigGoals = "Big Goals"
	SheetHabits   = "Habits"
)

// FileName is the conventional name for a year's report.
func FileName(year int) string {
	return fmt.Sprintf("year_report_%d.xlsx", year)
}

// Exporter renders an engine snapshot as an xlsx workbook.
type Exporter struct{}

func (Exporter) Export(st *engine.State, year int) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	w := &writer{f: f}
	w.sheet(SheetSummary, []any{"Metric", "Value"}, summaryRows(st, year))
	w.sheet(SheetDailyXP, []any{"Date", "XP delta"}, dailyRows(st, year))
	w.sheet(SheetGoals, []any{"ID", "Title", "Due", "Time", "Size", "Category", "Stat", "Repeat", "Done", "Failed", "Overdue"}, goalRows(st))
	w.sheet(SheetBigGoals, []any{"ID", "Title", "Due", "Done", "Failed", "Note"}, bigGoalRows(st))
	w.sheet(SheetHabits, []any{"ID", "Title", "Days", "Stat", "Completions", "Failures", "Completed on", "Failed on"}, habitRows(st))
	if w.err != nil {
		return nil, w.err
	}

	// NewFile starts with a default sheet we did not fill.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("report: drop default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(SheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("report: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writer keeps the first error so sheet building reads straight through.
type writer struct {
	f      *excelize.File
	header int
	err    error
}

func (w *writer) sheet(name string, header []any, rows [][]any) {
	if w.err != nil {
		return
	}
	if _, err := w.f.NewSheet(name); err != nil {
		w.err = fmt.Errorf("report: new sheet %q: %w", name, err)
		return
	}
	if w.header == 0 {
		style, err := w.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			w.err = fmt.Errorf("report: header style: %w", err)
			return
		}
		w.header = style
	}

	if err := w.f.SetSheetRow(name, "A1", &header); err != nil {
		w.err = fmt.Errorf("report: %s header: %w", name, err)
		return
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := w.f.SetCellStyle(name, "A1", last, w.header); err != nil {
		w.err = fmt.Errorf("report: %s header style: %w", name, err)
		return
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := w.f.SetSheetRow(name, cell, &row); err != nil {
			w.err = fmt.Errorf("report: %s row %d: %w", name, i+2, err)
			return
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := w.f.SetColWidth(name, "A", lastCol, 18); err != nil {
		w.err = fmt.Errorf("report: %s widths: %w", name, err)
	}
}

func summaryRows(st *engine.State, year int) [][]any {
	var done, failed, overdue int
	for _, g := range st.Goals {
		switch {
		case g.Done:
			done++
		case g.Failed:
			failed++
		}
		if g.Overdue {
			overdue++
		}
	}
	var bigDone, bigFailed int
	for _, b := range st.BigGoals {
		if b.Done {
			bigDone++
		}
		if b.Failed {
			bigFailed++
		}
	}
	var habitDone, habitFailed int
	for _, h := range st.Habits {
		habitDone += len(h.Completions)
		habitFailed += len(h.Failures)
	}

	rows := [][]any{
		{"Year", year},
		{"Goals", len(st.Goals)},
		{"Goals done", done},
		{"Goals failed", failed},
		{"Goals overdue", overdue},
		{"Big goals", len(st.BigGoals)},
		{"Big goals done", bigDone},
		{"Big goals failed", bigFailed},
		{"Habits", len(st.Habits)},
		{"Habit completions", habitDone},
		{"Habit failures", habitFailed},
		{"Final XP", st.XP},
		{"Final level", st.Level},
	}
	for _, s := range engine.AllStats {
		rows = append(rows, []any{"Stat: " + string(s), st.Stats[s]})
	}
	return rows
}

// dailyRows lists the XP ledger entries that fall in year, oldest first.
func dailyRows(st *engine.State, year int) [][]any {
	prefix := strconv.Itoa(year) + "-"
	keys := make([]string, 0, len(st.XPLog))
	for k := range st.XPLog {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	rows := make([][]any, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []any{k, st.XPLog[k]})
	}
	return rows
}

func goalRows(st *engine.State) [][]any {
	rows := make([][]any, 0, len(st.Goals))
	for _, g := range st.Goals {
		rows = append(rows, []any{
			g.ID, g.Title, engine.FormatDate(g.Due), g.DueTime, string(g.Size), g.Category,
			string(g.Stat), g.Recurrence.String(), g.Done, g.Failed, g.Overdue,
		})
	}
	return rows
}

func bigGoalRows(st *engine.State) [][]any {
	rows := make([][]any, 0, len(st.BigGoals))
	for _, b := range st.BigGoals {
		rows = append(rows, []any{b.ID, b.Title, engine.FormatDate(b.Due), b.Done, b.Failed, b.Note})
	}
	return rows
}

func habitRows(st *engine.State) [][]any {
	rows := make([][]any, 0, len(st.Habits))
	for _, h := range st.Habits {
		rows = append(rows, []any{
			h.ID, h.Title, engine.FormatWeekdays(h.Weekdays), string(h.Stat),
			len(h.Completions), len(h.Failures),
			strings.Join(h.Completions.Sorted(), ","),
			strings.Join(h.Failures.Sorted(), ","),
		})
	}
	return rows
}
