package timetable

import (
	"bytes"

	"msls-backend/internal/pkg/database/models"

	"github.com/xuri/excelize/v2"
)

var exportDayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// renderTimetableWorkbook lays out a timetable's entries as a Monday-Friday
// by period-number grid, one column per day and one row per distinct
// period number found among its entries.
func renderTimetableWorkbook(tt *models.Timetable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Timetable"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	f.SetCellValue(sheet, "A1", "Period")
	for day := 1; day <= 5; day++ {
		cell, _ := excelize.CoordinatesToCellName(day+1, 1)
		f.SetCellValue(sheet, cell, exportDayNames[day])
	}
	f.SetRowStyle(sheet, 1, 1, headerStyle)

	byPeriodAndDay := make(map[int]map[int]models.TimetableEntry)
	periods := make(map[int]bool)
	for _, e := range tt.Entries {
		if e.PeriodSlot == nil || e.PeriodSlot.PeriodNumber == nil {
			continue
		}
		p := *e.PeriodSlot.PeriodNumber
		periods[p] = true
		if byPeriodAndDay[p] == nil {
			byPeriodAndDay[p] = make(map[int]models.TimetableEntry)
		}
		byPeriodAndDay[p][e.DayOfWeek] = e
	}

	sortedPeriods := sortedKeys(periods)
	for rowIdx, period := range sortedPeriods {
		row := rowIdx + 2
		periodCell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(sheet, periodCell, period)

		for day := 1; day <= 5; day++ {
			cell, _ := excelize.CoordinatesToCellName(day+1, row)
			entry, ok := byPeriodAndDay[period][day]
			if !ok || entry.IsFreePeriod {
				continue
			}
			f.SetCellValue(sheet, cell, entryLabel(entry))
		}
	}

	for day := 1; day <= 6; day++ {
		colName, _ := excelize.ColumnNumberToName(day)
		f.SetColWidth(sheet, colName, colName, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func entryLabel(e models.TimetableEntry) string {
	label := ""
	if e.Subject != nil {
		label = e.Subject.Name
	}
	if e.Staff != nil {
		name := e.Staff.FirstName
		if e.Staff.LastName != "" {
			name += " " + e.Staff.LastName
		}
		if label != "" {
			label += " / "
		}
		label += name
	}
	return label
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
