package generation

// buildWeekCatalog returns a standard 5-day, 7-period-a-day schedulable
// catalog with no breaks, used across the engine's test files.
func buildWeekCatalog() []Slot {
	var out []Slot
	for _, d := range Weekdays {
		for p := 1; p <= 7; p++ {
			out = append(out, Slot{
				ID:       d.String() + "-" + itoa(p),
				Day:      d,
				Period:   p,
				IsActive: true,
			})
		}
	}
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

func activeTeacher(id string) TeacherProfile {
	return TeacherProfile{
		ID:                id,
		Active:            true,
		UnavailableDays:   map[Day]bool{},
		UnavailablePeriod: map[int]bool{},
		MaxWeeklyPeriods:  DefaultMaxWeeklyPeriodsPerTeacher,
	}
}
