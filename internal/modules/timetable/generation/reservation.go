package generation

// ReservationConfig controls where the Standing-Reservation Placer (§4.6)
// puts each upper-level class's professional-development slot: the same
// Period on every weekday that has a configured standing-activity slot,
// not just a single (Day, Period) pair.
type ReservationConfig struct {
	Period               int
	SlotIDByDay          map[Day]string  // weekday -> catalog slot id for (weekday, Period)
	SubjectID            string          // the CPD placeholder subject
	UpperLevels          map[string]bool // ClassRecord.Level values that receive a reservation
	PlaceholderTeacherID string          // used only if no other teacher is available
}

// AvailableTeacher is a minimal view of a teacher candidate for the
// standing reservation: already assigned to the class this week, or any
// other active, currently-free teacher.
type AvailableTeacher struct {
	ID                string
	AlreadyOnThisClass bool
}

// PlaceStandingReservations reserves the configured slot for every class
// whose level is in cfg.UpperLevels, on every weekday that has a
// configured standing-activity slot (§4.6, §8 invariant 9), unless that
// day's slot is already occupied. Teacher selection order: a teacher
// already assigned to the class and free at that slot, then any other
// free active teacher, then the configured placeholder. Returns the
// reservation lessons and any Configuration warnings (never fatal, §4.6).
func PlaceStandingReservations(idx *OccupancyIndex, classes []ClassRecord, candidates map[string][]AvailableTeacher, cfg ReservationConfig) ([]ScheduledLesson, []Conflict) {
	var lessons []ScheduledLesson
	var warnings []Conflict

	if cfg.SubjectID == "" || cfg.Period < SchedulablePeriodMin || len(cfg.SlotIDByDay) == 0 {
		warnings = append(warnings, Conflict{
			Kind:    ConflictConfiguration,
			Message: "standing-reservation slot is not configured; skipping professional-development placement",
		})
		return lessons, warnings
	}

	for _, class := range classes {
		if !cfg.UpperLevels[class.Level] {
			continue
		}

		for _, day := range Weekdays {
			slotID, ok := cfg.SlotIDByDay[day]
			if !ok {
				continue
			}

			if idx.ClassBusy(class.ID, day, cfg.Period) {
				continue
			}

			teacherID := selectReservationTeacher(idx, candidates[class.ID], day, cfg)
			if teacherID == "" {
				warnings = append(warnings, Conflict{
					Kind:    ConflictConfiguration,
					Message: "no available teacher for the standing reservation on class " + class.ID,
				})
				continue
			}

			idx.Place(teacherID, class.ID, cfg.SubjectID, day, cfg.Period)
			lessons = append(lessons, ScheduledLesson{
				TeacherID:  teacherID,
				ClassID:    class.ID,
				SubjectID:  cfg.SubjectID,
				TimeSlotID: slotID,
				Day:        day,
				Period:     cfg.Period,
				IsStanding: true,
			})
		}
	}

	return lessons, warnings
}

func selectReservationTeacher(idx *OccupancyIndex, candidates []AvailableTeacher, day Day, cfg ReservationConfig) string {
	var firstFreeAny string
	for _, c := range candidates {
		if idx.TeacherBusy(c.ID, day, cfg.Period) {
			continue
		}
		if c.AlreadyOnThisClass {
			return c.ID
		}
		if firstFreeAny == "" {
			firstFreeAny = c.ID
		}
	}
	if firstFreeAny != "" {
		return firstFreeAny
	}
	if cfg.PlaceholderTeacherID != "" && !idx.TeacherBusy(cfg.PlaceholderTeacherID, day, cfg.Period) {
		return cfg.PlaceholderTeacherID
	}
	return ""
}
