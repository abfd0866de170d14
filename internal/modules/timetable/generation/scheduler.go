package generation

// Input bundles every record the Scheduler Core needs to run one
// generation. The caller (the timetable module's generation_service.go)
// loads all of it up front; the core performs no I/O of its own (§5).
type Input struct {
	Catalog         []Slot
	Demands         []LessonDemand
	TeacherByID     map[string]TeacherProfile
	Classes         []ClassRecord
	Reservation     ReservationConfig
	ReservationFor  map[string][]AvailableTeacher // classID -> candidate teachers
	ExistingLessons []ScheduledLesson             // already-persisted placements to seed the OccupancyIndex with (scoped runs)
}

// Generate runs the full pipeline of §4.1: feasibility pre-check, demand
// sorting/dedup, per-demand backtracking placement, and finally the
// standing-reservation pass. It is pure and deterministic: the same Input
// always yields the same Result.
func Generate(in Input) Result {
	if conflict := CheckFeasibility(in.Catalog, in.Demands); conflict != nil {
		return Result{Success: false, Conflicts: []Conflict{*conflict}}
	}

	demands := DeduplicateDemands(SortDemands(in.Demands))
	idx := NewOccupancyIndex()
	for _, existing := range in.ExistingLessons {
		idx.Place(existing.TeacherID, existing.ClassID, existing.SubjectID, existing.Day, existing.Period)
	}

	var lessons []ScheduledLesson
	var conflicts []Conflict
	var warnings []Conflict

	for _, d := range demands {
		if err := d.Validate(); err != nil {
			conflicts = append(conflicts, Conflict{
				Kind:    ConflictConfiguration,
				Message: err.Error(),
			})
			continue
		}

		profile, ok := in.TeacherByID[d.TeacherID]
		if !ok || !profile.Active {
			conflicts = append(conflicts, Conflict{
				Kind:    ConflictConfiguration,
				Message: "teacher " + d.TeacherID + " is unknown or inactive; skipping its demand for class " + d.ClassID,
			})
			continue
		}

		placed, conflict, warning := ScheduleDemand(idx, profile, in.Catalog, d)
		lessons = append(lessons, placed...)
		if conflict != nil {
			conflicts = append(conflicts, *conflict)
		}
		if warning != nil {
			warnings = append(warnings, *warning)
		}
	}

	reserved, reservationWarnings := PlaceStandingReservations(idx, in.Classes, in.ReservationFor, in.Reservation)
	lessons = append(lessons, reserved...)
	warnings = append(warnings, reservationWarnings...)

	return Result{
		Success:   len(conflicts) == 0,
		Lessons:   lessons,
		Conflicts: conflicts,
		Warnings:  warnings,
	}
}
