package generation

// ScheduleDemand is the Backtrack Manager of §4.2. It places every period
// of demand, retrying with a reshuffled slot order up to
// MaxBacktrackAttemptsPerDemand times before falling back to a last-resort
// force placement. It returns the lessons placed and, on total failure, the
// Conflict that should go in the Conflict Log.
func ScheduleDemand(idx *OccupancyIndex, profile TeacherProfile, catalog []Slot, demand LessonDemand) ([]ScheduledLesson, *Conflict, *Conflict) {
	excluded := make(map[key]bool)

	for attempt := 0; attempt < MaxBacktrackAttemptsPerDemand; attempt++ {
		snap := idx.Snapshot(demand.TeacherID, demand.ClassID)

		lessons, ok := tryPlaceAll(idx, profile, catalog, demand, excluded, attempt)
		if ok {
			return lessons, nil, nil
		}

		// Attempt failed partway: undo every period it placed and retry
		// with a reshuffled ordering (§4.2, §9 open question).
		idx.Restore(snap)
	}

	// Exhausted ordinary attempts. Force-place with availability-priority
	// ordering, bypassing only the soft weekly-workload cap (never the
	// hard invariants checked inside placeOne/placeBlock).
	snap := idx.Snapshot(demand.TeacherID, demand.ClassID)
	lessons, ok := forcePlaceAll(idx, profile, catalog, demand, excluded)
	if ok {
		warning := &Conflict{
			Kind:    ConflictWorkload,
			Message: "teacher " + demand.TeacherID + " exceeded its configured weekly workload cap to place class " + demand.ClassID + "'s lessons",
		}
		return lessons, nil, warning
	}
	idx.Restore(snap)

	return nil, &Conflict{
		Kind:    ConflictUnassigned,
		Message: "could not place all " + demand.subjectOrModuleID() + " periods for class " + demand.ClassID + " with teacher " + demand.TeacherID,
		Suggestions: []string{
			"Relax the teacher's unavailability constraints",
			"Add schedulable slots on additional days",
			"Reassign the lesson to a less-loaded teacher",
		},
	}, nil
}

// tryPlaceAll places every period of demand using the ordinary
// distribution-mode ordering (reshuffled by attempt), honoring the soft
// weekly cap. It returns false, leaving the caller to restore the snapshot,
// if any period of the plan cannot be placed.
func tryPlaceAll(idx *OccupancyIndex, profile TeacherProfile, catalog []Slot, demand LessonDemand, excluded map[key]bool, attempt int) ([]ScheduledLesson, bool) {
	plan := placementPlan(demand.PeriodsPerWeek)
	byDay := catalogByDay(catalog)

	var lessons []ScheduledLesson
	for _, chunk := range plan {
		if profile.MaxWeeklyPeriods > 0 && idx.WeeklyLoad(demand.TeacherID)+chunk > profile.MaxWeeklyPeriods {
			return nil, false
		}

		if chunk == 2 {
			block, ok := placeBlock(idx, profile, demand, byDay, excluded)
			if !ok {
				// No block fits: place the chunk's two periods as singles.
				for i := 0; i < 2; i++ {
					ordered := Reshuffle(SortDistribution(catalog, idx, demand, excluded), attempt)
					single, ok := placeOne(idx, profile, demand, ordered, excluded)
					if !ok {
						return nil, false
					}
					lessons = append(lessons, commit(idx, demand, single))
				}
				continue
			}
			lessons = append(lessons, commit(idx, demand, block[0]), commit(idx, demand, block[1]))
			continue
		}

		ordered := Reshuffle(SortDistribution(catalog, idx, demand, excluded), attempt)
		single, ok := placeOne(idx, profile, demand, ordered, excluded)
		if !ok {
			return nil, false
		}
		lessons = append(lessons, commit(idx, demand, single))
	}

	return lessons, true
}

// forcePlaceAll is the last-resort pass of §4.1: availability-priority
// ordering, one period at a time, bypassing the soft weekly-workload cap.
// It still enforces every hard invariant (double-booking, schedulability,
// unavailability, consecutive-period cap).
func forcePlaceAll(idx *OccupancyIndex, profile TeacherProfile, catalog []Slot, demand LessonDemand, excluded map[key]bool) ([]ScheduledLesson, bool) {
	var lessons []ScheduledLesson
	remaining := demand.PeriodsPerWeek
	for remaining > 0 {
		ordered := SortAvailabilityPriority(catalog, idx, demand, excluded)
		single, ok := placeOne(idx, profile, demand, ordered, excluded)
		if !ok {
			return nil, false
		}
		lessons = append(lessons, commit(idx, demand, single))
		excluded[key{single.Day, single.Period}] = true
		remaining--
	}
	return lessons, true
}

func commit(idx *OccupancyIndex, demand LessonDemand, s Slot) ScheduledLesson {
	idx.Place(demand.TeacherID, demand.ClassID, demand.subjectOrModuleID(), s.Day, s.Period)
	return ScheduledLesson{
		TeacherID:  demand.TeacherID,
		ClassID:    demand.ClassID,
		SubjectID:  demand.SubjectID,
		ModuleID:   demand.ModuleID,
		TimeSlotID: s.ID,
		Day:        s.Day,
		Period:     s.Period,
	}
}
