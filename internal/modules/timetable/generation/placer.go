package generation

// placeOne attempts to place a single period of demand into the first slot
// in ordered (already sorted/excluded-filtered) that both the teacher and
// the class can accept without violating a hard invariant. It returns the
// chosen slot and true on success.
func placeOne(idx *OccupancyIndex, profile TeacherProfile, demand LessonDemand, ordered []Slot, excluded map[key]bool) (Slot, bool) {
	for _, s := range ordered {
		if excluded[key{s.Day, s.Period}] {
			continue
		}
		if idx.TeacherBusy(demand.TeacherID, s.Day, s.Period) {
			continue
		}
		if idx.ClassBusy(demand.ClassID, s.Day, s.Period) {
			continue
		}
		if profile.Unavailable(s.Day, s.Period) {
			continue
		}
		if idx.WouldExceedConsecutive(demand.ClassID, demand.subjectOrModuleID(), s.Day, s.Period) {
			continue
		}
		return s, true
	}
	return Slot{}, false
}

// placeBlock attempts to place two consecutive periods (Period, Period+1)
// on the same day for demand, honoring every hard invariant for both
// periods at once.
func placeBlock(idx *OccupancyIndex, profile TeacherProfile, demand LessonDemand, byDay map[Day][]Slot, excluded map[key]bool) ([2]Slot, bool) {
	for _, d := range Weekdays {
		slots := byDay[d]
		bySlotPeriod := make(map[int]Slot, len(slots))
		for _, s := range slots {
			if s.Schedulable() {
				bySlotPeriod[s.Period] = s
			}
		}
		for period := SchedulablePeriodMin; period < SchedulablePeriodMax; period++ {
			first, ok1 := bySlotPeriod[period]
			second, ok2 := bySlotPeriod[period+1]
			if !ok1 || !ok2 {
				continue
			}
			if excluded[key{d, period}] || excluded[key{d, period + 1}] {
				continue
			}
			if idx.TeacherBusy(demand.TeacherID, d, period) || idx.TeacherBusy(demand.TeacherID, d, period+1) {
				continue
			}
			if idx.ClassBusy(demand.ClassID, d, period) || idx.ClassBusy(demand.ClassID, d, period+1) {
				continue
			}
			if profile.Unavailable(d, period) || profile.Unavailable(d, period+1) {
				continue
			}
			if idx.WouldExceedConsecutive(demand.ClassID, demand.subjectOrModuleID(), d, period, period+1) {
				continue
			}
			return [2]Slot{first, second}, true
		}
	}
	return [2]Slot{}, false
}

// placementPlan is the ordered list of period-counts to place for a
// demand's remaining N periods, per §4.1: prefer blocks of 2, falling back
// to singles for any remainder.
func placementPlan(remaining int) []int {
	var plan []int
	for remaining >= 2 {
		plan = append(plan, 2)
		remaining -= 2
	}
	if remaining == 1 {
		plan = append(plan, 1)
	}
	return plan
}
