package generation

import "sort"

// candidate is one schedulable slot under consideration for a demand.
type candidate struct {
	slot            Slot
	teacherDayCount int
	classDayCount   int
	freeSlotsOnDay  int
	concentration   int
	subjectUsedDay  bool
}

// catalogByDay groups the schedulable slots of a catalog by weekday, for
// distribution mode's free-slots-on-day count and for block placement.
func catalogByDay(catalog []Slot) map[Day][]Slot {
	byDay := make(map[Day][]Slot)
	for _, s := range catalog {
		if s.Schedulable() {
			byDay[s.Day] = append(byDay[s.Day], s)
		}
	}
	return byDay
}

func sessionOf(period int) Session {
	if period <= 4 {
		return SessionMorning
	}
	return SessionAfternoon
}

func matchesSession(s Session, period int) bool {
	return s == SessionAny || s == sessionOf(period)
}

// buildCandidates computes per-slot concentration stats for every
// schedulable, non-excluded slot in the catalog. Slots where the teacher or
// class is already busy are kept; placeOne skips them later. freeSlotsOnDay
// counts the day's schedulable slots where both teacher and class are free.
func buildCandidates(catalog []Slot, idx *OccupancyIndex, demand LessonDemand, excluded map[key]bool) []candidate {
	byDay := catalogByDay(catalog)
	var out []candidate
	for _, s := range catalog {
		if !s.Schedulable() {
			continue
		}
		if excluded[key{s.Day, s.Period}] {
			continue
		}
		free := 0
		for _, ds := range byDay[s.Day] {
			if !idx.TeacherBusy(demand.TeacherID, ds.Day, ds.Period) && !idx.ClassBusy(demand.ClassID, ds.Day, ds.Period) {
				free++
			}
		}
		teacherDay := idx.teacherSet(demand.TeacherID).dayCount(s.Day)
		classDay := idx.classSet(demand.ClassID).dayCount(s.Day)
		out = append(out, candidate{
			slot:            s,
			teacherDayCount: teacherDay,
			classDayCount:   classDay,
			freeSlotsOnDay:  free,
			concentration:   teacherDay + classDay - free,
			subjectUsedDay:  idx.SubjectUsedDay(demand.ClassID, demand.subjectOrModuleID(), s.Day),
		})
	}
	return out
}

// SortDistribution orders candidate slots by §4.4 "distribution mode":
// minimize concentration, then (for high-load demands) prefer days the
// subject hasn't used yet, then more free slots, matching preferred
// session, earlier period, lexicographic day.
func SortDistribution(catalog []Slot, idx *OccupancyIndex, demand LessonDemand, excluded map[key]bool) []Slot {
	cands := buildCandidates(catalog, idx, demand, excluded)
	highLoad := demand.PeriodsPerWeek >= 5

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.concentration != b.concentration {
			return a.concentration < b.concentration
		}
		if highLoad && a.subjectUsedDay != b.subjectUsedDay {
			return !a.subjectUsedDay
		}
		if a.freeSlotsOnDay != b.freeSlotsOnDay {
			return a.freeSlotsOnDay > b.freeSlotsOnDay
		}
		am, bm := matchesSession(demand.PreferredSession, a.slot.Period), matchesSession(demand.PreferredSession, b.slot.Period)
		if am != bm {
			return am
		}
		if a.slot.Period != b.slot.Period {
			return a.slot.Period < b.slot.Period
		}
		return a.slot.Day < b.slot.Day
	})

	out := make([]Slot, len(cands))
	for i, c := range cands {
		out[i] = c.slot
	}
	return out
}

// SortAvailabilityPriority orders candidate slots by §4.4
// "availability-priority mode": used for single-period fallbacks and
// force-placement. Prefers slots where both teacher and class are free,
// then MORNING, then earlier period.
func SortAvailabilityPriority(catalog []Slot, idx *OccupancyIndex, demand LessonDemand, excluded map[key]bool) []Slot {
	type avail struct {
		slot  Slot
		score int // (teacher_busy?1:0) + (class_busy?1:0)
	}
	var cands []avail
	for _, s := range catalog {
		if !s.Schedulable() {
			continue
		}
		if excluded[key{s.Day, s.Period}] {
			continue
		}
		score := 0
		if idx.TeacherBusy(demand.TeacherID, s.Day, s.Period) {
			score++
		}
		if idx.ClassBusy(demand.ClassID, s.Day, s.Period) {
			score++
		}
		cands = append(cands, avail{slot: s, score: score})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.score != b.score {
			return a.score < b.score
		}
		am, bm := a.slot.Period <= 4, b.slot.Period <= 4 // prefer MORNING
		if am != bm {
			return am
		}
		if a.slot.Period != b.slot.Period {
			return a.slot.Period < b.slot.Period
		}
		return a.slot.Day < b.slot.Day
	})

	out := make([]Slot, len(cands))
	for i, c := range cands {
		out[i] = c.slot
	}
	return out
}

// Reshuffle returns a deterministic permutation of slots seeded by the
// backtrack attempt number (§4.2, §9 open question). Attempt 0 keeps the
// sorted order unchanged; each later attempt rotates the slice by
// 7*attempt positions and, on even attempts, reverses the rotated slice.
// This avoids any RNG while still escaping the previous attempt's exact
// ordering.
func Reshuffle(slots []Slot, attempt int) []Slot {
	n := len(slots)
	if n < 2 || attempt == 0 {
		return slots
	}
	offset := (attempt * 7) % n
	out := make([]Slot, n)
	for i := 0; i < n; i++ {
		out[i] = slots[(i+offset)%n]
	}
	if attempt%2 == 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
