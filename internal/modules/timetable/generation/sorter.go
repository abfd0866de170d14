package generation

import "sort"

// periodCountCategory buckets a demand's weekly period count into the
// three tiers of §4.3 tier 1. Lower rank sorts earlier (hardest first).
func periodCountCategory(periodsPerWeek int) int {
	switch {
	case periodsPerWeek <= 2:
		return 0
	case periodsPerWeek >= 5:
		return 1
	default: // 3-4
		return 2
	}
}

// HighLoadSubjects is a set of subject/module ids flagged as high-load
// (§4.3 tier 3: math/physics and similar). SortDemands does not consult
// it; tier 3 reads each demand's LessonDemand.HighLoadSubject flag.
type HighLoadSubjects map[string]bool

// SortDemands orders demands least-flexible-first per §4.3. The sort is
// stable, so a fixed input list always yields the same output (§5, §8.8).
func SortDemands(demands []LessonDemand) []LessonDemand {
	out := make([]LessonDemand, len(demands))
	copy(out, demands)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		if ca, cb := periodCountCategory(a.PeriodsPerWeek), periodCountCategory(b.PeriodsPerWeek); ca != cb {
			return ca < cb
		}

		// Tier 2: vocational before regular.
		if av, bv := a.Kind == LessonVocational, b.Kind == LessonVocational; av != bv {
			return av
		}
		if a.Kind == LessonVocational && b.Kind == LessonVocational {
			if ra, rb := moduleCategoryRank(a.ModuleCategory), moduleCategoryRank(b.ModuleCategory); ra != rb {
				return ra < rb
			}
		}
		if am, bm := a.PreferredSession == SessionMorning, b.PreferredSession == SessionMorning; am != bm {
			return am
		}

		// Tier 3: flagged high-load subjects (math/physics) first.
		if a.HighLoadSubject != b.HighLoadSubject {
			return a.HighLoadSubject
		}

		// Tier 4: explicit priority, higher first.
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}

		// Tier 5: total weekly periods, higher first.
		if a.PeriodsPerWeek != b.PeriodsPerWeek {
			return a.PeriodsPerWeek > b.PeriodsPerWeek
		}

		// Tier 6: stable tie-breaker, lexicographic by (class_id, subject_or_module_id).
		if a.ClassID != b.ClassID {
			return a.ClassID < b.ClassID
		}
		return a.subjectOrModuleID() < b.subjectOrModuleID()
	})

	return out
}

// DeduplicateDemands drops later occurrences sharing the same
// (teacher_id, subject_id|module_id, class_id) key; the first wins (§4.1).
func DeduplicateDemands(demands []LessonDemand) []LessonDemand {
	seen := make(map[string]bool, len(demands))
	out := make([]LessonDemand, 0, len(demands))
	for _, d := range demands {
		k := d.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, d)
	}
	return out
}
