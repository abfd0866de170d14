package generation

import "sort"

// occupancySet is the set of (day, period) keys taken by one teacher or
// class. A plain map keeps lookups and structural copies O(n) in the
// number of entries actually occupied, which is always small (<= 50).
type occupancySet map[key]bool

func (s occupancySet) has(d Day, period int) bool {
	return s[key{d, period}]
}

func (s occupancySet) add(d Day, period int) {
	s[key{d, period}] = true
}

func (s occupancySet) clone() occupancySet {
	out := make(occupancySet, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

// dayCount returns how many periods are occupied on the given day.
func (s occupancySet) dayCount(d Day) int {
	n := 0
	for k := range s {
		if k.Day == d {
			n++
		}
	}
	return n
}

// workload tracks a single teacher's scheduled-period counters.
type workload struct {
	perDay map[Day]int
	weekly int
}

func newWorkload() *workload {
	return &workload{perDay: make(map[Day]int)}
}

func (w *workload) clone() *workload {
	out := &workload{perDay: make(map[Day]int, len(w.perDay)), weekly: w.weekly}
	for d, n := range w.perDay {
		out.perDay[d] = n
	}
	return out
}

func (w *workload) record(d Day) {
	w.perDay[d]++
	w.weekly++
}

// subjectSpread tracks, per (class, subject-or-module), which periods on
// each day are already occupied by that subject. It backs both the Slot
// Selector's high-load day-spread rule (§4.4) and the consecutive-periods
// cap (§4.1, §8.5).
type subjectSpread map[Day]map[int]bool

func (s subjectSpread) clone() subjectSpread {
	out := make(subjectSpread, len(s))
	for d, periods := range s {
		cp := make(map[int]bool, len(periods))
		for p := range periods {
			cp[p] = true
		}
		out[d] = cp
	}
	return out
}

func (s subjectSpread) usedDay(d Day) bool {
	return len(s[d]) > 0
}

func (s subjectSpread) periodsOn(d Day) []int {
	periods := make([]int, 0, len(s[d]))
	for p := range s[d] {
		periods = append(periods, p)
	}
	sort.Ints(periods)
	return periods
}

func (s subjectSpread) mark(d Day, period int) {
	m, ok := s[d]
	if !ok {
		m = make(map[int]bool)
		s[d] = m
	}
	m[period] = true
}

// OccupancyIndex is the two co-maintained teacher/class occupancy maps
// (§2, §3 "OccupancyMap") plus the per-teacher Workload Meter. It is owned
// exclusively by one generation run (§5: no process-wide state).
type OccupancyIndex struct {
	teacherSlots map[string]occupancySet
	classSlots   map[string]occupancySet
	teacherLoad  map[string]*workload
	spread       map[string]subjectSpread // key: classID+"|"+subjectOrModuleID
}

// NewOccupancyIndex returns an empty index.
func NewOccupancyIndex() *OccupancyIndex {
	return &OccupancyIndex{
		teacherSlots: make(map[string]occupancySet),
		classSlots:   make(map[string]occupancySet),
		teacherLoad:  make(map[string]*workload),
		spread:       make(map[string]subjectSpread),
	}
}

func (idx *OccupancyIndex) teacherSet(teacherID string) occupancySet {
	s, ok := idx.teacherSlots[teacherID]
	if !ok {
		s = make(occupancySet)
		idx.teacherSlots[teacherID] = s
	}
	return s
}

func (idx *OccupancyIndex) classSet(classID string) occupancySet {
	s, ok := idx.classSlots[classID]
	if !ok {
		s = make(occupancySet)
		idx.classSlots[classID] = s
	}
	return s
}

func (idx *OccupancyIndex) load(teacherID string) *workload {
	w, ok := idx.teacherLoad[teacherID]
	if !ok {
		w = newWorkload()
		idx.teacherLoad[teacherID] = w
	}
	return w
}

func (idx *OccupancyIndex) spreadFor(classID, subjectOrModuleID string) subjectSpread {
	k := classID + "|" + subjectOrModuleID
	s, ok := idx.spread[k]
	if !ok {
		s = make(subjectSpread)
		idx.spread[k] = s
	}
	return s
}

// TeacherBusy reports whether the teacher already has a lesson at (d, period).
func (idx *OccupancyIndex) TeacherBusy(teacherID string, d Day, period int) bool {
	return idx.teacherSet(teacherID).has(d, period)
}

// ClassBusy reports whether the class already has a lesson at (d, period).
func (idx *OccupancyIndex) ClassBusy(classID string, d Day, period int) bool {
	return idx.classSet(classID).has(d, period)
}

// WeeklyLoad returns the teacher's current weekly scheduled-period count.
func (idx *OccupancyIndex) WeeklyLoad(teacherID string) int {
	return idx.load(teacherID).weekly
}

// DailyLoad returns the teacher's current scheduled-period count for a day.
func (idx *OccupancyIndex) DailyLoad(teacherID string, d Day) int {
	return idx.load(teacherID).perDay[d]
}

// Place marks (d, period) occupied for both teacher and class, records the
// teacher's workload, and marks the subject-spread entry. It never
// validates constraints; the caller must have already checked them
// (invariants 1-3 of §3).
func (idx *OccupancyIndex) Place(teacherID, classID, subjectOrModuleID string, d Day, period int) {
	idx.teacherSet(teacherID).add(d, period)
	idx.classSet(classID).add(d, period)
	idx.load(teacherID).record(d)
	idx.spreadFor(classID, subjectOrModuleID).mark(d, period)
}

// SubjectUsedDay reports whether (classID, subjectOrModuleID) has already
// been placed on day d, for the Slot Selector's high-load spread rule.
func (idx *OccupancyIndex) SubjectUsedDay(classID, subjectOrModuleID string, d Day) bool {
	return idx.spreadFor(classID, subjectOrModuleID).usedDay(d)
}

// WouldExceedConsecutive reports whether adding newPeriods (1 or 2
// consecutive periods) to (classID, subjectOrModuleID) on day d would
// create a run of more than MaxConsecutiveSameSubject consecutive periods.
func (idx *OccupancyIndex) WouldExceedConsecutive(classID, subjectOrModuleID string, d Day, newPeriods ...int) bool {
	existing := idx.spreadFor(classID, subjectOrModuleID).periodsOn(d)
	all := append(append([]int{}, existing...), newPeriods...)
	sort.Ints(all)

	run := 1
	for i := 1; i < len(all); i++ {
		if all[i] == all[i-1] {
			continue // duplicate, ignore
		}
		if all[i] == all[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > MaxConsecutiveSameSubject {
			return true
		}
	}
	return false
}

// snapshot is a structural copy of only the affected teacher's and class's
// occupancy sets, the teacher's workload, and the subject-spread entries
// keyed under this classID — bounded memory per retry (§9 design notes),
// not a copy of the whole OccupancyIndex.
type snapshot struct {
	teacherID   string
	classID     string
	teacherSet  occupancySet
	classSet    occupancySet
	teacherLoad *workload
	spread      map[string]subjectSpread
}

// Snapshot captures the state a single demand's placement can touch.
func (idx *OccupancyIndex) Snapshot(teacherID, classID string) snapshot {
	spread := make(map[string]subjectSpread)
	prefix := classID + "|"
	for k, s := range idx.spread {
		if len(k) < len(prefix) || k[:len(prefix)] != prefix {
			continue
		}
		spread[k] = s.clone()
	}
	return snapshot{
		teacherID:   teacherID,
		classID:     classID,
		teacherSet:  idx.teacherSet(teacherID).clone(),
		classSet:    idx.classSet(classID).clone(),
		teacherLoad: idx.load(teacherID).clone(),
		spread:      spread,
	}
}

// Restore rolls the index back to a previously captured snapshot, touching
// only the teacher/class/subject-spread entries the snapshot recorded.
func (idx *OccupancyIndex) Restore(snap snapshot) {
	idx.teacherSlots[snap.teacherID] = snap.teacherSet
	idx.classSlots[snap.classID] = snap.classSet
	idx.teacherLoad[snap.teacherID] = snap.teacherLoad

	prefix := snap.classID + "|"
	for k := range idx.spread {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(idx.spread, k)
		}
	}
	for k, s := range snap.spread {
		idx.spread[k] = s
	}
}
