// Package generation implements the weekly timetable generation engine: the
// constraint model, demand/slot ordering policies, the backtracking search,
// the feasibility pre-check, and the standing-reservation placer.
//
// The engine is a pure, single-threaded solver. It owns no database handle
// and performs no I/O; callers load every input up front and persist the
// output afterward (see the timetable module's generation_service.go).
package generation

import "fmt"

// Day is one weekday the school can schedule lessons on. Saturday and
// Sunday are never represented.
type Day int

const (
	Monday Day = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays lists every schedulable day in calendar order.
var Weekdays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

func (d Day) String() string {
	switch d {
	case Monday:
		return "MONDAY"
	case Tuesday:
		return "TUESDAY"
	case Wednesday:
		return "WEDNESDAY"
	case Thursday:
		return "THURSDAY"
	case Friday:
		return "FRIDAY"
	default:
		return "UNKNOWN"
	}
}

// Session is the coarse part of the day a demand prefers.
type Session string

const (
	SessionMorning   Session = "MORNING"
	SessionAfternoon Session = "AFTERNOON"
	SessionAny       Session = "ANY"
)

// LessonKind distinguishes regular academic lessons from vocational ones.
type LessonKind string

const (
	LessonRegular    LessonKind = "REGULAR"
	LessonVocational LessonKind = "VOCATIONAL"
)

// ModuleCategory orders vocational modules among themselves (§4.3 tier 2).
type ModuleCategory string

const (
	ModuleSpecific      ModuleCategory = "SPECIFIC"
	ModuleGeneral       ModuleCategory = "GENERAL"
	ModuleComplementary ModuleCategory = "COMPLEMENTARY"
)

// moduleCategoryRank gives the sort rank for tier 2 of the demand sorter;
// lower sorts earlier.
func moduleCategoryRank(c ModuleCategory) int {
	switch c {
	case ModuleSpecific:
		return 0
	case ModuleGeneral:
		return 1
	case ModuleComplementary:
		return 2
	default:
		return 3
	}
}

// Scope selects what a generation run rebuilds.
type ScopeKind string

const (
	ScopeAll         ScopeKind = "ALL"
	ScopeClass       ScopeKind = "CLASS"
	ScopeTeacher     ScopeKind = "TEACHER"
	ScopeAllClasses  ScopeKind = "ALL_CLASSES"
	ScopeAllTeachers ScopeKind = "ALL_TEACHERS"
)

// Scope is the (kind, ref) pair passed to Generate.
type Scope struct {
	Kind ScopeKind
	Ref  string // class_id or teacher_id; empty for ALL/ALL_CLASSES/ALL_TEACHERS
}

// Options configure a generation run.
type Options struct {
	Incremental bool
	Regenerate  bool
}

// Slot is one addressable (day, period) cell in the school's time-slot
// catalog. Invariant: within a school, (Day, Period) is unique.
type Slot struct {
	ID       string
	Day      Day
	Period   int
	Start    string
	End      string
	IsBreak  bool
	IsCPD    bool
	IsActive bool
}

// Schedulable reports whether a regular lesson may ever target this slot.
func (s Slot) Schedulable() bool {
	return s.IsActive && !s.IsBreak && !s.IsCPD && s.Period >= 1 && s.Period <= 10
}

// key is the (day, period) occupancy key shared by both occupancy maps.
type key struct {
	Day    Day
	Period int
}

func (k key) String() string {
	return fmt.Sprintf("%s-%d", k.Day, k.Period)
}

// TeacherProfile is the read-only teacher record the core consumes.
type TeacherProfile struct {
	ID                string
	Active            bool
	UnavailableDays   map[Day]bool
	UnavailablePeriod map[int]bool
	MaxWeeklyPeriods  int // resolved value: override or DefaultMaxWeeklyPeriods
}

// Unavailable reports whether the teacher is hard-unavailable for the slot.
func (t TeacherProfile) Unavailable(d Day, period int) bool {
	return t.UnavailableDays[d] || t.UnavailablePeriod[period]
}

// ClassRecord is the read-only class record the core consumes.
type ClassRecord struct {
	ID       string
	Level    string
	SchoolID string
}

// LessonDemand is a per-(teacher, subject|module, class) requirement of N
// periods per week. Exactly one of SubjectID/ModuleID is set.
type LessonDemand struct {
	TeacherID         string
	SubjectID         string
	ModuleID          string
	ClassID           string
	ClassLevel        string
	SubjectName       string
	PeriodsPerWeek    int
	Priority          int
	PreferredSession  Session
	Kind              LessonKind
	ModuleCategory    ModuleCategory
	HighLoadSubject   bool // math/physics or other flagged high-priority subject
}

// Key returns the dedup/identity key for a demand (§4.1).
func (d LessonDemand) Key() string {
	ident := d.SubjectID
	if ident == "" {
		ident = d.ModuleID
	}
	return d.TeacherID + "|" + ident + "|" + d.ClassID
}

// subjectOrModuleID returns whichever of SubjectID/ModuleID is set.
func (d LessonDemand) subjectOrModuleID() string {
	if d.SubjectID != "" {
		return d.SubjectID
	}
	return d.ModuleID
}

// Validate enforces the LessonDemand construction invariants.
func (d LessonDemand) Validate() error {
	if d.PeriodsPerWeek <= 0 {
		return fmt.Errorf("lesson demand for teacher %s class %s: periods_per_week must be > 0", d.TeacherID, d.ClassID)
	}
	hasSubject := d.SubjectID != ""
	hasModule := d.ModuleID != ""
	if hasSubject == hasModule {
		return fmt.Errorf("lesson demand for teacher %s class %s: exactly one of subject_id/module_id required", d.TeacherID, d.ClassID)
	}
	return nil
}

// ScheduledLesson is one emitted placement.
type ScheduledLesson struct {
	TeacherID  string
	ClassID    string
	SubjectID  string
	ModuleID   string
	TimeSlotID string
	Day        Day
	Period     int
	IsStanding bool // standing-reservation emission, not a regular lesson
}

// ConflictKind is the error taxonomy of §7 (kinds, not type names).
type ConflictKind string

const (
	ConflictInfeasible    ConflictKind = "Infeasible"
	ConflictUnassigned    ConflictKind = "Unassigned"
	ConflictWorkload      ConflictKind = "Workload"
	ConflictConfiguration ConflictKind = "Configuration"
	ConflictPersistence   ConflictKind = "Persistence"
)

// Conflict is one entry of the Conflict Log.
type Conflict struct {
	Kind        ConflictKind
	Message     string
	Suggestions []string
}

// Result is the core's return value (§4.1, §6).
type Result struct {
	Success   bool
	Lessons   []ScheduledLesson
	Conflicts []Conflict
	Warnings  []Conflict
}

// Configuration constants (§6).
const (
	MaxDailyPeriodsPerTeacher        = 10
	DefaultMaxWeeklyPeriodsPerTeacher = 50
	MaxConsecutiveSameSubject        = 2
	MaxBacktrackAttemptsPerDemand    = 3
	SchedulablePeriodMin             = 1
	SchedulablePeriodMax             = 10
)
