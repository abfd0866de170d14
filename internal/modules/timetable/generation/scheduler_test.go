package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SingleClassSingleTeacher(t *testing.T) {
	in := Input{
		Catalog: buildWeekCatalog(),
		Demands: []LessonDemand{
			{TeacherID: "t1", ClassID: "c1", SubjectID: "math", PeriodsPerWeek: 5},
			{TeacherID: "t1", ClassID: "c1", SubjectID: "eng", PeriodsPerWeek: 4},
		},
		TeacherByID: map[string]TeacherProfile{
			"t1": activeTeacher("t1"),
		},
		Classes: []ClassRecord{{ID: "c1", Level: "primary"}},
	}

	result := Generate(in)

	assert.True(t, result.Success)
	assert.Empty(t, result.Conflicts)
	assert.Len(t, result.Lessons, 9)
}

func TestGenerate_NoDoubleBookingAcrossClasses(t *testing.T) {
	in := Input{
		Catalog: buildWeekCatalog(),
		Demands: []LessonDemand{
			{TeacherID: "t1", ClassID: "c1", SubjectID: "math", PeriodsPerWeek: 6},
			{TeacherID: "t1", ClassID: "c2", SubjectID: "math", PeriodsPerWeek: 6},
		},
		TeacherByID: map[string]TeacherProfile{
			"t1": activeTeacher("t1"),
		},
		Classes: []ClassRecord{{ID: "c1"}, {ID: "c2"}},
	}

	result := Generate(in)

	require.True(t, result.Success)
	seen := make(map[key]bool)
	for _, l := range result.Lessons {
		k := key{l.Day, l.Period}
		assert.False(t, seen[k], "the shared teacher must never be double-booked across classes")
		seen[k] = true
	}
}

func TestGenerate_InfeasibleDemandReportsConflictWithoutPanicking(t *testing.T) {
	in := Input{
		Catalog: buildWeekCatalog(),
		Demands: []LessonDemand{
			{TeacherID: "t1", ClassID: "c1", SubjectID: "math", PeriodsPerWeek: 40},
		},
		TeacherByID: map[string]TeacherProfile{
			"t1": activeTeacher("t1"),
		},
		Classes: []ClassRecord{{ID: "c1"}},
	}

	result := Generate(in)

	assert.False(t, result.Success)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, ConflictInfeasible, result.Conflicts[0].Kind)
	assert.Empty(t, result.Lessons)
}

func TestGenerate_UnknownTeacherYieldsConfigurationConflictNotPanic(t *testing.T) {
	in := Input{
		Catalog: buildWeekCatalog(),
		Demands: []LessonDemand{
			{TeacherID: "ghost", ClassID: "c1", SubjectID: "math", PeriodsPerWeek: 4},
		},
		TeacherByID: map[string]TeacherProfile{},
		Classes:     []ClassRecord{{ID: "c1"}},
	}

	result := Generate(in)

	assert.False(t, result.Success)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, ConflictConfiguration, result.Conflicts[0].Kind)
}

func TestGenerate_StandingReservationPlacedForUpperLevels(t *testing.T) {
	in := Input{
		Catalog: buildWeekCatalog(),
		Demands: []LessonDemand{
			{TeacherID: "t1", ClassID: "c1", SubjectID: "math", PeriodsPerWeek: 2},
		},
		TeacherByID: map[string]TeacherProfile{
			"t1": activeTeacher("t1"),
		},
		Classes: []ClassRecord{{ID: "c1", Level: "secondary"}},
		Reservation: ReservationConfig{
			Period: 7,
			SlotIDByDay: map[Day]string{
				Monday: "Monday-7", Tuesday: "Tuesday-7", Wednesday: "Wednesday-7",
				Thursday: "Thursday-7", Friday: "Friday-7",
			},
			SubjectID:   "cpd",
			UpperLevels: map[string]bool{"secondary": true},
		},
		ReservationFor: map[string][]AvailableTeacher{
			"c1": {{ID: "t1", AlreadyOnThisClass: true}},
		},
	}

	result := Generate(in)

	require.True(t, result.Success)
	var standing []ScheduledLesson
	for _, l := range result.Lessons {
		if l.IsStanding {
			standing = append(standing, l)
		}
	}
	require.Len(t, standing, 5, "one standing lesson per weekday, per §4.6")
	for _, l := range standing {
		assert.Equal(t, 7, l.Period)
		assert.Equal(t, "cpd", l.SubjectID)
	}
}

func TestGenerate_DeterministicAcrossRuns(t *testing.T) {
	build := func() Input {
		return Input{
			Catalog: buildWeekCatalog(),
			Demands: []LessonDemand{
				{TeacherID: "t1", ClassID: "c1", SubjectID: "math", PeriodsPerWeek: 6},
				{TeacherID: "t2", ClassID: "c1", SubjectID: "eng", PeriodsPerWeek: 4},
				{TeacherID: "t1", ClassID: "c2", SubjectID: "sci", PeriodsPerWeek: 3},
			},
			TeacherByID: map[string]TeacherProfile{
				"t1": activeTeacher("t1"),
				"t2": activeTeacher("t2"),
			},
			Classes: []ClassRecord{{ID: "c1"}, {ID: "c2"}},
		}
	}

	first := Generate(build())
	second := Generate(build())

	assert.Equal(t, first, second, "identical input must always yield an identical schedule")
}
