package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleDemand_PlacesAllPeriods(t *testing.T) {
	catalog := buildWeekCatalog()
	idx := NewOccupancyIndex()
	demand := LessonDemand{TeacherID: "t1", ClassID: "c1", SubjectID: "math", PeriodsPerWeek: 5}

	lessons, conflict, warning := ScheduleDemand(idx, activeTeacher("t1"), catalog, demand)

	require.Nil(t, conflict)
	assert.Nil(t, warning)
	assert.Len(t, lessons, 5)
	assert.Equal(t, 5, idx.WeeklyLoad("t1"))
}

func TestScheduleDemand_NeverExceedsConsecutiveCap(t *testing.T) {
	catalog := buildWeekCatalog()
	idx := NewOccupancyIndex()
	demand := LessonDemand{TeacherID: "t1", ClassID: "c1", SubjectID: "math", PeriodsPerWeek: 3}

	lessons, conflict, _ := ScheduleDemand(idx, activeTeacher("t1"), catalog, demand)

	require.Nil(t, conflict)
	require.Len(t, lessons, 3)

	byDay := make(map[Day][]int)
	for _, l := range lessons {
		byDay[l.Day] = append(byDay[l.Day], l.Period)
	}
	for d, periods := range byDay {
		assert.LessOrEqual(t, len(periods), MaxConsecutiveSameSubject, "day %s got more periods than the placement plan ever schedules together", d)
	}
}

func TestScheduleDemand_UnassignedWhenTeacherFullyUnavailable(t *testing.T) {
	catalog := buildWeekCatalog()
	idx := NewOccupancyIndex()
	profile := activeTeacher("t1")
	for _, d := range Weekdays {
		profile.UnavailableDays[d] = true
	}
	demand := LessonDemand{TeacherID: "t1", ClassID: "c1", SubjectID: "math", PeriodsPerWeek: 1}

	lessons, conflict, _ := ScheduleDemand(idx, profile, catalog, demand)

	require.NotNil(t, conflict)
	assert.Equal(t, ConflictUnassigned, conflict.Kind)
	assert.Empty(t, lessons)
	assert.Equal(t, 0, idx.WeeklyLoad("t1"), "a failed demand must leave no partial placements behind")
}

func TestScheduleDemand_ForcePlacementBypassesWeeklyCapOnly(t *testing.T) {
	catalog := buildWeekCatalog()
	idx := NewOccupancyIndex()
	profile := activeTeacher("t1")
	profile.MaxWeeklyPeriods = 1

	first := LessonDemand{TeacherID: "t1", ClassID: "c1", SubjectID: "math", PeriodsPerWeek: 1}
	_, conflict, _ := ScheduleDemand(idx, profile, catalog, first)
	require.Nil(t, conflict)

	second := LessonDemand{TeacherID: "t1", ClassID: "c2", SubjectID: "eng", PeriodsPerWeek: 1}
	lessons, conflict, warning := ScheduleDemand(idx, profile, catalog, second)

	require.Nil(t, conflict)
	require.Len(t, lessons, 1)
	require.NotNil(t, warning)
	assert.Equal(t, ConflictWorkload, warning.Kind)
}
