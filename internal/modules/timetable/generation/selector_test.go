package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortDistribution_PrefersLeastConcentratedDay(t *testing.T) {
	catalog := buildWeekCatalog()
	idx := NewOccupancyIndex()
	idx.Place("t1", "c1", "math", Monday, 1)
	idx.Place("t1", "c1", "math", Monday, 2)

	demand := LessonDemand{TeacherID: "t1", ClassID: "c1", SubjectID: "eng", PeriodsPerWeek: 1, PreferredSession: SessionAny}
	ordered := SortDistribution(catalog, idx, demand, map[key]bool{})

	require.NotEmpty(t, ordered)
	assert.NotEqual(t, Monday, ordered[0].Day, "Monday already carries load for this teacher/class")
}

func TestSortAvailabilityPriority_PrefersFreeSlots(t *testing.T) {
	catalog := buildWeekCatalog()
	idx := NewOccupancyIndex()
	idx.Place("t1", "other-class", "math", Monday, 1) // teacher busy Monday period 1

	demand := LessonDemand{TeacherID: "t1", ClassID: "c1", SubjectID: "eng", PeriodsPerWeek: 1}
	ordered := SortAvailabilityPriority(catalog, idx, demand, map[key]bool{})

	require.NotEmpty(t, ordered)
	assert.False(t, ordered[0].Day == Monday && ordered[0].Period == 1)
}

func TestReshuffle_IsDeterministicAndPermutes(t *testing.T) {
	catalog := buildWeekCatalog()

	a := Reshuffle(catalog, 2)
	b := Reshuffle(catalog, 2)
	assert.Equal(t, a, b, "same attempt number always yields the same order")

	c := Reshuffle(catalog, 3)
	assert.NotEqual(t, a, c, "different attempt numbers yield different orders")
	assert.Len(t, c, len(catalog))
}

func TestWouldExceedConsecutive(t *testing.T) {
	idx := NewOccupancyIndex()
	idx.Place("t1", "c1", "math", Monday, 1)
	idx.Place("t1", "c1", "math", Monday, 2)

	assert.True(t, idx.WouldExceedConsecutive("c1", "math", Monday, 3))
	assert.False(t, idx.WouldExceedConsecutive("c1", "math", Monday, 5))
}
