package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleDayReservationConfig(d Day, period int, subjectID string, upperLevels map[string]bool) ReservationConfig {
	return ReservationConfig{
		Period:      period,
		SlotIDByDay: map[Day]string{d: d.String() + "-slot"},
		SubjectID:   subjectID,
		UpperLevels: upperLevels,
	}
}

func TestPlaceStandingReservations_SkipsLowerLevels(t *testing.T) {
	idx := NewOccupancyIndex()
	classes := []ClassRecord{{ID: "c1", Level: "primary"}}
	cfg := singleDayReservationConfig(Friday, 7, "cpd", map[string]bool{"secondary": true})

	lessons, warnings := PlaceStandingReservations(idx, classes, nil, cfg)

	assert.Empty(t, lessons)
	assert.Empty(t, warnings)
}

func TestPlaceStandingReservations_SkipsAlreadyOccupiedSlot(t *testing.T) {
	idx := NewOccupancyIndex()
	idx.Place("other", "c1", "math", Friday, 7)
	classes := []ClassRecord{{ID: "c1", Level: "secondary"}}
	cfg := singleDayReservationConfig(Friday, 7, "cpd", map[string]bool{"secondary": true})

	lessons, _ := PlaceStandingReservations(idx, classes, map[string][]AvailableTeacher{"c1": {{ID: "t1"}}}, cfg)

	assert.Empty(t, lessons, "a slot already occupied for the class must not be overwritten")
}

func TestPlaceStandingReservations_PrefersTeacherAlreadyOnClass(t *testing.T) {
	idx := NewOccupancyIndex()
	classes := []ClassRecord{{ID: "c1", Level: "secondary"}}
	cfg := singleDayReservationConfig(Friday, 7, "cpd", map[string]bool{"secondary": true})
	candidates := map[string][]AvailableTeacher{
		"c1": {{ID: "t-other"}, {ID: "t-class", AlreadyOnThisClass: true}},
	}

	lessons, warnings := PlaceStandingReservations(idx, classes, candidates, cfg)

	require.Len(t, lessons, 1)
	assert.Empty(t, warnings)
	assert.Equal(t, "t-class", lessons[0].TeacherID)
}

func TestPlaceStandingReservations_FallsBackToPlaceholder(t *testing.T) {
	idx := NewOccupancyIndex()
	classes := []ClassRecord{{ID: "c1", Level: "secondary"}}
	cfg := singleDayReservationConfig(Friday, 7, "cpd", map[string]bool{"secondary": true})
	cfg.PlaceholderTeacherID = "placeholder"

	lessons, warnings := PlaceStandingReservations(idx, classes, nil, cfg)

	require.Len(t, lessons, 1)
	assert.Empty(t, warnings)
	assert.Equal(t, "placeholder", lessons[0].TeacherID)
}

func TestPlaceStandingReservations_MissingConfigWarns(t *testing.T) {
	idx := NewOccupancyIndex()
	classes := []ClassRecord{{ID: "c1", Level: "secondary"}}
	cfg := ReservationConfig{UpperLevels: map[string]bool{"secondary": true}}

	lessons, warnings := PlaceStandingReservations(idx, classes, nil, cfg)

	assert.Empty(t, lessons)
	require.Len(t, warnings, 1)
	assert.Equal(t, ConflictConfiguration, warnings[0].Kind)
}

func TestPlaceStandingReservations_OnePerConfiguredWeekday(t *testing.T) {
	idx := NewOccupancyIndex()
	classes := []ClassRecord{{ID: "c1", Level: "secondary"}}
	cfg := ReservationConfig{
		Period: 7,
		SlotIDByDay: map[Day]string{
			Monday: "mon-7", Tuesday: "tue-7", Wednesday: "wed-7", Thursday: "thu-7", Friday: "fri-7",
		},
		SubjectID:   "cpd",
		UpperLevels: map[string]bool{"secondary": true},
	}
	candidates := map[string][]AvailableTeacher{"c1": {{ID: "t1", AlreadyOnThisClass: true}}}

	lessons, warnings := PlaceStandingReservations(idx, classes, candidates, cfg)

	require.Len(t, lessons, 5, "one standing lesson for every configured weekday slot")
	assert.Empty(t, warnings)
	seenDays := make(map[Day]bool)
	for _, l := range lessons {
		assert.Equal(t, "t1", l.TeacherID)
		assert.Equal(t, 7, l.Period)
		seenDays[l.Day] = true
	}
	assert.Len(t, seenDays, 5)
}

func TestPlaceStandingReservations_OnlyConfiguredWeekdaysReserved(t *testing.T) {
	idx := NewOccupancyIndex()
	classes := []ClassRecord{{ID: "c1", Level: "secondary"}}
	cfg := ReservationConfig{
		Period:      7,
		SlotIDByDay: map[Day]string{Monday: "mon-7", Wednesday: "wed-7"},
		SubjectID:   "cpd",
		UpperLevels: map[string]bool{"secondary": true},
	}
	candidates := map[string][]AvailableTeacher{"c1": {{ID: "t1", AlreadyOnThisClass: true}}}

	lessons, warnings := PlaceStandingReservations(idx, classes, candidates, cfg)

	require.Len(t, lessons, 2)
	assert.Empty(t, warnings)
}
