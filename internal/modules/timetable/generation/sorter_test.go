package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortDemands_PeriodCountCategoryFirst(t *testing.T) {
	demands := []LessonDemand{
		{TeacherID: "t1", SubjectID: "math", ClassID: "c1", PeriodsPerWeek: 6},
		{TeacherID: "t2", SubjectID: "art", ClassID: "c1", PeriodsPerWeek: 1},
		{TeacherID: "t3", SubjectID: "hist", ClassID: "c1", PeriodsPerWeek: 3},
	}

	sorted := SortDemands(demands)

	assert.Equal(t, "art", sorted[0].SubjectID, "single-period demands are least flexible and go first")
	assert.Equal(t, "math", sorted[1].SubjectID, "5+ period demands come before 3-4 period demands")
	assert.Equal(t, "hist", sorted[2].SubjectID)
}

func TestSortDemands_VocationalBeforeRegular(t *testing.T) {
	demands := []LessonDemand{
		{TeacherID: "t1", SubjectID: "eng", ClassID: "c1", PeriodsPerWeek: 4, Kind: LessonRegular},
		{TeacherID: "t2", ModuleID: "mod1", ClassID: "c1", PeriodsPerWeek: 4, Kind: LessonVocational, ModuleCategory: ModuleSpecific},
	}

	sorted := SortDemands(demands)

	assert.Equal(t, "mod1", sorted[0].ModuleID)
}

func TestSortDemands_HighLoadSubjectBeforePriority(t *testing.T) {
	demands := []LessonDemand{
		{TeacherID: "t1", SubjectID: "art", ClassID: "c1", PeriodsPerWeek: 4, Priority: 10},
		{TeacherID: "t2", SubjectID: "physics", ClassID: "c1", PeriodsPerWeek: 4, Priority: 1, HighLoadSubject: true},
	}

	sorted := SortDemands(demands)

	assert.Equal(t, "physics", sorted[0].SubjectID, "flagged high-load subjects outrank plain priority")
}

func TestSortDemands_StableTieBreak(t *testing.T) {
	demands := []LessonDemand{
		{TeacherID: "t1", SubjectID: "b", ClassID: "c2", PeriodsPerWeek: 4},
		{TeacherID: "t2", SubjectID: "a", ClassID: "c1", PeriodsPerWeek: 4},
	}

	sorted := SortDemands(demands)

	assert.Equal(t, "c1", sorted[0].ClassID)
	assert.Equal(t, "c2", sorted[1].ClassID)
}

func TestSortDemands_DoesNotMutateInput(t *testing.T) {
	demands := []LessonDemand{
		{TeacherID: "t1", SubjectID: "b", ClassID: "c1", PeriodsPerWeek: 1},
		{TeacherID: "t2", SubjectID: "a", ClassID: "c1", PeriodsPerWeek: 6},
	}
	original := append([]LessonDemand{}, demands...)

	_ = SortDemands(demands)

	assert.Equal(t, original, demands)
}

func TestDeduplicateDemands_FirstWins(t *testing.T) {
	demands := []LessonDemand{
		{TeacherID: "t1", SubjectID: "math", ClassID: "c1", PeriodsPerWeek: 4, Priority: 1},
		{TeacherID: "t1", SubjectID: "math", ClassID: "c1", PeriodsPerWeek: 5, Priority: 99},
	}

	out := DeduplicateDemands(demands)

	assert.Len(t, out, 1)
	assert.Equal(t, 4, out[0].PeriodsPerWeek)
}
