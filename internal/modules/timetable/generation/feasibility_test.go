package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFeasibility_WithinCapacity(t *testing.T) {
	catalog := buildWeekCatalog()
	demands := []LessonDemand{
		{TeacherID: "t1", SubjectID: "math", ClassID: "c1", PeriodsPerWeek: 5},
	}

	assert.Nil(t, CheckFeasibility(catalog, demands))
}

func TestCheckFeasibility_ClassOverDemanded(t *testing.T) {
	catalog := buildWeekCatalog() // 35 schedulable slots
	demands := []LessonDemand{
		{TeacherID: "t1", SubjectID: "math", ClassID: "c1", PeriodsPerWeek: 20},
		{TeacherID: "t2", SubjectID: "eng", ClassID: "c1", PeriodsPerWeek: 20},
	}

	conflict := CheckFeasibility(catalog, demands)

	require.NotNil(t, conflict)
	assert.Equal(t, ConflictInfeasible, conflict.Kind)
	assert.NotEmpty(t, conflict.Suggestions)
}

func TestCheckFeasibility_TeacherOverDemanded(t *testing.T) {
	catalog := buildWeekCatalog()
	demands := []LessonDemand{
		{TeacherID: "t1", SubjectID: "math", ClassID: "c1", PeriodsPerWeek: 20},
		{TeacherID: "t1", SubjectID: "sci", ClassID: "c2", PeriodsPerWeek: 20},
	}

	conflict := CheckFeasibility(catalog, demands)

	require.NotNil(t, conflict)
	assert.Equal(t, ConflictInfeasible, conflict.Kind)
}

func TestCheckFeasibility_IgnoresUnschedulableSlots(t *testing.T) {
	catalog := []Slot{
		{ID: "s1", Day: Monday, Period: 1, IsActive: true},
		{ID: "s2", Day: Monday, Period: 2, IsActive: false}, // inactive, not schedulable
		{ID: "s3", Day: Monday, Period: 8, IsBreak: true},   // inactive break slot, not schedulable
	}
	demands := []LessonDemand{
		{TeacherID: "t1", SubjectID: "math", ClassID: "c1", PeriodsPerWeek: 2},
	}

	conflict := CheckFeasibility(catalog, demands)

	require.NotNil(t, conflict, "only one schedulable slot exists for a 2-period demand")
}
