package timetable

import (
	"testing"

	"msls-backend/internal/modules/timetable/generation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGenerateResultToResponse_Conflicts(t *testing.T) {
	result := &generation.Result{
		Success: false,
		Conflicts: []generation.Conflict{
			{Kind: generation.ConflictUnassigned, Message: "could not place demand", Suggestions: []string{"widen catalog"}},
		},
	}

	resp := GenerateResultToResponse(result, nil)

	assert.False(t, resp.Success)
	assert.Equal(t, 0, resp.LessonCount)
	assert.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "Unassigned", resp.Conflicts[0].Kind)
	assert.Equal(t, []string{"widen catalog"}, resp.Conflicts[0].Suggestions)
}

func TestGenerateResultToResponse_WorkloadUsesTeacherCap(t *testing.T) {
	result := &generation.Result{
		Success: true,
		Lessons: []generation.ScheduledLesson{
			{TeacherID: "t1", ClassID: "c1"},
			{TeacherID: "t1", ClassID: "c1"},
			{TeacherID: "t1", ClassID: "c2"},
		},
	}
	teachers := map[string]generation.TeacherProfile{
		"t1": {ID: "t1", MaxWeeklyPeriods: 6},
	}

	resp := GenerateResultToResponse(result, teachers)

	assert.Len(t, resp.Workload, 1)
	w := resp.Workload[0]
	assert.Equal(t, "t1", w.TeacherID)
	assert.Equal(t, 3, w.ScheduledPeriods)
	assert.Equal(t, 6, w.MaxWeeklyPeriods)
	assert.True(t, w.UtilizationPercent.Equal(decimal.NewFromInt(50)))
}

func TestGenerateResultToResponse_WorkloadFallsBackToDefaultCap(t *testing.T) {
	result := &generation.Result{
		Success: true,
		Lessons: []generation.ScheduledLesson{{TeacherID: "t1", ClassID: "c1"}},
	}

	resp := GenerateResultToResponse(result, map[string]generation.TeacherProfile{})

	assert.Len(t, resp.Workload, 1)
	assert.Equal(t, generation.DefaultMaxWeeklyPeriodsPerTeacher, resp.Workload[0].MaxWeeklyPeriods)
}
