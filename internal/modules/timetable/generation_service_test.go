package timetable

import (
	"testing"

	"msls-backend/internal/modules/timetable/generation"

	"github.com/stretchr/testify/assert"
)

func TestScopeInputs_All(t *testing.T) {
	demands := []generation.LessonDemand{{TeacherID: "t1", ClassID: "c1"}, {TeacherID: "t2", ClassID: "c2"}}
	classes := []generation.ClassRecord{{ID: "c1"}, {ID: "c2"}}
	sections := map[string]sectionInfo{"c1": {}, "c2": {}}

	d, c, s := scopeInputs(generation.Scope{Kind: generation.ScopeAll}, demands, classes, sections)

	assert.Len(t, d, 2)
	assert.Len(t, c, 2)
	assert.Len(t, s, 2)
}

func TestScopeInputs_Class(t *testing.T) {
	demands := []generation.LessonDemand{{TeacherID: "t1", ClassID: "c1"}, {TeacherID: "t2", ClassID: "c2"}}
	classes := []generation.ClassRecord{{ID: "c1"}, {ID: "c2"}}
	sections := map[string]sectionInfo{"c1": {}, "c2": {}}

	d, c, s := scopeInputs(generation.Scope{Kind: generation.ScopeClass, Ref: "c1"}, demands, classes, sections)

	assert.Len(t, d, 1)
	assert.Equal(t, "c1", d[0].ClassID)
	assert.Len(t, c, 1)
	assert.Equal(t, "c1", c[0].ID)
	assert.Contains(t, s, "c1")
	assert.NotContains(t, s, "c2")
}

func TestScopeInputs_Teacher(t *testing.T) {
	demands := []generation.LessonDemand{
		{TeacherID: "t1", ClassID: "c1"},
		{TeacherID: "t1", ClassID: "c2"},
		{TeacherID: "t2", ClassID: "c3"},
	}
	classes := []generation.ClassRecord{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}}
	sections := map[string]sectionInfo{"c1": {}, "c2": {}, "c3": {}}

	d, c, s := scopeInputs(generation.Scope{Kind: generation.ScopeTeacher, Ref: "t1"}, demands, classes, sections)

	assert.Len(t, d, 2)
	assert.Len(t, c, 2)
	assert.Len(t, s, 2)
	assert.NotContains(t, s, "c3")
}

func TestScopeInputs_TeacherWithNoDemands(t *testing.T) {
	demands := []generation.LessonDemand{{TeacherID: "t1", ClassID: "c1"}}
	classes := []generation.ClassRecord{{ID: "c1"}}
	sections := map[string]sectionInfo{"c1": {}}

	d, c, s := scopeInputs(generation.Scope{Kind: generation.ScopeTeacher, Ref: "unknown"}, demands, classes, sections)

	assert.Empty(t, d)
	assert.Empty(t, c)
	assert.Empty(t, s)
}
