package generation

import "fmt"

// remediationSuggestions is the fixed set of remedies offered with every
// Infeasible conflict (§4.5).
var remediationSuggestions = []string{
	"Add more schedulable time slots to the catalog",
	"Reduce the periods-per-week demanded for the affected class or teacher",
	"Activate currently inactive time slots",
}

// CheckFeasibility runs the fast arithmetic pre-check of §4.5 before any
// placement is attempted. It returns the first violation found, or nil if
// the demand set is arithmetically feasible.
func CheckFeasibility(catalog []Slot, demands []LessonDemand) *Conflict {
	schedulable := 0
	for _, s := range catalog {
		if s.Schedulable() {
			schedulable++
		}
	}

	totalDemand := 0
	perClass := make(map[string]int)
	perTeacher := make(map[string]int)
	for _, d := range demands {
		totalDemand += d.PeriodsPerWeek
		perClass[d.ClassID] += d.PeriodsPerWeek
		perTeacher[d.TeacherID] += d.PeriodsPerWeek
	}

	if totalDemand > schedulable {
		return &Conflict{
			Kind:        ConflictInfeasible,
			Message:     fmt.Sprintf("total demand of %d periods exceeds %d schedulable slots in the week", totalDemand, schedulable),
			Suggestions: remediationSuggestions,
		}
	}

	// Deterministic iteration: classes/teachers are walked in the order
	// demands first introduce them, keeping the "first violation" choice
	// reproducible across runs (§5, §8.8).
	var classOrder, teacherOrder []string
	seenClass := make(map[string]bool)
	seenTeacher := make(map[string]bool)
	for _, d := range demands {
		if !seenClass[d.ClassID] {
			seenClass[d.ClassID] = true
			classOrder = append(classOrder, d.ClassID)
		}
		if !seenTeacher[d.TeacherID] {
			seenTeacher[d.TeacherID] = true
			teacherOrder = append(teacherOrder, d.TeacherID)
		}
	}

	for _, classID := range classOrder {
		if perClass[classID] > schedulable {
			return &Conflict{
				Kind:        ConflictInfeasible,
				Message:     fmt.Sprintf("class %s demands %d periods but only %d schedulable slots exist per week", classID, perClass[classID], schedulable),
				Suggestions: remediationSuggestions,
			}
		}
	}

	for _, teacherID := range teacherOrder {
		if perTeacher[teacherID] > schedulable {
			return &Conflict{
				Kind:        ConflictInfeasible,
				Message:     fmt.Sprintf("teacher %s demands %d periods but only %d schedulable slots exist per week", teacherID, perTeacher[teacherID], schedulable),
				Suggestions: remediationSuggestions,
			}
		}
	}

	return nil
}
