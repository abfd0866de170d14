package timetable

import (
	"msls-backend/internal/modules/timetable/generation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GenerateTimetableRequest requests one generation run for a branch's
// academic year. Scope narrows the run to one class or teacher, per
// spec.md §6's optional scope-selection surface; a nil Scope rebuilds the
// whole branch.
type GenerateTimetableRequest struct {
	BranchID       uuid.UUID     `json:"branchId" binding:"required"`
	AcademicYearID uuid.UUID     `json:"academicYearId" binding:"required"`
	Scope          *ScopeRequest `json:"scope,omitempty"`
	Incremental    bool          `json:"incremental,omitempty"`
	Regenerate     bool          `json:"regenerate,omitempty"`
}

// ScopeRequest narrows a generation run to one class or teacher.
type ScopeRequest struct {
	Kind string `json:"kind" binding:"required,oneof=all class teacher"`
	ID   string `json:"id,omitempty"`
}

// toEngineScope converts the request's scope into the engine's ScopeKind
// vocabulary. A nil or "all" scope rebuilds everything.
func (r *GenerateTimetableRequest) toEngineScope() generation.Scope {
	if r.Scope == nil {
		return generation.Scope{Kind: generation.ScopeAll}
	}
	switch r.Scope.Kind {
	case "class":
		return generation.Scope{Kind: generation.ScopeClass, Ref: r.Scope.ID}
	case "teacher":
		return generation.Scope{Kind: generation.ScopeTeacher, Ref: r.Scope.ID}
	default:
		return generation.Scope{Kind: generation.ScopeAll}
	}
}

// ConflictResponse mirrors one generation.Conflict entry.
type ConflictResponse struct {
	Kind        string   `json:"kind"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// WorkloadResponse reports one teacher's post-run Workload Meter reading.
// UtilizationPercent is scheduled/cap expressed as an exact decimal, the
// way the teacher's salary/payroll modules report fractional figures
// instead of float64.
type WorkloadResponse struct {
	TeacherID          string          `json:"teacherId"`
	ScheduledPeriods   int             `json:"scheduledPeriods"`
	MaxWeeklyPeriods   int             `json:"maxWeeklyPeriods"`
	UtilizationPercent decimal.Decimal `json:"utilizationPercent"`
}

// GenerateTimetableResponse reports the outcome of a generation run.
type GenerateTimetableResponse struct {
	Success     bool               `json:"success"`
	LessonCount int                `json:"lessonCount"`
	Conflicts   []ConflictResponse `json:"conflicts,omitempty"`
	Warnings    []ConflictResponse `json:"warnings,omitempty"`
	Workload    []WorkloadResponse `json:"workload,omitempty"`
}

// GenerateResultToResponse converts a generation.Result into its API shape.
// teachers supplies each demand's resolved weekly cap for the Workload
// Meter readout; it is the same map the engine was run with.
func GenerateResultToResponse(result *generation.Result, teachers map[string]generation.TeacherProfile) GenerateTimetableResponse {
	resp := GenerateTimetableResponse{
		Success:     result.Success,
		LessonCount: len(result.Lessons),
	}
	for _, c := range result.Conflicts {
		resp.Conflicts = append(resp.Conflicts, ConflictResponse{
			Kind: string(c.Kind), Message: c.Message, Suggestions: c.Suggestions,
		})
	}
	for _, w := range result.Warnings {
		resp.Warnings = append(resp.Warnings, ConflictResponse{
			Kind: string(w.Kind), Message: w.Message, Suggestions: w.Suggestions,
		})
	}

	scheduled := make(map[string]int)
	for _, l := range result.Lessons {
		scheduled[l.TeacherID]++
	}
	resp.Workload = make([]WorkloadResponse, 0, len(scheduled))
	for teacherID, count := range scheduled {
		weeklyCap := generation.DefaultMaxWeeklyPeriodsPerTeacher
		if profile, ok := teachers[teacherID]; ok && profile.MaxWeeklyPeriods > 0 {
			weeklyCap = profile.MaxWeeklyPeriods
		}
		pct := decimal.Zero
		if weeklyCap > 0 {
			pct = decimal.NewFromInt(int64(count)).
				DivRound(decimal.NewFromInt(int64(weeklyCap)), 4).
				Mul(decimal.NewFromInt(100))
		}
		resp.Workload = append(resp.Workload, WorkloadResponse{
			TeacherID:          teacherID,
			ScheduledPeriods:   count,
			MaxWeeklyPeriods:   weeklyCap,
			UtilizationPercent: pct,
		})
	}
	return resp
}
