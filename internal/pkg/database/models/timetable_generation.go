// Package models provides database models for the MSLS application.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TeacherAvailability records a teacher's hard scheduling constraints:
// weekdays and periods the teacher can never be placed in, and an optional
// override of the branch's default weekly workload cap.
type TeacherAvailability struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"tenantId"`
	StaffID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"staffId"`

	UnavailableDays    pq.Int32Array `gorm:"type:int[]" json:"unavailableDays"`    // 1=Monday ... 5=Friday
	UnavailablePeriods pq.Int32Array `gorm:"type:int[]" json:"unavailablePeriods"` // period numbers, catalog-wide
	MaxWeeklyPeriods   *int          `gorm:"type:int" json:"maxWeeklyPeriods,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`

	// Relationships
	Staff Staff `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

// TableName returns the table name for TeacherAvailability.
func (TeacherAvailability) TableName() string {
	return "teacher_availabilities"
}

// GenerationRunStatus represents the outcome of a generation run.
type GenerationRunStatus string

const (
	GenerationRunStatusSucceeded GenerationRunStatus = "succeeded"
	GenerationRunStatusPartial   GenerationRunStatus = "partial"
	GenerationRunStatusFailed    GenerationRunStatus = "failed"
)

// GenerationRun is a best-effort audit record of one timetable generation
// invocation. Writing it never blocks the generation response: a failure
// to persist the audit row is logged, not surfaced to the caller.
type GenerationRun struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"tenantId"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index" json:"branchId"`

	ScopeKind string `gorm:"type:varchar(20);not null" json:"scopeKind"`
	ScopeRef  string `gorm:"type:varchar(100)" json:"scopeRef,omitempty"`

	Incremental bool `gorm:"not null;default:false" json:"incremental"`
	Regenerate  bool `gorm:"not null;default:false" json:"regenerate"`

	Status        GenerationRunStatus `gorm:"type:varchar(20);not null" json:"status"`
	ConflictCount int                 `gorm:"not null;default:0" json:"conflictCount"`
	WarningCount  int                 `gorm:"not null;default:0" json:"warningCount"`
	LessonCount   int                 `gorm:"not null;default:0" json:"lessonCount"`

	StartedAt  time.Time  `gorm:"not null" json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`

	TriggeredBy *uuid.UUID `gorm:"type:uuid" json:"triggeredBy,omitempty"`
}

// TableName returns the table name for GenerationRun.
func (GenerationRun) TableName() string {
	return "generation_runs"
}
