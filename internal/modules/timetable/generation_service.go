package timetable

import (
	"context"
	"time"

	"msls-backend/internal/modules/timetable/generation"
	"msls-backend/internal/pkg/config"
	"msls-backend/internal/pkg/database/models"
	"msls-backend/internal/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerationService is the thin I/O driver around the pure generation
// engine: it loads every input the engine needs, runs it, persists the
// output, and records a best-effort audit row. The engine itself
// (package generation) never touches the database.
type GenerationService struct {
	repo *GenerationRepository
	cfg  config.TimetableConfig
}

// NewGenerationService creates a new generation service.
func NewGenerationService(repo *GenerationRepository, cfg config.TimetableConfig) *GenerationService {
	return &GenerationService{repo: repo, cfg: cfg}
}

// GenerateRequest scopes one generation run. Scope narrows the run to one
// class or teacher (spec.md §6); Incremental/Regenerate are recorded on the
// audit row to describe caller intent but do not change the pure engine's
// deterministic recomputation - scope narrowing already limits which
// sections PersistResult touches, so "preserving others" (§6's incremental
// mode) falls out of filtering the demands before Generate runs rather
// than from any special-cased merge logic.
type GenerateRequest struct {
	TenantID       uuid.UUID
	BranchID       uuid.UUID
	AcademicYearID uuid.UUID
	TriggeredBy    uuid.UUID
	Scope          generation.Scope
	Incremental    bool
	Regenerate     bool
}

// Generate loads the branch's full scheduling picture, runs the
// constraint-satisfaction engine once, persists every placed lesson, and
// writes an audit row. A failure to persist or audit never discards the
// computed Result - the caller still learns what the engine decided.
func (s *GenerationService) Generate(ctx context.Context, req GenerateRequest) (*generation.Result, map[string]generation.TeacherProfile, error) {
	startedAt := time.Now()

	catalog, err := s.repo.LoadCatalog(ctx, req.TenantID, req.BranchID)
	if err != nil {
		return nil, nil, err
	}
	demands, err := s.repo.LoadDemands(ctx, req.TenantID, req.AcademicYearID)
	if err != nil {
		return nil, nil, err
	}
	teachers, err := s.repo.LoadTeacherProfiles(ctx, req.TenantID, req.BranchID, s.cfg.DefaultMaxWeeklyPeriods)
	if err != nil {
		return nil, nil, err
	}
	classes, sections, err := s.repo.LoadClasses(ctx, req.TenantID, req.BranchID)
	if err != nil {
		return nil, nil, err
	}
	candidates, err := s.repo.ReservationCandidates(ctx, req.TenantID, req.BranchID, sections)
	if err != nil {
		return nil, nil, err
	}

	demands, classes, sections = scopeInputs(req.Scope, demands, classes, sections)

	var existing []generation.ScheduledLesson
	if req.Scope.Kind == generation.ScopeClass || req.Scope.Kind == generation.ScopeTeacher {
		keepSections := make(map[string]bool, len(sections))
		for id := range sections {
			keepSections[id] = true
		}
		existing, err = s.repo.LoadExistingLessonsOutsideScope(ctx, req.TenantID, req.BranchID, keepSections)
		if err != nil {
			return nil, nil, err
		}
	}

	reservation := s.buildReservationConfig(catalog)
	upperLevels := make(map[string]bool, len(s.cfg.UpperLevels))
	for _, lvl := range s.cfg.UpperLevels {
		upperLevels[lvl] = true
	}
	reservation.UpperLevels = upperLevels

	result := generation.Generate(generation.Input{
		Catalog:         catalog,
		Demands:         demands,
		TeacherByID:     teachers,
		Classes:         classes,
		Reservation:     reservation,
		ReservationFor:  candidates,
		ExistingLessons: existing,
	})

	if result.Success || len(result.Lessons) > 0 {
		if err := s.repo.PersistResult(ctx, req.TenantID, req.BranchID, result, sections, req.TriggeredBy); err != nil {
			logger.Error("Failed to persist generated timetable",
				zap.String("tenant_id", req.TenantID.String()),
				zap.String("branch_id", req.BranchID.String()),
				zap.Error(err))
			result.Conflicts = append(result.Conflicts, generation.Conflict{
				Kind:    generation.ConflictPersistence,
				Message: "timetable was generated but could not be saved: " + err.Error(),
			})
			result.Success = false
		}
	}

	s.recordRun(ctx, req, result, startedAt)

	return &result, teachers, nil
}

// scopeInputs narrows the demand/class/section sets to what a scoped run
// (spec.md §6) is allowed to touch: ScopeClass keeps one section, ScopeTeacher
// keeps every section that teacher currently holds a demand against. Sections
// left out are never passed to PlaceStandingReservations and never appear in
// result.Lessons, so PersistResult's per-section scoped delete leaves their
// existing Timetable rows untouched.
func scopeInputs(scope generation.Scope, demands []generation.LessonDemand, classes []generation.ClassRecord, sections map[string]sectionInfo) ([]generation.LessonDemand, []generation.ClassRecord, map[string]sectionInfo) {
	var keep map[string]bool

	switch scope.Kind {
	case generation.ScopeClass:
		keep = map[string]bool{scope.Ref: true}
	case generation.ScopeTeacher:
		keep = make(map[string]bool)
		for _, d := range demands {
			if d.TeacherID == scope.Ref {
				keep[d.ClassID] = true
			}
		}
	default:
		return demands, classes, sections
	}

	filteredDemands := make([]generation.LessonDemand, 0, len(demands))
	for _, d := range demands {
		if keep[d.ClassID] {
			filteredDemands = append(filteredDemands, d)
		}
	}

	filteredClasses := make([]generation.ClassRecord, 0, len(keep))
	for _, c := range classes {
		if keep[c.ID] {
			filteredClasses = append(filteredClasses, c)
		}
	}

	filteredSections := make(map[string]sectionInfo, len(keep))
	for id, info := range sections {
		if keep[id] {
			filteredSections[id] = info
		}
	}

	return filteredDemands, filteredClasses, filteredSections
}

// buildReservationConfig resolves the configured standing-reservation
// period against the loaded catalog to find that period's slot id on every
// weekday that has one, per §4.6's "each weekday's" placement and invariant
// 9's per-weekday coverage requirement. A weekday missing that period's slot
// is simply absent from SlotIDByDay; PlaceStandingReservations turns a
// wholly-missing configuration into a Configuration warning rather than
// failing the run.
func (s *GenerationService) buildReservationConfig(catalog []generation.Slot) generation.ReservationConfig {
	cfg := generation.ReservationConfig{
		Period:               s.cfg.StandingReservationPeriod,
		SlotIDByDay:          make(map[generation.Day]string),
		PlaceholderTeacherID: "",
	}
	for _, slot := range catalog {
		if slot.Period == cfg.Period {
			cfg.SlotIDByDay[slot.Day] = slot.ID
		}
	}
	cfg.SubjectID = cpdPlaceholderSubjectCode
	return cfg
}

// cpdPlaceholderSubjectCode identifies the seeded professional-development
// placeholder subject used for standing reservations.
const cpdPlaceholderSubjectCode = "CPD"

// recordRun writes the best-effort GenerationRun audit row. Errors are
// logged, never returned: the audit trail is diagnostic, not load-bearing.
func (s *GenerationService) recordRun(ctx context.Context, req GenerateRequest, result generation.Result, startedAt time.Time) {
	status := models.GenerationRunStatusSucceeded
	if len(result.Conflicts) > 0 && len(result.Lessons) == 0 {
		status = models.GenerationRunStatusFailed
	} else if len(result.Conflicts) > 0 || len(result.Warnings) > 0 {
		status = models.GenerationRunStatusPartial
	}

	scopeKind := req.Scope.Kind
	if scopeKind == "" {
		scopeKind = generation.ScopeAll
	}
	scopeRef := req.Scope.Ref
	if scopeRef == "" {
		scopeRef = req.AcademicYearID.String()
	}

	finishedAt := time.Now()
	run := &models.GenerationRun{
		TenantID:      req.TenantID,
		BranchID:      req.BranchID,
		ScopeKind:     string(scopeKind),
		ScopeRef:      scopeRef,
		Incremental:   req.Incremental,
		Regenerate:    req.Regenerate,
		Status:        status,
		ConflictCount: len(result.Conflicts),
		WarningCount:  len(result.Warnings),
		LessonCount:   len(result.Lessons),
		StartedAt:     startedAt,
		FinishedAt:    &finishedAt,
		TriggeredBy:   &req.TriggeredBy,
	}

	if err := s.repo.SaveGenerationRun(ctx, run); err != nil {
		logger.Error("Failed to save generation run audit record",
			zap.String("tenant_id", req.TenantID.String()),
			zap.Error(err))
	}
}

// ListGenerationRuns returns a branch's generation audit trail.
func (s *GenerationService) ListGenerationRuns(ctx context.Context, tenantID, branchID uuid.UUID, page, perPage int) ([]models.GenerationRun, int64, error) {
	return s.repo.ListGenerationRuns(ctx, tenantID, branchID, page, perPage)
}

// ExportTimetableXLSX renders a timetable's entries as a day-by-period
// grid workbook.
func (s *GenerationService) ExportTimetableXLSX(ctx context.Context, tenantID, timetableID uuid.UUID) ([]byte, string, error) {
	tt, err := s.repo.LoadTimetableForExport(ctx, tenantID, timetableID)
	if err != nil {
		return nil, "", err
	}
	data, err := renderTimetableWorkbook(tt)
	if err != nil {
		return nil, "", err
	}
	return data, tt.Name, nil
}
