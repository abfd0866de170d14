package timetable

import (
	"context"
	"errors"
	"time"

	"msls-backend/internal/modules/timetable/generation"
	"msls-backend/internal/pkg/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerationRepository loads the inputs the generation engine needs and
// persists its output. It is the thin I/O boundary around the pure
// generation package (§5: the engine itself never touches the database).
type GenerationRepository struct {
	db *gorm.DB
}

// NewGenerationRepository creates a new generation repository.
func NewGenerationRepository(db *gorm.DB) *GenerationRepository {
	return &GenerationRepository{db: db}
}

// LoadCatalog builds the week's schedulable-slot catalog from the branch's
// day-pattern assignments and the period slots attached to each assigned
// pattern.
func (r *GenerationRepository) LoadCatalog(ctx context.Context, tenantID, branchID uuid.UUID) ([]generation.Slot, error) {
	var assignments []models.DayPatternAssignment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ?", tenantID, branchID).
		Find(&assignments).Error; err != nil {
		return nil, err
	}

	var slots []generation.Slot
	for _, a := range assignments {
		if !a.IsWorkingDay || a.DayPatternID == nil {
			continue
		}
		day := generation.Day(a.DayOfWeek)
		if day < generation.Monday || day > generation.Friday {
			continue // Saturday/Sunday are never schedulable
		}

		var periodSlots []models.PeriodSlot
		if err := r.db.WithContext(ctx).
			Where("tenant_id = ? AND branch_id = ? AND day_pattern_id = ?", tenantID, branchID, *a.DayPatternID).
			Find(&periodSlots).Error; err != nil {
			return nil, err
		}

		for _, p := range periodSlots {
			if p.PeriodNumber == nil {
				continue
			}
			slots = append(slots, generation.Slot{
				ID:       p.ID.String(),
				Day:      day,
				Period:   *p.PeriodNumber,
				Start:    p.StartTime,
				End:      p.EndTime,
				IsBreak:  p.SlotType == models.PeriodSlotTypeBreak || p.SlotType == models.PeriodSlotTypeLunch || p.SlotType == models.PeriodSlotTypeAssembly,
				IsCPD:    p.SlotType == models.PeriodSlotTypeActivity,
				IsActive: p.IsActive,
			})
		}
	}

	return slots, nil
}

// LoadDemands maps every active, currently-effective teacher-subject
// assignment for the academic year into a LessonDemand. A demand's class is
// the section it teaches, since sections are the collision-checked student
// groups a timetable actually schedules.
func (r *GenerationRepository) LoadDemands(ctx context.Context, tenantID, academicYearID uuid.UUID) ([]generation.LessonDemand, error) {
	var assignments []models.TeacherSubjectAssignment
	if err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Class").
		Where("tenant_id = ? AND academic_year_id = ? AND status = ?", tenantID, academicYearID, models.AssignmentStatusActive).
		Find(&assignments).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	demands := make([]generation.LessonDemand, 0, len(assignments))
	for _, a := range assignments {
		if a.EffectiveFrom.After(now) {
			continue
		}
		if a.EffectiveTo != nil && a.EffectiveTo.Before(now) {
			continue
		}
		if a.PeriodsPerWeek <= 0 {
			continue
		}

		classID := a.ClassID.String()
		if a.SectionID != nil {
			classID = a.SectionID.String()
		}

		kind := generation.LessonRegular
		var category generation.ModuleCategory
		if a.Subject.SubjectType == models.SubjectTypeVocational {
			kind = generation.LessonVocational
			category = generation.ModuleSpecific
		}

		level := ""
		if a.Class.Level != nil {
			level = string(*a.Class.Level)
		}

		demands = append(demands, generation.LessonDemand{
			TeacherID:        a.StaffID.String(),
			SubjectID:        a.SubjectID.String(),
			ClassID:          classID,
			ClassLevel:       level,
			SubjectName:      a.Subject.Name,
			PeriodsPerWeek:   a.PeriodsPerWeek,
			PreferredSession: generation.SessionAny,
			Kind:             kind,
			ModuleCategory:   category,
		})
	}

	return demands, nil
}

// LoadTeacherProfiles loads every branch staff member and overlays any
// TeacherAvailability row onto the engine's TeacherProfile.
func (r *GenerationRepository) LoadTeacherProfiles(ctx context.Context, tenantID, branchID uuid.UUID, defaultMaxWeekly int) (map[string]generation.TeacherProfile, error) {
	var staff []models.Staff
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ?", tenantID, branchID).
		Find(&staff).Error; err != nil {
		return nil, err
	}

	var availability []models.TeacherAvailability
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&availability).Error; err != nil {
		return nil, err
	}
	byStaff := make(map[uuid.UUID]models.TeacherAvailability, len(availability))
	for _, a := range availability {
		byStaff[a.StaffID] = a
	}

	profiles := make(map[string]generation.TeacherProfile, len(staff))
	for _, s := range staff {
		profile := generation.TeacherProfile{
			ID:                s.ID.String(),
			Active:            s.Status == models.StaffStatusActive,
			UnavailableDays:   make(map[generation.Day]bool),
			UnavailablePeriod: make(map[int]bool),
			MaxWeeklyPeriods:  defaultMaxWeekly,
		}
		if a, ok := byStaff[s.ID]; ok {
			for _, d := range a.UnavailableDays {
				profile.UnavailableDays[generation.Day(d)] = true
			}
			for _, p := range a.UnavailablePeriods {
				profile.UnavailablePeriod[int(p)] = true
			}
			if a.MaxWeeklyPeriods != nil {
				profile.MaxWeeklyPeriods = *a.MaxWeeklyPeriods
			}
		}
		profiles[s.ID.String()] = profile
	}

	return profiles, nil
}

// sectionInfo bundles the academic year a section belongs to, needed to
// resolve or create the right draft Timetable when persisting.
type sectionInfo struct {
	academicYearID uuid.UUID
	staffIDs       []string
}

// LoadClasses loads every active section in the branch as a ClassRecord,
// plus the bookkeeping PersistResult needs to route lessons back to the
// right Timetable and to propose reservation-teacher candidates.
func (r *GenerationRepository) LoadClasses(ctx context.Context, tenantID, branchID uuid.UUID) ([]generation.ClassRecord, map[string]sectionInfo, error) {
	var sections []models.Section
	if err := r.db.WithContext(ctx).
		Joins("JOIN classes ON classes.id = sections.class_id").
		Preload("Class").
		Where("sections.tenant_id = ? AND classes.branch_id = ? AND sections.is_active = ?", tenantID, branchID, true).
		Find(&sections).Error; err != nil {
		return nil, nil, err
	}

	classes := make([]generation.ClassRecord, 0, len(sections))
	info := make(map[string]sectionInfo, len(sections))
	for _, sec := range sections {
		level := ""
		if sec.Class.Level != nil {
			level = string(*sec.Class.Level)
		}
		classes = append(classes, generation.ClassRecord{
			ID:       sec.ID.String(),
			Level:    level,
			SchoolID: branchID.String(),
		})

		academicYearID := uuid.Nil
		if sec.AcademicYearID != nil {
			academicYearID = *sec.AcademicYearID
		}
		var staffIDs []string
		if sec.ClassTeacherID != nil {
			staffIDs = append(staffIDs, sec.ClassTeacherID.String())
		}
		info[sec.ID.String()] = sectionInfo{academicYearID: academicYearID, staffIDs: staffIDs}
	}

	return classes, info, nil
}

// ReservationCandidates builds the AvailableTeacher list per section for
// the Standing-Reservation Placer: the section's class teacher first, then
// any active staff member in the branch.
func (r *GenerationRepository) ReservationCandidates(ctx context.Context, tenantID, branchID uuid.UUID, sections map[string]sectionInfo) (map[string][]generation.AvailableTeacher, error) {
	var staff []models.Staff
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND branch_id = ? AND status = ?", tenantID, branchID, models.StaffStatusActive).
		Find(&staff).Error; err != nil {
		return nil, err
	}

	candidates := make(map[string][]generation.AvailableTeacher, len(sections))
	for sectionID, info := range sections {
		classTeacher := make(map[string]bool, len(info.staffIDs))
		for _, id := range info.staffIDs {
			classTeacher[id] = true
		}
		list := make([]generation.AvailableTeacher, 0, len(staff))
		for _, s := range staff {
			list = append(list, generation.AvailableTeacher{
				ID:                 s.ID.String(),
				AlreadyOnThisClass: classTeacher[s.ID.String()],
			})
		}
		candidates[sectionID] = list
	}
	return candidates, nil
}

// LoadExistingLessonsOutsideScope loads every already-persisted timetable
// entry for the branch whose section is NOT in keepSectionIDs, as
// ScheduledLessons. A scoped run (§4.1/§6) passes these to the engine so its
// OccupancyIndex starts seeded with commitments the scoped run itself never
// recomputes - without this, a class- or teacher-scoped regeneration cannot
// see that a shared teacher is already booked in an out-of-scope class.
func (r *GenerationRepository) LoadExistingLessonsOutsideScope(ctx context.Context, tenantID, branchID uuid.UUID, keepSectionIDs map[string]bool) ([]generation.ScheduledLesson, error) {
	var entries []models.TimetableEntry
	if err := r.db.WithContext(ctx).
		Preload("PeriodSlot").
		Preload("Timetable").
		Joins("JOIN timetables ON timetables.id = timetable_entries.timetable_id").
		Where("timetable_entries.tenant_id = ? AND timetables.branch_id = ? AND timetables.status <> ?",
			tenantID, branchID, models.TimetableStatusArchived).
		Where("timetables.section_id NOT IN (?)", nonEmptyUUIDs(keepSectionIDs)).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	lessons := make([]generation.ScheduledLesson, 0, len(entries))
	for _, e := range entries {
		if e.StaffID == nil || e.PeriodSlot == nil || e.PeriodSlot.PeriodNumber == nil || e.Timetable == nil {
			continue
		}
		lesson := generation.ScheduledLesson{
			TeacherID:  e.StaffID.String(),
			ClassID:    e.Timetable.SectionID.String(),
			TimeSlotID: e.PeriodSlotID.String(),
			Day:        generation.Day(e.DayOfWeek),
			Period:     *e.PeriodSlot.PeriodNumber,
		}
		if e.SubjectID != nil {
			lesson.SubjectID = e.SubjectID.String()
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

// nonEmptyUUIDs turns a keep-set of section id strings into a slice for a
// NOT IN clause; a nil/empty keep-set excludes nothing, so it is represented
// as a single impossible id rather than an empty IN-list (which some SQL
// drivers reject).
func nonEmptyUUIDs(keep map[string]bool) []string {
	if len(keep) == 0 {
		return []string{uuid.Nil.String()}
	}
	ids := make([]string, 0, len(keep))
	for id := range keep {
		ids = append(ids, id)
	}
	return ids
}

// PersistResult writes every scheduled lesson into a draft Timetable per
// section, replacing that timetable's existing entries, inside a single
// transaction (§7: persistence failures degrade to a Persistence conflict,
// not a partial write).
func (r *GenerationRepository) PersistResult(ctx context.Context, tenantID, branchID uuid.UUID, result generation.Result, sections map[string]sectionInfo, userID uuid.UUID) error {
	bySection := make(map[string][]generation.ScheduledLesson)
	for _, l := range result.Lessons {
		bySection[l.ClassID] = append(bySection[l.ClassID], l)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for sectionIDStr, lessons := range bySection {
			sectionID, err := uuid.Parse(sectionIDStr)
			if err != nil {
				continue
			}
			info, ok := sections[sectionIDStr]
			if !ok || info.academicYearID == uuid.Nil {
				continue
			}

			var tt models.Timetable
			err = tx.Where("tenant_id = ? AND section_id = ? AND academic_year_id = ? AND status = ?",
				tenantID, sectionID, info.academicYearID, models.TimetableStatusDraft).
				First(&tt).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				tt = models.Timetable{
					TenantID:       tenantID,
					BranchID:       branchID,
					SectionID:      sectionID,
					AcademicYearID: info.academicYearID,
					Name:           "Generated Timetable",
					Status:         models.TimetableStatusDraft,
					CreatedBy:      &userID,
				}
				if err := tx.Create(&tt).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			}

			if err := tx.Where("timetable_id = ?", tt.ID).Delete(&models.TimetableEntry{}).Error; err != nil {
				return err
			}

			entries := make([]models.TimetableEntry, 0, len(lessons))
			for _, l := range lessons {
				periodSlotID, err := uuid.Parse(l.TimeSlotID)
				if err != nil {
					continue
				}
				entry := models.TimetableEntry{
					TenantID:     tenantID,
					TimetableID:  tt.ID,
					DayOfWeek:    int(l.Day),
					PeriodSlotID: periodSlotID,
				}
				if teacherID, err := uuid.Parse(l.TeacherID); err == nil {
					entry.StaffID = &teacherID
				}
				if l.SubjectID != "" {
					if subjectID, err := uuid.Parse(l.SubjectID); err == nil {
						entry.SubjectID = &subjectID
					}
				}
				entries = append(entries, entry)
			}
			if len(entries) > 0 {
				if err := tx.CreateInBatches(entries, 100).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// SaveGenerationRun writes the best-effort audit row for one run. Callers
// log, but never fail the request on, an error returned here.
func (r *GenerationRepository) SaveGenerationRun(ctx context.Context, run *models.GenerationRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// ListGenerationRuns returns a branch's audit rows, most recent first.
func (r *GenerationRepository) ListGenerationRuns(ctx context.Context, tenantID, branchID uuid.UUID, page, perPage int) ([]models.GenerationRun, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.GenerationRun{}).
		Where("tenant_id = ? AND branch_id = ?", tenantID, branchID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var runs []models.GenerationRun
	if err := query.
		Order("started_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&runs).Error; err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}

// LoadTimetableForExport loads a single timetable with every entry and its
// staff/subject/period-slot relations preloaded, ready for the xlsx grid
// export.
func (r *GenerationRepository) LoadTimetableForExport(ctx context.Context, tenantID, timetableID uuid.UUID) (*models.Timetable, error) {
	var tt models.Timetable
	if err := r.db.WithContext(ctx).
		Preload("Entries.PeriodSlot").
		Preload("Entries.Staff").
		Preload("Entries.Subject").
		Preload("Section.Class").
		Where("tenant_id = ? AND id = ?", tenantID, timetableID).
		First(&tt).Error; err != nil {
		return nil, err
	}
	return &tt, nil
}
