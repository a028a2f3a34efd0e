package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/uai-sistemas/planning-api/internal/models"
)

const hourRequirementColumns = `id, course_section_id, course_format, theory_hours_academic, practice_hours_academic, lab_hours_academic, academic_minutes_per_hour, notes, created_at, updated_at`

// HourRequirementRepository provides persistence for course-section hour
// requirements. One row per course section, enforced by a unique index.
type HourRequirementRepository struct {
	db *sqlx.DB
}

// NewHourRequirementRepository creates a new requirement repository.
func NewHourRequirementRepository(db *sqlx.DB) *HourRequirementRepository {
	return &HourRequirementRepository{db: db}
}

// List returns requirements, optionally restricted to one course section.
func (r *HourRequirementRepository) List(ctx context.Context, courseSectionID string) ([]models.CourseSectionHourRequirement, error) {
	query := fmt.Sprintf("SELECT %s FROM course_section_hour_requirements", hourRequirementColumns)
	var args []interface{}
	if courseSectionID != "" {
		query += " WHERE course_section_id = $1"
		args = append(args, courseSectionID)
	}
	query += " ORDER BY id ASC"

	var requirements []models.CourseSectionHourRequirement
	if err := r.db.SelectContext(ctx, &requirements, query, args...); err != nil {
		return nil, fmt.Errorf("list hour requirements: %w", err)
	}
	return requirements, nil
}

// FindByCourseSection loads the unique requirement of a course section.
func (r *HourRequirementRepository) FindByCourseSection(ctx context.Context, courseSectionID string) (*models.CourseSectionHourRequirement, error) {
	query := fmt.Sprintf("SELECT %s FROM course_section_hour_requirements WHERE course_section_id = $1", hourRequirementColumns)
	var requirement models.CourseSectionHourRequirement
	if err := r.db.GetContext(ctx, &requirement, query, courseSectionID); err != nil {
		return nil, err
	}
	return &requirement, nil
}

// FindByID loads a requirement by id.
func (r *HourRequirementRepository) FindByID(ctx context.Context, id string) (*models.CourseSectionHourRequirement, error) {
	query := fmt.Sprintf("SELECT %s FROM course_section_hour_requirements WHERE id = $1", hourRequirementColumns)
	var requirement models.CourseSectionHourRequirement
	if err := r.db.GetContext(ctx, &requirement, query, id); err != nil {
		return nil, err
	}
	return &requirement, nil
}

// Create stores a new requirement record.
func (r *HourRequirementRepository) Create(ctx context.Context, requirement *models.CourseSectionHourRequirement) error {
	if requirement.ID == "" {
		requirement.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if requirement.CreatedAt.IsZero() {
		requirement.CreatedAt = now
	}
	requirement.UpdatedAt = now

	const query = `INSERT INTO course_section_hour_requirements (id, course_section_id, course_format, theory_hours_academic, practice_hours_academic, lab_hours_academic, academic_minutes_per_hour, notes, created_at, updated_at)
VALUES (:id, :course_section_id, :course_format, :theory_hours_academic, :practice_hours_academic, :lab_hours_academic, :academic_minutes_per_hour, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, requirement); err != nil {
		return fmt.Errorf("create hour requirement: %w", err)
	}
	return nil
}

// Update modifies a requirement record.
func (r *HourRequirementRepository) Update(ctx context.Context, requirement *models.CourseSectionHourRequirement) error {
	requirement.UpdatedAt = time.Now().UTC()
	const query = `UPDATE course_section_hour_requirements SET course_section_id = :course_section_id, course_format = :course_format, theory_hours_academic = :theory_hours_academic, practice_hours_academic = :practice_hours_academic, lab_hours_academic = :lab_hours_academic, academic_minutes_per_hour = :academic_minutes_per_hour, notes = :notes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, requirement); err != nil {
		return fmt.Errorf("update hour requirement: %w", err)
	}
	return nil
}

// Delete removes a requirement by id.
func (r *HourRequirementRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM course_section_hour_requirements WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete hour requirement: %w", err)
	}
	return nil
}
