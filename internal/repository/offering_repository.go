package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/uai-sistemas/planning-api/internal/models"
)

const offeringColumns = `id, semester_id, study_plan_id, academic_program_id, course_id, course_section_id, campus_id, delivery_modality_id, shift_id, projected_vacancies, status`

// ClassOfferingRepository provides persistence for class offerings.
type ClassOfferingRepository struct {
	db *sqlx.DB
}

// NewClassOfferingRepository creates a new offering repository.
func NewClassOfferingRepository(db *sqlx.DB) *ClassOfferingRepository {
	return &ClassOfferingRepository{db: db}
}

// List returns offerings with optional filtering and pagination.
func (r *ClassOfferingRepository) List(ctx context.Context, filter models.ClassOfferingFilter) ([]models.ClassOffering, int, error) {
	base := "FROM class_offerings WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.SemesterID != "" {
		conditions = append(conditions, fmt.Sprintf("semester_id = $%d", len(args)+1))
		args = append(args, filter.SemesterID)
	}
	if filter.CourseSectionID != "" {
		conditions = append(conditions, fmt.Sprintf("course_section_id = $%d", len(args)+1))
		args = append(args, filter.CourseSectionID)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY id ASC LIMIT %d OFFSET %d", offeringColumns, base, size, offset)
	var offerings []models.ClassOffering
	if err := r.db.SelectContext(ctx, &offerings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list class offerings: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count class offerings: %w", err)
	}

	return offerings, total, nil
}

// FindByID loads an offering by id.
func (r *ClassOfferingRepository) FindByID(ctx context.Context, id string) (*models.ClassOffering, error) {
	query := fmt.Sprintf("SELECT %s FROM class_offerings WHERE id = $1", offeringColumns)
	var offering models.ClassOffering
	if err := r.db.GetContext(ctx, &offering, query, id); err != nil {
		return nil, err
	}
	return &offering, nil
}

// ListBySemester returns every offering of a semester ordered by id.
func (r *ClassOfferingRepository) ListBySemester(ctx context.Context, semesterID string) ([]models.ClassOffering, error) {
	query := fmt.Sprintf("SELECT %s FROM class_offerings WHERE semester_id = $1 ORDER BY id ASC", offeringColumns)
	var offerings []models.ClassOffering
	if err := r.db.SelectContext(ctx, &offerings, query, semesterID); err != nil {
		return nil, fmt.Errorf("list offerings by semester: %w", err)
	}
	return offerings, nil
}

// Create stores a new offering record.
func (r *ClassOfferingRepository) Create(ctx context.Context, offering *models.ClassOffering) error {
	if offering.ID == "" {
		offering.ID = uuid.NewString()
	}
	const query = `INSERT INTO class_offerings (id, semester_id, study_plan_id, academic_program_id, course_id, course_section_id, campus_id, delivery_modality_id, shift_id, projected_vacancies, status)
VALUES (:id, :semester_id, :study_plan_id, :academic_program_id, :course_id, :course_section_id, :campus_id, :delivery_modality_id, :shift_id, :projected_vacancies, :status)`
	if _, err := r.db.NamedExecContext(ctx, query, offering); err != nil {
		return fmt.Errorf("create class offering: %w", err)
	}
	return nil
}

// Update modifies an offering record.
func (r *ClassOfferingRepository) Update(ctx context.Context, offering *models.ClassOffering) error {
	const query = `UPDATE class_offerings SET semester_id = :semester_id, study_plan_id = :study_plan_id, academic_program_id = :academic_program_id, course_id = :course_id, course_section_id = :course_section_id, campus_id = :campus_id, delivery_modality_id = :delivery_modality_id, shift_id = :shift_id, projected_vacancies = :projected_vacancies, status = :status WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, offering); err != nil {
		return fmt.Errorf("update class offering: %w", err)
	}
	return nil
}

// Delete removes an offering by id.
func (r *ClassOfferingRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM class_offerings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete class offering: %w", err)
	}
	return nil
}

// PurgeSemester removes every offering of a semester together with its
// dependent planning rows and stale schedule conflicts, in one transaction.
// Used by the replace-semester ingestion mode.
func (r *ClassOfferingRepository) PurgeSemester(ctx context.Context, semesterID string) (*models.SemesterPurgeResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin purge semester: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	statements := []string{
		`DELETE FROM class_group_teachers WHERE class_group_id IN (
			SELECT g.id FROM class_groups g
			JOIN class_offerings o ON o.id = g.class_offering_id
			WHERE o.semester_id = $1)`,
		`DELETE FROM class_meetings WHERE class_offering_id IN (SELECT id FROM class_offerings WHERE semester_id = $1)`,
		`DELETE FROM class_groups WHERE class_offering_id IN (SELECT id FROM class_offerings WHERE semester_id = $1)`,
		`DELETE FROM class_teachers WHERE class_offering_id IN (SELECT id FROM class_offerings WHERE semester_id = $1)`,
	}
	for _, stmt := range statements {
		if _, err = tx.ExecContext(ctx, stmt, semesterID); err != nil {
			return nil, fmt.Errorf("purge semester dependents: %w", err)
		}
	}

	result := &models.SemesterPurgeResult{SemesterID: semesterID}

	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM schedule_conflicts WHERE semester_id = $1`, semesterID); err != nil {
		return nil, fmt.Errorf("purge semester conflicts: %w", err)
	}
	if n, raErr := res.RowsAffected(); raErr == nil {
		result.ConflictsDeleted = int(n)
	}

	if res, err = tx.ExecContext(ctx, `DELETE FROM class_offerings WHERE semester_id = $1`, semesterID); err != nil {
		return nil, fmt.Errorf("purge semester offerings: %w", err)
	}
	if n, raErr := res.RowsAffected(); raErr == nil {
		result.OfferingsDeleted = int(n)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit purge semester: %w", err)
	}
	return result, nil
}
