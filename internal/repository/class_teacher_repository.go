package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/uai-sistemas/planning-api/internal/models"
)

const classTeacherColumns = `id, class_offering_id, teacher_id, role, is_primary`

// ClassTeacherRepository provides persistence for offering-level teacher
// assignments.
type ClassTeacherRepository struct {
	db *sqlx.DB
}

// NewClassTeacherRepository creates a new class teacher repository.
func NewClassTeacherRepository(db *sqlx.DB) *ClassTeacherRepository {
	return &ClassTeacherRepository{db: db}
}

// List returns assignments, optionally restricted to one offering.
func (r *ClassTeacherRepository) List(ctx context.Context, classOfferingID string) ([]models.ClassTeacher, error) {
	query := fmt.Sprintf("SELECT %s FROM class_teachers", classTeacherColumns)
	var args []interface{}
	if classOfferingID != "" {
		query += " WHERE class_offering_id = $1"
		args = append(args, classOfferingID)
	}
	query += " ORDER BY id ASC"

	var teachers []models.ClassTeacher
	if err := r.db.SelectContext(ctx, &teachers, query, args...); err != nil {
		return nil, fmt.Errorf("list class teachers: %w", err)
	}
	return teachers, nil
}

// ListByOfferingIDs returns the assignments of the given offerings.
func (r *ClassTeacherRepository) ListByOfferingIDs(ctx context.Context, offeringIDs []string) ([]models.ClassTeacher, error) {
	if len(offeringIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM class_teachers WHERE class_offering_id IN (?) ORDER BY id ASC", classTeacherColumns), offeringIDs)
	if err != nil {
		return nil, fmt.Errorf("build class teachers by offerings query: %w", err)
	}
	query = r.db.Rebind(query)

	var teachers []models.ClassTeacher
	if err := r.db.SelectContext(ctx, &teachers, query, args...); err != nil {
		return nil, fmt.Errorf("list class teachers by offerings: %w", err)
	}
	return teachers, nil
}

// Create stores a new assignment record.
func (r *ClassTeacherRepository) Create(ctx context.Context, teacher *models.ClassTeacher) error {
	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}
	const query = `INSERT INTO class_teachers (id, class_offering_id, teacher_id, role, is_primary)
VALUES (:id, :class_offering_id, :teacher_id, :role, :is_primary)`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("create class teacher: %w", err)
	}
	return nil
}

// Update modifies an assignment record.
func (r *ClassTeacherRepository) Update(ctx context.Context, teacher *models.ClassTeacher) error {
	const query = `UPDATE class_teachers SET class_offering_id = :class_offering_id, teacher_id = :teacher_id, role = :role, is_primary = :is_primary WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("update class teacher: %w", err)
	}
	return nil
}

// FindByID loads an assignment by id.
func (r *ClassTeacherRepository) FindByID(ctx context.Context, id string) (*models.ClassTeacher, error) {
	query := fmt.Sprintf("SELECT %s FROM class_teachers WHERE id = $1", classTeacherColumns)
	var teacher models.ClassTeacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Delete removes an assignment by id.
func (r *ClassTeacherRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM class_teachers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete class teacher: %w", err)
	}
	return nil
}
