package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/uai-sistemas/planning-api/internal/models"
)

const groupTeacherColumns = `id, class_group_id, teacher_id, role, is_primary, assigned_from, assigned_to, notes, created_at, updated_at`

// ClassGroupTeacherRepository provides persistence for group-level teacher
// assignments.
type ClassGroupTeacherRepository struct {
	db *sqlx.DB
}

// NewClassGroupTeacherRepository creates a new group teacher repository.
func NewClassGroupTeacherRepository(db *sqlx.DB) *ClassGroupTeacherRepository {
	return &ClassGroupTeacherRepository{db: db}
}

// List returns assignments, optionally restricted to one group.
func (r *ClassGroupTeacherRepository) List(ctx context.Context, classGroupID string) ([]models.ClassGroupTeacher, error) {
	query := fmt.Sprintf("SELECT %s FROM class_group_teachers", groupTeacherColumns)
	var args []interface{}
	if classGroupID != "" {
		query += " WHERE class_group_id = $1"
		args = append(args, classGroupID)
	}
	query += " ORDER BY id ASC"

	var teachers []models.ClassGroupTeacher
	if err := r.db.SelectContext(ctx, &teachers, query, args...); err != nil {
		return nil, fmt.Errorf("list class group teachers: %w", err)
	}
	return teachers, nil
}

// ListByGroupIDs returns the assignments of the given groups.
func (r *ClassGroupTeacherRepository) ListByGroupIDs(ctx context.Context, groupIDs []string) ([]models.ClassGroupTeacher, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM class_group_teachers WHERE class_group_id IN (?) ORDER BY id ASC", groupTeacherColumns), groupIDs)
	if err != nil {
		return nil, fmt.Errorf("build group teachers by groups query: %w", err)
	}
	query = r.db.Rebind(query)

	var teachers []models.ClassGroupTeacher
	if err := r.db.SelectContext(ctx, &teachers, query, args...); err != nil {
		return nil, fmt.Errorf("list group teachers by groups: %w", err)
	}
	return teachers, nil
}

// Exists reports whether a (group, teacher) assignment already exists.
func (r *ClassGroupTeacherRepository) Exists(ctx context.Context, classGroupID, teacherID string) (bool, error) {
	const query = `SELECT 1 FROM class_group_teachers WHERE class_group_id = $1 AND teacher_id = $2 LIMIT 1`
	var one int
	err := r.db.GetContext(ctx, &one, query, classGroupID, teacherID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check group teacher uniqueness: %w", err)
	}
	return true, nil
}

// FindByID loads an assignment by id.
func (r *ClassGroupTeacherRepository) FindByID(ctx context.Context, id string) (*models.ClassGroupTeacher, error) {
	query := fmt.Sprintf("SELECT %s FROM class_group_teachers WHERE id = $1", groupTeacherColumns)
	var teacher models.ClassGroupTeacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create stores a new assignment record.
func (r *ClassGroupTeacherRepository) Create(ctx context.Context, teacher *models.ClassGroupTeacher) error {
	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = now
	}
	teacher.UpdatedAt = now

	const query = `INSERT INTO class_group_teachers (id, class_group_id, teacher_id, role, is_primary, assigned_from, assigned_to, notes, created_at, updated_at)
VALUES (:id, :class_group_id, :teacher_id, :role, :is_primary, :assigned_from, :assigned_to, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("create class group teacher: %w", err)
	}
	return nil
}

// Update modifies an assignment record.
func (r *ClassGroupTeacherRepository) Update(ctx context.Context, teacher *models.ClassGroupTeacher) error {
	teacher.UpdatedAt = time.Now().UTC()
	const query = `UPDATE class_group_teachers SET class_group_id = :class_group_id, teacher_id = :teacher_id, role = :role, is_primary = :is_primary, assigned_from = :assigned_from, assigned_to = :assigned_to, notes = :notes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("update class group teacher: %w", err)
	}
	return nil
}

// Delete removes an assignment by id.
func (r *ClassGroupTeacherRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM class_group_teachers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete class group teacher: %w", err)
	}
	return nil
}
