package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/uai-sistemas/planning-api/internal/models"
)

const conflictColumns = `id, semester_id, conflict_type, severity, teacher_id, classroom_id, class_group_id, class_offering_id, meeting_a_id, meeting_b_id, overlap_minutes, detail_json, detected_at, created_at`

// ConflictRepository is the persisted conflict store for detection runs.
type ConflictRepository struct {
	db *sqlx.DB
}

// NewConflictRepository creates a new conflict repository.
func NewConflictRepository(db *sqlx.DB) *ConflictRepository {
	return &ConflictRepository{db: db}
}

// ListBySemester returns conflicts newest first; an empty semester id lists
// every semester.
func (r *ConflictRepository) ListBySemester(ctx context.Context, semesterID string) ([]models.ScheduleConflict, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_conflicts", conflictColumns)
	var args []interface{}
	if semesterID != "" {
		query += " WHERE semester_id = $1"
		args = append(args, semesterID)
	}
	query += " ORDER BY detected_at DESC, id ASC"

	var conflicts []models.ScheduleConflict
	if err := r.db.SelectContext(ctx, &conflicts, query, args...); err != nil {
		return nil, fmt.Errorf("list schedule conflicts: %w", err)
	}
	return conflicts, nil
}

// ReplaceForSemester swaps a semester's conflict rows for the freshly
// computed set in a single transaction. A failure leaves the prior set
// untouched; no observer ever sees a mixed old and new state.
func (r *ConflictRepository) ReplaceForSemester(ctx context.Context, semesterID string, conflicts []models.ScheduleConflict) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace conflicts: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM schedule_conflicts WHERE semester_id = $1`, semesterID); err != nil {
		return fmt.Errorf("delete stale conflicts: %w", err)
	}

	const insert = `INSERT INTO schedule_conflicts (id, semester_id, conflict_type, severity, teacher_id, classroom_id, class_group_id, class_offering_id, meeting_a_id, meeting_b_id, overlap_minutes, detail_json, detected_at, created_at)
VALUES (:id, :semester_id, :conflict_type, :severity, :teacher_id, :classroom_id, :class_group_id, :class_offering_id, :meeting_a_id, :meeting_b_id, :overlap_minutes, :detail_json, :detected_at, :created_at)`
	for i := range conflicts {
		conflict := &conflicts[i]
		if conflict.ID == "" {
			conflict.ID = uuid.NewString()
		}
		if _, err = sqlx.NamedExecContext(ctx, tx, insert, conflict); err != nil {
			return fmt.Errorf("insert schedule conflict: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace conflicts: %w", err)
	}
	return nil
}
