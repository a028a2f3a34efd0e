package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/uai-sistemas/planning-api/internal/models"
)

const classGroupColumns = `id, class_offering_id, group_type, code, capacity, note`

// ClassGroupRepository provides persistence for class groups.
type ClassGroupRepository struct {
	db *sqlx.DB
}

// NewClassGroupRepository creates a new group repository.
func NewClassGroupRepository(db *sqlx.DB) *ClassGroupRepository {
	return &ClassGroupRepository{db: db}
}

// List returns groups, optionally restricted to one offering.
func (r *ClassGroupRepository) List(ctx context.Context, classOfferingID string) ([]models.ClassGroup, error) {
	query := fmt.Sprintf("SELECT %s FROM class_groups", classGroupColumns)
	var args []interface{}
	if classOfferingID != "" {
		query += " WHERE class_offering_id = $1"
		args = append(args, classOfferingID)
	}
	query += " ORDER BY id ASC"

	var groups []models.ClassGroup
	if err := r.db.SelectContext(ctx, &groups, query, args...); err != nil {
		return nil, fmt.Errorf("list class groups: %w", err)
	}
	return groups, nil
}

// ListByOfferingIDs returns the groups of the given offerings.
func (r *ClassGroupRepository) ListByOfferingIDs(ctx context.Context, offeringIDs []string) ([]models.ClassGroup, error) {
	if len(offeringIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM class_groups WHERE class_offering_id IN (?) ORDER BY id ASC", classGroupColumns), offeringIDs)
	if err != nil {
		return nil, fmt.Errorf("build groups by offerings query: %w", err)
	}
	query = r.db.Rebind(query)

	var groups []models.ClassGroup
	if err := r.db.SelectContext(ctx, &groups, query, args...); err != nil {
		return nil, fmt.Errorf("list groups by offerings: %w", err)
	}
	return groups, nil
}

// FindByID loads a group by id.
func (r *ClassGroupRepository) FindByID(ctx context.Context, id string) (*models.ClassGroup, error) {
	query := fmt.Sprintf("SELECT %s FROM class_groups WHERE id = $1", classGroupColumns)
	var group models.ClassGroup
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		return nil, err
	}
	return &group, nil
}

// Create stores a new group record.
func (r *ClassGroupRepository) Create(ctx context.Context, group *models.ClassGroup) error {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	const query = `INSERT INTO class_groups (id, class_offering_id, group_type, code, capacity, note)
VALUES (:id, :class_offering_id, :group_type, :code, :capacity, :note)`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("create class group: %w", err)
	}
	return nil
}

// Update modifies a group record.
func (r *ClassGroupRepository) Update(ctx context.Context, group *models.ClassGroup) error {
	const query = `UPDATE class_groups SET class_offering_id = :class_offering_id, group_type = :group_type, code = :code, capacity = :capacity, note = :note WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("update class group: %w", err)
	}
	return nil
}

// Delete removes a group by id.
func (r *ClassGroupRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM class_groups WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete class group: %w", err)
	}
	return nil
}
