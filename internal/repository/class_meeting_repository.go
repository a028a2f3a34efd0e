package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/uai-sistemas/planning-api/internal/models"
)

const classMeetingColumns = `id, class_offering_id, class_group_id, day_of_week, start_time, end_time, minutes, academic_hours, classroom_id`

// ClassMeetingRepository provides persistence for weekly meeting slots.
type ClassMeetingRepository struct {
	db *sqlx.DB
}

// NewClassMeetingRepository creates a new meeting repository.
func NewClassMeetingRepository(db *sqlx.DB) *ClassMeetingRepository {
	return &ClassMeetingRepository{db: db}
}

// List returns meetings, optionally restricted to one offering.
func (r *ClassMeetingRepository) List(ctx context.Context, classOfferingID string) ([]models.ClassMeeting, error) {
	query := fmt.Sprintf("SELECT %s FROM class_meetings", classMeetingColumns)
	var args []interface{}
	if classOfferingID != "" {
		query += " WHERE class_offering_id = $1"
		args = append(args, classOfferingID)
	}
	query += " ORDER BY id ASC"

	var meetings []models.ClassMeeting
	if err := r.db.SelectContext(ctx, &meetings, query, args...); err != nil {
		return nil, fmt.Errorf("list class meetings: %w", err)
	}
	return meetings, nil
}

// ListByOfferingIDs returns the meetings of the given offerings in a stable
// order so repeated detection runs walk identical pair sequences.
func (r *ClassMeetingRepository) ListByOfferingIDs(ctx context.Context, offeringIDs []string) ([]models.ClassMeeting, error) {
	if len(offeringIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM class_meetings WHERE class_offering_id IN (?) ORDER BY day_of_week ASC, start_time ASC, id ASC", classMeetingColumns), offeringIDs)
	if err != nil {
		return nil, fmt.Errorf("build meetings by offerings query: %w", err)
	}
	query = r.db.Rebind(query)

	var meetings []models.ClassMeeting
	if err := r.db.SelectContext(ctx, &meetings, query, args...); err != nil {
		return nil, fmt.Errorf("list meetings by offerings: %w", err)
	}
	return meetings, nil
}

// FindByID loads a meeting by id.
func (r *ClassMeetingRepository) FindByID(ctx context.Context, id string) (*models.ClassMeeting, error) {
	query := fmt.Sprintf("SELECT %s FROM class_meetings WHERE id = $1", classMeetingColumns)
	var meeting models.ClassMeeting
	if err := r.db.GetContext(ctx, &meeting, query, id); err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Create stores a new meeting record.
func (r *ClassMeetingRepository) Create(ctx context.Context, meeting *models.ClassMeeting) error {
	if meeting.ID == "" {
		meeting.ID = uuid.NewString()
	}
	const query = `INSERT INTO class_meetings (id, class_offering_id, class_group_id, day_of_week, start_time, end_time, minutes, academic_hours, classroom_id)
VALUES (:id, :class_offering_id, :class_group_id, :day_of_week, :start_time, :end_time, :minutes, :academic_hours, :classroom_id)`
	if _, err := r.db.NamedExecContext(ctx, query, meeting); err != nil {
		return fmt.Errorf("create class meeting: %w", err)
	}
	return nil
}

// Update modifies a meeting record.
func (r *ClassMeetingRepository) Update(ctx context.Context, meeting *models.ClassMeeting) error {
	const query = `UPDATE class_meetings SET class_offering_id = :class_offering_id, class_group_id = :class_group_id, day_of_week = :day_of_week, start_time = :start_time, end_time = :end_time, minutes = :minutes, academic_hours = :academic_hours, classroom_id = :classroom_id WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, meeting); err != nil {
		return fmt.Errorf("update class meeting: %w", err)
	}
	return nil
}

// Delete removes a meeting by id.
func (r *ClassMeetingRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM class_meetings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete class meeting: %w", err)
	}
	return nil
}
