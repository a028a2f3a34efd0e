package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uai-sistemas/planning-api/internal/models"
)

func newConflictRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestConflictRepositoryListBySemester(t *testing.T) {
	db, mock, cleanup := newConflictRepoMock(t)
	defer cleanup()
	repo := NewConflictRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "semester_id", "conflict_type", "severity", "teacher_id", "classroom_id",
		"class_group_id", "class_offering_id", "meeting_a_id", "meeting_b_id",
		"overlap_minutes", "detail_json", "detected_at", "created_at",
	}).AddRow("c-1", "2026-1", "TEACHER_OVERLAP", "CRITICAL", "teacher-1", nil, nil, nil, "m-1", "m-2", 45, []byte(`{}`), now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM schedule_conflicts WHERE semester_id = $1 ORDER BY detected_at DESC, id ASC")).
		WithArgs("2026-1").
		WillReturnRows(rows)

	conflicts, err := repo.ListBySemester(context.Background(), "2026-1")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictTeacherOverlap, conflicts[0].ConflictType)
	assert.Equal(t, 45, conflicts[0].OverlapMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConflictRepositoryReplaceForSemester(t *testing.T) {
	db, mock, cleanup := newConflictRepoMock(t)
	defer cleanup()
	repo := NewConflictRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_conflicts WHERE semester_id = $1")).
		WithArgs("2026-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_conflicts")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_conflicts")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	now := time.Now().UTC()
	conflicts := []models.ScheduleConflict{
		{SemesterID: "2026-1", ConflictType: models.ConflictGroupOverlap, Severity: models.SeverityWarning, MeetingAID: "m-1", MeetingBID: "m-2", OverlapMinutes: 15, Detail: []byte(`{}`), DetectedAt: now, CreatedAt: now},
		{SemesterID: "2026-1", ConflictType: models.ConflictSectionOverlap, Severity: models.SeverityWarning, MeetingAID: "m-1", MeetingBID: "m-2", OverlapMinutes: 15, Detail: []byte(`{}`), DetectedAt: now, CreatedAt: now},
	}

	require.NoError(t, repo.ReplaceForSemester(context.Background(), "2026-1", conflicts))
	assert.NotEmpty(t, conflicts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConflictRepositoryReplaceForSemesterEmptySetClears(t *testing.T) {
	db, mock, cleanup := newConflictRepoMock(t)
	defer cleanup()
	repo := NewConflictRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_conflicts WHERE semester_id = $1")).
		WithArgs("2026-1").
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceForSemester(context.Background(), "2026-1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConflictRepositoryReplaceForSemesterRollsBackOnInsertFailure(t *testing.T) {
	db, mock, cleanup := newConflictRepoMock(t)
	defer cleanup()
	repo := NewConflictRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_conflicts WHERE semester_id = $1")).
		WithArgs("2026-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_conflicts")).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	now := time.Now().UTC()
	err := repo.ReplaceForSemester(context.Background(), "2026-1", []models.ScheduleConflict{
		{SemesterID: "2026-1", ConflictType: models.ConflictGroupOverlap, MeetingAID: "m-1", MeetingBID: "m-2", Detail: []byte(`{}`), DetectedAt: now, CreatedAt: now},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
