package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uai-sistemas/planning-api/internal/models"
)

func newClassMeetingRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func meetingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "class_offering_id", "class_group_id", "day_of_week",
		"start_time", "end_time", "minutes", "academic_hours", "classroom_id",
	})
}

func TestClassMeetingRepositoryListByOfferingIDs(t *testing.T) {
	db, mock, cleanup := newClassMeetingRepoMock(t)
	defer cleanup()
	repo := NewClassMeetingRepository(db)

	rows := meetingRows().
		AddRow("m-1", "off-1", "grp-1", "LUNES", "08:00", "10:00", nil, nil, "room-1").
		AddRow("m-2", "off-2", "grp-2", "LUNES", "09:30", "11:30", 120, 2, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM class_meetings WHERE class_offering_id IN (?, ?) ORDER BY day_of_week ASC, start_time ASC, id ASC")).
		WithArgs("off-1", "off-2").
		WillReturnRows(rows)

	meetings, err := repo.ListByOfferingIDs(context.Background(), []string{"off-1", "off-2"})
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, models.DayLunes, meetings[0].DayOfWeek)
	assert.Nil(t, meetings[0].Minutes)
	require.NotNil(t, meetings[1].Minutes)
	assert.Equal(t, 120, *meetings[1].Minutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassMeetingRepositoryListByOfferingIDsEmpty(t *testing.T) {
	db, _, cleanup := newClassMeetingRepoMock(t)
	defer cleanup()
	repo := NewClassMeetingRepository(db)

	meetings, err := repo.ListByOfferingIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, meetings)
}

func TestClassMeetingRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newClassMeetingRepoMock(t)
	defer cleanup()
	repo := NewClassMeetingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO class_meetings")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	meeting := &models.ClassMeeting{
		ClassOfferingID: "off-1",
		ClassGroupID:    "grp-1",
		DayOfWeek:       models.DayMartes,
		StartTime:       "08:00",
		EndTime:         "09:40",
	}
	require.NoError(t, repo.Create(context.Background(), meeting))
	assert.NotEmpty(t, meeting.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
