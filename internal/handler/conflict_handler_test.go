package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/uai-sistemas/planning-api/internal/models"
	"github.com/uai-sistemas/planning-api/internal/service"
	"github.com/uai-sistemas/planning-api/pkg/response"
)

type offeringsStub struct {
	offerings []models.ClassOffering
}

func (s *offeringsStub) ListBySemester(ctx context.Context, semesterID string) ([]models.ClassOffering, error) {
	return s.offerings, nil
}

type meetingsStub struct {
	meetings []models.ClassMeeting
}

func (s *meetingsStub) ListByOfferingIDs(ctx context.Context, offeringIDs []string) ([]models.ClassMeeting, error) {
	return s.meetings, nil
}

type groupsStub struct {
	groups []models.ClassGroup
}

func (s *groupsStub) ListByOfferingIDs(ctx context.Context, offeringIDs []string) ([]models.ClassGroup, error) {
	return s.groups, nil
}

type groupTeachersStub struct{}

func (groupTeachersStub) ListByGroupIDs(ctx context.Context, groupIDs []string) ([]models.ClassGroupTeacher, error) {
	return nil, nil
}

type classTeachersStub struct{}

func (classTeachersStub) ListByOfferingIDs(ctx context.Context, offeringIDs []string) ([]models.ClassTeacher, error) {
	return nil, nil
}

type storeStub struct {
	stored []models.ScheduleConflict
}

func (s *storeStub) ListBySemester(ctx context.Context, semesterID string) ([]models.ScheduleConflict, error) {
	return s.stored, nil
}

func (s *storeStub) ReplaceForSemester(ctx context.Context, semesterID string, conflicts []models.ScheduleConflict) error {
	s.stored = conflicts
	return nil
}

func newConflictHandlerFixture(store *storeStub, offerings []models.ClassOffering, meetings []models.ClassMeeting, groups []models.ClassGroup) *ConflictHandler {
	conflictSvc := service.NewConflictService(
		&offeringsStub{offerings: offerings},
		&meetingsStub{meetings: meetings},
		&groupsStub{groups: groups},
		groupTeachersStub{},
		classTeachersStub{},
		store,
		nil,
		time.Minute,
		zap.NewNop(),
	)
	exportSvc := service.NewExportService(conflictSvc, zap.NewNop())
	return NewConflictHandler(conflictSvc, exportSvc, service.NewMetricsService())
}

func TestConflictHandlerDetect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	room := "room-1"
	handler := newConflictHandlerFixture(
		&storeStub{},
		[]models.ClassOffering{{ID: "off-1", SemesterID: "2026-1"}, {ID: "off-2", SemesterID: "2026-1"}},
		[]models.ClassMeeting{
			{ID: "m-1", ClassOfferingID: "off-1", ClassGroupID: "grp-1", DayOfWeek: models.DayLunes, StartTime: "08:00", EndTime: "10:00", ClassroomID: &room},
			{ID: "m-2", ClassOfferingID: "off-2", ClassGroupID: "grp-2", DayOfWeek: models.DayLunes, StartTime: "09:00", EndTime: "11:00", ClassroomID: &room},
		},
		[]models.ClassGroup{
			{ID: "grp-1", ClassOfferingID: "off-1", GroupType: models.GroupTypeTheory},
			{ID: "grp-2", ClassOfferingID: "off-2", GroupType: models.GroupTypeTheory},
		},
	)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/planning/schedule-conflicts/detect/2026-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "semesterId", Value: "2026-1"}}

	handler.Detect(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var result models.DetectionResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "2026-1", result.SemesterID)
	assert.Equal(t, 1, result.Created)
}

func TestConflictHandlerListRequiresSemester(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newConflictHandlerFixture(&storeStub{}, nil, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/planning/schedule-conflicts", nil)
	c.Request = req

	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConflictHandlerExportRejectsUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newConflictHandlerFixture(&storeStub{}, nil, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/planning/schedule-conflicts/export?semesterId=2026-1&format=xlsx", nil)
	c.Request = req

	handler.Export(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConflictHandlerExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	teacher := "teacher-1"
	store := &storeStub{stored: []models.ScheduleConflict{
		{
			ID:             "c-1",
			SemesterID:     "2026-1",
			ConflictType:   models.ConflictTeacherOverlap,
			Severity:       models.SeverityCritical,
			TeacherID:      &teacher,
			MeetingAID:     "m-1",
			MeetingBID:     "m-2",
			OverlapMinutes: 45,
			DetectedAt:     time.Now().UTC(),
		},
	}}
	handler := newConflictHandlerFixture(store, nil, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/planning/schedule-conflicts/export?semesterId=2026-1", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "conflicts_2026-1.csv")
	assert.Contains(t, w.Body.String(), "TEACHER_OVERLAP")
}
