package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/uai-sistemas/planning-api/internal/models"
	appErrors "github.com/uai-sistemas/planning-api/pkg/errors"
)

type offeringReaderStub struct {
	offerings []models.ClassOffering
	err       error
}

func (s *offeringReaderStub) ListBySemester(ctx context.Context, semesterID string) ([]models.ClassOffering, error) {
	return s.offerings, s.err
}

type meetingReaderStub struct {
	meetings []models.ClassMeeting
}

func (s *meetingReaderStub) ListByOfferingIDs(ctx context.Context, offeringIDs []string) ([]models.ClassMeeting, error) {
	return s.meetings, nil
}

type groupReaderStub struct {
	groups []models.ClassGroup
}

func (s *groupReaderStub) ListByOfferingIDs(ctx context.Context, offeringIDs []string) ([]models.ClassGroup, error) {
	return s.groups, nil
}

type groupTeacherReaderStub struct {
	assignments []models.ClassGroupTeacher
}

func (s *groupTeacherReaderStub) ListByGroupIDs(ctx context.Context, groupIDs []string) ([]models.ClassGroupTeacher, error) {
	return s.assignments, nil
}

type classTeacherReaderStub struct {
	assignments []models.ClassTeacher
}

func (s *classTeacherReaderStub) ListByOfferingIDs(ctx context.Context, offeringIDs []string) ([]models.ClassTeacher, error) {
	return s.assignments, nil
}

type conflictStoreStub struct {
	stored   []models.ScheduleConflict
	replaces int
}

func (s *conflictStoreStub) ListBySemester(ctx context.Context, semesterID string) ([]models.ScheduleConflict, error) {
	return s.stored, nil
}

func (s *conflictStoreStub) ReplaceForSemester(ctx context.Context, semesterID string, conflicts []models.ScheduleConflict) error {
	s.stored = conflicts
	s.replaces++
	return nil
}

type cacheStub struct {
	entries map[string][]byte
	sets    int
	deletes int
}

func newCacheStub() *cacheStub {
	return &cacheStub{entries: make(map[string][]byte)}
}

func (s *cacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := s.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *cacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.entries[key] = raw
	s.sets++
	return nil
}

func (s *cacheStub) Delete(ctx context.Context, key string) error {
	delete(s.entries, key)
	s.deletes++
	return nil
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func newDetectFixture(
	offerings []models.ClassOffering,
	meetings []models.ClassMeeting,
	groups []models.ClassGroup,
	groupTeachers []models.ClassGroupTeacher,
	classTeachers []models.ClassTeacher,
) (*ConflictService, *conflictStoreStub) {
	store := &conflictStoreStub{}
	svc := NewConflictService(
		&offeringReaderStub{offerings: offerings},
		&meetingReaderStub{meetings: meetings},
		&groupReaderStub{groups: groups},
		&groupTeacherReaderStub{assignments: groupTeachers},
		&classTeacherReaderStub{assignments: classTeachers},
		store,
		nil,
		time.Minute,
		zap.NewNop(),
	)
	return svc, store
}

func TestConflictServiceDetectFindsAllDimensions(t *testing.T) {
	offerings := []models.ClassOffering{
		{ID: "off-1", SemesterID: "2026-1"},
		{ID: "off-2", SemesterID: "2026-1"},
	}
	groups := []models.ClassGroup{
		{ID: "grp-1", ClassOfferingID: "off-1", GroupType: models.GroupTypeTheory},
		{ID: "grp-2", ClassOfferingID: "off-2", GroupType: models.GroupTypeTheory},
	}
	// Same classroom, same teacher, same day, 30 shared minutes.
	meetings := []models.ClassMeeting{
		{ID: "m-1", ClassOfferingID: "off-1", ClassGroupID: "grp-1", DayOfWeek: models.DayLunes, StartTime: "08:00", EndTime: "10:00", ClassroomID: strPtr("room-1")},
		{ID: "m-2", ClassOfferingID: "off-2", ClassGroupID: "grp-2", DayOfWeek: models.DayLunes, StartTime: "09:30", EndTime: "11:30", ClassroomID: strPtr("room-1")},
	}
	groupTeachers := []models.ClassGroupTeacher{
		{ID: "gt-1", ClassGroupID: "grp-1", TeacherID: "teacher-1"},
		{ID: "gt-2", ClassGroupID: "grp-2", TeacherID: "teacher-1"},
	}

	svc, store := newDetectFixture(offerings, meetings, groups, groupTeachers, nil)
	result, err := svc.Detect(context.Background(), "2026-1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)

	byType := make(map[models.ConflictType]models.ScheduleConflict)
	for _, c := range store.stored {
		byType[c.ConflictType] = c
	}
	require.Contains(t, byType, models.ConflictClassroomOverlap)
	require.Contains(t, byType, models.ConflictTeacherOverlap)

	classroom := byType[models.ConflictClassroomOverlap]
	assert.Equal(t, 30, classroom.OverlapMinutes)
	assert.Equal(t, models.SeverityCritical, classroom.Severity)
	assert.Equal(t, "room-1", *classroom.ClassroomID)
	assert.Equal(t, "m-1", classroom.MeetingAID)
	assert.Equal(t, "m-2", classroom.MeetingBID)

	teacher := byType[models.ConflictTeacherOverlap]
	assert.Equal(t, "teacher-1", *teacher.TeacherID)

	var detail models.ConflictDetail
	require.NoError(t, json.Unmarshal(classroom.Detail, &detail))
	assert.Equal(t, models.DayLunes, detail.DayOfWeek)
	assert.Equal(t, "09:30", detail.MeetingBStart)
}

func TestConflictServiceDetectSectionAndGroupOverlap(t *testing.T) {
	offerings := []models.ClassOffering{{ID: "off-1", SemesterID: "2026-1"}}
	groups := []models.ClassGroup{{ID: "grp-1", ClassOfferingID: "off-1", GroupType: models.GroupTypeTheory}}
	meetings := []models.ClassMeeting{
		{ID: "m-1", ClassOfferingID: "off-1", ClassGroupID: "grp-1", DayOfWeek: models.DayMartes, StartTime: "08:00", EndTime: "09:00"},
		{ID: "m-2", ClassOfferingID: "off-1", ClassGroupID: "grp-1", DayOfWeek: models.DayMartes, StartTime: "08:45", EndTime: "09:45"},
	}

	svc, store := newDetectFixture(offerings, meetings, groups, nil, nil)
	result, err := svc.Detect(context.Background(), "2026-1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)

	types := make([]models.ConflictType, 0, len(store.stored))
	for _, c := range store.stored {
		types = append(types, c.ConflictType)
		assert.Equal(t, 15, c.OverlapMinutes)
		assert.Equal(t, models.SeverityWarning, c.Severity)
	}
	assert.ElementsMatch(t, []models.ConflictType{models.ConflictGroupOverlap, models.ConflictSectionOverlap}, types)
}

func TestConflictServiceDetectIgnoresDifferentDaysAndTouchingBounds(t *testing.T) {
	offerings := []models.ClassOffering{{ID: "off-1", SemesterID: "2026-1"}}
	groups := []models.ClassGroup{{ID: "grp-1", ClassOfferingID: "off-1", GroupType: models.GroupTypeTheory}}
	meetings := []models.ClassMeeting{
		{ID: "m-1", ClassOfferingID: "off-1", ClassGroupID: "grp-1", DayOfWeek: models.DayLunes, StartTime: "08:00", EndTime: "10:00"},
		{ID: "m-2", ClassOfferingID: "off-1", ClassGroupID: "grp-1", DayOfWeek: models.DayMartes, StartTime: "08:00", EndTime: "10:00"},
		{ID: "m-3", ClassOfferingID: "off-1", ClassGroupID: "grp-1", DayOfWeek: models.DayLunes, StartTime: "10:00", EndTime: "12:00"},
	}

	svc, store := newDetectFixture(offerings, meetings, groups, nil, nil)
	result, err := svc.Detect(context.Background(), "2026-1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Empty(t, store.stored)
}

func TestConflictServiceDetectTeacherFanOut(t *testing.T) {
	offerings := []models.ClassOffering{
		{ID: "off-1", SemesterID: "2026-1"},
		{ID: "off-2", SemesterID: "2026-1"},
	}
	groups := []models.ClassGroup{
		{ID: "grp-1", ClassOfferingID: "off-1", GroupType: models.GroupTypeTheory},
		{ID: "grp-2", ClassOfferingID: "off-2", GroupType: models.GroupTypeTheory},
	}
	meetings := []models.ClassMeeting{
		{ID: "m-1", ClassOfferingID: "off-1", ClassGroupID: "grp-1", DayOfWeek: models.DayViernes, StartTime: "14:00", EndTime: "16:00"},
		{ID: "m-2", ClassOfferingID: "off-2", ClassGroupID: "grp-2", DayOfWeek: models.DayViernes, StartTime: "14:00", EndTime: "16:00"},
	}
	groupTeachers := []models.ClassGroupTeacher{
		{ID: "gt-1", ClassGroupID: "grp-1", TeacherID: "teacher-a"},
		{ID: "gt-2", ClassGroupID: "grp-1", TeacherID: "teacher-b"},
		{ID: "gt-3", ClassGroupID: "grp-2", TeacherID: "teacher-a"},
		{ID: "gt-4", ClassGroupID: "grp-2", TeacherID: "teacher-b"},
	}

	svc, store := newDetectFixture(offerings, meetings, groups, groupTeachers, nil)
	result, err := svc.Detect(context.Background(), "2026-1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)

	teacherIDs := make([]string, 0, 2)
	for _, c := range store.stored {
		require.Equal(t, models.ConflictTeacherOverlap, c.ConflictType)
		teacherIDs = append(teacherIDs, *c.TeacherID)
	}
	// Sorted intersection keeps repeated runs identical.
	assert.Equal(t, []string{"teacher-a", "teacher-b"}, teacherIDs)
}

func TestConflictServiceGroupAssignmentOverridesOfferingLevel(t *testing.T) {
	offerings := []models.ClassOffering{
		{ID: "off-1", SemesterID: "2026-1"},
		{ID: "off-2", SemesterID: "2026-1"},
	}
	groups := []models.ClassGroup{
		{ID: "grp-1", ClassOfferingID: "off-1", GroupType: models.GroupTypeTheory},
		{ID: "grp-2", ClassOfferingID: "off-2", GroupType: models.GroupTypeTheory},
	}
	meetings := []models.ClassMeeting{
		{ID: "m-1", ClassOfferingID: "off-1", ClassGroupID: "grp-1", DayOfWeek: models.DayJueves, StartTime: "08:00", EndTime: "10:00"},
		{ID: "m-2", ClassOfferingID: "off-2", ClassGroupID: "grp-2", DayOfWeek: models.DayJueves, StartTime: "08:00", EndTime: "10:00"},
	}
	// Both offerings share teacher-x at offering level, but grp-1 has its own
	// assignment, so the shared offering teacher does not apply to m-1.
	classTeachers := []models.ClassTeacher{
		{ID: "ct-1", ClassOfferingID: "off-1", TeacherID: "teacher-x"},
		{ID: "ct-2", ClassOfferingID: "off-2", TeacherID: "teacher-x"},
	}
	groupTeachers := []models.ClassGroupTeacher{
		{ID: "gt-1", ClassGroupID: "grp-1", TeacherID: "teacher-y"},
	}

	svc, store := newDetectFixture(offerings, meetings, groups, groupTeachers, classTeachers)
	result, err := svc.Detect(context.Background(), "2026-1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Empty(t, store.stored)
}

func TestConflictServiceFallsBackToOfferingTeachers(t *testing.T) {
	offerings := []models.ClassOffering{
		{ID: "off-1", SemesterID: "2026-1"},
		{ID: "off-2", SemesterID: "2026-1"},
	}
	groups := []models.ClassGroup{
		{ID: "grp-1", ClassOfferingID: "off-1", GroupType: models.GroupTypeTheory},
		{ID: "grp-2", ClassOfferingID: "off-2", GroupType: models.GroupTypeTheory},
	}
	meetings := []models.ClassMeeting{
		{ID: "m-1", ClassOfferingID: "off-1", ClassGroupID: "grp-1", DayOfWeek: models.DayMiercoles, StartTime: "08:00", EndTime: "10:00"},
		{ID: "m-2", ClassOfferingID: "off-2", ClassGroupID: "grp-2", DayOfWeek: models.DayMiercoles, StartTime: "09:00", EndTime: "11:00"},
	}
	classTeachers := []models.ClassTeacher{
		{ID: "ct-1", ClassOfferingID: "off-1", TeacherID: "teacher-x"},
		{ID: "ct-2", ClassOfferingID: "off-2", TeacherID: "teacher-x"},
	}

	svc, store := newDetectFixture(offerings, meetings, groups, nil, classTeachers)
	result, err := svc.Detect(context.Background(), "2026-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, models.ConflictTeacherOverlap, store.stored[0].ConflictType)
	assert.Equal(t, "teacher-x", *store.stored[0].TeacherID)
}

func TestConflictServiceDetectEmptySemesterClearsStore(t *testing.T) {
	store := &conflictStoreStub{stored: []models.ScheduleConflict{{ID: "stale"}}}
	svc := NewConflictService(
		&offeringReaderStub{},
		&meetingReaderStub{},
		&groupReaderStub{},
		&groupTeacherReaderStub{},
		&classTeacherReaderStub{},
		store,
		nil,
		time.Minute,
		zap.NewNop(),
	)

	result, err := svc.Detect(context.Background(), "2026-9")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Empty(t, store.stored)
	assert.Equal(t, 1, store.replaces)
}

func TestConflictServiceDetectIsIdempotent(t *testing.T) {
	offerings := []models.ClassOffering{{ID: "off-1", SemesterID: "2026-1"}}
	groups := []models.ClassGroup{{ID: "grp-1", ClassOfferingID: "off-1", GroupType: models.GroupTypeTheory}}
	meetings := []models.ClassMeeting{
		{ID: "m-1", ClassOfferingID: "off-1", ClassGroupID: "grp-1", DayOfWeek: models.DayLunes, StartTime: "08:00", EndTime: "09:00"},
		{ID: "m-2", ClassOfferingID: "off-1", ClassGroupID: "grp-1", DayOfWeek: models.DayLunes, StartTime: "08:30", EndTime: "09:30"},
	}

	svc, store := newDetectFixture(offerings, meetings, groups, nil, nil)

	first, err := svc.Detect(context.Background(), "2026-1")
	require.NoError(t, err)
	second, err := svc.Detect(context.Background(), "2026-1")
	require.NoError(t, err)

	assert.Equal(t, first.Created, second.Created)
	assert.Len(t, store.stored, second.Created)
	assert.Equal(t, 2, store.replaces)
}

func TestConflictServiceListUsesCache(t *testing.T) {
	store := &conflictStoreStub{stored: []models.ScheduleConflict{{ID: "c-1", SemesterID: "2026-1"}}}
	cache := newCacheStub()
	svc := NewConflictService(
		&offeringReaderStub{},
		&meetingReaderStub{},
		&groupReaderStub{},
		&groupTeacherReaderStub{},
		&classTeacherReaderStub{},
		store,
		cache,
		time.Minute,
		zap.NewNop(),
	)

	first, err := svc.List(context.Background(), "2026-1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, cache.sets)

	// Second listing is served from cache even if the store changes.
	store.stored = nil
	second, err := svc.List(context.Background(), "2026-1")
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestConflictServiceDetectInvalidatesCache(t *testing.T) {
	store := &conflictStoreStub{}
	cache := newCacheStub()
	cache.entries[conflictCacheKey("2026-1")] = []byte(`[{"id":"stale"}]`)
	svc := NewConflictService(
		&offeringReaderStub{},
		&meetingReaderStub{},
		&groupReaderStub{},
		&groupTeacherReaderStub{},
		&classTeacherReaderStub{},
		store,
		cache,
		time.Minute,
		zap.NewNop(),
	)

	_, err := svc.Detect(context.Background(), "2026-1")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.deletes)
	assert.NotContains(t, cache.entries, conflictCacheKey("2026-1"))
}

func TestSeverityThresholds(t *testing.T) {
	cases := []struct {
		overlap int
		want    models.ConflictSeverity
	}{
		{1, models.SeverityInfo},
		{9, models.SeverityInfo},
		{10, models.SeverityWarning},
		{29, models.SeverityWarning},
		{30, models.SeverityCritical},
		{120, models.SeverityCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, severityFor(tc.overlap), "overlap %d", tc.overlap)
	}
}
