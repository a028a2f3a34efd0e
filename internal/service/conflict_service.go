package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/uai-sistemas/planning-api/internal/models"
	appErrors "github.com/uai-sistemas/planning-api/pkg/errors"
)

type conflictOfferingReader interface {
	ListBySemester(ctx context.Context, semesterID string) ([]models.ClassOffering, error)
}

type conflictMeetingReader interface {
	ListByOfferingIDs(ctx context.Context, offeringIDs []string) ([]models.ClassMeeting, error)
}

type conflictGroupReader interface {
	ListByOfferingIDs(ctx context.Context, offeringIDs []string) ([]models.ClassGroup, error)
}

type groupTeacherReader interface {
	ListByGroupIDs(ctx context.Context, groupIDs []string) ([]models.ClassGroupTeacher, error)
}

type classTeacherReader interface {
	ListByOfferingIDs(ctx context.Context, offeringIDs []string) ([]models.ClassTeacher, error)
}

type conflictStore interface {
	ListBySemester(ctx context.Context, semesterID string) ([]models.ScheduleConflict, error)
	ReplaceForSemester(ctx context.Context, semesterID string, conflicts []models.ScheduleConflict) error
}

type conflictCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ConflictService recomputes and serves schedule conflicts for a semester.
type ConflictService struct {
	offerings     conflictOfferingReader
	meetings      conflictMeetingReader
	groups        conflictGroupReader
	groupTeachers groupTeacherReader
	classTeachers classTeacherReader
	conflicts     conflictStore
	cache         conflictCache
	cacheTTL      time.Duration
	logger        *zap.Logger

	mu        sync.Mutex
	semesters map[string]*sync.Mutex
}

// NewConflictService creates a conflict service instance. cache may be nil.
func NewConflictService(
	offerings conflictOfferingReader,
	meetings conflictMeetingReader,
	groups conflictGroupReader,
	groupTeachers groupTeacherReader,
	classTeachers classTeacherReader,
	conflicts conflictStore,
	cache conflictCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ConflictService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictService{
		offerings:     offerings,
		meetings:      meetings,
		groups:        groups,
		groupTeachers: groupTeachers,
		classTeachers: classTeachers,
		conflicts:     conflicts,
		cache:         cache,
		cacheTTL:      cacheTTL,
		logger:        logger,
		semesters:     make(map[string]*sync.Mutex),
	}
}

// Detect recomputes the full conflict set for a semester and replaces the
// stored rows. Runs for the same semester are serialized; a semester with no
// offerings clears the store and reports zero created.
func (s *ConflictService) Detect(ctx context.Context, semesterID string) (*models.DetectionResult, error) {
	lock := s.semesterLock(semesterID)
	lock.Lock()
	defer lock.Unlock()

	offerings, err := s.offerings.ListBySemester(ctx, semesterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load offerings")
	}

	if len(offerings) == 0 {
		if err := s.conflicts.ReplaceForSemester(ctx, semesterID, nil); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear conflicts")
		}
		s.invalidate(ctx, semesterID)
		return &models.DetectionResult{SemesterID: semesterID, Created: 0}, nil
	}

	offeringIDs := make([]string, len(offerings))
	for i, offering := range offerings {
		offeringIDs[i] = offering.ID
	}

	meetings, err := s.meetings.ListByOfferingIDs(ctx, offeringIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load meetings")
	}
	groups, err := s.groups.ListByOfferingIDs(ctx, offeringIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load groups")
	}

	groupIDs := make([]string, len(groups))
	for i, group := range groups {
		groupIDs[i] = group.ID
	}
	var groupTeachers []models.ClassGroupTeacher
	if len(groupIDs) > 0 {
		if groupTeachers, err = s.groupTeachers.ListByGroupIDs(ctx, groupIDs); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group teachers")
		}
	}
	classTeachers, err := s.classTeachers.ListByOfferingIDs(ctx, offeringIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class teachers")
	}

	meetingTeachers := resolveMeetingTeachers(meetings, groupTeachers, classTeachers)
	conflicts := detect(semesterID, meetings, meetingTeachers, time.Now().UTC())

	if err := s.conflicts.ReplaceForSemester(ctx, semesterID, conflicts); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace conflicts")
	}
	s.invalidate(ctx, semesterID)

	s.logger.Info("conflict detection completed",
		zap.String("semester_id", semesterID),
		zap.Int("meetings", len(meetings)),
		zap.Int("conflicts", len(conflicts)),
	)

	return &models.DetectionResult{SemesterID: semesterID, Created: len(conflicts)}, nil
}

// List returns the persisted conflicts of a semester, newest first. Listing
// a single semester goes through the cache when one is configured.
func (s *ConflictService) List(ctx context.Context, semesterID string) ([]models.ScheduleConflict, error) {
	key := conflictCacheKey(semesterID)
	if s.cache != nil && semesterID != "" {
		var cached []models.ScheduleConflict
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	conflicts, err := s.conflicts.ListBySemester(ctx, semesterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list conflicts")
	}

	if s.cache != nil && semesterID != "" {
		if err := s.cache.Set(ctx, key, conflicts, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache conflict listing", zap.Error(err))
		}
	}
	return conflicts, nil
}

func (s *ConflictService) semesterLock(semesterID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.semesters[semesterID]
	if !ok {
		lock = &sync.Mutex{}
		s.semesters[semesterID] = lock
	}
	return lock
}

func (s *ConflictService) invalidate(ctx context.Context, semesterID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, conflictCacheKey(semesterID)); err != nil {
		s.logger.Warn("failed to invalidate conflict cache", zap.Error(err))
	}
}

func conflictCacheKey(semesterID string) string {
	return "conflicts:semester:" + semesterID
}

// resolveMeetingTeachers maps each meeting to its effective teacher set:
// group-level assignments when any exist, otherwise the offering-level set.
// A meeting with no resolvable teacher maps to an empty set.
func resolveMeetingTeachers(
	meetings []models.ClassMeeting,
	groupTeachers []models.ClassGroupTeacher,
	classTeachers []models.ClassTeacher,
) map[string]map[string]struct{} {
	byGroup := make(map[string]map[string]struct{})
	for _, assignment := range groupTeachers {
		set, ok := byGroup[assignment.ClassGroupID]
		if !ok {
			set = make(map[string]struct{})
			byGroup[assignment.ClassGroupID] = set
		}
		set[assignment.TeacherID] = struct{}{}
	}

	byOffering := make(map[string]map[string]struct{})
	for _, assignment := range classTeachers {
		set, ok := byOffering[assignment.ClassOfferingID]
		if !ok {
			set = make(map[string]struct{})
			byOffering[assignment.ClassOfferingID] = set
		}
		set[assignment.TeacherID] = struct{}{}
	}

	resolved := make(map[string]map[string]struct{}, len(meetings))
	for _, meeting := range meetings {
		set := make(map[string]struct{})
		for teacherID := range byGroup[meeting.ClassGroupID] {
			set[teacherID] = struct{}{}
		}
		if len(set) == 0 {
			for teacherID := range byOffering[meeting.ClassOfferingID] {
				set[teacherID] = struct{}{}
			}
		}
		resolved[meeting.ID] = set
	}
	return resolved
}

// detect runs the pairwise comparison over every meeting of the semester.
// Pair order follows load order, so identical inputs always yield the same
// conflict set.
func detect(
	semesterID string,
	meetings []models.ClassMeeting,
	meetingTeachers map[string]map[string]struct{},
	detectedAt time.Time,
) []models.ScheduleConflict {
	var conflicts []models.ScheduleConflict

	for i := 0; i < len(meetings); i++ {
		for j := i + 1; j < len(meetings); j++ {
			a := meetings[i]
			b := meetings[j]
			if a.DayOfWeek != b.DayOfWeek {
				continue
			}

			overlap := overlapMinutes(a.StartTime, a.EndTime, b.StartTime, b.EndTime)
			if overlap <= 0 {
				continue
			}

			if a.ClassroomID != nil && b.ClassroomID != nil && *a.ClassroomID == *b.ClassroomID {
				conflict := newConflict(models.ConflictClassroomOverlap, semesterID, overlap, a, b, detectedAt)
				conflict.ClassroomID = a.ClassroomID
				conflicts = append(conflicts, conflict)
			}

			// Same group twice in one window means duplicate or erroneous
			// entries, not a collision between different groups.
			if a.ClassGroupID == b.ClassGroupID {
				conflict := newConflict(models.ConflictGroupOverlap, semesterID, overlap, a, b, detectedAt)
				groupID := a.ClassGroupID
				conflict.ClassGroupID = &groupID
				conflicts = append(conflicts, conflict)
			}

			if a.ClassOfferingID == b.ClassOfferingID {
				conflict := newConflict(models.ConflictSectionOverlap, semesterID, overlap, a, b, detectedAt)
				offeringID := a.ClassOfferingID
				conflict.ClassOfferingID = &offeringID
				conflicts = append(conflicts, conflict)
			}

			for _, teacherID := range sharedTeachers(meetingTeachers[a.ID], meetingTeachers[b.ID]) {
				conflict := newConflict(models.ConflictTeacherOverlap, semesterID, overlap, a, b, detectedAt)
				id := teacherID
				conflict.TeacherID = &id
				conflicts = append(conflicts, conflict)
			}
		}
	}
	return conflicts
}

// sharedTeachers returns the sorted intersection of two teacher sets; each
// shared teacher yields its own TEACHER_OVERLAP conflict.
func sharedTeachers(a, b map[string]struct{}) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	var shared []string
	for teacherID := range a {
		if _, ok := b[teacherID]; ok {
			shared = append(shared, teacherID)
		}
	}
	sort.Strings(shared)
	return shared
}

func newConflict(
	conflictType models.ConflictType,
	semesterID string,
	overlap int,
	a, b models.ClassMeeting,
	detectedAt time.Time,
) models.ScheduleConflict {
	detail, _ := json.Marshal(models.ConflictDetail{
		DayOfWeek:     a.DayOfWeek,
		MeetingAStart: a.StartTime,
		MeetingAEnd:   a.EndTime,
		MeetingBStart: b.StartTime,
		MeetingBEnd:   b.EndTime,
	})
	return models.ScheduleConflict{
		ID:             uuid.NewString(),
		SemesterID:     semesterID,
		ConflictType:   conflictType,
		Severity:       severityFor(overlap),
		MeetingAID:     a.ID,
		MeetingBID:     b.ID,
		OverlapMinutes: overlap,
		Detail:         detail,
		DetectedAt:     detectedAt,
		CreatedAt:      detectedAt,
	}
}

// severityFor grades an overlap: half an hour or more blocks operations,
// ten minutes warns, anything shorter is informational (passing periods).
func severityFor(overlap int) models.ConflictSeverity {
	switch {
	case overlap >= 30:
		return models.SeverityCritical
	case overlap >= 10:
		return models.SeverityWarning
	default:
		return models.SeverityInfo
	}
}
