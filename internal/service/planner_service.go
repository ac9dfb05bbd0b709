package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusd/course-planner-api/internal/catalog"
	"github.com/campusd/course-planner-api/internal/dto"
	"github.com/campusd/course-planner-api/internal/models"
	appErrors "github.com/campusd/course-planner-api/pkg/errors"
)

type scheduleStore interface {
	Save(ctx context.Context, sessionID string, snap models.ScheduleSnapshot) error
	Load(ctx context.Context, sessionID string) (models.ScheduleSnapshot, error)
	Delete(ctx context.Context, sessionID string) error
}

// PlannerService owns the per-session schedules. The catalog is shared
// read-only; every schedule belongs to exactly one session and mutations on
// it are serialized with a per-session mutex. After each mutation the
// schedule snapshot is persisted; a failed save is surfaced in the response
// but never touches the in-memory state.
type PlannerService struct {
	catalog   *catalog.Catalog
	store     scheduleStore
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*plannerSession
}

type plannerSession struct {
	mu       sync.Mutex
	schedule *models.Schedule
}

// NewPlannerService constructs the planner.
func NewPlannerService(cat *catalog.Catalog, store scheduleStore, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *PlannerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{
		catalog:   cat,
		store:     store,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		sessions:  make(map[string]*plannerSession),
	}
}

// AddSelectionRequest describes an add attempt or a dry-run check.
type AddSelectionRequest struct {
	CourseCode     string   `json:"course_code" validate:"required"`
	SectionIDs     []string `json:"section_ids"`
	IgnoreCapacity bool     `json:"ignore_capacity"`
}

// CreateSession starts a fresh planning session and persists its empty
// snapshot so it survives a process restart.
func (s *PlannerService) CreateSession(ctx context.Context) (dto.SessionView, error) {
	id := uuid.NewString()
	sess := &plannerSession{schedule: models.NewSchedule()}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	if err := s.store.Save(ctx, id, sess.schedule.Snapshot()); err != nil {
		s.logger.Warn("failed to persist new session", zap.String("session_id", id), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.RecordSessionCreated()
	}
	return dto.SessionView{SessionID: id}, nil
}

// session returns the live session, restoring it from the snapshot store
// when this process has not seen the id yet. An id with no snapshot is
// unknown.
func (s *PlannerService) session(ctx context.Context, id string) (*plannerSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}

	snap, err := s.store.Load(ctx, id)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrCacheMiss) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown session "+id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}

	sched, err := s.catalog.Restore(snap)
	if err != nil {
		// A snapshot taken against an older catalog may reference courses
		// that no longer exist; the session continues with a fresh schedule.
		s.logger.Warn("failed to restore schedule snapshot, starting empty",
			zap.String("session_id", id), zap.Error(err))
		sched = models.NewSchedule()
	}

	sess := &plannerSession{schedule: sched}
	s.sessions[id] = sess
	return sess, nil
}

// persist saves the snapshot after a mutation and reports success. The
// in-memory schedule is already updated and stays valid either way.
func (s *PlannerService) persist(ctx context.Context, id string, sched *models.Schedule) bool {
	if err := s.store.Save(ctx, id, sched.Snapshot()); err != nil {
		s.logger.Warn("failed to persist schedule", zap.String("session_id", id), zap.Error(err))
		if s.metrics != nil {
			s.metrics.RecordSnapshotFailure()
		}
		return false
	}
	return true
}

// AddSelection resolves the request against the catalog, gates it through
// the conflict check, and appends it to the session's schedule when clear.
// A gated rejection is a normal outcome carried in the result, not an
// error.
func (s *PlannerService) AddSelection(ctx context.Context, sessionID string, req AddSelectionRequest) (dto.AddResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AddResult{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return dto.AddResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sel, err := s.catalog.ResolveSelection(req.CourseCode, req.SectionIDs)
	if err != nil {
		return dto.AddResult{}, err
	}
	if _, present := sess.schedule.Find(sel.Course.Code); present {
		return dto.AddResult{}, appErrors.Clone(appErrors.ErrDuplicateCourse, "course "+sel.Course.Code+" already in schedule")
	}

	check := sess.schedule.CheckSelection(sel, req.IgnoreCapacity)
	if s.metrics != nil {
		s.metrics.RecordConflictCheck(check.OK())
	}
	result := dto.AddResult{Check: dto.NewSectionsCheckResult(check, FormatSectionsCheck(check))}
	if !check.OK() {
		return result, nil
	}

	if err := sess.schedule.Add(sel); err != nil {
		return dto.AddResult{}, appErrors.Wrap(err, appErrors.ErrDuplicateCourse.Code, appErrors.ErrDuplicateCourse.Status, "course already in schedule")
	}
	if s.metrics != nil {
		s.metrics.RecordMutation("add")
	}

	result.Added = true
	result.Persisted = s.persist(ctx, sessionID, sess.schedule)
	view := s.scheduleView(sess.schedule)
	result.Schedule = &view
	return result, nil
}

// RemoveSelection removes a course from the schedule by code or unique code
// prefix.
func (s *PlannerService) RemoveSelection(ctx context.Context, sessionID, courseCode string) (dto.ScheduleView, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return dto.ScheduleView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	removed := sess.schedule.Remove(courseCode)
	if !removed {
		course, lookupErr := s.catalog.GetByPrefix(courseCode)
		if lookupErr == nil {
			removed = sess.schedule.Remove(course.Code)
		}
	}
	if !removed {
		return dto.ScheduleView{}, appErrors.Clone(appErrors.ErrNotFound, "course "+courseCode+" not in schedule")
	}
	if s.metrics != nil {
		s.metrics.RecordMutation("remove")
	}
	s.persist(ctx, sessionID, sess.schedule)
	return s.scheduleView(sess.schedule), nil
}

// ClearSchedule drops every selection of the session.
func (s *PlannerService) ClearSchedule(ctx context.Context, sessionID string) error {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.schedule.Clear()
	if s.metrics != nil {
		s.metrics.RecordMutation("clear")
	}
	s.persist(ctx, sessionID, sess.schedule)
	return nil
}

// EndSession discards the session and deletes its persisted snapshot. The
// id is unusable afterwards; clients start over with a new session.
func (s *PlannerService) EndSession(ctx context.Context, sessionID string) error {
	// Resolve first so an unknown id stays a 404 instead of a silent no-op.
	if _, err := s.session(ctx, sessionID); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("failed to delete schedule snapshot",
			zap.String("session_id", sessionID), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.RecordMutation("end_session")
	}
	return nil
}

// CheckSections runs the candidate-sections check without mutating the
// schedule.
func (s *PlannerService) CheckSections(ctx context.Context, sessionID string, req AddSelectionRequest) (dto.SectionsCheckResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SectionsCheckResult{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return dto.SectionsCheckResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sel, err := s.catalog.ResolveSelection(req.CourseCode, req.SectionIDs)
	if err != nil {
		return dto.SectionsCheckResult{}, err
	}
	check := sess.schedule.CheckSelection(sel, req.IgnoreCapacity)
	if s.metrics != nil {
		s.metrics.RecordConflictCheck(check.OK())
	}
	return dto.NewSectionsCheckResult(check, FormatSectionsCheck(check)), nil
}

// CheckAddable screens a whole course against the session's schedule.
func (s *PlannerService) CheckAddable(ctx context.Context, sessionID, coursePrefix string) (dto.AddableCheckResult, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return dto.AddableCheckResult{}, err
	}
	course, err := s.catalog.GetByPrefix(coursePrefix)
	if err != nil {
		return dto.AddableCheckResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	check := sess.schedule.CheckAddable(course)
	if s.metrics != nil {
		s.metrics.RecordConflictCheck(check.OK())
	}
	return dto.NewAddableCheckResult(check, FormatAddableCheck(check)), nil
}

// Browse searches the catalog and partitions the hits into addable and
// blocked courses relative to the session's schedule.
func (s *PlannerService) Browse(ctx context.Context, sessionID string, keywords []string) (dto.BrowseResult, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return dto.BrowseResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	result := dto.BrowseResult{
		Addable: make([]dto.AddableCheckResult, 0),
		Blocked: make([]dto.AddableCheckResult, 0),
	}
	for _, course := range s.catalog.Search(keywords...) {
		check := sess.schedule.CheckAddable(course)
		item := dto.NewAddableCheckResult(check, FormatAddableCheck(check))
		if check.OK() {
			result.Addable = append(result.Addable, item)
		} else {
			result.Blocked = append(result.Blocked, item)
		}
	}
	return result, nil
}

// Schedule returns the session's current schedule view.
func (s *PlannerService) Schedule(ctx context.Context, sessionID string) (dto.ScheduleView, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return dto.ScheduleView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return s.scheduleView(sess.schedule), nil
}

// Selections exposes the raw selection list of a session for exports.
func (s *PlannerService) Selections(ctx context.Context, sessionID string) ([]models.Selection, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.schedule.Selections(), nil
}

// scheduleView rebuilds the derived weekly views. Callers hold the session
// lock.
func (s *PlannerService) scheduleView(sched *models.Schedule) dto.ScheduleView {
	fall, winter := sched.WeekView()
	view := dto.ScheduleView{
		Selections: make([]dto.SelectionView, 0, sched.Len()),
		Fall:       dto.NewTermWeekView(fall),
		Winter:     dto.NewTermWeekView(winter),
		Grid:       FormatWeekView(fall, winter),
	}
	for _, sel := range sched.Selections() {
		sv := dto.SelectionView{Course: dto.NewCourseSummary(sel.Course)}
		for _, section := range sel.ChosenSections() {
			sv.SectionIDs = append(sv.SectionIDs, section.ID)
		}
		view.Selections = append(view.Selections, sv)
	}
	return view
}
