package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusd/course-planner-api/internal/dto"
	"github.com/campusd/course-planner-api/pkg/config"
	appErrors "github.com/campusd/course-planner-api/pkg/errors"
	"github.com/campusd/course-planner-api/pkg/jobs"
	"github.com/campusd/course-planner-api/pkg/storage"
)

// Export job states.
const (
	ExportStatePending = "pending"
	ExportStateReady   = "ready"
	ExportStateFailed  = "failed"
)

type exportJob struct {
	ID        string
	SessionID string
	Format    string
	State     string
	File      string
	Token     string
	Created   time.Time
	ExpiresAt time.Time
	Error     string
}

// ExportJobService renders schedule exports in the background. Rendered
// files land in local storage and are served through signed, expiring
// download tokens. The job registry is in-memory: a lost job simply means
// the client re-requests the export.
type ExportJobService struct {
	exports      *ExportService
	store        *storage.LocalStorage
	signer       *storage.SignedURLSigner
	queue        *jobs.Queue
	basePath     string
	cleanupEvery time.Duration
	resultTTL    time.Duration
	logger       *zap.Logger

	done     chan struct{}
	stopOnce sync.Once

	mu   sync.Mutex
	jobs map[string]*exportJob
}

// NewExportJobService constructs the async export pipeline. basePath is the
// API prefix download URLs are rooted at.
func NewExportJobService(exports *ExportService, cfg config.ExportConfig, basePath string, logger *zap.Logger) (*ExportJobService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := storage.NewLocalStorage(cfg.Dir)
	if err != nil {
		return nil, err
	}

	resultTTL := cfg.URLTTL
	if resultTTL <= 0 {
		resultTTL = 24 * time.Hour
	}
	s := &ExportJobService{
		exports:      exports,
		store:        store,
		signer:       storage.NewSignedURLSigner(cfg.SignSecret, cfg.URLTTL),
		basePath:     basePath,
		cleanupEvery: cfg.CleanupInterval,
		resultTTL:    resultTTL,
		logger:       logger,
		done:         make(chan struct{}),
		jobs:         make(map[string]*exportJob),
	}
	s.queue = jobs.NewQueue("exports", s.render, jobs.QueueConfig{
		Workers: cfg.Workers,
		Logger:  logger,
	})
	return s, nil
}

// Start launches the render workers and the periodic cleanup of expired
// exports. A non-positive cleanup interval disables the loop.
func (s *ExportJobService) Start(ctx context.Context) {
	s.queue.Start(ctx)
	if s.cleanupEvery > 0 {
		go s.cleanupLoop(ctx)
	}
}

// Stop drains the render workers and ends the cleanup loop.
func (s *ExportJobService) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
	s.queue.Stop()
}

func (s *ExportJobService) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cleanupEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.cleanupExpired()
		}
	}
}

// cleanupExpired drops registry entries whose download window has passed,
// deletes their files, and sweeps any orphaned files left behind by lost
// registry entries. Pending and failed entries age out after the result TTL.
func (s *ExportJobService) cleanupExpired() {
	now := time.Now()
	cutoff := now.Add(-s.resultTTL)

	s.mu.Lock()
	var expired []*exportJob
	for id, job := range s.jobs {
		switch {
		case job.State == ExportStateReady && now.After(job.ExpiresAt):
			expired = append(expired, job)
			delete(s.jobs, id)
		case job.State != ExportStateReady && job.Created.Before(cutoff):
			delete(s.jobs, id)
		}
	}
	s.mu.Unlock()

	for _, job := range expired {
		_, relPath, _, err := s.signer.Parse(job.Token, true)
		if err != nil {
			continue
		}
		if err := s.store.Delete(relPath); err != nil {
			s.logger.Warn("failed to delete expired export",
				zap.String("job_id", job.ID), zap.Error(err))
		}
	}

	swept, err := s.store.CleanupOlderThan(s.resultTTL)
	if err != nil {
		s.logger.Warn("export cleanup sweep failed", zap.Error(err))
		return
	}
	if len(expired) > 0 || len(swept) > 0 {
		s.logger.Info("cleaned up expired exports",
			zap.Int("jobs", len(expired)), zap.Int("files", len(swept)))
	}
}

// Enqueue schedules an export render for a session and returns the pending
// job view.
func (s *ExportJobService) Enqueue(ctx context.Context, sessionID, format string) (dto.ExportJobView, error) {
	if format != ExportFormatPDF && format != ExportFormatICS {
		return dto.ExportJobView{}, appErrors.Clone(appErrors.ErrValidation, "unsupported export format "+format)
	}
	// Resolving the session up front turns an unknown id into an immediate
	// 404 instead of a failed job.
	if _, err := s.exports.planner.Selections(ctx, sessionID); err != nil {
		return dto.ExportJobView{}, err
	}

	job := &exportJob{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Format:    format,
		State:     ExportStatePending,
		Created:   time.Now(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: format, Payload: sessionID}); err != nil {
		s.mu.Lock()
		delete(s.jobs, job.ID)
		s.mu.Unlock()
		return dto.ExportJobView{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export")
	}
	return s.view(job.ID)
}

// Status returns the current job view, including the signed download URL
// once the render is ready.
func (s *ExportJobService) Status(jobID string) (dto.ExportJobView, error) {
	return s.view(jobID)
}

// Open validates a download token and returns the rendered file handle plus
// response metadata.
func (s *ExportJobService) Open(jobID, token string) (*os.File, dto.ExportDownload, error) {
	tokenJob, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, dto.ExportDownload{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid download token")
	}
	if tokenJob != jobID {
		return nil, dto.ExportDownload{}, appErrors.Clone(appErrors.ErrValidation, "token does not match export job")
	}

	s.mu.Lock()
	job, ok := s.jobs[jobID]
	s.mu.Unlock()
	if !ok || job.State != ExportStateReady {
		return nil, dto.ExportDownload{}, appErrors.Clone(appErrors.ErrNotFound, "export not ready")
	}

	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, dto.ExportDownload{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export")
	}
	return file, downloadMeta(job.Format), nil
}

// render is the queue handler: it renders the schedule synchronously and
// publishes the result under a signed token.
func (s *ExportJobService) render(ctx context.Context, job jobs.Job) error {
	sessionID, _ := job.Payload.(string)

	file, err := s.exports.Export(ctx, sessionID, job.Type)
	if err != nil {
		s.fail(job.ID, err)
		return err
	}

	relPath := fmt.Sprintf("%s/schedule.%s", job.ID, job.Type)
	if _, err := s.store.Save(relPath, file.Content); err != nil {
		s.fail(job.ID, err)
		return err
	}
	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		s.fail(job.ID, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.jobs[job.ID]
	if !ok {
		return nil
	}
	stored.State = ExportStateReady
	stored.File = relPath
	stored.Token = token
	stored.ExpiresAt = expiresAt
	stored.Error = ""
	return nil
}

func (s *ExportJobService) fail(jobID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[jobID]; ok {
		job.State = ExportStateFailed
		job.Error = err.Error()
	}
}

func (s *ExportJobService) view(jobID string) (dto.ExportJobView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return dto.ExportJobView{}, appErrors.Clone(appErrors.ErrNotFound, "unknown export job "+jobID)
	}

	view := dto.ExportJobView{
		JobID:     job.ID,
		SessionID: job.SessionID,
		Format:    job.Format,
		State:     job.State,
		Error:     job.Error,
	}
	if job.State == ExportStateReady {
		view.DownloadURL = fmt.Sprintf("%s/exports/%s/download?token=%s", s.basePath, job.ID, job.Token)
		view.ExpiresAt = job.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return view, nil
}

func downloadMeta(format string) dto.ExportDownload {
	if format == ExportFormatICS {
		return dto.ExportDownload{ContentType: "text/calendar", Filename: "schedule.ics"}
	}
	return dto.ExportDownload{ContentType: "application/pdf", Filename: "schedule.pdf"}
}
