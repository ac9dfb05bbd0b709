package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campusd/course-planner-api/internal/models"
	"github.com/campusd/course-planner-api/pkg/config"
	appErrors "github.com/campusd/course-planner-api/pkg/errors"
	"github.com/campusd/course-planner-api/pkg/export"
)

// Export formats.
const (
	ExportFormatPDF = "pdf"
	ExportFormatICS = "ics"
)

type selectionSource interface {
	Selections(ctx context.Context, sessionID string) ([]models.Selection, error)
}

// ExportService renders a session's schedule as a downloadable document.
type ExportService struct {
	planner selectionSource
	pdf     *export.PDFExporter
	ics     *export.ICSExporter
	logger  *zap.Logger
}

// NewExportService constructs the exporter from config-supplied term dates.
func NewExportService(planner selectionSource, cfg config.ExportConfig, logger *zap.Logger) (*ExportService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fall, err := parseTermDates(cfg.FallStart, cfg.FallEnd)
	if err != nil {
		return nil, fmt.Errorf("fall term dates: %w", err)
	}
	winter, err := parseTermDates(cfg.WinterStart, cfg.WinterEnd)
	if err != nil {
		return nil, fmt.Errorf("winter term dates: %w", err)
	}
	return &ExportService{
		planner: planner,
		pdf:     export.NewPDFExporter(),
		ics:     export.NewICSExporter(fall, winter),
		logger:  logger,
	}, nil
}

// ExportFile is a rendered download.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Export renders the session schedule in the requested format.
func (s *ExportService) Export(ctx context.Context, sessionID, format string) (ExportFile, error) {
	selections, err := s.planner.Selections(ctx, sessionID)
	if err != nil {
		return ExportFile{}, err
	}

	switch format {
	case ExportFormatPDF:
		sched := models.NewSchedule()
		for _, sel := range selections {
			if err := sched.Add(sel); err != nil {
				return ExportFile{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "rebuild schedule for export")
			}
		}
		fall, winter := sched.WeekView()
		content, err := s.pdf.Render(fall, winter)
		if err != nil {
			return ExportFile{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return ExportFile{Content: content, ContentType: "application/pdf", Filename: "schedule.pdf"}, nil

	case ExportFormatICS:
		content, err := s.ics.Render(selections)
		if err != nil {
			return ExportFile{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render calendar")
		}
		return ExportFile{Content: content, ContentType: "text/calendar", Filename: "schedule.ics"}, nil
	}

	return ExportFile{}, appErrors.Clone(appErrors.ErrValidation, "unsupported export format "+format)
}

func parseTermDates(start, end string) (export.TermDates, error) {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return export.TermDates{}, err
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return export.TermDates{}, err
	}
	if e.Before(s) {
		return export.TermDates{}, fmt.Errorf("term ends %s before it starts %s", end, start)
	}
	return export.TermDates{Start: s, End: e}, nil
}
