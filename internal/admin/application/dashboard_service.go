package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
	"github.com/alcymedia/casting-caly/api/internal/apperr"
)

// DashboardConfig configures the dashboard service.
type DashboardConfig struct {
	// Location decides which calendar day counts as "today" and how export dates are rendered.
	Location       *time.Location
	PlaceholderURL string
	Now            func() time.Time
	Logger         *slog.Logger
}

type dashboardService struct {
	repo        SubmissionRepository
	blobs       BlobReader
	renderer    DocumentRenderer
	loc         *time.Location
	placeholder string
	now         func() time.Time
	logger      *slog.Logger
}

func NewDashboardService(repo SubmissionRepository, blobs BlobReader, renderer DocumentRenderer, cfg DashboardConfig) DashboardService {
	s := &dashboardService{
		repo:        repo,
		blobs:       blobs,
		renderer:    renderer,
		loc:         cfg.Location,
		placeholder: cfg.PlaceholderURL,
		now:         cfg.Now,
		logger:      cfg.Logger,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Load fetches the whole list. Nothing is retained between calls.
func (s *dashboardService) Load(ctx context.Context) (*Dashboard, error) {
	submissions, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Store("list submissions", err)
	}
	return &Dashboard{
		Submissions: submissions,
		Stats:       admindomain.ComputeStats(submissions, s.now(), s.loc),
	}, nil
}

func (s *dashboardService) Detail(ctx context.Context, id string) (*admindomain.SubmissionDetail, error) {
	submission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("find submission", err)
	}

	detail := &admindomain.SubmissionDetail{
		Submission:     *submission,
		PhotoURLs:      make([]string, 0, len(submission.Photos)),
		PlaceholderURL: s.placeholder,
	}
	for _, photo := range submission.Photos {
		detail.PhotoURLs = append(detail.PhotoURLs, s.blobs.PublicURL(photo))
	}
	if submission.HasCV() {
		cvURL := s.blobs.PublicURL(*submission.CVPortfolio)
		detail.CVURL = &cvURL
	}
	return detail, nil
}

// Delete removes the row only. Its photos and CV stay in storage.
func (s *dashboardService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Store("delete submission", err)
	}
	s.logger.Info("submission deleted", "submission_id", id)
	return nil
}

func (s *dashboardService) ExportSubmission(ctx context.Context, id string) (*Document, error) {
	submission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("find submission", err)
	}
	content, err := s.renderer.Submission(ctx, *submission, s.blobs)
	if err != nil {
		return nil, fmt.Errorf("render submission pdf: %w", err)
	}
	return &Document{FileName: admindomain.SubmissionPDFName(submission.FullName), Content: content}, nil
}

func (s *dashboardService) ExportReport(ctx context.Context) (*Document, error) {
	submissions, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Store("list submissions", err)
	}
	generatedAt := s.now().In(s.loc)
	content, err := s.renderer.Report(ctx, submissions, generatedAt)
	if err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return &Document{FileName: admindomain.ReportPDFName(generatedAt), Content: content}, nil
}
