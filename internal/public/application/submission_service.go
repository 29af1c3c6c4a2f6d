package application

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alcymedia/casting-caly/api/internal/apperr"
	"github.com/alcymedia/casting-caly/api/internal/public/domain"
)

type submissionService struct {
	repo   SubmissionRepository
	blobs  BlobUploader
	logger *slog.Logger
	now    func() time.Time
}

// Option customises a SubmissionService.
type Option func(*submissionService)

// WithClock replaces the clock used for object names.
func WithClock(now func() time.Time) Option {
	return func(s *submissionService) { s.now = now }
}

// NewSubmissionService builds the intake workflow on top of the store and blob ports.
func NewSubmissionService(repo SubmissionRepository, blobs BlobUploader, logger *slog.Logger, opts ...Option) SubmissionService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &submissionService{repo: repo, blobs: blobs, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit runs count validation, the duplicate-phone check, the uploads and the
// insert, in that order. Each step gates the next; uploads that succeeded before
// a later failure are left in storage and reported in the log.
func (s *submissionService) Submit(ctx context.Context, cmd SubmitCommand) (*domain.Submission, error) {
	if err := domain.CheckPhotoCount(len(cmd.Photos)); err != nil {
		return nil, err
	}

	draft, err := draftFromForm(cmd.Form)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByPhone(ctx, draft.Phone)
	if err != nil {
		return nil, apperr.Store("check phone", err)
	}
	if exists {
		return nil, apperr.ErrDuplicatePhone
	}

	photoPaths, err := s.uploadAll(ctx, domain.PhotoFolder, cmd.Photos)
	if err != nil {
		return nil, err
	}
	draft.Photos = photoPaths

	stored := append([]string{}, photoPaths...)
	if len(cmd.CVs) > 0 {
		cvPaths, err := s.uploadAll(ctx, domain.CVFolder, cmd.CVs)
		if err != nil {
			s.logOrphans(stored, err)
			return nil, err
		}
		stored = append(stored, cvPaths...)
		first := cvPaths[0]
		draft.CVPortfolio = &first
	}

	if err := s.repo.Insert(ctx, draft); err != nil {
		s.logOrphans(stored, err)
		return nil, apperr.Store("insert submission", err)
	}

	s.logger.Info("submission stored", "submission_id", draft.ID, "photos", len(draft.Photos), "cv", draft.CVPortfolio != nil)
	return draft, nil
}

// uploadAll issues every upload concurrently. The first failure cancels the
// group context and is returned; the result keeps the caller's file order.
func (s *submissionService) uploadAll(ctx context.Context, folder string, files []domain.UploadFile) ([]string, error) {
	paths := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		objectPath := ObjectName(folder, file.Name, s.now())
		g.Go(func() error {
			storedPath, err := s.blobs.Upload(gctx, objectPath, file.ContentType, bytes.NewReader(file.Data))
			if err != nil {
				return &apperr.UploadError{Path: objectPath, Err: err}
			}
			paths[i] = storedPath
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logOrphans(nonEmpty(paths), err)
		return nil, err
	}
	return paths, nil
}

func (s *submissionService) logOrphans(paths []string, cause error) {
	if len(paths) == 0 {
		return
	}
	s.logger.Warn("uploaded objects left without a submission", "paths", paths, "err", cause)
}

// ObjectName builds "<folder>/<epoch-millis>-<base filename>".
func ObjectName(folder, filename string, at time.Time) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s/%d-%s", folder, at.UnixMilli(), base)
}

func draftFromForm(form domain.IntakeForm) (*domain.Submission, error) {
	gender, err := domain.NewGender(form.Sexo)
	if err != nil {
		return nil, apperr.Validation("sexo", "Selecione o sexo.")
	}
	province, err := domain.NewProvince(form.Provincia)
	if err != nil {
		return nil, apperr.Validation("provincia", "Selecione uma província válida.")
	}
	profile, err := domain.NewProfileType(form.Perfil)
	if err != nil {
		return nil, apperr.Validation("perfil", "Selecione um perfil válido.")
	}
	phone := strings.TrimSpace(form.Telefone)
	if phone == "" {
		return nil, apperr.Validation("telefone", "O telefone é obrigatório.")
	}
	return &domain.Submission{
		FullName:    strings.TrimSpace(form.Nome),
		Age:         form.Age(),
		Gender:      gender,
		Phone:       phone,
		Province:    province,
		ProfileType: profile,
		Motivation:  form.Motivacao,
	}, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
