package application

import (
	"context"
	"io"

	"github.com/alcymedia/casting-caly/api/internal/public/domain"
)

// SubmissionRepository is the table side of the backend facade used by the intake workflow.
type SubmissionRepository interface {
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	// Insert stores the row and fills in the identifier and created_at assigned by the store.
	Insert(ctx context.Context, submission *domain.Submission) error
}

// BlobUploader is the storage side of the backend facade.
type BlobUploader interface {
	Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error)
}

// SubmissionService describes the intake use-case.
type SubmissionService interface {
	Submit(ctx context.Context, cmd SubmitCommand) (*domain.Submission, error)
}

// SubmitCommand captures one intake attempt: the form fields and the picked files.
type SubmitCommand struct {
	Form   domain.IntakeForm
	Photos []domain.UploadFile
	CVs    []domain.UploadFile
}
