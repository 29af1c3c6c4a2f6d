package application

import (
	"context"
	"io"
	"time"

	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
)

// SubmissionRepository exposes the dashboard's read and delete operations on submissions.
type SubmissionRepository interface {
	// List returns every submission, newest first.
	List(ctx context.Context) ([]admindomain.Submission, error)
	FindByID(ctx context.Context, id string) (*admindomain.Submission, error)
	Delete(ctx context.Context, id string) error
}

// UserRepository stores authentication identities.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*admindomain.User, error)
	Create(ctx context.Context, user *admindomain.User) error
}

// AdminProfileRepository looks up the admin grant of a user.
type AdminProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*admindomain.AdminProfile, error)
}

// SessionRepository tracks revoked sessions until they would have expired anyway.
type SessionRepository interface {
	Revoke(ctx context.Context, session admindomain.Session) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(user admindomain.User) (admindomain.Session, error)
	Parse(token string) (admindomain.Session, error)
}

// BlobReader resolves and reads stored objects.
type BlobReader interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	PublicURL(path string) string
}

// DocumentRenderer produces the PDF exports. Photos are read through blobs one at a time.
type DocumentRenderer interface {
	Submission(ctx context.Context, submission admindomain.Submission, blobs BlobReader) ([]byte, error)
	Report(ctx context.Context, submissions []admindomain.Submission, generatedAt time.Time) ([]byte, error)
}

// AuthService describes the admin authentication use-cases.
type AuthService interface {
	SignUp(ctx context.Context, email, password string) error
	SignIn(ctx context.Context, email, password string) (*admindomain.Authorization, error)
	SignOut(ctx context.Context, token string) error
	Session(ctx context.Context, token string) (*admindomain.Session, error)
	RequireAdmin(ctx context.Context, token string) (*admindomain.Authorization, error)
}

// DashboardService describes the admin dashboard use-cases.
type DashboardService interface {
	Load(ctx context.Context) (*Dashboard, error)
	Detail(ctx context.Context, id string) (*admindomain.SubmissionDetail, error)
	Delete(ctx context.Context, id string) error
	ExportSubmission(ctx context.Context, id string) (*Document, error)
	ExportReport(ctx context.Context) (*Document, error)
}

// Dashboard is one fetch of the submission list with its aggregates.
type Dashboard struct {
	Submissions []admindomain.Submission
	Stats       admindomain.Stats
}

// Document is a rendered export ready for download.
type Document struct {
	FileName string
	Content  []byte
}
