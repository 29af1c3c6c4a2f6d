package application

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
)

type mockSubmissions struct{ mock.Mock }

func (m *mockSubmissions) List(ctx context.Context) ([]admindomain.Submission, error) {
	args := m.Called(ctx)
	subs, _ := args.Get(0).([]admindomain.Submission)
	return subs, args.Error(1)
}

func (m *mockSubmissions) FindByID(ctx context.Context, id string) (*admindomain.Submission, error) {
	args := m.Called(ctx, id)
	sub, _ := args.Get(0).(*admindomain.Submission)
	return sub, args.Error(1)
}

func (m *mockSubmissions) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) FindByEmail(ctx context.Context, email string) (*admindomain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*admindomain.User)
	return user, args.Error(1)
}

func (m *mockUsers) Create(ctx context.Context, user *admindomain.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockProfiles struct{ mock.Mock }

func (m *mockProfiles) FindByUserID(ctx context.Context, userID string) (*admindomain.AdminProfile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*admindomain.AdminProfile)
	return profile, args.Error(1)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Revoke(ctx context.Context, session admindomain.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessions) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) Issue(user admindomain.User) (admindomain.Session, error) {
	args := m.Called(user)
	return args.Get(0).(admindomain.Session), args.Error(1)
}

func (m *mockTokens) Parse(token string) (admindomain.Session, error) {
	args := m.Called(token)
	return args.Get(0).(admindomain.Session), args.Error(1)
}

type mockBlobs struct{ mock.Mock }

func (m *mockBlobs) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	args := m.Called(ctx, path)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *mockBlobs) PublicURL(path string) string {
	return "https://media.example/files/casting-files/" + path
}

type mockRenderer struct{ mock.Mock }

func (m *mockRenderer) Submission(ctx context.Context, submission admindomain.Submission, blobs BlobReader) ([]byte, error) {
	args := m.Called(ctx, submission, blobs)
	content, _ := args.Get(0).([]byte)
	return content, args.Error(1)
}

func (m *mockRenderer) Report(ctx context.Context, submissions []admindomain.Submission, generatedAt time.Time) ([]byte, error) {
	args := m.Called(ctx, submissions, generatedAt)
	content, _ := args.Get(0).([]byte)
	return content, args.Error(1)
}
