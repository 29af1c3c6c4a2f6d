package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alcymedia/casting-caly/api/internal/apperr"
	"github.com/alcymedia/casting-caly/api/internal/public/domain"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) Insert(ctx context.Context, submission *domain.Submission) error {
	args := m.Called(ctx, submission)
	if args.Error(0) == nil {
		submission.ID = "sub-1"
		submission.CreatedAt = time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)
	}
	return args.Error(0)
}

type mockBlobs struct {
	mock.Mock
}

func (m *mockBlobs) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	args := m.Called(ctx, path, contentType)
	return args.String(0), args.Error(1)
}

var fixedNow = time.UnixMilli(1736500000000)

func validForm() domain.IntakeForm {
	return domain.IntakeForm{
		Nome:      "Ana Silva",
		Telefone:  "+258841234567",
		Idade:     "25",
		Sexo:      "Feminino",
		Provincia: "Maputo Cidade",
		Perfil:    "Atores",
		Motivacao: strings.Repeat("Quero muito participar. ", 10),
	}
}

func photos(n int) []domain.UploadFile {
	files := make([]domain.UploadFile, n)
	for i := range files {
		files[i] = domain.UploadFile{Name: "p" + string(rune('1'+i)) + ".jpg", ContentType: "image/jpeg", Data: []byte("img")}
	}
	return files
}

func newService(repo *mockRepo, blobs *mockBlobs) SubmissionService {
	return NewSubmissionService(repo, blobs, nil, WithClock(func() time.Time { return fixedNow }))
}

func TestSubmitRejectsPhotoCountBeforeAnyIO(t *testing.T) {
	for _, n := range []int{0, 1, 6} {
		repo := &mockRepo{}
		blobs := &mockBlobs{}
		svc := newService(repo, blobs)

		_, err := svc.Submit(context.Background(), SubmitCommand{Form: validForm(), Photos: photos(n)})

		var ve *apperr.ValidationError
		require.ErrorAs(t, err, &ve, "n=%d", n)
		assert.Equal(t, domain.PhotoCountMessage, ve.Message)
		repo.AssertNotCalled(t, "ExistsByPhone", mock.Anything, mock.Anything)
		blobs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestSubmitStoresRowWithPhotoPathsInOrder(t *testing.T) {
	repo := &mockRepo{}
	blobs := &mockBlobs{}
	repo.On("ExistsByPhone", mock.Anything, "+258841234567").Return(false, nil)
	for _, name := range []string{"p1.jpg", "p2.jpg", "p3.jpg"} {
		p := "photos/1736500000000-" + name
		blobs.On("Upload", mock.Anything, p, "image/jpeg").Return(p, nil)
	}
	repo.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Submission")).Return(nil)

	got, err := newService(repo, blobs).Submit(context.Background(), SubmitCommand{Form: validForm(), Photos: photos(3)})
	require.NoError(t, err)

	assert.Equal(t, "sub-1", got.ID)
	assert.Equal(t, "Ana Silva", got.FullName)
	assert.Equal(t, 25, got.Age)
	assert.Equal(t, domain.Gender("Feminino"), got.Gender)
	assert.Equal(t, []string{
		"photos/1736500000000-p1.jpg",
		"photos/1736500000000-p2.jpg",
		"photos/1736500000000-p3.jpg",
	}, got.Photos)
	assert.Nil(t, got.CVPortfolio)
	repo.AssertExpectations(t)
	blobs.AssertExpectations(t)
}

func TestSubmitUploadsFirstCV(t *testing.T) {
	repo := &mockRepo{}
	blobs := &mockBlobs{}
	repo.On("ExistsByPhone", mock.Anything, mock.Anything).Return(false, nil)
	blobs.On("Upload", mock.Anything, mock.MatchedBy(func(p string) bool { return strings.HasPrefix(p, "photos/") }), "image/jpeg").
		Return("photos/x.jpg", nil)
	blobs.On("Upload", mock.Anything, "cv/1736500000000-cv.pdf", "application/pdf").Return("cv/1736500000000-cv.pdf", nil)
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	got, err := newService(repo, blobs).Submit(context.Background(), SubmitCommand{
		Form:   validForm(),
		Photos: photos(2),
		CVs:    []domain.UploadFile{{Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}},
	})
	require.NoError(t, err)
	require.NotNil(t, got.CVPortfolio)
	assert.Equal(t, "cv/1736500000000-cv.pdf", *got.CVPortfolio)
}

func TestSubmitDuplicateFromPreCheck(t *testing.T) {
	repo := &mockRepo{}
	blobs := &mockBlobs{}
	repo.On("ExistsByPhone", mock.Anything, "+258841234567").Return(true, nil)

	_, err := newService(repo, blobs).Submit(context.Background(), SubmitCommand{Form: validForm(), Photos: photos(2)})

	require.ErrorIs(t, err, apperr.ErrDuplicatePhone)
	assert.Equal(t, domain.DuplicatePhoneMessage, domain.NoticeFor(err).Description)
	blobs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSubmitDuplicateFromInsertRace(t *testing.T) {
	repo := &mockRepo{}
	blobs := &mockBlobs{}
	repo.On("ExistsByPhone", mock.Anything, mock.Anything).Return(false, nil)
	blobs.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return("photos/x.jpg", nil)
	repo.On("Insert", mock.Anything, mock.Anything).Return(apperr.ErrDuplicatePhone)

	_, err := newService(repo, blobs).Submit(context.Background(), SubmitCommand{Form: validForm(), Photos: photos(2)})

	require.ErrorIs(t, err, apperr.ErrDuplicatePhone)
}

func TestSubmitUploadFailureSkipsInsert(t *testing.T) {
	repo := &mockRepo{}
	blobs := &mockBlobs{}
	repo.On("ExistsByPhone", mock.Anything, mock.Anything).Return(false, nil)
	blobs.On("Upload", mock.Anything, "photos/1736500000000-p1.jpg", mock.Anything).Return("photos/1736500000000-p1.jpg", nil)
	blobs.On("Upload", mock.Anything, "photos/1736500000000-p2.jpg", mock.Anything).Return("", errors.New("bucket unavailable"))

	_, err := newService(repo, blobs).Submit(context.Background(), SubmitCommand{Form: validForm(), Photos: photos(2)})

	var ue *apperr.UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "photos/1736500000000-p2.jpg", ue.Path)
	assert.Equal(t, domain.GenericFailureMessage, domain.NoticeFor(err).Description)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSubmitStoreFailureIsWrapped(t *testing.T) {
	repo := &mockRepo{}
	blobs := &mockBlobs{}
	repo.On("ExistsByPhone", mock.Anything, mock.Anything).Return(false, errors.New("connection reset"))

	_, err := newService(repo, blobs).Submit(context.Background(), SubmitCommand{Form: validForm(), Photos: photos(2)})

	var se *apperr.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "check phone", se.Op)
}

func TestSubmitRejectsUnknownProvince(t *testing.T) {
	repo := &mockRepo{}
	form := validForm()
	form.Provincia = "Lisboa"

	_, err := newService(repo, &mockBlobs{}).Submit(context.Background(), SubmitCommand{Form: form, Photos: photos(2)})

	assert.True(t, apperr.IsValidation(err))
	repo.AssertNotCalled(t, "ExistsByPhone", mock.Anything, mock.Anything)
}

func TestSubmitConcurrentDistinctPhones(t *testing.T) {
	repo := &mockRepo{}
	blobs := &mockBlobs{}
	repo.On("ExistsByPhone", mock.Anything, mock.Anything).Return(false, nil)
	blobs.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return("photos/x.jpg", nil)
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	svc := newService(repo, blobs)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, phone := range []string{"+258840000001", "+258840000002"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			form := validForm()
			form.Telefone = phone
			_, errs[i] = svc.Submit(context.Background(), SubmitCommand{Form: form, Photos: photos(2)})
		}()
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	repo.AssertNumberOfCalls(t, "Insert", 2)
}

func TestObjectName(t *testing.T) {
	at := time.UnixMilli(42)
	assert.Equal(t, "photos/42-foto.png", ObjectName("photos", "foto.png", at))
	assert.Equal(t, "cv/42-cv.pdf", ObjectName("cv", `C:\docs\cv.pdf`, at))
	assert.Equal(t, "photos/42-file", ObjectName("photos", "", at))
}
