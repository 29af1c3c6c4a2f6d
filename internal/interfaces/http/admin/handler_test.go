package admin

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adminapp "github.com/alcymedia/casting-caly/api/internal/admin/application"
	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
	"github.com/alcymedia/casting-caly/api/internal/apperr"
	"github.com/alcymedia/casting-caly/api/internal/interfaces/http/common"
)

type mockAuth struct{ mock.Mock }

func (m *mockAuth) SignUp(ctx context.Context, email, password string) error {
	return m.Called(ctx, email, password).Error(0)
}

func (m *mockAuth) SignIn(ctx context.Context, email, password string) (*admindomain.Authorization, error) {
	args := m.Called(ctx, email, password)
	auth, _ := args.Get(0).(*admindomain.Authorization)
	return auth, args.Error(1)
}

func (m *mockAuth) SignOut(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockAuth) Session(ctx context.Context, token string) (*admindomain.Session, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*admindomain.Session)
	return session, args.Error(1)
}

func (m *mockAuth) RequireAdmin(ctx context.Context, token string) (*admindomain.Authorization, error) {
	args := m.Called(ctx, token)
	auth, _ := args.Get(0).(*admindomain.Authorization)
	return auth, args.Error(1)
}

type mockDashboard struct{ mock.Mock }

func (m *mockDashboard) Load(ctx context.Context) (*adminapp.Dashboard, error) {
	args := m.Called(ctx)
	dash, _ := args.Get(0).(*adminapp.Dashboard)
	return dash, args.Error(1)
}

func (m *mockDashboard) Detail(ctx context.Context, id string) (*admindomain.SubmissionDetail, error) {
	args := m.Called(ctx, id)
	detail, _ := args.Get(0).(*admindomain.SubmissionDetail)
	return detail, args.Error(1)
}

func (m *mockDashboard) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockDashboard) ExportSubmission(ctx context.Context, id string) (*adminapp.Document, error) {
	args := m.Called(ctx, id)
	doc, _ := args.Get(0).(*adminapp.Document)
	return doc, args.Error(1)
}

func (m *mockDashboard) ExportReport(ctx context.Context) (*adminapp.Document, error) {
	args := m.Called(ctx)
	doc, _ := args.Get(0).(*adminapp.Document)
	return doc, args.Error(1)
}

var adminAuth = &admindomain.Authorization{
	Session: admindomain.Session{Token: "tok", TokenID: "jti-1", UserID: "u1", Email: "alcymedia.app@gmail.com"},
	Profile: admindomain.AdminProfile{UserID: "u1", Name: "Alcy", Role: "admin"},
}

func newRouter(auth *mockAuth, dash *mockDashboard) http.Handler {
	h := NewHandler(Config{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Auth:      auth,
		Dashboard: dash,
	})
	r := chi.NewRouter()
	r.Route("/admin", h.Register)
	return r
}

func authed(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer tok")
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) common.ErrorDetail {
	t.Helper()
	var body common.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestSignInSuccess(t *testing.T) {
	auth := &mockAuth{}
	auth.On("SignIn", mock.Anything, "alcymedia.app@gmail.com", "secret123").Return(adminAuth, nil)
	router := newRouter(auth, &mockDashboard{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/auth/sign-in",
		strings.NewReader(`{"email":"alcymedia.app@gmail.com","password":"secret123"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp signInResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Login realizado com sucesso", resp.Notice.Title)
	assert.Equal(t, "Bem-vindo, Alcy!", resp.Notice.Description)
	assert.Equal(t, "tok", resp.Session.Token)
}

func TestSignInWithoutProfileIsForbidden(t *testing.T) {
	auth := &mockAuth{}
	auth.On("SignIn", mock.Anything, "other@example.com", "secret123").Return(nil, apperr.ErrAccessDenied)
	router := newRouter(auth, &mockDashboard{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/auth/sign-in",
		strings.NewReader(`{"email":"other@example.com","password":"secret123"}`)))

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Acesso negado", decodeError(t, rec).Title)
}

func TestSignInInvalidCredentials(t *testing.T) {
	auth := &mockAuth{}
	auth.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(nil, apperr.ErrInvalidCredentials)
	router := newRouter(auth, &mockDashboard{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/auth/sign-in",
		strings.NewReader(`{"email":"a@b.c","password":"x"}`)))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "Erro no login", detail.Title)
	assert.Equal(t, invalidCredentialsMessage, detail.Description)
}

func TestSignInMalformedBody(t *testing.T) {
	auth := &mockAuth{}
	router := newRouter(auth, &mockDashboard{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/auth/sign-in", strings.NewReader(`{`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	auth.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignUp(t *testing.T) {
	auth := &mockAuth{}
	auth.On("SignUp", mock.Anything, "alcymedia.app@gmail.com", "secret123").Return(nil)
	auth.On("SignUp", mock.Anything, "x@example.com", "secret123").Return(apperr.ErrSignUpNotAllowed)
	router := newRouter(auth, &mockDashboard{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/auth/sign-up",
		strings.NewReader(`{"email":"alcymedia.app@gmail.com","password":"secret123"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Conta criada com sucesso")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/auth/sign-up",
		strings.NewReader(`{"email":"x@example.com","password":"secret123"}`)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, signUpNotAllowedMessage, decodeError(t, rec).Description)
}

func TestSignOut(t *testing.T) {
	auth := &mockAuth{}
	auth.On("SignOut", mock.Anything, "tok").Return(nil)
	router := newRouter(auth, &mockDashboard{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(http.MethodPost, "/admin/auth/sign-out"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Logout realizado")
	auth.AssertExpectations(t)
}

func TestGuardRejectsMissingSession(t *testing.T) {
	auth := &mockAuth{}
	auth.On("RequireAdmin", mock.Anything, "").Return(nil, apperr.ErrSessionInvalid)
	dash := &mockDashboard{}
	router := newRouter(auth, dash)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/submissions", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, sessionInvalidMessage, decodeError(t, rec).Description)
	dash.AssertNotCalled(t, "Load", mock.Anything)
}

func TestGuardRejectsNonAdmin(t *testing.T) {
	auth := &mockAuth{}
	auth.On("RequireAdmin", mock.Anything, "tok").Return(nil, apperr.ErrAccessDenied)
	router := newRouter(auth, &mockDashboard{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(http.MethodDelete, "/admin/submissions/s1"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSessionHidesToken(t *testing.T) {
	auth := &mockAuth{}
	auth.On("RequireAdmin", mock.Anything, "tok").Return(adminAuth, nil)
	router := newRouter(auth, &mockDashboard{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(http.MethodGet, "/admin/session"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Session.Token)
	assert.Equal(t, "Alcy", resp.Profile.Name)
}

func TestSubmissionList(t *testing.T) {
	auth := &mockAuth{}
	auth.On("RequireAdmin", mock.Anything, "tok").Return(adminAuth, nil)
	dash := &mockDashboard{}
	dash.On("Load", mock.Anything).Return(&adminapp.Dashboard{
		Submissions: []admindomain.Submission{{ID: "s2", FullName: "Beto"}, {ID: "s1", FullName: "Ana"}},
		Stats:       admindomain.Stats{Total: 2, Today: 1},
	}, nil)
	router := newRouter(auth, dash)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(http.MethodGet, "/admin/submissions"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp submissionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, adminHeader{Name: "Alcy", Role: "admin"}, resp.Admin)
	assert.Equal(t, admindomain.Stats{Total: 2, Today: 1}, resp.Stats)
	require.Len(t, resp.Submissions, 2)
	assert.Equal(t, "s2", resp.Submissions[0].ID)
}

func TestSubmissionListStoreFailure(t *testing.T) {
	auth := &mockAuth{}
	auth.On("RequireAdmin", mock.Anything, "tok").Return(adminAuth, nil)
	dash := &mockDashboard{}
	dash.On("Load", mock.Anything).Return(nil, apperr.Store("list submissions", context.Canceled))
	router := newRouter(auth, dash)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(http.MethodGet, "/admin/submissions"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Erro ao carregar dados", decodeError(t, rec).Title)
}

func TestSubmissionDetailAndDelete(t *testing.T) {
	auth := &mockAuth{}
	auth.On("RequireAdmin", mock.Anything, "tok").Return(adminAuth, nil)
	dash := &mockDashboard{}
	dash.On("Detail", mock.Anything, "s1").Return(&admindomain.SubmissionDetail{
		Submission:     admindomain.Submission{ID: "s1", CreatedAt: time.Now()},
		PhotoURLs:      []string{"https://media.example/files/casting-files/photos/1-a.jpg"},
		PlaceholderURL: "/placeholder.svg",
	}, nil)
	dash.On("Delete", mock.Anything, "s1").Return(nil)
	dash.On("Delete", mock.Anything, "gone").Return(apperr.ErrNotFound)
	router := newRouter(auth, dash)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(http.MethodGet, "/admin/submissions/s1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"placeholder_url":"/placeholder.svg"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authed(http.MethodDelete, "/admin/submissions/s1"))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authed(http.MethodDelete, "/admin/submissions/gone"))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, notFoundMessage, decodeError(t, rec).Description)
}

func TestExports(t *testing.T) {
	auth := &mockAuth{}
	auth.On("RequireAdmin", mock.Anything, "tok").Return(adminAuth, nil)
	dash := &mockDashboard{}
	dash.On("ExportSubmission", mock.Anything, "s1").Return(&adminapp.Document{FileName: "casting-ana-silva.pdf", Content: []byte("%PDF-1.3")}, nil)
	dash.On("ExportReport", mock.Anything).Return(&adminapp.Document{FileName: "casting-caly-ii-relatorio-completo-10-01-2025.pdf", Content: []byte("%PDF-1.3")}, nil)
	router := newRouter(auth, dash)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(http.MethodGet, "/admin/submissions/s1/pdf"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="casting-ana-silva.pdf"; filename*=UTF-8''casting-ana-silva.pdf`, rec.Header().Get("Content-Disposition"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authed(http.MethodGet, "/admin/submissions/report.pdf"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "relatorio-completo-10-01-2025.pdf")
	dash.AssertNotCalled(t, "Detail", mock.Anything, "report.pdf")
}

func TestContentDispositionKeepsNonASCIINames(t *testing.T) {
	got := contentDisposition("casting-joão-gonçalves.pdf")

	assert.Equal(t, `attachment; filename="casting-joao-goncalves.pdf"; filename*=UTF-8''casting-jo%C3%A3o-gon%C3%A7alves.pdf`, got)
}

func TestContentDispositionReplacesUnsafeFallbackChars(t *testing.T) {
	got := contentDisposition(`casting-"x"-李.pdf`)

	assert.True(t, strings.HasPrefix(got, `attachment; filename="casting-_x_-_.pdf"; filename*=UTF-8''casting-%22x%22-%E6%9D%8E.pdf`), got)
}
