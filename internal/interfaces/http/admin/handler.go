package admin

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/alcymedia/casting-caly/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger    *slog.Logger
	auth      adminapp.AuthService
	dashboard adminapp.DashboardService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger    *slog.Logger
	Auth      adminapp.AuthService
	Dashboard adminapp.DashboardService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		auth:      cfg.Auth,
		dashboard: cfg.Dashboard,
	}
}

// Register mounts admin routes onto router. Everything except the auth
// endpoints goes through requireAdmin.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/sign-up", h.signUpHandler())
	r.Post("/auth/sign-in", h.signInHandler())
	r.Post("/auth/sign-out", h.signOutHandler())

	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Get("/session", h.sessionHandler())
		r.Get("/submissions", h.submissionListHandler())
		r.Get("/submissions/report.pdf", h.reportExportHandler())
		r.Get("/submissions/{id}", h.submissionDetailHandler())
		r.Delete("/submissions/{id}", h.submissionDeleteHandler())
		r.Get("/submissions/{id}/pdf", h.submissionExportHandler())
	})
}
