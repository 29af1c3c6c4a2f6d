package public

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	mongodoc "github.com/alcymedia/casting-caly/api/internal/infrastructure/mongo"
	"github.com/alcymedia/casting-caly/api/internal/interfaces/http/common"
	publicapp "github.com/alcymedia/casting-caly/api/internal/public/application"
)

// ObjectStore serves stored blobs on the public files route.
type ObjectStore interface {
	Bucket() string
	OpenObject(ctx context.Context, path string) (*mongodoc.Object, error)
}

// NotificationFailureRecorder keeps admin notifications that could not be delivered.
type NotificationFailureRecorder interface {
	Record(ctx context.Context, target string, payload map[string]any, cause error, attempts int) error
}

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger              *slog.Logger
	submissions         publicapp.SubmissionService
	objects             ObjectStore
	maxUploadBytes      int64
	page                *template.Template
	httpClient          *http.Client
	messengerEndpoint   string
	discordDestination  string
	slackDestination    string
	dashboardBaseURL    string
	failedNotifications NotificationFailureRecorder
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger              *slog.Logger
	Submissions         publicapp.SubmissionService
	Objects             ObjectStore
	MaxUploadBytes      int64
	HTTPClient          *http.Client
	MessengerEndpoint   string
	DiscordDestination  string
	SlackDestination    string
	DashboardBaseURL    string
	FailedNotifications NotificationFailureRecorder
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = common.DefaultMaxUploadBytes
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &Handler{
		logger:              logger,
		submissions:         cfg.Submissions,
		objects:             cfg.Objects,
		maxUploadBytes:      maxUpload,
		page:                formTemplate,
		httpClient:          client,
		messengerEndpoint:   cfg.MessengerEndpoint,
		discordDestination:  cfg.DiscordDestination,
		slackDestination:    cfg.SlackDestination,
		dashboardBaseURL:    cfg.DashboardBaseURL,
		failedNotifications: cfg.FailedNotifications,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.formPageHandler())
	r.Post("/", h.formPostHandler())
	r.Get("/placeholder.svg", h.placeholderHandler())
	r.Get("/files/{bucket}/*", h.fileHandler())
	r.Route("/api", func(r chi.Router) {
		r.Get("/form/options", h.formOptionsHandler())
		r.Post("/submissions", h.submissionCreateHandler())
	})
}
