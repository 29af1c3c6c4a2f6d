package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	adminapp "github.com/alcymedia/casting-caly/api/internal/admin/application"
	"github.com/alcymedia/casting-caly/api/internal/config"
	mongodoc "github.com/alcymedia/casting-caly/api/internal/infrastructure/mongo"
	"github.com/alcymedia/casting-caly/api/internal/infrastructure/pdf"
	"github.com/alcymedia/casting-caly/api/internal/infrastructure/token"
	adminhttp "github.com/alcymedia/casting-caly/api/internal/interfaces/http/admin"
	"github.com/alcymedia/casting-caly/api/internal/interfaces/http/common"
	publichttp "github.com/alcymedia/casting-caly/api/internal/interfaces/http/public"
	publicapp "github.com/alcymedia/casting-caly/api/internal/public/application"
)

const placeholderPath = "/placeholder.svg"

// Server owns the HTTP lifecycle and is the composition root for the public and admin handlers.
type Server struct {
	logger         *slog.Logger
	client         *mongo.Client
	database       *mongo.Database
	collections    mongodoc.Collections
	addr           string
	allowedOrigins []string
	public         *publichttp.Handler
	admin          *adminhttp.Handler
}

// New wires repositories, services and handlers from cfg.
func New(cfg config.Config, client *mongo.Client) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	database := client.Database(cfg.MongoDatabase)
	collections := mongodoc.Collections{
		Submissions:         cfg.SubmissionCollection,
		AdminProfiles:       cfg.AdminProfileCollection,
		Users:               cfg.UserCollection,
		RevokedSessions:     cfg.RevokedSessionCollection,
		FailedNotifications: cfg.FailedNotificationCollection,
	}

	blobs := mongodoc.NewBlobStore(database, cfg.StorageBucket, normaliseBaseURL(cfg.MediaBaseURL))

	submissions := publicapp.NewSubmissionService(
		mongodoc.NewSubmissionRepository(database, collections.Submissions),
		blobs,
		logger,
	)

	issuer, err := token.NewIssuer(token.Config{
		Secret: cfg.SessionSecret,
		Issuer: cfg.SessionIssuer,
		TTL:    cfg.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("build token issuer: %w", err)
	}
	auth := adminapp.NewAuthService(
		mongodoc.NewUserRepository(database, collections.Users),
		mongodoc.NewAdminProfileRepository(database, collections.AdminProfiles),
		mongodoc.NewSessionRepository(database, collections.RevokedSessions),
		issuer,
		adminapp.AuthConfig{SignUpEmail: cfg.AdminSignUpEmail, Logger: logger},
	)
	dashboard := adminapp.NewDashboardService(
		mongodoc.NewAdminSubmissionRepository(database, collections.Submissions),
		blobs,
		pdf.NewRenderer(pdf.Config{Location: cfg.Location, Logger: logger}),
		adminapp.DashboardConfig{
			Location:       cfg.Location,
			PlaceholderURL: normaliseBaseURL(cfg.MediaBaseURL) + placeholderPath,
			Logger:         logger,
		},
	)

	return &Server{
		logger:         logger,
		client:         client,
		database:       database,
		collections:    collections,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		public: publichttp.NewHandler(publichttp.Config{
			Logger:              logger,
			Submissions:         submissions,
			Objects:             blobs,
			MaxUploadBytes:      cfg.MaxUploadBytes,
			HTTPClient:          &http.Client{Timeout: cfg.MessengerTimeout},
			MessengerEndpoint:   normaliseBaseURL(cfg.MessengerEndpoint),
			DiscordDestination:  cfg.DiscordDestination,
			SlackDestination:    cfg.SlackDestination,
			DashboardBaseURL:    normaliseBaseURL(cfg.AdminDashboardBaseURL),
			FailedNotifications: mongodoc.NewNotificationFailureRepository(database, collections.FailedNotifications),
		}),
		admin: adminhttp.NewHandler(adminhttp.Config{
			Logger:    logger,
			Auth:      auth,
			Dashboard: dashboard,
		}),
	}, nil
}

// Run ensures indexes, then serves until the listener fails or a shutdown signal arrives.
func (s *Server) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err := mongodoc.EnsureIndexes(ctx, s.database, s.collections)
	cancel()
	if err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

// Routes builds the router with middleware, health check and both handler sets.
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())
	s.public.Register(router)
	router.Route("/admin", s.admin.Register)
	return router
}

func normaliseBaseURL(input string) string {
	trimmed := strings.TrimSpace(input)
	return strings.TrimRight(trimmed, "/")
}

// withCORS returns a middleware adding CORS headers for the allowed origins.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler reports whether MongoDB answers a ping.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			common.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		common.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Error("mongo disconnect failed", "err", err)
	}
}

// waitForShutdown blocks on the listener result or SIGINT/SIGTERM and shuts down gracefully.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("http server: %w", err)
		}
	case sig := <-sigChan:
		srv.logger.Info("shutdown signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Error("http server shutdown failed", "err", err)
		}
	}

	srv.shutdown(context.Background())
	return runErr
}
