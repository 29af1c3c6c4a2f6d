package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                         string
	MongoURI                     string
	MongoDatabase                string
	Timeout                      time.Duration
	SubmissionCollection         string
	AdminProfileCollection       string
	UserCollection               string
	RevokedSessionCollection     string
	FailedNotificationCollection string
	StorageBucket                string
	MediaBaseURL                 string
	Timezone                     string
	Location                     *time.Location
	SessionSecret                []byte
	SessionIssuer                string
	SessionTTL                   time.Duration
	AdminSignUpEmail             string
	AllowedOrigins               []string
	MaxUploadBytes               int64
	MessengerEndpoint            string
	DiscordDestination           string
	SlackDestination             string
	MessengerTimeout             time.Duration
	AdminDashboardBaseURL        string
	Logger                       *slog.Logger
}

// Load reads a .env file when present, then the environment, and returns a fully populated Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	logger := NewLogger(envOrDefault("LOG_LEVEL", "info"))

	secret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if secret == "" {
		return Config{}, errors.New("SESSION_SECRET must be configured")
	}

	timezone := envOrDefault("TIMEZONE", "Africa/Maputo")
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Config{}, fmt.Errorf("load timezone %s: %w", timezone, err)
	}

	maxUpload := int64(40 << 20)
	if raw := strings.TrimSpace(os.Getenv("MAX_UPLOAD_BYTES")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("MAX_UPLOAD_BYTES must be a positive integer, got %q", raw)
		}
		maxUpload = parsed
	}

	cfg := Config{
		Addr:                         envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:                     envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:                envOrDefault("MONGO_DB", "casting-caly"),
		Timeout:                      parseDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		SubmissionCollection:         envOrDefault("SUBMISSION_COLLECTION", "casting_submissions"),
		AdminProfileCollection:       envOrDefault("ADMIN_PROFILE_COLLECTION", "admin_profiles"),
		UserCollection:               envOrDefault("USER_COLLECTION", "users"),
		RevokedSessionCollection:     envOrDefault("REVOKED_SESSION_COLLECTION", "revoked_sessions"),
		FailedNotificationCollection: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
		StorageBucket:                envOrDefault("STORAGE_BUCKET", "casting-files"),
		MediaBaseURL:                 strings.TrimSpace(os.Getenv("MEDIA_BASE_URL")),
		Timezone:                     timezone,
		Location:                     loc,
		SessionSecret:                []byte(secret),
		SessionIssuer:                envOrDefault("SESSION_ISSUER", "casting-caly-api"),
		SessionTTL:                   parseDuration("SESSION_TTL", 12*time.Hour),
		AdminSignUpEmail:             envOrDefault("ADMIN_SIGNUP_EMAIL", "alcymedia.app@gmail.com"),
		AllowedOrigins:               parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		MaxUploadBytes:               maxUpload,
		MessengerEndpoint:            strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_URL")),
		DiscordDestination:           strings.TrimSpace(os.Getenv("MESSENGER_DISCORD_INCOMING_DESTINATION")),
		SlackDestination:             strings.TrimSpace(os.Getenv("MESSENGER_SLACK_DESTINATION")),
		MessengerTimeout:             parseDuration("MESSENGER_GATEWAY_TIMEOUT", 3*time.Second),
		AdminDashboardBaseURL:        strings.TrimSpace(os.Getenv("ADMIN_DASHBOARD_BASE_URL")),
		Logger:                       logger,
	}

	logger.Info("loaded config",
		"addr", cfg.Addr,
		"db", cfg.MongoDatabase,
		"bucket", cfg.StorageBucket,
		"timezone", cfg.Timezone,
		"messenger_endpoint", cfg.MessengerEndpoint,
	)
	return cfg, nil
}

// NewLogger builds the process logger. Unknown levels fall back to info.
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.DateTime,
	}))
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
