// Command castingctl runs out-of-band maintenance against the casting database.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alcymedia/casting-caly/api/internal/config"
	mongodoc "github.com/alcymedia/casting-caly/api/internal/infrastructure/mongo"
)

type globalOptions struct {
	envFiles []string
	timeout  time.Duration
	logger   *slog.Logger
}

// session is an open connection plus the collection names read from the environment.
type session struct {
	client      *mongo.Client
	db          *mongo.Database
	collections mongodoc.Collections
	location    *time.Location
}

func main() {
	opts := &globalOptions{logger: config.NewLogger(os.Getenv("LOG_LEVEL"))}
	if err := newRootCommand(opts).Execute(); err != nil {
		opts.logger.Error("castingctl failed", "err", err)
		os.Exit(1)
	}
}

func newRootCommand(opts *globalOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "castingctl",
		Short:         "Maintenance commands for the casting intake database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadEnvFiles(opts.envFiles)
		},
	}
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "env files to load before reading the environment (repeatable)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "overall timeout for the command")

	root.AddCommand(
		newIndexesCommand(opts),
		newGrantAdminCommand(opts),
		newSubmissionsCommand(opts),
		newSeedCommand(opts),
	)
	return root
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	}
	for _, file := range files {
		if err := godotenv.Load(filepath.Clean(file)); err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

func connect(ctx context.Context) (*session, error) {
	uri := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	loc, err := time.LoadLocation(envOrDefault("TIMEZONE", "Africa/Maputo"))
	if err != nil {
		loc = time.UTC
	}
	return &session{
		client: client,
		db:     client.Database(envOrDefault("MONGO_DB", "casting-caly")),
		collections: mongodoc.Collections{
			Submissions:         envOrDefault("SUBMISSION_COLLECTION", "casting_submissions"),
			AdminProfiles:       envOrDefault("ADMIN_PROFILE_COLLECTION", "admin_profiles"),
			Users:               envOrDefault("USER_COLLECTION", "users"),
			RevokedSessions:     envOrDefault("REVOKED_SESSION_COLLECTION", "revoked_sessions"),
			FailedNotifications: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
		},
		location: loc,
	}, nil
}

func (s *session) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}

// withSession runs fn with a connected session bounded by the global timeout.
func withSession(cmd *cobra.Command, opts *globalOptions, fn func(context.Context, *session) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	s, err := connect(ctx)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(ctx, s)
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
