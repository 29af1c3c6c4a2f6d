package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
	"github.com/alcymedia/casting-caly/api/internal/apperr"
	mongodoc "github.com/alcymedia/casting-caly/api/internal/infrastructure/mongo"
)

type grantOptions struct {
	email string
	name  string
	role  string
}

func newGrantAdminCommand(opts *globalOptions) *cobra.Command {
	var grant grantOptions
	cmd := &cobra.Command{
		Use:   "grant-admin",
		Short: "Create or update the admin profile of a registered user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(grant.email) == "" || strings.TrimSpace(grant.name) == "" {
				return errors.New("--email and --name are required")
			}
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				users := mongodoc.NewUserRepository(s.db, s.collections.Users)
				profiles := mongodoc.NewAdminProfileRepository(s.db, s.collections.AdminProfiles)

				user, err := users.FindByEmail(ctx, grant.email)
				if errors.Is(err, apperr.ErrNotFound) {
					return fmt.Errorf("no user registered as %s: sign up first", admindomain.NormalizeEmail(grant.email))
				}
				if err != nil {
					return err
				}

				created, err := profiles.Upsert(ctx, admindomain.AdminProfile{
					UserID: user.ID,
					Name:   strings.TrimSpace(grant.name),
					Role:   strings.TrimSpace(grant.role),
				})
				if err != nil {
					return err
				}
				opts.logger.Info("admin profile saved", "email", user.Email, "user_id", user.ID, "created", created)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&grant.email, "email", "", "e-mail of the registered user")
	cmd.Flags().StringVar(&grant.name, "name", "", "display name shown on the dashboard")
	cmd.Flags().StringVar(&grant.role, "role", "admin", "role shown on the dashboard")
	return cmd
}
