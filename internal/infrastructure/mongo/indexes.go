package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collections names every collection the service uses.
type Collections struct {
	Submissions         string
	AdminProfiles       string
	Users               string
	RevokedSessions     string
	FailedNotifications string
}

// EnsureIndexes creates the indexes the service relies on. Creating an existing index is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database, cols Collections) error {
	submissionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetName("uniq_submission_phone").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_submission_created"),
		},
	}
	if _, err := db.Collection(cols.Submissions).Indexes().CreateMany(ctx, submissionIndexes); err != nil {
		return fmt.Errorf("submission indexes: %w", err)
	}

	if _, err := db.Collection(cols.AdminProfiles).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetName("uniq_admin_profile_user").SetUnique(true),
	}); err != nil {
		return fmt.Errorf("admin profile indexes: %w", err)
	}

	if _, err := db.Collection(cols.Users).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_user_email").SetUnique(true),
	}); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}

	if _, err := db.Collection(cols.RevokedSessions).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "jti", Value: 1}},
			Options: options.Index().SetName("uniq_revoked_jti").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("ttl_revoked_expires").SetExpireAfterSeconds(0),
		},
	}); err != nil {
		return fmt.Errorf("revoked session indexes: %w", err)
	}

	if _, err := db.Collection(cols.FailedNotifications).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("idx_failed_status_created"),
	}); err != nil {
		return fmt.Errorf("failed notification indexes: %w", err)
	}

	return nil
}
