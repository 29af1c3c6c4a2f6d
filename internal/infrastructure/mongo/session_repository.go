package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
)

// SessionRepository records revoked session token ids.
type SessionRepository struct {
	collection *mongo.Collection
}

func NewSessionRepository(db *mongo.Database, collectionName string) *SessionRepository {
	return &SessionRepository{collection: db.Collection(collectionName)}
}

// Revoke marks the session as signed out. Revoking twice is harmless.
func (r *SessionRepository) Revoke(ctx context.Context, session admindomain.Session) error {
	update := bson.M{
		"$setOnInsert": bson.M{
			"user_id":    session.UserID,
			"expires_at": session.ExpiresAt.UTC(),
			"revoked_at": time.Now().UTC(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"jti": session.TokenID}, update, options.Update().SetUpsert(true))
	return err
}

func (r *SessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"jti": tokenID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
