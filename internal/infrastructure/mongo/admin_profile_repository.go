package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
	"github.com/alcymedia/casting-caly/api/internal/apperr"
)

// AdminProfileRepository persists admin grants per user.
type AdminProfileRepository struct {
	collection *mongo.Collection
}

func NewAdminProfileRepository(db *mongo.Database, collectionName string) *AdminProfileRepository {
	return &AdminProfileRepository{collection: db.Collection(collectionName)}
}

func (r *AdminProfileRepository) FindByUserID(ctx context.Context, userID string) (*admindomain.AdminProfile, error) {
	var doc AdminProfileDocument
	if err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &admindomain.AdminProfile{
		UserID:    doc.UserID,
		Name:      doc.Name,
		Role:      doc.Role,
		CreatedAt: doc.CreatedAt,
	}, nil
}

// Upsert grants or updates the admin profile of a user. Returns true when a new grant was created.
func (r *AdminProfileRepository) Upsert(ctx context.Context, profile admindomain.AdminProfile) (bool, error) {
	update := bson.M{
		"$set": bson.M{
			"name": profile.Name,
			"role": profile.Role,
		},
		"$setOnInsert": bson.M{
			"created_at": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"user_id": profile.UserID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return result.UpsertedCount > 0, nil
}
