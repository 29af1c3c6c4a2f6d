package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const notificationStatusPending = "pending"

// NotificationFailureRepository keeps undelivered admin notifications for manual follow-up.
type NotificationFailureRepository struct {
	collection *mongo.Collection
}

func NewNotificationFailureRepository(db *mongo.Database, collectionName string) *NotificationFailureRepository {
	return &NotificationFailureRepository{collection: db.Collection(collectionName)}
}

// Record stores one failed delivery as pending.
func (r *NotificationFailureRepository) Record(ctx context.Context, target string, payload map[string]any, cause error, attempts int) error {
	now := time.Now().UTC()
	doc := FailedNotificationDocument{
		Target:      target,
		Payload:     bson.M(payload),
		Attempts:    attempts,
		Status:      notificationStatusPending,
		CreatedAt:   now,
		LastTriedAt: now,
	}
	if cause != nil {
		doc.Error = cause.Error()
	}
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}
