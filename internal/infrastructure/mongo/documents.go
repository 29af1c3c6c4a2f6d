package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionDocument is the casting_submissions schema.
type SubmissionDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	FullName    string             `bson:"full_name"`
	Age         int                `bson:"age"`
	Gender      string             `bson:"gender"`
	Phone       string             `bson:"phone"`
	Province    string             `bson:"province"`
	ProfileType string             `bson:"profile_type"`
	Motivation  string             `bson:"motivation"`
	Photos      []string           `bson:"photos"`
	CVPortfolio *string            `bson:"cv_portfolio"`
	CreatedAt   time.Time          `bson:"created_at"`
}

// UserDocument is an authentication identity.
type UserDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Email        string             `bson:"email"`
	PasswordHash []byte             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// AdminProfileDocument grants dashboard access to a user.
type AdminProfileDocument struct {
	UserID    string    `bson:"user_id"`
	Name      string    `bson:"name"`
	Role      string    `bson:"role"`
	CreatedAt time.Time `bson:"created_at"`
}

// RevokedSessionDocument marks a session token id as signed out. The TTL index on
// expires_at removes it once the token could no longer be presented.
type RevokedSessionDocument struct {
	TokenID   string    `bson:"jti"`
	UserID    string    `bson:"user_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	RevokedAt time.Time `bson:"revoked_at"`
}

// FailedNotificationDocument keeps an admin notification that could not be delivered.
type FailedNotificationDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Target      string             `bson:"target"`
	Payload     bson.M             `bson:"payload"`
	Error       string             `bson:"error"`
	Attempts    int                `bson:"attempts"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	LastTriedAt time.Time          `bson:"last_tried_at"`
}
