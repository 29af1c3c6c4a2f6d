package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alcymedia/casting-caly/api/internal/apperr"
	"github.com/alcymedia/casting-caly/api/internal/public/domain"
)

// SubmissionRepository implements the intake side of the submission store.
type SubmissionRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewSubmissionRepository creates a Mongo-backed submission repository.
func NewSubmissionRepository(db *mongo.Database, collectionName string) *SubmissionRepository {
	return &SubmissionRepository{collection: db.Collection(collectionName), now: time.Now}
}

// ExistsByPhone reports whether a submission with exactly this phone is stored.
func (r *SubmissionRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"phone": phone}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert stores the submission and fills in its id and created_at. A unique
// index violation on phone is reported as apperr.ErrDuplicatePhone.
func (r *SubmissionRepository) Insert(ctx context.Context, submission *domain.Submission) error {
	doc := SubmissionDocument{
		ID:          primitive.NewObjectID(),
		FullName:    submission.FullName,
		Age:         submission.Age,
		Gender:      submission.Gender.String(),
		Phone:       submission.Phone,
		Province:    submission.Province.String(),
		ProfileType: submission.ProfileType.String(),
		Motivation:  submission.Motivation,
		Photos:      append([]string{}, submission.Photos...),
		CVPortfolio: submission.CVPortfolio,
		CreatedAt:   r.now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.ErrDuplicatePhone
		}
		return err
	}
	submission.ID = doc.ID.Hex()
	submission.CreatedAt = doc.CreatedAt
	return nil
}
