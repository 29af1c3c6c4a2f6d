package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
	"github.com/alcymedia/casting-caly/api/internal/apperr"
)

// AdminSubmissionRepository implements the dashboard side of the submission store.
type AdminSubmissionRepository struct {
	collection *mongo.Collection
}

func NewAdminSubmissionRepository(db *mongo.Database, collectionName string) *AdminSubmissionRepository {
	return &AdminSubmissionRepository{collection: db.Collection(collectionName)}
}

// List returns every submission ordered by created_at, newest first.
func (r *AdminSubmissionRepository) List(ctx context.Context) ([]admindomain.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	submissions := make([]admindomain.Submission, 0)
	for cursor.Next(ctx) {
		var doc SubmissionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		submissions = append(submissions, mapAdminSubmission(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *AdminSubmissionRepository) FindByID(ctx context.Context, id string) (*admindomain.Submission, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	var doc SubmissionDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	submission := mapAdminSubmission(doc)
	return &submission, nil
}

// Delete removes the row. Stored objects referenced by it are not touched.
func (r *AdminSubmissionRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.ErrNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func mapAdminSubmission(doc SubmissionDocument) admindomain.Submission {
	return admindomain.Submission{
		ID:          doc.ID.Hex(),
		FullName:    doc.FullName,
		Age:         doc.Age,
		Gender:      doc.Gender,
		Phone:       doc.Phone,
		Province:    doc.Province,
		ProfileType: doc.ProfileType,
		Motivation:  doc.Motivation,
		Photos:      append([]string{}, doc.Photos...),
		CVPortfolio: doc.CVPortfolio,
		CreatedAt:   doc.CreatedAt,
	}
}
