package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/devcamper/api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewRepo persists reviews in the "reviews" collection. The collection
// carries a unique (bootcamp, user) index, so a duplicate submission fails
// inside the insert itself rather than in a racy pre-check.
type ReviewRepo struct {
	col *mongo.Collection
}

func NewReviewRepo(database *mongo.Database) *ReviewRepo {
	return &ReviewRepo{col: database.Collection("reviews")}
}

func (r *ReviewRepo) Insert(ctx context.Context, review *models.Review) error {
	_, err := r.col.InsertOne(ctx, review)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("review for bootcamp %s by user %s: %w",
			review.Bootcamp.Hex(), review.User.Hex(), ErrDuplicate)
	}
	return err
}

func (r *ReviewRepo) Update(ctx context.Context, review *models.Review) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": review.ID}, review)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("review for bootcamp %s by user %s: %w",
			review.Bootcamp.Hex(), review.User.Hex(), ErrDuplicate)
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReviewRepo) FindByID(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	var review models.Review
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Review{}, ErrNotFound
	}
	return review, err
}

func (r *ReviewRepo) FindByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Review, error) {
	cursor, err := r.col.Find(ctx, bson.M{"bootcamp": bootcampID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("error decoding reviews: %w", err)
	}
	return reviews, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReviewRepo) DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"bootcamp": bootcampID})
	return err
}

// AverageRating computes the arithmetic mean rating across a bootcamp's
// reviews with a single aggregation. The returned count is zero when the
// bootcamp has no reviews, in which case the average is meaningless.
func (r *ReviewRepo) AverageRating(ctx context.Context, bootcampID primitive.ObjectID) (float64, int, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"bootcamp": bootcampID}},
		{"$group": bson.M{
			"_id":            "$bootcamp",
			"average_rating": bson.M{"$avg": "$rating"},
			"count":          bson.M{"$sum": 1},
		}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("aggregating ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		AverageRating float64 `bson:"average_rating"`
		Count         int     `bson:"count"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, 0, fmt.Errorf("decoding rating aggregate: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].AverageRating, results[0].Count, nil
}
