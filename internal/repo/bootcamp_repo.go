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

// BootcampRepo persists bootcamps in the "bootcamps" collection.
type BootcampRepo struct {
	col *mongo.Collection
}

func NewBootcampRepo(database *mongo.Database) *BootcampRepo {
	return &BootcampRepo{col: database.Collection("bootcamps")}
}

func (r *BootcampRepo) Insert(ctx context.Context, b *models.Bootcamp) error {
	_, err := r.col.InsertOne(ctx, b)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("bootcamp %q: %w", b.Name, ErrDuplicate)
	}
	return err
}

func (r *BootcampRepo) Update(ctx context.Context, b *models.Bootcamp) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("bootcamp %q: %w", b.Name, ErrDuplicate)
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BootcampRepo) FindByID(ctx context.Context, id primitive.ObjectID) (models.Bootcamp, error) {
	var b models.Bootcamp
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Bootcamp{}, ErrNotFound
	}
	return b, err
}

func (r *BootcampRepo) FindAll(ctx context.Context) ([]models.Bootcamp, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bootcamps: %w", err)
	}
	defer cursor.Close(ctx)

	var bootcamps []models.Bootcamp
	if err = cursor.All(ctx, &bootcamps); err != nil {
		return nil, fmt.Errorf("error decoding bootcamps: %w", err)
	}
	return bootcamps, nil
}

func (r *BootcampRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAverageRating writes the derived rating aggregate. A nil value unsets
// the field so a bootcamp with no reviews carries no stale average.
func (r *BootcampRepo) SetAverageRating(ctx context.Context, id primitive.ObjectID, avg *float64) error {
	return r.setDerived(ctx, id, "average_rating", avg)
}

// SetAverageCost writes the derived tuition aggregate, nil unsets it.
func (r *BootcampRepo) SetAverageCost(ctx context.Context, id primitive.ObjectID, avg *float64) error {
	return r.setDerived(ctx, id, "average_cost", avg)
}

func (r *BootcampRepo) setDerived(ctx context.Context, id primitive.ObjectID, field string, avg *float64) error {
	update := bson.M{"$unset": bson.M{field: ""}}
	if avg != nil {
		update = bson.M{"$set": bson.M{field: *avg}}
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPhoto records the uploaded photo's object name on the bootcamp.
func (r *BootcampRepo) SetPhoto(ctx context.Context, id primitive.ObjectID, filename string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"photo": filename}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
