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

// CourseRepo persists courses in the "courses" collection.
type CourseRepo struct {
	col *mongo.Collection
}

func NewCourseRepo(database *mongo.Database) *CourseRepo {
	return &CourseRepo{col: database.Collection("courses")}
}

func (r *CourseRepo) Insert(ctx context.Context, course *models.Course) error {
	_, err := r.col.InsertOne(ctx, course)
	return err
}

func (r *CourseRepo) Update(ctx context.Context, course *models.Course) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": course.ID}, course)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CourseRepo) FindByID(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	var course models.Course
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Course{}, ErrNotFound
	}
	return course, err
}

func (r *CourseRepo) FindByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Course, error) {
	cursor, err := r.col.Find(ctx, bson.M{"bootcamp": bootcampID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve courses: %w", err)
	}
	defer cursor.Close(ctx)

	var courses []models.Course
	if err = cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("error decoding courses: %w", err)
	}
	return courses, nil
}

func (r *CourseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CourseRepo) DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"bootcamp": bootcampID})
	return err
}

// AverageTuition mirrors ReviewRepo.AverageRating for course tuition.
func (r *CourseRepo) AverageTuition(ctx context.Context, bootcampID primitive.ObjectID) (float64, int, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"bootcamp": bootcampID}},
		{"$group": bson.M{
			"_id":          "$bootcamp",
			"average_cost": bson.M{"$avg": "$tuition"},
			"count":        bson.M{"$sum": 1},
		}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("aggregating tuition: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		AverageCost float64 `bson:"average_cost"`
		Count       int     `bson:"count"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, 0, fmt.Errorf("decoding tuition aggregate: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].AverageCost, results[0].Count, nil
}
