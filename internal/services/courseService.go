package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devcamper/api/internal/models"
	"github.com/devcamper/api/internal/repo"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseStore is the persistence surface the course service needs.
// *repo.CourseRepo implements it; tests substitute a fake.
type CourseStore interface {
	Insert(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Course, error)
	FindByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Course, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) error
	AverageTuition(ctx context.Context, bootcampID primitive.ObjectID) (float64, int, error)
}

// CourseService handles course writes and keeps the parent bootcamp's
// averageCost aggregate in sync, mirroring how reviews maintain
// averageRating.
type CourseService struct {
	courses   CourseStore
	bootcamps BootcampStore
}

func NewCourseService(courses CourseStore, bootcamps BootcampStore) *CourseService {
	return &CourseService{courses: courses, bootcamps: bootcamps}
}

func (s *CourseService) Create(ctx context.Context, course models.Course, bootcampID, userID primitive.ObjectID) (models.Course, error) {
	bootcamp, err := s.bootcamps.FindByID(ctx, bootcampID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Course{}, ErrNotFound
		}
		return models.Course{}, err
	}
	if bootcamp.User != userID {
		return models.Course{}, ErrNotOwner
	}

	course.ID = primitive.NewObjectID()
	course.Bootcamp = bootcampID
	course.User = userID
	course.CreatedAt = time.Now()

	if err := models.Validate(&course); err != nil {
		return models.Course{}, err
	}
	if err := s.courses.Insert(ctx, &course); err != nil {
		return models.Course{}, fmt.Errorf("failed to save course: %w", err)
	}

	s.refreshAverageCost(ctx, bootcampID)
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, id primitive.ObjectID, in models.Course, userID primitive.ObjectID, role string) (models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Course{}, ErrNotFound
		}
		return models.Course{}, err
	}
	if !canModify(course.User, userID, role) {
		return models.Course{}, ErrNotOwner
	}

	course.Title = in.Title
	course.Description = in.Description
	course.Weeks = in.Weeks
	course.Tuition = in.Tuition
	course.MinimumSkill = in.MinimumSkill
	course.ScholarshipAvailable = in.ScholarshipAvailable

	if err := models.Validate(&course); err != nil {
		return models.Course{}, err
	}
	if err := s.courses.Update(ctx, &course); err != nil {
		return models.Course{}, fmt.Errorf("failed to update course: %w", err)
	}

	s.refreshAverageCost(ctx, course.Bootcamp)
	return course, nil
}

func (s *CourseService) Get(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Course{}, ErrNotFound
	}
	return course, err
}

func (s *CourseService) ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Course, error) {
	return s.courses.FindByBootcamp(ctx, bootcampID)
}

func (s *CourseService) Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID, role string) error {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !canModify(course.User, userID, role) {
		return ErrNotOwner
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}

	s.refreshAverageCost(ctx, course.Bootcamp)
	return nil
}

// refreshAverageCost is best-effort, same policy as the rating aggregate.
func (s *CourseService) refreshAverageCost(ctx context.Context, bootcampID primitive.ObjectID) {
	avg, count, err := s.courses.AverageTuition(ctx, bootcampID)
	if err != nil {
		logrus.WithError(err).WithField("bootcamp", bootcampID.Hex()).
			Warn("failed to compute average cost")
		return
	}

	var value *float64
	if count > 0 {
		value = &avg
	}
	if err := s.bootcamps.SetAverageCost(ctx, bootcampID, value); err != nil {
		logrus.WithError(err).WithField("bootcamp", bootcampID.Hex()).
			Warn("failed to update average cost")
	}
}
