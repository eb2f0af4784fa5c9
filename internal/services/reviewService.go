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

// ReviewStore is the persistence surface the review service needs.
// *repo.ReviewRepo implements it; tests substitute a fake.
type ReviewStore interface {
	Insert(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Review, error)
	FindByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) error
	AverageRating(ctx context.Context, bootcampID primitive.ObjectID) (float64, int, error)
}

// ReviewService handles review writes and keeps the parent bootcamp's
// averageRating in sync. The aggregate is recomputed exactly once per
// successful write, after persistence, and is best-effort: a failed
// recomputation never fails the review write that triggered it.
type ReviewService struct {
	reviews   ReviewStore
	bootcamps BootcampStore
}

func NewReviewService(reviews ReviewStore, bootcamps BootcampStore) *ReviewService {
	return &ReviewService{reviews: reviews, bootcamps: bootcamps}
}

// Create persists a new review by userID for the given bootcamp. A second
// review by the same user for the same bootcamp fails with
// ErrDuplicateReview; that check rides the unique (bootcamp, user) index,
// so concurrent submissions cannot both succeed.
func (s *ReviewService) Create(ctx context.Context, review models.Review, bootcampID, userID primitive.ObjectID) (models.Review, error) {
	if _, err := s.bootcamps.FindByID(ctx, bootcampID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Review{}, ErrNotFound
		}
		return models.Review{}, err
	}

	review.ID = primitive.NewObjectID()
	review.Bootcamp = bootcampID
	review.User = userID
	review.CreatedAt = time.Now()

	if err := models.Validate(&review); err != nil {
		return models.Review{}, err
	}

	if err := s.reviews.Insert(ctx, &review); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return models.Review{}, ErrDuplicateReview
		}
		return models.Review{}, fmt.Errorf("failed to save review: %w", err)
	}

	s.refreshAverageRating(ctx, bootcampID)
	return review, nil
}

// Update rewrites an existing review's title, text and rating. Only the
// author or an admin may update.
func (s *ReviewService) Update(ctx context.Context, id primitive.ObjectID, in models.Review, userID primitive.ObjectID, role string) (models.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Review{}, ErrNotFound
		}
		return models.Review{}, err
	}
	if !canModify(review.User, userID, role) {
		return models.Review{}, ErrNotOwner
	}

	review.Title = in.Title
	review.Text = in.Text
	review.Rating = in.Rating

	if err := models.Validate(&review); err != nil {
		return models.Review{}, err
	}
	if err := s.reviews.Update(ctx, &review); err != nil {
		return models.Review{}, fmt.Errorf("failed to update review: %w", err)
	}

	s.refreshAverageRating(ctx, review.Bootcamp)
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Review{}, ErrNotFound
	}
	return review, err
}

func (s *ReviewService) ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Review, error) {
	return s.reviews.FindByBootcamp(ctx, bootcampID)
}

// Delete removes a review and refreshes the parent aggregate.
func (s *ReviewService) Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID, role string) error {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !canModify(review.User, userID, role) {
		return ErrNotOwner
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}

	s.refreshAverageRating(ctx, review.Bootcamp)
	return nil
}

// refreshAverageRating recomputes the parent bootcamp's averageRating from
// all of its reviews. With zero reviews the field is unset rather than left
// stale or written as NaN. Failures are logged and swallowed: the aggregate
// is eventually consistent, not authoritative.
func (s *ReviewService) refreshAverageRating(ctx context.Context, bootcampID primitive.ObjectID) {
	avg, count, err := s.reviews.AverageRating(ctx, bootcampID)
	if err != nil {
		logrus.WithError(err).WithField("bootcamp", bootcampID.Hex()).
			Warn("failed to compute average rating")
		return
	}

	var value *float64
	if count > 0 {
		value = &avg
	}
	if err := s.bootcamps.SetAverageRating(ctx, bootcampID, value); err != nil {
		logrus.WithError(err).WithField("bootcamp", bootcampID.Hex()).
			Warn("failed to update average rating")
	}
}
