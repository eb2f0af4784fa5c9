package services

import (
	"context"
	"errors"
	"testing"

	"github.com/devcamper/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newReviewFixture(t *testing.T) (*ReviewService, *fakeReviewStore, *fakeBootcampStore, primitive.ObjectID) {
	t.Helper()
	bootcamps := newFakeBootcampStore()
	reviews := newFakeReviewStore()

	bootcampID := primitive.NewObjectID()
	bootcamps.byID[bootcampID] = &models.Bootcamp{
		ID:   bootcampID,
		Name: "Devworks Bootcamp",
		User: primitive.NewObjectID(),
	}
	return NewReviewService(reviews, bootcamps), reviews, bootcamps, bootcampID
}

func review(title string, rating float64) models.Review {
	return models.Review{Title: title, Text: "Learned a lot", Rating: rating}
}

func TestCreateReview_MaintainsAverageRating(t *testing.T) {
	svc, _, bootcamps, bootcampID := newReviewFixture(t)
	ratings := []float64{8, 6, 7, 9}

	for i, r := range ratings {
		_, err := svc.Create(context.Background(), review("Great course", r), bootcampID, primitive.NewObjectID())
		require.NoError(t, err)

		b, err := bootcamps.FindByID(context.Background(), bootcampID)
		require.NoError(t, err)
		require.NotNil(t, b.AverageRating)

		var sum float64
		for _, v := range ratings[:i+1] {
			sum += v
		}
		assert.InDelta(t, sum/float64(i+1), *b.AverageRating, 1e-9)
	}
}

func TestCreateReview_DuplicatePerUserRejected(t *testing.T) {
	svc, reviews, bootcamps, bootcampID := newReviewFixture(t)
	userID := primitive.NewObjectID()

	first, err := svc.Create(context.Background(), review("Solid", 8), bootcampID, userID)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), review("Changed my mind", 2), bootcampID, userID)
	assert.ErrorIs(t, err, ErrDuplicateReview)

	// The first review and the aggregate are untouched.
	stored, err := reviews.FindByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, stored.Rating)

	b, err := bootcamps.FindByID(context.Background(), bootcampID)
	require.NoError(t, err)
	require.NotNil(t, b.AverageRating)
	assert.InDelta(t, 8.0, *b.AverageRating, 1e-9)
}

func TestCreateReview_UnknownBootcamp(t *testing.T) {
	svc, _, _, _ := newReviewFixture(t)

	_, err := svc.Create(context.Background(), review("Solid", 8), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateReview_InvalidFields(t *testing.T) {
	svc, _, _, bootcampID := newReviewFixture(t)

	_, err := svc.Create(context.Background(), review("Too enthusiastic", 11), bootcampID, primitive.NewObjectID())
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Rating")
}

func TestUpdateReview_RecomputesAverage(t *testing.T) {
	svc, _, bootcamps, bootcampID := newReviewFixture(t)
	userID := primitive.NewObjectID()

	created, err := svc.Create(context.Background(), review("Solid", 4), bootcampID, userID)
	require.NoError(t, err)

	in := review("Even better on reflection", 10)
	_, err = svc.Update(context.Background(), created.ID, in, userID, models.RoleUser)
	require.NoError(t, err)

	b, err := bootcamps.FindByID(context.Background(), bootcampID)
	require.NoError(t, err)
	require.NotNil(t, b.AverageRating)
	assert.InDelta(t, 10.0, *b.AverageRating, 1e-9)
}

func TestDeleteLastReview_UnsetsAverage(t *testing.T) {
	svc, _, bootcamps, bootcampID := newReviewFixture(t)
	userID := primitive.NewObjectID()

	created, err := svc.Create(context.Background(), review("Solid", 8), bootcampID, userID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, userID, models.RoleUser))

	// No reviews left: the aggregate is unset, not zero and not NaN.
	b, err := bootcamps.FindByID(context.Background(), bootcampID)
	require.NoError(t, err)
	assert.Nil(t, b.AverageRating)
}

func TestCreateReview_AggregateFailureDoesNotFailWrite(t *testing.T) {
	svc, reviews, bootcamps, bootcampID := newReviewFixture(t)
	reviews.aggErr = errors.New("aggregation unavailable")

	created, err := svc.Create(context.Background(), review("Solid", 8), bootcampID, primitive.NewObjectID())
	require.NoError(t, err)

	_, err = reviews.FindByID(context.Background(), created.ID)
	assert.NoError(t, err)

	// Aggregate maintenance is best-effort: the average stays as it was.
	b, err := bootcamps.FindByID(context.Background(), bootcampID)
	require.NoError(t, err)
	assert.Nil(t, b.AverageRating)
}

func TestDeleteReview_OnlyAuthorOrAdmin(t *testing.T) {
	svc, _, _, bootcampID := newReviewFixture(t)
	userID := primitive.NewObjectID()

	created, err := svc.Create(context.Background(), review("Solid", 8), bootcampID, userID)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID, primitive.NewObjectID(), models.RoleUser)
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.Delete(context.Background(), created.ID, primitive.NewObjectID(), models.RoleAdmin)
	assert.NoError(t, err)
}
