package services

import (
	"context"
	"testing"

	"github.com/devcamper/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCourseFixture(t *testing.T) (*CourseService, *fakeCourseStore, *fakeBootcampStore, primitive.ObjectID, primitive.ObjectID) {
	t.Helper()
	bootcamps := newFakeBootcampStore()
	courses := newFakeCourseStore()

	owner := primitive.NewObjectID()
	bootcampID := primitive.NewObjectID()
	bootcamps.byID[bootcampID] = &models.Bootcamp{
		ID:   bootcampID,
		Name: "Devworks Bootcamp",
		User: owner,
	}
	return NewCourseService(courses, bootcamps), courses, bootcamps, bootcampID, owner
}

func course(title string, tuition float64) models.Course {
	return models.Course{
		Title:        title,
		Description:  "Twelve weeks of full stack",
		Weeks:        12,
		Tuition:      tuition,
		MinimumSkill: models.SkillBeginner,
	}
}

func TestCreateCourse_MaintainsAverageCost(t *testing.T) {
	svc, _, bootcamps, bootcampID, owner := newCourseFixture(t)

	_, err := svc.Create(context.Background(), course("Front End", 8000), bootcampID, owner)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), course("Back End", 12000), bootcampID, owner)
	require.NoError(t, err)

	b, err := bootcamps.FindByID(context.Background(), bootcampID)
	require.NoError(t, err)
	require.NotNil(t, b.AverageCost)
	assert.InDelta(t, 10000.0, *b.AverageCost, 1e-9)
}

func TestCreateCourse_OnlyBootcampOwner(t *testing.T) {
	svc, _, _, bootcampID, _ := newCourseFixture(t)

	_, err := svc.Create(context.Background(), course("Front End", 8000), bootcampID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestCreateCourse_RejectsUnknownSkill(t *testing.T) {
	svc, _, _, bootcampID, owner := newCourseFixture(t)

	in := course("Front End", 8000)
	in.MinimumSkill = "wizard"

	_, err := svc.Create(context.Background(), in, bootcampID, owner)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "MinimumSkill")
}

func TestDeleteLastCourse_UnsetsAverageCost(t *testing.T) {
	svc, _, bootcamps, bootcampID, owner := newCourseFixture(t)

	created, err := svc.Create(context.Background(), course("Front End", 8000), bootcampID, owner)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, owner, models.RolePublisher))

	b, err := bootcamps.FindByID(context.Background(), bootcampID)
	require.NoError(t, err)
	assert.Nil(t, b.AverageCost)
}
