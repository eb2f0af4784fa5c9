package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseCareer_ValidValues(t *testing.T) {
	valid := []string{
		"Web Development", "Mobile Development", "UI/UX",
		"Data Science", "Business", "Others",
	}
	for _, s := range valid {
		got, err := ParseCareer(s)
		require.NoError(t, err, "ParseCareer(%q)", s)
		assert.Equal(t, s, string(got))
	}
}

func TestParseCareer_InvalidValues(t *testing.T) {
	for _, s := range []string{"", "web development", "Basket Weaving"} {
		_, err := ParseCareer(s)
		assert.Error(t, err, "ParseCareer(%q)", s)
	}
}

func TestParseSkill(t *testing.T) {
	for _, s := range []string{"beginner", "intermediate", "advanced"} {
		got, err := ParseSkill(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(got))
	}
	_, err := ParseSkill("expert")
	assert.Error(t, err)
}

func TestNewPoint_GeoJSONShape(t *testing.T) {
	loc := NewPoint(-71.104028, 42.350335)
	assert.Equal(t, "Point", loc.Type)
	// GeoJSON ordering is [longitude, latitude].
	require.Len(t, loc.Coordinates, 2)
	assert.Equal(t, -71.104028, loc.Coordinates[0])
	assert.Equal(t, 42.350335, loc.Coordinates[1])
}

func TestValidateBootcamp_AcceptsMinimalRecord(t *testing.T) {
	b := Bootcamp{
		Name:        "Devworks",
		Description: "Web dev bootcamp",
		Careers:     []Career{CareerWebDevelopment},
		User:        primitive.NewObjectID(),
	}
	assert.NoError(t, Validate(&b))
}

func TestValidateBootcamp_ReportsEveryViolation(t *testing.T) {
	b := Bootcamp{
		Name:    "An absurdly long bootcamp name that definitely exceeds fifty characters",
		Website: "not a url",
		Email:   "not-an-email",
		Phone:   "123456789012345678901",
		Careers: []Career{},
	}
	err := Validate(&b)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"Name", "Description", "Website", "Email", "Phone", "Careers", "User"} {
		assert.Contains(t, verr.Fields, field)
	}
}

func TestValidateReview_RatingBounds(t *testing.T) {
	base := Review{
		Title:    "Great",
		Text:     "Learned a lot",
		Bootcamp: primitive.NewObjectID(),
		User:     primitive.NewObjectID(),
	}

	for _, rating := range []float64{1, 5.5, 10} {
		r := base
		r.Rating = rating
		assert.NoError(t, Validate(&r), "rating %v", rating)
	}
	for _, rating := range []float64{0.5, 10.5, -1} {
		r := base
		r.Rating = rating
		assert.Error(t, Validate(&r), "rating %v", rating)
	}
}
