package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPhoto is stored until an owner uploads a real photo.
const DefaultPhoto = "no-photo.jpg"

// Career is one of the fixed set of career tracks a bootcamp can teach.
type Career string

const (
	CareerWebDevelopment    Career = "Web Development"
	CareerMobileDevelopment Career = "Mobile Development"
	CareerUIUX              Career = "UI/UX"
	CareerDataScience       Career = "Data Science"
	CareerBusiness          Career = "Business"
	CareerOther             Career = "Others"
)

var careers = map[Career]bool{
	CareerWebDevelopment:    true,
	CareerMobileDevelopment: true,
	CareerUIUX:              true,
	CareerDataScience:       true,
	CareerBusiness:          true,
	CareerOther:             true,
}

// ParseCareer converts a raw string into a Career, rejecting anything
// outside the fixed enumeration.
func ParseCareer(s string) (Career, error) {
	c := Career(s)
	if !c.Valid() {
		return "", fmt.Errorf("invalid career %q", s)
	}
	return c, nil
}

func (c Career) Valid() bool {
	return careers[c]
}

// Location is a GeoJSON Point with the structured address components the
// geocoder resolved. Construct it with NewPoint so Type and Coordinates
// cannot drift from the GeoJSON shape.
type Location struct {
	Type             string    `bson:"type" json:"type"`
	Coordinates      []float64 `bson:"coordinates" json:"coordinates"` // [lng, lat]
	FormattedAddress string    `bson:"formatted_address,omitempty" json:"formattedAddress,omitempty"`
	Street           string    `bson:"street,omitempty" json:"street,omitempty"`
	City             string    `bson:"city,omitempty" json:"city,omitempty"`
	State            string    `bson:"state,omitempty" json:"state,omitempty"`
	Zipcode          string    `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
	Country          string    `bson:"country,omitempty" json:"country,omitempty"`
}

// NewPoint builds a GeoJSON Point location from a longitude/latitude pair.
func NewPoint(lng, lat float64) *Location {
	return &Location{
		Type:        "Point",
		Coordinates: []float64{lng, lat},
	}
}

// Bootcamp is a training-provider directory entry.
//
// Address is input-only: it carries the free-text address from the caller to
// the geocoder and is never written to the database (bson:"-"). The derived
// Location is what gets persisted.
type Bootcamp struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name" validate:"required,max=50"`
	Slug          string             `bson:"slug" json:"slug"`
	Description   string             `bson:"description" json:"description" validate:"required,max=500"`
	Website       string             `bson:"website,omitempty" json:"website,omitempty" validate:"omitempty,url"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty" validate:"omitempty,max=20"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Address       string             `bson:"-" json:"address,omitempty"`
	Location      *Location          `bson:"location,omitempty" json:"location,omitempty"`
	Careers       []Career           `bson:"careers" json:"careers" validate:"required,min=1,dive,career"`
	AverageRating *float64           `bson:"average_rating,omitempty" json:"averageRating,omitempty" validate:"omitempty,min=1,max=10"`
	AverageCost   *float64           `bson:"average_cost,omitempty" json:"averageCost,omitempty"`
	Photo         string             `bson:"photo" json:"photo"`
	Housing       bool               `bson:"housing" json:"housing"`
	JobAssistance bool               `bson:"job_assistance" json:"jobAssistance"`
	JobGuarantee  bool               `bson:"job_guarantee" json:"jobGuarantee"`
	AcceptGi      bool               `bson:"accept_gi" json:"acceptGi"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	User          primitive.ObjectID `bson:"user" json:"user" validate:"required"`
}
