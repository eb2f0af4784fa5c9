package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is one user's rating and comment on a bootcamp. A compound unique
// index on (bootcamp, user) limits each user to a single review per bootcamp.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string             `bson:"title" json:"title" validate:"required,max=100"`
	Text      string             `bson:"text" json:"text" validate:"required"`
	Rating    float64            `bson:"rating" json:"rating" validate:"required,min=1,max=10"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	Bootcamp  primitive.ObjectID `bson:"bootcamp" json:"bootcamp" validate:"required"`
	User      primitive.ObjectID `bson:"user" json:"user" validate:"required"`
}
