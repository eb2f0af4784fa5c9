package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Skill is the entry-level requirement for a course.
type Skill string

const (
	SkillBeginner     Skill = "beginner"
	SkillIntermediate Skill = "intermediate"
	SkillAdvanced     Skill = "advanced"
)

// ParseSkill converts a raw string into a Skill.
func ParseSkill(s string) (Skill, error) {
	switch Skill(s) {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return Skill(s), nil
	}
	return "", fmt.Errorf("invalid minimum skill %q", s)
}

func (s Skill) Valid() bool {
	_, err := ParseSkill(string(s))
	return err == nil
}

// Course is a single program offered by a bootcamp. Courses are dependent
// records: deleting the parent bootcamp removes them.
type Course struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title                string             `bson:"title" json:"title" validate:"required"`
	Description          string             `bson:"description" json:"description" validate:"required"`
	Weeks                int                `bson:"weeks" json:"weeks" validate:"required,min=1"`
	Tuition              float64            `bson:"tuition" json:"tuition" validate:"required,min=0"`
	MinimumSkill         Skill              `bson:"minimum_skill" json:"minimumSkill" validate:"required,skill"`
	ScholarshipAvailable bool               `bson:"scholarship_available" json:"scholarshipAvailable"`
	CreatedAt            time.Time          `bson:"created_at" json:"createdAt"`
	Bootcamp             primitive.ObjectID `bson:"bootcamp" json:"bootcamp" validate:"required"`
	User                 primitive.ObjectID `bson:"user" json:"user" validate:"required"`
}
