package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Skill is a catalog item referencing the users who hold it. Holders carries
// the resolved names of those users on single reads and is never stored.
type Skill struct {
	ID          bson.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title       string          `json:"title" bson:"title" validate:"required,max=20"`
	Description string          `json:"description" bson:"description" validate:"required"`
	Img         string          `json:"img" bson:"img" validate:"required"`
	Users       []bson.ObjectID `json:"users" bson:"users"`
	CreatedAt   time.Time       `json:"-" bson:"createdAt"`

	Holders []UserRef `json:"holders,omitempty" bson:"-"`
}

// EnsureDefaults assigns the identity and creation timestamp before the first
// insert.
func (s *Skill) EnsureDefaults() {
	if s.ID.IsZero() {
		s.ID = bson.NewObjectID()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if s.Users == nil {
		s.Users = []bson.ObjectID{}
	}
}
