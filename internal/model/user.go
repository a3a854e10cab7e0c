package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an identity record. Password holds the bcrypt hash and is
// never serialized; Active is a soft-delete marker excluded from responses.
type User struct {
	ID                bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name              string        `json:"name" bson:"name" validate:"required,max=20"`
	Email             string        `json:"email" bson:"email" validate:"required,email"`
	Password          string        `json:"-" bson:"password" validate:"required"`
	Photo             string        `json:"photo" bson:"photo"`
	Role              string        `json:"role" bson:"role" validate:"required,oneof=user admin"`
	Intro             string        `json:"intro,omitempty" bson:"intro,omitempty"`
	Education         [][]string    `json:"education,omitempty" bson:"education,omitempty"`
	EmploymentHistory [][]string    `json:"employmentHistory,omitempty" bson:"employmentHistory,omitempty"`
	Active            bool          `json:"-" bson:"active"`
	CreatedAt         time.Time     `json:"-" bson:"createdAt"`

	// Projects is resolved by a reverse lookup on read; it is never stored.
	Projects []Project `json:"projects,omitempty" bson:"-"`
}

// UserRef is the subset of a user embedded into populated references.
type UserRef struct {
	ID    bson.ObjectID `json:"id" bson:"_id"`
	Name  string        `json:"name" bson:"name"`
	Photo string        `json:"photo,omitempty" bson:"photo,omitempty"`
}

// EnsureDefaults assigns the identity, timestamps and schema defaults before
// the first insert.
func (u *User) EnsureDefaults() {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Photo == "" {
		u.Photo = "default.jpg"
	}
	u.Active = true
}
