package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ProjectDetail is the nested detail block of a project.
type ProjectDetail struct {
	SubTitle string   `json:"subTitle" bson:"subTitle" validate:"required"`
	Details  []string `json:"details" bson:"details"`
}

// Project is an owned content item. CreatedAt exists only in the database and
// is never serialized; the owning user is resolved into Owner on every read.
type Project struct {
	ID            bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Title         string        `json:"title" bson:"title" validate:"required,max=22"`
	Img           string        `json:"img" bson:"img" validate:"required"`
	Description   string        `json:"description" bson:"description" validate:"required"`
	ProjectDetail ProjectDetail `json:"projectDetail" bson:"projectDetail"`
	GitRepoLinks  []string      `json:"gitRepoLinks" bson:"gitRepoLinks"`
	DemoLink      string        `json:"demoLink" bson:"demoLink"`
	Note          string        `json:"note" bson:"note"`
	Slug          string        `json:"slug" bson:"slug"`
	CreatedAt     time.Time     `json:"-" bson:"createdAt"`
	UserID        bson.ObjectID `json:"-" bson:"user" validate:"required"`

	Owner *UserRef `json:"user,omitempty" bson:"-"`
}

// EnsureDefaults assigns the identity and creation timestamp before the first
// insert.
func (p *Project) EnsureDefaults() {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.GitRepoLinks == nil {
		p.GitRepoLinks = []string{}
	}
	if p.ProjectDetail.Details == nil {
		p.ProjectDetail.Details = []string{}
	}
}
