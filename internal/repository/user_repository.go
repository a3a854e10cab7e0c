package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"portfolio-api/internal/db"
	"portfolio-api/internal/model"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	CRUD[model.User]
	// FindByEmail returns the user with the given (already lowercased)
	// email, including the password hash, or nil when no user matches.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// PopulateProjects resolves the user's owned projects by a reverse
	// lookup on the projects collection.
	PopulateProjects(ctx context.Context, user *model.User) error
}

type userRepository struct {
	*Repository[model.User]
	projects *mongo.Collection
}

// NewUserRepository builds a MongoDB-backed user repository.
func NewUserRepository(database *mongo.Database) UserRepository {
	return &userRepository{
		Repository: NewRepository[model.User](database, db.ColUsers),
		projects:   database.Collection(db.ColProjects),
	}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.col.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) PopulateProjects(ctx context.Context, user *model.User) error {
	cursor, err := r.projects.Find(ctx, bson.D{{Key: "user", Value: user.ID}})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	projects := []model.Project{}
	owner := &model.UserRef{ID: user.ID, Name: user.Name, Photo: user.Photo}
	for cursor.Next(ctx) {
		var project model.Project
		if err := cursor.Decode(&project); err != nil {
			return err
		}
		project.Owner = owner
		projects = append(projects, project)
	}
	if err := cursor.Err(); err != nil {
		return err
	}
	user.Projects = projects
	return nil
}
