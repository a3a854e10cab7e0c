package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"portfolio-api/internal/db"
	"portfolio-api/internal/model"
)

// ProjectRepository defines persistence operations for projects. Every read
// resolves the owning user's name and photo.
type ProjectRepository interface {
	CRUD[model.Project]
}

type projectRepository struct {
	*Repository[model.Project]
	users *mongo.Collection
}

// NewProjectRepository builds a MongoDB-backed project repository.
func NewProjectRepository(database *mongo.Database) ProjectRepository {
	return &projectRepository{
		Repository: NewRepository[model.Project](database, db.ColProjects),
		users:      database.Collection(db.ColUsers),
	}
}

func (r *projectRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Project, error) {
	project, err := r.Repository.FindByID(ctx, id)
	if err != nil || project == nil {
		return project, err
	}
	if err := r.populateOwners(ctx, []*model.Project{project}); err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepository) FindAll(ctx context.Context, features *Features) ([]model.Project, error) {
	projects, err := r.Repository.FindAll(ctx, features)
	if err != nil {
		return nil, err
	}
	refs := make([]*model.Project, len(projects))
	for i := range projects {
		refs[i] = &projects[i]
	}
	if err := r.populateOwners(ctx, refs); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) Replace(ctx context.Context, id bson.ObjectID, doc *model.Project) (*model.Project, error) {
	updated, err := r.Repository.Replace(ctx, id, doc)
	if err != nil || updated == nil {
		return updated, err
	}
	if err := r.populateOwners(ctx, []*model.Project{updated}); err != nil {
		return nil, err
	}
	return updated, nil
}

// populateOwners resolves the owning users of the given projects in a single
// query, attaching their name and photo.
func (r *projectRepository) populateOwners(ctx context.Context, projects []*model.Project) error {
	if len(projects) == 0 {
		return nil
	}

	seen := map[bson.ObjectID]bool{}
	ids := []bson.ObjectID{}
	for _, p := range projects {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			ids = append(ids, p.UserID)
		}
	}

	cursor, err := r.users.Find(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}},
		options.Find().SetProjection(bson.D{{Key: "name", Value: 1}, {Key: "photo", Value: 1}}),
	)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	owners := map[bson.ObjectID]*model.UserRef{}
	for cursor.Next(ctx) {
		var ref model.UserRef
		if err := cursor.Decode(&ref); err != nil {
			return err
		}
		owners[ref.ID] = &ref
	}
	if err := cursor.Err(); err != nil {
		return err
	}

	for _, p := range projects {
		p.Owner = owners[p.UserID]
	}
	return nil
}
