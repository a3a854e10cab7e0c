package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"portfolio-api/internal/db"
	"portfolio-api/internal/model"
)

// SkillRepository defines persistence operations for skills.
type SkillRepository interface {
	CRUD[model.Skill]
	// PopulateHolders resolves the names of the users holding the skill.
	PopulateHolders(ctx context.Context, skill *model.Skill) error
}

type skillRepository struct {
	*Repository[model.Skill]
	users *mongo.Collection
}

// NewSkillRepository builds a MongoDB-backed skill repository.
func NewSkillRepository(database *mongo.Database) SkillRepository {
	return &skillRepository{
		Repository: NewRepository[model.Skill](database, db.ColSkills),
		users:      database.Collection(db.ColUsers),
	}
}

func (r *skillRepository) PopulateHolders(ctx context.Context, skill *model.Skill) error {
	if len(skill.Users) == 0 {
		skill.Holders = []model.UserRef{}
		return nil
	}

	cursor, err := r.users.Find(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: skill.Users}}}},
		options.Find().SetProjection(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	holders := []model.UserRef{}
	for cursor.Next(ctx) {
		var ref model.UserRef
		if err := cursor.Decode(&ref); err != nil {
			return err
		}
		holders = append(holders, ref)
	}
	if err := cursor.Err(); err != nil {
		return err
	}
	skill.Holders = holders
	return nil
}
