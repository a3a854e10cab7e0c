package handler

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	errs "portfolio-api/internal/errors"
	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
)

var skillFields = []string{"title", "description", "img", "users"}

// SkillHandler binds the generic factory to the skill resource. Single reads
// resolve the names of the users holding the skill.
type SkillHandler struct {
	Resource[model.Skill]
}

// NewSkillHandler creates a new skill handler.
func NewSkillHandler(skills repository.SkillRepository) *SkillHandler {
	h := &SkillHandler{}
	h.Repo = skills
	h.Mutable = skillFields
	h.AfterGet = func(ctx context.Context, s *model.Skill) error {
		return skills.PopulateHolders(ctx, s)
	}
	h.PrepareUpdate = coerceUserIDs
	return h
}

// coerceUserIDs turns the JSON hex strings of a users update into ObjectIDs
// so the merge can decode them.
func coerceUserIDs(updates map[string]interface{}) error {
	raw, ok := updates["users"]
	if !ok {
		return nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return errs.BadRequest("users must be a list of user ids!")
	}

	ids := make([]bson.ObjectID, 0, len(list))
	for _, entry := range list {
		hex, ok := entry.(string)
		if !ok {
			return errs.BadRequest("users must be a list of user ids!")
		}
		id, err := repository.ParseID(hex)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	updates["users"] = ids
	return nil
}
