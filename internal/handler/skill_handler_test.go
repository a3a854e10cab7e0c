package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	errs "portfolio-api/internal/errors"
	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
)

type mockSkillRepo struct {
	mock.Mock
}

func (m *mockSkillRepo) Create(ctx context.Context, doc *model.Skill) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *mockSkillRepo) FindByID(ctx context.Context, id bson.ObjectID) (*model.Skill, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*model.Skill), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSkillRepo) FindAll(ctx context.Context, features *repository.Features) ([]model.Skill, error) {
	args := m.Called(ctx, features)
	if s := args.Get(0); s != nil {
		return s.([]model.Skill), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSkillRepo) Replace(ctx context.Context, id bson.ObjectID, doc *model.Skill) (*model.Skill, error) {
	args := m.Called(ctx, id, doc)
	if s := args.Get(0); s != nil {
		return s.(*model.Skill), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSkillRepo) DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockSkillRepo) PopulateHolders(ctx context.Context, skill *model.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func TestSkillHandler_GetOne_PopulatesHolders(t *testing.T) {
	id := bson.NewObjectID()
	repo := new(mockSkillRepo)
	repo.On("FindByID", mock.Anything, id).
		Return(&model.Skill{ID: id, Title: "Go", Img: "go.png"}, nil)
	repo.On("PopulateHolders", mock.Anything, mock.AnythingOfType("*model.Skill")).
		Run(func(args mock.Arguments) {
			skill := args.Get(1).(*model.Skill)
			skill.Holders = []model.UserRef{{ID: bson.NewObjectID(), Name: "Jane Doe"}}
		}).
		Return(nil)
	h := NewSkillHandler(repo)

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/skills/"+id.Hex(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.Hex())

	assert.NoError(t, h.GetOne(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data model.Skill `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Holders, 1)
	assert.Equal(t, "Jane Doe", resp.Data.Holders[0].Name)
	repo.AssertExpectations(t)
}

func TestSkillHandler_UpdateOne_CoercesUserIDs(t *testing.T) {
	id := bson.NewObjectID()
	holderID := bson.NewObjectID()
	existing := &model.Skill{ID: id, Title: "Go", Description: "Systems language.", Img: "go.png"}

	repo := new(mockSkillRepo)
	repo.On("FindByID", mock.Anything, id).Return(existing, nil)
	repo.On("Replace", mock.Anything, id, mock.AnythingOfType("*model.Skill")).Return(existing, nil)
	h := NewSkillHandler(repo)

	c, rec := newTestContext(t, http.MethodPatch, "/api/v1/skills/"+id.Hex(),
		`{"users":["`+holderID.Hex()+`"]}`)
	c.SetParamNames("id")
	c.SetParamValues(id.Hex())

	assert.NoError(t, h.UpdateOne(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []bson.ObjectID{holderID}, existing.Users)
}

func TestCoerceUserIDs(t *testing.T) {
	valid := bson.NewObjectID()

	tests := []struct {
		name    string
		updates map[string]interface{}
		wantErr string
	}{
		{
			name:    "no users key is a no-op",
			updates: map[string]interface{}{"title": "Go"},
		},
		{
			name:    "hex strings become object ids",
			updates: map[string]interface{}{"users": []interface{}{valid.Hex()}},
		},
		{
			name:    "scalar value rejected",
			updates: map[string]interface{}{"users": "not-a-list"},
			wantErr: "users must be a list of user ids!",
		},
		{
			name:    "non-string entry rejected",
			updates: map[string]interface{}{"users": []interface{}{42}},
			wantErr: "users must be a list of user ids!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := coerceUserIDs(tt.updates)
			if tt.wantErr != "" {
				var appErr *errs.AppError
				assert.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantErr, appErr.Message)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("malformed hex rejected", func(t *testing.T) {
		err := coerceUserIDs(map[string]interface{}{"users": []interface{}{"zzz"}})
		assert.ErrorIs(t, err, errs.ErrInvalidID)
	})
}
