package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_EnsureDefaults(t *testing.T) {
	u := &User{Name: "Jane Doe", Email: "jane@example.com", Password: "hash"}
	u.EnsureDefaults()

	assert.False(t, u.ID.IsZero())
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, "default.jpg", u.Photo)
	assert.True(t, u.Active)

	// explicit values survive
	admin := &User{Role: RoleAdmin, Photo: "me.png"}
	admin.EnsureDefaults()
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.Equal(t, "me.png", admin.Photo)
}

func TestUser_SensitiveFieldsNeverSerialized(t *testing.T) {
	u := &User{Name: "Jane Doe", Email: "jane@example.com", Password: "hash"}
	u.EnsureDefaults()

	raw, err := json.Marshal(u)
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.NotContains(t, string(raw), "active")
	assert.NotContains(t, string(raw), "createdAt")
}

func TestProject_EnsureDefaults(t *testing.T) {
	p := &Project{Title: "Demo Project"}
	p.EnsureDefaults()

	assert.False(t, p.ID.IsZero())
	assert.False(t, p.CreatedAt.IsZero())
	assert.NotNil(t, p.GitRepoLinks)
	assert.NotNil(t, p.ProjectDetail.Details)
}

func TestSkill_EnsureDefaults(t *testing.T) {
	s := &Skill{Title: "Go", Img: "go.png"}
	s.EnsureDefaults()

	assert.False(t, s.ID.IsZero())
	assert.False(t, s.CreatedAt.IsZero())
	assert.NotNil(t, s.Users)
}
