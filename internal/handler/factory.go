// Package handler exposes the HTTP handlers: a generic CRUD factory
// parameterized by resource type, plus the thin per-resource bindings.
package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/v2/bson"

	errs "portfolio-api/internal/errors"
	"portfolio-api/internal/repository"
)

// Resource is a generic factory producing the five CRUD operations for one
// resource type. The hooks let bindings add resource-specific behavior
// without changing the generic flow.
type Resource[T any] struct {
	Repo repository.CRUD[T]

	// Mutable is the explicit allow-list of field names UpdateOne may
	// change; disallowed and unknown fields are stripped from the body.
	Mutable []string

	// BeforeCreate runs after binding a create body, before validation.
	BeforeCreate func(c echo.Context, doc *T)

	// PrepareUpdate runs on the filtered update set before it is merged,
	// e.g. to coerce reference ids out of their JSON encoding.
	PrepareUpdate func(updates map[string]interface{}) error

	// BeforeSave runs on create and update, before validation.
	BeforeSave func(doc *T)

	// AfterGet runs on single reads to resolve references.
	AfterGet func(ctx context.Context, doc *T) error
}

// CreateOne persists the bound request body as a new record and responds
// 201 with it.
func (r *Resource[T]) CreateOne(c echo.Context) error {
	doc := new(T)
	if err := c.Bind(doc); err != nil {
		return errs.BadRequest("Invalid request body!")
	}
	if r.BeforeCreate != nil {
		r.BeforeCreate(c, doc)
	}
	if r.BeforeSave != nil {
		r.BeforeSave(doc)
	}
	if err := c.Validate(doc); err != nil {
		return err
	}
	if err := r.Repo.Create(c.Request().Context(), doc); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"status": "success",
		"data":   doc,
	})
}

// GetOne returns the record matching the identifier with its references
// resolved.
func (r *Resource[T]) GetOne(c echo.Context) error {
	id, err := repository.ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	doc, err := r.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return errs.NotFound("There is no document found with that ID.")
	}
	if r.AfterGet != nil {
		if err := r.AfterGet(ctx, doc); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   doc,
	})
}

// GetAll runs the query feature builder against the full collection. An
// empty list is a valid success.
func (r *Resource[T]) GetAll(c echo.Context) error {
	features := repository.NewFeatures(c.QueryParams())
	docs, err := r.Repo.FindAll(c.Request().Context(), features)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":       "success",
		"totalResults": len(docs),
		"data":         docs,
	})
}

// UpdateOne applies the allowed fields of the body to the record, re-runs
// validation and returns the post-update state.
func (r *Resource[T]) UpdateOne(c echo.Context) error {
	id, err := repository.ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	body := map[string]interface{}{}
	if err := c.Bind(&body); err != nil {
		return errs.BadRequest("Invalid request body!")
	}
	updates := filterFields(body, r.Mutable)
	if len(updates) == 0 {
		return errs.BadRequest("This request contains no updatable fields!")
	}
	if r.PrepareUpdate != nil {
		if err := r.PrepareUpdate(updates); err != nil {
			return err
		}
	}

	ctx := c.Request().Context()
	doc, err := r.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return errs.NotFound("There is no document found with that ID.")
	}

	if err := mergeInto(doc, updates); err != nil {
		return errs.BadRequest("Invalid request body!")
	}
	if r.BeforeSave != nil {
		r.BeforeSave(doc)
	}
	if err := c.Validate(doc); err != nil {
		return err
	}

	updated, err := r.Repo.Replace(ctx, id, doc)
	if err != nil {
		return err
	}
	if updated == nil {
		return errs.NotFound("There is no document found with that ID.")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   updated,
	})
}

// DeleteOne removes the record and responds 204 with no body.
func (r *Resource[T]) DeleteOne(c echo.Context) error {
	id, err := repository.ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	deleted, err := r.Repo.DeleteByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.NotFound("There is no document found with that ID.")
	}
	return c.NoContent(http.StatusNoContent)
}

// filterFields keeps only the allow-listed fields of a request body.
func filterFields(body map[string]interface{}, allowed []string) map[string]interface{} {
	filtered := map[string]interface{}{}
	for _, field := range allowed {
		if value, ok := body[field]; ok {
			filtered[field] = value
		}
	}
	return filtered
}

// mergeInto decodes the update set onto the existing document, leaving
// untouched fields as they are.
func mergeInto[T any](doc *T, updates map[string]interface{}) error {
	raw, err := bson.Marshal(updates)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, doc)
}
