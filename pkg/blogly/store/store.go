// Package store is the persistence layer of the blog: users, posts, tags and
// the posttags join table.
//
// Every mutating operation runs in a single transaction. Cascades and
// association changes are written directly against the join table.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/mikepea/blogly/pkg/blogly/apperr"
	"github.com/mikepea/blogly/pkg/blogly/models"
	"gorm.io/gorm"
)

// Store provides access to the blog's entities
type Store struct {
	db *gorm.DB
}

// New creates a store on top of an open database handle
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying database handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

// transaction runs fn in a transaction bound to ctx and translates the error
func (s *Store) transaction(ctx context.Context, operation, entity string, fn func(tx *gorm.DB) error) error {
	err := s.db.WithContext(ctx).Transaction(fn)
	return apperr.FromDB(operation, entity, err)
}

// first loads the row with the given primary key into dest
func first(tx *gorm.DB, dest interface{}, entity string, id uint) error {
	if err := tx.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(entity, id)
		}
		return apperr.FromDB("get", entity, err)
	}
	return nil
}

// existingIDs returns the subset of ids that have a row in model's table.
// Unknown ids are dropped; the result is sorted and free of duplicates.
func existingIDs(tx *gorm.DB, model interface{}, ids []uint) ([]uint, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uint
	if err := tx.Model(model).Where("id IN ?", ids).Order("id").Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// required returns a validation error when value is blank
func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validation(field, "is required")
	}
	return nil
}

// require fails with NotFound unless model's table has a row with the given id
func (s *Store) require(ctx context.Context, model interface{}, entity string, id uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperr.FromDB("get", entity, err)
	}
	if count == 0 {
		return apperr.NotFound(entity, id)
	}
	return nil
}

// RequireUser fails with NotFound when the user does not exist
func (s *Store) RequireUser(ctx context.Context, id uint) error {
	return s.require(ctx, &models.User{}, "user", id)
}

// RequirePost fails with NotFound when the post does not exist
func (s *Store) RequirePost(ctx context.Context, id uint) error {
	return s.require(ctx, &models.Post{}, "post", id)
}

// RequireTag fails with NotFound when the tag does not exist
func (s *Store) RequireTag(ctx context.Context, id uint) error {
	return s.require(ctx, &models.Tag{}, "tag", id)
}
