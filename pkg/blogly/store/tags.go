package store

import (
	"context"
	"strings"

	"github.com/mikepea/blogly/pkg/blogly/apperr"
	"github.com/mikepea/blogly/pkg/blogly/models"
	"gorm.io/gorm"
)

// TagInput holds the name of a tag and the ids of its posts
type TagInput struct {
	Name    string
	PostIDs []uint
}

func (in TagInput) validate() error {
	return required("name", in.Name)
}

// ListTags returns all tags ordered by name
func (s *Store) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, apperr.FromDB("list", "tags", err)
	}
	return tags, nil
}

// GetTag returns the tag with its posts
func (s *Store) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	tx := s.db.WithContext(ctx).Preload("Posts", func(db *gorm.DB) *gorm.DB {
		return db.Order("posts.created_at DESC, posts.id DESC")
	})
	if err := first(tx, &tag, "tag", id); err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateTag adds a tag with a unique name. Post ids that do not exist are ignored.
func (s *Store) CreateTag(ctx context.Context, in TagInput) (*models.Tag, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var tag models.Tag
	err := s.transaction(ctx, "create", "tag", func(tx *gorm.DB) error {
		name := strings.TrimSpace(in.Name)
		if err := ensureNameFree(tx, name, 0); err != nil {
			return err
		}

		postIDs, err := existingIDs(tx, &models.Post{}, in.PostIDs)
		if err != nil {
			return err
		}

		tag = models.Tag{Name: name}
		if err := tx.Omit("Posts").Create(&tag).Error; err != nil {
			return err
		}
		return replaceJoin(tx, tagSide, tag.ID, postIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.GetTag(ctx, tag.ID)
}

// UpdateTag renames a tag and replaces its post set
func (s *Store) UpdateTag(ctx context.Context, id uint, in TagInput) (*models.Tag, error) {
	err := s.transaction(ctx, "update", "tag", func(tx *gorm.DB) error {
		var tag models.Tag
		if err := first(tx, &tag, "tag", id); err != nil {
			return err
		}
		if err := in.validate(); err != nil {
			return err
		}

		name := strings.TrimSpace(in.Name)
		if err := ensureNameFree(tx, name, tag.ID); err != nil {
			return err
		}

		postIDs, err := existingIDs(tx, &models.Post{}, in.PostIDs)
		if err != nil {
			return err
		}

		tag.Name = name
		if err := tx.Omit("Posts").Save(&tag).Error; err != nil {
			return err
		}
		return replaceJoin(tx, tagSide, tag.ID, postIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.GetTag(ctx, id)
}

// DeleteTag removes a tag and its post associations. The posts are kept.
func (s *Store) DeleteTag(ctx context.Context, id uint) error {
	return s.transaction(ctx, "delete", "tag", func(tx *gorm.DB) error {
		var tag models.Tag
		if err := first(tx, &tag, "tag", id); err != nil {
			return err
		}
		if err := clearJoin(tx, tagSide, tag.ID); err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}

// ensureNameFree fails with a conflict when another tag already uses name
func ensureNameFree(tx *gorm.DB, name string, excludeID uint) error {
	query := tx.Model(&models.Tag{}).Where("name = ?", name)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("tag", "name "+name+" already exists")
	}
	return nil
}
