package store

import (
	"context"

	"github.com/mikepea/blogly/pkg/blogly/apperr"
	"github.com/mikepea/blogly/pkg/blogly/models"
	"gorm.io/gorm"
)

// PostInput holds the editable fields of a post and the ids of its tags
type PostInput struct {
	Title   string
	Content string
	TagIDs  []uint
}

func (in PostInput) validate() error {
	if err := required("title", in.Title); err != nil {
		return err
	}
	return required("content", in.Content)
}

// ListPosts returns all posts, newest first
func (s *Store) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).Preload("User").Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, apperr.FromDB("list", "posts", err)
	}
	return posts, nil
}

// GetPost returns the post with its author and tags
func (s *Store) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	tx := s.db.WithContext(ctx).Preload("User").Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("tags.name")
	})
	if err := first(tx, &post, "post", id); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost adds a post for an existing user. Tag ids that do not exist are ignored.
func (s *Store) CreatePost(ctx context.Context, userID uint, in PostInput) (*models.Post, error) {
	var post models.Post
	err := s.transaction(ctx, "create", "post", func(tx *gorm.DB) error {
		var user models.User
		if err := first(tx, &user, "user", userID); err != nil {
			return err
		}
		if err := in.validate(); err != nil {
			return err
		}

		tagIDs, err := existingIDs(tx, &models.Tag{}, in.TagIDs)
		if err != nil {
			return err
		}

		post = models.Post{
			Title:   in.Title,
			Content: in.Content,
			UserID:  user.ID,
		}
		if err := tx.Omit("User", "Tags").Create(&post).Error; err != nil {
			return err
		}
		return replaceJoin(tx, postSide, post.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.GetPost(ctx, post.ID)
}

// UpdatePost overwrites title and content and replaces the post's tag set
func (s *Store) UpdatePost(ctx context.Context, id uint, in PostInput) (*models.Post, error) {
	err := s.transaction(ctx, "update", "post", func(tx *gorm.DB) error {
		var post models.Post
		if err := first(tx, &post, "post", id); err != nil {
			return err
		}
		if err := in.validate(); err != nil {
			return err
		}

		tagIDs, err := existingIDs(tx, &models.Tag{}, in.TagIDs)
		if err != nil {
			return err
		}

		post.Title = in.Title
		post.Content = in.Content
		if err := tx.Omit("User", "Tags").Save(&post).Error; err != nil {
			return err
		}
		return replaceJoin(tx, postSide, post.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.GetPost(ctx, id)
}

// DeletePost removes a post and its tag associations and returns the removed post
func (s *Store) DeletePost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.transaction(ctx, "delete", "post", func(tx *gorm.DB) error {
		if err := first(tx, &post, "post", id); err != nil {
			return err
		}
		if err := clearJoin(tx, postSide, post.ID); err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}
