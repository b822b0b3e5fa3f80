package store

import (
	"context"

	"github.com/mikepea/blogly/pkg/blogly/apperr"
	"github.com/mikepea/blogly/pkg/blogly/models"
	"gorm.io/gorm"
)

// UserInput holds the editable fields of a user
type UserInput struct {
	FirstName string
	LastName  string
	ImageURL  string
}

func (in UserInput) validate() error {
	if err := required("first_name", in.FirstName); err != nil {
		return err
	}
	return required("last_name", in.LastName)
}

// ListUsers returns all users ordered by name
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("last_name, first_name, id").Find(&users).Error; err != nil {
		return nil, apperr.FromDB("list", "users", err)
	}
	return users, nil
}

// GetUser returns the user with its posts, newest first
func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	tx := s.db.WithContext(ctx).Preload("Posts", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC, id DESC")
	})
	if err := first(tx, &user, "user", id); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser adds a user. An empty image URL is replaced by the default image.
func (s *Store) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	user := models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		ImageURL:  models.ImageOrDefault(in.ImageURL),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, apperr.FromDB("create", "user", err)
	}
	return &user, nil
}

// UpdateUser overwrites all editable fields of a user.
// An empty image URL falls back to the default image, as on creation.
func (s *Store) UpdateUser(ctx context.Context, id uint, in UserInput) (*models.User, error) {
	var user models.User
	err := s.transaction(ctx, "update", "user", func(tx *gorm.DB) error {
		if err := first(tx, &user, "user", id); err != nil {
			return err
		}
		if err := in.validate(); err != nil {
			return err
		}
		user.FirstName = in.FirstName
		user.LastName = in.LastName
		user.ImageURL = models.ImageOrDefault(in.ImageURL)
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user together with its posts and their tag associations
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.transaction(ctx, "delete", "user", func(tx *gorm.DB) error {
		var user models.User
		if err := first(tx, &user, "user", id); err != nil {
			return err
		}

		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if err := clearJoin(tx, postSide, postIDs...); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
