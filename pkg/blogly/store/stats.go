package store

import (
	"context"

	"github.com/mikepea/blogly/pkg/blogly/models"
	"gorm.io/gorm"
)

// Stats summarizes the contents of the blog
type Stats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalPosts    int64 `json:"total_posts"`
	TotalTags     int64 `json:"total_tags"`
	TaggedPosts   int64 `json:"tagged_posts"`
	UntaggedPosts int64 `json:"untagged_posts"`
}

// Stats counts users, posts and tags
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := s.transaction(ctx, "count", "blog", func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Post{}).Count(&stats.TotalPosts).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Tag{}).Count(&stats.TotalTags).Error; err != nil {
			return err
		}
		return tx.Model(&models.PostTag{}).Distinct("post_id").Count(&stats.TaggedPosts).Error
	})
	if err != nil {
		return nil, err
	}
	stats.UntaggedPosts = stats.TotalPosts - stats.TaggedPosts
	return &stats, nil
}
