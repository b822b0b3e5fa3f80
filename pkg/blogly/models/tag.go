package models

import "time"

// Tag represents a label that can be applied to posts
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"type:text;uniqueIndex;not null" json:"name"`

	// Relationships
	Posts []Post `gorm:"many2many:posttags;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}

// HasPost reports whether the tag is applied to the post with the given ID
func (t Tag) HasPost(postID uint) bool {
	for _, p := range t.Posts {
		if p.ID == postID {
			return true
		}
	}
	return false
}
