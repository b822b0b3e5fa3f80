package models

import "time"

// PostDateLayout formats a post's creation time, e.g. "Tue, 21. Nov 2006 04:30PM"
const PostDateLayout = "Mon, 02. Jan 2006 03:04PM"

// Post represents a blog post written by a user
type Post struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`

	// Relationships
	User User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tags []Tag `gorm:"many2many:posttags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
}

// PostDate returns the human-formatted creation date
func (p Post) PostDate() string {
	return p.CreatedAt.Format(PostDateLayout)
}

// HasTag reports whether the post carries the tag with the given ID
func (p Post) HasTag(tagID uint) bool {
	for _, t := range p.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}
