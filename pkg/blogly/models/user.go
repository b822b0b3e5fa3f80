package models

import "time"

// DefaultImageURL is used for users created without a profile image
const DefaultImageURL = "https://image.flaticon.com/icons/png/128/1077/1077114.png"

// User represents a blog author
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	FirstName string    `gorm:"type:text;not null" json:"first_name"`
	LastName  string    `gorm:"type:text;not null" json:"last_name"`
	ImageURL  string    `gorm:"type:text;not null" json:"image_url"`

	// Relationships
	Posts []Post `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}

// FullName returns the user's first and last name
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ImageOrDefault returns url, or DefaultImageURL when url is empty
func ImageOrDefault(url string) string {
	if url == "" {
		return DefaultImageURL
	}
	return url
}
