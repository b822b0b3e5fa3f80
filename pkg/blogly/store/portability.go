package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikepea/blogly/pkg/blogly/models"
	"gorm.io/gorm"
)

// Snapshot is a portable copy of the whole blog
type Snapshot struct {
	Tags  []string       `json:"tags"`
	Users []UserSnapshot `json:"users"`
}

// UserSnapshot is a user with its posts
type UserSnapshot struct {
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	ImageURL  string         `json:"image_url"`
	Posts     []PostSnapshot `json:"posts"`
}

// PostSnapshot is a post with the names of its tags
type PostSnapshot struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []string  `json:"tags"`
}

// ImportResult reports what an import created and what it skipped
type ImportResult struct {
	Users   int      `json:"users"`
	Posts   int      `json:"posts"`
	Tags    int      `json:"tags"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// Export returns every user, post and tag
func (s *Store) Export(ctx context.Context) (*Snapshot, error) {
	snapshot := &Snapshot{Tags: []string{}, Users: []UserSnapshot{}}
	err := s.transaction(ctx, "export", "blog", func(tx *gorm.DB) error {
		var tags []models.Tag
		if err := tx.Order("name").Find(&tags).Error; err != nil {
			return err
		}
		for _, t := range tags {
			snapshot.Tags = append(snapshot.Tags, t.Name)
		}

		var users []models.User
		err := tx.Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at, id")
		}).Preload("Posts.Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name")
		}).Order("id").Find(&users).Error
		if err != nil {
			return err
		}

		for _, u := range users {
			us := UserSnapshot{
				FirstName: u.FirstName,
				LastName:  u.LastName,
				ImageURL:  u.ImageURL,
				Posts:     make([]PostSnapshot, 0, len(u.Posts)),
			}
			for _, p := range u.Posts {
				ps := PostSnapshot{
					Title:     p.Title,
					Content:   p.Content,
					CreatedAt: p.CreatedAt,
					Tags:      make([]string, 0, len(p.Tags)),
				}
				for _, t := range p.Tags {
					ps.Tags = append(ps.Tags, t.Name)
				}
				us.Posts = append(us.Posts, ps)
			}
			snapshot.Users = append(snapshot.Users, us)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Import adds the contents of a snapshot. Tags are matched by name and created
// when missing. Users and posts with blank required fields are skipped.
func (s *Store) Import(ctx context.Context, snapshot Snapshot) (*ImportResult, error) {
	result := &ImportResult{}
	err := s.transaction(ctx, "import", "blog", func(tx *gorm.DB) error {
		tags := newTagResolver(tx, result)

		for _, name := range snapshot.Tags {
			if _, err := tags.resolve(name); err != nil {
				return err
			}
		}

		for i, us := range snapshot.Users {
			in := UserInput{FirstName: us.FirstName, LastName: us.LastName, ImageURL: us.ImageURL}
			if err := in.validate(); err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("user %d: %v", i, err))
				continue
			}

			user := models.User{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				ImageURL:  models.ImageOrDefault(in.ImageURL),
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			result.Users++

			for j, ps := range us.Posts {
				pin := PostInput{Title: ps.Title, Content: ps.Content}
				if err := pin.validate(); err != nil {
					result.Skipped++
					result.Errors = append(result.Errors, fmt.Sprintf("user %d post %d: %v", i, j, err))
					continue
				}

				post := models.Post{
					Title:     pin.Title,
					Content:   pin.Content,
					UserID:    user.ID,
					CreatedAt: ps.CreatedAt,
				}
				if err := tx.Omit("User", "Tags").Create(&post).Error; err != nil {
					return err
				}
				result.Posts++

				var tagIDs []uint
				for _, name := range ps.Tags {
					id, err := tags.resolve(name)
					if err != nil {
						return err
					}
					if id != 0 {
						tagIDs = append(tagIDs, id)
					}
				}
				if err := replaceJoin(tx, postSide, post.ID, tagIDs); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// tagResolver finds or creates tags by name within one import
type tagResolver struct {
	tx     *gorm.DB
	ids    map[string]uint
	result *ImportResult
}

func newTagResolver(tx *gorm.DB, result *ImportResult) *tagResolver {
	return &tagResolver{tx: tx, ids: make(map[string]uint), result: result}
}

// resolve returns the id of the tag called name, or 0 for a blank name
func (r *tagResolver) resolve(name string) (uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, nil
	}
	if id, ok := r.ids[name]; ok {
		return id, nil
	}

	var tag models.Tag
	err := r.tx.Where("name = ?", name).First(&tag).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		tag = models.Tag{Name: name}
		if err := r.tx.Omit("Posts").Create(&tag).Error; err != nil {
			return 0, err
		}
		r.result.Tags++
	default:
		return 0, err
	}

	r.ids[name] = tag.ID
	return tag.ID, nil
}
