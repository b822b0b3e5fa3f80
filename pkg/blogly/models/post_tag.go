package models

// PostTag is the join row between posts and tags
type PostTag struct {
	PostID uint `gorm:"primaryKey" json:"post_id"`
	TagID  uint `gorm:"primaryKey" json:"tag_id"`
}

// TableName keeps the join table name used by the many2many relations
func (PostTag) TableName() string {
	return "posttags"
}
