package models

import "gorm.io/gorm"

// AllModels returns all models for migration
// Note: User must be migrated before Post, and both Post and Tag before the join table
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Tag{},
		&Post{},
		&PostTag{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Post{}, "Tags", &PostTag{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&Tag{}, "Posts", &PostTag{}); err != nil {
		return err
	}
	return db.AutoMigrate(AllModels()...)
}
