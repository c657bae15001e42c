package database

import "pawhaven/internal/models"

// PersistentModels is the single registry of every model that AutoMigrate
// manages. Tests and the migrate runner share it so schemas never drift.
func PersistentModels() []any {
	return []any{
		&models.User{},
		&models.Profile{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Bookmark{},
		&models.ShelterProfile{},
		&models.Store{},
		&models.Product{},
		&models.StoreReview{},
		&models.ProductReview{},
	}
}
