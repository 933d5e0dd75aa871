package models

import "time"

// Favourite bookmarks a recipe for a user. The (username, recipe_id)
// pair is unique: adding the same favourite twice is a no-op.
type Favourite struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `gorm:"size:50;not null;uniqueIndex:idx_username_recipe" json:"username"`
	RecipeID  int       `gorm:"not null;uniqueIndex:idx_username_recipe" json:"recipe_id"`
}

func (Favourite) TableName() string {
	return "favourites"
}
