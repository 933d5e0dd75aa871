package models

import "time"

// Review is a user's rating and write-up of a recipe. The rating is an
// integer in [1,5]; the recipe's aggregate rating is the running
// average over all of its current reviews.
type Review struct {
	ID       int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string    `gorm:"size:50;not null;index" json:"username"`
	RecipeID int       `gorm:"not null;index" json:"recipe_id"`
	Rating   int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Body     string    `gorm:"type:text" json:"body"`
	Date     time.Time `json:"date"`
}
