package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is the central catalog entity. IDs come from the source corpus
// and are immutable after creation; Rating is derived from reviews and
// is the only field that mutates after ingestion.
type Recipe struct {
	ID                   int              `gorm:"primaryKey" json:"id"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
	Name                 string           `gorm:"size:255;not null;index" json:"name"`
	Description          string           `gorm:"type:text" json:"description"`
	AuthorID             int              `gorm:"not null;index" json:"author_id"`
	Author               *Author          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CategoryID           int              `gorm:"index" json:"category_id"`
	Category             *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Ingredients          JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	IngredientQuantities JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredient_quantities"`
	Instructions         JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Images               JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"images"`
	CookTimeMinutes      int              `json:"cook_time_minutes"`
	PrepTimeMinutes      int              `json:"prep_time_minutes"`
	Servings             string           `gorm:"size:50" json:"servings"`
	Yield                string           `gorm:"size:100" json:"yield"`
	Rating               *float64         `gorm:"type:float" json:"rating"`
	Reviews              []Review         `gorm:"foreignKey:RecipeID" json:"reviews,omitempty"`
}

// AuthorName returns the recipe author's display name, or the empty
// string when the author relation has not been populated.
func (r *Recipe) AuthorName() string {
	if r.Author == nil {
		return ""
	}
	return r.Author.Name
}

// CategoryName returns the recipe category's name, or the empty string
// when the category relation has not been populated.
func (r *Recipe) CategoryName() string {
	if r.Category == nil {
		return ""
	}
	return r.Category.Name
}

// FirstIngredient returns the first ingredient of the recipe, or the
// empty string when the recipe has none. Used as the sort key when
// browsing by ingredient.
func (r *Recipe) FirstIngredient() string {
	if len(r.Ingredients) == 0 {
		return ""
	}
	return r.Ingredients[0]
}
