package models

// Author is a recipe author from the source corpus, deduplicated by id
// during ingestion. Recipes hold the authoritative author reference;
// any per-author recipe listing is derived by querying recipes.
type Author struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
}

// Category groups recipes. The name is the natural key; the integer id
// exists for storage and is assigned during ingestion.
type Category struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}
