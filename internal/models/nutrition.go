package models

import "math"

// Nutrition holds per-serving nutrient values for a recipe, keyed 1:1
// to the recipe id. Every field is optional: a nil pointer means the
// source corpus had no value, which is distinct from an explicit zero.
type Nutrition struct {
	RecipeID      int      `gorm:"primaryKey" json:"recipe_id"`
	Calories      *float64 `gorm:"type:float" json:"calories"`
	Fat           *float64 `gorm:"type:float" json:"fat"`
	SaturatedFat  *float64 `gorm:"type:float" json:"saturated_fat"`
	Cholesterol   *float64 `gorm:"type:float" json:"cholesterol"`
	Sodium        *float64 `gorm:"type:float" json:"sodium"`
	Carbohydrates *float64 `gorm:"type:float" json:"carbohydrates"`
	Fiber         *float64 `gorm:"type:float" json:"fiber"`
	Sugar         *float64 `gorm:"type:float" json:"sugar"`
	Protein       *float64 `gorm:"type:float" json:"protein"`
}

// band returns the penalty for a negative nutrient given its band
// upper bounds, inclusive. Nil and zero values carry no penalty.
func band(v *float64, low, mid, high float64) int {
	if v == nil || *v == 0 {
		return 0
	}
	switch {
	case *v <= low:
		return 0
	case *v <= mid:
		return 1
	case *v <= high:
		return 2
	default:
		return 3
	}
}

// bonus returns the modifying points for a positive nutrient: one
// point at the first threshold, a second at the higher one. Nil and
// zero values earn nothing.
func bonus(v *float64, first, second float64) int {
	if v == nil || *v == 0 {
		return 0
	}
	points := 0
	if *v >= first {
		points++
	}
	if *v >= second {
		points++
	}
	return points
}

// HealthStars computes a simplified nutrient-profiling rating in half
// star steps. Saturated fat, sugar and sodium accumulate baseline
// penalties; fiber and protein earn modifying bonuses; the raw score
// 5 - penalties + bonuses is clamped to [0.5, 5.0] and rounded to the
// nearest 0.5. A nil receiver (recipe without a nutrition record)
// yields nil; a record whose fields are all absent still scores 5.0.
func (n *Nutrition) HealthStars() *float64 {
	if n == nil {
		return nil
	}

	// Thresholds are per 100g/ml, upper bounds inclusive.
	baseline := band(n.SaturatedFat, 1, 3, 5) +
		band(n.Sugar, 5, 10, 15) +
		band(n.Sodium, 120, 200, 400)

	modifying := bonus(n.Fiber, 4, 8) + bonus(n.Protein, 5, 10)

	score := float64(5 - baseline + modifying)
	stars := math.Round(score*2) / 2
	if stars < 0.5 {
		stars = 0.5
	}
	if stars > 5 {
		stars = 5
	}
	return &stars
}
