package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/repository"
)

// Loader populates a repository from the food.com-style recipe CSV.
// Authors are deduplicated by id and categories by name across the
// whole file. It is backend-agnostic: any Repository works.
type Loader struct {
	repo repository.Repository
}

// NewLoader creates a Loader writing into repo.
func NewLoader(repo repository.Repository) *Loader {
	return &Loader{repo: repo}
}

// LoadCSV reads the corpus file and stores recipes, authors,
// categories and nutrition through the repository. Malformed
// list-valued or numeric fields degrade to empty/nil values; a row
// missing its recipe or author id is skipped with a log line rather
// than aborting the load.
func (l *Loader) LoadCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer f.Close()
	return l.Load(f)
}

// Load ingests CSV data from r. The first record is the header.
func (l *Loader) Load(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	seenAuthors := make(map[int]*models.Author)
	seenCategories := make(map[string]*models.Category)
	nextCategoryID := 0
	loaded := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("[Loader] skipping unreadable row: %v", err)
			continue
		}

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		recipeID, err := strconv.Atoi(field("RecipeId"))
		if err != nil {
			log.Printf("[Loader] skipping row without recipe id: %v", err)
			continue
		}
		authorID, err := strconv.Atoi(field("AuthorId"))
		if err != nil {
			log.Printf("[Loader] skipping recipe %d without author id: %v", recipeID, err)
			continue
		}

		author, ok := seenAuthors[authorID]
		if !ok {
			author = &models.Author{ID: authorID, Name: field("AuthorName")}
			if err := l.repo.AddAuthor(author); err != nil {
				return fmt.Errorf("failed to add author %d: %w", authorID, err)
			}
			seenAuthors[authorID] = author
		}

		categoryName := field("RecipeCategory")
		category, ok := seenCategories[categoryName]
		if !ok {
			nextCategoryID++
			category = &models.Category{ID: nextCategoryID, Name: categoryName}
			if err := l.repo.AddCategory(category); err != nil {
				return fmt.Errorf("failed to add category %q: %w", categoryName, err)
			}
			seenCategories[categoryName] = category
		}

		nutrition := &models.Nutrition{
			RecipeID:      recipeID,
			Calories:      optionalFloat(field("Calories")),
			Fat:           optionalFloat(field("FatContent")),
			SaturatedFat:  optionalFloat(field("SaturatedFatContent")),
			Cholesterol:   optionalFloat(field("CholesterolContent")),
			Sodium:        optionalFloat(field("SodiumContent")),
			Carbohydrates: optionalFloat(field("CarbohydrateContent")),
			Fiber:         optionalFloat(field("FiberContent")),
			Sugar:         optionalFloat(field("SugarContent")),
			Protein:       optionalFloat(field("ProteinContent")),
		}
		if err := l.repo.AddNutrition(nutrition); err != nil {
			return fmt.Errorf("failed to add nutrition for recipe %d: %w", recipeID, err)
		}

		instructions := field("Instructions")
		if instructions == "" {
			instructions = field("RecipeInstructions")
		}

		recipe := &models.Recipe{
			ID:                   recipeID,
			Name:                 field("Name"),
			Description:          field("Description"),
			AuthorID:             authorID,
			Author:               author,
			CategoryID:           category.ID,
			Category:             category,
			Ingredients:          ParseList(field("RecipeIngredientParts")),
			IngredientQuantities: ParseList(field("RecipeIngredientQuantities")),
			Instructions:         ParseList(instructions),
			Images:               ParseList(field("Images")),
			CookTimeMinutes:      optionalInt(field("CookTime")),
			PrepTimeMinutes:      optionalInt(field("PrepTime")),
			Servings:             field("RecipeServings"),
			Yield:                field("RecipeYield"),
		}
		if err := l.repo.AddRecipe(recipe); err != nil {
			return fmt.Errorf("failed to add recipe %d: %w", recipeID, err)
		}
		loaded++
	}

	log.Printf("[Loader] loaded %d recipes, %d authors, %d categories",
		loaded, len(seenAuthors), len(seenCategories))
	return nil
}

// ParseList turns a list-valued CSV field into a string slice. The
// corpus stores lists either as Python-style literals
// (['a', 'b'] / ["a", "b"]) or R-style vectors (c("a", "b")); plain
// prose falls back to sentence splitting. Malformed input yields an
// empty list, never an error.
func ParseList(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" || value == "None" || value == "NA" || value == "character(0)" {
		return nil
	}

	isLiteral := (strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]")) ||
		(strings.HasPrefix(value, "c(") && strings.HasSuffix(value, ")"))
	if isLiteral {
		if items := quotedItems(value); len(items) > 0 {
			return items
		}
		return nil
	}

	// Plain text: split into sentences on newlines and full stops.
	var out []string
	for _, part := range strings.FieldsFunc(value, func(r rune) bool {
		return r == '\n' || r == '.'
	}) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// quotedItems extracts every single- or double-quoted token from a
// list literal, honoring backslash escapes.
func quotedItems(value string) []string {
	var items []string
	var current strings.Builder
	var quote rune
	escaped := false

	for _, r := range value {
		if quote == 0 {
			if r == '\'' || r == '"' {
				quote = r
				current.Reset()
			}
			continue
		}
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == quote:
			if s := strings.TrimSpace(current.String()); s != "" {
				items = append(items, s)
			}
			quote = 0
		default:
			current.WriteRune(r)
		}
	}
	return items
}

func optionalFloat(s string) *float64 {
	if s == "" || s == "NA" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func optionalInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
