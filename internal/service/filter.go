package service

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// MatchMode selects how name filters compare against stored names.
type MatchMode int

const (
	// MatchContains is a case-insensitive substring match.
	MatchContains MatchMode = iota
	// MatchEquals is a case-insensitive exact match.
	MatchEquals
)

// RecipeFilter narrows recipe listings. Each value is either a numeric id or a name.
// Blank values are ignored.
type RecipeFilter struct {
	Category   string
	Area       string
	Ingredient string
	Match      MatchMode
}

// Predicate is one WHERE condition evaluated against the recipes table.
type Predicate struct {
	SQL  string
	Args []interface{}
}

// ComposeFilter turns a filter into predicates over recipes. Relations are expressed as
// EXISTS sub-selects so a recipe matching through several rows is returned once.
func ComposeFilter(f RecipeFilter) []Predicate {
	var preds []Predicate

	if v := strings.TrimSpace(f.Category); v != "" {
		if id, ok := parseID(v); ok {
			preds = append(preds, Predicate{SQL: "recipes.category_id = ?", Args: []interface{}{id}})
		} else {
			cond, arg := nameCondition("categories.name", v, f.Match)
			preds = append(preds, Predicate{
				SQL:  "EXISTS (SELECT 1 FROM categories WHERE categories.id = recipes.category_id AND " + cond + ")",
				Args: []interface{}{arg},
			})
		}
	}

	if v := strings.TrimSpace(f.Area); v != "" {
		if id, ok := parseID(v); ok {
			preds = append(preds, Predicate{SQL: "recipes.area_id = ?", Args: []interface{}{id}})
		} else {
			cond, arg := nameCondition("areas.name", v, f.Match)
			preds = append(preds, Predicate{
				SQL:  "EXISTS (SELECT 1 FROM areas WHERE areas.id = recipes.area_id AND " + cond + ")",
				Args: []interface{}{arg},
			})
		}
	}

	if v := strings.TrimSpace(f.Ingredient); v != "" {
		if id, ok := parseID(v); ok {
			preds = append(preds, Predicate{
				SQL: "EXISTS (SELECT 1 FROM recipe_ingredients WHERE recipe_ingredients.recipe_id = recipes.id" +
					" AND recipe_ingredients.ingredient_id = ?)",
				Args: []interface{}{id},
			})
		} else {
			cond, arg := nameCondition("ingredients.name", v, f.Match)
			preds = append(preds, Predicate{
				SQL: "EXISTS (SELECT 1 FROM recipe_ingredients" +
					" JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id" +
					" WHERE recipe_ingredients.recipe_id = recipes.id AND " + cond + ")",
				Args: []interface{}{arg},
			})
		}
	}

	return preds
}

// applyPredicates adds every predicate to the query as an AND condition
func applyPredicates(db *gorm.DB, preds []Predicate) *gorm.DB {
	for _, p := range preds {
		db = db.Where(p.SQL, p.Args...)
	}
	return db
}

func nameCondition(column, value string, mode MatchMode) (string, string) {
	if mode == MatchEquals {
		return "LOWER(" + column + ") = LOWER(?)", value
	}
	return "LOWER(" + column + ") LIKE LOWER(?) ESCAPE '\\'", "%" + escapeLike(value) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func parseID(s string) (uint, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
