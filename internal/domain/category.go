package domain

import "errors"

// GeneralCategoryID is the category every user has and phrases fall back to
const GeneralCategoryID = "general"

// FilterAll selects every category in practice
const FilterAll = "all"

var (
	// ErrCategoryNotFound is returned for unknown categories
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryExists is returned when a user already has a category with the same id
	ErrCategoryExists = errors.New("category already exists")
)

// Category groups phrases for practice
type Category struct {
	ID             string
	UserID         int64
	Name           string
	Color          string
	IsFoundational bool
}

// GeneralCategory returns the built-in category for a user
func GeneralCategory(userID int64) Category {
	return Category{
		ID:     GeneralCategoryID,
		UserID: userID,
		Name:   "Общее",
		Color:  "slate",
	}
}
