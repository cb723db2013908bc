package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"lernbot/internal/domain"
	"lernbot/internal/repository"
)

// CategoryService manages user categories
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// maxCategoryIDBytes keeps "\f<unique>|<id>" within Telegram's 64-byte callback data
// for every button that carries a category id
const maxCategoryIDBytes = 48

// categoryID derives a stable id from a category name.
// The id is cut at a rune boundary once it would exceed maxCategoryIDBytes.
func categoryID(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if b.Len()+utf8.RuneLen(r) > maxCategoryIDBytes {
				return strings.TrimSuffix(b.String(), "-")
			}
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			if b.Len()+1 > maxCategoryIDBytes {
				return b.String()
			}
			b.WriteRune('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Create adds a category for the user
func (s *CategoryService) Create(userID int64, name string, foundational bool) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	id := categoryID(name)
	if id == "" {
		return nil, fmt.Errorf("category name cannot be empty")
	}
	if id == domain.GeneralCategoryID || id == domain.FilterAll {
		return nil, fmt.Errorf("category name %q is reserved", name)
	}

	c := &domain.Category{
		ID:             id,
		UserID:         userID,
		Name:           name,
		Color:          "slate",
		IsFoundational: foundational,
	}
	if err := s.categoryRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Ensure returns the id of the category with the given name, creating it if needed.
// Empty or reserved names resolve to the general category.
func (s *CategoryService) Ensure(userID int64, name string) (string, error) {
	id := categoryID(name)
	if id == "" || id == domain.GeneralCategoryID || id == domain.FilterAll {
		return domain.GeneralCategoryID, nil
	}

	_, err := s.Create(userID, name, false)
	if err != nil && !errors.Is(err, domain.ErrCategoryExists) {
		return "", err
	}
	return id, nil
}

// List returns the user's categories, general first
func (s *CategoryService) List(userID int64) ([]domain.Category, error) {
	own, err := s.categoryRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return append([]domain.Category{domain.GeneralCategory(userID)}, own...), nil
}

// Delete removes a category; its phrases move to the general category
func (s *CategoryService) Delete(userID int64, id string) error {
	if id == domain.GeneralCategoryID {
		return fmt.Errorf("the general category cannot be deleted")
	}
	return s.categoryRepo.Delete(userID, id)
}
