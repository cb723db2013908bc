package postgres

import (
	"database/sql"
	"errors"

	"lernbot/internal/domain"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations
const uniqueViolation = "23505"

// CategoryRepo implements repository.CategoryRepository
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Create inserts a category
func (r *CategoryRepo) Create(c *domain.Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, color, is_foundational)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(query, c.ID, c.UserID, c.Name, c.Color, c.IsFoundational)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrCategoryExists
	}
	return err
}

// ListByUser returns the user's own categories ordered by name
func (r *CategoryRepo) ListByUser(userID int64) ([]domain.Category, error) {
	query := `
		SELECT id, user_id, name, color, is_foundational
		FROM categories
		WHERE user_id = $1
		ORDER BY name
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.IsFoundational); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// Delete removes a category and moves its phrases to the general category
func (r *CategoryRepo) Delete(userID int64, id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	moveQuery := `UPDATE phrases SET category_id = $3 WHERE user_id = $1 AND category_id = $2`
	if _, err := tx.Exec(moveQuery, userID, id, domain.GeneralCategoryID); err != nil {
		return err
	}

	deleteQuery := `DELETE FROM categories WHERE user_id = $1 AND id = $2`
	res, err := tx.Exec(deleteQuery, userID, id)
	if err != nil {
		return err
	}
	if err := expectAffected(res, domain.ErrCategoryNotFound); err != nil {
		return err
	}

	return tx.Commit()
}
