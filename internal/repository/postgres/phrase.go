package postgres

import (
	"database/sql"
	"time"

	"lernbot/internal/domain"
	"lernbot/internal/srs"

	"github.com/google/uuid"
)

const phraseColumns = `id, user_id, foreign_text, native_text, category_id, is_new,
	mastery_level, know_streak, know_count, lapses, last_reviewed_at, next_review_at, is_mastered, created_at`

// PhraseRepo implements repository.PhraseRepository
type PhraseRepo struct {
	db *sql.DB
}

// NewPhraseRepo creates a new phrase repository
func NewPhraseRepo(db *sql.DB) *PhraseRepo {
	return &PhraseRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhrase(row rowScanner) (*domain.Phrase, error) {
	var p domain.Phrase
	var lastReviewed sql.NullTime
	err := row.Scan(
		&p.ID, &p.UserID, &p.Foreign, &p.Native, &p.CategoryID, &p.IsNew,
		&p.Review.MasteryLevel, &p.Review.KnowStreak, &p.Review.KnowCount, &p.Review.Lapses,
		&lastReviewed, &p.Review.NextReviewAt, &p.Review.IsMastered, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastReviewed.Valid {
		p.Review.LastReviewedAt = &lastReviewed.Time
	}
	return &p, nil
}

// Create inserts a new phrase with its initial review state
func (r *PhraseRepo) Create(p *domain.Phrase) error {
	query := `
		INSERT INTO phrases (id, user_id, foreign_text, native_text, category_id, is_new,
			mastery_level, know_streak, know_count, lapses, last_reviewed_at, next_review_at, is_mastered)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`
	return r.db.QueryRow(query,
		p.ID, p.UserID, p.Foreign, p.Native, p.CategoryID, p.IsNew,
		p.Review.MasteryLevel, p.Review.KnowStreak, p.Review.KnowCount, p.Review.Lapses,
		nullTime(p.Review.LastReviewedAt), p.Review.NextReviewAt, p.Review.IsMastered,
	).Scan(&p.CreatedAt)
}

// GetByID returns a user's phrase, or nil if it does not exist
func (r *PhraseRepo) GetByID(userID int64, id uuid.UUID) (*domain.Phrase, error) {
	query := `SELECT ` + phraseColumns + ` FROM phrases WHERE user_id = $1 AND id = $2`

	p, err := scanPhrase(r.db.QueryRow(query, userID, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListByUser returns all phrases of a user, oldest first
func (r *PhraseRepo) ListByUser(userID int64) ([]domain.Phrase, error) {
	query := `SELECT ` + phraseColumns + ` FROM phrases WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phrases []domain.Phrase
	for rows.Next() {
		p, err := scanPhrase(rows)
		if err != nil {
			return nil, err
		}
		phrases = append(phrases, *p)
	}

	return phrases, rows.Err()
}

// SaveReviewState stores the scheduler state of a phrase
func (r *PhraseRepo) SaveReviewState(id uuid.UUID, state srs.State) error {
	query := `
		UPDATE phrases
		SET mastery_level = $2, know_streak = $3, know_count = $4, lapses = $5,
			last_reviewed_at = $6, next_review_at = $7, is_mastered = $8, is_new = FALSE
		WHERE id = $1
	`
	res, err := r.db.Exec(query, id,
		state.MasteryLevel, state.KnowStreak, state.KnowCount, state.Lapses,
		nullTime(state.LastReviewedAt), state.NextReviewAt, state.IsMastered,
	)
	if err != nil {
		return err
	}
	return expectAffected(res, domain.ErrPhraseNotFound)
}

// MarkSeen clears the "new" flag once a phrase has been shown
func (r *PhraseRepo) MarkSeen(userID int64, id uuid.UUID) error {
	query := `UPDATE phrases SET is_new = FALSE WHERE user_id = $1 AND id = $2`
	_, err := r.db.Exec(query, userID, id)
	return err
}

// UpdateCategory moves a phrase to another category
func (r *PhraseRepo) UpdateCategory(userID int64, id uuid.UUID, categoryID string) error {
	query := `UPDATE phrases SET category_id = $3 WHERE user_id = $1 AND id = $2`
	res, err := r.db.Exec(query, userID, id, categoryID)
	if err != nil {
		return err
	}
	return expectAffected(res, domain.ErrPhraseNotFound)
}

// Delete removes a phrase
func (r *PhraseRepo) Delete(userID int64, id uuid.UUID) error {
	query := `DELETE FROM phrases WHERE user_id = $1 AND id = $2`
	res, err := r.db.Exec(query, userID, id)
	if err != nil {
		return err
	}
	return expectAffected(res, domain.ErrPhraseNotFound)
}

// CountDue returns how many unmastered phrases are due at now
func (r *PhraseRepo) CountDue(userID int64, now time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM phrases
		WHERE user_id = $1 AND is_mastered = FALSE AND next_review_at <= $2
	`
	var count int
	err := r.db.QueryRow(query, userID, now).Scan(&count)
	return count, err
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
