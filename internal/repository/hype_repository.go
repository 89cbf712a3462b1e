package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"hypefeed/internal/database"
)

type HypeRepositoryImpl struct {
	db *sqlx.DB
}

func NewHypeRepository(db *sqlx.DB) *HypeRepositoryImpl {
	return &HypeRepositoryImpl{db: db}
}

// Insert adds a hype for the pair. The (user_id, post_id) uniqueness
// constraint rejects a second row; that surfaces as ErrDuplicate.
func (r *HypeRepositoryImpl) Insert(ctx context.Context, userID, postID int64) error {
	query := r.db.Rebind(`INSERT INTO hypes (user_id, post_id) VALUES (?, ?)`)

	_, err := r.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("hype (%d, %d): %w", userID, postID, ErrDuplicate)
		}
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("hype (%d, %d): %w", userID, postID, ErrReference)
		}
		return fmt.Errorf("failed to insert hype: %w", err)
	}

	return nil
}

// Delete removes the hype for the pair and reports whether a row existed.
func (r *HypeRepositoryImpl) Delete(ctx context.Context, userID, postID int64) (bool, error) {
	query := r.db.Rebind(`DELETE FROM hypes WHERE user_id = ? AND post_id = ?`)

	result, err := r.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to delete hype: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check deleted rows: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *HypeRepositoryImpl) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM hypes WHERE user_id = ? AND post_id = ?`)

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, postID); err != nil {
		return false, fmt.Errorf("failed to check hype: %w", err)
	}

	return count > 0, nil
}

func (r *HypeRepositoryImpl) CountByPost(ctx context.Context, postID int64) (int64, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM hypes WHERE post_id = ?`)

	var count int64
	if err := r.db.GetContext(ctx, &count, query, postID); err != nil {
		return 0, fmt.Errorf("failed to count hypes: %w", err)
	}

	return count, nil
}
