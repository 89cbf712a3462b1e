package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"hypefeed/internal/database"
	"hypefeed/internal/models"
)

type PostRepositoryImpl struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db, now: time.Now}
}

// Create stamps the post with the server clock and inserts it.
func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := r.db.Rebind(`
		INSERT INTO posts (author_id, content, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`)

	post.CreatedAt = r.now().UnixMilli()

	err := r.db.GetContext(ctx, &post.ID, query, post.AuthorID, post.Content, post.CreatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("author %d: %w", post.AuthorID, ErrReference)
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

const feedQuery = `
	SELECT
		p.id,
		u.username,
		p.content,
		p.created_at,
		(SELECT COUNT(*) FROM hypes h WHERE h.post_id = p.id) AS hype_count,
		EXISTS (SELECT 1 FROM hypes h WHERE h.post_id = p.id AND h.user_id = ?) AS user_hyped
	FROM posts p
	JOIN users u ON u.id = p.author_id
	ORDER BY p.created_at DESC, p.id DESC
`

// Feed returns every post newest first, annotated for the viewer.
// Posts created in the same millisecond keep insertion order (newest first).
func (r *PostRepositoryImpl) Feed(ctx context.Context, viewerID int64) ([]models.FeedPost, error) {
	posts := []models.FeedPost{}

	err := r.db.SelectContext(ctx, &posts, r.db.Rebind(feedQuery), viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}

	return posts, nil
}
