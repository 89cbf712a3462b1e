package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"hypefeed/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	// ErrReference means a referenced user or post does not exist.
	ErrReference = errors.New("referenced record does not exist")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Feed(ctx context.Context, viewerID int64) ([]models.FeedPost, error)
}

type HypeRepository interface {
	Insert(ctx context.Context, userID, postID int64) error
	Delete(ctx context.Context, userID, postID int64) (bool, error)
	Exists(ctx context.Context, userID, postID int64) (bool, error)
	CountByPost(ctx context.Context, postID int64) (int64, error)
}

type Repository struct {
	User UserRepository
	Post PostRepository
	Hype HypeRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User: NewUserRepository(db),
		Post: NewPostRepository(db),
		Hype: NewHypeRepository(db),
	}
}
