package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hypefeed/internal/models"
	"hypefeed/internal/repository"
)

type PostService interface {
	CreatePost(ctx context.Context, authorID int64, content string) (int64, error)
	ListFeed(ctx context.Context, viewerID int64) ([]models.FeedPost, error)
}

type postService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

// CreatePost trusts authorID as given. Content is stored exactly as
// submitted once it has something besides whitespace.
func (p *postService) CreatePost(ctx context.Context, authorID int64, content string) (int64, error) {
	if strings.TrimSpace(content) == "" {
		return 0, fmt.Errorf("%w: content is empty", ErrValidation)
	}

	post := &models.Post{
		AuthorID: authorID,
		Content:  content,
	}

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		if errors.Is(err, repository.ErrReference) {
			return 0, fmt.Errorf("%w: author %d", ErrNotFound, authorID)
		}
		return 0, fmt.Errorf("%w: create post: %w", ErrInternal, err)
	}

	return post.ID, nil
}

// ListFeed returns every post newest first. viewerID 0 means nobody is
// looking, so no post is marked as hyped.
func (p *postService) ListFeed(ctx context.Context, viewerID int64) ([]models.FeedPost, error) {
	posts, err := p.postRepo.Feed(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("%w: load feed: %w", ErrInternal, err)
	}

	if posts == nil {
		posts = []models.FeedPost{}
	}
	return posts, nil
}
