package service

import (
	"context"
	"errors"
	"fmt"

	"hypefeed/internal/models"
	"hypefeed/internal/repository"
)

const maxToggleAttempts = 3

type HypeService interface {
	ToggleHype(ctx context.Context, userID, postID int64) (models.HypeAction, error)
}

type hypeService struct {
	hypeRepo repository.HypeRepository
}

func NewHypeService(hypeRepo repository.HypeRepository) HypeService {
	return &hypeService{hypeRepo: hypeRepo}
}

// ToggleHype removes the viewer's hype if there is one, otherwise adds it.
// The delete runs first so the common path needs no read. An insert that
// hits the unique constraint lost a race with another toggle for the same
// pair, and the loop looks again.
func (s *hypeService) ToggleHype(ctx context.Context, userID, postID int64) (models.HypeAction, error) {
	if userID <= 0 || postID <= 0 {
		return models.HypeNone, fmt.Errorf("%w: user_id and post_id are required", ErrValidation)
	}

	for range maxToggleAttempts {
		removed, err := s.hypeRepo.Delete(ctx, userID, postID)
		if err != nil {
			return models.HypeNone, fmt.Errorf("%w: remove hype: %w", ErrInternal, err)
		}
		if removed {
			return models.HypeRemoved, nil
		}

		err = s.hypeRepo.Insert(ctx, userID, postID)
		switch {
		case err == nil:
			return models.HypeAdded, nil
		case errors.Is(err, repository.ErrDuplicate):
			continue
		case errors.Is(err, repository.ErrReference):
			return models.HypeNone, fmt.Errorf("%w: user %d or post %d", ErrNotFound, userID, postID)
		default:
			return models.HypeNone, fmt.Errorf("%w: add hype: %w", ErrInternal, err)
		}
	}

	return models.HypeNone, fmt.Errorf("%w: hype on post %d kept changing", ErrInternal, postID)
}
