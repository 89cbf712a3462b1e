package test

import (
	"context"
	"errors"

	"github.com/stretchr/testify/mock"

	"hypefeed/internal/models"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) (models.Identity, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(models.Identity), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (models.Identity, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(models.Identity), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID int64, content string) (int64, error) {
	args := m.Called(ctx, authorID, content)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostService) ListFeed(ctx context.Context, viewerID int64) ([]models.FeedPost, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FeedPost), args.Error(1)
}

type MockHypeService struct {
	mock.Mock
}

func (m *MockHypeService) ToggleHype(ctx context.Context, userID, postID int64) (models.HypeAction, error) {
	args := m.Called(ctx, userID, postID)
	return args.Get(0).(models.HypeAction), args.Error(1)
}

type stubHealth struct {
	err error
}

func (s stubHealth) HealthCheck() error {
	return s.err
}

var errStoreDown = errors.New("database is locked")
