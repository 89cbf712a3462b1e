package models

type User struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"password"`
}

// Identity is the public part of a user returned by register and login.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username}
}

type Post struct {
	ID        int64  `json:"id" db:"id"`
	AuthorID  int64  `json:"user_id" db:"author_id"`
	Content   string `json:"content" db:"content"`
	CreatedAt int64  `json:"timestamp" db:"created_at"` // ms since epoch
}

// FeedPost is one row of the feed as seen by a viewer.
type FeedPost struct {
	ID        int64  `json:"id" db:"id"`
	Username  string `json:"username" db:"username"`
	Content   string `json:"content" db:"content"`
	Timestamp int64  `json:"timestamp" db:"created_at"`
	HypeCount int64  `json:"hype_count" db:"hype_count"`
	UserHyped bool   `json:"user_hyped" db:"user_hyped"`
}

type Hype struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id"`
	PostID int64 `json:"post_id" db:"post_id"`
}

type HypeAction string

const (
	HypeAdded   HypeAction = "added"
	HypeRemoved HypeAction = "removed"
	// HypeNone is reported when a toggle failed internally and nothing changed.
	HypeNone HypeAction = "none"
)

type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreatePostRequest struct {
	UserID  int64  `json:"user_id" validate:"required,gt=0"`
	Content string `json:"content"`
}

type CreatePostResponse struct {
	ID int64 `json:"id"`
}

type ToggleHypeRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
	PostID int64 `json:"post_id" validate:"required,gt=0"`
}

type HypeResponse struct {
	Action HypeAction `json:"action"`
}

type HealthResponse struct {
	OK        bool   `json:"ok"`
	Timestamp int64  `json:"timestamp"`
	Database  string `json:"database,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
