package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"hypefeed/internal/client"
	"hypefeed/internal/models"
)

const DefaultPollInterval = 2 * time.Second

var (
	ErrMissingFields    = errors.New("fill all fields")
	ErrNotAuthenticated = errors.New("not signed in")
)

// API is the slice of the server the session talks to.
type API interface {
	Health(ctx context.Context) (models.HealthResponse, error)
	Register(ctx context.Context, username, password string) (models.Identity, error)
	Login(ctx context.Context, username, password string) (models.Identity, error)
	CreatePost(ctx context.Context, userID int64, content string) (int64, error)
	Feed(ctx context.Context, viewerID int64) ([]models.FeedPost, error)
	ToggleHype(ctx context.Context, userID, postID int64) (models.HypeAction, error)
}

// Notifier shows short lived messages. Failures reach the user only
// through it; they never end polling.
type Notifier interface {
	Notify(message string)
}

type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Session is the client state machine. Everything it depends on is
// handed in at construction; nothing is global.
type Session struct {
	api      API
	store    *Store
	renderer *Renderer
	notifier Notifier
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	identity *models.Identity
	screen   Screen
	stopPoll func()
	posts    []models.FeedPost
	// feed requests are numbered; a response older than the last one
	// rendered is dropped
	issued   uint64
	rendered uint64
}

func NewSession(api API, store *Store, renderer *Renderer, notifier Notifier, interval time.Duration) *Session {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}

	return &Session{
		api:      api,
		store:    store,
		renderer: renderer,
		notifier: notifier,
		interval: interval,
		now:      time.Now,
		screen:   ScreenLogin,
	}
}

// Boot restores stored state, records a health check and applies the
// screen guard to the screen the user asked for.
func (s *Session) Boot(ctx context.Context, requested Screen) (Screen, error) {
	identity, err := s.store.Identity()
	if err != nil {
		return ScreenLogin, err
	}

	dark, err := s.store.DarkMode()
	if err != nil {
		return ScreenLogin, err
	}
	s.renderer.SetDarkMode(dark)

	s.CheckHealth(ctx)

	screen := RequiredScreen(identity, requested)

	s.mu.Lock()
	s.identity = identity
	s.screen = screen
	s.mu.Unlock()

	return screen, nil
}

func (s *Session) Identity() *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	identity := *s.identity
	return &identity
}

func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// Posts is the feed as last rendered.
func (s *Session) Posts() []models.FeedPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FeedPost(nil), s.posts...)
}

func (s *Session) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		s.notifier.Notify("Fill all fields!")
		return ErrMissingFields
	}

	if check := CheckPassword(password); !check.Valid() {
		err := &WeakPasswordError{Check: check}
		s.notifier.Notify("Password needs: " + strings.Join(check.Problems(), ", "))
		return err
	}

	identity, err := s.api.Register(ctx, username, password)
	if err != nil {
		s.notifyFailure(err, "Could not register!")
		return err
	}

	if err := s.signIn(identity); err != nil {
		return err
	}
	s.notifier.Notify("Account created! Signing in...")
	return nil
}

func (s *Session) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		s.notifier.Notify("Fill all fields!")
		return ErrMissingFields
	}

	identity, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.notifyFailure(err, "Invalid credentials!")
		return err
	}

	return s.signIn(identity)
}

func (s *Session) signIn(identity models.Identity) error {
	if err := s.store.SetIdentity(identity); err != nil {
		return err
	}

	s.mu.Lock()
	s.identity = &identity
	s.screen = ScreenFeed
	s.mu.Unlock()
	return nil
}

// Logout stops polling and forgets the stored identity.
func (s *Session) Logout() error {
	s.LeaveFeed()

	if err := s.store.ClearIdentity(); err != nil {
		return err
	}

	s.mu.Lock()
	s.identity = nil
	s.screen = ScreenLogin
	s.posts = nil
	s.mu.Unlock()
	return nil
}

// EnterFeed renders the feed now and keeps refreshing it every interval
// until LeaveFeed, Logout or ctx ends. Entering twice restarts polling.
func (s *Session) EnterFeed(ctx context.Context) error {
	if s.Identity() == nil {
		return ErrNotAuthenticated
	}

	s.LeaveFeed()

	stop := Poll(ctx, s.interval, func(ctx context.Context) {
		if s.Identity() == nil {
			return
		}
		s.Refresh(ctx)
	})

	s.mu.Lock()
	s.stopPoll = stop
	s.screen = ScreenFeed
	s.mu.Unlock()
	return nil
}

func (s *Session) LeaveFeed() {
	s.mu.Lock()
	stop := s.stopPoll
	s.stopPoll = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
}

// Polling reports whether the feed timer is running.
func (s *Session) Polling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopPoll != nil
}

// SubmitPost publishes trimmed content. Blank input is ignored and
// reported as not posted without an error.
func (s *Session) SubmitPost(ctx context.Context, content string) (bool, error) {
	identity := s.Identity()
	if identity == nil {
		return false, ErrNotAuthenticated
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return false, nil
	}

	if _, err := s.api.CreatePost(ctx, identity.ID, content); err != nil {
		s.notifyFailure(err, "Could not publish post!")
		return false, err
	}

	s.notifier.Notify("Post published!")
	s.Refresh(ctx)
	return true, nil
}

// ToggleHype flips the viewer's hype on a post and then reloads the feed
// to show what the server decided.
func (s *Session) ToggleHype(ctx context.Context, postID int64) (models.HypeAction, error) {
	identity := s.Identity()
	if identity == nil {
		return models.HypeNone, ErrNotAuthenticated
	}

	action, err := s.api.ToggleHype(ctx, identity.ID, postID)
	if err != nil {
		s.notifyFailure(err, "Could not hype post!")
		return models.HypeNone, err
	}

	s.Refresh(ctx)
	return action, nil
}

// Refresh loads the feed and renders it, unless a newer refresh has
// already been rendered.
func (s *Session) Refresh(ctx context.Context) error {
	identity := s.Identity()
	if identity == nil {
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	posts, err := s.api.Feed(ctx, identity.ID)
	if err != nil {
		if ctx.Err() == nil {
			s.notifyFailure(err, "Could not load posts!")
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.rendered {
		return nil
	}
	s.rendered = seq
	s.posts = posts

	return s.renderer.Render(View{Viewer: *identity, Posts: posts})
}

// ToggleTheme flips and stores the dark mode preference and redraws the
// current feed with it.
func (s *Session) ToggleTheme() (bool, error) {
	dark := !s.renderer.DarkMode()
	if err := s.store.SetDarkMode(dark); err != nil {
		return !dark, err
	}
	s.renderer.SetDarkMode(dark)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity != nil && s.screen == ScreenFeed {
		return dark, s.renderer.Render(View{Viewer: *s.identity, Posts: s.posts})
	}
	return dark, nil
}

// CheckHealth asks the server whether it is up and stores the answer
// with the time it was taken. Transport failures count as down.
func (s *Session) CheckHealth(ctx context.Context) bool {
	resp, err := s.api.Health(ctx)
	ok := err == nil && resp.OK

	record := HealthRecord{OK: ok, Timestamp: s.now().UnixMilli()}
	if err := s.store.SetHealth(record); err != nil {
		s.notifier.Notify(fmt.Sprintf("Could not save health check: %v", err))
	}
	return ok
}

func (s *Session) notifyFailure(err error, fallback string) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			s.notifier.Notify(apiErr.Message)
		} else {
			s.notifier.Notify(fallback)
		}
		return
	}
	s.notifier.Notify("Could not reach the server.")
}
