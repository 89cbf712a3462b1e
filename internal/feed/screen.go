package feed

import "hypefeed/internal/models"

type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenFeed
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenRegister:
		return "register"
	case ScreenFeed:
		return "feed"
	default:
		return "unknown"
	}
}

// Authenticated reports whether the screen needs a signed in user.
func (s Screen) Authenticated() bool {
	return s == ScreenFeed
}

// RequiredScreen is the load-time guard: without an identity only the
// login and register screens are reachable, and with one those screens
// send the user on to the feed.
func RequiredScreen(identity *models.Identity, current Screen) Screen {
	if identity == nil {
		if current.Authenticated() {
			return ScreenLogin
		}
		return current
	}

	if !current.Authenticated() {
		return ScreenFeed
	}
	return current
}
