package feed

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"hypefeed/internal/models"
)

const clearScreen = "\033[H\033[2J"

type palette struct {
	reset   string
	title   string
	author  string
	muted   string
	content string
	hyped   string
}

var (
	lightPalette = palette{
		reset:   "\033[0m",
		title:   "\033[1;35m",
		author:  "\033[1;34m",
		muted:   "\033[90m",
		content: "\033[30m",
		hyped:   "\033[1;31m",
	}
	darkPalette = palette{
		reset:   "\033[0m",
		title:   "\033[1;95m",
		author:  "\033[1;96m",
		muted:   "\033[37m",
		content: "\033[97m",
		hyped:   "\033[1;91m",
	}
)

// View is everything one frame shows.
type View struct {
	Viewer models.Identity
	Posts  []models.FeedPost
	Notice string
}

// Renderer draws whole frames. Each Render clears the terminal first, so
// the same View always produces the same screen regardless of history.
type Renderer struct {
	mu   sync.Mutex
	out  io.Writer
	dark bool
	now  func() time.Time
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, now: time.Now}
}

func (r *Renderer) SetDarkMode(dark bool) {
	r.mu.Lock()
	r.dark = dark
	r.mu.Unlock()
}

func (r *Renderer) DarkMode() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dark
}

func (r *Renderer) Render(view View) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := lightPalette
	if r.dark {
		p = darkPalette
	}
	now := r.now()

	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "%shypefeed%s  %s@%s%s\n", p.title, p.reset, p.author, view.Viewer.Username, p.reset)
	fmt.Fprintf(&b, "%s%s%s\n", p.muted, strings.Repeat("─", 40), p.reset)

	if len(view.Posts) == 0 {
		fmt.Fprintf(&b, "%sNo posts yet. Say something!%s\n", p.muted, p.reset)
	}

	for _, post := range view.Posts {
		when := humanize.RelTime(time.UnixMilli(post.Timestamp), now, "ago", "from now")

		fmt.Fprintf(&b, "%s#%d%s %s@%s%s %s· %s%s\n",
			p.muted, post.ID, p.reset,
			p.author, post.Username, p.reset,
			p.muted, when, p.reset,
		)
		fmt.Fprintf(&b, "    %s%s%s\n", p.content, post.Content, p.reset)

		heart := p.muted + "♡"
		if post.UserHyped {
			heart = p.hyped + "♥"
		}
		fmt.Fprintf(&b, "    %s %s%s\n\n", heart, humanize.Comma(post.HypeCount), p.reset)
	}

	if view.Notice != "" {
		fmt.Fprintf(&b, "%s%s%s\n", p.hyped, view.Notice, p.reset)
	}
	fmt.Fprintf(&b, "%stype to post · /hype ID · /theme · /logout · /quit%s\n", p.muted, p.reset)

	_, err := io.WriteString(r.out, b.String())
	return err
}
