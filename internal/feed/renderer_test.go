package feed

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypefeed/internal/models"
)

func newTestRenderer(buf *bytes.Buffer) *Renderer {
	r := NewRenderer(buf)
	r.now = func() time.Time { return time.UnixMilli(10 * 60 * 1000) }
	return r
}

func TestRenderer_Frame(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	view := View{
		Viewer: models.Identity{ID: 2, Username: "bob"},
		Posts: []models.FeedPost{
			{ID: 2, Username: "bob", Content: "second", Timestamp: 9 * 60 * 1000, HypeCount: 1234},
			{ID: 1, Username: "ana", Content: "hello", Timestamp: 5 * 60 * 1000, HypeCount: 1, UserHyped: true},
		},
	}

	require.NoError(t, r.Render(view))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, clearScreen))
	assert.Contains(t, out, "@bob")
	assert.Contains(t, out, "1 minute ago")
	assert.Contains(t, out, "5 minutes ago")
	assert.Contains(t, out, "1,234")
	assert.Contains(t, out, "♥ 1")
	assert.Contains(t, out, "♡ 1,234")
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "hello"))
}

func TestRenderer_Idempotent(t *testing.T) {
	var first, second bytes.Buffer
	view := View{
		Viewer: models.Identity{ID: 1, Username: "ana"},
		Posts:  []models.FeedPost{{ID: 1, Username: "ana", Content: "hello", Timestamp: 0}},
	}

	r := newTestRenderer(&first)
	require.NoError(t, r.Render(View{Viewer: view.Viewer, Posts: []models.FeedPost{{ID: 9, Content: "old"}}}))
	first.Reset()
	require.NoError(t, r.Render(view))

	require.NoError(t, newTestRenderer(&second).Render(view))

	assert.Equal(t, second.String(), first.String())
	assert.NotContains(t, first.String(), "old")
}

func TestRenderer_EmptyAndNotice(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	require.NoError(t, r.Render(View{Viewer: models.Identity{Username: "ana"}, Notice: "Post published!"}))

	assert.Contains(t, buf.String(), "No posts yet")
	assert.Contains(t, buf.String(), "Post published!")
}

func TestRenderer_DarkMode(t *testing.T) {
	var light, dark bytes.Buffer
	view := View{Viewer: models.Identity{Username: "ana"}}

	require.NoError(t, newTestRenderer(&light).Render(view))

	r := newTestRenderer(&dark)
	r.SetDarkMode(true)
	assert.True(t, r.DarkMode())
	require.NoError(t, r.Render(view))

	assert.NotEqual(t, light.String(), dark.String())
	assert.Contains(t, dark.String(), darkPalette.title)
}
