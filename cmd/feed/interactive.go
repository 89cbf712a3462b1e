package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"hypefeed/internal/feed"
)

const healthInterval = 30 * time.Second

// runFeed keeps the feed polling while it reads commands from in. It
// returns when in is exhausted, on /quit or /logout, or when ctx ends.
func runFeed(ctx context.Context, session *feed.Session, in io.Reader, errOut io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := session.EnterFeed(ctx); err != nil {
		return err
	}
	defer session.LeaveFeed()

	// a blocked read cannot be interrupted, so the reader stays outside
	// the group and is abandoned on exit
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stop := feed.Poll(gctx, healthInterval, func(ctx context.Context) {
			session.CheckHealth(ctx)
		})
		<-gctx.Done()
		stop()
		return nil
	})

	g.Go(func() error {
		defer cancel()
		for {
			select {
			case <-gctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				done, err := handleLine(gctx, session, line, errOut)
				if err != nil || done {
					return err
				}
			}
		}
	})

	return g.Wait()
}

// handleLine runs one typed line. done reports that the feed should close.
func handleLine(ctx context.Context, session *feed.Session, line string, errOut io.Writer) (done bool, err error) {
	command, arg, _ := strings.Cut(strings.TrimSpace(line), " ")

	switch command {
	case "":
		return false, nil
	case "/quit":
		return true, nil
	case "/logout":
		return true, session.Logout()
	case "/refresh":
		session.Refresh(ctx)
		return false, nil
	case "/theme":
		_, err := session.ToggleTheme()
		return false, err
	case "/hype":
		postID, perr := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if perr != nil || postID <= 0 {
			fmt.Fprintln(errOut, "» usage: /hype <post-id>")
			return false, nil
		}
		// failures are already reported through the notifier
		session.ToggleHype(ctx, postID)
		return false, nil
	default:
		session.SubmitPost(ctx, line)
		return false, nil
	}
}
