package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hypefeed/internal/feed"
)

var errSignedOut = errors.New("sign in first: hypefeed login <username>")

func newRegisterCommand(e *env) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordOrPrompt(cmd, password)
			if err != nil {
				return err
			}
			if _, err := e.session.Boot(cmd.Context(), feed.ScreenRegister); err != nil {
				return err
			}
			return e.session.Register(cmd.Context(), args[0], pw)
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password, read from stdin when empty")
	return cmd
}

func newLoginCommand(e *env) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Sign in and remember the identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordOrPrompt(cmd, password)
			if err != nil {
				return err
			}
			if _, err := e.session.Boot(cmd.Context(), feed.ScreenLogin); err != nil {
				return err
			}
			if err := e.session.Login(cmd.Context(), args[0], pw); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", e.session.Identity().Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password, read from stdin when empty")
	return cmd
}

func newLogoutCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.session.Logout()
		},
	}
}

func newWhoamiCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := e.store.Identity()
			if err != nil {
				return err
			}
			if identity == nil {
				return errSignedOut
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", identity.Username, identity.ID)
			return nil
		},
	}
}

func newPostCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "post <content>",
		Short: "Publish a post and show the feed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFeed(cmd, e); err != nil {
				return err
			}
			posted, err := e.session.SubmitPost(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !posted {
				return errors.New("nothing to post")
			}
			return nil
		},
	}
}

func newHypeCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "hype <post-id>",
		Short: "Toggle your hype on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || postID <= 0 {
				return fmt.Errorf("invalid post id %q", args[0])
			}
			if err := requireFeed(cmd, e); err != nil {
				return err
			}
			action, err := e.session.ToggleHype(cmd.Context(), postID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "» hype %s\n", action)
			return nil
		},
	}
}

func newFeedCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Show the live feed",
		Long: `Show the feed and refresh it on an interval.

Lines typed while the feed is open are published as posts, except:
  /hype <id>   toggle hype on a post
  /theme       switch between light and dark
  /refresh     reload now
  /logout      sign out and leave
  /quit        leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFeed(cmd, e); err != nil {
				return err
			}
			return runFeed(cmd.Context(), e.session, cmd.InOrStdin(), cmd.ErrOrStderr())
		},
	}
}

func newThemeCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Toggle dark mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.session.Boot(cmd.Context(), feed.ScreenLogin); err != nil {
				return err
			}
			dark, err := e.session.ToggleTheme()
			if err != nil {
				return err
			}
			if dark {
				fmt.Fprintln(cmd.OutOrStdout(), "dark mode on")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "dark mode off")
			}
			return nil
		},
	}
}

func newHealthCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !e.session.CheckHealth(cmd.Context()) {
				return errors.New("server is down")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "server is up")
			return nil
		},
	}
}

// requireFeed boots the session toward the feed and fails when the
// screen guard sends the user back to login.
func requireFeed(cmd *cobra.Command, e *env) error {
	screen, err := e.session.Boot(cmd.Context(), feed.ScreenFeed)
	if err != nil {
		return err
	}
	if screen != feed.ScreenFeed {
		return errSignedOut
	}
	return nil
}

func passwordOrPrompt(cmd *cobra.Command, password string) (string, error) {
	if password != "" {
		return password, nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), "password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
