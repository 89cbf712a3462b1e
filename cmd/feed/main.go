package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hypefeed/internal/client"
	"hypefeed/internal/feed"
)

const requestTimeout = 10 * time.Second

type options struct {
	apiURL    string
	statePath string
	namespace string
	interval  time.Duration
}

// env carries what every command needs once flags are parsed.
type env struct {
	store   *feed.Store
	session *feed.Session
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	e := &env{}

	root := &cobra.Command{
		Use:           "hypefeed",
		Short:         "Terminal client for the hypefeed server",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			store, err := feed.OpenStore(opts.statePath, opts.namespace)
			if err != nil {
				return err
			}

			api := client.New(opts.apiURL, client.WithTimeout(requestTimeout))
			notifier := feed.NotifierFunc(func(message string) {
				fmt.Fprintln(cmd.ErrOrStderr(), "»", message)
			})

			e.store = store
			e.session = feed.NewSession(api, store, feed.NewRenderer(cmd.OutOrStdout()), notifier, opts.interval)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e.store == nil {
				return nil
			}
			return e.store.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api", envOr("HYPEFEED_API_URL", "http://localhost:8080"), "server base URL")
	flags.StringVar(&opts.statePath, "state", defaultStatePath(), "client state file")
	flags.StringVar(&opts.namespace, "namespace", feed.DefaultNamespace, "prefix for stored keys")
	flags.DurationVar(&opts.interval, "interval", feed.DefaultPollInterval, "feed refresh interval")

	root.AddCommand(
		newRegisterCommand(e),
		newLoginCommand(e),
		newLogoutCommand(e),
		newWhoamiCommand(e),
		newPostCommand(e),
		newHypeCommand(e),
		newFeedCommand(e),
		newThemeCommand(e),
		newHealthCommand(e),
	)

	return root
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "hypefeed-state.db"
	}
	dir = filepath.Join(dir, "hypefeed")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "hypefeed-state.db"
	}
	return filepath.Join(dir, "state.db")
}
