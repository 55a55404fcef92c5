package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/leanpub-multi-action/leanpub-multi-action/internal/config"
	"github.com/leanpub-multi-action/leanpub-multi-action/internal/leanpub"
	"github.com/leanpub-multi-action/leanpub-multi-action/internal/logging"
	"github.com/leanpub-multi-action/leanpub-multi-action/internal/ui"
)

// ErrNoAction is returned when no action was selected.
var ErrNoAction = errors.New("no action selected: pass -preview or set LEANPUB_PREVIEW=true")

// Options configure a single run of the action.
type Options struct {
	ConfigPath string // empty uses ~/.config/leanpub/config.toml
	EnvFile    string // empty uses ./.env
	Overrides  config.Overrides

	Stdout io.Writer // defaults to os.Stdout
	Stderr io.Writer // defaults to os.Stderr

	// Interactive shows a spinner while the request is in flight.
	Interactive bool

	// HTTPClient replaces the client used to reach Leanpub (optional).
	HTTPClient *http.Client
}

// Run loads configuration, triggers the selected action and prints the
// result. Every failure is reported to Stderr before being returned.
func Run(ctx context.Context, opts Options) error {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	cfg, err := config.Load(config.Options{ConfigPath: opts.ConfigPath, EnvFile: opts.EnvFile})
	if err != nil {
		err = fmt.Errorf("load config: %w", err)
		ui.NewReporter(stdout, stderr, "").Failure(err)
		return err
	}
	cfg = cfg.Apply(opts.Overrides)

	reporter := ui.NewReporter(stdout, stderr, cfg.Theme)
	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: stderr,
	})
	if _, ok := ui.LookupTheme(cfg.Theme); !ok {
		logger.Warn().
			Str("theme", cfg.Theme).
			Strs("available", ui.ThemeNames()).
			Msg("unknown theme, using Nightfox")
	}

	if err := cfg.Validate(); err != nil {
		reporter.Failure(err)
		return err
	}
	if !cfg.Preview {
		reporter.Failure(ErrNoAction)
		return ErrNoAction
	}

	client, err := leanpub.NewClient(cfg.APIKey,
		leanpub.WithHTTPClient(opts.HTTPClient),
		leanpub.WithUserAgent(UserAgent()),
		leanpub.WithLogger(logger),
	)
	if err != nil {
		reporter.Failure(err)
		return err
	}

	var outcome leanpub.Outcome
	if opts.Interactive {
		outcome = ui.PreviewWithProgress(ctx, stdout, client, cfg.BookSlug, cfg.Theme)
	} else {
		outcome = client.Preview(ctx, cfg.BookSlug)
	}

	if !outcome.OK() {
		logger.Debug().Err(outcome.Err).Str("book_slug", cfg.BookSlug).Msg("preview failed")
		reporter.Failure(outcome.Err)
		return fmt.Errorf("preview %s: %w", cfg.BookSlug, outcome.Err)
	}
	reporter.PreviewTriggered(cfg.BookSlug, outcome.Response)
	return nil
}
