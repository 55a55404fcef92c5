package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/leanpub-multi-action/leanpub-multi-action/internal/app"
	"github.com/leanpub-multi-action/leanpub-multi-action/internal/config"
	"github.com/leanpub-multi-action/leanpub-multi-action/internal/logging"
	"github.com/leanpub-multi-action/leanpub-multi-action/internal/ui"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(app.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		overrides  config.Overrides
		preview    bool
		configPath string
		envFile    string
		version    bool
	)
	fs.StringVar(&overrides.APIKey, "api-key", "", "Leanpub API key (default $LEANPUB_API_KEY)")
	fs.StringVar(&overrides.BookSlug, "book-slug", "", "Leanpub book slug (default $LEANPUB_BOOK_SLUG)")
	fs.BoolVar(&preview, "preview", false, "request a preview build of the book")
	fs.StringVar(&configPath, "config", "", "config file path (optional, defaults to ~/.config/leanpub/config.toml)")
	fs.StringVar(&envFile, "env-file", "", ".env file path (optional, defaults to ./.env)")
	fs.StringVar(&overrides.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	fs.StringVar(&overrides.LogFormat, "log-format", "", "log format: text or json")
	fs.BoolVar(&version, "version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "%s: unexpected arguments: %v\n", app.Name, fs.Args())
		fs.Usage()
		return 1
	}

	if version {
		ui.NewReporter(stdout, stderr, "").Version(app.Name, app.Version())
		return 0
	}

	// Only an explicit -preview overrides the environment.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "preview" {
			overrides.Preview = &preview
		}
	})

	opts := app.Options{
		ConfigPath:  configPath,
		EnvFile:     envFile,
		Overrides:   overrides,
		Stdout:      stdout,
		Stderr:      stderr,
		Interactive: interactive(stdout),
	}
	if err := app.Run(ctx, opts); err != nil {
		return 1
	}
	return 0
}

// interactive reports whether a spinner can be drawn. CI runners never get one.
func interactive(out io.Writer) bool {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return false
	}
	return logging.IsTerminal(out) && logging.IsTerminal(os.Stdin)
}
