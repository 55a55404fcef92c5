package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/leanpub-multi-action/leanpub-multi-action/internal/leanpub"
)

const (
	successMark = "✓"
	failureMark = "✗"
)

// Reporter prints human-readable results. Successes go to out, failures to
// errOut.
type Reporter struct {
	out       io.Writer
	errOut    io.Writer
	styles    Styles
	errStyles Styles
}

// NewReporter builds a Reporter using the named theme.
func NewReporter(out, errOut io.Writer, themeName string) *Reporter {
	theme := GetTheme(themeName)
	return &Reporter{
		out:       out,
		errOut:    errOut,
		styles:    theme.Styles(lipgloss.NewRenderer(out)),
		errStyles: theme.Styles(lipgloss.NewRenderer(errOut)),
	}
}

// PreviewTriggered reports that Leanpub accepted a preview request.
func (r *Reporter) PreviewTriggered(slug string, resp *leanpub.Response) {
	s := r.styles
	status := ""
	if resp != nil {
		status = s.MutedText.Render(fmt.Sprintf(" (HTTP %d)", resp.StatusCode))
	}
	fmt.Fprintf(r.out, "%s Preview of %s requested%s\n",
		s.SuccessText.Render(successMark),
		s.AccentText.Render(slug),
		status,
	)
	if resp != nil {
		if body := strings.TrimSpace(resp.Body); body != "" {
			fmt.Fprintf(r.out, "  %s\n", s.MutedText.Render(body))
		}
	}
	fmt.Fprintf(r.out, "  %s\n", s.InfoText.Render("Leanpub builds previews asynchronously; check your email or the book dashboard for the result."))
}

// Failure reports err with a message chosen by its kind.
func (r *Reporter) Failure(err error) {
	if err == nil {
		return
	}
	s := r.errStyles
	mark := s.DangerText.Render(failureMark)

	var (
		cfgErr    *leanpub.ConfigurationError
		remote    *leanpub.RemoteError
		transport *leanpub.TransportError
	)
	switch {
	case errors.As(err, &cfgErr):
		fmt.Fprintf(r.errOut, "%s %s\n", mark, s.Text.Render("Missing configuration: "+cfgErr.Err.Error()))
		fmt.Fprintf(r.errOut, "  %s\n", s.MutedText.Render(configHint(cfgErr.Err)))
	case errors.As(err, &remote):
		fmt.Fprintf(r.errOut, "%s %s\n", mark, s.Text.Render(fmt.Sprintf("Leanpub rejected the request (HTTP %d)", remote.StatusCode)))
		if body := strings.TrimSpace(remote.Body); body != "" {
			fmt.Fprintf(r.errOut, "  %s\n", s.MutedText.Render(body))
		}
		if remote.Unauthorized() {
			fmt.Fprintf(r.errOut, "  %s\n", s.WarningText.Render("Check that the API key is valid for this book."))
		}
	case errors.As(err, &transport):
		what := "Could not reach Leanpub"
		if transport.Timeout() {
			what = "Timed out waiting for Leanpub"
		}
		fmt.Fprintf(r.errOut, "%s %s\n", mark, s.Text.Render(what))
		fmt.Fprintf(r.errOut, "  %s\n", s.MutedText.Render(transport.Err.Error()))
	default:
		fmt.Fprintf(r.errOut, "%s %s\n", mark, s.Text.Render(err.Error()))
	}
}

// Version prints the program version.
func (r *Reporter) Version(name, version string) {
	fmt.Fprintf(r.out, "%s %s\n", r.styles.AccentText.Render(name), version)
}

func configHint(err error) string {
	switch {
	case errors.Is(err, leanpub.ErrMissingAPIKey):
		return "Pass -api-key or set LEANPUB_API_KEY (leanpub-api-key input in a workflow)."
	case errors.Is(err, leanpub.ErrMissingBookSlug):
		return "Pass -book-slug or set LEANPUB_BOOK_SLUG (leanpub-book-slug input in a workflow)."
	default:
		return "See -help for the available settings."
	}
}
