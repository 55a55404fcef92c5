package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leanpub-multi-action/leanpub-multi-action/internal/leanpub"
)

// outcomeMsg carries the preview result back into the Bubble Tea loop.
type outcomeMsg leanpub.Outcome

// progressModel shows a spinner while a single preview request is in flight.
type progressModel struct {
	ctx       context.Context
	cancel    context.CancelFunc
	previewer leanpub.Previewer
	slug      string

	spinner   spinner.Model
	label     lipgloss.Style
	cancelled bool
	outcome   *leanpub.Outcome
}

func newProgressModel(ctx context.Context, cancel context.CancelFunc, previewer leanpub.Previewer, slug string, styles Styles) progressModel {
	return progressModel{
		ctx:       ctx,
		cancel:    cancel,
		previewer: previewer,
		slug:      slug,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.AccentText),
		),
		label: styles.AccentText,
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.trigger())
}

func (m progressModel) trigger() tea.Cmd {
	ctx, previewer, slug := m.ctx, m.previewer, m.slug
	return func() tea.Msg {
		return outcomeMsg(previewer.Preview(ctx, slug))
	}
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case outcomeMsg:
		outcome := leanpub.Outcome(msg)
		m.outcome = &outcome
		return m, tea.Quit
	case tea.KeyMsg:
		// The request owns the only exit path; cancelling it makes the
		// outcome arrive promptly.
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			m.cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.outcome != nil {
		return ""
	}
	if m.cancelled {
		return fmt.Sprintf("%s Cancelling preview of %s...\n", m.spinner.View(), m.label.Render(m.slug))
	}
	return fmt.Sprintf("%s Requesting preview of %s...\n", m.spinner.View(), m.label.Render(m.slug))
}

// PreviewWithProgress runs previewer.Preview for slug while drawing a spinner
// on out. It is meant for interactive terminals; the request itself is still
// a single blocking call.
func PreviewWithProgress(ctx context.Context, out io.Writer, previewer leanpub.Previewer, slug, themeName string) leanpub.Outcome {
	return runProgress(ctx, out, previewer, slug, themeName, tea.WithOutput(out))
}

func runProgress(ctx context.Context, out io.Writer, previewer leanpub.Previewer, slug, themeName string, opts ...tea.ProgramOption) leanpub.Outcome {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	styles := GetTheme(themeName).Styles(lipgloss.NewRenderer(out))
	model := newProgressModel(ctx, cancel, previewer, slug, styles)

	final, err := tea.NewProgram(model, opts...).Run()
	if fm, ok := final.(progressModel); ok && fm.outcome != nil {
		return *fm.outcome
	}
	if err == nil {
		err = fmt.Errorf("preview did not complete")
	}
	return leanpub.Outcome{Err: fmt.Errorf("progress display: %w", err)}
}
