// Package ui renders leanpub-multi-action output for humans.
//
// # Components
//
//   - theme.go: colour palettes (Nightfox, Kanagawa, Slate) and Lipgloss styles
//   - report.go: Reporter, one message per outcome (success, missing
//     configuration, rejected request, unreachable service)
//   - progress.go: a Bubble Tea program showing a spinner while the preview
//     request is in flight
//
// # Terminals and CI
//
// Styles are bound to a Lipgloss renderer per output stream, so colour is
// dropped automatically when output is piped or captured by a CI runner. The
// spinner is only used when the caller says the session is interactive;
// GitHub Actions runs always take the plain path.
//
// # Cancellation
//
// Pressing Ctrl+C (or q) while the spinner runs cancels the request context.
// The program exits once the cancelled request returns its outcome, so no
// request is ever left running in the background.
package ui
