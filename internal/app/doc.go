// Package app is the composition root of leanpub-multi-action.
//
// # Overview
//
// Run wires configuration, logging, the Leanpub client and terminal output
// together for one invocation:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()         Merge file, .env, inputs, env
//	       ├─────> cfg.Apply()           Command-line overrides
//	       ├─────> cfg.Validate()        Key and slug present?
//	       ├─────> leanpub.NewClient()   Bind the API key
//	       ├─────> client.Preview()      One POST, or via ui.PreviewWithProgress
//	       └─────> ui.Reporter           Print the outcome
//
// # Error Handling
//
// Every failure is printed by the reporter and then returned, so the caller
// only has to map a non-nil error to exit code 1:
//
//   - config load errors (malformed TOML, bad boolean)
//   - *leanpub.ConfigurationError for a missing key or slug
//   - ErrNoAction when no action was selected
//   - the preview failure (*leanpub.TransportError or *leanpub.RemoteError)
//
// Nothing is retried.
//
// # Usage Example
//
//	err := app.Run(ctx, app.Options{
//		Overrides: config.Overrides{BookSlug: "my-book"},
//	})
//	if err != nil {
//		os.Exit(1)
//	}
package app
