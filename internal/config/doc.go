// Package config builds the run configuration for leanpub-multi-action.
//
// # Overview
//
// The action needs a Leanpub API key, a book slug and an action selection.
// Those can come from a config file, a .env file, GitHub Action inputs or plain
// environment variables. Load merges them into a single Config value which is
// then passed down explicitly; nothing is kept in package-level state.
//
// # Resolution Order
//
// Later sources win over earlier ones:
//
//  1. Defaults (log_level=info, log_format=text, theme=Nightfox)
//  2. TOML config file, ~/.config/leanpub/config.toml unless overridden
//  3. .env file in the working directory unless overridden
//  4. GitHub Action inputs (INPUT_LEANPUB-API-KEY, INPUT_LEANPUB-BOOK-SLUG, INPUT_PREVIEW)
//  5. Environment (LEANPUB_API_KEY, LEANPUB_BOOK_SLUG, LEANPUB_PREVIEW,
//     LEANPUB_LOG_LEVEL, LEANPUB_LOG_FORMAT, LEANPUB_THEME)
//  6. Command-line flags, applied by the caller through Config.Apply
//
// Blank values never override. The .env file never overrides variables that
// are already exported.
//
// # TOML Format
//
//	api_key = "..."
//	book_slug = "my-book"
//	preview = true
//	log_level = "debug"
//	log_format = "json"
//	theme = "Kanagawa"
//
// All fields are optional. Tilde expansion is performed on the file path.
//
// # Error Handling
//
// Load returns errors for unreadable or malformed files and for boolean
// variables that strconv.ParseBool rejects. Missing files are not an error.
// Missing credentials are reported separately by Config.Validate as a
// *leanpub.ConfigurationError, so callers can fail before any network call.
package config
