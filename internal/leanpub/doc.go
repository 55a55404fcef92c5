// Package leanpub provides an HTTP client for the Leanpub publishing API.
//
// # Overview
//
// A Client binds one API key to the fixed endpoint https://leanpub.com/ and
// exposes a single operation, Preview, which asks Leanpub to build a preview of
// a book:
//
//	POST https://leanpub.com/<book_slug>/preview.json
//	{"api_key": "<key>"}
//
// # Client Usage
//
//	client, err := leanpub.NewClient(apiKey)
//	if err != nil {
//		return err // *ConfigurationError
//	}
//
//	outcome := client.Preview(ctx, "my-book")
//	if !outcome.OK() {
//		log.Printf("preview failed: %v", outcome.Err)
//	}
//
// # Outcomes
//
// Preview never panics and never returns a bare error. It returns an Outcome
// with exactly one field populated:
//
//   - Response: any status below 400, body passed through unmodified
//   - Err: *ConfigurationError, *TransportError or *RemoteError
//
// Use errors.As to branch on the error kind:
//
//	var remote *leanpub.RemoteError
//	if errors.As(outcome.Err, &remote) && remote.Unauthorized() {
//		// bad API key
//	}
//
// # Resiliency
//
// The client makes exactly one attempt per call. It sets no timeout and adds no
// retry policy; cancellation is controlled by the caller's context.
//
// Leanpub builds previews asynchronously. A successful Outcome means the build
// was queued, not that it completed.
package leanpub
