// Package api provides the shared JSON REST client used by the provider
// adapters under feature/.
//
// It owns the concerns every adapter would otherwise duplicate: transport
// timeouts, request authorization, bounded retry with backoff, and the
// mapping from HTTP statuses onto the reconcile error taxonomy.
//
// # Retry policy
//
// Connectivity errors and 5xx responses are retried up to MaxAttempts with
// linear backoff (attempt n waits n*RetryDelay). Auth rejections (401/403)
// and 404s are never retried; exhausted retries surface as
// reconcile.ErrTransient.
//
// # Usage
//
//	client := api.NewClient(api.Options{
//	    BaseURL:   "https://api.example.com",
//	    Authorize: api.BearerAuth(key),
//	})
//	var page bookingPage
//	err := client.GetJSON(ctx, "/v2/bookings?property_ids=1", &page)
package api
