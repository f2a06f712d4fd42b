// Package ownerrez adapts the OwnerRez reservation API to the
// reconcile.BookingSource port.
//
// Bookings are fetched from GET /v2/bookings?property_ids={id}, following
// the response's next_page_url (a base-relative path) until it is null.
// Guests come from GET /v2/guests/{id}. Both endpoints authenticate with
// basic credentials (username + API token).
package ownerrez
