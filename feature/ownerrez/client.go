package ownerrez

import (
	"context"
	"fmt"
	"time"

	"doorsync/core/api"
	"doorsync/core/reconcile"

	"github.com/google/go-querystring/query"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Client implements reconcile.BookingSource against the OwnerRez v2 API.
type Client struct {
	api *api.Client
	log *zap.Logger
}

// NewClient creates a booking source from the given configuration.
func NewClient(cfg Config, log *zap.Logger) *Client {
	return &Client{
		api: api.NewClient(api.Options{
			BaseURL:        cfg.BaseURL,
			TimeoutSeconds: cfg.TimeoutSeconds,
			Authorize:      api.BasicAuth(cfg.Username, cfg.Token),
		}),
		log: log,
	}
}

type listQuery struct {
	PropertyIDs int64 `url:"property_ids"`
}

type bookingPage struct {
	Items []bookingItem `json:"items"`
	// NextPageURL is a base-relative path; null on the last page.
	NextPageURL *string `json:"next_page_url"`
}

type bookingItem struct {
	Arrival   string `json:"arrival"`
	Departure string `json:"departure"`
	GuestID   int64  `json:"guest_id"`
}

// ListBookings fetches every booking for the property, following
// next_page_url until the provider signals no further page. Items keep
// their page delivery order. Bookings with malformed dates are logged and
// skipped rather than failing the whole fetch.
func (c *Client) ListBookings(ctx context.Context, propertyID int64) ([]reconcile.Booking, error) {
	qs, err := query.Values(listQuery{PropertyIDs: propertyID})
	if err != nil {
		return nil, fmt.Errorf("ownerrez: encode bookings query: %w", err)
	}
	path := "/v2/bookings?" + qs.Encode()

	var bookings []reconcile.Booking
	pages := 0
	for {
		var page bookingPage
		if err := c.api.GetJSON(ctx, path, &page); err != nil {
			return nil, fmt.Errorf("ownerrez: list bookings: %w", err)
		}
		pages++

		for _, item := range page.Items {
			b, err := item.toBooking()
			if err != nil {
				c.log.Warn("Skipping booking with malformed dates",
					zap.Int64("guest_id", item.GuestID),
					zap.Error(err),
				)
				continue
			}
			bookings = append(bookings, b)
		}

		if page.NextPageURL == nil || *page.NextPageURL == "" {
			break
		}
		path = *page.NextPageURL
	}

	c.log.Debug("Fetched bookings",
		zap.Int64("property_id", propertyID),
		zap.Int("count", len(bookings)),
		zap.Int("pages", pages),
	)
	return bookings, nil
}

// GetGuest fetches a single guest record.
func (c *Client) GetGuest(ctx context.Context, guestID int64) (*reconcile.Guest, error) {
	var guest reconcile.Guest
	if err := c.api.GetJSON(ctx, fmt.Sprintf("/v2/guests/%d", guestID), &guest); err != nil {
		return nil, fmt.Errorf("ownerrez: guest %d: %w", guestID, err)
	}
	return &guest, nil
}

func (it bookingItem) toBooking() (reconcile.Booking, error) {
	arrival, err := time.Parse(dateLayout, it.Arrival)
	if err != nil {
		return reconcile.Booking{}, fmt.Errorf("parse arrival %q: %w", it.Arrival, err)
	}
	departure, err := time.Parse(dateLayout, it.Departure)
	if err != nil {
		return reconcile.Booking{}, fmt.Errorf("parse departure %q: %w", it.Departure, err)
	}
	return reconcile.Booking{
		Arrival:   arrival,
		Departure: departure,
		GuestID:   it.GuestID,
	}, nil
}
