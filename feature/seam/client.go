package seam

import (
	"context"
	"fmt"
	"net/url"

	"doorsync/core/api"
	"doorsync/core/reconcile"

	"go.uber.org/zap"
)

// Client implements reconcile.LockController against the Seam API.
type Client struct {
	api *api.Client
	log *zap.Logger
}

// NewClient creates a lock controller from the given configuration.
func NewClient(cfg Config, log *zap.Logger) *Client {
	return &Client{
		api: api.NewClient(api.Options{
			BaseURL:        cfg.BaseURL,
			TimeoutSeconds: cfg.TimeoutSeconds,
			Authorize:      api.BearerAuth(cfg.APIKey),
		}),
		log: log,
	}
}

type lockDevice struct {
	DeviceID   string `json:"device_id"`
	Properties struct {
		Name           string `json:"name"`
		AugustMetadata struct {
			HouseName string `json:"house_name"`
		} `json:"august_metadata"`
	} `json:"properties"`
}

type locksEnvelope struct {
	Locks []lockDevice `json:"locks"`
}

type accessCodesEnvelope struct {
	AccessCodes []struct {
		AccessCodeID string `json:"access_code_id"`
		Name         string `json:"name"`
		Code         string `json:"code"`
	} `json:"access_codes"`
}

// ListLocks returns every lock visible to the account.
func (c *Client) ListLocks(ctx context.Context) ([]reconcile.Lock, error) {
	var envelope locksEnvelope
	if err := c.api.GetJSON(ctx, "/locks/list", &envelope); err != nil {
		return nil, fmt.Errorf("seam: list locks: %w", err)
	}

	locks := make([]reconcile.Lock, 0, len(envelope.Locks))
	for _, d := range envelope.Locks {
		locks = append(locks, reconcile.Lock{
			DeviceID:  d.DeviceID,
			Name:      d.Properties.Name,
			HouseName: d.Properties.AugustMetadata.HouseName,
		})
	}
	return locks, nil
}

// ResolveLock selects the single lock whose house name equals houseName.
// Zero matches and multiple matches both fail with reconcile.ErrLockNotFound;
// silently picking one of several identically-labelled locks risks
// programming the wrong door.
func (c *Client) ResolveLock(ctx context.Context, houseName string) (reconcile.Lock, error) {
	locks, err := c.ListLocks(ctx)
	if err != nil {
		return reconcile.Lock{}, err
	}

	var matches []reconcile.Lock
	for _, lock := range locks {
		if lock.HouseName == houseName {
			matches = append(matches, lock)
		}
	}

	switch len(matches) {
	case 1:
		c.log.Debug("Resolved target lock",
			zap.String("device_id", matches[0].DeviceID),
			zap.String("house_name", houseName),
		)
		return matches[0], nil
	case 0:
		return reconcile.Lock{}, fmt.Errorf("seam: no lock matches house name %q: %w", houseName, reconcile.ErrLockNotFound)
	default:
		return reconcile.Lock{}, fmt.Errorf("seam: house name %q matches %d locks, expected exactly one: %w", houseName, len(matches), reconcile.ErrLockNotFound)
	}
}

// ListAccessCodes returns the access codes currently on the lock.
func (c *Client) ListAccessCodes(ctx context.Context, deviceID string) ([]reconcile.AccessCode, error) {
	path := "/access_codes/list?device_id=" + url.QueryEscape(deviceID)
	var envelope accessCodesEnvelope
	if err := c.api.GetJSON(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("seam: list access codes: %w", err)
	}

	codes := make([]reconcile.AccessCode, 0, len(envelope.AccessCodes))
	for _, ac := range envelope.AccessCodes {
		codes = append(codes, reconcile.AccessCode{
			ID:   ac.AccessCodeID,
			Name: ac.Name,
			Code: ac.Code,
		})
	}
	return codes, nil
}

// AddCode creates a new access code labelled name on the lock. There is no
// pre-check for an existing code with the same label.
func (c *Client) AddCode(ctx context.Context, lock reconcile.Lock, code, name string) error {
	payload := struct {
		DeviceID string `json:"device_id"`
		Code     string `json:"code"`
		Name     string `json:"name"`
	}{
		DeviceID: lock.DeviceID,
		Code:     code,
		Name:     name,
	}
	if err := c.api.PostJSON(ctx, "/access_codes/create", payload, nil); err != nil {
		return fmt.Errorf("seam: create access code for %q: %w", name, err)
	}
	return nil
}

// RemoveCode deletes the first access code whose label equals name. When no
// code matches, the removal is a no-op: re-running a day's reconciliation
// must not fail on codes that are already gone.
func (c *Client) RemoveCode(ctx context.Context, lock reconcile.Lock, name string) error {
	codes, err := c.ListAccessCodes(ctx, lock.DeviceID)
	if err != nil {
		return err
	}

	for _, ac := range codes {
		if ac.Name != name {
			continue
		}
		payload := struct {
			AccessCodeID string `json:"access_code_id"`
		}{AccessCodeID: ac.ID}
		if err := c.api.DeleteJSON(ctx, "/access_codes/delete", payload); err != nil {
			return fmt.Errorf("seam: delete access code %s for %q: %w", ac.ID, name, err)
		}
		return nil
	}

	c.log.Debug("No access code to remove", zap.String("name", name))
	return nil
}
