package ownerrez

import "fmt"

// Config holds the reservation provider credentials and target property.
type Config struct {
	// BaseURL is the API root.
	BaseURL string `mapstructure:"base_url" default:"https://api.ownerreservations.com"`
	// Username is the account username for basic auth.
	Username string `mapstructure:"username" default:""`
	// Token is the API token used as the basic-auth password.
	Token string `mapstructure:"token" default:""`
	// PropertyID is the property whose bookings are reconciled.
	PropertyID int64 `mapstructure:"property_id" default:"0"`
	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Validate checks that the credentials and target property are set.
func (c Config) Validate() error {
	if c.Username == "" || c.Token == "" {
		return fmt.Errorf("ownerrez: username and token are required")
	}
	if c.PropertyID <= 0 {
		return fmt.Errorf("ownerrez: property_id is required")
	}
	return nil
}
