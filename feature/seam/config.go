package seam

import "fmt"

// Config holds the lock provider credentials and the target lock label.
type Config struct {
	// BaseURL is the API root.
	BaseURL string `mapstructure:"base_url" default:"https://connect.getseam.com"`
	// APIKey is the workspace API key (bearer auth).
	APIKey string `mapstructure:"api_key" default:""`
	// HouseName selects the target lock among all locks visible to the
	// account, by its property metadata house-name attribute.
	HouseName string `mapstructure:"house_name" default:""`
	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Validate checks that the credentials and target lock label are set.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("seam: api_key is required")
	}
	if c.HouseName == "" {
		return fmt.Errorf("seam: house_name is required")
	}
	return nil
}
