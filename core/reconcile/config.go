package reconcile

import "fmt"

// DefaultDepartureHour is the local hour after which a same-day departing
// guest's code becomes eligible for removal.
const DefaultDepartureHour = 16

// Config holds the engine's scheduling policy.
type Config struct {
	// DepartureHour is the local cutoff hour (0-23) for removing a
	// departing guest's code on their check-out day.
	DepartureHour int `mapstructure:"departure_hour" default:"16"`
}

// Validate checks that the cutoff hour is a valid hour of day.
func (c Config) Validate() error {
	if c.DepartureHour < 0 || c.DepartureHour > 23 {
		return fmt.Errorf("departure_hour must be between 0 and 23, got %d", c.DepartureHour)
	}
	return nil
}
