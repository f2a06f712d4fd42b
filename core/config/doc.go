// Package config provides configuration management for doorsync.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file, with defaults declared as struct tags on the
// section types.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into
// sections owned by the packages they configure:
//   - Log: logging level and format
//   - Sync: reconciliation policy (departure cutoff hour)
//   - OwnerRez: reservation provider credentials and target property
//   - Seam: lock provider credentials and target house name
//   - Notify: Twilio SMS roster and optional SendGrid email copy
//
// Environment variables map onto nested keys with underscores, e.g.
// OWNERREZ_USERNAME, SEAM_API_KEY, NOTIFY_SMS_RECIPIENTS,
// SYNC_DEPARTURE_HOUR.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Seam.HouseName)
package config
