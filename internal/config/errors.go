package config

import "errors"

// Validation errors returned by [Config.validate] when required configuration
// groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, an empty database path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidRemoteConfigs indicates invalid remote store settings
	// (for example, neither a REST base URL nor a Postgres DSN configured).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidSyncConfigs indicates invalid scheduler settings
	// (for example, a negative sync interval).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
)
