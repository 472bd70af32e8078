// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

package config

// validate checks that the final merged [Config] satisfies all daemon
// invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the package-level
// validation errors otherwise.
func (cfg *Config) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Remote.BaseURL == "" && cfg.Remote.PostgresDSN == "" {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Sync.Interval < 0 || cfg.Sync.FullRefreshAfter < 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
