package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d local database file path
//	-remote-url remote store REST base URL
//	-realtime-url remote change-feed websocket URL
//	-api-key remote store API key
//	-postgres-dsn direct-Postgres remote backend DSN
//	-sync-interval periodic reconciliation interval (e.g., "60s", "5m")
//	-full-refresh-after staleness threshold for a full refresh (e.g., "720h")
//	-token session access token (JWT)
//	-probe-addr connectivity probe address host:port
//	-probe-interval connectivity probe interval
//	-c/-config json file path with configs
func ParseFlags() *Config {
	var localDSN string
	var remoteURL string
	var realtimeURL string
	var apiKey string
	var postgresDSN string
	var syncInterval time.Duration
	var fullRefreshAfter time.Duration
	var token string
	var probeAddr string
	var probeInterval time.Duration
	var jsonConfigPath string

	flag.StringVar(&localDSN, "d", "", "Local database file path")
	flag.StringVar(&remoteURL, "remote-url", "", "Remote store REST base URL")
	flag.StringVar(&realtimeURL, "realtime-url", "", "Remote change-feed websocket URL")
	flag.StringVar(&apiKey, "api-key", "", "Remote store API key")
	flag.StringVar(&postgresDSN, "postgres-dsn", "", "Direct-Postgres remote backend DSN")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Periodic reconciliation interval (e.g., 60s, 5m)")
	flag.DurationVar(&fullRefreshAfter, "full-refresh-after", 0, "Staleness threshold for a full refresh (e.g., 720h)")
	flag.StringVar(&token, "token", "", "Session access token (JWT)")
	flag.StringVar(&probeAddr, "probe-addr", "", "Connectivity probe address host:port")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &Config{
		Storage: Storage{
			DB: DB{
				DSN: localDSN,
			},
		},
		Remote: Remote{
			BaseURL:     remoteURL,
			RealtimeURL: realtimeURL,
			APIKey:      apiKey,
			PostgresDSN: postgresDSN,
		},
		Sync: Sync{
			Interval:         syncInterval,
			FullRefreshAfter: fullRefreshAfter,
		},
		Session: Session{
			Token: token,
		},
		Net: Net{
			ProbeAddress:  probeAddr,
			ProbeInterval: probeInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
