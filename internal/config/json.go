package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type jsonConfig struct {
	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Remote struct {
		BaseURL        string   `json:"base_url"`
		RealtimeURL    string   `json:"realtime_url"`
		APIKey         string   `json:"api_key"`
		PostgresDSN    string   `json:"postgres_dsn"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"remote,omitempty"`

	Sync struct {
		Interval         Duration `json:"interval"`
		FullRefreshAfter Duration `json:"full_refresh_after"`
	} `json:"sync,omitempty"`

	Session struct {
		Token string `json:"token"`
	} `json:"session,omitempty"`

	Net struct {
		ProbeAddress  string   `json:"probe_address"`
		ProbeInterval Duration `json:"probe_interval"`
	} `json:"net,omitempty"`
}

func parseJSON(jsonFilePath string) (*Config, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg jsonConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &Config{
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Remote: Remote{
			BaseURL:        jsonCfg.Remote.BaseURL,
			RealtimeURL:    jsonCfg.Remote.RealtimeURL,
			APIKey:         jsonCfg.Remote.APIKey,
			PostgresDSN:    jsonCfg.Remote.PostgresDSN,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
		},
		Sync: Sync{
			Interval:         time.Duration(jsonCfg.Sync.Interval),
			FullRefreshAfter: time.Duration(jsonCfg.Sync.FullRefreshAfter),
		},
		Session: Session{
			Token: jsonCfg.Session.Token,
		},
		Net: Net{
			ProbeAddress:  jsonCfg.Net.ProbeAddress,
			ProbeInterval: time.Duration(jsonCfg.Net.ProbeInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
