package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations, so an operator can write "1h" instead of
// nanosecond integers.
type StructuredJSONConfig struct {
	App struct {
		ResetTokenTTL     Duration `json:"reset_token_ttl"`
		ResetURLBase      string   `json:"reset_url_base"`
		ResetLinkMode     string   `json:"reset_link_mode"`
		MinPasswordLength int      `json:"min_password_length"`
	} `json:"app,omitempty"`

	Storage struct {
		Backend string `json:"backend"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Supabase struct {
			URL     string   `json:"url"`
			Key     string   `json:"key"`
			Timeout Duration `json:"timeout"`
		} `json:"supabase,omitempty"`

		Mongo struct {
			URI      string `json:"uri"`
			Database string `json:"database"`
		} `json:"mongo,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"server,omitempty"`

	Chat struct {
		APIKey  string   `json:"api_key"`
		BaseURL string   `json:"base_url"`
		Model   string   `json:"model"`
		Timeout Duration `json:"timeout"`
	} `json:"chat,omitempty"`

	Mail struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
	} `json:"mail,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			ResetTokenTTL:     time.Duration(jsonCfg.App.ResetTokenTTL),
			ResetURLBase:      jsonCfg.App.ResetURLBase,
			ResetLinkMode:     jsonCfg.App.ResetLinkMode,
			MinPasswordLength: jsonCfg.App.MinPasswordLength,
		},
		Storage: Storage{
			Backend: jsonCfg.Storage.Backend,
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Supabase: Supabase{
				URL:     jsonCfg.Storage.Supabase.URL,
				Key:     jsonCfg.Storage.Supabase.Key,
				Timeout: time.Duration(jsonCfg.Storage.Supabase.Timeout),
			},
			Mongo: Mongo{
				URI:      jsonCfg.Storage.Mongo.URI,
				Database: jsonCfg.Storage.Mongo.Database,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			AllowedOrigins: jsonCfg.Server.AllowedOrigins,
		},
		Chat: Chat{
			APIKey:  jsonCfg.Chat.APIKey,
			BaseURL: jsonCfg.Chat.BaseURL,
			Model:   jsonCfg.Chat.Model,
			Timeout: time.Duration(jsonCfg.Chat.Timeout),
		},
		Mail: Mail{
			Host:     jsonCfg.Mail.Host,
			Port:     jsonCfg.Mail.Port,
			Username: jsonCfg.Mail.Username,
			Password: jsonCfg.Mail.Password,
			From:     jsonCfg.Mail.From,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
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
