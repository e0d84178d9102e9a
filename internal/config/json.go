package config

import (
	"encoding/json"
	"fmt"
	"os"

	"libradesk/internal/flagx"
	"libradesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations can
// be given either as strings like "30s" or as integer nanoseconds; values are
// then copied into the runtime Config.
type JsonConfig struct {
	UsersAddr           string         `json:"users_addr"`
	BooksAddr           string         `json:"books_addr"`
	OrchestratorAddr    string         `json:"orchestrator_addr"`
	TransactionsAddr    string         `json:"transactions_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	NotificationTTL     timex.Duration `json:"notification_ttl"`
}

// parseJson overlays Config with values loaded from a JSON file whose path is
// given via the -c or -config flags. Without the flag nothing is loaded.
// Zero-valued JSON fields leave the current Config value unchanged, so a
// partial file only overrides what it names.
func parseJson(cfg *Config) error {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return nil
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if jc.UsersAddr != "" {
		cfg.UsersAddr = jc.UsersAddr
	}
	if jc.BooksAddr != "" {
		cfg.BooksAddr = jc.BooksAddr
	}
	if jc.OrchestratorAddr != "" {
		cfg.OrchestratorAddr = jc.OrchestratorAddr
	}
	if jc.TransactionsAddr != "" {
		cfg.TransactionsAddr = jc.TransactionsAddr
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.NotificationTTL.Duration != 0 {
		cfg.NotificationTTL = jc.NotificationTTL.Duration
	}

	return nil
}
