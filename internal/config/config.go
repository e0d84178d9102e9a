package config

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

// Config holds runtime settings for the libradesk client.
//
// Endpoint fields are base URLs ("http://host:port") of the collaborating
// services. TransactionsAddr may be left empty, in which case it is derived
// from OrchestratorAddr by swapping the port for the ledger port, matching
// the default deployment where the ledger runs next to the orchestrator.
type Config struct {
	UsersAddr        string
	BooksAddr        string
	OrchestratorAddr string
	TransactionsAddr string

	// OnlineCheckInterval is how often the background watcher re-probes the
	// users and books services.
	OnlineCheckInterval time.Duration

	// NotificationTTL is how long a notification stays visible before it is
	// dismissed automatically.
	NotificationTTL time.Duration
}

const ledgerPort = "8003"

// LoadDefaults populates c with the default local deployment.
func (c *Config) LoadDefaults() {
	c.UsersAddr = "http://127.0.0.1:8001"
	c.BooksAddr = "http://127.0.0.1:8002"
	c.OrchestratorAddr = "http://127.0.0.1:8000"
	c.TransactionsAddr = ""
	c.OnlineCheckInterval = 30 * time.Second
	c.NotificationTTL = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. An unset transactions endpoint is derived
// from the orchestrator endpoint as the final step.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	if cfg.TransactionsAddr == "" {
		addr, err := deriveLedgerAddr(cfg.OrchestratorAddr)
		if err != nil {
			return nil, fmt.Errorf("deriving transactions endpoint: %w", err)
		}
		cfg.TransactionsAddr = addr
	}
	return cfg, nil
}

// deriveLedgerAddr rewrites the port of the orchestrator base URL to the
// ledger port, keeping scheme and host.
func deriveLedgerAddr(orchestratorAddr string) (string, error) {
	u, err := url.Parse(orchestratorAddr)
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("orchestrator address %q has no host", orchestratorAddr)
	}
	u.Host = net.JoinHostPort(u.Hostname(), ledgerPort)
	return u.String(), nil
}
