// Package config holds the snotify-cli runtime configuration.
package config

import (
	"fmt"
	"time"

	"github.com/yndnr/snotify-go/internal/binding"
	"github.com/yndnr/snotify-go/internal/infra/confloader"
)

// Config is the effective CLI configuration after merging defaults,
// the optional config file and SNOTIFY_* environment variables.
type Config struct {
	// Display is the X server address. Empty means $DISPLAY.
	Display string

	LogLevel  string
	LogFormat string

	// Output selects the CLI output format ("text" or "json").
	Output string

	// Patience bounds how long a launched token stays pending.
	Patience time.Duration

	// TriggerInterval rate-limits repeated activation triggers.
	TriggerInterval time.Duration

	// MetricsListen is the address for the Prometheus endpoint.
	// Empty disables it.
	MetricsListen string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Output:          "text",
		Patience:        binding.DefaultPatience,
		TriggerInterval: binding.DefaultTriggerInterval,
	}
}

// Load merges the optional YAML file at path and environment variables
// over the defaults. A missing path is only an error when it was
// explicitly given.
func Load(path string) (Config, error) {
	cfg := Default()

	l := confloader.NewLoader()
	if path != "" {
		if err := l.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := l.LoadEnv(); err != nil {
		return cfg, err
	}

	if s := l.GetString("display"); s != "" {
		cfg.Display = s
	}
	if s := l.GetString("log.level"); s != "" {
		cfg.LogLevel = s
	}
	if s := l.GetString("log.format"); s != "" {
		cfg.LogFormat = s
	}
	if s := l.GetString("output"); s != "" {
		cfg.Output = s
	}
	if s := l.GetString("metrics.listen"); s != "" {
		cfg.MetricsListen = s
	}
	if err := loadDuration(l, "patience", &cfg.Patience); err != nil {
		return cfg, err
	}
	if err := loadDuration(l, "trigger.interval", &cfg.TriggerInterval); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadDuration(l *confloader.Loader, key string, dst *time.Duration) error {
	s := l.GetString(key)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config %s: %w", key, err)
	}
	if d <= 0 {
		return fmt.Errorf("config %s: must be positive, got %s", key, d)
	}
	*dst = d
	return nil
}
