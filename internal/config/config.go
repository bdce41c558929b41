// Package config loads the todos configuration.
//
// Precedence (highest first):
//  1. command line flags (applied by the caller)
//  2. environment variables prefixed TODOS_ (TODOS_SERVICE_DELAY -> service.delay)
//  3. the YAML config file (~/.config/todos/config.yaml unless --config is given)
//  4. defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/Makepad-fr/todos/internal/logging"
	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/service"
	"github.com/Makepad-fr/todos/internal/ui"
)

const envPrefix = "TODOS_"

var ErrDelayUnit = errors.New("duration has no unit")

type Config struct {
	Service ServiceConfig  `koanf:"service"`
	UI      UIConfig       `koanf:"ui"`
	Log     logging.Config `koanf:"log"`
}

// ServiceConfig tunes the mock data service.
type ServiceConfig struct {
	// Delay is a duration string ("500ms", "1s"). Bare numbers other than 0
	// are rejected since they would decode as nanoseconds.
	Delay    time.Duration `koanf:"delay"`
	SeedFile string        `koanf:"seed_file"` // empty: built-in seed
}

type UIConfig struct {
	Theme  string `koanf:"theme"`
	Filter string `koanf:"filter"`
	Group  bool   `koanf:"group"` // ls output grouped by pending/done
}

func Default() Config {
	return Config{
		Service: ServiceConfig{Delay: service.DefaultDelay},
		UI:      UIConfig{Theme: "classic", Filter: string(model.FilterAll)},
		Log:     logging.Config{Level: "info", Format: "text", Stderr: "auto"},
	}
}

// DefaultPath is ~/.config/todos/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".config", "todos", "config.yaml"), nil
}

// Load reads path (or the default path when empty), then the environment.
// A missing file at the default path is fine; a missing explicit path is not.
// The result is not validated: callers apply their flag overrides first and
// then call Validate.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	k := koanf.New(".")

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(b), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	// TODOS_SERVICE_SEED_FILE -> service.seed_file: the first segment is the
	// section, the rest is the field name.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if raw := k.Get("service.delay"); raw != nil {
		if _, ok := raw.(string); !ok && fmt.Sprint(raw) != "0" {
			return nil, fmt.Errorf("service.delay: %w: %v (write e.g. \"500ms\")", ErrDelayUnit, raw)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if c.Service.Delay < 0 {
		return fmt.Errorf("service.delay: must not be negative, got %s", c.Service.Delay)
	}
	if _, err := model.ParseFilter(c.UI.Filter); err != nil {
		return fmt.Errorf("ui.filter: %w", err)
	}
	if !ui.KnownTheme(c.UI.Theme) {
		return fmt.Errorf("ui.theme: unknown theme %q (want %s)", c.UI.Theme, strings.Join(ui.Themes(), ", "))
	}
	return nil
}
