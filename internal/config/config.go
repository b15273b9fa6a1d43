// Package config persists user preferences between runs in an INI file
// under the home directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

const fileName = ".krakenbuster.conf"

// Config holds the persisted preferences. Flag values always win over
// these; the file only seeds defaults for the next run.
type Config struct {
	Threads       int    `ini:"threads"`
	Rate          int    `ini:"rate_limit"`
	Proxy         string `ini:"proxy"`
	OutputDir     string `ini:"output_dir"`
	LastWordlist  string `ini:"last_wordlist"`
	LastDirTool   string `ini:"last_dir_tool"`
	LastVhostTool string `ini:"last_vhost_tool"`
	LastDNSTool   string `ini:"last_dns_tool"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Threads:   50,
		Rate:      200,
		OutputDir: "scans",
	}
}

// Path returns the config file location under the user's home directory.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, fileName), nil
}

// Load reads the config file from its default location. A missing file is
// not an error; defaults are returned.
func Load() Config {
	path, err := Path()
	if err != nil {
		log.WithError(err).Debug("config path unavailable, using defaults")
		return DefaultConfig()
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path. Unparseable files fall
// back to defaults rather than aborting the run.
func LoadFrom(path string) Config {
	cfg := DefaultConfig()

	f, err := ini.Load(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).WithField("path", path).Warn("could not read config file")
		}
		return cfg
	}

	if err := f.Section("scan").MapTo(&cfg); err != nil {
		log.WithError(err).Warn("malformed config file, using defaults")
		return DefaultConfig()
	}
	return cfg
}

// Save writes the config to its default location.
func (c Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c Config) SaveTo(path string) error {
	f := ini.Empty()
	if err := f.Section("scan").ReflectFrom(&c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
