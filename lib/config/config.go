// Package config loads the Appwrite connection settings from env files and
// the process environment, and checks them before anything touches the network.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Names of the required environment variables.
const (
	KeyEndpoint     = "NEXT_PUBLIC_ENDPOINT"
	KeyProjectID    = "PROJECT_ID"
	KeyAPIKey       = "API_KEY"
	KeyDatabaseID   = "DATABASE_ID"
	KeyCollectionID = "APPOINTMENT_COLLECTION_ID"
)

// EnvFiles lists the env files looked up in the working directory, in order
// of preference. Only the first one found is read.
var EnvFiles = []string{".env.local", ".env"}

// Config holds the settings needed to reach one Appwrite collection.
type Config struct {
	Endpoint     string `env:"NEXT_PUBLIC_ENDPOINT"`
	ProjectID    string `env:"PROJECT_ID"`
	APIKey       string `env:"API_KEY"`
	DatabaseID   string `env:"DATABASE_ID"`
	CollectionID string `env:"APPOINTMENT_COLLECTION_ID"`

	// EnvFile is the env file the values were merged from, empty if none.
	EnvFile string
}

// Options controls where Load reads from.
type Options struct {
	// Dir is searched for EnvFiles. Defaults to the working directory.
	Dir string
	// Environ returns the ambient environment as KEY=VALUE pairs.
	// Defaults to os.Environ.
	Environ func() []string
}

// Load merges the preferred env file with the ambient environment and decodes
// the result into a Config. Ambient variables take precedence over the file.
func Load(opts Options) (Config, error) {
	if opts.Environ == nil {
		opts.Environ = os.Environ
	}

	merged := map[string]string{}

	file, err := findEnvFile(opts.Dir)
	if err != nil {
		return Config{}, err
	}
	if file != "" {
		values, err := godotenv.Read(file)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read %s: %w", file, err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}

	for _, kv := range opts.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		merged[k] = v
	}

	var cfg Config
	if err := env.Parse(&cfg, env.Options{Environment: merged}); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.EnvFile = file
	return cfg, nil
}

func findEnvFile(dir string) (string, error) {
	for _, name := range EnvFiles {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		return path, nil
	}
	return "", nil
}

type field struct {
	key   string
	value string
	// placeholder is true for values that must not look like an unfilled template.
	placeholder bool
}

func (c Config) fields() []field {
	return []field{
		{KeyEndpoint, c.Endpoint, false},
		{KeyProjectID, c.ProjectID, true},
		{KeyAPIKey, c.APIKey, true},
		{KeyDatabaseID, c.DatabaseID, true},
		{KeyCollectionID, c.CollectionID, true},
	}
}

// Missing returns the names of required keys that are unset or empty.
func (c Config) Missing() []string {
	var missing []string
	for _, f := range c.fields() {
		if f.value == "" {
			missing = append(missing, f.key)
		}
	}
	return missing
}

// Placeholders returns the names of keys whose values look like template
// markers such as <your-key> or your-project-id. The endpoint is not checked.
func (c Config) Placeholders() []string {
	var flagged []string
	for _, f := range c.fields() {
		if !f.placeholder || f.value == "" {
			continue
		}
		if IsPlaceholder(f.value) {
			flagged = append(flagged, f.key)
		}
	}
	return flagged
}

// IsPlaceholder reports whether v looks like an unfilled template value.
func IsPlaceholder(v string) bool {
	lower := strings.ToLower(v)
	// The last condition is already covered by the first one; it is kept so
	// the accepted set of values stays exactly as documented.
	return strings.Contains(v, "<") ||
		strings.HasPrefix(lower, "your-") ||
		strings.HasPrefix(lower, "<")
}

// Validate returns a *MissingError if any required key is absent, otherwise a
// *PlaceholderError if any checked key still holds a placeholder, otherwise nil.
func (c Config) Validate() error {
	if missing := c.Missing(); len(missing) > 0 {
		return &MissingError{Keys: missing}
	}
	if flagged := c.Placeholders(); len(flagged) > 0 {
		return &PlaceholderError{Keys: flagged}
	}
	return nil
}
