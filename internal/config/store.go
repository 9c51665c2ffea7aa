// Package config persists the identity and tuning settings of ghloc
// in a TOML file under the user's configuration directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/naka-gawa/ghloc/internal/domain"
)

// AppName names the configuration directory.
const AppName = "ghloc"

// Environment variables that override the stored credentials for a single run.
const (
	EnvToken    = "GITHUB_TOKEN"
	EnvUsername = "GHLOC_USERNAME"
)

// Settings tunes a stats run. Zero values mean "use the default".
type Settings struct {
	RetryDelay string  `toml:"retry_delay,omitempty"`
	MaxRetries int     `toml:"max_retries,omitempty"`
	MaxWorkers int     `toml:"max_workers,omitempty"`
	RPS        float64 `toml:"rps,omitempty"`
}

// RetryDelayDuration parses RetryDelay, returning 0 when it is unset.
func (s Settings) RetryDelayDuration() (time.Duration, error) {
	if s.RetryDelay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.RetryDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid retry_delay %q: %w", s.RetryDelay, err)
	}
	return d, nil
}

type fileConfig struct {
	Username string   `toml:"username,omitempty"`
	Token    string   `toml:"token,omitempty"`
	Settings Settings `toml:"settings"`
}

// Store is a file-based credential and settings store.
type Store struct {
	mu       sync.Mutex
	filePath string
}

// DefaultDir returns the directory used when none is given,
// e.g. ~/.config/ghloc on Linux.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// NewStore creates a store backed by config.toml inside configDir.
// If configDir is empty, DefaultDir is used.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}
	return &Store{filePath: filepath.Join(configDir, "config.toml")}, nil
}

// Path returns the location of the configuration file.
func (s *Store) Path() string {
	return s.filePath
}

// Load returns the stored credentials. A missing file yields empty credentials.
func (s *Store) Load() (domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.read()
	if err != nil {
		return domain.Credentials{}, err
	}
	return domain.Credentials{Username: cfg.Username, Token: cfg.Token}, nil
}

// Settings returns the stored run settings.
func (s *Store) Settings() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.read()
	if err != nil {
		return Settings{}, err
	}
	return cfg.Settings, nil
}

func (s *Store) StoreUsername(username string) error {
	return s.update(func(cfg *fileConfig) { cfg.Username = username })
}

func (s *Store) StoreToken(token string) error {
	return s.update(func(cfg *fileConfig) { cfg.Token = token })
}

func (s *Store) ClearUsername() error {
	return s.update(func(cfg *fileConfig) { cfg.Username = "" })
}

func (s *Store) ClearToken() error {
	return s.update(func(cfg *fileConfig) { cfg.Token = "" })
}

func (s *Store) update(mutate func(cfg *fileConfig)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.read()
	if err != nil {
		return err
	}
	mutate(&cfg)

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	// The file holds an access token.
	return os.WriteFile(s.filePath, data, 0600)
}

// read loads the file (caller must hold lock).
func (s *Store) read() (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", s.filePath, err)
	}
	return cfg, nil
}

// WithEnv overlays GITHUB_TOKEN and GHLOC_USERNAME on creds, loading a .env file
// from the working directory first if one exists.
func WithEnv(creds domain.Credentials) (domain.Credentials, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return creds, fmt.Errorf("failed to load .env: %w", err)
	}
	if v := os.Getenv(EnvUsername); v != "" {
		creds.Username = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		creds.Token = v
	}
	return creds, nil
}
