// Package config loads blockfall settings from the environment, optionally
// seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/plus3/blockfall/tetris"
)

const (
	EnvShiftDelay    = "BLOCKFALL_SHIFT_DELAY"
	EnvShiftInterval = "BLOCKFALL_SHIFT_INTERVAL"
	EnvDropInterval  = "BLOCKFALL_DROP_INTERVAL"
	EnvLookahead     = "BLOCKFALL_LOOKAHEAD"
	EnvSeed          = "BLOCKFALL_SEED"
	EnvCellSize      = "BLOCKFALL_CELL_SIZE"
	EnvDebugUI       = "BLOCKFALL_DEBUG_UI"

	DefaultCellSize = 30
)

// Config is everything a host needs to start a session.
type Config struct {
	Settings tetris.Settings
	// Seed seeds the session generator; zero means a random seed.
	Seed     uint64
	CellSize int
	DebugUI  bool
}

// Load reads the given .env files (".env" when none are named), then the
// environment. Missing files are skipped; variables already set in the environment
// win over file values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Printf("No %s file found, using environment variables", file)
				continue
			}
			return Config{}, fmt.Errorf("loading %s: %w", file, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables, falling back to defaults.
func FromEnv() (Config, error) {
	cfg := Config{
		Settings: tetris.DefaultSettings(),
		CellSize: DefaultCellSize,
	}

	var err error
	if cfg.Settings.ShiftDelay, err = getEnvAsDuration(EnvShiftDelay, cfg.Settings.ShiftDelay); err != nil {
		return Config{}, err
	}
	if cfg.Settings.ShiftInterval, err = getEnvAsDuration(EnvShiftInterval, cfg.Settings.ShiftInterval); err != nil {
		return Config{}, err
	}
	if cfg.Settings.DropInterval, err = getEnvAsDuration(EnvDropInterval, cfg.Settings.DropInterval); err != nil {
		return Config{}, err
	}
	if cfg.Settings.Lookahead, err = getEnvAsInt(EnvLookahead, cfg.Settings.Lookahead); err != nil {
		return Config{}, err
	}
	if cfg.Seed, err = getEnvAsUint(EnvSeed, 0); err != nil {
		return Config{}, err
	}
	if cfg.CellSize, err = getEnvAsInt(EnvCellSize, cfg.CellSize); err != nil {
		return Config{}, err
	}
	if cfg.DebugUI, err = getEnvAsBool(EnvDebugUI, false); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Settings.Validate(); err != nil {
		return err
	}
	if c.CellSize < 1 {
		return fmt.Errorf("%s: cell size %d must be positive", EnvCellSize, c.CellSize)
	}
	return nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func getEnvAsUint(key string, defaultValue uint64) (uint64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}
