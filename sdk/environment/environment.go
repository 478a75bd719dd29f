// Package environment loads process configuration from env vars and
// optional .env files.
package environment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file from the working directory when one exists.
// A missing file is not an error; deployments set real env vars.
func LoadEnv() error {
	return LoadPath("")
}

// LoadPath loads the .env file at p, or ./.env when p is empty.
// Variables already present in the process environment win.
func LoadPath(p string) error {
	var err error
	if p != "" {
		err = godotenv.Load(p)
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// GetEnvOrDefault returns the value of key, or fallback if it is unset.
func GetEnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvKeyPrefix joins prefix and key with an underscore.
//
//	GetEnvKeyPrefix("ZENTASK", "PORT") // "ZENTASK_PORT"
//	GetEnvKeyPrefix("", "PORT")        // "PORT"
func GetEnvKeyPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", prefix, key)
}

// GetPrefixEnvOrDefault looks up prefix_key and falls back when unset.
func GetPrefixEnvOrDefault(prefix, key, fallback string) string {
	return GetEnvOrDefault(GetEnvKeyPrefix(prefix, key), fallback)
}
