// Package config loads the zentask settings and wires the datastore,
// repositories and auth case that both binaries share.
package config

import (
	"fmt"
	"time"

	"github.com/jrazmi/zentask/core/cases/authcase"
	"github.com/jrazmi/zentask/sdk/environment"
	"github.com/jrazmi/zentask/sdk/logger"
	"github.com/jrazmi/zentask/sdk/passwords"
	"github.com/jrazmi/zentask/sdk/tokens"
)

// AppName is the env prefix for every setting.
const AppName = "ZENTASK"

// Drivers accepted by DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// StoreConfig selects and prepares the database.
type StoreConfig struct {
	DBDriver    string `env:"DB_DRIVER" default:"sqlite" oneof:"postgres,sqlite"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" default:"true"`
	Timezone    string `env:"TIMEZONE" default:"Local"`
}

// LoadStore parses only the datastore settings, for commands that never
// issue tokens.
func LoadStore(prefix string) (StoreConfig, error) {
	var cfg StoreConfig
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return StoreConfig{}, fmt.Errorf("parsing store config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return StoreConfig{}, err
	}
	return cfg, nil
}

// Location resolves TIMEZONE. "Local" is the host zone.
func (c StoreConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Config is the site configuration read from ZENTASK_* variables.
type Config struct {
	StoreConfig

	APIRoute string `env:"API_ROUTE" default:"/api"`

	JWTSigningKey string        `env:"JWT_SIGNING_KEY" required:"true"`
	JWTIssuer     string        `env:"JWT_ISSUER" default:"zentask"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" default:"168h"`
	RememberTTL   time.Duration `env:"REMEMBER_TTL" default:"720h"`
	BcryptCost    int           `env:"BCRYPT_COST" default:"12"`
}

// Load parses the full configuration for prefix.
func Load(prefix string) (Config, error) {
	var cfg Config
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing zentask config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Site is everything a handler tree or command needs.
type Site struct {
	Build     string
	Log       *logger.Logger
	Config    Config
	Datastore *Datastore
	Auth      *authcase.Case
}

// NewSite builds the auth case on top of an opened datastore.
func NewSite(build string, log *logger.Logger, cfg Config, ds *Datastore) (*Site, error) {
	issuer, err := tokens.NewIssuer(cfg.JWTSigningKey, cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	auth := authcase.NewCase(log,
		ds.Repositories.Users,
		ds.Repositories.Projects,
		ds.Repositories.Tx,
		passwords.NewHasher(cfg.BcryptCost),
		issuer,
		authcase.Config{TokenTTL: cfg.TokenTTL, RememberTTL: cfg.RememberTTL},
	)

	return &Site{
		Build:     build,
		Log:       log,
		Config:    cfg,
		Datastore: ds,
		Auth:      auth,
	}, nil
}
