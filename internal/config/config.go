package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the process-wide configuration, loaded once at startup and
// passed by injection. Business logic never reads the environment directly.
type Config struct {
	Env        string `yaml:"env" env:"INKPOST_ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	DB         `yaml:"db"`
	Auth       `yaml:"auth"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"INKPOST_ADDRESS" env-default:":3000"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"INKPOST_IDLE_TIMEOUT" env-default:"60s"`
	ReadTimeout time.Duration `yaml:"read_timeout" env:"INKPOST_READ_TIMEOUT" env-default:"10s"`
}

type DB struct {
	DSN string `yaml:"dsn" env:"INKPOST_DB_DSN"`
}

type Auth struct {
	SigningKey      string `yaml:"signing_key" env:"INKPOST_JWT_SECRET"`
	ContextKey      string `yaml:"context_key" env:"INKPOST_COOKIE_NAME" env-default:"access_token"`
	TokenExpiration int    `yaml:"token_expiration" env:"INKPOST_TOKEN_EXPIRATION" env-default:"1"`
	Issuer          string `yaml:"issuer" env:"INKPOST_ISSUER" env-default:"inkpost"`
	BcryptCost      int    `yaml:"bcrypt_cost" env:"INKPOST_BCRYPT_COST" env-default:"12"`
}

// MustLoad reads configuration from an optional YAML file plus environment
// overrides. Missing secrets abort startup rather than degrade silently.
func MustLoad(configPath string) *Config {
	config, err := load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if config.Auth.SigningKey == "" {
		panic("missing token signing key: set INKPOST_JWT_SECRET or auth.signing_key")
	}

	if config.DB.DSN == "" {
		panic("missing database DSN: set INKPOST_DB_DSN or db.dsn")
	}

	return config
}

func load(path string) (*Config, error) {
	var config Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &config); err != nil {
			return nil, err
		}
		return &config, nil
	}

	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// IsLocal reports whether we run in the local development environment.
// Cookie security attributes are relaxed only here.
func (c *Config) IsLocal() bool {
	return c.Env == "local"
}

// Getters below satisfy the injection interfaces declared by consumers.

func (a Auth) GetSigningKey() string   { return a.SigningKey }
func (a Auth) GetContextKey() string   { return a.ContextKey }
func (a Auth) GetTokenExpiration() int { return a.TokenExpiration }
func (a Auth) GetIssuer() string       { return a.Issuer }
func (a Auth) GetBcryptCost() int      { return a.BcryptCost }
