package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/integra-admin/integra/internal/users/domain"
	"github.com/integra-admin/integra/pkg/jwtx"
)

// ErrInvalidConfig wraps every configuration problem found at startup.
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Secret           string   `env:"AUTH_SECRET,required,notEmpty"`
	Issuer           string   `env:"AUTH_ISSUER,required,notEmpty"`
	Audience         []string `env:"AUTH_AUDIENCE,required,notEmpty" envSeparator:","`
	SelfServiceRoles []string `env:"AUTH_SELF_SERVICE_ROLES"         envSeparator:"," envDefault:"Admin"`

	DatabaseDriver string        `env:"AUTH_DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseFile   string        `env:"AUTH_DATABASE_FILE"   envDefault:"users.db"`
	DatabaseURL    string        `env:"AUTH_DATABASE_URL"`
	PepperFile     string        `env:"AUTH_PEPPER_FILE"     envDefault:"pepper"`
	StoreTimeout   time.Duration `env:"AUTH_STORE_TIMEOUT"   envDefault:"5s"`

	Env                 string        `env:"ENV"                   envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig reads the environment and validates the result.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the invariants env tags cannot express.
func (c Config) Validate() error {
	var errs []error

	if len(c.Secret) < jwtx.MinSecretSize {
		errs = append(errs, fmt.Errorf("AUTH_SECRET must be at least %d bytes", jwtx.MinSecretSize))
	}
	if strings.TrimSpace(c.Issuer) == "" {
		errs = append(errs, errors.New("AUTH_ISSUER is required"))
	}
	if len(c.Audience) == 0 {
		errs = append(errs, errors.New("AUTH_AUDIENCE is required"))
	}
	if _, err := c.selfServiceRoles(); err != nil {
		errs = append(errs, fmt.Errorf("AUTH_SELF_SERVICE_ROLES: %w", err))
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_FILE is required for sqlite"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_DATABASE_DRIVER %q is not one of sqlite, postgres", c.DatabaseDriver))
	}

	if c.StoreTimeout <= 0 {
		errs = append(errs, errors.New("AUTH_STORE_TIMEOUT must be positive"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) selfServiceRoles() ([]domain.RoleName, error) {
	roles := make([]domain.RoleName, 0, len(c.SelfServiceRoles))
	for _, s := range c.SelfServiceRoles {
		r, err := domain.ParseRoleName(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	if len(roles) == 0 {
		return nil, errors.New("at least one role is required")
	}
	return roles, nil
}
