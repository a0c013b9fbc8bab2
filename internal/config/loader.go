package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "TICKET_"
	envConfig  = "TICKET_CONFIG"
	envDotFile = "TICKET_ENV_FILE"
	defaultEnv = ".env"
)

// legacyEnv maps the unprefixed variable names used by existing deployments.
var legacyEnv = map[string]string{
	"DISCORD_TOKEN":      "discord_token",
	"GUILD_ID":           "guild_id",
	"TICKET_CHANNEL_ID":  "ticket_channel_id",
	"TICKET_CATEGORY_ID": "ticket_category_id",
	"STAFF_ROLE_ID":      "staff_role_id",
	"REDIS_ADDR":         "redis_addr",
}

// Load builds a Config by layering defaults, .env, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. .env file (TICKET_ENV_FILE, default ".env"); never overrides the real environment
//  3. file (YAML) if TICKET_CONFIG is set
//  4. legacy unprefixed env (DISCORD_TOKEN, GUILD_ID, ...)
//  5. env (prefix TICKET_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	k := koanf.New(".")

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	legacy := env.Provider("", ".", func(s string) string {
		return legacyEnv[s]
	})
	if err := k.Load(legacy, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// TICKET_QUEUE_SIZE -> queue_size; keys stay flat.
	prefixed := env.Provider(envPrefix, ".", func(s string) string {
		if s == envConfig || s == envDotFile {
			return ""
		}
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(prefixed, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotEnv() error {
	path := os.Getenv(envDotFile)
	if path == "" {
		path = defaultEnv
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("read %s: %w", path, err)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field constraints and reports every violation at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// ValidateBot checks the settings only the Discord runtime needs.
func (c *Config) ValidateBot() error {
	switch {
	case strings.TrimSpace(c.DiscordToken) == "":
		return fmt.Errorf("%w: discord_token must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.GuildID) == "":
		return fmt.Errorf("%w: guild_id must not be empty", ErrInvalidConfig)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " must not be empty"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of [" + fe.Param() + "]"
	case "url":
		return fe.Field() + " must be a valid URL"
	case "numeric":
		return fe.Field() + " must be numeric"
	default:
		return fe.Field() + " failed " + fe.Tag()
	}
}
