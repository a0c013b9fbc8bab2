package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/xentee/skinticket/internal/config"
)

var managedEnv = []string{
	"TICKET_CONFIG", "TICKET_ENV_FILE", "TICKET_ADDR", "TICKET_QUEUE_SIZE", "TICKET_WORKER_COUNT",
	"TICKET_MAX_CANDIDATES", "TICKET_MAX_RETRIES", "TICKET_FORCE_HTTP1", "TICKET_RATE_LIMIT_RPS",
	"TICKET_DISCORD_TOKEN", "TICKET_LOG_LEVEL", "DISCORD_TOKEN", "GUILD_ID", "TICKET_CHANNEL_ID",
	"TICKET_CATEGORY_ID", "STAFF_ROLE_ID", "REDIS_ADDR", "TICKET_BRAND_NAME",
}

func clearConfigEnvVars() {
	for _, k := range managedEnv {
		_ = os.Unsetenv(k)
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.FallbackThreshold, convey.ShouldEqual, 3)
				convey.So(cfg.MaxCandidates, convey.ShouldEqual, 15)
				convey.So(cfg.MaxRetries, convey.ShouldEqual, 0)
				convey.So(cfg.ResolveTimeoutMS, convey.ShouldEqual, 10000)
			})
		})

		convey.Convey("When loading config with prefixed environment variables", func() {
			_ = os.Setenv("TICKET_ADDR", ":8080")
			_ = os.Setenv("TICKET_QUEUE_SIZE", "128")
			_ = os.Setenv("TICKET_WORKER_COUNT", "8")
			_ = os.Setenv("TICKET_FORCE_HTTP1", "true")
			_ = os.Setenv("TICKET_RATE_LIMIT_RPS", "0.5")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with typed values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 128)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 8)
				convey.So(cfg.ForceHTTP1, convey.ShouldBeTrue)
				convey.So(cfg.RateLimitRPS, convey.ShouldEqual, 0.5)
			})
		})

		convey.Convey("When loading config with the legacy variable names", func() {
			_ = os.Setenv("DISCORD_TOKEN", "legacy-token")
			_ = os.Setenv("GUILD_ID", "111")
			_ = os.Setenv("TICKET_CHANNEL_ID", "222")
			_ = os.Setenv("TICKET_CATEGORY_ID", "333")
			_ = os.Setenv("STAFF_ROLE_ID", "444")

			cfg, err := config.Load(ctx)

			convey.Convey("Then the Discord settings are populated", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DiscordToken, convey.ShouldEqual, "legacy-token")
				convey.So(cfg.GuildID, convey.ShouldEqual, "111")
				convey.So(cfg.TicketChannelID, convey.ShouldEqual, "222")
				convey.So(cfg.TicketCategoryID, convey.ShouldEqual, "333")
				convey.So(cfg.StaffRoleID, convey.ShouldEqual, "444")
				convey.So(cfg.ValidateBot(), convey.ShouldBeNil)
			})

			convey.Convey("And the prefixed name wins over the legacy one", func() {
				_ = os.Setenv("TICKET_DISCORD_TOKEN", "prefixed-token")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DiscordToken, convey.ShouldEqual, "prefixed-token")
			})
		})

		convey.Convey("When loading config with a YAML file and env overrides", func() {
			path := writeTemp(t, "ticket.yaml", `
addr: ":9090"
queue_size: 32
worker_count: 2
brand_name: "Acme"
`)
			_ = os.Setenv("TICKET_CONFIG", path)
			_ = os.Setenv("TICKET_WORKER_COUNT", "6")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env overrides the file and the file overrides defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 32)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 6)
				convey.So(cfg.BrandName, convey.ShouldEqual, "Acme")
				convey.So(cfg.MaxCandidates, convey.ShouldEqual, 15)
			})
		})

		convey.Convey("When loading config with a .env file", func() {
			path := writeTemp(t, "bot.env", "DISCORD_TOKEN=from-dotenv\nTICKET_BRAND_NAME=Dotenv\n")
			_ = os.Setenv("TICKET_ENV_FILE", path)
			_ = os.Setenv("TICKET_BRAND_NAME", "Real")

			cfg, err := config.Load(ctx)

			convey.Convey("Then missing variables are filled but real ones win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DiscordToken, convey.ShouldEqual, "from-dotenv")
				convey.So(cfg.BrandName, convey.ShouldEqual, "Real")
			})
		})

		convey.Convey("When the .env file does not exist", func() {
			_ = os.Setenv("TICKET_ENV_FILE", "/non/existent/.env")

			_, err := config.Load(ctx)

			convey.Convey("Then it is ignored", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			path := writeTemp(t, "bad.yaml", `invalid: yaml: content: [`)
			_ = os.Setenv("TICKET_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("TICKET_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("TICKET_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with out of range values", func() {
			_ = os.Setenv("TICKET_MAX_CANDIDATES", "40")
			_ = os.Setenv("TICKET_MAX_RETRIES", "3")
			_ = os.Setenv("TICKET_LOG_LEVEL", "chatty")

			_, err := config.Load(ctx)

			convey.Convey("Then every violation is reported", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "max_candidates must be at most 25")
				convey.So(err.Error(), convey.ShouldContainSubstring, "max_retries must be at most 1")
				convey.So(err.Error(), convey.ShouldContainSubstring, "log_level must be one of")
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("TICKET_QUEUE_SIZE", "invalid")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}
