package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/benchboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Persistence, convey.ShouldEqual, "file")
				convey.So(cfg.DataPath, convey.ShouldEqual, "benchboard.json")
				convey.So(cfg.LeaderboardSize, convey.ShouldEqual, 10)
				convey.So(cfg.OverviewSize, convey.ShouldEqual, 3)
				convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 100)
				convey.So(cfg.AdminToken, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("BENCHBOARD_ADDR", ":8080")
			_ = os.Setenv("BENCHBOARD_PERSISTENCE", "sqlite")
			_ = os.Setenv("BENCHBOARD_SQLITE_DSN", ":memory:")
			_ = os.Setenv("BENCHBOARD_LEADERBOARD_SIZE", "5")
			_ = os.Setenv("BENCHBOARD_ADMIN_TOKEN", "hunter2")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Persistence, convey.ShouldEqual, "sqlite")
				convey.So(cfg.SQLiteDSN, convey.ShouldEqual, ":memory:")
				convey.So(cfg.LeaderboardSize, convey.ShouldEqual, 5)
				convey.So(cfg.AdminToken, convey.ShouldEqual, "hunter2")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()

			dir := t.TempDir()
			path := filepath.Join(dir, "benchboard.yaml")
			yaml := "addr: \":7070\"\npersistence: file\ndata_path: /tmp/scores.json\noverview_size: 5\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o644), convey.ShouldBeNil)
			_ = os.Setenv("BENCHBOARD_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values should override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.DataPath, convey.ShouldEqual, "/tmp/scores.json")
				convey.So(cfg.OverviewSize, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When the persistence backend is unknown", func() {
			clearConfigEnvVars()
			_ = os.Setenv("BENCHBOARD_PERSISTENCE", "redis")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail validation", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the address is cleared", func() {
			clearConfigEnvVars()
			_ = os.Setenv("BENCHBOARD_ADDR", "")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail validation", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"BENCHBOARD_CONFIG",
		"BENCHBOARD_ADDR",
		"BENCHBOARD_PERSISTENCE",
		"BENCHBOARD_DATA_PATH",
		"BENCHBOARD_SQLITE_DSN",
		"BENCHBOARD_LEADERBOARD_SIZE",
		"BENCHBOARD_OVERVIEW_SIZE",
		"BENCHBOARD_MAX_LEADERBOARD_LIMIT",
		"BENCHBOARD_ADMIN_TOKEN",
		"BENCHBOARD_DIRECTORY_URL",
		"BENCHBOARD_IDENTITY_TIMEOUT_MS",
		"BENCHBOARD_LOG_LEVEL",
	} {
		_ = os.Unsetenv(key)
	}
}
