package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/benchboard/internal/adapters/http/api"
	"github.com/okian/benchboard/internal/adapters/persistence"
	app "github.com/okian/benchboard/internal/app"
	"github.com/okian/benchboard/internal/config"
	"github.com/okian/benchboard/internal/domain/types"
	"github.com/okian/benchboard/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("BENCHBOARD_ADDR", ":8080")
			_ = os.Setenv("BENCHBOARD_PERSISTENCE", "sqlite")
			_ = os.Setenv("BENCHBOARD_SQLITE_DSN", ":memory:")
			defer func() {
				_ = os.Unsetenv("BENCHBOARD_ADDR")
				_ = os.Unsetenv("BENCHBOARD_PERSISTENCE")
				_ = os.Unsetenv("BENCHBOARD_SQLITE_DSN")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Persistence, convey.ShouldEqual, "sqlite")
			})
		})

		convey.Convey("When testing persister selection", func() {
			dir := t.TempDir()

			convey.Convey("Then the file backend should be the default", func() {
				cfg := config.New()
				cfg.DataPath = filepath.Join(dir, "scores.json")
				p, err := newPersister(cfg)
				convey.So(err, convey.ShouldBeNil)
				convey.So(p.Name(), convey.ShouldEqual, "file")
			})

			convey.Convey("And the sqlite backend should open", func() {
				cfg := config.New()
				cfg.Persistence = "sqlite"
				cfg.SQLiteDSN = ":memory:"
				p, err := newPersister(cfg)
				convey.So(err, convey.ShouldBeNil)
				convey.So(p.Name(), convey.ShouldEqual, "sqlite")
				convey.So(p.Close(), convey.ShouldBeNil)
			})
		})
	})
}

func TestEndToEnd(t *testing.T) {
	convey.Convey("Given a running service behind the HTTP API", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "scores.json")

		svc := app.New(app.WithPersister(persistence.NewFilePersister(path)))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, svc, 100, "secret").Register(ctx, mux)

		post := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest("POST", "/scores", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			return w
		}

		convey.Convey("When users submit scores", func() {
			w := post(`{"category":"cpu","user_id":1,"score":95.5}`)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)

			w = post(`{"category":"cpu","user_id":1,"score":90}`)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			var rejected types.SubmitResult
			convey.So(json.Unmarshal(w.Body.Bytes(), &rejected), convey.ShouldBeNil)
			convey.So(rejected.Accepted, convey.ShouldBeFalse)

			w = post(`{"category":"cpu","user_id":2,"score":99}`)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)

			convey.Convey("Then the leaderboard should rank them", func() {
				req := httptest.NewRequest("GET", "/leaderboard/cpu", nil)
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, req)
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)

				var entries []types.Entry
				convey.So(json.Unmarshal(rec.Body.Bytes(), &entries), convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 2)
				convey.So(entries[0].UserID, convey.ShouldEqual, 2)
				convey.So(entries[0].Score, convey.ShouldEqual, 99.0)
				convey.So(entries[1].UserID, convey.ShouldEqual, 1)
				convey.So(entries[1].Score, convey.ShouldEqual, 95.5)
			})

			convey.Convey("And the state should be on disk", func() {
				data, err := os.ReadFile(path)
				convey.So(err, convey.ShouldBeNil)

				var doc map[string]map[string]float64
				convey.So(json.Unmarshal(data, &doc), convey.ShouldBeNil)
				convey.So(doc["cpu"]["1"], convey.ShouldEqual, 95.5)
				convey.So(doc["cpu"]["2"], convey.ShouldEqual, 99.0)
			})

			convey.Convey("And an admin can delete the category", func() {
				req := httptest.NewRequest("DELETE", "/categories/cpu", nil)
				req.Header.Set("X-Admin-Token", "secret")
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, req)
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)

				req = httptest.NewRequest("GET", "/categories", nil)
				rec = httptest.NewRecorder()
				mux.ServeHTTP(rec, req)

				var names []string
				convey.So(json.Unmarshal(rec.Body.Bytes(), &names), convey.ShouldBeNil)
				convey.So(names, convey.ShouldBeEmpty)
			})
		})
	})
}
