package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/xentee/skinticket/internal/adapters/http/api"
	"github.com/xentee/skinticket/internal/config"
	"github.com/xentee/skinticket/internal/domain/model"
	"github.com/xentee/skinticket/internal/domain/types"
	"github.com/xentee/skinticket/pkg/logger"
)

type adminDeps struct{}

func (adminDeps) Search(_ context.Context, q string) []model.Candidate {
	if q == "empty" {
		return nil
	}
	return []model.Candidate{
		{Name: "AK-47 | Redline", MarketIdentifier: "AK-47 | Redline", Category: model.CategorySkin},
		{Name: "Sport Gloves | Vice", MarketIdentifier: "Sport Gloves | Vice", Category: model.CategoryGloves},
	}
}

func (adminDeps) Stats(context.Context) types.Stats {
	return types.Stats{Started: true, Uptime: "1m0s", ActiveSessions: 2, QueueCapacity: 64, Workers: 4}
}

func execute(args ...string) (string, error) {
	return executeWith(logger.NewNop(), args...)
}

func executeWith(log logger.Logger, args ...string) (string, error) {
	cmd := newRootCmd(log)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPrettifyCmd(t *testing.T) {
	Convey("Given raw scraped names", t, func() {
		Convey("When printing plain output", func() {
			out, err := execute("prettify", "AK-47RedLine", "Sport GlovesVice")

			Convey("Then one cleaned name per line is printed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldEqual, "AK-47 | RedLine\nSport Gloves | Vice\n")
			})
		})

		Convey("When asking for JSON", func() {
			out, err := execute("--json", "prettify", "AK-47RedLine")

			Convey("Then raw names map to cleaned ones", func() {
				So(err, ShouldBeNil)
				var got map[string]string
				So(json.Unmarshal([]byte(out), &got), ShouldBeNil)
				So(got["AK-47RedLine"], ShouldEqual, "AK-47 | RedLine")
			})
		})

		Convey("When no argument is given", func() {
			_, err := execute("prettify")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestPrintResolve(t *testing.T) {
	Convey("Given a resolve response", t, func() {
		resp := types.ResolveResponse{
			Query:      "redline",
			Count:      1,
			Candidates: []types.Candidate{{Rank: 1, Name: "AK-47 | Redline", MarketIdentifier: "AK-47 | Redline", Category: "skin"}},
		}

		Convey("Then the table lists every candidate", func() {
			var buf bytes.Buffer
			So(printResolve(&buf, false, resp), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "MARKET ID")
			So(buf.String(), ShouldContainSubstring, "AK-47 | Redline")
		})

		Convey("Then JSON output round-trips", func() {
			var buf bytes.Buffer
			So(printResolve(&buf, true, resp), ShouldBeNil)
			var got types.ResolveResponse
			So(json.Unmarshal(buf.Bytes(), &got), ShouldBeNil)
			So(got, ShouldResemble, resp)
		})

		Convey("Then an empty result says so", func() {
			var buf bytes.Buffer
			So(printResolve(&buf, false, types.ResolveResponse{Query: "zzz"}), ShouldBeNil)
			So(buf.String(), ShouldEqual, "no items found for \"zzz\"\n")
		})
	})
}

func TestAdminCommands(t *testing.T) {
	Convey("Given a running admin API", t, func() {
		mux := http.NewServeMux()
		api.NewServer(adminDeps{}).Register(mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When reading stats", func() {
			out, err := execute("stats", "--url", srv.URL)

			Convey("Then the snapshot is summarised on one line", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "started=true")
				So(out, ShouldContainSubstring, "sessions=2")
				So(out, ShouldContainSubstring, "workers=0/4")
			})
		})

		Convey("When probing two queries", func() {
			out, err := execute("probe", "--url", srv.URL, "--workers", "2", "ak redline", "empty")

			Convey("Then the report counts each outcome", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "sent 2: found 1, empty 1, rejected 0, failed 0")
				So(out, ShouldContainSubstring, "AK-47 | Redline")
			})
		})
	})
}

func TestCommandsWithoutGlobalLogger(t *testing.T) {
	Convey("Given a root command built without a logger", t, func() {
		mux := http.NewServeMux()
		api.NewServer(adminDeps{}).Register(mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When a replay runs against the admin API", func() {
			var (
				out string
				err error
			)
			run := func() { out, err = executeWith(nil, "probe", "--url", srv.URL, "ak redline") }

			Convey("Then it completes on the no-op logger", func() {
				So(run, ShouldNotPanic)
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "found 1")
			})
		})

		Convey("When a logger is injected", func() {
			rec := &recordingLogger{}
			_, err := executeWith(rec, "probe", "--url", srv.URL, "ak redline")

			Convey("Then the subcommand logs through it", func() {
				So(err, ShouldBeNil)
				So(rec.messages(), ShouldContain, "starting resolve probe")
			})
		})
	})
}

// recordingLogger keeps Info messages so tests can see which logger a
// subcommand used.
type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recordingLogger) Named(string) logger.Logger { return r }

func (r *recordingLogger) Info(_ context.Context, msg string, _ ...logger.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingLogger) Warn(context.Context, string, ...logger.Field)  {}
func (r *recordingLogger) Error(context.Context, string, ...logger.Field) {}
func (r *recordingLogger) Debug(context.Context, string, ...logger.Field) {}
func (r *recordingLogger) Fatal(context.Context, string, ...logger.Field) {}

func (r *recordingLogger) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

func TestPostPanelCmd(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("TICKET_DISCORD_TOKEN", "")

	Convey("Given no Discord token", t, func() {
		Convey("Then posting the panel fails before dialing", func() {
			_, err := execute("post-panel")
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})
	})
}
