package dispatch

import (
	"context"
	"strings"

	"github.com/vburojevic/faultline/internal/domain"
	"github.com/vburojevic/faultline/internal/engine"
)

// Reports is the report surface the command routes drive
type Reports interface {
	Logs(ctx context.Context, req engine.LogsRequest) (*domain.Report, error)
	Rollup(ctx context.Context, req engine.RollupRequest) (*domain.Ranking, error)
	URLs(ctx context.Context, req engine.URLsRequest) (*domain.Ranking, error)
	Hourly(ctx context.Context, req engine.HourlyRequest) (*domain.HourlyReport, error)
}

// Preset names used by the one-off routes
const (
	PresetOneOff       = "oneoff"
	PresetOneOffEndeca = "oneoff-endeca"
)

// NewCommandRouter registers the report commands:
//
//	logs [TIME [FROM...]]
//	rollup FILTER [TIME]
//	oneoff | oneoffendeca
//	hourlyoneoff | hourlyrollup | hourlyrunoff
func NewCommandRouter(reports Reports) *Router {
	r := NewRouter()

	r.Handle("logs", `^logs\s+([\w-]+)\s*(.*)$`, "logs TIME [FROM]  fault counts as a share of requests",
		func(ctx context.Context, args []string) error {
			_, err := reports.Logs(ctx, engine.LogsRequest{Time: args[0], From: strings.TrimSpace(args[1])})
			return err
		})
	r.Handle("logs", `^logs$`, "logs  fault counts over the default window",
		func(ctx context.Context, _ []string) error {
			_, err := reports.Logs(ctx, engine.LogsRequest{})
			return err
		})
	r.Handle("oneoff", `^oneoff$`, "oneoff  404 URL counts written to CSV",
		func(ctx context.Context, _ []string) error {
			_, err := reports.URLs(ctx, engine.URLsRequest{Preset: PresetOneOff})
			return err
		})
	r.Handle("oneoffendeca", `^oneoffendeca$`, "oneoffendeca  malformed payload URL counts written to CSV",
		func(ctx context.Context, _ []string) error {
			_, err := reports.URLs(ctx, engine.URLsRequest{Preset: PresetOneOffEndeca})
			return err
		})
	r.Handle("rollup", `^rollup\s+([\w=.-]+)\s*([-0-9smhd]*)$`, "rollup FILTER [TIME]  top URLs for a fault",
		func(ctx context.Context, args []string) error {
			_, err := reports.Rollup(ctx, engine.RollupRequest{Filter: args[0], Time: args[1]})
			return err
		})

	hourly := func(ctx context.Context, _ []string) error {
		_, err := reports.Hourly(ctx, engine.HourlyRequest{Hours: 1})
		return err
	}
	for _, name := range []string{"hourlyoneoff", "hourlyrollup", "hourlyrunoff"} {
		r.Handle(name, "^"+name+"$", name+"  request total of the last hour", hourly)
	}
	return r
}
