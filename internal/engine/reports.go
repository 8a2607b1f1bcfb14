package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vburojevic/faultline/internal/aggregate"
	"github.com/vburojevic/faultline/internal/domain"
	"github.com/vburojevic/faultline/internal/filter"
	"github.com/vburojevic/faultline/internal/output"
	"github.com/vburojevic/faultline/internal/report"
)

// LogsRequest asks for the fault report of a query
type LogsRequest struct {
	Time      string // relative delta, e.g. "10m"
	From      string // optional absolute anchor
	Query     string // overrides the configured query
	Extractor string // defaults to "fault"
	Top       int    // 0 keeps every row
	Normalize bool
	Filter    filter.Filter
}

// Logs counts keys of the main query and reports each as a share of the
// baseline request count
func (e *Engine) Logs(ctx context.Context, req LogsRequest) (*domain.Report, error) {
	log := e.run("logs")

	window, err := e.resolver.Resolve(req.Time, req.From)
	if err != nil {
		return nil, err
	}

	extractor := req.Extractor
	if extractor == "" {
		extractor = aggregate.ExtractFault
	}
	x, err := e.extractor(extractor, req.Normalize)
	if err != nil {
		return nil, err
	}

	text := req.Query
	if text == "" {
		text = e.cfg.Query
	}
	q := domain.NewQuery(text, window)

	baseline, err := e.baseline.Total(ctx, domain.NewQuery(e.cfg.RequestsQuery, window))
	if err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}
	log.Debug("baseline", zap.Int("total", baseline), zap.String("window", window.String()))
	if baseline == 0 {
		return nil, report.ErrZeroBaseline
	}

	agg := aggregate.New(x, req.Filter)
	if err := e.collect(ctx, log, q, agg); err != nil {
		return nil, err
	}

	r, err := report.Format(domain.ReportFaults, agg.Table(), baseline, agg.Fetched(), req.Top)
	if err != nil {
		return nil, err
	}
	r.Query = q.Text
	r.From = window.FromParam()
	r.Until = window.UntilParam("now")

	if err := e.sink.Report(r); err != nil {
		return nil, err
	}
	return r, nil
}

// RollupRequest asks for the URLs that carry faults matching Filter
type RollupRequest struct {
	Filter    string // substituted into the rollup query, e.g. "fault=call.timeout"
	Time      string
	From      string
	Top       int // 0 uses the configured default
	Normalize bool
	Events    filter.Filter
}

// Rollup ranks the URLs of faulted events matching the rollup filter
func (e *Engine) Rollup(ctx context.Context, req RollupRequest) (*domain.Ranking, error) {
	log := e.run("rollup")

	if strings.TrimSpace(req.Filter) == "" {
		return nil, fmt.Errorf("rollup filter is empty")
	}
	window, err := e.resolver.Resolve(req.Time, req.From)
	if err != nil {
		return nil, err
	}
	x, err := e.extractor(aggregate.ExtractRollup, req.Normalize)
	if err != nil {
		return nil, err
	}

	q := domain.NewQuery(fmt.Sprintf(e.cfg.Reports.RollupQuery, req.Filter), window)
	agg := aggregate.New(x, req.Events)
	if err := e.collect(ctx, log, q, agg); err != nil {
		return nil, err
	}

	top := req.Top
	if top <= 0 {
		top = e.cfg.Reports.RollupTop
	}
	if top <= 0 {
		top = report.DefaultRollupTop
	}

	r := report.Rank(domain.ReportRollup, agg.Table(), top)
	r.Query = q.Text
	r.Events = agg.Fetched()
	if err := e.sink.Ranking(r); err != nil {
		return nil, err
	}
	return r, nil
}

// URLsRequest runs a one-off URL count, usually from a named preset.
// Explicit fields override the preset.
type URLsRequest struct {
	Preset    string
	Query     string
	Time      string
	From      string
	Extractor string
	Output    string // CSV path; "-" skips the file
	Normalize bool
	Filter    filter.Filter
}

// URLs counts every extracted key of a query and writes the full table as CSV
func (e *Engine) URLs(ctx context.Context, req URLsRequest) (*domain.Ranking, error) {
	log := e.run("urls")

	if req.Preset != "" {
		p, ok := e.cfg.Preset(req.Preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", req.Preset, strings.Join(e.cfg.PresetNames(), ", "))
		}
		req.Query = firstNonEmpty(req.Query, p.Query)
		req.Time = firstNonEmpty(req.Time, p.Time)
		req.From = firstNonEmpty(req.From, p.From)
		req.Extractor = firstNonEmpty(req.Extractor, p.Extractor)
		req.Output = firstNonEmpty(req.Output, p.Output)
	}
	if req.Query == "" {
		return nil, fmt.Errorf("no query given")
	}

	window, err := e.resolver.Resolve(req.Time, req.From)
	if err != nil {
		return nil, err
	}
	x, err := e.extractor(firstNonEmpty(req.Extractor, aggregate.ExtractURL), req.Normalize)
	if err != nil {
		return nil, err
	}

	q := domain.NewQuery(req.Query, window)
	agg := aggregate.New(x, req.Filter)
	if err := e.collect(ctx, log, q, agg); err != nil {
		return nil, err
	}

	r := report.Rank(domain.ReportURLs, agg.Table(), 0)
	r.Query = q.Text
	r.Events = agg.Fetched()
	if err := e.sink.Ranking(r); err != nil {
		return nil, err
	}

	if req.Output != "" && req.Output != "-" {
		if err := output.WriteCSVFile(req.Output, r.Entries); err != nil {
			return nil, err
		}
		log.Debug("csv written", zap.String("path", req.Output), zap.Int("rows", len(r.Entries)))
		if err := e.sink.FileCreated(req.Output, len(r.Entries)); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// HourlyRequest asks for the request total of a query per hour
type HourlyRequest struct {
	Hours int    // buckets; values below 1 mean 1
	Query string // overrides the configured hourly query
	From  string // optional anchor of the first bucket
}

// Hourly counts a query per hour. One hour without an anchor is a single
// relative "-1h" search; everything else is split into absolute hour buckets.
func (e *Engine) Hourly(ctx context.Context, req HourlyRequest) (*domain.HourlyReport, error) {
	log := e.run("hourly")

	hours := max(req.Hours, 1)
	text := firstNonEmpty(req.Query, e.cfg.Reports.HourlyQuery)
	h := &domain.HourlyReport{Type: "hourly", Kind: domain.ReportHourly, Query: text}

	now := e.clock.Now().In(e.loc)
	var start time.Time
	switch {
	case req.From != "":
		anchor, err := e.resolver.Anchor(req.From)
		if err != nil {
			return nil, err
		}
		start = anchor
	case hours == 1:
		total, err := e.hourTotal(ctx, domain.NewQuery(text, domain.RelativeWindow("-1h")))
		if err != nil {
			return nil, err
		}
		h.Buckets = []domain.HourBucket{{Start: now.Add(-time.Hour), End: now, Total: total}}
		h.Total = total
		return h, e.sink.Hourly(h)
	default:
		start = now.Add(-time.Duration(hours) * time.Hour)
	}

	for i := range hours {
		bStart := start.Add(time.Duration(i) * time.Hour)
		bEnd := bStart.Add(time.Hour)
		total, err := e.hourTotal(ctx, domain.NewQuery(text, domain.AbsoluteWindow(bStart, bEnd)))
		if err != nil {
			return nil, err
		}
		log.Debug("hour", zap.Time("start", bStart), zap.Int("total", total))
		h.Buckets = append(h.Buckets, domain.HourBucket{Start: bStart, End: bEnd, Total: total})
		h.Total += total
	}
	return h, e.sink.Hourly(h)
}

func (e *Engine) hourTotal(ctx context.Context, q domain.Query) (int, error) {
	total, err := e.baseline.Total(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("count %q: %w", q.Text, err)
	}
	return total, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
