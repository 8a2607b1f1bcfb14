// Package engine runs one report end to end: resolve the window, count the
// baseline, page through the query, aggregate, rank and hand the result to a sink.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vburojevic/faultline/internal/aggregate"
	"github.com/vburojevic/faultline/internal/config"
	"github.com/vburojevic/faultline/internal/domain"
	"github.com/vburojevic/faultline/internal/loggly"
	"github.com/vburojevic/faultline/internal/output"
	"github.com/vburojevic/faultline/internal/timewindow"
)

// Engine runs reports against one log search account
type Engine struct {
	cfg       *config.Config
	sink      output.Sink
	client    loggly.Getter
	endpoints loggly.Endpoints
	fetcher   *loggly.Fetcher
	baseline  *loggly.Baseline
	resolver  *timewindow.Resolver
	clock     clock.Clock
	loc       *time.Location
	logger    *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithGetter replaces the HTTP client
func WithGetter(g loggly.Getter) Option {
	return func(e *Engine) { e.client = g }
}

// WithClock sets the clock used for "now"
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLocation sets the zone wall-clock anchors are read in
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine. cfg is read, never modified.
func New(cfg *config.Config, sink output.Sink, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		sink:   sink,
		clock:  clock.New(),
		loc:    time.Local,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.client == nil {
		e.client = loggly.NewClient(loggly.ClientConfig{
			APIKey:            cfg.APIKey,
			Timeout:           cfg.HTTP.Timeout,
			Attempts:          cfg.HTTP.Attempts,
			RetryDelay:        cfg.HTTP.RetryDelay,
			RequestsPerSecond: cfg.HTTP.RequestsPerSecond,
		}, e.logger)
	}

	e.endpoints = loggly.NewEndpoints(cfg.BaseURI, cfg.SearchURI, cfg.HTTP.PageSize)
	e.fetcher = loggly.NewFetcher(e.client, e.endpoints, cfg.HTTP.MaxPages, e.logger)
	e.baseline = loggly.NewBaseline(e.client, e.endpoints, e.logger)
	e.resolver = timewindow.NewResolver(
		timewindow.WithClock(e.clock),
		timewindow.WithLocation(e.loc),
		timewindow.WithDefaultDelta(cfg.Reports.DefaultTime),
		timewindow.WithLogger(e.logger),
	)
	return e
}

// run tags every log line of one report with a fresh run id
func (e *Engine) run(report string) *zap.Logger {
	return e.logger.With(zap.String("run_id", uuid.NewString()), zap.String("report", report))
}

// collect announces q, pages through it and folds every page into agg
func (e *Engine) collect(ctx context.Context, log *zap.Logger, q domain.Query, agg *aggregate.Aggregator) error {
	if err := e.sink.Notice(output.Notice{
		Query: q.Text,
		From:  q.Window.FromParam(),
		Until: q.Window.UntilParam(""),
	}); err != nil {
		return err
	}

	uri := e.endpoints.Iterate(q)
	for page, err := range e.fetcher.Pages(ctx, uri) {
		if err != nil {
			return fmt.Errorf("fetch events: %w", err)
		}
		agg.Add(page)
		log.Debug("events_count", zap.Int("events_count", agg.Fetched()), zap.Int("distinct", agg.Table().Len()))
	}

	log.Debug("collected",
		zap.Int("pages", agg.Pages()),
		zap.Int("events", agg.Fetched()),
		zap.Int("matched", agg.Matched()))
	return nil
}

func (e *Engine) extractor(name string, normalize bool) (aggregate.Extractor, error) {
	x, err := aggregate.Lookup(name)
	if err != nil {
		return nil, err
	}
	if normalize {
		x = aggregate.Normalize(x)
	}
	return x, nil
}
