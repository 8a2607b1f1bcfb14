// Package timewindow turns free-text time expressions into query windows.
package timewindow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/benbjohnson/clock"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"go.uber.org/zap"

	"github.com/vburojevic/faultline/internal/domain"
)

// DefaultDelta is used when the relative expression carries no digit
const DefaultDelta = "-10m"

var (
	digitRe = regexp.MustCompile(`\d`)
	// 24h wall clock: 0430, 04:30, 430, 16:05
	clockRe = regexp.MustCompile(`^(\d{1,2}):?(\d{2})$`)
)

// TimeParseError reports an absolute expression that resolved to nothing
type TimeParseError struct {
	Text string
	Err  error
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("%s was unable to be parsed- try 24h time.", e.Text)
}

func (e *TimeParseError) Unwrap() error { return e.Err }

// Resolver resolves relative deltas and absolute anchors into a TimeWindow
type Resolver struct {
	clock        clock.Clock
	loc          *time.Location
	parser       *when.Parser
	defaultDelta string
	logger       *zap.Logger
}

// Option configures a Resolver
type Option func(*Resolver)

// WithClock sets the clock used for "now"
func WithClock(c clock.Clock) Option {
	return func(r *Resolver) { r.clock = c }
}

// WithLocation sets the zone bare wall-clock expressions are read in
func WithLocation(loc *time.Location) Option {
	return func(r *Resolver) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithDefaultDelta overrides DefaultDelta
func WithDefaultDelta(delta string) Option {
	return func(r *Resolver) {
		if delta != "" {
			r.defaultDelta = delta
		}
	}
}

// WithLogger attaches a logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a resolver reading the real clock in the local zone
func NewResolver(opts ...Option) *Resolver {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r := &Resolver{
		clock:        clock.New(),
		loc:          time.Local,
		parser:       w,
		defaultDelta: DefaultDelta,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve combines a relative expression and an optional absolute anchor.
// Without an anchor the window stays relative. With one, the window runs from
// the anchor forward by the magnitude of the delta.
func (r *Resolver) Resolve(relativeExpr, absoluteExpr string) (domain.TimeWindow, error) {
	delta := r.Delta(relativeExpr)

	absoluteExpr = strings.TrimSpace(absoluteExpr)
	if absoluteExpr == "" {
		return domain.RelativeWindow(delta), nil
	}

	anchor, err := r.Anchor(absoluteExpr)
	if err != nil {
		return domain.TimeWindow{}, err
	}

	period, err := Period(delta)
	if err != nil {
		return domain.TimeWindow{}, &TimeParseError{Text: relativeExpr, Err: err}
	}

	r.logger.Debug("resolved absolute window",
		zap.Time("start", anchor),
		zap.Duration("period", period))
	return domain.AbsoluteWindow(anchor, anchor.Add(period)), nil
}

// Delta normalizes a relative expression: no digit means the default, anything
// else is taken whole and given a leading minus. Units are not validated.
func (r *Resolver) Delta(expr string) string {
	expr = strings.TrimSpace(expr)
	if !digitRe.MatchString(expr) {
		return r.defaultDelta
	}
	r.logger.Debug("suspected time", zap.String("expr", expr))
	if !strings.HasPrefix(expr, "-") {
		expr = "-" + expr
	}
	return expr
}

// Anchor resolves an absolute expression to an instant, preferring the past
func (r *Resolver) Anchor(expr string) (time.Time, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return time.Time{}, &TimeParseError{Text: expr, Err: fmt.Errorf("empty expression")}
	}
	now := r.clock.Now().In(r.loc)

	if t, ok := r.wallClock(expr, now); ok {
		r.logger.Debug("anchor from wall clock", zap.String("expr", expr), zap.Time("anchor", t))
		return t, nil
	}

	if t, err := dateparse.ParseIn(expr, r.loc); err == nil {
		r.logger.Debug("anchor from timestamp", zap.String("expr", expr), zap.Time("anchor", t))
		return t, nil
	}

	res, err := r.parser.Parse(expr, now)
	if err != nil {
		return time.Time{}, &TimeParseError{Text: expr, Err: err}
	}
	if res == nil {
		return time.Time{}, &TimeParseError{Text: expr, Err: fmt.Errorf("no time expression found")}
	}

	t := res.Time
	if t.After(now) {
		t = t.AddDate(0, 0, -1)
	}
	r.logger.Debug("anchor from natural language", zap.String("expr", expr), zap.Time("anchor", t))
	return t, nil
}

// wallClock reads "0430"-style times as today, or yesterday when that would be in the future
func (r *Resolver) wallClock(expr string, now time.Time) (time.Time, bool) {
	m := clockRe.FindStringSubmatch(expr)
	if m == nil {
		return time.Time{}, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return time.Time{}, false
	}

	t := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, r.loc)
	if t.After(now) {
		t = t.AddDate(0, 0, -1)
	}
	return t, true
}
