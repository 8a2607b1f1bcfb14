package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// WindowKind identifies the active variant of a TimeWindow
type WindowKind int

const (
	// WindowRelative is a signed delta counted back from now ("-10m")
	WindowRelative WindowKind = iota
	// WindowAbsolute is an explicit start/end pair
	WindowAbsolute
)

func (k WindowKind) String() string {
	switch k {
	case WindowRelative:
		return "relative"
	case WindowAbsolute:
		return "absolute"
	default:
		return "unknown"
	}
}

// TimeWindow is either a relative delta or an absolute range, never both.
// Build one with RelativeWindow or AbsoluteWindow.
type TimeWindow struct {
	kind  WindowKind
	delta string
	start time.Time
	end   time.Time
}

// RelativeWindow returns a window reaching back delta from now.
// The delta always carries a leading minus.
func RelativeWindow(delta string) TimeWindow {
	if !strings.HasPrefix(delta, "-") {
		delta = "-" + delta
	}
	return TimeWindow{kind: WindowRelative, delta: delta}
}

// AbsoluteWindow returns a window covering [start, end]
func AbsoluteWindow(start, end time.Time) TimeWindow {
	return TimeWindow{kind: WindowAbsolute, start: start, end: end}
}

// Kind reports which variant is active
func (w TimeWindow) Kind() WindowKind { return w.kind }

// IsRelative reports whether w is a relative delta
func (w TimeWindow) IsRelative() bool { return w.kind == WindowRelative }

// Delta returns the signed delta of a relative window, or "" for absolute windows
func (w TimeWindow) Delta() string {
	if w.kind != WindowRelative {
		return ""
	}
	return w.delta
}

// Start returns the range start of an absolute window, or the zero time
func (w TimeWindow) Start() time.Time {
	if w.kind != WindowAbsolute {
		return time.Time{}
	}
	return w.start
}

// End returns the range end of an absolute window, or the zero time
func (w TimeWindow) End() time.Time {
	if w.kind != WindowAbsolute {
		return time.Time{}
	}
	return w.end
}

// FromParam renders the API "from" value
func (w TimeWindow) FromParam() string {
	if w.kind == WindowAbsolute {
		return formatInstant(w.start)
	}
	return w.delta
}

// UntilParam renders the API "until" value. openEnd is what a relative
// window sends: "" for the iterate endpoint, "now" for search.
func (w TimeWindow) UntilParam(openEnd string) string {
	if w.kind == WindowAbsolute {
		return formatInstant(w.end)
	}
	return openEnd
}

// String renders the window as the query-string fragment sent upstream
func (w TimeWindow) String() string {
	return fmt.Sprintf("&from=%s&until=%s", url.QueryEscape(w.FromParam()), url.QueryEscape(w.UntilParam("")))
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Query is the filter text plus the window it is evaluated over
type Query struct {
	Text   string
	Window TimeWindow
}

// NewQuery builds a Query
func NewQuery(text string, window TimeWindow) Query {
	return Query{Text: text, Window: window}
}
