package filter

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/faultline/internal/domain"
)

func ev(raw string) domain.Event {
	return domain.NewEvent([]byte(raw))
}

var (
	timeoutEvent = ev(`{"id":"e1","event":{"json":{"level":"ERROR","fault":"call.timeout","status":504,
		"message":"request failed, url=https://shop.example.com/p/1, status=504"}}}`)
	refusedEvent = ev(`{"id":"e2","event":{"json":{"level":"WARN","fault":"call.refused","status":503,
		"message":"upstream refused, url=https://shop.example.com/p/2, status=503"}}}`)
	infoEvent = ev(`{"id":"e3","event":{"json":{"level":"INFO","message":"About to make to Endeca"}}}`)
)

func TestLevelFilter(t *testing.T) {
	tests := []struct {
		name     string
		minLevel string
		event    domain.Event
		expected bool
	}{
		{"info allows info", "info", infoEvent, true},
		{"info allows error", "INFO", timeoutEvent, true},
		{"error filters warn", "error", refusedEvent, false},
		{"error filters info", "error", infoEvent, false},
		{"warning is an alias of warn", "warning", refusedEvent, true},
		{"missing level fails a known minimum", "debug", ev(`{"event":{"json":{}}}`), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewLevelFilter(tt.minLevel).Match(tt.event))
		})
	}
}

func TestChain(t *testing.T) {
	t.Run("empty chain matches all", func(t *testing.T) {
		assert.True(t, NewChain().Match(infoEvent))
	})

	t.Run("nil chain matches all", func(t *testing.T) {
		var c *Chain
		assert.True(t, c.Match(infoEvent))
		assert.Equal(t, 0, c.Len())
	})

	t.Run("all filters must pass", func(t *testing.T) {
		chain := NewChain(NewLevelFilter("warn"), NewRegexFilterFromRegexp(regexp.MustCompile("refused"), ""))

		assert.False(t, chain.Match(infoEvent))
		assert.False(t, chain.Match(timeoutEvent))
		assert.True(t, chain.Match(refusedEvent))
	})

	t.Run("nil filters are skipped", func(t *testing.T) {
		chain := NewChain(nil, NewLevelFilter("error"))
		chain.Add(nil)

		assert.Equal(t, 1, chain.Len())
		assert.True(t, chain.Match(timeoutEvent))
	})
}

func TestOrChain(t *testing.T) {
	t.Run("empty OR chain matches all", func(t *testing.T) {
		assert.True(t, NewOrChain().Match(infoEvent))
	})

	t.Run("any filter can pass", func(t *testing.T) {
		chain := NewOrChain(
			NewLevelFilter("error"),
			NewRegexFilterFromRegexp(regexp.MustCompile("Endeca"), ""),
		)

		assert.True(t, chain.Match(timeoutEvent))
		assert.True(t, chain.Match(infoEvent))
		assert.False(t, chain.Match(refusedEvent))
	})
}

func TestRegexFilter(t *testing.T) {
	t.Run("nil pattern matches all", func(t *testing.T) {
		assert.True(t, NewRegexFilterFromRegexp(nil, "").Match(infoEvent))
	})

	t.Run("matches message", func(t *testing.T) {
		f, err := NewRegexFilter(`status=50\d`)
		require.NoError(t, err)

		assert.True(t, f.Match(timeoutEvent))
		assert.False(t, f.Match(infoEvent))
	})

	t.Run("matches any field path", func(t *testing.T) {
		f := NewRegexFilterFromRegexp(regexp.MustCompile(`^call\.`), "event.json.fault")

		assert.True(t, f.Match(refusedEvent))
		assert.False(t, f.Match(infoEvent))
	})

	t.Run("case insensitive with flag", func(t *testing.T) {
		f, err := NewRegexFilter(`(?i)about to make`)
		require.NoError(t, err)
		assert.True(t, f.Match(infoEvent))
	})

	t.Run("invalid pattern returns error", func(t *testing.T) {
		_, err := NewRegexFilter(`[`)
		assert.Error(t, err)
	})
}

func TestExcludeFilters(t *testing.T) {
	t.Run("excludes matching messages", func(t *testing.T) {
		f, err := NewExcludePatternFilter("return to FE|refused")
		require.NoError(t, err)

		assert.True(t, f.Match(timeoutEvent))
		assert.False(t, f.Match(refusedEvent))
	})

	t.Run("invalid pattern returns error", func(t *testing.T) {
		_, err := NewExcludePatternFilter(`(`)
		assert.Error(t, err)
	})

	t.Run("empty fault list excludes nothing", func(t *testing.T) {
		assert.True(t, NewExcludeFaultFilter(nil).Match(timeoutEvent))
	})

	t.Run("exact fault exclusion", func(t *testing.T) {
		f := NewExcludeFaultFilter([]string{"call.timeout"})

		assert.False(t, f.Match(timeoutEvent))
		assert.True(t, f.Match(refusedEvent))
	})

	t.Run("wildcard fault exclusion", func(t *testing.T) {
		f := NewExcludeFaultFilter([]string{"call.*"})

		assert.False(t, f.Match(timeoutEvent))
		assert.False(t, f.Match(refusedEvent))
		assert.True(t, f.Match(infoEvent))
	})
}

func TestWhereClause(t *testing.T) {
	t.Run("parse operators", func(t *testing.T) {
		tests := []struct {
			clause string
			field  string
			op     string
			value  string
		}{
			{"level=error", "level", "=", "error"},
			{"fault!=call.timeout", "fault", "!=", "call.timeout"},
			{"message~timeout", "message", "~", "timeout"},
			{"message!~heartbeat", "message", "!~", "heartbeat"},
			{"event.json.status>=500", "event.json.status", ">=", "500"},
			{"fault^call.", "fault", "^", "call."},
			{"message$status=504", "message", "$", "status=504"},
			{`message~"a b"`, "message", "~", "a b"},
		}
		for _, tt := range tests {
			wc, err := ParseWhereClause(tt.clause)
			require.NoError(t, err, tt.clause)
			assert.Equal(t, tt.field, wc.Field, tt.clause)
			assert.Equal(t, tt.op, wc.Operator, tt.clause)
			assert.Equal(t, tt.value, wc.Value, tt.clause)
		}
	})

	t.Run("invalid clause no operator", func(t *testing.T) {
		_, err := ParseWhereClause("level")
		assert.Error(t, err)
	})

	t.Run("invalid regex", func(t *testing.T) {
		_, err := ParseWhereClause("message~[")
		assert.Error(t, err)
	})
}

func TestWhereClauseMatch(t *testing.T) {
	tests := []struct {
		clause   string
		event    domain.Event
		expected bool
	}{
		{"level=error", timeoutEvent, true},
		{"level=error", refusedEvent, false},
		{"level!=error", refusedEvent, true},
		{"level>=warn", refusedEvent, true},
		{"level>=warn", infoEvent, false},
		{"level<=info", infoEvent, true},
		{"level<=info", timeoutEvent, false},
		{"fault=call.timeout", timeoutEvent, true},
		{"fault^call.", refusedEvent, true},
		{"fault$refused", timeoutEvent, false},
		{"message~url=https://shop", timeoutEvent, true},
		{"message!~Endeca", infoEvent, false},
		{"event.json.status>=504", timeoutEvent, true},
		{"event.json.status>=504", refusedEvent, false},
		{"event.json.status<=503", refusedEvent, true},
		{"event.json.status=504", timeoutEvent, true},
		{"event.json.status>=500", infoEvent, false},
		{"id=e3", infoEvent, true},
	}

	for _, tt := range tests {
		t.Run(tt.clause, func(t *testing.T) {
			wc, err := ParseWhereClause(tt.clause)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, wc.Match(tt.event))
		})
	}
}

func TestWhereFilter(t *testing.T) {
	t.Run("nil for empty clauses", func(t *testing.T) {
		wf, err := NewWhereFilter(nil)
		require.NoError(t, err)
		assert.Nil(t, wf)
		assert.True(t, wf.Match(infoEvent))
	})

	t.Run("AND logic for multiple clauses", func(t *testing.T) {
		wf, err := NewWhereFilter([]string{"level>=warn", "fault^call."})
		require.NoError(t, err)

		assert.True(t, wf.Match(timeoutEvent))
		assert.True(t, wf.Match(refusedEvent))
		assert.False(t, wf.Match(infoEvent))
	})

	t.Run("boolean expressions", func(t *testing.T) {
		tests := []struct {
			expr  string
			match []bool // timeout, refused, info
		}{
			{`level=error || level=info`, []bool{true, false, true}},
			{`(level=error OR level=warn) AND message~/SHOP/i`, []bool{true, true, false}},
			{`!fault=call.timeout && level>=warn`, []bool{false, true, false}},
			{`not (event.json.status>=500)`, []bool{false, false, true}},
			{`message~'About to'`, []bool{false, false, true}},
		}
		for _, tt := range tests {
			wf, err := NewWhereFilter([]string{tt.expr})
			require.NoError(t, err, tt.expr)
			got := []bool{wf.Match(timeoutEvent), wf.Match(refusedEvent), wf.Match(infoEvent)}
			assert.Equal(t, tt.match, got, tt.expr)
		}
	})

	t.Run("syntax errors are reported", func(t *testing.T) {
		for _, expr := range []string{`level=`, `(level=error`, `level=error)`, `"unterminated`, `message~/x/q`, `a & b`} {
			_, err := NewWhereFilter([]string{expr})
			assert.Error(t, err, expr)
		}
	})
}

func TestPipeline(t *testing.T) {
	t.Run("nothing to filter gives nil", func(t *testing.T) {
		p, err := BuildPipeline("", nil, nil)
		require.NoError(t, err)
		assert.Nil(t, p)
		assert.True(t, p.Match(infoEvent))
	})

	t.Run("pattern exclude and where combine", func(t *testing.T) {
		p, err := BuildPipeline(`url=`, []string{`p/2`}, []string{"level>=error"})
		require.NoError(t, err)

		assert.True(t, p.Match(timeoutEvent))
		assert.False(t, p.Match(refusedEvent))
		assert.False(t, p.Match(infoEvent))
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, err := BuildPipeline(`(`, nil, nil)
		assert.Error(t, err)
	})

	t.Run("bad exclude", func(t *testing.T) {
		_, err := BuildPipeline("", []string{`[`}, nil)
		assert.Error(t, err)
	})
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "event.json.level", FieldPath("LEVEL"))
	assert.Equal(t, "event.json.message", FieldPath("message"))
	assert.Equal(t, "event.json.custom", FieldPath("event.json.custom"))
}
