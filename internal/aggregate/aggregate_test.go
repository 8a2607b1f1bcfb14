package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/faultline/internal/domain"
	"github.com/vburojevic/faultline/internal/filter"
)

func page(next string, raws ...string) *domain.Page {
	p := &domain.Page{Next: next}
	for _, raw := range raws {
		p.Events = append(p.Events, domain.NewEvent([]byte(raw)))
	}
	return p
}

const (
	timeout   = `{"event":{"json":{"fault":"call.timeout","level":"ERROR","req_url":"https://shop.example.com/p/1?color=red"}}}`
	refused   = `{"event":{"json":{"fault":"call.refused","level":"WARN","message":"upstream refused, url=https://shop.example.com/p/2?x=1, status=503"}}}`
	plain     = `{"event":{"json":{"level":"INFO","message":"ok"}}}`
	notFound  = `{"event":{"json":{"message":"GET failed, url=https://shop.example.com/missing, status=404"}}}`
	malformed = `{"event":{"json":{"message":"payload bad, req_url=https://endeca.example.com/q?N=1, code=7"}}}`
)

func TestExtractors(t *testing.T) {
	tests := []struct {
		extractor string
		raw       string
		key       string
		ok        bool
	}{
		{ExtractFault, timeout, "call.timeout", true},
		{ExtractFault, plain, "", false},
		{ExtractFault, `{"event":{"json":{"fault":""}}}`, "", false},
		{ExtractURL, notFound, "https://shop.example.com/missing", true},
		{ExtractURL, plain, "", false},
		{ExtractURL, `{"event":{"json":{"message":"url=https://x/y, status=1"}}}`, "", false},
		{ExtractReqURL, malformed, "https://endeca.example.com/q?N=1", true},
		{ExtractReqURL, notFound, "", false},
		{ExtractRollup, timeout, "https://shop.example.com/p/1", true},
		{ExtractRollup, refused, "https://shop.example.com/p/2", true},
		{ExtractRollup, notFound, "", false},
		{ExtractRollup, `{"event":{"json":{"fault":"x"}}}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.extractor+" "+tt.key, func(t *testing.T) {
			x, err := Lookup(tt.extractor)
			require.NoError(t, err)
			assert.Equal(t, tt.extractor, x.Name())

			key, ok := x.Extract(domain.NewEvent([]byte(tt.raw)))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestLookup(t *testing.T) {
	t.Run("unknown name lists the known ones", func(t *testing.T) {
		_, err := Lookup("status")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fault, req_url, rollup, url")
	})

	t.Run("names are sorted", func(t *testing.T) {
		assert.Equal(t, []string{"fault", "req_url", "rollup", "url"}, Names())
	})
}

func TestAccumulate(t *testing.T) {
	t.Run("non-matching events are excluded", func(t *testing.T) {
		table := domain.NewFrequencyTable()
		x, _ := Lookup(ExtractFault)

		n := Accumulate(table, page("", timeout, plain, refused, timeout, notFound), x)

		assert.Equal(t, 3, n)
		assert.Equal(t, 2, table.Count("call.timeout"))
		assert.Equal(t, 1, table.Count("call.refused"))
		assert.Equal(t, 0, table.Count(""))
		assert.Equal(t, 2, table.Len())
	})

	t.Run("nil page adds nothing", func(t *testing.T) {
		table := domain.NewFrequencyTable()
		x, _ := Lookup(ExtractFault)

		assert.Equal(t, 0, Accumulate(table, nil, x))
		assert.Equal(t, 0, table.Len())
	})
}

func TestMerge(t *testing.T) {
	total := domain.NewFrequencyTable()
	total.AddN("a", 3)
	total.AddN("c", 5)
	incoming := domain.NewFrequencyTable()
	incoming.AddN("a", 2)
	incoming.AddN("b", 1)

	got := Merge(total, incoming)

	assert.Equal(t, map[string]int{"a": 5, "b": 1, "c": 5}, got.Map())
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, incoming.Map())
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, Merge(nil, incoming).Map())
}

func TestAggregator(t *testing.T) {
	t.Run("folds pages into one table", func(t *testing.T) {
		x, _ := Lookup(ExtractFault)
		agg := New(x, nil)

		agg.Add(page("n2", timeout, refused))
		agg.Add(page("n3", plain, timeout))
		agg.Add(page("", refused))
		agg.Add(nil)

		assert.Equal(t, 3, agg.Pages())
		assert.Equal(t, 5, agg.Fetched())
		assert.Equal(t, 4, agg.Matched())
		assert.Equal(t, []domain.Entry{{Key: "call.timeout", Count: 2}, {Key: "call.refused", Count: 2}}, agg.Table().Entries())
		assert.Equal(t, ExtractFault, agg.Extractor().Name())
	})

	t.Run("filtered events count as fetched only", func(t *testing.T) {
		x, _ := Lookup(ExtractFault)
		f, err := filter.NewWhereFilter([]string{"level=error"})
		require.NoError(t, err)
		agg := New(x, f)

		agg.Add(page("", timeout, refused, plain))

		assert.Equal(t, 3, agg.Fetched())
		assert.Equal(t, 1, agg.Matched())
		assert.Equal(t, map[string]int{"call.timeout": 1}, agg.Table().Map())
	})

	t.Run("an empty pipeline keeps everything", func(t *testing.T) {
		x, _ := Lookup(ExtractFault)
		p, err := filter.BuildPipeline("", nil, nil)
		require.NoError(t, err)
		agg := New(x, p)

		agg.Add(page("", timeout, refused))

		assert.Equal(t, 2, agg.Matched())
	})
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://shop.example.com/p/Run-Speed-Short-32138-MD/_/prod3860019", "https://shop.example.com/p/Run-Speed-Short-<n>-MD/_/prod<n>"},
		{"/cart/9cb4b38a-37d7-43d3-ad79-063cf2d1c43c/items", "/cart/<uuid>/items"},
		{"ptr 0x7ffeefbff5c8", "ptr <addr>"},
		{"no variables", "no variables"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.in))
	}
}

func TestNormalize(t *testing.T) {
	x := Normalize(NewRollupExtractor())
	assert.Equal(t, ExtractRollup, x.Name())

	agg := New(x, nil)
	agg.Add(page("",
		`{"event":{"json":{"fault":"f","req_url":"https://shop.example.com/p/1?a=b"}}}`,
		`{"event":{"json":{"fault":"f","req_url":"https://shop.example.com/p/22"}}}`,
		plain,
	))

	assert.Equal(t, map[string]int{"https://shop.example.com/p/<n>": 2}, agg.Table().Map())
}
