package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/faultline/internal/domain"
)

func table(pairs ...any) *domain.FrequencyTable {
	t := domain.NewFrequencyTable()
	for i := 0; i < len(pairs); i += 2 {
		t.AddN(pairs[i].(string), pairs[i+1].(int))
	}
	return t
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		count, baseline int
		want            float64
	}{
		{20, 53137, 0.038},
		{58, 53137, 0.109},
		{1, 3, 33.333},
		{2, 3, 66.667},
		{5, 5, 100},
		{0, 10, 0},
	}
	for _, tt := range tests {
		got, err := Percentage(tt.count, tt.baseline)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%d/%d", tt.count, tt.baseline)
	}

	t.Run("zero baseline is an error", func(t *testing.T) {
		_, err := Percentage(3, 0)
		assert.ErrorIs(t, err, ErrZeroBaseline)
	})
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0.038", FormatPercent(0.038))
	assert.Equal(t, "0.109", FormatPercent(0.109))
	assert.Equal(t, "1.5", FormatPercent(1.5))
	assert.Equal(t, "100.0", FormatPercent(100))
	assert.Equal(t, "0.0", FormatPercent(0))
}

func TestRank(t *testing.T) {
	t.Run("sorted by count descending", func(t *testing.T) {
		r := Rank(domain.ReportFaults, table("a", 1, "b", 7, "c", 3, "d", 7), 0)

		require.Len(t, r.Entries, 4)
		for i := 1; i < len(r.Entries); i++ {
			assert.GreaterOrEqual(t, r.Entries[i-1].Count, r.Entries[i].Count)
		}
		assert.Equal(t, "b", r.Entries[0].Key, "ties keep first-seen order")
		assert.Equal(t, "d", r.Entries[1].Key)
		assert.Equal(t, 18, r.Events)
	})

	t.Run("topN truncates but distinct counts all keys", func(t *testing.T) {
		r := Rank(domain.ReportRollup, table("a", 1, "b", 2, "c", 3), 2)

		assert.Equal(t, []domain.Entry{{Key: "c", Count: 3}, {Key: "b", Count: 2}}, r.Entries)
		assert.Equal(t, 3, r.Distinct)
		assert.Equal(t, "ranking", r.Type)
		assert.Equal(t, domain.ReportRollup, r.Kind)
	})

	t.Run("empty table gives an empty, non-nil ranking", func(t *testing.T) {
		r := Rank(domain.ReportURLs, domain.NewFrequencyTable(), 5)

		assert.NotNil(t, r.Entries)
		assert.Empty(t, r.Entries)
		assert.Equal(t, 0, r.Distinct)
	})
}

func TestFormat(t *testing.T) {
	t.Run("percentages against the baseline", func(t *testing.T) {
		r, err := Format(domain.ReportFaults, table("call.refused", 38, "call.timeout", 20), 53137, 58, 0)
		require.NoError(t, err)

		assert.Equal(t, "report", r.Type)
		assert.Equal(t, 53137, r.Baseline)
		assert.Equal(t, 58, r.Events)
		assert.Equal(t, 0.109, r.EventsPercent)
		assert.Equal(t, 2, r.Distinct)
		assert.Equal(t, []domain.Row{
			{Rank: 1, Key: "call.refused", Count: 38, Percent: 0.072},
			{Rank: 2, Key: "call.timeout", Count: 20, Percent: 0.038},
		}, r.Rows)
	})

	t.Run("zero baseline", func(t *testing.T) {
		_, err := Format(domain.ReportFaults, table("a", 1), 0, 1, 0)
		assert.ErrorIs(t, err, ErrZeroBaseline)
	})

	t.Run("no events", func(t *testing.T) {
		r, err := Format(domain.ReportFaults, domain.NewFrequencyTable(), 100, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, r.Rows)
		assert.Equal(t, 0.0, r.EventsPercent)
	})
}
