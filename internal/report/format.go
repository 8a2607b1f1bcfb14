// Package report ranks frequency tables and normalizes them against a
// baseline request count.
package report

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/vburojevic/faultline/internal/domain"
)

// ErrZeroBaseline is returned when percentages are requested against zero requests
var ErrZeroBaseline = errors.New("baseline request count is zero")

// DefaultRollupTop is how many URLs the rollup report lists
const DefaultRollupTop = 11

// Percentage returns count as a percent of baseline rounded to three decimals
func Percentage(count, baseline int) (float64, error) {
	if baseline == 0 {
		return 0, ErrZeroBaseline
	}
	p := float64(count) / float64(baseline) * 100
	return math.Round(p*1000) / 1000, nil
}

// FormatPercent renders a percentage with the shortest exact decimal form,
// keeping at least one fractional digit ("0.038", "1.5", "100.0").
func FormatPercent(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Rank orders table entries by descending count. Ties keep first-seen order.
// topN <= 0 keeps every entry; Distinct always counts every key.
func Rank(kind domain.ReportKind, table *domain.FrequencyTable, topN int) *domain.Ranking {
	entries := table.Entries()
	slices.SortStableFunc(entries, func(a, b domain.Entry) int {
		return b.Count - a.Count
	})

	distinct := len(entries)
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	if entries == nil {
		entries = []domain.Entry{}
	}

	return &domain.Ranking{
		Type:     "ranking",
		Kind:     kind,
		Events:   table.Total(),
		Distinct: distinct,
		Limit:    max(topN, 0),
		Entries:  entries,
	}
}

// Format ranks table and expresses every count, plus the number of events
// fetched, as a percentage of baseline.
func Format(kind domain.ReportKind, table *domain.FrequencyTable, baseline, events, topN int) (*domain.Report, error) {
	eventsPct, err := Percentage(events, baseline)
	if err != nil {
		return nil, err
	}

	ranking := Rank(kind, table, topN)
	r := domain.NewReport(kind)
	r.Baseline = baseline
	r.Events = events
	r.EventsPercent = eventsPct
	r.Distinct = ranking.Distinct
	r.Rows = make([]domain.Row, 0, len(ranking.Entries))

	for i, e := range ranking.Entries {
		pct, _ := Percentage(e.Count, baseline)
		r.Rows = append(r.Rows, domain.Row{Rank: i + 1, Key: e.Key, Count: e.Count, Percent: pct})
	}
	return r, nil
}
