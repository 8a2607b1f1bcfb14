package aggregate

import (
	"github.com/vburojevic/faultline/internal/domain"
	"github.com/vburojevic/faultline/internal/filter"
)

// Accumulate adds the key of every matching event on page to table and
// returns how many events matched. Events without a key are skipped.
func Accumulate(table *domain.FrequencyTable, page *domain.Page, x Extractor) int {
	if page == nil {
		return 0
	}
	matched := 0
	for _, ev := range page.Events {
		if key, ok := x.Extract(ev); ok {
			table.Add(key)
			matched++
		}
	}
	return matched
}

// Merge adds incoming into total. Neither table is decremented.
func Merge(total, incoming *domain.FrequencyTable) *domain.FrequencyTable {
	if total == nil {
		total = domain.NewFrequencyTable()
	}
	return total.Merge(incoming)
}

// Aggregator folds pages into one running frequency table
type Aggregator struct {
	extractor Extractor
	filter    filter.Filter
	table     *domain.FrequencyTable
	fetched   int
	matched   int
	pages     int
}

// New creates an Aggregator. f may be nil; events it rejects are still
// counted as fetched.
func New(x Extractor, f filter.Filter) *Aggregator {
	return &Aggregator{extractor: x, filter: f, table: domain.NewFrequencyTable()}
}

// Add folds one page into the running table
func (a *Aggregator) Add(page *domain.Page) {
	if page == nil {
		return
	}
	a.pages++
	a.fetched += page.Len()

	local := domain.NewFrequencyTable()
	if a.filter == nil {
		a.matched += Accumulate(local, page, a.extractor)
	} else {
		kept := &domain.Page{Next: page.Next}
		for _, ev := range page.Events {
			if a.filter.Match(ev) {
				kept.Events = append(kept.Events, ev)
			}
		}
		a.matched += Accumulate(local, kept, a.extractor)
	}
	Merge(a.table, local)
}

// Table returns the running table
func (a *Aggregator) Table() *domain.FrequencyTable { return a.table }

// Fetched returns the number of events seen across all pages
func (a *Aggregator) Fetched() int { return a.fetched }

// Matched returns the number of events that produced a key
func (a *Aggregator) Matched() int { return a.matched }

// Pages returns the number of pages folded in
func (a *Aggregator) Pages() int { return a.pages }

// Extractor returns the extractor in use
func (a *Aggregator) Extractor() Extractor { return a.extractor }
