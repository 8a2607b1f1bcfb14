package domain

// FrequencyTable counts occurrences per key. It remembers the order in which
// keys were first seen so that ranking equal counts stays deterministic.
type FrequencyTable struct {
	counts map[string]int
	order  []string
}

// Entry is one key/count pair
type Entry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// NewFrequencyTable creates an empty table
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int)}
}

// Add increments key by one
func (t *FrequencyTable) Add(key string) {
	t.AddN(key, 1)
}

// AddN increments key by n. Non-positive n is ignored; tables never decrement.
func (t *FrequencyTable) AddN(key string, n int) {
	if n <= 0 {
		return
	}
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
}

// Merge adds every count of other into t and returns t
func (t *FrequencyTable) Merge(other *FrequencyTable) *FrequencyTable {
	if other == nil {
		return t
	}
	for _, key := range other.order {
		t.AddN(key, other.counts[key])
	}
	return t
}

// Count returns the count for key (0 when absent)
func (t *FrequencyTable) Count(key string) int {
	if t == nil {
		return 0
	}
	return t.counts[key]
}

// Len returns the number of distinct keys
func (t *FrequencyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Total returns the sum of all counts
func (t *FrequencyTable) Total() int {
	if t == nil {
		return 0
	}
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}

// Entries returns key/count pairs in first-seen order
func (t *FrequencyTable) Entries() []Entry {
	if t == nil {
		return nil
	}
	entries := make([]Entry, 0, len(t.order))
	for _, key := range t.order {
		entries = append(entries, Entry{Key: key, Count: t.counts[key]})
	}
	return entries
}

// Map returns a copy of the counts
func (t *FrequencyTable) Map() map[string]int {
	out := make(map[string]int, t.Len())
	if t == nil {
		return out
	}
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}
