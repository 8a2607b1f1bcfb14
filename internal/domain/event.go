package domain

import "github.com/tidwall/gjson"

// Event is one search hit. The payload is kept as raw JSON; callers read
// fields with gjson paths such as "event.json.fault".
type Event struct {
	Raw []byte
}

// NewEvent wraps a raw JSON event
func NewEvent(raw []byte) Event {
	return Event{Raw: raw}
}

// Get returns the value at a gjson path
func (e Event) Get(path string) gjson.Result {
	return gjson.GetBytes(e.Raw, path)
}

// Page is one response of the iterate endpoint
type Page struct {
	Events []Event
	Next   string // cursor URI; empty on the last page
}

// HasNext reports whether another page follows
func (p *Page) HasNext() bool {
	return p != nil && p.Next != ""
}

// Len returns the number of events on the page
func (p *Page) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Events)
}
