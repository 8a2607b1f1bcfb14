package loggly

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vburojevic/faultline/internal/domain"
)

// DefaultPageSize is the iterate endpoint page size
const DefaultPageSize = 1000

// Endpoints builds request URIs for the events, iterate and search endpoints
type Endpoints struct {
	Base     string // .../apiv2/events
	Search   string // .../apiv2/search
	PageSize int
}

// NewEndpoints creates Endpoints; an empty search URI is derived from base
func NewEndpoints(base, search string, pageSize int) Endpoints {
	base = strings.TrimRight(base, "/")
	if search == "" {
		search = DeriveSearchURI(base)
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Endpoints{Base: base, Search: strings.TrimRight(search, "/"), PageSize: pageSize}
}

// DeriveSearchURI swaps a trailing /events segment for /search
func DeriveSearchURI(base string) string {
	base = strings.TrimRight(base, "/")
	return strings.TrimSuffix(base, "/events") + "/search"
}

// Iterate returns the first-page URI of a paginated query
func (e Endpoints) Iterate(q domain.Query) string {
	return fmt.Sprintf("%s/iterate?q=%s%s&size=%d", e.Base, url.QueryEscape(q.Text), q.Window.String(), e.PageSize)
}

// Cursor turns a next value into a URI. Full URIs pass through unchanged.
func (e Endpoints) Cursor(next string) string {
	if strings.Contains(next, "://") {
		return next
	}
	return fmt.Sprintf("%s/iterate?next=%s", e.Base, url.QueryEscape(next))
}

// SearchURI returns the URI that opens a search session for q
func (e Endpoints) SearchURI(q domain.Query) string {
	return fmt.Sprintf("%s?q=%s&from=%s&until=%s", e.Search,
		url.QueryEscape(q.Text), url.QueryEscape(q.Window.FromParam()), url.QueryEscape(q.Window.UntilParam("now")))
}

// EventsURI returns the URI that reads a search session's results
func (e Endpoints) EventsURI(rsid string) string {
	return fmt.Sprintf("%s?rsid=%s", e.Base, url.QueryEscape(rsid))
}
