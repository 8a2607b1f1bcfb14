package loggly

import (
	"context"
	"fmt"
	"iter"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/vburojevic/faultline/internal/domain"
)

// Fetcher follows the iterate cursor chain
type Fetcher struct {
	client    Getter
	endpoints Endpoints
	maxPages  int
	logger    *zap.Logger
}

// NewFetcher creates a Fetcher. maxPages <= 0 means no ceiling.
func NewFetcher(client Getter, endpoints Endpoints, maxPages int, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{client: client, endpoints: endpoints, maxPages: maxPages, logger: logger}
}

// Pages fetches uri and every page its cursor chain points at, one at a time.
// Iteration stops at the first page without a next cursor, or with the first
// error. A page is yielded before the next one is requested.
func (f *Fetcher) Pages(ctx context.Context, uri string) iter.Seq2[*domain.Page, error] {
	return func(yield func(*domain.Page, error) bool) {
		next := uri
		events := 0
		for n := 1; next != ""; n++ {
			if f.maxPages > 0 && n > f.maxPages {
				yield(nil, fmt.Errorf("%w: stopped after %d pages", ErrPageLimit, f.maxPages))
				return
			}
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			res, err := f.client.Get(ctx, next)
			if err != nil {
				yield(nil, err)
				return
			}
			page, err := DecodePage(next, res)
			if err != nil {
				yield(nil, err)
				return
			}

			events += page.Len()
			f.logger.Debug("page fetched",
				zap.Int("page", n),
				zap.Int("page_events", page.Len()),
				zap.Int("events_count", events),
				zap.Bool("has_next", page.HasNext()))

			if !yield(page, nil) {
				return
			}
			if page.HasNext() {
				next = f.endpoints.Cursor(page.Next)
			} else {
				next = ""
			}
		}
	}
}

// DecodePage reads the events array and next cursor of an iterate response
func DecodePage(uri string, res gjson.Result) (*domain.Page, error) {
	events := res.Get("events")
	if !events.IsArray() {
		return nil, &MalformedResponseError{URI: uri, Field: "events"}
	}

	page := &domain.Page{}
	events.ForEach(func(_, value gjson.Result) bool {
		page.Events = append(page.Events, domain.NewEvent([]byte(value.Raw)))
		return true
	})

	if next := res.Get("next"); next.Type == gjson.String {
		page.Next = next.String()
	}
	return page, nil
}
