package loggly

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/vburojevic/faultline/internal/domain"
)

// Baseline reads total event counts through a search session:
// open the search, then read the session's total_events.
type Baseline struct {
	client    Getter
	endpoints Endpoints
	logger    *zap.Logger
}

// NewBaseline creates a Baseline counter
func NewBaseline(client Getter, endpoints Endpoints, logger *zap.Logger) *Baseline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Baseline{client: client, endpoints: endpoints, logger: logger}
}

// Total returns the number of events matching q
func (b *Baseline) Total(ctx context.Context, q domain.Query) (int, error) {
	searchURI := b.endpoints.SearchURI(q)
	res, err := b.client.Get(ctx, searchURI)
	if err != nil {
		return 0, fmt.Errorf("open search: %w", err)
	}

	rsid := res.Get("rsid.id")
	if !rsid.Exists() || rsid.String() == "" {
		return 0, &MalformedResponseError{URI: searchURI, Field: "rsid.id"}
	}

	eventsURI := b.endpoints.EventsURI(rsid.String())
	res, err = b.client.Get(ctx, eventsURI)
	if err != nil {
		return 0, fmt.Errorf("read search %s: %w", rsid.String(), err)
	}

	total := res.Get("total_events")
	if total.Type != gjson.Number {
		return 0, &MalformedResponseError{URI: eventsURI, Field: "total_events"}
	}

	b.logger.Debug("total requests count",
		zap.String("rsid", rsid.String()),
		zap.Int64("total_events", total.Int()))
	return int(total.Int()), nil
}
