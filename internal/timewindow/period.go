package timewindow

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sosodev/duration"
)

var deltaRe = regexp.MustCompile(`^(\d+)([smhdwSMHDW])$`)

// ISOPeriod renders a delta such as "-10m" as an ISO-8601 duration ("PT10M").
// The sign is dropped; only magnitude and unit matter.
func ISOPeriod(delta string) (string, error) {
	d := strings.TrimLeft(strings.TrimSpace(delta), "-+")
	m := deltaRe.FindStringSubmatch(d)
	if m == nil {
		return "", fmt.Errorf("unsupported delta %q", delta)
	}
	n, unit := m[1], strings.ToUpper(m[2])
	switch unit {
	case "S", "M", "H":
		return "PT" + n + unit, nil
	default:
		return "P" + n + unit, nil
	}
}

// Period returns the length of a delta
func Period(delta string) (time.Duration, error) {
	iso, err := ISOPeriod(delta)
	if err != nil {
		return 0, err
	}
	d, err := duration.Parse(iso)
	if err != nil {
		return 0, fmt.Errorf("parse period %s: %w", iso, err)
	}
	return d.ToTimeDuration(), nil
}
