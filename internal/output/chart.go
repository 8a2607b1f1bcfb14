package output

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/vburojevic/faultline/internal/domain"
)

// HourlyChart plots bucket totals. It returns "" for fewer than two buckets.
func HourlyChart(h *domain.HourlyReport, width, height int) string {
	if h == nil || len(h.Buckets) < 2 {
		return ""
	}

	// Ensure minimum dimensions
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	data := make([]float64, len(h.Buckets))
	for i, b := range h.Buckets {
		data[i] = float64(b.Total)
	}

	first := h.Buckets[0].Start
	last := h.Buckets[len(h.Buckets)-1].End
	caption := fmt.Sprintf("events per hour, %s to %s", first.Format(HourLayout), last.Format(HourLayout))

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
