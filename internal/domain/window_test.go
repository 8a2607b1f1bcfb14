package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeWindow(t *testing.T) {
	tests := []struct {
		name  string
		delta string
		want  string
	}{
		{"keeps signed delta", "-10m", "-10m"},
		{"adds missing sign", "10m", "-10m"},
		{"passes unknown units through", "5x", "-5x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := RelativeWindow(tt.delta)
			assert.Equal(t, WindowRelative, w.Kind())
			assert.True(t, w.IsRelative())
			assert.Equal(t, tt.want, w.Delta())
			assert.True(t, w.Start().IsZero())
			assert.Equal(t, tt.want, w.FromParam())
			assert.Equal(t, "", w.UntilParam(""))
			assert.Equal(t, "now", w.UntilParam("now"))
		})
	}
}

func TestAbsoluteWindow(t *testing.T) {
	loc := time.FixedZone("PST", -8*3600)
	start := time.Date(2018, 1, 1, 12, 0, 0, 0, loc)
	end := start.Add(10 * time.Minute)

	w := AbsoluteWindow(start, end)

	assert.Equal(t, WindowAbsolute, w.Kind())
	assert.Equal(t, "", w.Delta())
	assert.Equal(t, "2018-01-01T20:00:00Z", w.FromParam())
	assert.Equal(t, "2018-01-01T20:10:00Z", w.UntilParam("now"))
	assert.Equal(t, "&from=2018-01-01T20%3A00%3A00Z&until=2018-01-01T20%3A10%3A00Z", w.String())
}

func TestRelativeWindowString(t *testing.T) {
	assert.Equal(t, "&from=-10m&until=", RelativeWindow("10m").String())
}
