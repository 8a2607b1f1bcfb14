package filter

import (
	"strings"

	"github.com/vburojevic/faultline/internal/domain"
)

// Level priorities of the upstream json.level field; unknown levels are -1
var levelPriority = map[string]int{
	"TRACE":   0,
	"DEBUG":   1,
	"INFO":    2,
	"WARN":    3,
	"WARNING": 3,
	"ERROR":   4,
	"FATAL":   5,
}

// LevelPriority returns the rank of a level name, case-insensitively
func LevelPriority(level string) int {
	if p, ok := levelPriority[strings.ToUpper(strings.TrimSpace(level))]; ok {
		return p
	}
	return -1
}

// LevelFilter keeps events at or above a minimum level
type LevelFilter struct {
	min int
}

// NewLevelFilter creates a level filter
func NewLevelFilter(minLevel string) *LevelFilter {
	return &LevelFilter{min: LevelPriority(minLevel)}
}

// Match returns true if the event level is >= the minimum level.
// Events without a recognised level only pass an unrecognised minimum.
func (f *LevelFilter) Match(event domain.Event) bool {
	return LevelPriority(fieldValue(event, FieldPath("level"))) >= f.min
}
