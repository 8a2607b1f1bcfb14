package filter

import (
	"regexp"
	"strings"

	"github.com/vburojevic/faultline/internal/domain"
)

// ExcludePatternFilter drops events whose message matches a regex pattern
type ExcludePatternFilter struct {
	pattern *regexp.Regexp
}

// NewExcludePatternFilter creates an exclusion filter from a pattern string
func NewExcludePatternFilter(pattern string) (*ExcludePatternFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &ExcludePatternFilter{pattern: re}, nil
}

// Match returns true if the message does NOT match the exclusion pattern
func (f *ExcludePatternFilter) Match(event domain.Event) bool {
	if f.pattern == nil {
		return true
	}
	return !f.pattern.MatchString(fieldValue(event, MessagePath))
}

// ExcludeFaultFilter drops events carrying one of the listed faults.
// A trailing "*" matches a fault prefix ("call.*").
type ExcludeFaultFilter struct {
	faults []string
}

// NewExcludeFaultFilter creates an exclusion filter for faults
func NewExcludeFaultFilter(faults []string) *ExcludeFaultFilter {
	return &ExcludeFaultFilter{faults: faults}
}

// Match returns true if the event's fault is NOT in the exclusion list
func (f *ExcludeFaultFilter) Match(event domain.Event) bool {
	if len(f.faults) == 0 {
		return true
	}
	fault := fieldValue(event, FieldPath("fault"))
	for _, ex := range f.faults {
		if matchWildcard(ex, fault) {
			return false
		}
	}
	return true
}

func matchWildcard(pattern, value string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(value, prefix)
	}
	return value == pattern
}
