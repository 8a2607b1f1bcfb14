package filter

import (
	"regexp"

	"github.com/vburojevic/faultline/internal/domain"
)

// RegexFilter keeps events whose field matches a pattern
type RegexFilter struct {
	pattern *regexp.Regexp
	path    string
}

// NewRegexFilter creates a message regex filter from a pattern string
func NewRegexFilter(pattern string) (*RegexFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &RegexFilter{pattern: re, path: MessagePath}, nil
}

// NewRegexFilterFromRegexp creates a regex filter over the field at path
func NewRegexFilterFromRegexp(re *regexp.Regexp, path string) *RegexFilter {
	if path == "" {
		path = MessagePath
	}
	return &RegexFilter{pattern: re, path: path}
}

// Match returns true if the field matches the pattern
func (f *RegexFilter) Match(event domain.Event) bool {
	if f.pattern == nil {
		return true
	}
	return f.pattern.MatchString(fieldValue(event, f.path))
}
