package filter

import (
	"regexp"

	"github.com/vburojevic/faultline/internal/domain"
)

// Pipeline chains pattern/exclude/where predicates so callers can reuse a single matcher.
type Pipeline struct {
	pattern  *regexp.Regexp
	excludes []*regexp.Regexp
	where    *WhereFilter
}

// NewPipeline returns nil when there is nothing to filter
func NewPipeline(pattern *regexp.Regexp, excludes []*regexp.Regexp, where *WhereFilter) *Pipeline {
	if pattern == nil && len(excludes) == 0 && where == nil {
		return nil
	}
	return &Pipeline{pattern: pattern, excludes: excludes, where: where}
}

// BuildPipeline compiles the --grep/--exclude/--where flag values
func BuildPipeline(pattern string, excludes, where []string) (*Pipeline, error) {
	var re *regexp.Regexp
	if pattern != "" {
		var err error
		if re, err = regexp.Compile(pattern); err != nil {
			return nil, err
		}
	}
	exs := make([]*regexp.Regexp, 0, len(excludes))
	for _, ex := range excludes {
		compiled, err := regexp.Compile(ex)
		if err != nil {
			return nil, err
		}
		exs = append(exs, compiled)
	}
	wf, err := NewWhereFilter(where)
	if err != nil {
		return nil, err
	}
	return NewPipeline(re, exs, wf), nil
}

// Match returns true when the event passes all predicates.
func (p *Pipeline) Match(event domain.Event) bool {
	if p == nil {
		return true
	}
	msg := fieldValue(event, MessagePath)
	if p.pattern != nil && !p.pattern.MatchString(msg) {
		return false
	}
	for _, ex := range p.excludes {
		if ex.MatchString(msg) {
			return false
		}
	}
	if p.where != nil && !p.where.Match(event) {
		return false
	}
	return true
}
