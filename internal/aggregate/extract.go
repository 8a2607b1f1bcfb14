package aggregate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/vburojevic/faultline/internal/domain"
)

// Extractor pulls the grouping key out of an event.
// Events for which ok is false are not counted.
type Extractor interface {
	Name() string
	Extract(event domain.Event) (key string, ok bool)
}

// Extractor names
const (
	ExtractFault  = "fault"
	ExtractURL    = "url"
	ExtractReqURL = "req_url"
	ExtractRollup = "rollup"
)

const (
	faultPath   = "event.json.fault"
	messagePath = "event.json.message"
	reqURLPath  = "event.json.req_url"
)

var (
	urlRe    = regexp.MustCompile(`,\s+url=([^,]+),`)
	reqURLRe = regexp.MustCompile(`,\s+req_url=([^,]+),`)
)

// FieldExtractor reads a string field by gjson path
type FieldExtractor struct {
	name string
	path string
}

// NewFieldExtractor creates an extractor for the field at path
func NewFieldExtractor(name, path string) *FieldExtractor {
	return &FieldExtractor{name: name, path: path}
}

func (e *FieldExtractor) Name() string { return e.name }

// Extract returns the field value; missing and empty fields do not match
func (e *FieldExtractor) Extract(event domain.Event) (string, bool) {
	res := event.Get(e.path)
	if !res.Exists() || res.String() == "" {
		return "", false
	}
	return res.String(), true
}

// PatternExtractor returns the first capture group of a pattern applied to a field
type PatternExtractor struct {
	name    string
	path    string
	pattern *regexp.Regexp
}

// NewPatternExtractor creates an extractor; pattern must have a capture group
func NewPatternExtractor(name, path string, pattern *regexp.Regexp) *PatternExtractor {
	return &PatternExtractor{name: name, path: path, pattern: pattern}
}

func (e *PatternExtractor) Name() string { return e.name }

func (e *PatternExtractor) Extract(event domain.Event) (string, bool) {
	m := e.pattern.FindStringSubmatch(event.Get(e.path).String())
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// RollupExtractor keys faulted events by the URL they hit, without its query string
type RollupExtractor struct {
	fallbacks []Extractor
}

// NewRollupExtractor creates the rollup extractor
func NewRollupExtractor() *RollupExtractor {
	return &RollupExtractor{fallbacks: []Extractor{
		NewFieldExtractor(ExtractReqURL, reqURLPath),
		NewPatternExtractor(ExtractURL, messagePath, urlRe),
		NewPatternExtractor(ExtractReqURL, messagePath, reqURLRe),
	}}
}

func (e *RollupExtractor) Name() string { return ExtractRollup }

// Extract only matches events that carry a fault
func (e *RollupExtractor) Extract(event domain.Event) (string, bool) {
	if !event.Get(faultPath).Exists() {
		return "", false
	}
	for _, x := range e.fallbacks {
		if key, ok := x.Extract(event); ok {
			key, _, _ = strings.Cut(key, "?")
			return key, true
		}
	}
	return "", false
}

var registry = map[string]func() Extractor{
	ExtractFault:  func() Extractor { return NewFieldExtractor(ExtractFault, faultPath) },
	ExtractURL:    func() Extractor { return NewPatternExtractor(ExtractURL, messagePath, urlRe) },
	ExtractReqURL: func() Extractor { return NewPatternExtractor(ExtractReqURL, messagePath, reqURLRe) },
	ExtractRollup: func() Extractor { return NewRollupExtractor() },
}

// Lookup returns the extractor registered under name
func Lookup(name string) (Extractor, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown extractor %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return mk(), nil
}

// Names lists registered extractor names, sorted
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
