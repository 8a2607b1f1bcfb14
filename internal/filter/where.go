package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/vburojevic/faultline/internal/domain"
)

// WhereClause represents a parsed --where condition over one event field.
// Field is a short alias (level, message, fault, req_url) or a gjson path.
type WhereClause struct {
	Field    string
	Operator string
	Value    string
	path     string
	regex    *regexp.Regexp // compiled for ~ and !~
}

// ParseWhereClause parses a single clause like "level=error" or "event.json.status>=500".
// The first operator in the clause splits field from value.
// Supported operators: =, !=, ~, !~, >=, <=, ^, $
func ParseWhereClause(clause string) (*WhereClause, error) {
	operators := []string{"!~", ">=", "<=", "!=", "~", "=", "^", "$"}

	for idx := 1; idx < len(clause); idx++ {
		for _, op := range operators {
			if !strings.HasPrefix(clause[idx:], op) {
				continue
			}
			field := strings.TrimSpace(clause[:idx])
			value := strings.TrimSpace(clause[idx+len(op):])
			if field == "" || value == "" {
				return nil, fmt.Errorf("invalid where clause: %s", clause)
			}

			if (strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"")) ||
				(strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'")) {
				unq, err := strconv.Unquote(value)
				if err != nil {
					return nil, fmt.Errorf("invalid quoted value in where clause '%s': %w", clause, err)
				}
				value = unq
			}
			return newWhereClause(field, op, value)
		}
	}

	return nil, fmt.Errorf("no valid operator found in where clause: %s (use =, !=, ~, !~, >=, <=, ^, $)", clause)
}

func newWhereClause(field, op, value string) (*WhereClause, error) {
	wc := &WhereClause{Field: field, Operator: op, Value: value, path: FieldPath(field)}
	if op == "~" || op == "!~" {
		re, err := regexp.Compile(value)
		if err != nil {
			return nil, fmt.Errorf("invalid regex in where clause '%s%s%s': %w", field, op, value, err)
		}
		wc.regex = re
	}
	return wc, nil
}

func (wc *WhereClause) isLevel() bool {
	return wc.path == fieldAliases["level"]
}

// Match checks if an event matches this where clause
func (wc *WhereClause) Match(event domain.Event) bool {
	res := event.Get(wc.path)
	fieldValue := res.String()

	switch wc.Operator {
	case "=":
		if wc.isLevel() {
			return strings.EqualFold(fieldValue, wc.Value)
		}
		if res.Type == gjson.Number {
			return wc.compareNumeric(res, 0)
		}
		return fieldValue == wc.Value
	case "!=":
		if wc.isLevel() {
			return !strings.EqualFold(fieldValue, wc.Value)
		}
		if res.Type == gjson.Number {
			return !wc.compareNumeric(res, 0)
		}
		return fieldValue != wc.Value
	case "~":
		return wc.regex.MatchString(fieldValue)
	case "!~":
		return !wc.regex.MatchString(fieldValue)
	case "^":
		return strings.HasPrefix(fieldValue, wc.Value)
	case "$":
		return strings.HasSuffix(fieldValue, wc.Value)
	case ">=":
		if wc.isLevel() {
			return LevelPriority(fieldValue) >= LevelPriority(wc.Value)
		}
		return wc.compareNumeric(res, 1)
	case "<=":
		if wc.isLevel() {
			p := LevelPriority(fieldValue)
			return p >= 0 && p <= LevelPriority(wc.Value)
		}
		return wc.compareNumeric(res, -1)
	}

	return false
}

// compareNumeric compares the field against Value as numbers.
// want is 0 for equality, 1 for >= and -1 for <=. Non-numeric sides never match.
func (wc *WhereClause) compareNumeric(res gjson.Result, want int) bool {
	if !res.Exists() {
		return false
	}
	field, err := strconv.ParseFloat(res.String(), 64)
	if err != nil {
		return false
	}
	target, err := strconv.ParseFloat(wc.Value, 64)
	if err != nil {
		return false
	}

	switch want {
	case 0:
		return field == target
	case 1:
		return field >= target
	default:
		return field <= target
	}
}

// WhereFilter applies multiple where expressions (AND logic)
type WhereFilter struct {
	expr whereExpr
}

// NewWhereFilter creates a filter from where expression strings.
// It returns nil for an empty list.
func NewWhereFilter(whereClauses []string) (*WhereFilter, error) {
	if len(whereClauses) == 0 {
		return nil, nil
	}

	filter := &WhereFilter{}
	for _, clause := range whereClauses {
		expr, err := parseWhereExpr(clause)
		if err != nil {
			return nil, err
		}
		if filter.expr == nil {
			filter.expr = expr
		} else {
			filter.expr = &whereAndExpr{left: filter.expr, right: expr}
		}
	}

	return filter, nil
}

// Match returns true if the event matches ALL where expressions
func (f *WhereFilter) Match(event domain.Event) bool {
	if f == nil || f.expr == nil {
		return true
	}
	return f.expr.Match(event)
}
