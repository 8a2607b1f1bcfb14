package cli

import (
	"context"
	"errors"

	"github.com/vburojevic/faultline/internal/config"
	"github.com/vburojevic/faultline/internal/dispatch"
	"github.com/vburojevic/faultline/internal/loggly"
	"github.com/vburojevic/faultline/internal/report"
	"github.com/vburojevic/faultline/internal/timewindow"
)

// Error codes
const (
	CodeInvalidTime       = "INVALID_TIME"
	CodeFetchFailed       = "FETCH_FAILED"
	CodeZeroBaseline      = "ZERO_BASELINE"
	CodeMalformedResponse = "MALFORMED_RESPONSE"
	CodePageLimit         = "PAGE_LIMIT"
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeInvalidFilter     = "INVALID_FILTER"
	CodeUnknownCommand    = "UNKNOWN_COMMAND"
	CodeCancelled         = "CANCELLED"
	CodeOutputFailed      = "OUTPUT_FAILED"
	CodeReportFailed      = "REPORT_FAILED"
)

// codeForError maps an error to its code and a suggested next step
func codeForError(err error) (code, hint string) {
	var tpe *timewindow.TimeParseError
	var malformed *loggly.MalformedResponseError
	var invalid *config.ValidationError

	switch {
	case errors.As(err, &tpe):
		return CodeInvalidTime, "Use 24h time (0430), a timestamp (2017-10-26 04:30) or a phrase (yesterday at 4pm)"
	case errors.As(err, &invalid):
		return CodeConfigInvalid, "Set the missing values in your config file or FAULTLINE_* variables; try `faultline config generate`"
	case errors.Is(err, report.ErrZeroBaseline):
		return CodeZeroBaseline, "The requests query matched nothing in this window; check requests_query or widen the window"
	case errors.As(err, &malformed):
		return CodeMalformedResponse, "Check that base_uri points at the events endpoint; run with --verbose to see each URI"
	case errors.Is(err, loggly.ErrPageLimit):
		return CodePageLimit, "Narrow the window or raise http.max_pages"
	case errors.Is(err, loggly.ErrRetriesExhausted):
		return CodeFetchFailed, "Check base_uri and api_key; run with --verbose to see each attempt"
	case errors.Is(err, dispatch.ErrNoRoute):
		return CodeUnknownCommand, "Try: logs 10m 0430, rollup fault=call.timeout 30m, oneoff, oneoffendeca, hourlyoneoff"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCancelled, ""
	default:
		return CodeReportFailed, ""
	}
}

func hintForFilter(err error) string {
	if err == nil {
		return ""
	}
	return "If the filter contains spaces/parentheses, quote it. Example: --where '(fault^call. OR level>=ERROR) AND message~timeout' (regex literal: message~/timeout|refused/i)"
}
