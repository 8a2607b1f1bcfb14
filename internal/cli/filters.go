package cli

import (
	"github.com/vburojevic/faultline/internal/filter"
)

// FilterFlags narrow the fetched events before they are counted. Events that
// are filtered out still count towards the fetched total.
type FilterFlags struct {
	Grep         string   `short:"p" help:"Regex the event message must match"`
	Exclude      []string `help:"Regex pattern to exclude from event messages (can be repeated)"`
	ExcludeFault []string `help:"Drop events with this fault (can be repeated, supports * wildcard)"`
	MinLevel     string   `help:"Minimum json.level: TRACE, DEBUG, INFO, WARN, ERROR, FATAL"`
	Where        []string `short:"w" help:"Field filter (e.g., 'fault=call.timeout', 'message~timeout'). Operators: =, !=, ~, !~, >=, <=, ^, $"`
}

// build compiles the flags into one filter, or nil when no flag is set
func (f FilterFlags) build() (filter.Filter, error) {
	chain := filter.NewChain()

	p, err := filter.BuildPipeline(f.Grep, f.Exclude, f.Where)
	if err != nil {
		return nil, &CLIError{Code: CodeInvalidFilter, Message: err.Error(), Hint: hintForFilter(err), Err: err}
	}
	if p != nil {
		chain.Add(p)
	}
	if len(f.ExcludeFault) > 0 {
		chain.Add(filter.NewExcludeFaultFilter(f.ExcludeFault))
	}
	if f.MinLevel != "" {
		chain.Add(filter.NewLevelFilter(f.MinLevel))
	}

	if chain.Len() == 0 {
		return nil, nil
	}
	return chain, nil
}
