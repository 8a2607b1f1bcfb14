package cli

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExamplesCmd shows usage examples for faultline commands
type ExamplesCmd struct {
	Command string `arg:"" optional:"" help:"Show examples for a specific command (logs, rollup, oneoff, ...)"`
	JSON    bool   `help:"Output as JSON for programmatic access"`
}

// Example represents a single usage example
type Example struct {
	Command     string `json:"command"`
	Description string `json:"description"`
	Output      string `json:"output,omitempty"`
	When        string `json:"when,omitempty"`
}

// CommandExamples holds examples for a single command
type CommandExamples struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Examples    []Example `json:"examples"`
}

// AllExamples contains examples for all commands
type AllExamples struct {
	Type     string            `json:"type"`
	Version  string            `json:"version"`
	Commands []CommandExamples `json:"commands"`
}

var exampleOrder = []string{"logs", "rollup", "oneoff", "hourly", "shell", "config"}

var commandExamples = map[string]CommandExamples{
	"logs": {
		Name:        "logs",
		Description: "Count faults of the main query as a share of the request baseline",
		Examples: []Example{
			{
				Command:     `faultline logs 10m`,
				Description: "Faults of the last ten minutes",
				Output:      "53137 requests\n58 events (0.109%)\n\nCounted 20 (0.038%): call.timeout",
			},
			{
				Command:     `faultline logs 1h 0430`,
				Description: "One hour starting at 04:30 (yesterday if that is still ahead)",
			},
			{
				Command:     `faultline logs 30m yesterday at 4pm --where 'fault^call.'`,
				Description: "A natural-language anchor and a field filter",
			},
			{
				Command:     `faultline logs 2h -x url --normalize -n 20`,
				Description: "Top 20 URLs with ids and numbers collapsed",
				When:        "Product pages fail with different ids but the same cause",
			},
		},
	},
	"rollup": {
		Name:        "rollup",
		Description: "Rank the URLs of faulted events matching a filter term",
		Examples: []Example{
			{
				Command:     `faultline rollup fault=call.timeout 30m`,
				Description: "Top 11 URLs behind call.timeout",
				Output:      "Top 11 URLs by incidence count:\n\nCounted 4: https://shop.example.com/p/...",
			},
			{
				Command:     `faultline rollup fault=call.refused --top 25 -f table`,
				Description: "A longer list as a table",
			},
		},
	},
	"oneoff": {
		Name:        "oneoff",
		Description: "Count every URL of a preset query and write count,url CSV",
		Examples: []Example{
			{
				Command:     `faultline oneoff`,
				Description: "404 URLs of the last day into oneoff_report.csv",
				Output:      "oneoff_report.csv created.",
			},
			{
				Command:     `faultline oneoff oneoff-endeca --time 6h --out endeca.csv`,
				Description: "Override a preset's window and file",
			},
			{
				Command:     `faultline oneoff --list`,
				Description: "Show the configured presets",
			},
		},
	},
	"hourly": {
		Name:        "hourly",
		Description: "Count the hourly query per hour",
		Examples: []Example{
			{
				Command:     `faultline hourly`,
				Description: "Total of the last hour",
				Output:      "1234 Events",
			},
			{
				Command:     `faultline hourly --hours 12`,
				Description: "Twelve hourly totals with a chart",
			},
		},
	},
	"shell": {
		Name:        "shell",
		Description: "Run chat-style commands read line by line",
		Examples: []Example{
			{
				Command:     `echo "logs 10m 0430" | faultline shell`,
				Description: "One command from a pipe",
			},
			{
				Command:     `faultline shell -i morning.txt -f ndjson`,
				Description: "A file of commands with machine-readable output",
				When:        "Scheduled reports; failing lines are reported and skipped",
			},
		},
	},
	"config": {
		Name:        "config",
		Description: "Show or manage configuration",
		Examples: []Example{
			{
				Command:     `faultline config generate > ~/.faultline.yaml`,
				Description: "Start a config file",
			},
			{
				Command:     `faultline config show -f ndjson`,
				Description: "Effective configuration with the API key masked",
			},
		},
	},
}

// Run executes the examples command
func (c *ExamplesCmd) Run(globals *Globals) error {
	selected := exampleOrder
	if c.Command != "" {
		if _, ok := commandExamples[c.Command]; !ok {
			return emitError(globals, &CLIError{
				Code:    CodeUnknownCommand,
				Message: fmt.Sprintf("unknown command: %s", c.Command),
				Hint:    "Available: " + strings.Join(exampleOrder, ", "),
			})
		}
		selected = []string{c.Command}
	}

	if c.JSON {
		return c.outputJSON(globals, selected)
	}
	return c.outputText(globals, selected)
}

func (c *ExamplesCmd) outputJSON(globals *Globals, names []string) error {
	all := AllExamples{Type: "examples", Version: Version}
	for _, name := range names {
		all.Commands = append(all.Commands, commandExamples[name])
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(globals.Stdout, string(data))
	return err
}

func (c *ExamplesCmd) outputText(globals *Globals, names []string) error {
	var sb strings.Builder
	if len(names) > 1 {
		sb.WriteString("FAULTLINE USAGE EXAMPLES\n")
		sb.WriteString("========================\n\n")
	}
	for _, name := range names {
		formatCommandExamples(&sb, commandExamples[name])
		sb.WriteString("\n")
	}
	_, err := fmt.Fprint(globals.Stdout, sb.String())
	return err
}

func formatCommandExamples(sb *strings.Builder, cmd CommandExamples) {
	fmt.Fprintf(sb, "## %s\n", strings.ToUpper(cmd.Name))
	fmt.Fprintf(sb, "%s\n\n", cmd.Description)

	for _, ex := range cmd.Examples {
		fmt.Fprintf(sb, "  %s\n", ex.Command)
		fmt.Fprintf(sb, "    %s\n", ex.Description)
		if ex.Output != "" {
			fmt.Fprintf(sb, "    Output: %s\n", strings.ReplaceAll(ex.Output, "\n", "\n            "))
		}
		if ex.When != "" {
			fmt.Fprintf(sb, "    When: %s\n", ex.When)
		}
		sb.WriteString("\n")
	}
}
