package cli

import (
	"fmt"
	"io"

	"github.com/vburojevic/faultline/internal/config"
	"github.com/vburojevic/faultline/internal/output"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	path := globals.ConfigFile
	if path == "" {
		path = config.ConfigFile()
	}

	if globals.Format == output.FormatNDJSON {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]any{
			"type":           "config",
			"schemaVersion":  output.SchemaVersion,
			"api_key":        cfg.MaskedAPIKey(),
			"base_uri":       cfg.BaseURI,
			"search_uri":     cfg.SearchURI,
			"query":          cfg.Query,
			"requests_query": cfg.RequestsQuery,
			"format":         cfg.Format,
			"quiet":          cfg.Quiet,
			"verbose":        cfg.Verbose,
			"http":           cfg.HTTP,
			"reports":        cfg.Reports,
			"file":           path,
		})
	}

	w := globals.Stdout
	fmt.Fprintln(w, "Current Configuration:")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "  api_key:        %s\n", cfg.MaskedAPIKey())
	fmt.Fprintf(w, "  base_uri:       %s\n", cfg.BaseURI)
	if cfg.SearchURI != "" {
		fmt.Fprintf(w, "  search_uri:     %s\n", cfg.SearchURI)
	}
	fmt.Fprintf(w, "  query:          %s\n", cfg.Query)
	fmt.Fprintf(w, "  requests_query: %s\n", cfg.RequestsQuery)
	fmt.Fprintf(w, "  format:         %s\n", cfg.Format)
	fmt.Fprintf(w, "  quiet:          %v\n", cfg.Quiet)
	fmt.Fprintf(w, "  verbose:        %v\n", cfg.Verbose)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "HTTP:")
	fmt.Fprintf(w, "  timeout:             %s\n", cfg.HTTP.Timeout)
	fmt.Fprintf(w, "  attempts:            %d\n", cfg.HTTP.Attempts)
	fmt.Fprintf(w, "  retry_delay:         %s\n", cfg.HTTP.RetryDelay)
	fmt.Fprintf(w, "  requests_per_second: %g\n", cfg.HTTP.RequestsPerSecond)
	fmt.Fprintf(w, "  page_size:           %d\n", cfg.HTTP.PageSize)
	fmt.Fprintf(w, "  max_pages:           %d\n", cfg.HTTP.MaxPages)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Reports:")
	fmt.Fprintf(w, "  default_time: %s\n", cfg.Reports.DefaultTime)
	fmt.Fprintf(w, "  rollup_query: %s\n", cfg.Reports.RollupQuery)
	fmt.Fprintf(w, "  rollup_top:   %d\n", cfg.Reports.RollupTop)
	fmt.Fprintf(w, "  hourly_query: %s\n", cfg.Reports.HourlyQuery)
	fmt.Fprintf(w, "  presets:      %v\n", cfg.PresetNames())

	if path != "" {
		fmt.Fprintln(w, "")
		fmt.Fprintf(w, "Loaded from: %s\n", path)
	}
	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := globals.ConfigFile
	if path == "" {
		path = config.ConfigFile()
	}

	if globals.Format == output.FormatNDJSON {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]any{
			"type": "config_path",
			"path": path,
		})
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ./.faultline.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.faultline.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/faultline/config.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}
	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

const sampleConfig = `# faultline configuration file
# Place this file at ./.faultline.yaml, ~/.faultline.yaml or ~/.config/faultline/config.yaml

# Log search API. The key can also come from FAULTLINE_API_KEY or a .env file.
api_key: ""
base_uri: https://example.loggly.com/apiv2/events
# search_uri defaults to base_uri with /events replaced by /search
# search_uri: https://example.loggly.com/apiv2/search

# Query counted by "logs", and the query whose total is the baseline
query: '"translation--prod" json.fault:*'
requests_query: '"translation--prod" "request complete"'

# Output format: "text" (default), "table" or "ndjson"
format: text
quiet: false
verbose: false

http:
  timeout: 30s
  attempts: 3
  retry_delay: 0s
  # 0 = unlimited
  requests_per_second: 0
  page_size: 1000
  # 0 = follow every cursor
  max_pages: 0

reports:
  default_time: -10m
  # %s receives the rollup filter
  rollup_query: '"translation--prod" "%s"'
  rollup_top: 11
  hourly_query: '"translation--prod" "About to make to Endeca"'
  presets:
    oneoff:
      query: '"translation--prod-" "status=404" -"return to FE"'
      time: -24h
      extractor: url
      output: oneoff_report.csv
    oneoff-endeca:
      query: 'json.level:ERROR  ("call.endeca.malformed-resp-payload")'
      time: -12h
      extractor: req_url
      output: oneoff_endeca_report.csv
`

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	_, err := io.WriteString(globals.Stdout, sampleConfig)
	return err
}
