package cli

import (
	"fmt"
)

// CompletionCmd generates shell completions
type CompletionCmd struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Shell type (bash, zsh, fish)"`
}

// Run executes the completion command
func (c *CompletionCmd) Run(globals *Globals) error {
	var script string
	switch c.Shell {
	case "bash":
		script = bashCompletion
	case "zsh":
		script = zshCompletion
	case "fish":
		script = fishCompletion
	default:
		return fmt.Errorf("unsupported shell: %s", c.Shell)
	}
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}

const bashCompletion = `# faultline bash completion script
# Add to ~/.bashrc or ~/.bash_profile:
#   eval "$(faultline completion bash)"

_faultline_completions() {
    local cur prev words cword
    _init_completion || return

    local commands="logs rollup oneoff hourly shell config examples completion version"
    local global_flags="-f --format -q --quiet -v --verbose -c --config --pager --no-color"
    local filter_flags="-p --grep --exclude --exclude-fault --min-level -w --where"

    case "${prev}" in
        faultline)
            COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
            return
            ;;
        -f|--format)
            COMPREPLY=($(compgen -W "text table ndjson" -- "${cur}"))
            return
            ;;
        -x|--extractor)
            COMPREPLY=($(compgen -W "fault url req_url rollup" -- "${cur}"))
            return
            ;;
        --min-level)
            COMPREPLY=($(compgen -W "TRACE DEBUG INFO WARN ERROR FATAL" -- "${cur}"))
            return
            ;;
        oneoff)
            COMPREPLY=($(compgen -W "oneoff oneoff-endeca --list" -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
    esac

    case "${words[1]}" in
        logs)
            COMPREPLY=($(compgen -W "-Q --query -x --extractor -n --top --normalize ${filter_flags} ${global_flags}" -- "${cur}"))
            ;;
        rollup)
            COMPREPLY=($(compgen -W "--from -n --top --normalize ${filter_flags} ${global_flags}" -- "${cur}"))
            ;;
        oneoff)
            COMPREPLY=($(compgen -W "-t --time --from -Q --query -x --extractor -o --out --normalize --list ${filter_flags} ${global_flags}" -- "${cur}"))
            ;;
        hourly)
            COMPREPLY=($(compgen -W "-H --hours -Q --query --from ${global_flags}" -- "${cur}"))
            ;;
        shell)
            COMPREPLY=($(compgen -W "-i --file --commands ${global_flags}" -- "${cur}"))
            ;;
        config)
            COMPREPLY=($(compgen -W "show path generate" -- "${cur}"))
            ;;
        *)
            COMPREPLY=($(compgen -W "${commands} ${global_flags}" -- "${cur}"))
            ;;
    esac
}

complete -F _faultline_completions faultline
`

const zshCompletion = `#compdef faultline
# faultline zsh completion script
# Add to ~/.zshrc:
#   eval "$(faultline completion zsh)"

_faultline() {
    local -a commands
    commands=(
        'logs:Count faults of the main query as a share of requests'
        'rollup:Rank the URLs hit by events matching a fault filter'
        'oneoff:Count URLs for a preset query and write them to CSV'
        'hourly:Count a query per hour'
        'shell:Read chat-style commands from stdin'
        'config:Show or manage configuration'
        'examples:Show usage examples'
        'completion:Generate shell completions'
        'version:Show version information'
    )

    local -a global_opts
    global_opts=(
        '-f[Output format]:format:(text table ndjson)'
        '--format[Output format]:format:(text table ndjson)'
        '-q[Suppress progress notices]'
        '--quiet[Suppress progress notices]'
        '-v[Show debug logging]'
        '--verbose[Show debug logging]'
        '--config[Config file]:file:_files'
        '--pager[Show text reports in a pager]'
        '--no-color[Disable styled output]'
    )

    local -a filter_opts
    filter_opts=(
        '--grep[Regex the message must match]:pattern:'
        '*--exclude[Regex to exclude]:pattern:'
        '*--exclude-fault[Fault to drop]:fault:'
        '--min-level[Minimum json.level]:level:(TRACE DEBUG INFO WARN ERROR FATAL)'
        '*--where[Field filter]:clause:'
    )

    _arguments -C \
        $global_opts \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                logs)
                    _arguments \
                        '--query[Override the configured query]:query:' \
                        '--extractor[Field to count by]:extractor:(fault url req_url rollup)' \
                        '--top[Show only the N most frequent keys]:n:' \
                        '--normalize[Collapse ids and numbers in keys]' \
                        $filter_opts $global_opts
                    ;;
                rollup)
                    _arguments \
                        '--from[Start of the window]:from:' \
                        '--top[Number of URLs to show]:n:' \
                        '--normalize[Collapse ids and numbers in URLs]' \
                        $filter_opts $global_opts
                    ;;
                oneoff)
                    _arguments \
                        '1:preset:(oneoff oneoff-endeca)' \
                        '--time[Window length]:time:' \
                        '--out[CSV path]:file:_files' \
                        '--list[List presets]' \
                        $filter_opts $global_opts
                    ;;
                hourly)
                    _arguments \
                        '--hours[Number of one-hour buckets]:hours:' \
                        '--query[Override the hourly query]:query:' \
                        '--from[Start of the first bucket]:from:' \
                        $global_opts
                    ;;
                config)
                    _arguments '1:action:(show path generate)'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

compdef _faultline faultline
`

const fishCompletion = `# faultline fish completion script
# Add to ~/.config/fish/completions/faultline.fish

# Disable file completion by default
complete -c faultline -f

# Commands
complete -c faultline -n "__fish_use_subcommand" -a "logs" -d "Count faults as a share of requests"
complete -c faultline -n "__fish_use_subcommand" -a "rollup" -d "Rank the URLs behind a fault"
complete -c faultline -n "__fish_use_subcommand" -a "oneoff" -d "Count URLs for a preset query"
complete -c faultline -n "__fish_use_subcommand" -a "hourly" -d "Count a query per hour"
complete -c faultline -n "__fish_use_subcommand" -a "shell" -d "Read chat-style commands from stdin"
complete -c faultline -n "__fish_use_subcommand" -a "config" -d "Show or manage configuration"
complete -c faultline -n "__fish_use_subcommand" -a "examples" -d "Show usage examples"
complete -c faultline -n "__fish_use_subcommand" -a "completion" -d "Generate shell completions"
complete -c faultline -n "__fish_use_subcommand" -a "version" -d "Show version information"

# Global flags
complete -c faultline -s f -l format -d "Output format" -xa "text table ndjson"
complete -c faultline -s q -l quiet -d "Suppress progress notices"
complete -c faultline -s v -l verbose -d "Show debug logging"
complete -c faultline -s c -l config -d "Config file" -r -F
complete -c faultline -l pager -d "Show text reports in a pager"
complete -c faultline -l no-color -d "Disable styled output"

# Filter flags
complete -c faultline -n "__fish_seen_subcommand_from logs rollup oneoff" -s p -l grep -d "Regex the message must match"
complete -c faultline -n "__fish_seen_subcommand_from logs rollup oneoff" -l exclude -d "Regex to exclude"
complete -c faultline -n "__fish_seen_subcommand_from logs rollup oneoff" -l exclude-fault -d "Fault to drop"
complete -c faultline -n "__fish_seen_subcommand_from logs rollup oneoff" -l min-level -d "Minimum json.level" -xa "TRACE DEBUG INFO WARN ERROR FATAL"
complete -c faultline -n "__fish_seen_subcommand_from logs rollup oneoff" -s w -l where -d "Field filter"

# Logs command
complete -c faultline -n "__fish_seen_subcommand_from logs" -s Q -l query -d "Override the configured query"
complete -c faultline -n "__fish_seen_subcommand_from logs" -s x -l extractor -d "Field to count by" -xa "fault url req_url rollup"
complete -c faultline -n "__fish_seen_subcommand_from logs" -s n -l top -d "Show only the N most frequent keys"
complete -c faultline -n "__fish_seen_subcommand_from logs rollup oneoff" -l normalize -d "Collapse ids and numbers in keys"

# Oneoff command
complete -c faultline -n "__fish_seen_subcommand_from oneoff" -a "oneoff oneoff-endeca"
complete -c faultline -n "__fish_seen_subcommand_from oneoff" -s o -l out -d "CSV path" -r -F
complete -c faultline -n "__fish_seen_subcommand_from oneoff" -l list -d "List presets"

# Hourly command
complete -c faultline -n "__fish_seen_subcommand_from hourly" -s H -l hours -d "Number of one-hour buckets"

# Config and completion
complete -c faultline -n "__fish_seen_subcommand_from config" -a "show path generate"
complete -c faultline -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
