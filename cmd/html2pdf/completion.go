package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long   string   // --output
	Short  string   // -o (empty if none)
	IsBool bool     // takes no value
	Desc   string   // help text
	Values []string // for enum flags
	IsFile bool     // completes file names
	IsDir  bool     // completes directories
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	FilePattern string // glob for file arguments (e.g., "*.html")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet; this map
// adds only what the FlagSet cannot express.
type completionMeta struct {
	Values []string // enum values
	IsFile bool     // file completion
	IsDir  bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"backend":     {Values: []string{"chromedp", "rod"}},
	"config":      {IsFile: true},
	"chrome-path": {IsFile: true},
	"output":      {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag
// FlagSet, enriched with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:   f.Name,
			Short:  f.Shorthand,
			Desc:   f.Usage,
			IsBool: f.Value.Type() == "bool",
		}
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			fd.Values = meta.Values
			fd.IsFile = meta.IsFile
			fd.IsDir = meta.IsDir
		}
		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet - single source of truth.
func getCommands() []commandDef {
	var f convertFlags
	convertFlagDefs := extractFlagsFromFlagSet(buildConvertFlagSet(&f))

	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert HTML files or URLs to PDF",
			Flags:       convertFlagDefs,
			TakesFiles:  true,
			FilePattern: "*.html,*.htm",
		},
		{
			Name:  "doctor",
			Desc:  "Diagnose the browser environment",
			Flags: []flagDef{{Long: "json", IsBool: true, Desc: "output JSON"}},
		},
		{
			Name:  "completion",
			Desc:  "Generate shell completion script",
			Flags: nil,
		},
		{
			Name:  "version",
			Desc:  "Show version information",
			Flags: nil,
		},
		{
			Name:  "help",
			Desc:  "Show help for a command",
			Flags: nil,
		},
	}
}

// GenerateCompletion writes a shell completion script to w.
// Returns an error if the shell is unsupported or the write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(html2pdf completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(html2pdf completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    html2pdf completion fish > ~/.config/fish/completions/html2pdf.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    html2pdf completion powershell | Out-String | Invoke-Expression")
}

// longFlags renders the command's flags as "--name" words.
func longFlags(cmd commandDef) []string {
	words := make([]string, 0, len(cmd.Flags))
	for _, f := range cmd.Flags {
		words = append(words, "--"+f.Long)
	}
	return words
}

// generateBash writes a bash completion script built from the command
// registry.
func generateBash(w io.Writer) error {
	cmds := getCommands()

	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}

	fmt.Fprintln(w, "# bash completion for html2pdf")
	fmt.Fprintln(w, "_html2pdf() {")
	fmt.Fprintln(w, "    local cur prev cmd")
	fmt.Fprintln(w, "    COMPREPLY=()")
	fmt.Fprintln(w, "    cur=\"${COMP_WORDS[COMP_CWORD]}\"")
	fmt.Fprintln(w, "    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"")
	fmt.Fprintln(w, "    cmd=\"${COMP_WORDS[1]}\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if [[ $COMP_CWORD -eq 1 ]]; then")
	fmt.Fprintf(w, "        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(names, " "))
	fmt.Fprintln(w, "        return 0")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case \"$cmd\" in")
	for _, c := range cmds {
		fmt.Fprintf(w, "    %s)\n", c.Name)
		if c.Name == "completion" {
			fmt.Fprintln(w, "        COMPREPLY=( $(compgen -W \"bash zsh fish powershell\" -- \"$cur\") )")
			fmt.Fprintln(w, "        return 0")
			fmt.Fprintln(w, "        ;;")
			continue
		}
		if c.Name == "help" {
			fmt.Fprintf(w, "        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(names, " "))
			fmt.Fprintln(w, "        return 0")
			fmt.Fprintln(w, "        ;;")
			continue
		}
		// Value completion for flags that take one
		valueCases := make([]string, 0)
		for _, f := range c.Flags {
			switch {
			case len(f.Values) > 0:
				valueCases = append(valueCases, fmt.Sprintf(
					"        --%s) COMPREPLY=( $(compgen -W %q -- \"$cur\") ); return 0 ;;",
					f.Long, strings.Join(f.Values, " ")))
			case f.IsDir:
				valueCases = append(valueCases, fmt.Sprintf(
					"        --%s) COMPREPLY=( $(compgen -d -- \"$cur\") ); return 0 ;;", f.Long))
			case f.IsFile:
				valueCases = append(valueCases, fmt.Sprintf(
					"        --%s) COMPREPLY=( $(compgen -f -- \"$cur\") ); return 0 ;;", f.Long))
			}
		}
		if len(valueCases) > 0 {
			fmt.Fprintln(w, "        case \"$prev\" in")
			for _, vc := range valueCases {
				fmt.Fprintln(w, vc)
			}
			fmt.Fprintln(w, "        esac")
		}
		fmt.Fprintln(w, "        if [[ \"$cur\" == -* ]]; then")
		fmt.Fprintf(w, "            COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(longFlags(c), " "))
		if c.TakesFiles {
			fmt.Fprintln(w, "        else")
			fmt.Fprintln(w, "            COMPREPLY=( $(compgen -f -- \"$cur\") )")
		}
		fmt.Fprintln(w, "        fi")
		fmt.Fprintln(w, "        return 0")
		fmt.Fprintln(w, "        ;;")
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "complete -F _html2pdf html2pdf")
	return nil
}

// generateZsh writes a zsh completion script built from the command
// registry.
func generateZsh(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "#compdef html2pdf")
	fmt.Fprintln(w, "# zsh completion for html2pdf")
	fmt.Fprintln(w, "_html2pdf() {")
	fmt.Fprintln(w, "    local -a commands")
	fmt.Fprintln(w, "    commands=(")
	for _, c := range cmds {
		fmt.Fprintf(w, "        '%s:%s'\n", c.Name, c.Desc)
	}
	fmt.Fprintln(w, "    )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if (( CURRENT == 2 )); then")
	fmt.Fprintln(w, "        _describe 'command' commands")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case \"$words[2]\" in")
	for _, c := range cmds {
		fmt.Fprintf(w, "    %s)\n", c.Name)
		if c.Name == "completion" {
			fmt.Fprintln(w, "        _values 'shell' bash zsh fish powershell")
			fmt.Fprintln(w, "        ;;")
			continue
		}
		if len(c.Flags) > 0 {
			fmt.Fprintln(w, "        _arguments \\")
			specs := make([]string, 0, len(c.Flags)+1)
			for _, f := range c.Flags {
				spec := "--" + f.Long + "[" + strings.ReplaceAll(f.Desc, "'", "") + "]"
				switch {
				case len(f.Values) > 0:
					spec += ":value:(" + strings.Join(f.Values, " ") + ")"
				case f.IsDir:
					spec += ":directory:_files -/"
				case f.IsFile:
					spec += ":file:_files"
				case !f.IsBool:
					spec += ":value:"
				}
				specs = append(specs, "            '"+spec+"'")
			}
			if c.TakesFiles {
				specs = append(specs, "            '*:file:_files'")
			}
			fmt.Fprintln(w, strings.Join(specs, " \\\n"))
		} else if c.TakesFiles {
			fmt.Fprintln(w, "        _files")
		}
		fmt.Fprintln(w, "        ;;")
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "compdef _html2pdf html2pdf")
	return nil
}

// generateFish writes a fish completion script built from the command
// registry.
func generateFish(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "# fish completion for html2pdf")
	fmt.Fprintln(w, "complete -c html2pdf -f")
	for _, c := range cmds {
		fmt.Fprintf(w, "complete -c html2pdf -n '__fish_use_subcommand' -a %s -d %q\n", c.Name, c.Desc)
	}
	for _, c := range cmds {
		cond := fmt.Sprintf("__fish_seen_subcommand_from %s", c.Name)
		if c.Name == "completion" {
			fmt.Fprintf(w, "complete -c html2pdf -n '%s' -a 'bash zsh fish powershell'\n", cond)
			continue
		}
		if c.TakesFiles {
			fmt.Fprintf(w, "complete -c html2pdf -n '%s' -F\n", cond)
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c html2pdf -n '%s' -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			if !f.IsBool {
				line += " -r"
			}
			if len(f.Values) > 0 {
				line += fmt.Sprintf(" -a '%s'", strings.Join(f.Values, " "))
			}
			line += fmt.Sprintf(" -d %q", f.Desc)
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

// generatePowerShell writes a PowerShell completion script built from
// the command registry.
func generatePowerShell(w io.Writer) error {
	cmds := getCommands()

	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, "'"+c.Name+"'")
	}

	fmt.Fprintln(w, "# PowerShell completion for html2pdf")
	fmt.Fprintln(w, "Register-ArgumentCompleter -Native -CommandName html2pdf -ScriptBlock {")
	fmt.Fprintln(w, "    param($wordToComplete, $commandAst, $cursorPosition)")
	fmt.Fprintln(w, "    $tokens = $commandAst.CommandElements | ForEach-Object { $_.ToString() }")
	fmt.Fprintf(w, "    $commands = @(%s)\n", strings.Join(names, ", "))
	fmt.Fprintln(w, "    if ($tokens.Count -le 1 -or ($tokens.Count -eq 2 -and $wordToComplete)) {")
	fmt.Fprintln(w, "        $commands | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {")
	fmt.Fprintln(w, "            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)")
	fmt.Fprintln(w, "        }")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w, "    switch ($tokens[1]) {")
	for _, c := range cmds {
		if len(c.Flags) == 0 && c.Name != "completion" {
			continue
		}
		fmt.Fprintf(w, "        '%s' {\n", c.Name)
		if c.Name == "completion" {
			fmt.Fprintln(w, "            @('bash', 'zsh', 'fish', 'powershell') | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {")
		} else {
			quoted := make([]string, 0, len(c.Flags))
			for _, f := range c.Flags {
				quoted = append(quoted, "'--"+f.Long+"'")
			}
			fmt.Fprintf(w, "            @(%s) | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n", strings.Join(quoted, ", "))
		}
		fmt.Fprintln(w, "                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)")
		fmt.Fprintln(w, "            }")
		fmt.Fprintln(w, "        }")
	}
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w, "}")
	return nil
}
