// Package shell generates the shell function that lets treehouse change
// the current directory.
//
// A subprocess cannot cd its parent shell. The wrapper runs add, pr and
// path, captures the path they print on stdout and cds into it. Prompts and
// diagnostics go to stderr and stay visible.
package shell

import (
	"fmt"
	"strings"
)

// Supported lists the shells Script knows.
var Supported = []string{"bash", "zsh", "fish"}

// cdCommands are the subcommands whose stdout is a directory.
var cdCommands = []string{"add", "pr", "path"}

// Script returns the wrapper function for shell.
func Script(shell string) (string, error) {
	switch shell {
	case "bash":
		return posixScript("bash", `eval "$(treehouse shell bash)"`, "~/.bashrc"), nil
	case "zsh":
		return posixScript("zsh", `eval "$(treehouse shell zsh)"`, "~/.zshrc"), nil
	case "fish":
		return fishScript, nil
	}
	return "", fmt.Errorf("unsupported shell %q: must be one of %s", shell, strings.Join(Supported, ", "))
}

func posixScript(shell, install, rc string) string {
	return fmt.Sprintf(`# treehouse %s integration
# Install: add %s to %s

treehouse() {
    case "$1" in
        %s)
            local out
            out="$(command treehouse "$@")" || return $?
            if [ -n "$out" ] && [ -d "$out" ]; then
                cd "$out"
            elif [ -n "$out" ]; then
                printf '%%s\n' "$out"
            fi
            ;;
        *)
            command treehouse "$@"
            ;;
    esac
}
`, shell, install, rc, strings.Join(cdCommands, "|"))
}

const fishScript = `# treehouse fish integration
# Install: treehouse shell fish | source
# Or add that line to ~/.config/fish/config.fish

function treehouse --wraps=treehouse --description 'Git worktree helper'
    if test (count $argv) -gt 0; and contains -- $argv[1] add pr path
        set -l out (command treehouse $argv)
        or return $status
        if test -n "$out"; and test -d "$out"
            cd $out
        else if test -n "$out"
            printf '%s\n' $out
        end
    else
        command treehouse $argv
    end
end
`
