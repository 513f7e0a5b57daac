package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_credvault() {
    local cur prev words cword
    _init_completion || return

    local commands="init ls show add edit rm mv sort passwd export import diff keyring recent help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        init|ls|show|add|edit|rm|mv|sort|passwd|diff)
            if [[ "$prev" == "-f" ]]; then
                _filedir
            fi
            ;;
        export|import)
            if [[ "$prev" == "-format" ]]; then
                COMPREPLY=($(compgen -W "json psafe" -- "$cur"))
            else
                _filedir
            fi
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save delete status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _credvault credvault
`

const zshCompletion = `#compdef credvault

_credvault() {
    local -a commands
    commands=(
        'init:Create a new vault file'
        'ls:List vault entries'
        'show:Show one entry'
        'add:Add an entry'
        'edit:Edit an entry'
        'rm:Remove entries'
        'mv:Move an entry up or down'
        'sort:Sort entries by service name'
        'passwd:Change vault password'
        'export:Export decrypted entries'
        'import:Import entries from a file'
        'diff:Compare vault with a JSON file'
        'keyring:Manage password in OS keyring'
        'recent:List recently opened vaults'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'credvault commands' commands
            ;;
        args)
            case "${words[2]}" in
                export|import|diff)
                    _arguments '-f[vault file]:file:_files' '*:file:_files'
                    ;;
                keyring)
                    _values 'subcommand' save delete status
                    ;;
                help)
                    _describe -t commands 'credvault commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
                *)
                    _arguments '-f[vault file]:file:_files'
                    ;;
            esac
            ;;
    esac
}

_credvault "$@"
`

const fishCompletion = `# credvault fish completions

set -l commands init ls show add edit rm mv sort passwd export import diff keyring recent help completion

complete -c credvault -f

# Commands
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a init -d 'Create a new vault file'
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a ls -d 'List vault entries'
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a show -d 'Show one entry'
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a add -d 'Add an entry'
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a edit -d 'Edit an entry'
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a rm -d 'Remove entries'
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a mv -d 'Move an entry up or down'
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a sort -d 'Sort entries by service name'
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a passwd -d 'Change vault password'
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a export -d 'Export decrypted entries'
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a import -d 'Import entries from a file'
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a diff -d 'Compare vault with a JSON file'
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Manage password in OS keyring'
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a recent -d 'List recently opened vaults'
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c credvault -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# keyring subcommands
complete -c credvault -n "__fish_seen_subcommand_from keyring" -a "save delete status"

# export/import formats
complete -c credvault -n "__fish_seen_subcommand_from export import" -l format -a "json psafe"

# help completions
complete -c credvault -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c credvault -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
