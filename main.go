package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/live-labs/credvault/cmd"
	"github.com/live-labs/credvault/internal/crypto"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		runInit(os.Args[2:])
	case "ls", "list":
		runLs(os.Args[2:])
	case "show":
		runShow(os.Args[2:])
	case "add":
		runAdd(os.Args[2:])
	case "edit":
		runEdit(os.Args[2:])
	case "rm":
		runRm(os.Args[2:])
	case "mv":
		runMv(os.Args[2:])
	case "sort":
		runSort(os.Args[2:])
	case "passwd":
		runPasswd(os.Args[2:])
	case "export":
		runExport(os.Args[2:])
	case "import":
		runImport(os.Args[2:])
	case "diff":
		runDiff(os.Args[2:])
	case "keyring":
		runKeyring(os.Args[2:])
	case "recent":
		runRecent(os.Args[2:])
	case "completion":
		runCompletion(os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func vaultFlag(fs *flag.FlagSet) *string {
	return fs.String("f", "", "Vault file (default $CREDVAULT_FILE or credentials.vault)")
}

func parseFlags(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func runInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	file := vaultFlag(fs)
	parseFlags(fs, args)

	cmd.Init(cmd.VaultPath(*file))
}

func runLs(args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	file := vaultFlag(fs)
	parseFlags(fs, args)

	cmd.List(cmd.VaultPath(*file))
}

func runShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	file := vaultFlag(fs)
	reveal := fs.Bool("p", false, "Reveal the password")
	parseFlags(fs, args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: credvault show [-f vault] [-p] <id>")
		os.Exit(1)
	}
	cmd.Show(cmd.VaultPath(*file), cmd.ParseEntryID(fs.Arg(0)), *reveal)
}

func runAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	file := vaultFlag(fs)
	service := fs.String("service", "", "Service name (required)")
	username := fs.String("username", "", "Username")
	password := fs.String("password", "", "Password (omit to be prompted)")
	notes := fs.String("notes", "", "Notes")
	generate := fs.Bool("gen", false, "Generate a random password")
	genLength := fs.Int("len", crypto.DefaultPasswordLength, "Generated password length")
	parseFlags(fs, args)

	// Positional service name is allowed as a shortcut
	if *service == "" && fs.NArg() == 1 {
		*service = fs.Arg(0)
	}
	cmd.Add(cmd.VaultPath(*file), *service, *username, *password, *notes, *generate, *genLength)
}

func runEdit(args []string) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	file := vaultFlag(fs)
	service := fs.String("service", "", "New service name")
	username := fs.String("username", "", "New username")
	password := fs.String("password", "", "New password")
	notes := fs.String("notes", "", "New notes")
	parseFlags(fs, args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: credvault edit [-f vault] [flags] <id>")
		os.Exit(1)
	}

	// Only flags that were actually set are applied, so a field can be
	// cleared with an explicit empty value.
	set := map[string]*string{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "service":
			set["service"] = service
		case "username":
			set["username"] = username
		case "password":
			set["password"] = password
		case "notes":
			set["notes"] = notes
		}
	})
	if len(set) == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to change. Use -service, -username, -password or -notes.")
		os.Exit(1)
	}

	cmd.Edit(cmd.VaultPath(*file), cmd.ParseEntryID(fs.Arg(0)),
		set["service"], set["username"], set["password"], set["notes"])
}

func runRm(args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	file := vaultFlag(fs)
	parseFlags(fs, args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: credvault rm [-f vault] <id> [id...]")
		os.Exit(1)
	}
	ids := make([]int, 0, fs.NArg())
	for _, arg := range fs.Args() {
		ids = append(ids, cmd.ParseEntryID(arg))
	}
	cmd.Remove(cmd.VaultPath(*file), ids)
}

func runMv(args []string) {
	fs := flag.NewFlagSet("mv", flag.ExitOnError)
	file := vaultFlag(fs)
	parseFlags(fs, args)

	if fs.NArg() < 2 || fs.NArg() > 3 {
		fmt.Fprintln(os.Stderr, "Usage: credvault mv [-f vault] <id> <up|down> [n]")
		os.Exit(1)
	}

	id := cmd.ParseEntryID(fs.Arg(0))
	steps := 1
	if fs.NArg() == 3 {
		n, err := strconv.Atoi(fs.Arg(2))
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "Error: invalid step count %q\n", fs.Arg(2))
			os.Exit(1)
		}
		steps = n
	}

	var delta int
	switch fs.Arg(1) {
	case "up":
		delta = -steps
	case "down":
		delta = steps
	default:
		fmt.Fprintf(os.Stderr, "Error: direction must be up or down, got %q\n", fs.Arg(1))
		os.Exit(1)
	}
	cmd.Move(cmd.VaultPath(*file), id, delta)
}

func runSort(args []string) {
	fs := flag.NewFlagSet("sort", flag.ExitOnError)
	file := vaultFlag(fs)
	parseFlags(fs, args)

	cmd.Sort(cmd.VaultPath(*file))
}

func runPasswd(args []string) {
	fs := flag.NewFlagSet("passwd", flag.ExitOnError)
	file := vaultFlag(fs)
	parseFlags(fs, args)

	cmd.Passwd(cmd.VaultPath(*file))
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	file := vaultFlag(fs)
	out := fs.String("o", "", "Output file (default stdout)")
	format := fs.String("format", "json", "Export format: json or psafe")
	parseFlags(fs, args)

	cmd.Export(cmd.VaultPath(*file), *out, *format)
}

func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := vaultFlag(fs)
	format := fs.String("format", "json", "Import format: json or psafe")
	parseFlags(fs, args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: credvault import [-f vault] [-format json|psafe] <file>")
		os.Exit(1)
	}
	cmd.Import(cmd.VaultPath(*file), fs.Arg(0), *format)
}

func runDiff(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	file := vaultFlag(fs)
	parseFlags(fs, args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: credvault diff [-f vault] <file.json>")
		os.Exit(1)
	}
	cmd.Diff(cmd.VaultPath(*file), fs.Arg(0))
}

func runKeyring(args []string) {
	fs := flag.NewFlagSet("keyring", flag.ExitOnError)
	file := vaultFlag(fs)
	parseFlags(fs, args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: credvault keyring [-f vault] <save|delete|status>")
		os.Exit(1)
	}

	path := cmd.VaultPath(*file)
	switch fs.Arg(0) {
	case "save":
		cmd.KeyringSave(path)
	case "delete":
		cmd.KeyringDelete(path)
	case "status":
		cmd.KeyringStatus(path)
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring subcommand: %s\n", fs.Arg(0))
		os.Exit(1)
	}
}

func runRecent(args []string) {
	fs := flag.NewFlagSet("recent", flag.ExitOnError)
	parseFlags(fs, args)

	cmd.Recent()
}

func runCompletion(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: credvault completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("credvault - Encrypted credential vault")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  credvault <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init        Create a new vault file")
	fmt.Println("  ls          List vault entries")
	fmt.Println("  show        Show one entry")
	fmt.Println("  add         Add an entry")
	fmt.Println("  edit        Edit an entry")
	fmt.Println("  rm          Remove entries")
	fmt.Println("  mv          Move an entry up or down the list")
	fmt.Println("  sort        Sort entries by service name (direction alternates)")
	fmt.Println("  passwd      Change vault password")
	fmt.Println("  export      Export decrypted entries as JSON")
	fmt.Println("  import      Import entries from a JSON file")
	fmt.Println("  diff        Compare vault contents with a JSON file")
	fmt.Println("  keyring     Manage password in OS keyring")
	fmt.Println("  recent      List recently opened vaults")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("The vault file defaults to credentials.vault in the current directory;")
	fmt.Println("override with -f or the CREDVAULT_FILE environment variable. The")
	fmt.Println("password is prompted, or read from CREDVAULT_PASSWORD, or taken from")
	fmt.Println("the OS keyring after 'credvault keyring save'.")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  credvault init                  # Create credentials.vault")
	fmt.Println("  credvault add -service github -username me -gen")
	fmt.Println("  credvault show -p 1             # Show entry 1 with password")
	fmt.Println("  credvault mv 3 up               # Move entry 3 one position up")
	fmt.Println()
	fmt.Println("Use 'credvault help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "init":
		fmt.Println("credvault init [-f vault]")
		fmt.Println()
		fmt.Println("Creates a new encrypted vault file.")
		fmt.Println("Prompts for a password that will be used for encryption.")
		fmt.Println("The password is not stored anywhere - you must remember it.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  credvault init                   # Create credentials.vault")
		fmt.Println("  credvault init -f work.vault     # Create work.vault")
	case "ls", "list":
		fmt.Println("credvault ls [-f vault]")
		fmt.Println()
		fmt.Println("Lists all entries in order. Passwords are never printed here.")
	case "show":
		fmt.Println("credvault show [-f vault] [-p] <id>")
		fmt.Println()
		fmt.Println("Shows one entry. The password is masked unless -p is given.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -p    Reveal the password")
	case "add":
		fmt.Println("credvault add [-f vault] -service <name> [flags]")
		fmt.Println()
		fmt.Println("Adds an entry at the end of the list.")
		fmt.Println("With no -password and no -gen, the password is prompted.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -service     Service name (required; also accepted as argument)")
		fmt.Println("  -username    Username")
		fmt.Println("  -password    Password")
		fmt.Println("  -notes       Notes")
		fmt.Println("  -gen         Generate a random password")
		fmt.Println("  -len         Generated password length (default 20)")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  credvault add -service github -username me -gen")
		fmt.Println("  credvault add mail.example      # Prompts for the password")
	case "edit":
		fmt.Println("credvault edit [-f vault] [flags] <id>")
		fmt.Println()
		fmt.Println("Changes the given fields of an entry. Fields without a flag keep")
		fmt.Println("their value; an explicit empty value clears a field. The entry")
		fmt.Println("keeps its position in the list.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -service     New service name")
		fmt.Println("  -username    New username")
		fmt.Println("  -password    New password")
		fmt.Println("  -notes       New notes")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  credvault edit -password hunter2 3")
	case "rm":
		fmt.Println("credvault rm [-f vault] <id> [id...]")
		fmt.Println()
		fmt.Println("Removes entries by id. Remaining entries keep their ids; freed ids")
		fmt.Println("are never handed out again.")
	case "mv":
		fmt.Println("credvault mv [-f vault] <id> <up|down> [n]")
		fmt.Println()
		fmt.Println("Moves an entry n positions (default 1) up or down the list.")
		fmt.Println("Moving past the top or bottom leaves the list unchanged.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  credvault mv 3 up")
		fmt.Println("  credvault mv 3 down 2")
	case "sort":
		fmt.Println("credvault sort [-f vault]")
		fmt.Println()
		fmt.Println("Sorts entries by service name, case-insensitively. The first sort")
		fmt.Println("is ascending; each further invocation flips the direction. The")
		fmt.Println("direction is remembered per vault.")
	case "passwd":
		fmt.Println("credvault passwd [-f vault]")
		fmt.Println()
		fmt.Println("Changes the vault password.")
		fmt.Println("Requires both the current and new passwords.")
		fmt.Println("Re-encrypts the whole vault with the new password.")
	case "export":
		fmt.Println("credvault export [-f vault] [-o file] [-format json|psafe]")
		fmt.Println()
		fmt.Println("Writes the decrypted vault as plaintext JSON to stdout or -o.")
		fmt.Println("Format psafe emits a Password Safe record list instead of the")
		fmt.Println("vault document.")
		fmt.Println()
		fmt.Println("The output contains all passwords in the clear. Handle with care.")
	case "import":
		fmt.Println("credvault import [-f vault] [-format json|psafe] <file>")
		fmt.Println()
		fmt.Println("Appends entries from a plaintext JSON file to the vault. Format")
		fmt.Println("json accepts a vault document or a bare record list; psafe accepts")
		fmt.Println("a Password Safe record list. Imported entries get fresh ids and")
		fmt.Println("are placed at the end.")
	case "diff":
		fmt.Println("credvault diff [-f vault] <file.json>")
		fmt.Println()
		fmt.Println("Compares the vault document against a plaintext JSON file and")
		fmt.Println("prints a unified diff. No output means they match.")
	case "keyring":
		fmt.Println("credvault keyring [-f vault] <save|delete|status>")
		fmt.Println()
		fmt.Println("Manages the cached vault password in the OS keyring.")
		fmt.Println("  save     Verify the password and store it")
		fmt.Println("  delete   Remove the stored password")
		fmt.Println("  status   Report whether a password is stored")
	case "recent":
		fmt.Println("credvault recent")
		fmt.Println()
		fmt.Println("Lists vaults opened on this machine, most recent first.")
		fmt.Println("Does not require a password.")
	case "completion":
		fmt.Println("credvault completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(credvault completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(credvault completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  credvault completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
