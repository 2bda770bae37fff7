// Package cmd implements the folio CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (build, figure, serve, check, init).
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-drift/folio/cmd/folio/internal/cache"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "folio",
	Short: "folio - declarative documents for stochastic calculus",
	Long: `folio renders the "Itô's Lemma: A Geometric Journey" article from a
declarative widget tree into a static HTML document, generates its figure,
and serves the result.

Use "folio <command> --help" for more information about a command.`,
	Usage: "folio <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	cache.SetGlobal(Version)

	// Handle no arguments
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Handle global flags and extract --cache-dir and --log-level
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Printf("folio version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--cache-dir", "--log-level":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", arg)
			}
			setGlobalFlag(arg, args[i+1])
			i++
		default:
			if name, value, ok := strings.Cut(arg, "="); ok && (name == "--cache-dir" || name == "--log-level") {
				setGlobalFlag(name, value)
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func setGlobalFlag(name, value string) {
	switch name {
	case "--cache-dir":
		cache.SetCacheDir(value)
	case "--log-level":
		logLevelFlag = value
	}
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println("  --cache-dir DIR      Override cache directory (default: ~/.folio)")
	fmt.Println("  --log-level LEVEL    Override log level (debug, info, warn, error)")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  FOLIO_CACHE_DIR      Cache directory override (lower priority than --cache-dir)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  folio build              Write the site to ./public")
	fmt.Println("  folio serve              Serve the article on 127.0.0.1:8080")
	fmt.Println("  folio check --dir public Report broken images and math")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}
