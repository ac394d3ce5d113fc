// Package cli implements the cobra-based command-line surface for
// breachwatch.
//
// The tool has a single operation, so the root command carries it directly:
// `breachwatch <email>` runs the lookup, `-h`/`--help` prints usage and
// exits 0, `--version` prints build information. This file defines the root
// command, global flags, and the error-to-exit-code translation.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/breachwatch/internal/model"
)

// Global flag variables shared across the command.
// These are bound to cobra persistent flags on the root command.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, the LookupResult is printed as structured JSON for
	// machine consumption. When false (default), output is a single
	// human-readable line.
	jsonOutput bool

	// verbose enables detailed trace output for debugging.
	// When true, additional information about the request is printed
	// to stderr.
	verbose bool
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// Unlike multi-command tools, the root command performs the lookup itself:
// the only positional argument is the email address to check.
func NewRootCommand() *cobra.Command {
	flags := &checkFlags{}

	rootCmd := &cobra.Command{
		// Use is the one-line usage pattern shown in help output.
		Use:   "breachwatch <email>",
		Short: "Check an email address against known data breaches",
		Long: `breachwatch queries a breach-notification API (Have I Been Pwned) and
reports whether the given email address appears in known public data
breaches.

The API key is read from the BREACH_API_KEY environment variable, the
--api-key flag, or a config file (~/.config/breachwatch/config.json,
JSONC or YAML).

Examples:
  breachwatch user@example.com
  breachwatch --json user@example.com
  BREACH_API_KEY=... breachwatch user@example.com`,

		// At most one positional argument (the email address). The
		// zero-argument case is handled in RunE so we can print usage to
		// stderr and exit with the generic usage error code.
		Args: cobra.MaximumNArgs(1),

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Missing address: usage goes to stderr, exit code is the
				// generic usage error, not invalid-input (no input at all
				// was given).
				fmt.Fprintln(os.Stderr, cmd.UsageString())
				return model.NewCLIError(model.ExitGeneralError,
					"missing required <email> argument")
			}
			return runCheck(cmd.Context(), flags, args[0])
		},
	}

	// PersistentFlags so a future subcommand split inherits them unchanged.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	flags.register(rootCmd)

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by the command and translates them into
// appropriate OS exit codes. CLIError types carry their own exit codes;
// other errors (including cobra's own flag-parsing errors) default to
// exit code 1.
func Execute(ctx context.Context, rootCmd *cobra.Command) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Check if the error is a CLIError with a specific exit code.
		// errors.As would also work here, but a type assertion is simpler
		// for this single-level check.
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		// Generic error — exit with code 1.
		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode, because stdout is
		// reserved for successful lookup output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		// Text format: "Error: <message>" on stderr.
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
// Used for debug/trace output that shows what request is being performed.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
