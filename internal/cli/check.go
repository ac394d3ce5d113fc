// Package cli — check.go implements the lookup that backs the root command.
//
// The flow mirrors the tool's whole responsibility: resolve configuration,
// build the Lookup Client, perform the single API call, and print the
// result as a human-readable line or as JSON.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/breachwatch/internal/config"
	"github.com/mmr-tortoise/breachwatch/internal/hibp"
	"github.com/mmr-tortoise/breachwatch/internal/model"
)

// checkFlags holds the flag values for the lookup.
// These are bound to cobra flags in register.
type checkFlags struct {
	// apiKey overrides the BREACH_API_KEY environment variable.
	apiKey string

	// baseURL overrides the API endpoint root (useful for proxies
	// and testing).
	baseURL string

	// configPath points at an explicit config file. When empty, the
	// standard locations are searched.
	configPath string

	// timeout bounds the API request.
	timeout time.Duration
}

// register binds the lookup flags onto the given command.
func (f *checkFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.apiKey, "api-key", "",
		"Breach API key (overrides BREACH_API_KEY and the config file)")
	cmd.Flags().StringVar(&f.baseURL, "base-url", "",
		"Breach API base URL (default: "+hibp.DefaultBaseURL+")")
	cmd.Flags().StringVar(&f.configPath, "config", "",
		"Path to a config file (default: search ~/.config/breachwatch/)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0,
		fmt.Sprintf("Request timeout (default %s)", hibp.DefaultTimeout))
}

// runCheck is the main logic function for the lookup.
// It resolves configuration, constructs the client, performs the single
// request, and prints the result.
func runCheck(ctx context.Context, flags *checkFlags, email string) error {
	// Step 1: Load the optional config file. An explicit --config path
	// must exist; the default search quietly finds nothing when the user
	// has no config file.
	var fileCfg *config.File
	configPath := flags.configPath
	if configPath == "" {
		configPath = config.Find()
	}
	if configPath != "" {
		var err error
		fileCfg, err = config.Load(configPath)
		if err != nil {
			if flags.configPath != "" {
				return err // Load already returns a coded CLIError
			}
			// A broken file in the default location should not brick the
			// tool when every setting has another source.
			VerboseLog("Warning: ignoring config file %s: %v", configPath, err)
			fileCfg = nil
		} else {
			VerboseLog("Loaded config file %s", configPath)
		}
	}

	// Step 2: Resolve settings with flag > env > file > default precedence.
	apiKey := config.ResolveAPIKey(flags.apiKey, fileCfg)

	baseURL := flags.baseURL
	if baseURL == "" && fileCfg != nil {
		baseURL = fileCfg.BaseURL
	}

	userAgent := ""
	if fileCfg != nil {
		userAgent = fileCfg.UserAgent
	}

	// Zero means "not set" all the way down: an unset flag defers to the
	// config file, and an unset file defers to the client default.
	timeout := flags.timeout
	if timeout <= 0 && fileCfg != nil && fileCfg.TimeoutSeconds > 0 {
		timeout = time.Duration(fileCfg.TimeoutSeconds) * time.Second
	}

	// Step 3: Construct the client. A missing API key fails here, before
	// any request is sent.
	client, err := hibp.NewClient(hibp.Config{
		APIKey:    apiKey,
		BaseURL:   baseURL,
		UserAgent: userAgent,
		Timeout:   timeout,
	})
	if err != nil {
		return err // NewClient already returns CLIError with ExitAuthFailure
	}

	effectiveTimeout := timeout
	if effectiveTimeout <= 0 {
		effectiveTimeout = hibp.DefaultTimeout
	}
	VerboseLog("Checking %s (timeout %s)", email, effectiveTimeout)

	// Step 4: The single lookup. Lookup validates the address itself and
	// classifies every failure with an exit code.
	result, err := client.Lookup(ctx, email)
	if err != nil {
		return err
	}

	VerboseLog("API returned status %d", result.RawStatusCode)

	// Step 5: Output the result.
	printCheckResult(result)
	return nil
}

// printCheckResult outputs the lookup result in text or JSON format,
// depending on the global --json flag.
func printCheckResult(result *model.LookupResult) {
	if IsJSONOutput() {
		printCheckResultJSON(result)
	} else {
		fmt.Println(FormatResultLine(result))
	}
}

// printCheckResultJSON outputs the LookupResult as structured JSON.
func printCheckResultJSON(result *model.LookupResult) {
	// MarshalIndent produces human-readable JSON with 2-space indentation.
	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// FormatResultLine renders the one-line human-readable summary of a lookup.
//
// This function is exported for testing purposes (tested in check_test.go).
//
// Example:
//
//	clean address   → "No breaches found for user@example.com"
//	two breaches    → "user@example.com found in 2 breach(es): Adobe, LinkedIn"
func FormatResultLine(result *model.LookupResult) string {
	if !result.Breached {
		return fmt.Sprintf("No breaches found for %s", result.QueriedAddress)
	}
	return fmt.Sprintf("%s found in %d breach(es): %s",
		result.QueriedAddress,
		len(result.BreachNames),
		strings.Join(result.BreachNames, ", "))
}
