// Package model defines the domain types and value objects for the
// breachwatch CLI.
//
// This package contains pure data structures with no external dependencies.
// The lookup entities (LookupRequest, LookupResult, Breach) are transient —
// one invocation creates one request and one result, and nothing is
// persisted between runs.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
