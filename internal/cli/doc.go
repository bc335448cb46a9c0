// Package cli implements the scrapewatch command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to the internal packages for the actual work:
//
//	scrapewatch           - Interactive supervision dashboard
//	scrapewatch status    - One report, human or --json
//	scrapewatch logs      - Log statistics, or --follow to stream
//	scrapewatch stop      - Interrupt the worker and kill its session
//	scrapewatch init      - Write a starter config
//	scrapewatch doctor    - Diagnose environment issues
//	scrapewatch version   - Version information
//
// # Flag Handling
//
// Global flags (--config, --dir, --remote) are defined on the root command
// and available to all subcommands. Command-specific flags like --json and
// --follow are defined on individual commands.
//
// Every command resolves its working directory the same way: --dir if set,
// otherwise the invocation directory. The config file is searched there,
// and flag overrides are applied on top of it.
package cli
