// Package cli defines the Cobra command tree for relcollect. Running the root
// command with no arguments performs a collection run; subcommands inspect
// the configuration and the discovered build directories. Commands only parse
// flags and format output, the work happens in internal/collector.
package cli
