// Package cli defines the Cobra command tree for the agentctx installer. The
// root command performs the install; version and config are the only
// subcommands. Commands delegate to the bundle and installer packages and
// only handle flag parsing, output and exit codes.
package cli
