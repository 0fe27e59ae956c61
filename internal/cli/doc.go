// Package cli defines the Cobra command tree for the pair CLI. Each file
// in this package registers one top-level command (install, generate, agents,
// config, version) with the root command. Command implementations delegate to
// internal packages for the work and only handle flag parsing and output.
package cli
