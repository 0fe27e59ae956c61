// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork only has to edit one file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	ProjectDir  string `yaml:"project_dir"`
	IgnoreFile  string `yaml:"ignore_file"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:     "pair",
			DisplayName: "Pair",
			Description: "Scaffold AI coding agent configuration folders",
			HomeDir:     ".pair",
			EnvPrefix:   "PAIR",
			ProjectDir:  ".ai",
			IgnoreFile:  ".gitignore",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "pair").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Pair").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".pair").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "PAIR").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ProjectDir returns the name of the canonical rules folder inside a
// project (e.g., ".ai").
func ProjectDir() string { load(); return defaults.ProjectDir }

// IgnoreFile returns the name of the revision-control ignore file
// (e.g., ".gitignore").
func IgnoreFile() string { load(); return defaults.IgnoreFile }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "PAIR_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
