// Package config manages user-level settings stored at ~/.pair/config.yaml,
// overridable through PAIR_* environment variables. Settings cover the
// directory of default templates and the log level.
package config
