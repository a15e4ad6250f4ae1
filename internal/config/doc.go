// Package config handles pipeline configuration.
//
// Two entry points build the same Config struct:
//   - Load reads a YAML file with ${VAR} environment substitution (local runs)
//   - FromEnv builds the config from environment variables only (Lambda runs)
//
// Both apply defaults and validate; a missing required field fails the
// process at startup.
package config
