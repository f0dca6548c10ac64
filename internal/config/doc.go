// Package config handles application configuration loading and validation.
//
// Configuration is loaded from environment variables with sensible defaults.
// All required values are validated at startup to fail fast if misconfigured.
// The resulting Config is immutable and passed by reference into components;
// nothing reads the environment after startup.
package config
