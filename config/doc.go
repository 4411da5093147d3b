// Package config provides configuration loading and validation for resolver
// registries.
//
// It uses Viper to load settings from resolver.yml files and RESOLVER_*
// environment variables, with optional .env file support via godotenv.
//
// # Usage
//
//	settings, err := config.Load()
//	reg, err := resolver.NewFromSettings(settings)
//
// Environment variables override file values using the RESOLVER_ prefix with
// underscore-separated paths (e.g., RESOLVER_LOGGING_LEVEL,
// RESOLVER_DEFAULT_SCOPE).
package config
