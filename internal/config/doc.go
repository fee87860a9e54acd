// Package config defines the application configuration structures and the
// loading logic that populates them from environment variables and optional
// config files. Environment variables use the TUTOR_ prefix and take
// precedence over file values; the loaded configuration is validated before
// being returned.
package config
