// Package config loads the application configuration from an optional
// config.yaml plus environment variables. Environment variables are the
// primary interface and always win over file values.
package config
