// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to settings needed by the scheduler, its daily job and the logger
// while keeping configuration details separate from business logic.
package config
