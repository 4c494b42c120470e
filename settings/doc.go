// Package settings provides process-wide client configuration: a fixed table
// of default values merged with optional overrides loaded from a YAML file
// (resolved from the DYNASETTINGS_CONFIG environment variable or a fixed
// default path), a lazily-initialized singleton guarding one shared instance,
// and a factory for AWS sessions configured from the effective values.
package settings
