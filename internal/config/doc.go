// Package config loads the clerkctl configuration.
//
// Values come from command-line flags, environment variables and an
// optional JSON file. For every field the first source that sets it wins,
// in this order:
//  1. Command-line flags
//  2. Environment variables
//  3. JSON config file (path from -c/--config or CONFIG)
//  4. Built-in defaults
//
// The entry point is [Load]; [StructuredConfig.ClerkConfig] maps the result
// onto a clerk.Config.
package config
