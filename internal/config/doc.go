// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. JSON config file (path taken from the CONFIG environment variable)
//  3. Built-in defaults
//
// The main entry point is [GetStructuredConfig].
package config
