// Package config provides configuration loading, merging, and validation
// facilities for the aotp command.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for every non-zero field):
//  1. Command-line flags
//  2. Environment variables (AOTP_ prefix)
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetConfig].
package config
