// Package config provides configuration loading, merging, and validation
// facilities for the booksync daemon.
//
// Configuration is assembled from multiple sources in the following priority
// order (an earlier source wins for fields it sets):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetConfig].
package config
