package config

import "time"

// Default runtime limits and rendering parameters for the MCP DataFrame
// Server. These values are conservative and can be overridden by future
// configuration mechanisms (env, CLI, or files). They are referenced by
// internal/runtime, internal/stats, and internal/plotting.

const (
	// Concurrency
	DefaultMaxConcurrentRequests = 4

	// Mean values are rounded to this many fractional digits before
	// formatting for the wire.
	DefaultMeanPrecision = 3

	// Chart canvas size in inches.
	DefaultPlotWidthInches  = 8.0
	DefaultPlotHeightInches = 5.0
)

const (
	// Timeouts
	DefaultOperationTimeout      = 30 * time.Second
	DefaultAcquireRequestTimeout = 2 * time.Second
)
