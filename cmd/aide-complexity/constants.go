package main

import "time"

// Defaults for the optional pprof debug server (enabled via build tag
// "pprof" and AIDE_PPROF_ENABLE=1).
const (
	DefaultPprofReadTimeout     = 30 * time.Second
	DefaultPprofWriteTimeout    = 60 * time.Second
	DefaultPprofIdleTimeout     = 120 * time.Second
	DefaultPprofShutdownTimeout = 2 * time.Second
)

// DefaultServeAddr is the default bind address for "aide-complexity serve".
const DefaultServeAddr = ":8080"

// DefaultWatchDebounce is the default debounce delay for "aide-complexity watch".
const DefaultWatchDebounce = 2 * time.Second
