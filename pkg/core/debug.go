package core

import "sync/atomic"

var debugMode atomic.Bool

func init() {
	debugMode.Store(true)
}

// DebugMode reports whether error widgets show detailed messages.
func DebugMode() bool {
	return debugMode.Load()
}

// SetDebugMode enables or disables detailed error widgets. Published builds
// turn it off so readers see a neutral placeholder.
func SetDebugMode(debug bool) {
	debugMode.Store(debug)
}
