package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // check passed / worker healthy
	SymbolFail    = "✗" // check failed / worker down
	SymbolWarn    = "⚠" // degraded, attention wanted
	SymbolPending = "○" // unknown / not yet probed
)
