package main

// Session configuration constants
const (
	SessionCookieName = "widget_session"
	minSessionIDLen   = 10
	DefaultMaxWidgets = 1000
)

// Route constants
const (
	RouteHome   = "/"
	RouteSubmit = "/submit"
	RouteState  = "/state"
	RouteQuery  = "/q"
	RouteHealth = "/healthz"
)

// Relay query bounds, counted in characters (runes), so a Cyrillic letter
// counts once rather than as its two UTF-8 bytes
const (
	DefaultQueryMin = 3
	DefaultQueryMax = 100
)

// Error message constants
const (
	ErrorBadRequest       = "Bad request"
	ErrorSolverMissing    = "Solver is not configured."
	ErrorSolverFailed     = "Solver did not answer."
	ErrorTooManyRequests  = "Too many requests. Please slow down."
	ErrorTooManyWidgets   = "Too many open widgets. Try again later."
	ErrorMethodNotAllowed = "Method not allowed"
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
