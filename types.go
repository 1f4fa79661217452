package main

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"slovobor/internal/solver"
	"slovobor/internal/widget"
)

type contextKey string

// App holds configuration and shared state of the web host.
type App struct {
	IsProduction   bool
	Port           string
	SessionTimeout time.Duration
	CookieMaxAge   time.Duration
	StaticCacheAge time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	QueryMin       int
	QueryMax       int

	// MaxWidgets caps open widget sessions; 0 means no cap.
	MaxWidgets int

	// Widget is the template for every widget session's controller.
	Widget widget.Config
	// Solver is nil when no upstream solver is configured.
	Solver *solver.Client

	Sessions     map[string]*WidgetSession
	SessionMutex sync.RWMutex
	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex
	StartTime    time.Time

	// ctx bounds the lifetime of every widget controller.
	ctx context.Context
}

// WidgetSession is one page load of the widget in one browser.
type WidgetSession struct {
	ID             string
	View           *widget.MemoryView
	Controller     *widget.Controller
	LastAccessTime time.Time
	cancel         context.CancelFunc
}

// qResponse is the solver answer as served by the relay.
type qResponse struct {
	Query string `json:"q"`
	Count int    `json:"c"`
	Words string `json:"w"`
}
