package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"slovobor/internal/solver"
	"slovobor/internal/types"
	"slovobor/internal/widget"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || len(sessionID) < minSessionIDLen {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", app.IsProduction, true)
		logInfo("%sCreated new session: %s", reqPrefix(c.Request.Context()), sessionID)
	}
	return sessionID
}

var errTooManyWidgets = errors.New("too many open widgets")

// startWidgetSession opens a fresh widget for a page load, stopping the
// widget the browser had open before. The fragment seeds the first query.
// New sessions are refused once MaxWidgets widgets are open.
func (app *App) startWidgetSession(sessionID, fragment string, opts types.QueryOptions) (*WidgetSession, error) {
	view := widget.NewMemoryView(fragment)
	view.SetOptions(opts)
	var s widget.Solver = unavailableSolver{}
	if app.Solver != nil {
		s = app.Solver
	}
	ctx, cancel := context.WithCancel(app.ctx)
	ws := &WidgetSession{
		ID:             sessionID,
		View:           view,
		Controller:     widget.New(view.Ports(), s, app.Widget),
		LastAccessTime: time.Now(),
		cancel:         cancel,
	}

	app.SessionMutex.Lock()
	old := app.Sessions[sessionID]
	if old == nil && app.MaxWidgets > 0 && len(app.Sessions) >= app.MaxWidgets {
		app.SessionMutex.Unlock()
		cancel()
		return nil, errTooManyWidgets
	}
	app.Sessions[sessionID] = ws
	app.SessionMutex.Unlock()
	if old != nil {
		old.cancel()
		logInfo("Replaced widget for session: %s", sessionID)
	}

	go func() {
		if err := ws.Controller.Run(ctx); err != nil && ctx.Err() == nil {
			logWarn("Widget for session %s stopped: %v", sessionID, err)
		}
	}()
	return ws, nil
}

// getWidgetSession returns the open widget of a session, or nil.
func (app *App) getWidgetSession(sessionID string) *WidgetSession {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	ws, ok := app.Sessions[sessionID]
	if !ok {
		return nil
	}
	ws.LastAccessTime = time.Now()
	return ws
}

// sessionCount returns the number of open widgets.
func (app *App) sessionCount() int {
	app.SessionMutex.RLock()
	defer app.SessionMutex.RUnlock()
	return len(app.Sessions)
}

// cleanupIdleSessions stops and forgets widgets not touched for maxAge.
func (app *App) cleanupIdleSessions(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	app.SessionMutex.Lock()
	idle := lo.PickBy(app.Sessions, func(_ string, ws *WidgetSession) bool {
		return ws.LastAccessTime.Before(cutoff)
	})
	for id := range idle {
		delete(app.Sessions, id)
	}
	app.SessionMutex.Unlock()

	for _, ws := range idle {
		ws.cancel()
	}
	if len(idle) > 0 {
		logInfo("Session cleanup completed: removed %d idle widgets", len(idle))
	}
	return len(idle)
}

// runSessionCleanup sweeps idle widgets every interval until ctx is done.
func (app *App) runSessionCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.cleanupIdleSessions(app.SessionTimeout)
		}
	}
}

// unavailableSolver stands in when no upstream is configured; every query
// fails so widgets show their error status and retry later.
type unavailableSolver struct{}

func (unavailableSolver) Query(context.Context, string, types.QueryOptions) (*types.SolverResponse, error) {
	return nil, fmt.Errorf("%w: %s", solver.ErrTransport, ErrorSolverMissing)
}
