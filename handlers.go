package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"slovobor/internal/types"
	"slovobor/internal/widget"
)

var errBadQuery = errors.New("bad query")

// homeHandler serves a page load: every load opens a fresh widget.
// A link fragment is forwarded by the page script as ?link=.
func (app *App) homeHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	ws, err := app.startWidgetSession(sessionID, c.Query("link"), types.QueryOptions{})
	if err != nil {
		app.refuseWidget(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", app.widgetData(ws))
}

// submitHandler feeds a form submission into the session's widget.
func (app *App) submitHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	word := c.PostForm("q")
	opts := types.QueryOptions{
		Offensive: c.PostForm("cb_offensive") != "",
		NounsOnly: c.PostForm("cb_nouns") != "",
	}

	ws := app.getWidgetSession(sessionID)
	if ws == nil {
		// The widget was swept or the server restarted: the submitted word
		// becomes the seed of a fresh widget.
		logInfo("%sNo open widget for session %s, starting one with the submitted word", reqPrefix(ctx), sessionID)
		var err error
		ws, err = app.startWidgetSession(sessionID, url.PathEscape(word), opts)
		if err != nil {
			app.refuseWidget(c, err)
			return
		}
	} else {
		ws.View.SetOptions(opts)
		ws.View.SetValue(word)
		if !ws.View.Submit() {
			logWarn("%sWidget for session %s is not ready for submissions", reqPrefix(ctx), sessionID)
		}
	}

	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "widget", app.widgetData(ws))
		return
	}
	c.HTML(http.StatusOK, "index.html", app.widgetData(ws))
}

// stateHandler renders the status line and matches for polling.
func (app *App) stateHandler(c *gin.Context) {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil {
		c.Status(http.StatusNoContent)
		return
	}
	ws := app.getWidgetSession(sessionID)
	if ws == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.HTML(http.StatusOK, "result", app.widgetData(ws))
}

func (app *App) refuseWidget(c *gin.Context, err error) {
	logWarn("%sRefusing widget: %v (open widgets: %d)", reqPrefix(c.Request.Context()), err, app.sessionCount())
	c.String(http.StatusServiceUnavailable, ErrorTooManyWidgets)
}

// methodNotAllowedHandler answers a known route called with the wrong method.
func methodNotAllowedHandler(c *gin.Context) {
	c.String(http.StatusMethodNotAllowed, ErrorMethodNotAllowed)
}

func (app *App) widgetData(ws *WidgetSession) gin.H {
	return gin.H{
		"title":     "Словобор",
		"view":      ws.View.Snapshot(),
		"state":     ws.Controller.State().String(),
		"maxLength": widget.MaxLength,
	}
}

// queryHandler relays a solver query to the upstream solver.
func (app *App) queryHandler(c *gin.Context) {
	ctx := c.Request.Context()
	q, opts, err := parseQueryForm(c, app.QueryMin, app.QueryMax)
	if err != nil {
		logWarn("%sRejected query: %v", reqPrefix(ctx), err)
		c.String(http.StatusBadRequest, ErrorBadRequest)
		return
	}
	if app.Solver == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": ErrorSolverMissing})
		return
	}

	logInfo("%sq=%s %d o=%v n=%v", reqPrefix(ctx), q, utf8.RuneCountInString(q), opts.Offensive, opts.NounsOnly)
	rsp, err := app.Solver.Query(ctx, q, opts)
	if err != nil {
		logWarn("%sSolver query failed: %v", reqPrefix(ctx), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": ErrorSolverFailed})
		return
	}
	c.JSON(http.StatusOK, qResponse{
		Query: rsp.Query,
		Count: rsp.Count,
		Words: strings.Join(rsp.Words, ","),
	})
}

// parseQueryForm reads q, o and n from a relay request. Browsers post the
// body as text/plain, so the form content type is forced before parsing.
func parseQueryForm(c *gin.Context, qmin, qmax int) (string, types.QueryOptions, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	q := c.PostForm("q")
	o, _ := strconv.Atoi(c.PostForm("o"))
	n, _ := strconv.Atoi(c.PostForm("n"))

	if l := utf8.RuneCountInString(q); q == "" || l < qmin || l > qmax {
		return "", types.QueryOptions{}, errBadQuery
	}
	return q, types.QueryOptions{Offensive: o != 0, NounsOnly: n != 0}, nil
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"env":             map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"open_widgets":    app.sessionCount(),
		"solver_endpoint": app.solverEndpoint(),
		"uptime":          formatUptime(time.Since(app.StartTime)),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

func (app *App) solverEndpoint() string {
	if app.Solver == nil {
		return ""
	}
	return app.Solver.Endpoint()
}
