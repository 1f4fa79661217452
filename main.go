package main

import (
	"context"
	"html/template"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := loadConfig(ctx)
	if err != nil {
		logFatal("Invalid configuration: %v", err)
	}
	logInfo("Starting Slovobor in %s mode", map[bool]string{true: "production", false: "development"}[app.IsProduction])

	router := app.setupRouter()
	go app.runSessionCleanup(ctx, time.Minute)
	app.startServer(ctx, router)
}

func (app *App) setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"}),
		ginGzip.WithExcludedPaths([]string{"/static/fonts"})))
	router.Use(requestIDMiddleware())
	router.Use(app.cacheHeadersMiddleware())

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.SetFuncMap(template.FuncMap{
		"join": strings.Join,
	})
	if app.IsProduction && dirExists("dist") {
		logInfo("Serving assets from dist/ directory")
		router.LoadHTMLGlob("dist/templates/*.html")
		router.Static("/static", "./dist/static")
	} else {
		logInfo("Serving development assets from source directories")
		router.LoadHTMLGlob("templates/*.html")
		router.Static("/static", "./static")
	}

	app.registerRoutes(router)
	return router
}

func (app *App) registerRoutes(router *gin.Engine) {
	router.HandleMethodNotAllowed = true
	router.NoMethod(methodNotAllowedHandler)

	router.GET(RouteHome, app.rateLimitMiddleware(), app.homeHandler)
	router.POST(RouteSubmit, app.rateLimitMiddleware(), app.submitHandler)
	router.GET(RouteState, app.stateHandler)
	router.POST(RouteQuery, app.rateLimitMiddleware(), app.queryHandler)
	router.GET(RouteHealth, app.healthzHandler)
}

func (app *App) startServer(ctx context.Context, router *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + app.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		logInfo("Shutdown signal received, shutting down server gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", app.Port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
