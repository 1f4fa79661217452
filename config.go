package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"slovobor/internal/solver"
	"slovobor/internal/widget"
)

// loadConfig builds the App from the environment. A .env file, if present,
// has already been loaded by main.
func loadConfig(ctx context.Context) (*App, error) {
	app := &App{
		IsProduction:   os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		Port:           getEnvString("PORT", "8080"),
		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 30*time.Minute),
		CookieMaxAge:   getEnvDuration("COOKIE_MAX_AGE", 2*time.Hour),
		StaticCacheAge: getEnvDuration("STATIC_CACHE_AGE", 5*time.Minute),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		QueryMin:       getEnvInt("RELAY_QUERY_MIN", DefaultQueryMin),
		QueryMax:       getEnvInt("RELAY_QUERY_MAX", DefaultQueryMax),
		MaxWidgets:     getEnvInt("MAX_WIDGETS", DefaultMaxWidgets),
		Sessions:       make(map[string]*WidgetSession),
		LimiterMap:     make(map[string]*rate.Limiter),
		StartTime:      time.Now(),
		ctx:            ctx,
	}
	if app.QueryMin > app.QueryMax {
		return nil, fmt.Errorf("RELAY_QUERY_MIN (%d) exceeds RELAY_QUERY_MAX (%d)", app.QueryMin, app.QueryMax)
	}

	locale, err := language.Parse(getEnvString("WIDGET_LANG", "en"))
	if err != nil {
		logWarn("Invalid WIDGET_LANG: %v, using English", err)
		locale = language.English
	}

	seeds := widget.DefaultSeeds
	seedsFile := getEnvString("SEEDS_FILE", "data/seeds.json")
	if loaded, err := widget.LoadSeeds(seedsFile, widget.MinLength); err == nil {
		seeds = loaded
		logInfo("Loaded %d seed phrases from %s", len(seeds), seedsFile)
	} else if errors.Is(err, os.ErrNotExist) {
		logInfo("No seeds file at %s, using built-in phrases", seedsFile)
	} else {
		logWarn("Failed to load seeds: %v, using built-in phrases", err)
	}

	app.Widget = widget.Config{
		SeedDelay:  getEnvDuration("SEED_DELAY", widget.DefaultSeedDelay),
		ResetDelay: getEnvDuration("RESET_DELAY", widget.DefaultResetDelay),
		Seeds:      seeds,
		Locale:     locale,
	}

	if endpoint := os.Getenv("SOLVER_URL"); endpoint != "" {
		u, err := url.Parse(endpoint)
		if err != nil || !u.IsAbs() {
			return nil, fmt.Errorf("SOLVER_URL must be an absolute URL, got %q", endpoint)
		}
		app.Solver = solver.New(endpoint)
	} else {
		logWarn("SOLVER_URL is not set; queries will fail until it is configured")
	}
	return app, nil
}

// getEnvString reads a string from the environment or returns a fallback.
func getEnvString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

// getEnvDuration reads a time.Duration from the environment or returns a fallback.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		logWarn("Invalid duration for %s: %v, using default %v", key, err, fallback)
		return fallback
	}
	return d
}

// getEnvInt reads an int from the environment or returns a fallback.
func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		logWarn("Invalid int for %s: %v, using default %d", key, err, fallback)
		return fallback
	}
	return i
}
