// Command slovobor-term runs the word-search widget in a terminal against a
// solver endpoint.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"slovobor/internal/solver"
	"slovobor/internal/widget"
)

func main() {
	var (
		api     = flag.String("api", envOr("SOLVER_URL", "http://localhost:8080"+solver.DefaultPath), "Solver endpoint URL")
		link    = flag.String("link", "", "Word or shared link (its #fragment) to open the widget with")
		logPath = flag.String("log", "", "Append logs to this file")
		lang    = flag.String("lang", envOr("WIDGET_LANG", "ru"), "Language of status messages and word ordering")
	)
	flag.Parse()

	logger := log.New(io.Discard, "", 0)
	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "slovobor")
		if err != nil {
			log.Fatalf("[FATAL] Failed to open log file: %v", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	locale, err := language.Parse(*lang)
	if err != nil {
		log.Fatalf("[FATAL] Invalid -lang %q: %v", *lang, err)
	}

	view := widget.NewMemoryView(linkFragment(*link))
	ctrl := widget.New(view.Ports(), solver.New(*api, solver.WithLogger(logger)), widget.Config{
		Locale: locale,
		Logger: logger,
	})

	p := tea.NewProgram(newModel(view, ctrl.State))
	view.OnChange(func() { go p.Send(redrawMsg{}) })

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := ctrl.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Printf("[WARN] Widget stopped: %v", err)
		}
	}()

	_, err = p.Run()
	cancel()
	<-ctrl.Done()
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// linkFragment returns the fragment of a shared link, or link itself when it
// has none.
func linkFragment(link string) string {
	if _, frag, ok := strings.Cut(link, "#"); ok {
		return frag
	}
	return link
}
