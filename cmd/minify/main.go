package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"slovobor/internal/assets"
)

func main() {
	var (
		root      = flag.String("root", ".", "Project root containing templates/ and static/")
		dist      = flag.String("dist", "dist", "Output directory")
		inputFile = flag.String("input", "", "Minify a single file instead of the whole tree")
		output    = flag.String("output", "", "Output path for -input")
		fileType  = flag.String("type", "", "File type for -input (css, js or html); guessed from the extension if empty")
	)
	flag.Parse()

	if *inputFile != "" {
		minifyOne(*inputFile, *output, *fileType)
		return
	}

	results, err := assets.BuildDist(*root, filepath.Join(*root, *dist), "templates", "static")
	if err != nil {
		log.Fatalf("Minification failed: %v", err)
	}
	for _, r := range results {
		fmt.Printf("%s: %d bytes -> %d bytes (%.1f%% reduction)\n", r.Src, r.Original, r.Minified, r.Reduction())
	}
	original, minified := assets.Totals(results)
	fmt.Printf("Minified %d files into %s: %d -> %d bytes\n", len(results), *dist, original, minified)
}

func minifyOne(input, output, fileType string) {
	if output == "" {
		log.Fatal("Usage: go run ./cmd/minify -input=<file> -output=<file> [-type=<css|js|html>]")
	}
	mt := assets.MediaType(input)
	if fileType != "" {
		mt = assets.MediaType("x." + strings.ToLower(fileType))
	}
	if mt == "" {
		log.Fatalf("Unsupported file type for %s (supported: css, js, html)", input)
	}
	r, err := assets.MinifyFile(assets.NewMinifier(), input, output, mt)
	if err != nil {
		log.Fatalf("Failed to minify %s: %v", input, err)
	}
	fmt.Printf("Successfully minified %s -> %s (%.1f%% reduction)\n", r.Src, r.Dst, r.Reduction())
}
