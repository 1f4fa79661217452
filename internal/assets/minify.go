// Package assets minifies the web host's templates and stylesheets into the
// dist/ tree served in production.
package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// Media types by file extension.
var mediaTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
}

// Result describes one minified file.
type Result struct {
	Src      string
	Dst      string
	Original int
	Minified int
}

// Reduction is the saved share of the original size, in percent.
func (r Result) Reduction() float64 {
	if r.Original == 0 {
		return 0
	}
	return float64(r.Original-r.Minified) / float64(r.Original) * 100
}

// NewMinifier returns a minifier that leaves Go template actions intact.
func NewMinifier() *minify.M {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
		TemplateDelims:   html.GoTemplateDelims,
	})
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)
	return m
}

// MediaType returns the media type for a path, or "" if it is not minified.
func MediaType(path string) string {
	return mediaTypes[strings.ToLower(filepath.Ext(path))]
}

// MinifyFile minifies src into dst, creating dst's directory.
func MinifyFile(m *minify.M, src, dst, mediaType string) (Result, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return Result{}, err
	}
	out, err := m.Bytes(mediaType, data)
	if err != nil {
		return Result{}, fmt.Errorf("minify %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		return Result{}, err
	}
	return Result{Src: src, Dst: dst, Original: len(data), Minified: len(out)}, nil
}

// BuildDist minifies every known asset under each of dirs (relative to root)
// into the same relative path under dist.
func BuildDist(root, dist string, dirs ...string) ([]Result, error) {
	m := NewMinifier()
	var results []Result
	for _, dir := range dirs {
		err := filepath.WalkDir(filepath.Join(root, dir), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			mt := MediaType(path)
			if d.IsDir() || mt == "" {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			r, err := MinifyFile(m, path, filepath.Join(dist, rel), mt)
			if err != nil {
				return err
			}
			results = append(results, r)
			return nil
		})
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// Totals sums the original and minified sizes.
func Totals(results []Result) (original, minified int) {
	original = lo.SumBy(results, func(r Result) int { return r.Original })
	minified = lo.SumBy(results, func(r Result) int { return r.Minified })
	return original, minified
}
