// Package solver is the HTTP client for the word solver API.
//
// A query is a single form-encoded POST:
//
//	q=<word>&o=<0|1>&n=<0|1>
//
// answered with a JSON object:
//
//	{"q": "<echoed word>", "c": <count>, "w": "<comma separated matches>"}
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"slovobor/internal/types"
)

// DefaultPath is where the solver is mounted unless configured otherwise.
const DefaultPath = "/q"

const maxBodySize = 1 << 20

var (
	// ErrTransport means the request could not complete.
	ErrTransport = errors.New("solver: transport failure")
	// ErrMalformedResponse means the body is not a valid solver answer.
	ErrMalformedResponse = errors.New("solver: malformed response")
)

// Client queries a solver endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *log.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request logging.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the given endpoint URL.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL queries are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// EncodeForm builds the request body for a query.
func EncodeForm(word string, opts types.QueryOptions) string {
	return "q=" + url.QueryEscape(word) + "&o=" + flag(opts.Offensive) + "&n=" + flag(opts.NounsOnly)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Query sends one query and decodes the answer. Failures wrap ErrTransport
// or ErrMalformedResponse.
func (c *Client) Query(ctx context.Context, word string, opts types.QueryOptions) (*types.SolverResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(EncodeForm(word, opts)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	rsp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("[WARN] Solver request to %s failed: %v", c.endpoint, err)
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer rsp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(rsp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	c.logger.Printf("[INFO] Solver answered %d in %v", rsp.StatusCode, time.Since(start))
	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrMalformedResponse, rsp.StatusCode)
	}
	return Decode(body)
}

type wireResponse struct {
	Query json.RawMessage `json:"q"`
	Count json.RawMessage `json:"c"`
	Words json.RawMessage `json:"w"`
}

// Decode parses and validates a solver answer. The echoed query is
// required; a missing or unparsable count is treated as zero.
func Decode(data []byte) (*types.SolverResponse, error) {
	var wire *wireResponse
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if wire == nil {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}
	var query string
	if err := json.Unmarshal(wire.Query, &query); err != nil || query == "" {
		return nil, fmt.Errorf("%w: missing query", ErrMalformedResponse)
	}

	rsp := &types.SolverResponse{Query: query, Count: decodeCount(wire.Count)}
	if rsp.Count == 0 {
		return rsp, nil
	}
	var joined string
	if len(wire.Words) > 0 && !bytes.Equal(wire.Words, []byte("null")) {
		if err := json.Unmarshal(wire.Words, &joined); err != nil {
			return nil, fmt.Errorf("%w: words: %v", ErrMalformedResponse, err)
		}
	}
	if joined != "" {
		rsp.Words = lo.Compact(strings.Split(joined, ","))
	}
	return rsp, nil
}

// decodeCount accepts a JSON number or a numeric string.
func decodeCount(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 0
		}
	}
	if math.IsNaN(f) || f <= 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}
