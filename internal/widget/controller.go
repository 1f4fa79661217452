// Package widget implements the word-search widget session: bootstrap,
// input validation, query submission, result ordering and self-healing
// error recovery. UI surfaces are reached through Ports, the solver through
// the Solver interface.
package widget

import (
	"context"
	"errors"
	"log"
	"net/url"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"

	"slovobor/internal/types"
)

const (
	DefaultSeedDelay  = 200 * time.Millisecond
	DefaultResetDelay = 10 * time.Second
)

var errAlreadyRunning = errors.New("widget: controller already running")

// Solver answers a query word.
type Solver interface {
	Query(ctx context.Context, word string, opts types.QueryOptions) (*types.SolverResponse, error)
}

// Config tunes a Controller. Zero fields take defaults.
type Config struct {
	SeedDelay  time.Duration
	ResetDelay time.Duration
	MinLength  int
	MaxLength  int
	Seeds      []string
	Locale     language.Tag
	Messages   *Messages
	Clock      Clock
	Logger     *log.Logger
	// Pick returns a random index in [0, n).
	Pick func(n int) int
}

func (cfg Config) withDefaults() Config {
	if cfg.SeedDelay <= 0 {
		cfg.SeedDelay = DefaultSeedDelay
	}
	if cfg.ResetDelay <= 0 {
		cfg.ResetDelay = DefaultResetDelay
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = MinLength
	}
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = MaxLength
	}
	if len(cfg.Seeds) == 0 {
		cfg.Seeds = DefaultSeeds
	}
	if cfg.Messages == nil {
		m := MessagesFor(cfg.Locale)
		cfg.Messages = &m
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Pick == nil {
		cfg.Pick = randomIndex
	}
	return cfg
}

// Session is the state of one widget lifetime.
type Session struct {
	State       State
	CurrentWord string
	Results     []string
	// Generation is bumped on every bootstrap; responses from older
	// generations are dropped.
	Generation uint64
}

type eventKind int

const (
	evSubmit eventKind = iota
	evSeed
	evReset
	evResponse
)

type event struct {
	kind eventKind
	seq  uint64
	gen  uint64
	rsp  *types.SolverResponse
	err  error
}

type pendingTimer struct {
	t   Timer
	seq uint64
}

// Controller drives one widget session. All session mutations happen on the
// goroutine running Run; other methods only post events or read snapshots.
type Controller struct {
	ports  Ports
	solver Solver
	cfg    Config
	log    *log.Logger

	events  chan event
	done    chan struct{}
	running atomic.Bool
	ctx     context.Context

	mu      sync.RWMutex
	session Session

	seed       string
	timerSeq   uint64
	seedTimer  pendingTimer
	resetTimer pendingTimer
}

// New creates a controller. It does nothing until Run is called.
func New(ports Ports, solver Solver, cfg Config) *Controller {
	cfg = cfg.withDefaults()
	return &Controller{
		ports:  ports,
		solver: solver,
		cfg:    cfg,
		log:    cfg.Logger,
		events: make(chan event, 16),
		done:   make(chan struct{}),
		ctx:    context.Background(),
	}
}

// Run bootstraps the session and processes events until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return errAlreadyRunning
	}
	c.ctx = ctx
	defer close(c.done)
	defer c.stopTimers()

	c.bootstrap()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-c.events:
			c.handle(ev)
		}
	}
}

// Submit asks the controller to submit the current input. It is a no-op
// unless the session is Ready.
func (c *Controller) Submit() {
	c.post(event{kind: evSubmit})
}

// Done is closed once Run has returned.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.State
}

// Snapshot returns a copy of the session.
func (c *Controller) Snapshot() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.session
	s.Results = slices.Clone(s.Results)
	return s
}

func (c *Controller) post(ev event) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

func (c *Controller) update(fn func(s *Session)) {
	c.mu.Lock()
	fn(&c.session)
	c.mu.Unlock()
}

func (c *Controller) handle(ev event) {
	switch ev.kind {
	case evSubmit:
		c.submit(true)
	case evSeed:
		if ev.seq != c.seedTimer.seq || c.session.State != StateReady {
			return
		}
		c.seedTimer = pendingTimer{}
		c.ports.Input.SetValue(c.seed)
		c.ports.Input.Focus()
		c.submit(false)
	case evReset:
		if ev.seq != c.resetTimer.seq || c.session.State != StateError {
			return
		}
		c.resetTimer = pendingTimer{}
		c.log.Printf("[INFO] Resetting widget after error")
		c.bootstrap()
	case evResponse:
		if ev.gen != c.session.Generation || c.session.State != StateWaiting {
			c.log.Printf("[WARN] Dropping stale response (generation %d, current %d, state %s)", ev.gen, c.session.Generation, c.session.State)
			return
		}
		if ev.err != nil {
			c.fail(ev.err)
			return
		}
		c.render(ev.rsp)
	}
}

func (c *Controller) bootstrap() {
	c.update(func(s *Session) {
		s.Generation++
		s.State = StateInit
		s.CurrentWord = ""
		s.Results = nil
	})
	if err := c.ports.check(); err != nil {
		c.fail(err)
		return
	}
	c.ports.Form.OnSubmit(c.Submit)
	c.ports.Output.Clear()
	c.ports.Input.Focus()
	c.ports.Status.SetText(c.cfg.Messages.StatusText(StateInit))

	c.seed = c.pickSeed()
	c.update(func(s *Session) { s.State = StateReady })
	c.schedule(&c.seedTimer, c.cfg.SeedDelay, evSeed)
	c.log.Printf("[INFO] Widget ready (generation %d), seed %q", c.session.Generation, c.seed)
}

// pickSeed consumes the link fragment if there is one, otherwise picks a
// random example phrase.
func (c *Controller) pickSeed() string {
	if loc := c.ports.Location; loc != nil {
		if frag := strings.TrimPrefix(loc.Fragment(), "#"); frag != "" {
			loc.ClearFragment()
			word, err := url.PathUnescape(frag)
			if err == nil && word != "" {
				return word
			}
			c.log.Printf("[WARN] Ignoring undecodable link fragment %q: %v", frag, err)
		}
	}
	return c.cfg.Seeds[c.cfg.Pick(len(c.cfg.Seeds))]
}

func (c *Controller) submit(byUser bool) {
	if c.session.State != StateReady {
		return
	}
	raw := c.ports.Input.Value()
	if TooShort(raw, c.cfg.MinLength) {
		return
	}
	if byUser {
		c.stop(&c.seedTimer)
	}
	word := Normalize(raw, c.cfg.MaxLength)
	opts := c.options()

	c.update(func(s *Session) {
		s.State = StateWaiting
		s.CurrentWord = word
		s.Results = nil
	})
	c.ports.Status.SetText(c.cfg.Messages.StatusText(StateWaiting))
	c.ports.Output.Clear()
	c.ports.Input.Blur()
	c.ports.Input.SetValue(word)

	gen := c.session.Generation
	ctx := c.ctx
	c.log.Printf("[INFO] Querying %q (offensive=%v, nouns=%v)", word, opts.Offensive, opts.NounsOnly)
	go func() {
		rsp, err := c.solver.Query(ctx, word, opts)
		c.post(event{kind: evResponse, gen: gen, rsp: rsp, err: err})
	}()
}

func (c *Controller) options() types.QueryOptions {
	if c.ports.Toggles == nil {
		return types.QueryOptions{}
	}
	return types.QueryOptions{
		Offensive: c.ports.Toggles.Offensive(),
		NounsOnly: c.ports.Toggles.NounsOnly(),
	}
}

func (c *Controller) render(rsp *types.SolverResponse) {
	var results []string
	if rsp.Count > 0 && len(rsp.Words) > 0 {
		results = SortMatches(c.cfg.Locale, rsp.Words)
	}
	c.ports.Output.Clear()
	for _, w := range results {
		c.ports.Output.Append(w)
	}
	c.update(func(s *Session) {
		s.State = StateReady
		s.Results = results
	})
	c.ports.Status.SetText(c.cfg.Messages.FoundText(rsp.Count))
	c.log.Printf("[INFO] Rendered %d matches for %q", len(results), rsp.Query)
}

func (c *Controller) fail(err error) {
	c.log.Printf("[WARN] Widget error: %v", err)
	c.stop(&c.seedTimer)
	c.update(func(s *Session) {
		s.State = StateError
		s.Results = nil
	})
	if c.ports.Status != nil {
		c.ports.Status.SetText(c.cfg.Messages.StatusText(StateError))
	}
	c.schedule(&c.resetTimer, c.cfg.ResetDelay, evReset)
}

// schedule replaces any pending instance of the timer in pt.
func (c *Controller) schedule(pt *pendingTimer, d time.Duration, kind eventKind) {
	c.stop(pt)
	c.timerSeq++
	seq := c.timerSeq
	pt.seq = seq
	pt.t = c.cfg.Clock.AfterFunc(d, func() {
		c.post(event{kind: kind, seq: seq})
	})
}

func (c *Controller) stop(pt *pendingTimer) {
	if pt.t != nil {
		pt.t.Stop()
	}
	*pt = pendingTimer{}
}

func (c *Controller) stopTimers() {
	c.stop(&c.seedTimer)
	c.stop(&c.resetTimer)
}
