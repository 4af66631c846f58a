package session

import (
	"context"
	"errors"
	"image"
	"io"
	"log"
	"sync"
	"time"

	"github.com/ironsheep/coloring-page-mcp/internal/imaging"
)

// DefaultDebounce is the quiet period after the last parameter change before
// a new render starts.
const DefaultDebounce = 150 * time.Millisecond

// ErrNoImage is returned by Wait when no source image is loaded.
var ErrNoImage = errors.New("no image loaded")

// RenderFunc turns a source image into a coloring page.
type RenderFunc func(img image.Image, opts imaging.RenderOptions) (*image.NRGBA, error)

// Config configures a Converter. Zero values select the defaults.
type Config struct {
	// Debounce is the quiet period before parameter changes are rendered.
	Debounce time.Duration

	// Render performs the conversion. Defaults to imaging.Render.
	Render RenderFunc

	// Logger receives state transitions. Defaults to discarding output.
	Logger *log.Logger
}

// Result is a finished coloring page together with the parameters that
// produced it.
type Result struct {
	Page       *image.NRGBA
	Options    imaging.RenderOptions
	Generation uint64
}

// Status is a point-in-time view of a Converter.
type Status struct {
	State      State        `json:"state"`
	HasImage   bool         `json:"has_image"`
	Tone       imaging.Tone `json:"tone"`
	Invert     bool         `json:"invert"`
	Generation uint64       `json:"generation"`
	Width      int          `json:"width,omitempty"`
	Height     int          `json:"height,omitempty"`
	Err        string       `json:"error,omitempty"`
}

// Converter holds one source image and keeps its coloring page up to date
// as brightness, contrast and inversion change.
//
// Parameter changes are debounced: the page is re-rendered only after no
// change has arrived for the configured quiet period. At most one render
// runs at a time. A change that arrives while a render is running queues a
// rerun that starts as soon as the running one finishes; the stale page is
// discarded. The last value always wins.
//
// All methods are safe for concurrent use.
type Converter struct {
	mu     sync.Mutex
	render RenderFunc
	wait   time.Duration
	log    *log.Logger

	state  State
	source image.Image
	opts   imaging.RenderOptions
	gen    uint64

	timer    *time.Timer
	timerSeq uint64

	inflight bool
	rerun    bool

	result *Result
	err    error

	// changed is closed and replaced on every state change.
	changed chan struct{}
}

// New creates an idle Converter.
func New(cfg Config) *Converter {
	c := &Converter{
		render:  cfg.Render,
		wait:    cfg.Debounce,
		log:     cfg.Logger,
		changed: make(chan struct{}),
	}
	if c.render == nil {
		c.render = imaging.Render
	}
	if c.wait <= 0 {
		c.wait = DefaultDebounce
	}
	if c.log == nil {
		c.log = log.New(io.Discard, "", 0)
	}
	return c
}

// Open loads a new source image and renders it right away with the current
// parameters. A previous page is dropped.
func (c *Converter) Open(img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimer()
	c.source = img
	c.result = nil
	c.err = nil
	c.gen++
	c.startProcessing()
}

// SetTone changes brightness and contrast.
func (c *Converter) SetTone(t imaging.Tone) error {
	return c.modify(func(o *imaging.RenderOptions) { o.Tone = t })
}

// SetBrightness changes brightness and keeps the current contrast.
func (c *Converter) SetBrightness(b int) error {
	return c.modify(func(o *imaging.RenderOptions) { o.Tone.Brightness = b })
}

// SetContrast changes contrast and keeps the current brightness.
func (c *Converter) SetContrast(v int) error {
	return c.modify(func(o *imaging.RenderOptions) { o.Tone.Contrast = v })
}

// SetInvert switches between white-on-black and black-on-white pages.
func (c *Converter) SetInvert(invert bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.opts.Invert == invert {
		return
	}
	opts := c.opts
	opts.Invert = invert
	c.update(opts)
}

// SetOptions applies fn to the current parameters as one change: the new
// values are validated together and schedule at most one render. Nothing
// changes if the result is invalid.
func (c *Converter) SetOptions(fn func(*imaging.RenderOptions)) error {
	return c.modify(fn)
}

// Reset drops the source image and its page and puts all parameters back to
// zero. A render still running is discarded when it finishes.
func (c *Converter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimer()
	c.source = nil
	c.result = nil
	c.err = nil
	c.opts = imaging.RenderOptions{}
	c.rerun = false
	c.gen++
	c.setState(Idle)
}

// Close stops a pending debounce timer.
func (c *Converter) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimer()
}

// Wait blocks until the page for the latest parameters is ready, or ctx is
// done. It returns ErrNoImage if no source is loaded, and the render error
// if the last render failed.
func (c *Converter) Wait(ctx context.Context) (*Result, error) {
	for {
		c.mu.Lock()
		switch {
		case c.source == nil:
			c.mu.Unlock()
			return nil, ErrNoImage
		case c.state == Ready:
			res, err := c.result, c.err
			c.mu.Unlock()
			return res, err
		}
		changed := c.changed
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-changed:
		}
	}
}

// Snapshot returns the current status.
func (c *Converter) Snapshot() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{
		State:      c.state,
		HasImage:   c.source != nil,
		Tone:       c.opts.Tone,
		Invert:     c.opts.Invert,
		Generation: c.gen,
	}
	if c.result != nil {
		s.Width = c.result.Page.Rect.Dx()
		s.Height = c.result.Page.Rect.Dy()
	}
	if c.err != nil {
		s.Err = c.err.Error()
	}
	return s
}

// modify applies fn to a copy of the current parameters and schedules a
// render if they changed.
func (c *Converter) modify(fn func(*imaging.RenderOptions)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	opts := c.opts
	fn(&opts)
	if err := opts.Tone.Validate(); err != nil {
		return err
	}
	if opts == c.opts {
		return nil
	}
	c.update(opts)
	return nil
}

// update records new parameters and schedules a render. c.mu must be held.
func (c *Converter) update(opts imaging.RenderOptions) {
	c.opts = opts
	c.gen++

	if c.source == nil {
		return
	}

	switch c.state {
	case Processing:
		c.rerun = true
	default:
		c.stopTimer()
		seq := c.timerSeq
		c.timer = time.AfterFunc(c.wait, func() { c.fire(seq) })
		c.setState(PendingDebounce)
	}
}

// fire runs when the debounce timer expires.
func (c *Converter) fire(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.timerSeq || c.state != PendingDebounce {
		return
	}
	c.timer = nil
	c.startProcessing()
}

// startProcessing launches a render of the current source and parameters,
// or queues one behind the render in flight. c.mu must be held.
func (c *Converter) startProcessing() {
	c.setState(Processing)
	if c.inflight {
		c.rerun = true
		return
	}

	c.inflight = true
	c.rerun = false
	src, opts, gen := c.source, c.opts, c.gen
	go c.process(src, opts, gen)
}

func (c *Converter) process(src image.Image, opts imaging.RenderOptions, gen uint64) {
	page, err := c.render(src, opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inflight = false
	switch {
	case c.rerun:
		c.log.Printf("discarding stale page (generation %d)", gen)
		c.startProcessing()
	case c.source == nil || gen != c.gen:
		c.log.Printf("discarding page for dropped image (generation %d)", gen)
	default:
		if err != nil {
			c.result = nil
			c.err = err
		} else {
			c.result = &Result{Page: page, Options: opts, Generation: gen}
			c.err = nil
		}
		c.setState(Ready)
	}
}

// stopTimer cancels a pending debounce. c.mu must be held.
func (c *Converter) stopTimer() {
	c.timerSeq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// setState records a transition and wakes waiters. c.mu must be held.
func (c *Converter) setState(s State) {
	if s != c.state {
		c.log.Printf("state %s -> %s", c.state, s)
	}
	c.state = s
	close(c.changed)
	c.changed = make(chan struct{})
}
