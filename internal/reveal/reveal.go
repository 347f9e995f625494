// Package reveal discloses a text one grapheme cluster at a time on a fixed
// cadence, like someone typing it live.
package reveal

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rivo/uniseg"
)

// Phase is the stage of a reveal.
type Phase int

const (
	Pending Phase = iota
	Revealing
	Complete
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Revealing:
		return "revealing"
	case Complete:
		return "complete"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Config controls reveal timing. The cursor settings only affect the cursor
// shown after the text is complete.
type Config struct {
	InitialDelay   time.Duration `yaml:"initialDelay"`
	TickInterval   time.Duration `yaml:"tickInterval"`
	CursorPause    time.Duration `yaml:"cursorPause"`
	CursorBlink    time.Duration `yaml:"cursorBlink"`
	CursorDuration time.Duration `yaml:"cursorDuration"`
}

// DefaultConfig returns the timings used by the reading display.
func DefaultConfig() Config {
	return Config{
		InitialDelay:   300 * time.Millisecond,
		TickInterval:   20 * time.Millisecond,
		CursorPause:    500 * time.Millisecond,
		CursorBlink:    500 * time.Millisecond,
		CursorDuration: 3 * time.Second,
	}
}

// Validate checks that every duration is positive.
func (c Config) Validate() error {
	for name, d := range map[string]time.Duration{
		"initialDelay":   c.InitialDelay,
		"tickInterval":   c.TickInterval,
		"cursorPause":    c.CursorPause,
		"cursorBlink":    c.CursorBlink,
		"cursorDuration": c.CursorDuration,
	} {
		if d <= 0 {
			return fmt.Errorf("reveal.%s must be positive, got %s", name, d)
		}
	}
	return nil
}

// Snapshot is a read-only view of a reveal.
type Snapshot struct {
	Source   string `json:"source"`
	Text     string `json:"text"`
	Revealed int    `json:"revealed"`
	Total    int    `json:"total"`
	Phase    Phase  `json:"phase"`
	Cursor   bool   `json:"cursor"`
}

// Lines splits the revealed text on line breaks for rendering.
func (s Snapshot) Lines() []string {
	return strings.Split(s.Text, "\n")
}

// Option configures a Revealer.
type Option func(*Revealer)

// WithClock sets the clock used to schedule ticks.
func WithClock(c Clock) Option {
	return func(r *Revealer) { r.clock = c }
}

// WithOnChange registers a callback invoked after every state change, possibly
// from a timer goroutine. Calls are serialized and carry the state at delivery
// time; changes from a cancelled text are never delivered once a newer Attach
// or Stop has happened. f must not call Attach or Stop.
func WithOnChange(f func(Snapshot)) Option {
	return func(r *Revealer) { r.onChange = f }
}

// Revealer reveals one text at a time. Attaching a new text cancels the
// current timeline; at most one scheduled callback is outstanding.
type Revealer struct {
	mu       sync.Mutex
	clock    Clock
	onChange func(Snapshot)
	notifyMu sync.Mutex // held while onChange runs; taken before mu

	cfg      Config
	source   string
	ends     []int // byte offset where each grapheme cluster ends
	revealed int
	phase    Phase
	cursor   bool
	blinks   int

	gen   uint64
	timer Timer
}

// New returns an idle revealer with no text attached.
func New(opts ...Option) *Revealer {
	r := &Revealer{clock: realClock{}, phase: Complete}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Attach cancels any reveal in progress and starts revealing text from an
// empty prefix.
func (r *Revealer) Attach(text string, cfg Config) {
	r.mu.Lock()
	r.cancelLocked()

	r.cfg = cfg
	r.source = text
	r.ends = graphemeEnds(text)
	r.revealed = 0
	r.phase = Pending
	r.cursor = true
	r.blinks = 0

	r.scheduleLocked(cfg.InitialDelay, r.beginLocked)
	gen := r.gen
	r.mu.Unlock()

	r.notify(gen)
}

// Stop cancels any scheduled work, leaving the current state in place.
func (r *Revealer) Stop() {
	r.mu.Lock()
	r.cancelLocked()
	r.mu.Unlock()
}

// Snapshot returns the current state.
func (r *Revealer) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Revealer) cancelLocked() {
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// scheduleLocked arranges for step to run after d. Callbacks from an older
// generation are dropped when they fire.
func (r *Revealer) scheduleLocked(d time.Duration, step func()) {
	gen := r.gen
	r.timer = r.clock.AfterFunc(d, func() {
		r.mu.Lock()
		if gen != r.gen {
			r.mu.Unlock()
			return
		}
		r.timer = nil
		step()
		r.mu.Unlock()
		r.notify(gen)
	})
}

func (r *Revealer) beginLocked() {
	r.phase = Revealing
	if len(r.ends) == 0 {
		r.completeLocked()
		return
	}
	r.scheduleLocked(r.cfg.TickInterval, r.tickLocked)
}

func (r *Revealer) tickLocked() {
	r.revealed++
	if r.revealed >= len(r.ends) {
		r.completeLocked()
		return
	}
	r.scheduleLocked(r.cfg.TickInterval, r.tickLocked)
}

func (r *Revealer) completeLocked() {
	r.phase = Complete
	r.scheduleLocked(r.cfg.CursorPause, r.startBlinkLocked)
}

func (r *Revealer) startBlinkLocked() {
	r.blinks = 0
	if r.cfg.CursorBlink > 0 {
		r.blinks = int(r.cfg.CursorDuration / r.cfg.CursorBlink)
	}
	r.scheduleLocked(r.cfg.CursorBlink, r.blinkLocked)
}

func (r *Revealer) blinkLocked() {
	r.blinks--
	if r.blinks <= 0 {
		r.cursor = false
		return
	}
	r.cursor = !r.cursor
	r.scheduleLocked(r.cfg.CursorBlink, r.blinkLocked)
}

func (r *Revealer) snapshotLocked() Snapshot {
	s := Snapshot{
		Source:   r.source,
		Revealed: r.revealed,
		Total:    len(r.ends),
		Phase:    r.phase,
		Cursor:   r.cursor,
	}
	if r.revealed > 0 {
		s.Text = r.source[:r.ends[r.revealed-1]]
	}
	return s
}

// notify delivers the current state to onChange if the timeline gen is still
// the live one.
func (r *Revealer) notify(gen uint64) {
	if r.onChange == nil {
		return
	}
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		return
	}
	s := r.snapshotLocked()
	r.mu.Unlock()

	r.onChange(s)
}

func graphemeEnds(text string) []int {
	var ends []int
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		_, to := g.Positions()
		ends = append(ends, to)
	}
	return ends
}
