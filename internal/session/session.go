// Package session orchestrates a reading session: it turns birth details into
// a reading, records it in the history, and drives section navigation and
// the text reveal for the display.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/rcliao/cosmic-whispers/internal/model"
	"github.com/rcliao/cosmic-whispers/internal/navigator"
	"github.com/rcliao/cosmic-whispers/internal/oracle"
	"github.com/rcliao/cosmic-whispers/internal/reveal"
	"github.com/rcliao/cosmic-whispers/internal/store"
)

var (
	// ErrIncompleteDetails is returned when a required birth detail is missing.
	ErrIncompleteDetails = errors.New("incomplete birth details")
	// ErrSubmitInFlight is returned when Submit is called while another
	// Submit has not returned yet.
	ErrSubmitInFlight = errors.New("a reading is already being divined")
	// ErrReadingNotFound is returned when a history id is unknown.
	ErrReadingNotFound = errors.New("reading not found")
)

// View is a read-only snapshot for the display layer.
type View struct {
	Reading *model.AstrologyReading `json:"reading,omitempty"`
	Active  int                     `json:"active"`
	Reveal  reveal.Snapshot         `json:"reveal"`
	Pending bool                    `json:"pending"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithRevealConfig sets the reveal timings used for every section.
func WithRevealConfig(cfg reveal.Config) Option {
	return func(c *Controller) { c.revealCfg = cfg }
}

// WithRevealer replaces the revealer, e.g. one built with a manual clock.
func WithRevealer(r *reveal.Revealer) Option {
	return func(c *Controller) { c.revealer = r }
}

// WithNow sets the clock used for reading timestamps and ids.
func WithNow(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller owns the current reading and is the only writer of the history.
type Controller struct {
	store     store.HistoryStore
	oracle    oracle.Oracle
	revealer  *reveal.Revealer
	revealCfg reveal.Config
	log       *slog.Logger
	now       func() time.Time
	entropy   *ulid.MonotonicEntropy
	sessionID string

	inFlight atomic.Bool

	mu      sync.Mutex
	current *model.AstrologyReading
	nav     navigator.Navigator
}

// New returns a controller with no current reading.
func New(st store.HistoryStore, o oracle.Oracle, opts ...Option) *Controller {
	c := &Controller{
		store:     st,
		oracle:    o,
		revealCfg: reveal.DefaultConfig(),
		log:       slog.Default(),
		now:       time.Now,
		entropy:   ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.revealer == nil {
		c.revealer = reveal.New()
	}
	c.log = c.log.With("component", "session", "session", c.sessionID)
	return c
}

// Submit generates a reading for d, appends it to the history and makes it
// the current reading. Only one Submit may run at a time; a concurrent call
// fails with ErrSubmitInFlight and changes nothing.
func (c *Controller) Submit(ctx context.Context, d model.UserDetails) (model.AstrologyReading, error) {
	if err := validate(d); err != nil {
		return model.AstrologyReading{}, err
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return model.AstrologyReading{}, ErrSubmitInFlight
	}
	defer c.inFlight.Store(false)

	c.log.DebugContext(ctx, "divining reading", "reading_type", d.ReadingType, "location", d.BirthLocation)

	sections, err := c.oracle.Divine(ctx, d)
	if err != nil {
		return model.AstrologyReading{}, fmt.Errorf("divine reading: %w", err)
	}
	if len(sections) == 0 {
		return model.AstrologyReading{}, errors.New("divine reading: no sections returned")
	}

	now := c.now()
	r := model.AstrologyReading{
		ID:          ulid.MustNew(ulid.Timestamp(now), c.entropy).String(),
		Timestamp:   now.UnixMilli(),
		UserDetails: d,
		Sections:    sections,
	}

	// The reading exists once divined; a late cancel must not lose it.
	c.store.Append(context.WithoutCancel(ctx), r)
	c.show(&r)

	c.log.InfoContext(ctx, "reading divined", "id", r.ID, "reading_type", d.ReadingType, "sections", len(sections))
	return r, nil
}

func validate(d model.UserDetails) error {
	if missing := d.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteDetails, strings.Join(missing, ", "))
	}
	if _, err := time.Parse(model.BirthTimeLayout, d.BirthTime); err != nil {
		return fmt.Errorf("%w: birth_time %q is not HH:MM", ErrIncompleteDetails, d.BirthTime)
	}
	return nil
}

// SelectFromHistory makes the reading with the given id current.
func (c *Controller) SelectFromHistory(ctx context.Context, id string) (model.AstrologyReading, error) {
	r, ok := store.Find(c.store.Load(ctx), id)
	if !ok {
		return model.AstrologyReading{}, fmt.Errorf("%w: %s", ErrReadingNotFound, id)
	}
	c.show(&r)
	return r, nil
}

// History returns the stored readings, newest first.
func (c *Controller) History(ctx context.Context) []model.AstrologyReading {
	return c.store.Load(ctx)
}

// show replaces the current reading, moves to its first section and
// restarts the reveal.
func (c *Controller) show(r *model.AstrologyReading) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := cloneReading(*r)
	c.current = &cur
	c.nav.Reset(cur.Sections)
	c.revealer.Attach(c.nav.Active().Content, c.revealCfg)
}

// Previous moves to the previous section. It reports whether it moved.
func (c *Controller) Previous() bool {
	return c.move((*navigator.Navigator).Previous)
}

// Next moves to the next section. It reports whether it moved.
func (c *Controller) Next() bool {
	return c.move((*navigator.Navigator).Next)
}

// JumpTo moves to section k; out of range values are ignored.
func (c *Controller) JumpTo(k int) bool {
	return c.move(func(n *navigator.Navigator) bool { return n.JumpTo(k) })
}

func (c *Controller) move(step func(*navigator.Navigator) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return false
	}
	if !step(&c.nav) {
		return false
	}
	c.revealer.Attach(c.nav.Active().Content, c.revealCfg)
	return true
}

// Current returns the current reading, if any.
func (c *Controller) Current() (model.AstrologyReading, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return model.AstrologyReading{}, false
	}
	return cloneReading(*c.current), true
}

func cloneReading(r model.AstrologyReading) model.AstrologyReading {
	r.Sections = slices.Clone(r.Sections)
	if r.UserDetails.BirthDate != nil {
		d := *r.UserDetails.BirthDate
		r.UserDetails.BirthDate = &d
	}
	return r
}

// View returns a snapshot of everything the display needs.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := View{Pending: c.inFlight.Load()}
	if c.current != nil {
		r := cloneReading(*c.current)
		v.Reading = &r
		v.Active = c.nav.Index()
		v.Reveal = c.revealer.Snapshot()
	}
	return v
}

// Dismiss clears the current reading and stops the reveal.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.revealer.Stop()
}

// Close stops any scheduled reveal work.
func (c *Controller) Close() {
	c.revealer.Stop()
}
