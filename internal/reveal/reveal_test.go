package reveal

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		InitialDelay:   300 * time.Millisecond,
		TickInterval:   20 * time.Millisecond,
		CursorPause:    500 * time.Millisecond,
		CursorBlink:    500 * time.Millisecond,
		CursorDuration: 3 * time.Second,
	}
}

func newTestRevealer() (*Revealer, *ManualClock) {
	c := NewManualClock()
	return New(WithClock(c)), c
}

func TestRevealProgression(t *testing.T) {
	r, c := newTestRevealer()
	cfg := testConfig()
	text := "The stars whisper."

	r.Attach(text, cfg)
	if s := r.Snapshot(); s.Phase != Pending || s.Text != "" {
		t.Fatalf("expected pending with empty text, got %v %q", s.Phase, s.Text)
	}

	c.Advance(cfg.InitialDelay - time.Millisecond)
	if s := r.Snapshot(); s.Phase != Pending {
		t.Fatalf("expected pending before the delay elapses, got %v", s.Phase)
	}

	c.Advance(time.Millisecond)
	if s := r.Snapshot(); s.Phase != Revealing || s.Revealed != 0 {
		t.Fatalf("expected revealing with nothing shown, got %v %d", s.Phase, s.Revealed)
	}

	for i := 1; i <= len(text); i++ {
		c.Advance(cfg.TickInterval)
		s := r.Snapshot()
		if s.Text != text[:i] {
			t.Fatalf("tick %d: expected %q, got %q", i, text[:i], s.Text)
		}
		if i < len(text) && s.Phase != Revealing {
			t.Fatalf("tick %d: expected revealing, got %v", i, s.Phase)
		}
	}

	s := r.Snapshot()
	if s.Phase != Complete || s.Text != text || s.Revealed != s.Total {
		t.Errorf("expected complete full text, got %v %q (%d/%d)", s.Phase, s.Text, s.Revealed, s.Total)
	}
}

func TestRevealEmptyText(t *testing.T) {
	r, c := newTestRevealer()
	cfg := testConfig()

	r.Attach("", cfg)
	c.Advance(cfg.InitialDelay)

	if s := r.Snapshot(); s.Phase != Complete || s.Total != 0 {
		t.Errorf("expected empty text to complete after the delay, got %v", s.Phase)
	}
}

func TestAttachRestarts(t *testing.T) {
	r, c := newTestRevealer()
	cfg := testConfig()

	r.Attach("first text", cfg)
	c.Advance(cfg.InitialDelay + 5*cfg.TickInterval)
	if s := r.Snapshot(); s.Text != "first" {
		t.Fatalf("expected %q, got %q", "first", s.Text)
	}

	r.Attach("second", cfg)
	s := r.Snapshot()
	if s.Phase != Pending || s.Text != "" || s.Source != "second" {
		t.Fatalf("expected fresh pending reveal of new text, got %v %q", s.Phase, s.Text)
	}
	if c.Pending() != 1 {
		t.Errorf("expected exactly one scheduled callback, got %d", c.Pending())
	}

	c.Advance(cfg.InitialDelay + 2*cfg.TickInterval)
	if s := r.Snapshot(); s.Text != "se" {
		t.Errorf("expected %q with no stale ticks, got %q", "se", s.Text)
	}
}

func TestAttachSameTextRestarts(t *testing.T) {
	r, c := newTestRevealer()
	cfg := testConfig()

	r.Attach("again", cfg)
	c.Advance(cfg.InitialDelay + 5*cfg.TickInterval)
	if r.Snapshot().Phase != Complete {
		t.Fatal("expected first pass to complete")
	}

	r.Attach("again", cfg)
	if s := r.Snapshot(); s.Phase != Pending || s.Text != "" {
		t.Errorf("expected re-attach to restart, got %v %q", s.Phase, s.Text)
	}
}

func TestStopCancelsTicks(t *testing.T) {
	r, c := newTestRevealer()
	cfg := testConfig()

	r.Attach("halted", cfg)
	c.Advance(cfg.InitialDelay + 2*cfg.TickInterval)
	r.Stop()
	c.Advance(time.Minute)

	if s := r.Snapshot(); s.Text != "ha" || s.Phase != Revealing {
		t.Errorf("expected reveal frozen at %q, got %v %q", "ha", s.Phase, s.Text)
	}
	if c.Pending() != 0 {
		t.Errorf("expected no scheduled callbacks, got %d", c.Pending())
	}
}

func TestCursorBlinkStops(t *testing.T) {
	r, c := newTestRevealer()
	cfg := testConfig()

	r.Attach("ok", cfg)
	c.Advance(cfg.InitialDelay + 2*cfg.TickInterval)
	if s := r.Snapshot(); s.Phase != Complete || !s.Cursor {
		t.Fatalf("expected complete with cursor shown, got %v cursor=%v", s.Phase, s.Cursor)
	}

	c.Advance(cfg.CursorPause + cfg.CursorBlink)
	if r.Snapshot().Cursor {
		t.Error("expected cursor to toggle off on the first blink")
	}
	c.Advance(cfg.CursorBlink)
	if !r.Snapshot().Cursor {
		t.Error("expected cursor to toggle back on")
	}

	c.Advance(cfg.CursorDuration)
	s := r.Snapshot()
	if s.Cursor {
		t.Error("expected cursor hidden after blinking ends")
	}
	if s.Phase != Complete || s.Text != "ok" {
		t.Errorf("blinking must not change the reveal, got %v %q", s.Phase, s.Text)
	}
	if c.Pending() != 0 {
		t.Errorf("expected no scheduled callbacks after blinking, got %d", c.Pending())
	}
}

func TestGraphemeUnits(t *testing.T) {
	r, c := newTestRevealer()
	cfg := testConfig()
	text := "☾ é✨"

	r.Attach(text, cfg)
	if s := r.Snapshot(); s.Total != 4 {
		t.Fatalf("expected 4 units, got %d", s.Total)
	}

	c.Advance(cfg.InitialDelay + cfg.TickInterval)
	if s := r.Snapshot(); s.Text != "☾" {
		t.Errorf("expected first unit %q, got %q", "☾", s.Text)
	}
	c.Advance(3 * cfg.TickInterval)
	if s := r.Snapshot(); s.Text != text || s.Phase != Complete {
		t.Errorf("expected full text, got %v %q", s.Phase, s.Text)
	}
}

func TestMultilineRevealsAcrossBreaks(t *testing.T) {
	r, c := newTestRevealer()
	cfg := testConfig()
	text := "ab\ncd"

	r.Attach(text, cfg)
	c.Advance(cfg.InitialDelay + 4*cfg.TickInterval)

	s := r.Snapshot()
	if s.Text != "ab\nc" {
		t.Fatalf("expected %q, got %q", "ab\nc", s.Text)
	}
	if lines := s.Lines(); len(lines) != 2 || lines[0] != "ab" || lines[1] != "c" {
		t.Errorf("unexpected lines %q", lines)
	}
}

func TestOnChangeNotified(t *testing.T) {
	c := NewManualClock()
	var mu sync.Mutex
	var phases []Phase
	r := New(WithClock(c), WithOnChange(func(s Snapshot) {
		mu.Lock()
		phases = append(phases, s.Phase)
		mu.Unlock()
	}))
	cfg := testConfig()

	r.Attach("hi", cfg)
	c.Advance(cfg.InitialDelay + 2*cfg.TickInterval)

	mu.Lock()
	defer mu.Unlock()
	got := make([]string, len(phases))
	for i, p := range phases {
		got[i] = p.String()
	}
	want := "pending,revealing,revealing,complete"
	if strings.Join(got, ",") != want {
		t.Errorf("expected %s, got %s", want, strings.Join(got, ","))
	}
}

func TestOnChangeDropsCancelledText(t *testing.T) {
	c := NewManualClock()
	var got []string
	r := New(WithClock(c), WithOnChange(func(s Snapshot) {
		got = append(got, s.Source+":"+s.Text)
	}))
	cfg := testConfig()

	r.Attach("AAAA", cfg)
	c.Advance(cfg.InitialDelay + cfg.TickInterval)

	r.mu.Lock()
	stale := r.gen
	r.mu.Unlock()

	r.Attach("BBBB", cfg)
	// A callback from the first text that reaches delivery late.
	r.notify(stale)

	want := "AAAA:,AAAA:,AAAA:A,BBBB:"
	if strings.Join(got, ",") != want {
		t.Errorf("expected %s, got %s", want, strings.Join(got, ","))
	}
}

func TestOnChangeNeverRevisitsOldText(t *testing.T) {
	var mu sync.Mutex
	var sources []string
	r := New(WithOnChange(func(s Snapshot) {
		mu.Lock()
		sources = append(sources, s.Source)
		mu.Unlock()
	}))
	cfg := Config{
		InitialDelay:   time.Microsecond,
		TickInterval:   time.Microsecond,
		CursorPause:    time.Microsecond,
		CursorBlink:    time.Microsecond,
		CursorDuration: 10 * time.Microsecond,
	}

	const n = 50
	order := map[string]int{}
	for i := 0; i < n; i++ {
		text := fmt.Sprintf("text-%02d", i)
		order[text] = i
		r.Attach(text, cfg)
		time.Sleep(50 * time.Microsecond)
	}
	r.Stop()

	mu.Lock()
	defer mu.Unlock()
	last := -1
	for _, src := range sources {
		i := order[src]
		if i < last {
			t.Fatalf("notification for %q arrived after a newer text", src)
		}
		last = i
	}
	if last != n-1 {
		t.Errorf("expected the last text to be delivered, got index %d", last)
	}
}

func TestRealClock(t *testing.T) {
	done := make(chan struct{})
	var once sync.Once
	r := New(WithOnChange(func(s Snapshot) {
		if s.Phase == Complete {
			once.Do(func() { close(done) })
		}
	}))
	cfg := Config{
		InitialDelay:   time.Millisecond,
		TickInterval:   time.Millisecond,
		CursorPause:    time.Hour,
		CursorBlink:    time.Hour,
		CursorDuration: time.Hour,
	}
	r.Attach("quick", cfg)
	defer r.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("reveal did not complete")
	}
	if s := r.Snapshot(); s.Text != "quick" {
		t.Errorf("expected %q, got %q", "quick", s.Text)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
	cfg := DefaultConfig()
	cfg.TickInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected zero tick interval to be rejected")
	}
}
