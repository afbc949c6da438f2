// Package borrow tracks live spans of a buffer so that exclusive access to a
// span can be enforced at run time.
package borrow

import (
	"fmt"
	"sync"
)

type Mode uint8

const (
	Shared Mode = iota + 1
	Exclusive
)

func (m Mode) String() string {
	switch m {
	case Shared:
		return "shared"
	case Exclusive:
		return "exclusive"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Span is the half-open element range [Lo, Hi) held in a given mode.
type Span struct {
	Lo, Hi int
	Mode   Mode
}

// overlaps reports whether s and o share an element. Empty spans share none.
func (s Span) overlaps(o Span) bool {
	return s.Lo < s.Hi && o.Lo < o.Hi && s.Lo < o.Hi && o.Lo < s.Hi
}

// conflicts reports whether s and o may not be live at the same time.
func (s Span) conflicts(o Span) bool {
	return s.overlaps(o) && (s.Mode == Exclusive || o.Mode == Exclusive)
}

func (s Span) String() string {
	return fmt.Sprintf("%s [%d, %d)", s.Mode, s.Lo, s.Hi)
}

// Conflict is returned when a requested span overlaps a live one.
type Conflict struct {
	Want Span
	Held Span
}

func (c *Conflict) Error() string {
	return fmt.Sprintf("%s conflicts with live %s", c.Want, c.Held)
}

// Tracker records live spans. The zero value is ready to use.
type Tracker struct {
	mu   sync.Mutex
	next uint64
	live map[uint64]Span
}

// Acquire registers s and returns a ticket for Release.
func (t *Tracker) Acquire(s Span) (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(s); err != nil {
		return 0, err
	}
	if t.live == nil {
		t.live = make(map[uint64]Span)
	}
	t.next++
	t.live[t.next] = s
	return t.next, nil
}

// Check reports whether s could be acquired right now, without acquiring it.
func (t *Tracker) Check(s Span) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.check(s)
}

func (t *Tracker) check(s Span) error {
	var held *Span
	for _, l := range t.live {
		if !s.conflicts(l) {
			continue
		}
		// report the lowest conflicting span so messages are stable
		if held == nil || l.Lo < held.Lo {
			held = &l
		}
	}
	if held != nil {
		return &Conflict{Want: s, Held: *held}
	}
	return nil
}

// Release drops the span registered under id. Unknown ids are ignored.
func (t *Tracker) Release(id uint64) {
	t.mu.Lock()
	delete(t.live, id)
	t.mu.Unlock()
}

// Live returns the number of spans currently held.
func (t *Tracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}
