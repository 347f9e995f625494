// Package navigator tracks the active section of a reading.
package navigator

import "github.com/rcliao/cosmic-whispers/internal/model"

// Navigator is a cursor over a reading's sections. The zero value has no
// sections; call Reset before use.
type Navigator struct {
	sections []model.ReadingSection
	active   int
}

// New returns a navigator positioned on the first section.
func New(sections []model.ReadingSection) *Navigator {
	n := &Navigator{}
	n.Reset(sections)
	return n
}

// Reset points the navigator at a new section list and moves to index 0.
// Readings always carry at least one section, so an empty list panics.
func (n *Navigator) Reset(sections []model.ReadingSection) {
	if len(sections) == 0 {
		panic("navigator: reading has no sections")
	}
	n.sections = sections
	n.active = 0
}

// Previous moves back one section. It reports whether the index changed.
func (n *Navigator) Previous() bool {
	if n.active == 0 {
		return false
	}
	n.active--
	return true
}

// Next moves forward one section. It reports whether the index changed.
func (n *Navigator) Next() bool {
	if n.active >= len(n.sections)-1 {
		return false
	}
	n.active++
	return true
}

// JumpTo moves to section k. Out of range indexes are ignored. It reports
// whether the index changed.
func (n *Navigator) JumpTo(k int) bool {
	if k < 0 || k >= len(n.sections) || k == n.active {
		return false
	}
	n.active = k
	return true
}

// Index returns the active index.
func (n *Navigator) Index() int { return n.active }

// Len returns the number of sections.
func (n *Navigator) Len() int { return len(n.sections) }

// Active returns the active section.
func (n *Navigator) Active() model.ReadingSection {
	return n.sections[n.active]
}

// AtStart reports whether the first section is active.
func (n *Navigator) AtStart() bool { return n.active == 0 }

// AtEnd reports whether the last section is active.
func (n *Navigator) AtEnd() bool { return n.active == len(n.sections)-1 }
