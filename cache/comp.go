// Package cache models a set-associative cache with a least-recently-used
// replacement policy. The model only tracks line metadata (valid bit, tag,
// recency stamp); no data movement is simulated.
package cache

import (
	"github.com/sarchlab/csim/cache/internal/tagging"
)

// AccessResult describes how the cache resolved one access.
type AccessResult int

// The possible access results. A miss either fills an invalid line or
// evicts the least recently used line of a full set.
const (
	Hit AccessResult = iota
	MissFilled
	MissEvicted
)

func (r AccessResult) String() string {
	switch r {
	case Hit:
		return "hit"
	case MissFilled:
		return "miss"
	case MissEvicted:
		return "miss eviction"
	default:
		return "unknown"
	}
}

// Stats accumulates the outcome counters of a simulation run. The counters
// only ever increase.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Comp is the cache model. A Comp resolves one address probe at a time and
// keeps its own counters and recency clock, so independent instances never
// interfere with each other.
type Comp struct {
	name string

	tags         tagging.TagArray
	victimFinder tagging.VictimFinder

	stats Stats
}

// Name returns the name of the cache.
func (c *Comp) Name() string {
	return c.name
}

// Access resolves one address probe against the cache, updating the line
// metadata and the counters.
//
// A probe is a hit when a valid line of the target set carries the address's
// tag; the line is then restamped as most recently used. On a miss, the
// incoming tag is installed into the first invalid line of the set, or, when
// the set is full, into the line with the smallest recency stamp.
func (c *Comp) Access(addr uint64) AccessResult {
	if block, found := c.tags.Lookup(addr); found {
		c.stats.Hits++
		c.tags.Visit(block)

		return Hit
	}

	c.stats.Misses++

	tag, _ := c.tags.Decompose(addr)
	set, _ := c.tags.GetSet(addr)
	victim := c.victimFinder.FindVictim(set)

	result := MissFilled
	if victim.IsValid {
		c.stats.Evictions++
		result = MissEvicted
	}

	victim.Tag = tag
	victim.IsValid = true
	c.tags.Update(victim)
	c.tags.Visit(victim)

	return result
}

// Decompose reports the tag and the set index that the cache derives from an
// address. It does not modify any state.
func (c *Comp) Decompose(addr uint64) (tag uint64, setID int) {
	return c.tags.Decompose(addr)
}

// Stats returns a copy of the current counters.
func (c *Comp) Stats() Stats {
	return c.stats
}

// Reset invalidates every line and clears the counters, returning the cache
// to its post-construction state.
func (c *Comp) Reset() {
	c.tags.Reset()
	c.stats = Stats{}
}
