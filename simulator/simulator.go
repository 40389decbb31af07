// Package simulator replays recorded memory accesses against a cache model
// and accumulates the hit, miss, and eviction counters.
package simulator

import (
	"github.com/sarchlab/csim/cache"
	"github.com/sarchlab/csim/hooking"
	"github.com/sarchlab/csim/trace"
)

// HookPosAccessComplete triggers after each replacement decision. The Item
// of the hook context is an AccessRecord.
var HookPosAccessComplete = &hooking.HookPos{Name: "AccessComplete"}

// An AccessRecord describes one replacement decision that the cache made.
type AccessRecord struct {
	Seq     uint64
	Kind    trace.Kind
	Address uint64
	SetID   int
	Tag     uint64
	Result  cache.AccessResult
}

// A Simulator replays accesses on a cache, one at a time, in trace order.
// Hooks attached to the simulator observe every replacement decision without
// being able to affect it.
type Simulator struct {
	hooking.HookableBase

	cache *cache.Comp
	seq   uint64
}

// New creates a Simulator that drives c.
func New(c *cache.Comp) *Simulator {
	return &Simulator{cache: c}
}

// Process replays one access. Load and Store probe the cache once. Modify
// stands for a load immediately followed by a store to the same address, so
// it probes twice; the second probe always finds the line that the first one
// touched or installed.
func (s *Simulator) Process(access trace.Access) {
	s.probe(access)

	if access.Kind == trace.Modify {
		s.probe(access)
	}
}

// Run replays a whole trace and returns the final counters.
func (s *Simulator) Run(accesses []trace.Access) cache.Stats {
	for _, access := range accesses {
		s.Process(access)
	}

	return s.cache.Stats()
}

// Stats returns the counters accumulated so far.
func (s *Simulator) Stats() cache.Stats {
	return s.cache.Stats()
}

func (s *Simulator) probe(access trace.Access) {
	result := s.cache.Access(access.Address)

	s.seq++
	tag, setID := s.cache.Decompose(access.Address)

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    HookPosAccessComplete,
		Item: AccessRecord{
			Seq:     s.seq,
			Kind:    access.Kind,
			Address: access.Address,
			SetID:   setID,
			Tag:     tag,
			Result:  result,
		},
	})
}
