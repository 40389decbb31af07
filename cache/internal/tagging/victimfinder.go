package tagging

// A VictimFinder decides which way of a set should receive an incoming block
type VictimFinder interface {
	FindVictim(set *Set) Block
}

// LRUVictimFinder evicts the least recently used block of a set
type LRUVictimFinder struct {
}

// NewLRUVictimFinder returns a newly constructed lru evictor
func NewLRUVictimFinder() *LRUVictimFinder {
	e := new(LRUVictimFinder)
	return e
}

// FindVictim returns the first invalid block of the set. When all the blocks
// are valid, it returns the one with the strictly smallest recency stamp.
func (e *LRUVictimFinder) FindVictim(set *Set) Block {
	// First try filling an empty block
	for _, block := range set.Blocks {
		if !block.IsValid {
			return block
		}
	}

	victim := set.Blocks[0]
	for _, block := range set.Blocks[1:] {
		if block.Recency < victim.Recency {
			victim = block
		}
	}

	return victim
}
