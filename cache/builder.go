package cache

import (
	"fmt"

	"github.com/sarchlab/csim/cache/internal/tagging"
)

// Builder can build caches.
type Builder struct {
	setIndexBits     int
	wayAssociativity int
	blockOffsetBits  int
	replaceStrategy  string
}

// MakeBuilder creates a new builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		setIndexBits:     4,
		wayAssociativity: 1,
		blockOffsetBits:  4,
		replaceStrategy:  "lru",
	}
}

// WithSetIndexBits sets the number of set index bits. The cache will have
// 2^setIndexBits sets.
func (b Builder) WithSetIndexBits(setIndexBits int) Builder {
	b.setIndexBits = setIndexBits
	return b
}

// WithWayAssociativity sets the number of lines per set.
func (b Builder) WithWayAssociativity(wayAssociativity int) Builder {
	b.wayAssociativity = wayAssociativity
	return b
}

// WithBlockOffsetBits sets the number of block offset bits. Blocks are
// 2^blockOffsetBits bytes.
func (b Builder) WithBlockOffsetBits(blockOffsetBits int) Builder {
	b.blockOffsetBits = blockOffsetBits
	return b
}

// WithReplacementStrategy sets the replacement strategy of the builder.
// Only "lru" is supported.
func (b Builder) WithReplacementStrategy(strategy string) Builder {
	b.replaceStrategy = strategy
	return b
}

// Build builds a cache. It panics if the geometry is ill-formed, before any
// storage is allocated.
func (b Builder) Build(name string) *Comp {
	b.mustHaveValidGeometry()

	comp := &Comp{
		name:         name,
		victimFinder: b.createVictimFinder(),
	}
	comp.tags = tagging.NewTagArray(
		b.setIndexBits,
		b.wayAssociativity,
		b.blockOffsetBits,
	)

	return comp
}

func (b Builder) mustHaveValidGeometry() {
	if b.wayAssociativity < 1 {
		panic(fmt.Sprintf(
			"cache must have at least 1 way per set, got %d",
			b.wayAssociativity))
	}

	if b.setIndexBits < 0 {
		panic(fmt.Sprintf(
			"set index bit count cannot be negative, got %d",
			b.setIndexBits))
	}

	if b.blockOffsetBits < 0 {
		panic(fmt.Sprintf(
			"block offset bit count cannot be negative, got %d",
			b.blockOffsetBits))
	}
}

func (b Builder) createVictimFinder() tagging.VictimFinder {
	switch b.replaceStrategy {
	case "lru":
		return tagging.NewLRUVictimFinder()
	default:
		panic("unknown replace strategy: " + b.replaceStrategy)
	}
}
