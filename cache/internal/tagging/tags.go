// Package tagging maintains the tag metadata of a set-associative cache.
package tagging

// A Block is the metadata that is associated with one cache line.
type Block struct {
	Tag     uint64
	SetID   int
	WayID   int
	Recency uint64
	IsValid bool
}

// A Set is a list of blocks where a certain piece of memory can be stored at.
type Set struct {
	Blocks []Block
}

// A TagArray keeps the valid bit, the tag, and the recency stamp of every
// line of a cache. Recency stamps come from a single monotonic clock, so no
// two lines ever carry the same stamp.
type TagArray interface {
	Lookup(addr uint64) (Block, bool)
	Update(block Block)
	Visit(block Block)
	GetSet(addr uint64) (set *Set, setID int)
	Decompose(addr uint64) (tag uint64, setID int)
	NumSets() int
	NumWays() int
	Reset()
}

// NewTagArray creates a TagArray with 2^setIndexBits sets, numWays ways per
// set, and 2^blockOffsetBits bytes per block. All the blocks start invalid.
func NewTagArray(
	setIndexBits int,
	numWays int,
	blockOffsetBits int,
) TagArray {
	t := &tagArrayImpl{
		setIndexBits:    setIndexBits,
		blockOffsetBits: blockOffsetBits,
		numWays:         numWays,
	}

	t.Reset()

	return t
}

// Decompose splits an address into its tag and set index. The set index is
// the setIndexBits-wide field right above the blockOffsetBits offset bits.
// The tag is everything above the set index. Once setIndexBits+
// blockOffsetBits reaches the address width, the tag is defined to be 0.
func Decompose(
	addr uint64,
	setIndexBits int,
	blockOffsetBits int,
) (tag uint64, setID int) {
	mask := uint64(1)<<setIndexBits - 1
	setID = int((addr >> blockOffsetBits) & mask)

	tagShift := setIndexBits + blockOffsetBits
	if tagShift >= 64 {
		return 0, setID
	}

	return addr >> tagShift, setID
}

type tagArrayImpl struct {
	setIndexBits    int
	blockOffsetBits int
	numWays         int
	sets            []Set
	clock           uint64
}

func (a *tagArrayImpl) NumSets() int {
	return len(a.sets)
}

func (a *tagArrayImpl) NumWays() int {
	return a.numWays
}

// Decompose splits an address according to the geometry of the tag array.
func (a *tagArrayImpl) Decompose(addr uint64) (tag uint64, setID int) {
	return Decompose(addr, a.setIndexBits, a.blockOffsetBits)
}

// GetSet returns the set that a certain address must be stored at.
func (a *tagArrayImpl) GetSet(addr uint64) (set *Set, setID int) {
	_, setID = a.Decompose(addr)
	set = &a.sets[setID]

	return
}

// Lookup finds the block that holds addr. If the address is valid in the
// cache, it returns the block information. Blocks are scanned in way order,
// so the result is deterministic.
func (a *tagArrayImpl) Lookup(addr uint64) (Block, bool) {
	tag, _ := a.Decompose(addr)
	set, _ := a.GetSet(addr)

	for _, block := range set.Blocks {
		if block.IsValid && block.Tag == tag {
			return block, true
		}
	}

	return Block{}, false
}

// Update overwrites the block metadata at the block's set and way.
func (a *tagArrayImpl) Update(block Block) {
	a.sets[block.SetID].Blocks[block.WayID] = block
}

// Visit marks the block as the most recently touched line of the whole
// cache by stamping it with the next value of the recency clock.
func (a *tagArrayImpl) Visit(block Block) {
	a.clock++
	a.sets[block.SetID].Blocks[block.WayID].Recency = a.clock
}

// Reset marks all the blocks in the tag array invalid and rewinds the
// recency clock.
func (a *tagArrayImpl) Reset() {
	numSets := 1 << a.setIndexBits

	a.clock = 0
	a.sets = make([]Set, numSets)
	for i := 0; i < numSets; i++ {
		for j := 0; j < a.numWays; j++ {
			block := Block{
				IsValid: false,
				SetID:   i,
				WayID:   j,
			}

			a.sets[i].Blocks = append(a.sets[i].Blocks, block)
		}
	}
}
