package tagging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LRUVictimFinder", func() {
	var (
		set          *Set
		victimFinder *LRUVictimFinder
	)

	BeforeEach(func() {
		set = &Set{
			Blocks: []Block{
				{SetID: 0, WayID: 0},
				{SetID: 0, WayID: 1},
				{SetID: 0, WayID: 2},
				{SetID: 0, WayID: 3},
			},
		}
		victimFinder = NewLRUVictimFinder()
	})

	It("should pick the first invalid block", func() {
		set.Blocks[0].IsValid = true
		set.Blocks[0].Recency = 1

		victim := victimFinder.FindVictim(set)

		Expect(victim.WayID).To(Equal(1))
		Expect(victim.IsValid).To(BeFalse())
	})

	It("should prefer an invalid block over an older valid one", func() {
		set.Blocks[0].IsValid = true
		set.Blocks[0].Recency = 1
		set.Blocks[1].IsValid = true
		set.Blocks[1].Recency = 2
		set.Blocks[3].IsValid = true
		set.Blocks[3].Recency = 3

		victim := victimFinder.FindVictim(set)

		Expect(victim.WayID).To(Equal(2))
	})

	It("should evict the least recently used block when the set is full",
		func() {
			for i := range set.Blocks {
				set.Blocks[i].IsValid = true
			}
			set.Blocks[0].Recency = 7
			set.Blocks[1].Recency = 3
			set.Blocks[2].Recency = 9
			set.Blocks[3].Recency = 5

			victim := victimFinder.FindVictim(set)

			Expect(victim.WayID).To(Equal(1))
		})

	It("should handle a direct-mapped set", func() {
		directMapped := &Set{Blocks: []Block{{IsValid: true, Recency: 4}}}

		victim := victimFinder.FindVictim(directMapped)

		Expect(victim.WayID).To(Equal(0))
	})
})
