package tagging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Decompose", func() {
	It("should extract the set index from above the offset bits", func() {
		tag, setID := Decompose(0b1101_0110_1011, 4, 4)

		Expect(setID).To(Equal(0b0110))
		Expect(tag).To(Equal(uint64(0b1101)))
	})

	It("should map everything to set 0 when there are no index bits", func() {
		tag, setID := Decompose(0x7fff_ffff_ffff, 0, 6)

		Expect(setID).To(Equal(0))
		Expect(tag).To(Equal(uint64(0x7fff_ffff_ffff) >> 6))
	})

	It("should not discard offset bits when there are none", func() {
		tag, setID := Decompose(0x5, 1, 0)

		Expect(setID).To(Equal(1))
		Expect(tag).To(Equal(uint64(0x2)))
	})

	It("should define the tag to be 0 at the address width", func() {
		tag, _ := Decompose(0xffff_ffff_ffff_ffff, 32, 32)

		Expect(tag).To(Equal(uint64(0)))
	})

	It("should define the tag to be 0 beyond the address width", func() {
		tag, _ := Decompose(0xffff_ffff_ffff_ffff, 48, 32)

		Expect(tag).To(Equal(uint64(0)))
	})

	It("should recover the address from the decomposed fields", func() {
		addrs := []uint64{
			0x0, 0x1, 0x2, 0x7f, 0x80,
			0xdead_beef, 0x7fff_5fbf_f8d0, 0xffff_ffff_ffff_ffff,
		}

		for s := 0; s < 8; s++ {
			for b := 0; b < 8; b++ {
				for _, addr := range addrs {
					tag, setID := Decompose(addr, s, b)

					rebuilt := tag<<(s+b) | uint64(setID)<<b
					orig := addr &^ (uint64(1)<<b - 1)
					Expect(rebuilt).To(Equal(orig))
				}
			}
		}
	})
})

var _ = Describe("TagArray", func() {
	var tags TagArray

	BeforeEach(func() {
		tags = NewTagArray(2, 4, 4)
	})

	It("should report its geometry", func() {
		Expect(tags.NumSets()).To(Equal(4))
		Expect(tags.NumWays()).To(Equal(4))
	})

	It("should start with all the blocks invalid", func() {
		for setID := 0; setID < tags.NumSets(); setID++ {
			set, _ := tags.GetSet(uint64(setID) << 4)
			for wayID, block := range set.Blocks {
				Expect(block.IsValid).To(BeFalse())
				Expect(block.SetID).To(Equal(setID))
				Expect(block.WayID).To(Equal(wayID))
			}
		}
	})

	It("should lookup", func() {
		block := Block{
			Tag:     0x10,
			SetID:   2,
			WayID:   1,
			IsValid: true,
		}
		tags.Update(block)

		found, ok := tags.Lookup(0x42c)
		Expect(ok).To(BeTrue())
		Expect(found).To(Equal(block))
	})

	It("should not find an address that was never installed", func() {
		block, ok := tags.Lookup(0x42c)

		Expect(ok).To(BeFalse())
		Expect(block).To(BeZero())
	})

	It("should not find an invalid block", func() {
		block := Block{
			Tag:     0x10,
			SetID:   2,
			WayID:   1,
			IsValid: false,
		}
		tags.Update(block)

		found, ok := tags.Lookup(0x42c)
		Expect(ok).To(BeFalse())
		Expect(found).To(BeZero())
	})

	It("should stamp strictly increasing recency on visits", func() {
		set, _ := tags.GetSet(0x00)

		tags.Visit(set.Blocks[1])
		firstStamp := set.Blocks[1].Recency

		tags.Visit(set.Blocks[1])
		secondStamp := set.Blocks[1].Recency

		tags.Visit(set.Blocks[2])
		thirdStamp := set.Blocks[2].Recency

		Expect(secondStamp).To(BeNumerically(">", firstStamp))
		Expect(thirdStamp).To(BeNumerically(">", secondStamp))
	})

	It("should keep recency stamps unique across sets", func() {
		set0, _ := tags.GetSet(0x00)
		set1, _ := tags.GetSet(0x10)

		tags.Visit(set0.Blocks[0])
		tags.Visit(set1.Blocks[0])

		Expect(set0.Blocks[0].Recency).NotTo(Equal(set1.Blocks[0].Recency))
	})

	It("should invalidate everything on reset", func() {
		tags.Update(Block{Tag: 0x10, SetID: 2, WayID: 1, IsValid: true})

		tags.Reset()

		_, ok := tags.Lookup(0x42c)
		Expect(ok).To(BeFalse())
	})
})
