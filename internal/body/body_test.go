package body_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/particle"
)

var _ = Describe("TemplateStore", func() {
	var store *body.TemplateStore

	BeforeEach(func() {
		store = body.NewTemplateStore()
		store.SetType(2, []body.Site{
			{Offset: particle.Vec3{1, 0, 0}, Orient: particle.IdentityQuat()},
			{Offset: particle.Vec3{-1, 0, 0}, Orient: particle.IdentityQuat()},
		})
		store.Freeze()
	})

	It("returns sites by local index", func() {
		site, err := store.Site(2, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(site.Offset).To(Equal(particle.Vec3{-1, 0, 0}))
	})

	It("rejects unknown body types", func() {
		_, err := store.Site(7, 0)
		Expect(err).To(MatchError(body.ErrNoTemplate))
	})

	It("rejects local indices beyond the table", func() {
		_, err := store.Site(2, 2)
		Expect(err).To(MatchError(body.ErrNoSite))
	})

	It("reports constituent counts", func() {
		Expect(store.Len(2)).To(Equal(2))
		Expect(store.Len(9)).To(BeZero())
	})

	It("panics when mutated after freeze", func() {
		Expect(func() {
			store.SetType(3, nil)
		}).To(Panic())
	})
})

var _ = Describe("MoleculeIndex", func() {
	It("orders members with the central at slot zero", func() {
		snap := particle.NewSnapshot(6, 0, 6)
		// Two bodies: tags 0..2 and 3..5, stored out of order.
		snap.Tag = []int{4, 0, 3, 2, 5, 1}
		for i, tag := range snap.Tag {
			snap.RTag[tag] = i
		}
		snap.Body = []int{3, 0, 3, 0, 3, 0}

		mi, err := body.Build(snap)
		Expect(err).NotTo(HaveOccurred())
		Expect(mi.NMol()).To(Equal(2))

		Expect(snap.Tag[mi.Member(0, 0)]).To(Equal(0))
		Expect(snap.Tag[mi.Member(0, 1)]).To(Equal(1))
		Expect(snap.Tag[mi.Member(0, 2)]).To(Equal(2))
		Expect(snap.Tag[mi.Member(1, 0)]).To(Equal(3))
		Expect(mi.Len(1)).To(Equal(3))
		Expect(mi.MaxLen()).To(Equal(3))
	})

	It("includes ghost members", func() {
		snap := particle.NewSnapshot(2, 1, 3)
		snap.Body = []int{0, 0, 0}

		mi, err := body.Build(snap)
		Expect(err).NotTo(HaveOccurred())
		Expect(mi.Len(0)).To(Equal(3))
	})

	It("fails when the central particle is missing", func() {
		snap := particle.NewSnapshot(2, 0, 4)
		snap.Tag = []int{2, 3}
		snap.RTag[2], snap.RTag[3] = 0, 1
		snap.Body = []int{1, 1} // tag 1 exists nowhere

		_, err := body.Build(snap)
		Expect(err).To(MatchError(body.ErrCentralMissing))
	})

	It("fails on duplicate central tags", func() {
		snap := particle.NewSnapshot(2, 0, 4)
		snap.Tag = []int{2, 2} // corrupted reverse-tag bookkeeping
		snap.RTag[2] = 0
		snap.Body = []int{2, 2}

		_, err := body.Build(snap)
		Expect(err).To(MatchError(body.ErrBadMolecule))
	})

	It("ignores free particles", func() {
		snap := particle.NewSnapshot(4, 0, 4)
		snap.Body[0] = 0
		snap.Body[1] = 0

		mi, err := body.Build(snap)
		Expect(err).NotTo(HaveOccurred())
		Expect(mi.NMol()).To(Equal(1))
		Expect(mi.Len(0)).To(Equal(2))
	})
})
