package anim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physlab/internal/anim"
	"github.com/san-kum/physlab/internal/dynamo"
)

var _ = Describe("Transition", func() {
	DescribeTable("allowed moves",
		func(from dynamo.Phase, ev anim.Event, want dynamo.Phase) {
			got, err := anim.Transition(from, ev)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("impact starts the collision", dynamo.Before, anim.EventImpact, dynamo.During),
		Entry("hold ends the freeze", dynamo.During, anim.EventHoldElapsed, dynamo.After),
		Entry("clearing after loops back", dynamo.After, anim.EventCleared, dynamo.Before),
		Entry("clearing without impact stays before", dynamo.Before, anim.EventCleared, dynamo.Before),
		Entry("reset from during", dynamo.During, anim.EventReset, dynamo.Before),
		Entry("reset from after", dynamo.After, anim.EventReset, dynamo.Before),
	)

	DescribeTable("rejected moves",
		func(from dynamo.Phase, ev anim.Event) {
			got, err := anim.Transition(from, ev)
			Expect(err).To(MatchError(dynamo.ErrInvalidTransition))
			Expect(got).To(Equal(from))
		},
		Entry("after cannot impact", dynamo.After, anim.EventImpact),
		Entry("during cannot impact again", dynamo.During, anim.EventImpact),
		Entry("before has no hold", dynamo.Before, anim.EventHoldElapsed),
		Entry("during cannot clear", dynamo.During, anim.EventCleared),
	)
})

var _ = Describe("Animator", func() {
	var (
		a   *anim.Animator
		rec *anim.Recorder
	)

	BeforeEach(func() {
		cfg := anim.DefaultConfig()
		cfg.Loop = false
		a = anim.New(anim.NewCollisionScene(anim.Elastic, anim.DefaultCollisionParams(), anim.DefaultTrackLength), cfg)
		rec = anim.NewRecorder(0)
		a.AddObserver(rec)
		a.Start()
	})

	It("walks before, during, after and back to before", func() {
		a.RunUntil(5000, nil)

		Expect(a.Err()).NotTo(HaveOccurred())
		Expect(anim.ValidateTrace(rec.Phases())).To(Succeed())
		Expect(rec.Phases()).To(ContainElements(dynamo.Before, dynamo.During, dynamo.After))
		Expect(a.State().Phase).To(Equal(dynamo.Before))
		Expect(a.State().Running).To(BeFalse())
	})

	It("keeps the elapsed clock monotonic within a run", func() {
		a.RunUntil(5000, nil)

		frames := rec.Frames
		for i := 1; i < len(frames)-1; i++ {
			Expect(frames[i].State.Elapsed).To(BeNumerically(">", frames[i-1].State.Elapsed))
		}
		Expect(frames[len(frames)-1].State.Elapsed).To(BeZero())
	})

	It("rewinds when the sliders change", func() {
		a.RunUntil(30, nil)
		scene := a.Scene().(*anim.CollisionScene)
		scene.Configure(anim.CollisionParams{Mass1: 6, Velocity1: 5, Mass2: 1, Velocity2: -5})
		a.Reset()

		Expect(a.Ticks()).To(BeZero())
		Expect(a.Bodies()[0].Velocity.X).To(Equal(5.0))
		Expect(a.Bodies()[0].Mass).To(Equal(6.0))
	})
})
