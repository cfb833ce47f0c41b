package templates_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physplay/internal/dynamo"
	"github.com/san-kum/physplay/internal/templates"
	"github.com/san-kum/physplay/internal/vmath"
)

func rigidSnapshot(r *templates.RigidSimulation) templates.RigidSnapshot {
	GinkgoHelper()
	snap, err := r.Snapshot()
	Expect(err).NotTo(HaveOccurred())
	return snap.(templates.RigidSnapshot)
}

var _ = Describe("RigidSimulation", func() {
	var r *templates.RigidSimulation

	BeforeEach(func() {
		r = templates.NewRigidSimulation(templates.DefaultRigidOptions())
	})

	It("rejects use before initialization", func() {
		Expect(r.Step(0.1)).To(MatchError(dynamo.ErrUninitialized))
		_, err := r.Snapshot()
		Expect(err).To(MatchError(dynamo.ErrUninitialized))
		Expect(r.HandleEvent(templates.EventSetGravity, json.RawMessage(`{"x":0,"y":0}`))).To(MatchError(dynamo.ErrUninitialized))
	})

	Context("once initialized", func() {
		BeforeEach(func() {
			starter, err := templates.NewStarter([]vmath.Vec2{vmath.V(100, 300), vmath.V(200, 300)})
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Initialize(vmath.V(800, 600), starter)).To(Succeed())
		})

		It("frames the bounds with static walls and alternates shapes", func() {
			bodies := rigidSnapshot(r).Bodies
			Expect(bodies).To(HaveLen(6))

			for _, wall := range bodies[:4] {
				Expect(wall.Static).To(BeTrue())
				Expect(wall.Shape).To(BeTrue())
			}
			Expect(bodies[0].Position).To(Equal(vmath.V(400, 600)))
			Expect(bodies[0].Width).To(BeNumerically("~", 798, 1e-9))
			Expect(bodies[2].Height).To(BeNumerically("~", 598, 1e-9))

			Expect(bodies[4].Shape).To(BeFalse())
			Expect(bodies[4].Radius).To(Equal(10.0))
			Expect(bodies[5].Shape).To(BeTrue())
			Expect(bodies[5].Width).To(BeNumerically("~", 20, 1e-9))
		})

		It("produces identical snapshots without a step", func() {
			a, err := r.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			b, err := r.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))

			ja, _ := json.Marshal(a)
			jb, _ := json.Marshal(b)
			Expect(ja).To(MatchJSON(jb))
		})

		It("marshals the render wire format", func() {
			snap, _ := r.Snapshot()
			data, err := json.Marshal(snap)
			Expect(err).NotTo(HaveOccurred())

			var wire struct {
				Bodies []map[string]json.RawMessage `json:"bodies"`
			}
			Expect(json.Unmarshal(data, &wire)).To(Succeed())
			Expect(wire.Bodies).To(HaveLen(6))
			for _, key := range []string{"position", "rotation", "radius", "width", "height", "shape"} {
				Expect(wire.Bodies[4]).To(HaveKey(key))
			}
			Expect(string(wire.Bodies[4]["position"])).To(Equal(`{"x":100,"y":300}`))
		})

		It("lets dynamic bodies fall under gravity", func() {
			before := rigidSnapshot(r).Bodies[4].Position
			Expect(r.Step(1.0 / 60)).To(Succeed())
			after := rigidSnapshot(r).Bodies[4].Position
			Expect(after.Y).To(BeNumerically("<", before.Y))
			Expect(after.X).To(Equal(before.X))
		})

		It("handles body events", func() {
			Expect(r.HandleEvent(templates.EventAddBody, json.RawMessage(`{"position":{"x":400,"y":300},"shape":"box"}`))).To(Succeed())
			Expect(r.World().Len()).To(Equal(7))

			Expect(r.HandleEvent(templates.EventAddBody, json.RawMessage(`{"position":{"x":1,"y":1},"shape":"triangle"}`))).
				To(MatchError(dynamo.ErrParameterBounds))

			Expect(r.HandleEvent(templates.EventRemoveBody, json.RawMessage(`{"index":0}`))).To(MatchError(dynamo.ErrParameterBounds))
			Expect(r.HandleEvent(templates.EventRemoveBody, json.RawMessage(`{"index":4}`))).To(Succeed())
			Expect(r.World().Len()).To(Equal(6))
			Expect(r.HandleEvent(templates.EventRemoveBody, json.RawMessage(`{"index":40}`))).To(MatchError(dynamo.ErrInvalidRange))
		})

		It("updates gravity", func() {
			Expect(r.HandleEvent(templates.EventSetGravity, json.RawMessage(`{"x":1,"y":2}`))).To(Succeed())
			Expect(r.World().Gravity).To(Equal(vmath.V(1, 2)))
		})

		It("rejects unknown events and missing payloads", func() {
			Expect(r.HandleEvent("explode", nil)).To(MatchError(dynamo.ErrUnknownEvent))
			Expect(r.HandleEvent(templates.EventSetGravity, nil)).To(HaveOccurred())
			Expect(r.HandleEvent(templates.EventSetGravity, json.RawMessage(`"up"`))).To(HaveOccurred())
		})
	})

	It("rejects malformed starter data", func() {
		Expect(r.Initialize(vmath.V(800, 600), json.RawMessage(`{"positions":5}`))).To(HaveOccurred())
		Expect(r.World()).To(BeNil())
	})

	It("accepts an empty starter", func() {
		Expect(r.Initialize(vmath.V(800, 600), nil)).To(Succeed())
		Expect(rigidSnapshot(r).Bodies).To(HaveLen(4))
	})
})
