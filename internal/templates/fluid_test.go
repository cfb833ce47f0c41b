package templates_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physplay/internal/dynamo"
	"github.com/san-kum/physplay/internal/fluid"
	"github.com/san-kum/physplay/internal/templates"
	"github.com/san-kum/physplay/internal/vmath"
)

var _ = Describe("FluidSimulation", func() {
	var f *templates.FluidSimulation

	BeforeEach(func() {
		f = templates.NewFluidSimulation(fluid.DefaultConfig())
	})

	It("rejects use before initialization", func() {
		Expect(f.Step(0.1)).To(MatchError(dynamo.ErrUninitialized))
		_, err := f.Snapshot()
		Expect(err).To(MatchError(dynamo.ErrUninitialized))
		Expect(f.HandleEvent(templates.EventInteractiveForceToggle, json.RawMessage(`true`))).To(MatchError(dynamo.ErrUninitialized))
	})

	Context("once initialized", func() {
		BeforeEach(func() {
			starter, err := templates.NewStarter([]vmath.Vec2{vmath.V(100, 100), vmath.V(110, 100), vmath.V(120, 100)})
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Initialize(vmath.V(400, 300), starter)).To(Succeed())
		})

		It("sizes the box and seeds particles", func() {
			fl := f.Fluid()
			Expect(fl.Bounds).To(Equal(vmath.F(400, 300)))
			Expect(fl.Particles.Len()).To(Equal(3))
			Expect(fl.Particles.Mass).To(BeNumerically("~", 50.0/3, 1e-5))
		})

		It("marshals the render wire format", func() {
			snap, err := f.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			data, err := json.Marshal(snap)
			Expect(err).NotTo(HaveOccurred())

			var wire struct {
				FluidParticles map[string]json.RawMessage `json:"fluid_particles"`
			}
			Expect(json.Unmarshal(data, &wire)).To(Succeed())
			for _, key := range []string{
				"mass", "radius", "target_density", "pressure_multiplier", "smoothing_radius",
				"positions", "predicted_positions", "velocities", "densities", "colors",
			} {
				Expect(wire.FluidParticles).To(HaveKey(key))
			}
			Expect(string(wire.FluidParticles["colors"])).To(Equal(`["#FFFFFFFF","#FFFFFFFF","#FFFFFFFF"]`))
		})

		It("produces identical, independent snapshots without a step", func() {
			Expect(f.Step(1.0 / 60)).To(Succeed())

			a, _ := f.Snapshot()
			b, _ := f.Snapshot()
			Expect(a).To(Equal(b))

			a.(templates.FluidSnapshot).FluidParticles.Positions[0] = vmath.F(-1, -1)
			c, _ := f.Snapshot()
			Expect(c).To(Equal(b))
		})

		It("applies settings", func() {
			payload := json.RawMessage(`{
				"collision_restitution": 0.5,
				"gravity": 9.81,
				"target_density": 1.5,
				"mass": 30,
				"pressure_stiffness": 2,
				"visual_filter": 3,
				"smoothing_radius": 20,
				"viscosity_strength": 0.1
			}`)
			Expect(f.HandleEvent(templates.EventSetSettings, payload)).To(Succeed())

			fl := f.Fluid()
			Expect(fl.VisualFilter).To(Equal(fluid.FilterDensity))
			Expect(fl.Particles.SmoothingRadius).To(BeNumerically("==", 20))
			Expect(fl.Particles.Mass).To(BeNumerically("~", 10, 1e-5))

			Expect(f.HandleEvent(templates.EventSetSettings, json.RawMessage(`{"visual_filter": 9, "mass": 1, "smoothing_radius": 1}`))).
				To(MatchError(dynamo.ErrParameterBounds))
			Expect(f.HandleEvent(templates.EventSetSettings, nil)).To(HaveOccurred())
		})

		It("toggles and positions the interactive force", func() {
			fl := f.Fluid()
			Expect(f.HandleEvent(templates.EventInteractiveForcePosition, json.RawMessage(`{"x":50,"y":60}`))).To(Succeed())
			Expect(fl.Interactive.Enabled).To(BeTrue())
			Expect(fl.Interactive.Position).To(Equal(vmath.F(50, 60)))

			Expect(f.HandleEvent(templates.EventInteractiveForceToggle, json.RawMessage(`false`))).To(Succeed())
			Expect(fl.Interactive.Enabled).To(BeFalse())
			Expect(f.HandleEvent("interractive_force_toggle", json.RawMessage(`true`))).To(Succeed())
			Expect(fl.Interactive.Enabled).To(BeTrue())

			Expect(f.HandleEvent(templates.EventInteractiveForce, json.RawMessage(`{"position":{"x":1,"y":2},"attract":false}`))).To(Succeed())
			Expect(fl.Interactive.Mode).To(Equal(fluid.Repel))
			Expect(fl.Interactive.Position).To(Equal(vmath.F(1, 2)))

			Expect(f.HandleEvent(templates.EventInteractiveForceToggle, json.RawMessage(`"yes"`))).To(HaveOccurred())
		})

		It("rejects unknown events", func() {
			Expect(f.HandleEvent("freeze", nil)).To(MatchError(dynamo.ErrUnknownEvent))
		})
	})
})
