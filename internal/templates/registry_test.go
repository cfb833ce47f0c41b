package templates_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physplay/internal/config"
	"github.com/san-kum/physplay/internal/dynamo"
	"github.com/san-kum/physplay/internal/templates"
)

var _ = Describe("Registry", func() {
	var (
		reg *templates.Registry
		cfg *config.Config
	)

	BeforeEach(func() {
		reg = templates.NewRegistry()
		cfg = config.DefaultConfig()
	})

	It("lists the available templates", func() {
		Expect(reg.List()).To(Equal([]string{"fluid", "rigid"}))
	})

	DescribeTable("lookup by id",
		func(id templates.ID, expected any) {
			tpl, err := reg.Get(id, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(tpl).To(BeAssignableToTypeOf(expected))
		},
		Entry("fluid", templates.FluidID, &templates.FluidSimulation{}),
		Entry("rigid", templates.RigidID, &templates.RigidSimulation{}),
	)

	It("rejects the bouncing-ball template and unknown ids", func() {
		_, err := reg.Get(templates.BouncingBallsID, cfg)
		Expect(err).To(MatchError(dynamo.ErrUnknownTemplate))
		_, err = reg.Get(templates.ID(42), cfg)
		Expect(err).To(MatchError(dynamo.ErrUnknownTemplate))
		_, err = reg.GetByName("bouncing_balls", cfg)
		Expect(err).To(MatchError(dynamo.ErrUnknownTemplate))
	})

	It("builds templates by name from config", func() {
		tpl, err := reg.GetByName("rigid", config.GetPreset("rigid", "pile"))
		Expect(err).NotTo(HaveOccurred())
		Expect(tpl.Initialize(cfg.Bounds(), nil)).To(Succeed())
		Expect(tpl.(*templates.RigidSimulation).World().MaxIterations()).To(Equal(16))
	})

	It("surfaces config errors", func() {
		cfg.Rigid.Resolver = "magic"
		_, err := reg.Get(templates.RigidID, cfg)
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})
})
