package rigid

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/physplay/internal/dynamo"
	"github.com/san-kum/physplay/internal/vmath"
)

func TestNewWorldRejectsInvertedIterations(t *testing.T) {
	g := NewWithT(t)

	cfg := DefaultConfig()
	cfg.MinIterations, cfg.MaxIterations = 5, 2
	_, err := NewWorld(cfg)
	g.Expect(err).To(MatchError(dynamo.ErrInvalidRange))

	cfg.MinIterations = 0
	_, err = NewWorld(cfg)
	g.Expect(err).To(MatchError(dynamo.ErrInvalidRange))

	w, err := NewWorld(DefaultConfig())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(w.MinIterations()).To(Equal(1))
	g.Expect(w.MaxIterations()).To(Equal(128))
	g.Expect(w.Gravity).To(Equal(vmath.V(0, -9.81)))
}

func TestWorldStepClampsIterations(t *testing.T) {
	g := NewWithT(t)

	w, err := NewWorld(Config{Gravity: vmath.V(0, -1), MinIterations: 2, MaxIterations: 4})
	g.Expect(err).NotTo(HaveOccurred())

	ball, err := NewCircleBody(vmath.Zero(), 1, 1, 0.5, false)
	g.Expect(err).NotTo(HaveOccurred())
	i := w.AddBody(ball)

	// Semi-implicit Euler over n substeps of 1/n falls (n+1)/(2n).
	g.Expect(w.Step(1, 100)).To(Succeed())
	b, _ := w.Body(i)
	g.Expect(b.Position().Y).To(BeNumerically("~", -0.625, 1e-12))

	b.MoveTo(vmath.Zero())
	b.LinearVelocity = vmath.Zero()
	g.Expect(w.Step(1, 0)).To(Succeed())
	g.Expect(b.Position().Y).To(BeNumerically("~", -0.75, 1e-12))

	g.Expect(w.Step(0, 4)).To(MatchError(dynamo.ErrInvalidRange))
}

func TestWorldRemoveBodyReindexes(t *testing.T) {
	g := NewWithT(t)

	w, _ := NewWorld(DefaultConfig())
	for x := 0.0; x < 3; x++ {
		b, err := NewCircleBody(vmath.V(x*10, 0), 1, 1, 0.5, false)
		g.Expect(err).NotTo(HaveOccurred())
		w.AddBody(b)
	}

	g.Expect(w.RemoveBody(1)).To(Succeed())
	g.Expect(w.Len()).To(Equal(2))

	b, err := w.Body(1)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(b.Index()).To(Equal(1))
	g.Expect(b.Position()).To(Equal(vmath.V(20, 0)))

	g.Expect(w.RemoveBody(5)).To(MatchError(dynamo.ErrInvalidRange))
	_, err = w.Body(-1)
	g.Expect(err).To(MatchError(dynamo.ErrInvalidRange))
}

func TestWorldHeadOnCollision(t *testing.T) {
	g := NewWithT(t)

	w, _ := NewWorld(Config{MinIterations: 1, MaxIterations: 1})
	a, _ := NewCircleBody(vmath.V(0, 0), 10, 1, 1, false)
	b, _ := NewCircleBody(vmath.V(19, 0), 10, 1, 1, false)
	a.LinearVelocity = vmath.V(5, 0)
	b.LinearVelocity = vmath.V(-5, 0)
	ia, ib := w.AddBody(a), w.AddBody(b)

	g.Expect(w.Step(0.001, 1)).To(Succeed())

	ba, _ := w.Body(ia)
	bb, _ := w.Body(ib)
	g.Expect(ba.LinearVelocity.X).To(BeNumerically("~", -5, 1e-9))
	g.Expect(bb.LinearVelocity.X).To(BeNumerically("~", 5, 1e-9))
	g.Expect(w.Manifolds()).To(HaveLen(1))
	g.Expect(ba.Position().Dist(bb.Position())).To(BeNumerically(">=", 20-1e-9))
}

func TestCircleRestsOnStaticBox(t *testing.T) {
	g := NewWithT(t)

	w, _ := NewWorld(DefaultConfig())
	floor, _ := NewBoxBody(vmath.V(0, 0), 100, 10, 1, 0.5, true)
	ball, _ := NewCircleBody(vmath.V(0, 10), 5, 1, 0, false)
	w.AddBody(floor)
	i := w.AddBody(ball)

	for step := 0; step < 120; step++ {
		g.Expect(w.Step(1.0/60, 8)).To(Succeed())
		b, _ := w.Body(i)
		g.Expect(b.Position().Y-5).To(BeNumerically(">=", 5-1e-6), "step %d", step)
	}

	f, _ := w.Body(0)
	g.Expect(f.Position()).To(Equal(vmath.V(0, 0)))
	g.Expect(f.LinearVelocity).To(Equal(vmath.Zero()))
}

func TestBoundaryWallsContainBodies(t *testing.T) {
	g := NewWithT(t)

	w, _ := NewWorld(Config{MinIterations: 1, MaxIterations: 16})
	g.Expect(w.AddBoundaryWalls(vmath.V(800, 600))).To(Succeed())
	g.Expect(w.Len()).To(Equal(4))
	for _, b := range w.Bodies() {
		g.Expect(b.IsStatic()).To(BeTrue())
	}

	ball, _ := NewCircleBody(vmath.V(50, 300), 10, 1, 1, false)
	ball.LinearVelocity = vmath.V(-100, 0)
	i := w.AddBody(ball)

	for step := 0; step < 60; step++ {
		g.Expect(w.Step(1.0/60, 8)).To(Succeed())
		b, _ := w.Body(i)
		g.Expect(b.Position().X-10).To(BeNumerically(">=", 1-1e-6))
	}
	b, _ := w.Body(i)
	g.Expect(b.LinearVelocity.X).To(BeNumerically(">", 0))

	g.Expect(w.AddBoundaryWalls(vmath.V(1, 1))).To(MatchError(dynamo.ErrInvalidRange))
}
