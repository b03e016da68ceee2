package particle

import (
	"errors"
	"testing"

	"proveit/internal/core"
)

func anchorSpec() CellSpec {
	return CellSpec{
		BirthRate: 0,
		End:       Unbounded(),
		Generator: func(_ *core.RNG, p *Particle) {
			p.Lifetime = 0.1
			p.Velocity = core.Vec2{X: 10}
			p.Size = 16
		},
		Child: &CellSpec{
			BirthRate: 16,
			End:       0.25,
			Generator: func(_ *core.RNG, p *Particle) {
				p.Lifetime = 1
				p.Velocity = core.Vec2{}
				p.Size = 1
				p.Opacity = 1
			},
		},
	}
}

func TestAnchorOutlivesItsLifetimeWhileChildActive(t *testing.T) {
	s := New(anchorSpec(), Options{Canvas: core.Size{W: 100, H: 100}, Seed: 1})
	if !s.Add(core.Vec2{X: 50, Y: 50}) {
		t.Fatal("Add should keep a fresh anchor")
	}
	s.Step(0.25)

	if s.Roots() != 1 {
		t.Fatalf("roots = %d, want the expired anchor kept alive by its burst", s.Roots())
	}
	if s.Anchors() != 1 {
		t.Fatalf("anchors = %d, want 1", s.Anchors())
	}
	if s.Leaves() != 3 {
		t.Fatalf("leaves = %d, want 3 births inside [0, 0.25)", s.Leaves())
	}
	want := core.Vec2{X: 52.5, Y: 50}
	s.ForEachLeaf(func(p *Particle) {
		if p.Position != want || p.ParentCenter != want {
			t.Fatalf("child at %+v (parent center %+v), want anchored at %+v", p.Position, p.ParentCenter, want)
		}
	})

	for i := 0; i < 12; i++ {
		s.Step(0.1)
	}
	if s.Roots() != 0 || s.Len() != 0 {
		t.Fatalf("roots=%d len=%d after the burst faded, want an empty tree", s.Roots(), s.Len())
	}
}

func TestTickClampsDelta(t *testing.T) {
	s := New(CellSpec{End: Unbounded()}, Options{})
	if got := s.Tick(100).Delta; got != core.DefaultMaxStep {
		t.Fatalf("first tick delta = %v, want clamp %v", got, core.DefaultMaxStep)
	}
	if got := s.Tick(100).Delta; got != 0 {
		t.Fatalf("repeated timestamp delta = %v, want 0", got)
	}
	if got := s.Tick(99).Delta; got != 0 {
		t.Fatalf("rewound timestamp delta = %v, want 0", got)
	}
	got := s.Tick(99.05).Delta
	if got <= 0 || got > core.DefaultMaxStep {
		t.Fatalf("delta after rewind = %v, want (0, %v]", got, core.DefaultMaxStep)
	}
	if s.Root().Clock <= core.DefaultMaxStep {
		t.Fatalf("root clock = %v, want both positive ticks accumulated", s.Root().Clock)
	}
}

func TestRootSpawnsInsideCanvas(t *testing.T) {
	s := New(CellSpec{BirthRate: 64, End: Unbounded(), Generator: steady(10)}, Options{
		Canvas: core.Size{W: 400, H: 300},
		Seed:   3,
	})
	for i := 0; i < 20; i++ {
		s.Step(0.1)
	}
	if s.Roots() == 0 {
		t.Fatal("expected root particles")
	}
	s.ForEachRoot(func(p *Particle) {
		c := p.ParentCenter
		if c.X < 0 || c.X >= 400 || c.Y < 0 || c.Y >= 300 {
			t.Fatalf("spawn position %+v outside the 400x300 canvas", c)
		}
		if p.Position != c {
			t.Fatalf("motionless particle drifted from %+v to %+v", c, p.Position)
		}
	})
}

func burstSpec() CellSpec {
	return CellSpec{
		BirthRate: 8,
		End:       Unbounded(),
		Generator: func(_ *core.RNG, p *Particle) {
			p.Lifetime = 0.5
			p.Size = 16
		},
		Child: &CellSpec{BirthRate: 200, End: 0.1, Generator: steady(0.3)},
	}
}

func TestTraversalVisitsLeavesOnly(t *testing.T) {
	s := New(burstSpec(), Options{Canvas: core.Size{W: 64, H: 64}, Seed: 5})
	for i := 0; i < 5; i++ {
		s.Step(0.1)
	}
	s.ForEachLeaf(func(p *Particle) {
		if p.HasChild() {
			t.Fatal("ForEachLeaf visited an anchor")
		}
	})
	s.ForEachAnchor(func(p *Particle) {
		if !p.HasChild() {
			t.Fatal("ForEachAnchor visited a leaf")
		}
	})
	if s.Leaves() == 0 || s.Anchors() == 0 {
		t.Fatalf("leaves=%d anchors=%d, want both populated", s.Leaves(), s.Anchors())
	}
	if s.Leaves()+s.Anchors() != s.Len() {
		t.Fatalf("leaves %d + anchors %d != live %d", s.Leaves(), s.Anchors(), s.Len())
	}
}

func TestCloseAndReset(t *testing.T) {
	s := New(burstSpec(), Options{Canvas: core.Size{W: 64, H: 64}, Seed: 5})
	s.Step(0.1)
	s.Close()
	if !s.Closed() || s.Len() != 0 {
		t.Fatalf("closed=%v len=%d, want a closed empty system", s.Closed(), s.Len())
	}
	if stats := s.Tick(10); stats != (core.TickStats{}) {
		t.Fatalf("tick after close = %+v, want zero stats", stats)
	}
	if s.Add(core.Vec2{}) {
		t.Fatal("Add after close must be refused")
	}
	s.ForEachLeaf(func(*Particle) { t.Fatal("closed system visited a particle") })

	s.Reset(9)
	if s.Closed() {
		t.Fatal("Reset must reopen the system")
	}
	s.Step(0.5)
	if s.Roots() == 0 {
		t.Fatal("reset system should spawn again")
	}
}

func positions(s *System) []core.Vec2 {
	var out []core.Vec2
	s.ForEachLeaf(func(p *Particle) { out = append(out, p.Position) })
	return out
}

func TestSameSeedSameTree(t *testing.T) {
	run := func(seed int64) []core.Vec2 {
		s := New(burstSpec(), Options{Canvas: core.Size{W: 320, H: 240}, Seed: seed})
		for i := 0; i < 4; i++ {
			s.Step(0.1)
		}
		return positions(s)
	}
	a, b := run(11), run(11)
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("runs produced %d and %d leaves", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("leaf %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestDepthCapTurnsDeepParticlesIntoLeaves(t *testing.T) {
	spec := &CellSpec{BirthRate: 20, End: Unbounded(), Generator: steady(1)}
	spec.Child = spec
	s := New(*spec, Options{Canvas: core.Size{W: 10, H: 10}, MaxDepth: 2, Seed: 2})
	for i := 0; i < 5; i++ {
		s.Step(0.1)
	}
	if s.Anchors() == 0 {
		t.Fatal("expected first-level anchors")
	}
	s.ForEachAnchor(func(p *Particle) {
		info, ok := s.Child(p)
		if !ok {
			t.Fatal("anchor without a child cell")
		}
		if info.Depth != 1 {
			t.Fatalf("child cell at depth %d, want 1", info.Depth)
		}
	})
}

func TestArenaRecyclesSlots(t *testing.T) {
	s := New(CellSpec{BirthRate: 10, End: Unbounded(), Generator: steady(0.5)}, Options{Canvas: core.Size{W: 10, H: 10}})
	for i := 0; i < 200; i++ {
		s.Step(0.1)
	}
	if s.Len() > 8 {
		t.Fatalf("live = %d, want a steady population of about 5", s.Len())
	}
	if n := len(s.arena.particles); n > 12 {
		t.Fatalf("arena grew to %d slots for a population of %d", n, s.Len())
	}
}

func TestAddRespectsDepthCap(t *testing.T) {
	s := New(anchorSpec(), Options{MaxDepth: 1})
	s.Add(core.Vec2{X: 1, Y: 1})
	if s.Anchors() != 0 {
		t.Fatal("MaxDepth 1 must not attach child cells")
	}
	if s.Root().BirthRate != 0 {
		t.Fatalf("root birth rate = %v, want 0", s.Root().BirthRate)
	}
}

func TestUnboundedChildRejected(t *testing.T) {
	leaf := &CellSpec{BirthRate: 10, End: Unbounded(), Generator: steady(1)}
	spec := CellSpec{BirthRate: 1, End: Unbounded(), Generator: steady(0.1), Child: leaf}
	if err := spec.Validate(); !errors.Is(err, ErrUnboundedChild) {
		t.Fatalf("err = %v, want ErrUnboundedChild", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("New accepted an unbounded child")
		}
	}()
	New(spec, Options{Canvas: core.Size{W: 10, H: 10}})
}

func TestAnchorDiesOnceChildWindowCloses(t *testing.T) {
	leaf := &CellSpec{BirthRate: 10, End: 0.5, Generator: steady(0.3)}
	silent := &CellSpec{End: Unbounded()}
	if err := (&CellSpec{Child: silent}).Validate(); err != nil {
		t.Fatalf("a child that never spawns is fine: %v", err)
	}
	s := New(CellSpec{End: Unbounded(), Generator: steady(0.1), Child: leaf}, Options{
		Canvas: core.Size{W: 10, H: 10},
	})
	if !s.Add(core.Vec2{X: 1, Y: 1}) {
		t.Fatal("Add rejected the anchor")
	}
	for range 20 {
		s.Step(0.1)
	}
	if s.Len() != 0 {
		t.Fatalf("particles = %d after the child window closed, want 0", s.Len())
	}
}
