package flock

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1024))
}

func obstaclePositions(obstacles []Obstacle) []geometry.Vector2D {
	out := make([]geometry.Vector2D, len(obstacles))
	for i, o := range obstacles {
		out[i] = o.Pos
	}
	return out
}

func TestNewEnvironment(t *testing.T) {
	e := NewEnvironment(100, 100, DefaultParams())

	if e.HalfWidth() != 50 || e.HalfHeight() != 50 {
		t.Fatalf("half-extents = (%v, %v); want (50, 50)", e.HalfWidth(), e.HalfHeight())
	}
	if len(e.Boids) != 0 {
		t.Errorf("expected an empty flock, got %d boids", len(e.Boids))
	}

	// The border is built from the half-extents: one pair per edge walk.
	want := []geometry.Vector2D{
		{X: -25, Y: 25}, {X: -25, Y: -25}, // top, bottom
		{X: -25, Y: -25}, {X: 25, Y: -25}, // left, right
	}
	if got := obstaclePositions(e.Obstacles); !slices.Equal(got, want) {
		t.Errorf("obstacles = %v; want %v", got, want)
	}
}

func TestNewEnvironment_ObstaclesMatchBounds(t *testing.T) {
	p := DefaultParams()
	p.ObstaclesMatchBounds = true
	e := NewEnvironment(100, 100, p)

	for _, o := range e.Obstacles {
		onVertical := math.Abs(o.Pos.X) == e.HalfWidth()
		onHorizontal := math.Abs(o.Pos.Y) == e.HalfHeight()
		if !onVertical && !onHorizontal {
			t.Errorf("obstacle %v is not on the movement bounds", o.Pos)
		}
	}
	if len(e.Obstacles) != 8 {
		t.Errorf("got %d obstacles; want 8", len(e.Obstacles))
	}
}

func TestInitializeObstacles(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		spacing       float64
		want          []geometry.Vector2D
		wantCount     int
	}{
		{
			name: "Square 100", width: 100, height: 100, spacing: 50,
			want: []geometry.Vector2D{
				{X: -50, Y: 50}, {X: -50, Y: -50}, {X: 0, Y: 50}, {X: 0, Y: -50},
				{X: -50, Y: -50}, {X: 50, Y: -50}, {X: -50, Y: 0}, {X: 50, Y: 0},
			},
			wantCount: 8,
		},
		{
			name: "Fractional corners are truncated", width: 101, height: 60, spacing: 50,
			want: []geometry.Vector2D{
				{X: -50, Y: 30}, {X: -50, Y: -30}, {X: 0, Y: 30}, {X: 0, Y: -30},
				{X: -50.5, Y: -30}, {X: 50.5, Y: -30}, {X: -50.5, Y: 20}, {X: 50.5, Y: 20},
			},
			wantCount: 8,
		},
		// 1920/50 -> 39 steps, 1080/50 -> 22 steps, remainders dropped
		{name: "Full HD", width: 1920, height: 1080, spacing: 50, wantCount: (39 + 22) * 2},
		{name: "Zero spacing", width: 100, height: 100, spacing: 0, wantCount: 0},
		{name: "Empty world", width: 0, height: 0, spacing: 50, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InitializeObstacles(tt.width, tt.height, tt.spacing)
			if len(got) != tt.wantCount {
				t.Fatalf("got %d obstacles; want %d", len(got), tt.wantCount)
			}
			if tt.want != nil && !slices.Equal(obstaclePositions(got), tt.want) {
				t.Errorf("obstacles = %v; want %v", obstaclePositions(got), tt.want)
			}
		})
	}
}

func TestEnvironment_InitializeBoids(t *testing.T) {
	e := NewEnvironment(400, 200, DefaultParams())
	src := seeded()

	e.InitializeBoids(100, src)
	if len(e.Boids) != 100 {
		t.Fatalf("got %d boids; want 100", len(e.Boids))
	}
	for i, b := range e.Boids {
		if b.ID != i {
			t.Errorf("boid %d has ID %d", i, b.ID)
		}
		if b.Pos.X < -200 || b.Pos.X >= 200 || b.Pos.Y < -100 || b.Pos.Y >= 100 {
			t.Errorf("boid %d is outside the world: %v", i, b.Pos)
		}
		if b.Vel.Len() > DefaultMaxSpeed+geometry.Epsilon {
			t.Errorf("boid %d is too fast: %v", i, b.Vel.Len())
		}
	}

	// A second call appends.
	e.InitializeBoids(5, src)
	if len(e.Boids) != 105 {
		t.Fatalf("got %d boids after second call; want 105", len(e.Boids))
	}
	if e.Boids[104].ID != 104 {
		t.Errorf("last boid ID = %d; want 104", e.Boids[104].ID)
	}
}

func TestEnvironment_InitializeBoidsIsReproducible(t *testing.T) {
	a := NewEnvironment(1920, 1080, DefaultParams())
	b := NewEnvironment(1920, 1080, DefaultParams())
	a.InitializeBoids(50, seeded())
	b.InitializeBoids(50, seeded())

	if !slices.Equal(a.Boids, b.Boids) {
		t.Error("same seed produced different flocks")
	}
}

func TestEnvironment_ResetBoids(t *testing.T) {
	e := NewEnvironment(100, 100, DefaultParams())
	e.InitializeBoids(10, seeded())
	e.ResetBoids()
	if len(e.Boids) != 0 {
		t.Fatalf("got %d boids after reset", len(e.Boids))
	}
	e.InitializeBoids(3, seeded())
	if e.Boids[0].ID != 0 {
		t.Errorf("IDs should restart at 0, got %d", e.Boids[0].ID)
	}
}

func TestEnvironment_UpdateReadsThePreTickFlock(t *testing.T) {
	e := NewEnvironment(1000, 1000, DefaultParams())
	e.Obstacles = nil
	e.Boids = []Boid{
		NewBoid(0, vec(0, 0), vec(0, 0)),
		NewBoid(1, vec(1, 0), vec(0, 0)),
	}

	e.Update()

	// Boid 0 is pulled by the position of boid 1.
	if !e.Boids[0].Vel.Eq(vec(0.005, 0)) {
		t.Errorf("boid 0 Vel = %v; want (0.005, 0)", e.Boids[0].Vel)
	}
	// Boid 1 only sees boid 0 as it was: at the origin, not moving.
	if e.Boids[1].Vel != vec(0, 0) || e.Boids[1].Pos != vec(1, 0) {
		t.Errorf("boid 1 = %v / %v; want it untouched", e.Boids[1].Pos, e.Boids[1].Vel)
	}
}

func TestEnvironment_UpdateIsOrderIndependent(t *testing.T) {
	ordered := NewEnvironment(200, 200, DefaultParams())
	ordered.InitializeBoids(40, seeded())

	permuted := NewEnvironment(200, 200, DefaultParams())
	permuted.Boids = ordered.Snapshot()
	rand.New(rand.NewPCG(7, 7)).Shuffle(len(permuted.Boids), func(i, j int) {
		permuted.Boids[i], permuted.Boids[j] = permuted.Boids[j], permuted.Boids[i]
	})

	for tick := 0; tick < 5; tick++ {
		ordered.Update()
		permuted.Update()
	}

	got := permuted.Snapshot()
	slices.SortFunc(got, func(a, b Boid) int { return a.ID - b.ID })

	const tolerance = 1e-9
	for i, want := range ordered.Boids {
		g := got[i]
		if g.ID != want.ID {
			t.Fatalf("index %d: ID %d; want %d", i, g.ID, want.ID)
		}
		if g.Pos.DistanceTo(want.Pos) > tolerance || g.Vel.DistanceTo(want.Vel) > tolerance {
			t.Errorf("boid %d diverged: %v/%v; want %v/%v", want.ID, g.Pos, g.Vel, want.Pos, want.Vel)
		}
	}
}

func TestEnvironment_SpeedNeverExceedsMax(t *testing.T) {
	p := DefaultParams()
	e := NewEnvironment(300, 300, p)
	e.InitializeBoids(60, seeded())

	for tick := 0; tick < 300; tick++ {
		e.Update()
		for _, b := range e.Boids {
			if b.Vel.Len() > p.MaxSpeed+geometry.Epsilon {
				t.Fatalf("tick %d: boid %d speed %v > %v", tick, b.ID, b.Vel.Len(), p.MaxSpeed)
			}
			if b.Pos.X < -e.HalfWidth() || b.Pos.X > e.HalfWidth() ||
				b.Pos.Y < -e.HalfHeight() || b.Pos.Y > e.HalfHeight() {
				t.Fatalf("tick %d: boid %d escaped the world at %v", tick, b.ID, b.Pos)
			}
		}
	}
}

func TestEnvironment_Determinism(t *testing.T) {
	run := func() uint64 {
		e := NewEnvironment(640, 480, DefaultParams())
		e.InitializeBoids(50, seeded())
		for i := 0; i < 200; i++ {
			e.Update()
		}
		return e.Checksum()
	}

	first, second := run(), run()
	if first != second {
		t.Errorf("checksums differ across runs: %x != %x", first, second)
	}
}

func TestEnvironment_Checksum(t *testing.T) {
	e := NewEnvironment(640, 480, DefaultParams())
	e.InitializeBoids(20, seeded())
	before := e.Checksum()

	if again := e.Checksum(); again != before {
		t.Fatalf("checksum is not stable: %x != %x", before, again)
	}
	e.Update()
	if after := e.Checksum(); after == before {
		t.Errorf("checksum did not change after a tick")
	}
}

func TestEnvironment_SnapshotIsACopy(t *testing.T) {
	e := NewEnvironment(100, 100, DefaultParams())
	e.InitializeBoids(3, seeded())

	snap := e.Snapshot()
	snap[0].Pos = vec(999, 999)
	if e.Boids[0].Pos == vec(999, 999) {
		t.Error("mutating the snapshot changed the environment")
	}
}

func TestEnvironment_SetParams(t *testing.T) {
	e := NewEnvironment(100, 100, DefaultParams())
	e.Obstacles = nil
	e.Boids = []Boid{NewBoid(0, vec(0, 0), vec(0.4, 0))}

	p := DefaultParams()
	p.MaxSpeed = 0.1
	e.SetParams(p)
	e.Update()

	if got := e.Boids[0].Vel.Len(); math.Abs(got-0.1) > geometry.Epsilon {
		t.Errorf("speed = %v; want 0.1 after lowering MaxSpeed", got)
	}
	if e.Params().MaxSpeed != 0.1 {
		t.Errorf("Params().MaxSpeed = %v; want 0.1", e.Params().MaxSpeed)
	}
}

func TestUniform(t *testing.T) {
	src := seeded()
	for i := 0; i < 1000; i++ {
		v := Uniform(src, -0.5, 0.5)
		if v < -0.5 || v >= 0.5 {
			t.Fatalf("Uniform(-0.5, 0.5) = %v", v)
		}
	}
	if v := Uniform(src, 3, 3); v != 3 {
		t.Errorf("Uniform on an empty range = %v; want 3", v)
	}
}

func BenchmarkEnvironment_Update(b *testing.B) {
	e := NewEnvironment(1920, 1080, DefaultParams())
	e.InitializeBoids(50, seeded())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Update()
	}
}
