package flock

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// RandomSource is a uniform generator of floats in [0, 1).
// *math/rand/v2.Rand satisfies it; tests use a seeded one.
type RandomSource interface {
	Float64() float64
}

// Uniform returns a float in [lo, hi) drawn from src.
func Uniform(src RandomSource, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}

// Environment owns the world state: its bounds, the flock and the obstacles.
// The world is a rectangle centered at the origin spanning
// [-HalfWidth, HalfWidth] × [-HalfHeight, HalfHeight].
//
// Boids and Obstacles are exported for renderers, which must treat them as
// read only. Environment is not safe for concurrent use.
type Environment struct {
	halfWidth  float64
	halfHeight float64
	params     Params

	Boids     []Boid
	Obstacles []Obstacle
}

// NewEnvironment creates an empty world of the given full extents.
// The obstacle border is generated once, from the half-extents, so it sits
// half way between the origin and the bounds unless p.ObstaclesMatchBounds is set.
func NewEnvironment(width, height float64, p Params) *Environment {
	e := &Environment{
		halfWidth:  width / 2,
		halfHeight: height / 2,
		params:     p,
	}
	if p.ObstaclesMatchBounds {
		e.Obstacles = InitializeObstacles(width, height, p.ObstacleSpacing)
	} else {
		e.Obstacles = InitializeObstacles(e.halfWidth, e.halfHeight, p.ObstacleSpacing)
	}
	return e
}

// HalfWidth returns half of the world width.
func (e *Environment) HalfWidth() float64 { return e.halfWidth }

// HalfHeight returns half of the world height.
func (e *Environment) HalfHeight() float64 { return e.halfHeight }

// Params returns the current tuning.
func (e *Environment) Params() Params { return e.params }

// SetParams changes the tuning used from the next tick on.
// The obstacle border is left as it was built.
func (e *Environment) SetParams(p Params) { e.params = p }

// InitializeBoids appends count boids placed uniformly inside the world, with
// a velocity drawn uniformly in [-MaxSpeed, MaxSpeed) on each axis then limited
// to MaxSpeed. Calling it again adds more boids.
func (e *Environment) InitializeBoids(count int, src RandomSource) {
	maxSpeed := e.params.MaxSpeed
	for i := 0; i < count; i++ {
		pos := geometry.NewVector(
			Uniform(src, -e.halfWidth, e.halfWidth),
			Uniform(src, -e.halfHeight, e.halfHeight),
		)
		vel := geometry.NewVector(
			Uniform(src, -maxSpeed, maxSpeed),
			Uniform(src, -maxSpeed, maxSpeed),
		).Limit(maxSpeed)
		e.Boids = append(e.Boids, NewBoid(len(e.Boids), pos, vel))
	}
}

// ResetBoids removes the whole flock.
func (e *Environment) ResetBoids() {
	e.Boids = e.Boids[:0]
}

// Update performs exactly one tick. Every boid is updated from the same copy
// of the pre-tick flock, so the iteration order does not change the result.
func (e *Environment) Update() {
	before := e.Snapshot()
	for i := range e.Boids {
		e.Boids[i].Update(before, e.Obstacles, e.halfWidth, e.halfHeight, e.params)
	}
}

// Snapshot returns a copy of the flock.
func (e *Environment) Snapshot() []Boid {
	return append([]Boid(nil), e.Boids...)
}

// Checksum fingerprints the flock state (ids, positions and velocities, in
// flock order). Two environments with equal checksums hold bit-identical flocks.
func (e *Environment) Checksum() uint64 {
	buf := make([]byte, 0, len(e.Boids)*40)
	for _, b := range e.Boids {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(b.ID))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(b.Pos.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(b.Pos.Y))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(b.Vel.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(b.Vel.Y))
	}
	return xxhash.Sum64(buf)
}
