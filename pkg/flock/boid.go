package flock

import "github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"

// Boid represents a single entity in the flock.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// The name "boid" corresponds to a shortened version of "bird-oid object".
// https://en.wikipedia.org/wiki/Boids
// Fields are exported so renderers can read them.
type Boid struct {
	ID  int
	Pos geometry.Vector2D
	Vel geometry.Vector2D
}

// NewBoid creates a boid, its velocity is not clamped.
func NewBoid(id int, pos, vel geometry.Vector2D) Boid {
	return Boid{ID: id, Pos: pos, Vel: vel}
}

// Update advances the boid by one tick.
// flock must be the state of the whole flock before the tick (the boid itself
// may be part of it), it is only read. The world spans
// [-halfWidth, halfWidth] × [-halfHeight, halfHeight] and wraps around.
func (b *Boid) Update(flock []Boid, obstacles []Obstacle, halfWidth, halfHeight float64, p Params) {
	alignment := b.Alignment(flock, p)
	separation := b.Separation(flock, p)
	cohesion := b.Cohesion(flock, p)
	avoidance := b.ObstacleAvoidance(obstacles, p)

	acceleration := alignment.Mul(p.AlignmentFactor).
		Add(cohesion.Mul(p.CoherenceFactor)).
		Add(avoidance.Mul(p.ObstacleAvoidanceFactor))
	if p.SeparationEnabled {
		acceleration = acceleration.Add(separation.Mul(p.SeparationFactor))
	}

	b.Vel = b.Vel.Add(acceleration).Limit(p.MaxSpeed)
	b.Pos = b.Pos.Add(b.Vel)
	b.wrap(halfWidth, halfHeight)
}

// wrap teleports the boid to the opposite edge once it is strictly outside
// the bounds. A boid exactly on an edge stays there.
func (b *Boid) wrap(halfWidth, halfHeight float64) {
	if b.Pos.X < -halfWidth {
		b.Pos.X = halfWidth
	} else if b.Pos.X > halfWidth {
		b.Pos.X = -halfWidth
	}

	if b.Pos.Y < -halfHeight {
		b.Pos.Y = halfHeight
	} else if b.Pos.Y > halfHeight {
		b.Pos.Y = -halfHeight
	}
}

// sees reports whether other is a neighbor: inside the visual radius and not
// at the boid's own position.
func (b *Boid) sees(other geometry.Vector2D, p Params) bool {
	d := b.Pos.DistanceTo(other)
	return d < p.VisualRadius && d > 0
}

// Alignment is the sum of the neighbors' velocities, limited to MaxSpeed.
func (b *Boid) Alignment(flock []Boid, p Params) geometry.Vector2D {
	var sum geometry.Vector2D
	for _, other := range flock {
		if b.sees(other.Pos, p) {
			sum = sum.Add(other.Vel)
		}
	}
	return sum.Limit(p.MaxSpeed)
}

// Cohesion is the sum of the neighbors' positions, limited to MaxSpeed.
func (b *Boid) Cohesion(flock []Boid, p Params) geometry.Vector2D {
	var sum geometry.Vector2D
	for _, other := range flock {
		if b.sees(other.Pos, p) {
			sum = sum.Add(other.Pos)
		}
	}
	return sum.Limit(p.MaxSpeed)
}

// Separation accumulates the directions away from every neighbor, limited to MaxSpeed.
func (b *Boid) Separation(flock []Boid, p Params) geometry.Vector2D {
	var sum geometry.Vector2D
	for _, other := range flock {
		if b.sees(other.Pos, p) {
			sum = sum.Sub(b.push(other.Pos, p))
		}
	}
	return sum.Limit(p.MaxSpeed)
}

// ObstacleAvoidance accumulates the directions away from every visible obstacle.
// The sum is not limited.
func (b *Boid) ObstacleAvoidance(obstacles []Obstacle, p Params) geometry.Vector2D {
	var sum geometry.Vector2D
	for _, o := range obstacles {
		if b.Pos.DistanceTo(o.Pos) < p.VisualRadius {
			sum = sum.Sub(b.push(o.Pos, p))
		}
	}
	return sum
}

// push is the unit direction toward target, divided by the distance when
// DistanceWeighted is set.
func (b *Boid) push(target geometry.Vector2D, p Params) geometry.Vector2D {
	dir := b.Pos.VectorTo(target)
	if !p.DistanceWeighted {
		return dir
	}
	d := b.Pos.DistanceTo(target)
	if d == 0 {
		return geometry.Vector2D{}
	}
	return dir.Mul(1 / d)
}
