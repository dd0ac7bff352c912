package flock

// Default tuning, the constants the flock was balanced with.
const (
	DefaultCoherenceFactor         = 0.01
	DefaultSeparationFactor        = 0.01
	DefaultAlignmentFactor         = 0.01
	DefaultObstacleAvoidanceFactor = 5.0
	DefaultVisualRadius            = 50.0
	DefaultMaxSpeed                = 0.5
	DefaultObstacleSpacing         = 50.0
)

// Params controls the steering constants for the simulation.
// Passing it into Boid.Update allows the rules to change at runtime.
type Params struct {
	CoherenceFactor         float64 // Cohesion strength
	SeparationFactor        float64 // Separation strength, only used with SeparationEnabled
	AlignmentFactor         float64 // Alignment strength
	ObstacleAvoidanceFactor float64 // Obstacle push strength
	VisualRadius            float64 // How far can they see?
	MaxSpeed                float64 // Clamp for velocity and for the alignment/cohesion/separation sums

	// ObstacleSpacing is the distance between two obstacles of the border.
	ObstacleSpacing float64

	// SeparationEnabled adds the separation vector into the acceleration.
	// Off by default: separation is computed every tick but not applied.
	SeparationEnabled bool
	// DistanceWeighted divides every separation and avoidance direction by the
	// distance to its source, so close neighbors push harder.
	DistanceWeighted bool
	// ObstaclesMatchBounds places the obstacle border on the movement bounds
	// instead of half way between the origin and the bounds.
	ObstaclesMatchBounds bool
}

// DefaultParams returns the tuning the flock was balanced with.
func DefaultParams() Params {
	return Params{
		CoherenceFactor:         DefaultCoherenceFactor,
		SeparationFactor:        DefaultSeparationFactor,
		AlignmentFactor:         DefaultAlignmentFactor,
		ObstacleAvoidanceFactor: DefaultObstacleAvoidanceFactor,
		VisualRadius:            DefaultVisualRadius,
		MaxSpeed:                DefaultMaxSpeed,
		ObstacleSpacing:         DefaultObstacleSpacing,
	}
}
