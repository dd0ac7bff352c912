package flock

import "github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"

// Obstacle is a static point the flock steers away from.
type Obstacle struct {
	Pos geometry.Vector2D
}

// NewObstacle creates an obstacle at pos.
func NewObstacle(pos geometry.Vector2D) Obstacle {
	return Obstacle{Pos: pos}
}

// InitializeObstacles builds a border of point obstacles around the rectangle
// whose corners are (±width/2, ±height/2). The top and bottom edges are walked
// first, one (top, bottom) pair per step, then the left and right edges, one
// (left, right) pair per step. Steps start at the truncated left/bottom corner
// coordinate and stop before the truncated right/top one, so a remainder
// smaller than spacing at the far edge is dropped.
func InitializeObstacles(width, height, spacing float64) []Obstacle {
	step := int(spacing)
	if step < 1 {
		return nil
	}

	var (
		left   = -width / 2
		right  = width / 2
		top    = height / 2
		bottom = -height / 2
	)

	var obstacles []Obstacle
	for i := int(left); i < int(right); i += step {
		obstacles = append(obstacles,
			NewObstacle(geometry.NewVector(float64(i), top)),
			NewObstacle(geometry.NewVector(float64(i), bottom)),
		)
	}
	for i := int(bottom); i < int(top); i += step {
		obstacles = append(obstacles,
			NewObstacle(geometry.NewVector(left, float64(i))),
			NewObstacle(geometry.NewVector(right, float64(i))),
		)
	}
	return obstacles
}
