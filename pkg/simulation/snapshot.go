package simulation

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Snapshot is the read-only view of the world handed to renderers after a tick.
// Boids and Obstacles are copies, renderers may keep them.
type Snapshot struct {
	RunID      string
	Tick       uint64
	HalfWidth  float64
	HalfHeight float64
	Boids      []flock.Boid
	Obstacles  []flock.Obstacle
	Params     flock.Params
	Checksum   uint64
}

func newSnapshot(runID string, tick uint64, env *flock.Environment) *Snapshot {
	return &Snapshot{
		RunID:      runID,
		Tick:       tick,
		HalfWidth:  env.HalfWidth(),
		HalfHeight: env.HalfHeight(),
		Boids:      env.Snapshot(),
		Obstacles:  append([]flock.Obstacle(nil), env.Obstacles...),
		Params:     env.Params(),
		Checksum:   env.Checksum(),
	}
}

// ChecksumHex formats the checksum the way it is exported, numbers in a
// structpb.Struct are doubles and would lose bits.
func (s *Snapshot) ChecksumHex() string {
	return fmt.Sprintf("%016x", s.Checksum)
}

// ToProto converts the snapshot into a structpb.Struct "envelope".
func (s *Snapshot) ToProto() (*structpb.Struct, error) {
	boids := make([]interface{}, 0, len(s.Boids))
	for _, b := range s.Boids {
		boids = append(boids, map[string]interface{}{
			"id":  b.ID,
			"pos": map[string]interface{}{"x": b.Pos.X, "y": b.Pos.Y},
			"vel": map[string]interface{}{"x": b.Vel.X, "y": b.Vel.Y},
		})
	}
	obstacles := make([]interface{}, 0, len(s.Obstacles))
	for _, o := range s.Obstacles {
		obstacles = append(obstacles, map[string]interface{}{"x": o.Pos.X, "y": o.Pos.Y})
	}

	tuning, err := TuningMessage(s.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tuning: %w", err)
	}

	st, err := structpb.NewStruct(map[string]interface{}{
		"runId":      s.RunID,
		"tick":       s.Tick,
		"halfWidth":  s.HalfWidth,
		"halfHeight": s.HalfHeight,
		"checksum":   s.ChecksumHex(),
		"boids":      boids,
		"obstacles":  obstacles,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	st.Fields["params"] = structpb.NewStructValue(tuning)
	return st, nil
}

// MarshalSnapshotJSON renders an encoded snapshot as indented JSON.
func MarshalSnapshotJSON(st *structpb.Struct) ([]byte, error) {
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
}
