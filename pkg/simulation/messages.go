package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The FlockActor speaks in protobuf well-known types:
//
//	*durationpb.Duration   Tick, carries the host frame time (telemetry only)
//	*structpb.Struct       tuning, see TuningMessage
//	*wrapperspb.Int32Value respawn a flock of that size
//	*emptypb.Empty         snapshot request (Ask), answered with a *structpb.Struct

// TickMessage advances the simulation by exactly one tick.
func TickMessage(frame time.Duration) *durationpb.Duration {
	return durationpb.New(frame)
}

// RespawnMessage replaces the flock by n freshly placed boids.
func RespawnMessage(n int) *wrapperspb.Int32Value {
	return wrapperspb.Int32(int32(n))
}

// RequestSnapshot asks the flock actor for its current state.
func RequestSnapshot(ctx context.Context, pid *actor.PID, timeout time.Duration) (*structpb.Struct, error) {
	resp, err := actor.Ask(ctx, pid, &emptypb.Empty{}, timeout)
	if err != nil {
		return nil, fmt.Errorf("snapshot request failed: %w", err)
	}
	st, ok := resp.(*structpb.Struct)
	if !ok {
		return nil, fmt.Errorf("snapshot request: unexpected response %T", resp)
	}
	return st, nil
}
