package simulation

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	ErrUnknownTuningKey   = errors.New("unknown tuning key")
	ErrInvalidTuningValue = errors.New("invalid tuning value")
)

// Tuning keys, identical to the Config json names.
const (
	keyAlignmentFactor         = "alignmentFactor"
	keyCoherenceFactor         = "coherenceFactor"
	keySeparationFactor        = "separationFactor"
	keyObstacleAvoidanceFactor = "obstacleAvoidanceFactor"
	keyVisualRadius            = "visualRadius"
	keyMaxSpeed                = "maxSpeed"
	keySeparationEnabled       = "separationEnabled"
	keyDistanceWeighted        = "distanceWeighted"
)

// TuningMessage encodes the runtime-tunable part of p as a message for the FlockActor.
func TuningMessage(p flock.Params) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		keyAlignmentFactor:         p.AlignmentFactor,
		keyCoherenceFactor:         p.CoherenceFactor,
		keySeparationFactor:        p.SeparationFactor,
		keyObstacleAvoidanceFactor: p.ObstacleAvoidanceFactor,
		keyVisualRadius:            p.VisualRadius,
		keyMaxSpeed:                p.MaxSpeed,
		keySeparationEnabled:       p.SeparationEnabled,
		keyDistanceWeighted:        p.DistanceWeighted,
	})
}

// ApplyTuning copies the fields present in msg into p.
// p is left untouched when any field is unknown or has the wrong type.
func ApplyTuning(p *flock.Params, msg *structpb.Struct) error {
	next := *p
	for key, value := range msg.GetFields() {
		var err error
		switch key {
		case keyAlignmentFactor:
			next.AlignmentFactor, err = nonNegative(key, value)
		case keyCoherenceFactor:
			next.CoherenceFactor, err = nonNegative(key, value)
		case keySeparationFactor:
			next.SeparationFactor, err = nonNegative(key, value)
		case keyObstacleAvoidanceFactor:
			next.ObstacleAvoidanceFactor, err = nonNegative(key, value)
		case keyVisualRadius:
			next.VisualRadius, err = nonNegative(key, value)
		case keyMaxSpeed:
			next.MaxSpeed, err = nonNegative(key, value)
		case keySeparationEnabled:
			next.SeparationEnabled, err = boolean(key, value)
		case keyDistanceWeighted:
			next.DistanceWeighted, err = boolean(key, value)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownTuningKey, key)
		}
		if err != nil {
			return err
		}
	}
	*p = next
	return nil
}

func nonNegative(key string, v *structpb.Value) (float64, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue < 0 {
		return 0, fmt.Errorf("%w: %s must be a non negative number, got %v", ErrInvalidTuningValue, key, v.AsInterface())
	}
	return n.NumberValue, nil
}

func boolean(key string, v *structpb.Value) (bool, error) {
	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a boolean, got %v", ErrInvalidTuningValue, key, v.AsInterface())
	}
	return b.BoolValue, nil
}
