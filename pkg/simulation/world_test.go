package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/structpb"
)

const askTimeout = 5 * time.Second

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.WorldWidth = 400
	cfg.WorldHeight = 300
	cfg.NumBoids = 20
	cfg.Seed = 7
	return cfg
}

func startSystem(t *testing.T) (context.Context, actor.ActorSystem) {
	t.Helper()
	ctx := context.Background()
	sys, err := actor.NewActorSystem("flock-test", actor.WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	require.NoError(t, sys.Start(ctx))
	t.Cleanup(func() { _ = sys.Stop(ctx) })
	return ctx, sys
}

func spawnFlock(t *testing.T, ctx context.Context, sys actor.ActorSystem, name string, cfg *Config, ch chan<- *Snapshot) *actor.PID {
	t.Helper()
	pid, err := sys.Spawn(ctx, name, NewFlockActor(ch, cfg))
	require.NoError(t, err)
	return pid
}

func tickN(t *testing.T, ctx context.Context, pid *actor.PID, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, actor.Tell(ctx, pid, TickMessage(16*time.Millisecond)))
	}
}

func number(st *structpb.Struct, key string) float64 {
	return st.GetFields()[key].GetNumberValue()
}

func TestFlockActor_Ticks(t *testing.T) {
	ctx, sys := startSystem(t)
	pid := spawnFlock(t, ctx, sys, "flock", testConfig(), nil)

	tickN(t, ctx, pid, 10)
	st, err := RequestSnapshot(ctx, pid, askTimeout)
	require.NoError(t, err)

	assert.Equal(t, float64(10), number(st, "tick"))
	assert.Equal(t, float64(200), number(st, "halfWidth"))
	assert.Equal(t, float64(150), number(st, "halfHeight"))
	assert.Len(t, st.GetFields()["boids"].GetListValue().GetValues(), 20)
	assert.NotEmpty(t, st.GetFields()["obstacles"].GetListValue().GetValues())
	assert.Len(t, st.GetFields()["checksum"].GetStringValue(), 16)
}

func TestFlockActor_Deterministic(t *testing.T) {
	ctx, sys := startSystem(t)
	a := spawnFlock(t, ctx, sys, "flock-a", testConfig(), nil)
	b := spawnFlock(t, ctx, sys, "flock-b", testConfig(), nil)

	tickN(t, ctx, a, 50)
	tickN(t, ctx, b, 50)

	sa, err := RequestSnapshot(ctx, a, askTimeout)
	require.NoError(t, err)
	sb, err := RequestSnapshot(ctx, b, askTimeout)
	require.NoError(t, err)

	assert.Equal(t,
		sa.GetFields()["checksum"].GetStringValue(),
		sb.GetFields()["checksum"].GetStringValue(),
		"same seed and same number of ticks must give the same flock")
	assert.NotEqual(t, sa.GetFields()["runId"].GetStringValue(), sb.GetFields()["runId"].GetStringValue())
}

func TestFlockActor_PushesSnapshots(t *testing.T) {
	ctx, sys := startSystem(t)
	ch := make(chan *Snapshot, 10)
	pid := spawnFlock(t, ctx, sys, "flock", testConfig(), ch)

	tickN(t, ctx, pid, 3)
	// The Ask is queued behind the ticks, once it returns all of them were processed.
	_, err := RequestSnapshot(ctx, pid, askTimeout)
	require.NoError(t, err)

	require.Len(t, ch, 3)
	for want := uint64(1); want <= 3; want++ {
		snap := <-ch
		assert.Equal(t, want, snap.Tick)
		assert.Len(t, snap.Boids, 20)
	}
}

func TestFlockActor_DropsFramesWhenUIIsBusy(t *testing.T) {
	ctx, sys := startSystem(t)
	ch := make(chan *Snapshot, 1)
	pid := spawnFlock(t, ctx, sys, "flock", testConfig(), ch)

	tickN(t, ctx, pid, 5)
	st, err := RequestSnapshot(ctx, pid, askTimeout)
	require.NoError(t, err)

	assert.Equal(t, float64(5), number(st, "tick"), "ticks must not block on a full channel")
	snap := <-ch
	assert.Equal(t, uint64(1), snap.Tick)
}

func TestFlockActor_Tuning(t *testing.T) {
	ctx, sys := startSystem(t)
	pid := spawnFlock(t, ctx, sys, "flock", testConfig(), nil)

	p := testConfig().Params()
	p.MaxSpeed = 0.1
	p.SeparationEnabled = true
	msg, err := TuningMessage(p)
	require.NoError(t, err)
	require.NoError(t, actor.Tell(ctx, pid, msg))

	bad, err := structpb.NewStruct(map[string]interface{}{"maxSpeed": 9.0, "gravity": 1.0})
	require.NoError(t, err)
	require.NoError(t, actor.Tell(ctx, pid, bad))

	tickN(t, ctx, pid, 1)
	st, err := RequestSnapshot(ctx, pid, askTimeout)
	require.NoError(t, err)

	params := st.GetFields()["params"].GetStructValue()
	assert.Equal(t, 0.1, number(params, "maxSpeed"), "a rejected tuning must not be partially applied")
	assert.True(t, params.GetFields()["separationEnabled"].GetBoolValue())

	for _, v := range st.GetFields()["boids"].GetListValue().GetValues() {
		vel := v.GetStructValue().GetFields()["vel"].GetStructValue()
		vx, vy := number(vel, "x"), number(vel, "y")
		assert.LessOrEqual(t, vx*vx+vy*vy, 0.1*0.1+1e-9)
	}
}

func TestFlockActor_Respawn(t *testing.T) {
	ctx, sys := startSystem(t)
	pid := spawnFlock(t, ctx, sys, "flock", testConfig(), nil)

	require.NoError(t, actor.Tell(ctx, pid, RespawnMessage(5)))
	require.NoError(t, actor.Tell(ctx, pid, RespawnMessage(-1)))
	st, err := RequestSnapshot(ctx, pid, askTimeout)
	require.NoError(t, err)

	boids := st.GetFields()["boids"].GetListValue().GetValues()
	require.Len(t, boids, 5)
	assert.Equal(t, float64(4), number(boids[4].GetStructValue(), "id"))
}
