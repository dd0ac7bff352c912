package simulation

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// FlockActor is the "Brain". It owns the authoritative Environment: every
// read and write goes through its mailbox, so the Environment itself needs no locking.
type FlockActor struct {
	env   *flock.Environment
	rng   *rand.Rand
	cfg   *Config
	runID string
	tick  uint64
	// Communication with UI
	snapshotCh chan<- *Snapshot
	// --- Telemetry ---
	ticksSinceLog  int
	updateSinceLog time.Duration
	frameSinceLog  time.Duration
	droppedFrames  int
	lastLogTime    time.Time
}

var _ actor.Actor = (*FlockActor)(nil)

// NewFlockActor creates the world logic unit. snapshotCh may be nil when
// nobody renders (headless runs use RequestSnapshot instead).
func NewFlockActor(snapshotCh chan<- *Snapshot, cfg *Config) *FlockActor {
	return &FlockActor{
		cfg:        cfg,
		runID:      uuid.NewString(),
		snapshotCh: snapshotCh,
	}
}

// RunID identifies this run in logs and exported snapshots.
func (w *FlockActor) RunID() string { return w.runID }

func (w *FlockActor) PreStart(ctx *actor.Context) error {
	seed := w.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	w.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	w.env = flock.NewEnvironment(w.cfg.WorldWidth, w.cfg.WorldHeight, w.cfg.Params())
	w.lastLogTime = time.Now()

	ctx.ActorSystem().Logger().Infof("Flock %s: world %.0fx%.0f, %d obstacles, seed %d",
		w.runID, w.cfg.WorldWidth, w.cfg.WorldHeight, len(w.env.Obstacles), seed)
	return nil
}

func (w *FlockActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		w.env.InitializeBoids(w.cfg.NumBoids, w.rng)
		ctx.Logger().Infof("Flock started with %d boids", len(w.env.Boids))

	// The Main Simulation Step (Driven by the host loop)
	case *durationpb.Duration:
		start := time.Now()
		w.env.Update()
		w.tick++

		w.ticksSinceLog++
		w.updateSinceLog += time.Since(start)
		w.frameSinceLog += msg.AsDuration()
		w.logTelemetry(ctx)

		w.pushSnapshot()

	// Handle dynamic slider updates from UI
	case *structpb.Struct:
		p := w.env.Params()
		if err := ApplyTuning(&p, msg); err != nil {
			ctx.Logger().Warnf("Tuning rejected: %v", err)
			return
		}
		w.env.SetParams(p)
		ctx.Logger().Debugf("Tuning applied: %+v", p)

	case *wrapperspb.Int32Value:
		n := int(msg.GetValue())
		if n < 0 {
			ctx.Logger().Warnf("Respawn rejected: negative flock size %d", n)
			return
		}
		w.env.ResetBoids()
		w.env.InitializeBoids(n, w.rng)
		ctx.Logger().Infof("Flock respawned with %d boids", n)

	case *emptypb.Empty:
		st, err := newSnapshot(w.runID, w.tick, w.env).ToProto()
		if err != nil {
			ctx.Err(err)
			return
		}
		ctx.Response(st)

	default:
		ctx.Unhandled()
	}
}

func (w *FlockActor) logTelemetry(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) < time.Second {
		return
	}
	n := time.Duration(w.ticksSinceLog)
	ctx.Logger().Infof("📊 TICK RATE: %d/sec | Boids: %d | Update: %s | Frame: %s | Dropped frames: %d",
		w.ticksSinceLog, len(w.env.Boids), w.updateSinceLog/n, w.frameSinceLog/n, w.droppedFrames)
	w.ticksSinceLog = 0
	w.updateSinceLog = 0
	w.frameSinceLog = 0
	w.droppedFrames = 0
	w.lastLogTime = time.Now()
}

func (w *FlockActor) pushSnapshot() {
	if w.snapshotCh == nil {
		return
	}
	select {
	case w.snapshotCh <- newSnapshot(w.runID, w.tick, w.env):
	default:
		// UI busy, skip frame
		w.droppedFrames++
	}
}

func (w *FlockActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Flock %s stopped after %d ticks", w.runID, w.tick)
	return nil
}
