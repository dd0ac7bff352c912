package simulation

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
)

var (
	backgroundColor = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	boidColor       = color.RGBA{R: 100, G: 200, B: 255, A: 255}
	obstacleColor   = color.RGBA{R: 255, G: 120, B: 60, A: 255}
	radiusColor     = color.RGBA{R: 50, G: 100, B: 255, A: 50}
)

// arrowScale stretches velocities so a boid at max speed draws a visible arrow.
const arrowScale = 50.0

type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	flockPID   *actor.PID
	snapshotCh chan *Snapshot
	lastState  *Snapshot
	lastParams flock.Params

	// UI Controls
	panel *ui.UIPanel

	widgetAlignment    *ui.Slider
	widgetCoherence    *ui.Slider
	widgetSeparation   *ui.Slider
	widgetAvoidance    *ui.Slider
	widgetVisualRadius *ui.Slider
	widgetMaxSpeed     *ui.Slider
	widgetPopulation   *ui.Slider
	widgetSepEnabled   *ui.Checkbox
	widgetObstacles    *ui.Checkbox
	widgetRadius       *ui.Checkbox

	cfg *Config

	// Timing instrumentation
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
}

// GetNewGame spawns the flock actor on system and builds the tuning panel around it.
func GetNewGame(ctx context.Context, cfg *Config, system actor.ActorSystem) (*Game, error) {
	snapshotCh := make(chan *Snapshot, 10) // Buffer to avoid blocking

	flockPID, err := system.Spawn(ctx, "flock", NewFlockActor(snapshotCh, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn flock: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		System:     system,
		flockPID:   flockPID,
		snapshotCh: snapshotCh,
		lastState:  &Snapshot{}, // Avoid nil pointer
		lastParams: cfg.Params(),
		cfg:        cfg,
	}

	panel := ui.NewUIPanel(10, 10, 280, cfg.WorldHeight-20, "Configuration")

	panel.AddSection("Steering")
	g.widgetAlignment = panel.AddSlider("Alignment", 0, 0.1, cfg.AlignmentFactor)
	g.widgetCoherence = panel.AddSlider("Cohesion", 0, 0.1, cfg.CoherenceFactor)
	g.widgetSeparation = panel.AddSlider("Separation", 0, 0.1, cfg.SeparationFactor)
	g.widgetAvoidance = panel.AddSlider("Obstacle Avoidance", 0, 20, cfg.ObstacleAvoidanceFactor)
	g.widgetAvoidance.Format = "%.2f"
	g.widgetSepEnabled = panel.AddCheckbox("Enable Separation", cfg.SeparationEnabled)

	panel.AddSection("Perception & Speed")
	g.widgetVisualRadius = panel.AddSlider("Visual Radius", 5, 200, cfg.VisualRadius)
	g.widgetVisualRadius.Format = "%.0f"
	g.widgetMaxSpeed = panel.AddSlider("Max Speed", 0.05, 5, cfg.MaxSpeed)
	g.widgetMaxSpeed.Format = "%.2f"

	panel.AddSection("Population")
	g.widgetPopulation = panel.AddSlider("Boids", 0, 1000, float64(cfg.NumBoids))
	g.widgetPopulation.Format = "%.0f"
	panel.AddButton("Respawn Flock", func() {
		actor.Tell(g.ctx, g.flockPID, RespawnMessage(int(g.widgetPopulation.Value)))
	})

	panel.AddSection("Visualization")
	g.widgetObstacles = panel.AddCheckbox("Show Obstacles", true)
	g.widgetRadius = panel.AddCheckbox("Show Visual Radius", false)

	g.panel = panel
	return g, nil
}

// params reads the tuning panel, keeping what the panel does not expose.
func (g *Game) params() flock.Params {
	p := g.lastParams
	p.AlignmentFactor = g.widgetAlignment.Value
	p.CoherenceFactor = g.widgetCoherence.Value
	p.SeparationFactor = g.widgetSeparation.Value
	p.ObstacleAvoidanceFactor = g.widgetAvoidance.Value
	p.VisualRadius = g.widgetVisualRadius.Value
	p.MaxSpeed = g.widgetMaxSpeed.Value
	p.SeparationEnabled = g.widgetSepEnabled.Value
	return p
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	g.panel.Update()

	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
		// Use previous state if new one isn't ready
	}

	if p := g.params(); p != g.lastParams {
		msg, err := TuningMessage(p)
		if err != nil {
			return err
		}
		actor.Tell(g.ctx, g.flockPID, msg)
		g.lastParams = p
	}

	actor.Tell(g.ctx, g.flockPID, TickMessage(g.lastUpdateDuration))
	return nil
}

// toScreen maps world coordinates (origin centered, y up) to screen pixels.
func (g *Game) toScreen(x, y float64) (float32, float32) {
	return float32(x + g.cfg.WorldWidth/2), float32(g.cfg.WorldHeight/2 - y)
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)

	if g.widgetObstacles.Value {
		for _, o := range g.lastState.Obstacles {
			x, y := g.toScreen(o.Pos.X, o.Pos.Y)
			vector.StrokeCircle(screen, x, y, 4, 1, obstacleColor, true)
		}
	}

	for _, b := range g.lastState.Boids {
		if g.widgetRadius.Value {
			x, y := g.toScreen(b.Pos.X, b.Pos.Y)
			vector.StrokeCircle(screen, x, y, float32(g.lastState.Params.VisualRadius), 1, radiusColor, true)
		}
		g.drawBoid(screen, b)
	}

	g.panel.Draw(screen)

	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nTick: %d\nBoids: %d\n\nUpdate: %.2fms\nDraw:   %.2fms\nTotal:  %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.lastState.Tick,
		len(g.lastState.Boids),
		g.updateAvg,
		g.drawAvg,
		g.updateAvg+g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-150, 10)
}

// drawBoid draws the velocity arrow from pos to pos + vel*arrowScale with a small head.
func (g *Game) drawBoid(screen *ebiten.Image, b flock.Boid) {
	tip := b.Pos.Add(b.Vel.Mul(arrowScale))
	x0, y0 := g.toScreen(b.Pos.X, b.Pos.Y)
	x1, y1 := g.toScreen(tip.X, tip.Y)
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, boidColor, true)

	angle := b.Vel.Heading()
	for _, side := range []float64{math.Pi - 0.5, math.Pi + 0.5} {
		hx, hy := g.toScreen(tip.X+math.Cos(angle+side)*5, tip.Y+math.Sin(angle+side)*5)
		vector.StrokeLine(screen, x1, y1, hx, hy, 1, boidColor, true)
	}
}

func (g *Game) Layout(w, h int) (int, int) { return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight) }
