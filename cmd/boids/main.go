package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
)

func main() {
	configPath := flag.String("config", "", "JSON or YAML configuration file")
	headless := flag.Bool("headless", false, "run without a window and export the final snapshot")
	ticks := flag.Int("ticks", 600, "ticks to run in headless mode")
	out := flag.String("out", "", "snapshot output file in headless mode (default stdout)")
	flag.Parse()

	if err := run(*configPath, *headless, *ticks, *out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, headless bool, ticks int, out string) error {
	ctx := context.Background()

	cfg := simulation.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = simulation.LoadConfig(configPath); err != nil {
			return err
		}
	}
	logger := cfg.Logger()

	system, err := actor.NewActorSystem("FlockWorld",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return fmt.Errorf("failed to start actor system: %w", err)
	}
	defer func() { _ = system.Stop(ctx) }()

	if headless {
		return runHeadless(ctx, cfg, system, ticks, out)
	}

	game, err := simulation.GetNewGame(ctx, cfg, system)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(int(cfg.WorldWidth)/2, int(cfg.WorldHeight)/2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Flock")
	return ebiten.RunGame(game)
}

// runHeadless drives the actor for a fixed number of ticks and writes the final state as JSON.
func runHeadless(ctx context.Context, cfg *simulation.Config, system actor.ActorSystem, ticks int, out string) error {
	flockActor := simulation.NewFlockActor(nil, cfg)
	pid, err := system.Spawn(ctx, "flock", flockActor)
	if err != nil {
		return fmt.Errorf("failed to spawn flock: %w", err)
	}
	system.Logger().Infof("Headless run %s: %d ticks", flockActor.RunID(), ticks)

	frame := time.Second / time.Duration(max(cfg.TickRate, 1))
	for range ticks {
		if err := actor.Tell(ctx, pid, simulation.TickMessage(frame)); err != nil {
			return fmt.Errorf("failed to send tick: %w", err)
		}
	}

	// The mailbox is FIFO, the answer reflects every tick sent above.
	st, err := simulation.RequestSnapshot(ctx, pid, 30*time.Second)
	if err != nil {
		return err
	}
	b, err := simulation.MarshalSnapshotJSON(st)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	b = append(b, '\n')

	if out == "" {
		_, err = os.Stdout.Write(b)
		return err
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
