package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/termview"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "JSON or YAML configuration file")
	logFile := flag.String("log", "", "write logs to this file (the terminal is busy drawing)")
	flag.Parse()

	if err := run(*configPath, *logFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, logFile string) error {
	cfg := simulation.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = simulation.LoadConfig(configPath); err != nil {
			return err
		}
	}

	var logger golog.Logger = golog.DiscardLogger
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = cfg.Logger(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	system, err := actor.NewActorSystem("FlockTerm", actor.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return fmt.Errorf("failed to start actor system: %w", err)
	}
	defer func() { _ = system.Stop(context.Background()) }()

	snapshotCh := make(chan *simulation.Snapshot, 1)
	pid, err := system.Spawn(ctx, "flock", simulation.NewFlockActor(snapshotCh, cfg))
	if err != nil {
		return fmt.Errorf("failed to spawn flock: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	view := termview.New(screen)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	// Tick loop
	g.Go(func() error {
		frame := time.Second / time.Duration(max(cfg.TickRate, 1))
		ticker := time.NewTicker(frame)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := actor.Tell(gctx, pid, simulation.TickMessage(frame)); err != nil {
					return fmt.Errorf("failed to send tick: %w", err)
				}
			case snap := <-snapshotCh:
				view.Draw(snap)
				view.Show()
			}
		}
	})

	// Input loop, PollEvent returns nil once the screen is finalized
	g.Go(func() error {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return nil
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					cancel()
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		screen.Fini()
		return nil
	})

	return g.Wait()
}
