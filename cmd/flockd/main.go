package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/stream"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"golang.org/x/sync/errgroup"
)

func main() {
	addr := flag.String("addr", ":8080", "server listen address")
	configFile := flag.String("config", "config.json", "path to a JSON config file")
	schemaFile := flag.String("schema", "docs/config.schema.json", "path to the config JSON schema")
	tickRate := flag.Duration("tick", 33*time.Millisecond, "simulation tick interval")
	flag.Parse()

	cfg, err := flock.LoadConfig(*configFile, *schemaFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	f, err := flock.New(cfg)
	if err != nil {
		log.Fatalf("flock: %v", err)
	}
	f.Reset()

	controls := make(chan stream.Control, 16)
	hub := stream.NewHub(controls)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub.Handler())
	srv := &http.Server{Addr: *addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("serving snapshots on ws://localhost%s/ws", *addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return runLoop(ctx, f, cfg, hub, controls, *tickRate)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// runLoop owns the simulation: it is the only goroutine that touches the
// flock or its config, so ticking stays single-threaded. Client controls are
// drained between ticks.
func runLoop(ctx context.Context, f *flock.Flock, cfg *flock.Config, hub *stream.Hub, controls <-chan stream.Control, tickRate time.Duration) error {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	lastLog := time.Now()
	var ticks uint64

	for {
		select {
		case <-ctx.Done():
			return nil

		case ctl := <-controls:
			applyControl(f, cfg, ctl)

		case <-ticker.C:
			if err := f.Tick(); err != nil {
				return err
			}
			ticks++

			field := f.Field()
			hub.Broadcast(stream.Frame{
				Tick:    ticks,
				Field:   stream.FieldSize{Width: field.Width, Height: field.Height},
				Marks:   f.Snapshot(),
				Summary: f.Summary(),
			})

			if time.Since(lastLog) >= 5*time.Second {
				log.Printf("tick=%d clients=%d %s", ticks, hub.ClientCount(), f.Summary())
				lastLog = time.Now()
			}
		}
	}
}

func applyControl(f *flock.Flock, cfg *flock.Config, ctl stream.Control) {
	switch ctl.Action {
	case stream.ActionReset:
		f.Reset()
		log.Printf("control: reset, population=%d", f.Len())

	case stream.ActionResize:
		if err := f.Resize(ctl.Width, ctl.Height); err != nil {
			log.Printf("control: resize rejected: %v", err)
			return
		}
		log.Printf("control: resize to %gx%g", ctl.Width, ctl.Height)

	case stream.ActionTune:
		ctl.Apply(cfg)
		log.Printf("control: tuned config")

	default:
		log.Printf("control: unknown action %q", ctl.Action)
	}
}
