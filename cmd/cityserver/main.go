// Command cityserver serves the browser control panel for one city session.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"citygrowth/internal/sims/city"
	"citygrowth/internal/sink"
	"citygrowth/internal/web"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "listen address")
	configPath := flag.String("config", "", "YAML configuration file")
	seed := flag.Int64("seed", 0, "seed for the first session (0 keeps the configured seed)")
	surface := flag.String("surface", "", "also write every run to this 3D surface HTML path")
	flag.Parse()

	cfg := city.DefaultConfig()
	if *configPath != "" {
		loaded, err := city.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	var out city.Sink
	if *surface != "" {
		out = &sink.Surface{Path: *surface, MaxHeight: cfg.Params.MaxHeight}
	}

	srv, err := web.New(cfg, out)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.ListenAndServe(ctx, *addr); err != nil {
		log.Fatal(err)
	}
}
