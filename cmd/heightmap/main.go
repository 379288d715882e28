package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/heightfield/internal/config"
	"github.com/OCharnyshevich/heightfield/internal/heightmap"
	"github.com/OCharnyshevich/heightfield/internal/storage"
	"github.com/OCharnyshevich/heightfield/pkg/world/gen"
	"github.com/OCharnyshevich/heightfield/pkg/world/surface"
)

func main() {
	cfg := config.DefaultConfig()

	src := flag.String("config", "", "config source: local path, https://, git:: or s3:: url")
	flag.StringVar(&cfg.Version, "version", cfg.Version, "world version, e.g. 1.18 or 1.21")
	flag.StringVar(&cfg.Flags, "flags", cfg.Flags, "generation flags, e.g. large_biomes")
	flag.StringVar(&cfg.Dimension, "dimension", cfg.Dimension, "overworld, nether or end")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.StringVar(&cfg.Mode, "mode", cfg.Mode, "block or approx")
	flag.IntVar(&cfg.X, "x", cfg.X, "region origin x (blocks, or 1:4 cells in approx mode)")
	flag.IntVar(&cfg.Z, "z", cfg.Z, "region origin z (blocks, or 1:4 cells in approx mode)")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "region width in samples")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "region height in samples")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "tiles sampled concurrently")
	flag.BoolVar(&cfg.Upscale, "upscale", cfg.Upscale, "draw approx previews at block resolution")
	flag.BoolVar(&cfg.Compare, "compare", cfg.Compare, "also render the other sampler and report the difference")
	flag.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory")
	flag.StringVar(&cfg.Name, "name", cfg.Name, "output file name without extension")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *src != "" {
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

		fromFile := config.DefaultConfig()
		if err := config.Load(ctx, *src, fromFile, log); err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, explicit)
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error("heightmap failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	world, err := cfg.World()
	if err != nil {
		return err
	}
	reg, err := cfg.Region()
	if err != nil {
		return err
	}

	g, err := gen.New(world.Version, world.Flags, world.Dimension, world.Seed)
	if err != nil {
		return err
	}
	var sn *surface.Noise
	if world.Dimension != gen.Nether {
		if sn, err = surface.New(world.Dimension, world.Seed); err != nil {
			return err
		}
	}
	log.Info("generator ready",
		"version", world.Version,
		"dimension", world.Dimension,
		"flags", world.Flags,
		"seed", world.Seed,
	)

	store, err := storage.New(cfg.OutDir, log)
	if err != nil {
		return err
	}
	r := heightmap.NewRenderer(g, sn, cfg.Workers, log)

	m, err := r.Render(ctx, reg)
	if err != nil {
		return err
	}
	if err := store.SaveMap(cfg.Name, m, cfg.Upscale); err != nil {
		return err
	}

	if !cfg.Compare {
		return nil
	}

	other := counterpart(reg)
	om, err := r.Render(ctx, other)
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}
	if err := store.SaveMap(cfg.Name+"-"+other.Mode.String(), om, cfg.Upscale); err != nil {
		return err
	}

	block, approx := m, om
	if reg.Mode == heightmap.ModeApprox {
		block, approx = om, m
	}
	d, err := heightmap.Compare(block, approx)
	if err != nil {
		return err
	}
	log.Info("compared samplers", "samples", d.Samples, "max_diff", d.Max, "mean_diff", d.Mean)
	return nil
}

// counterpart returns the region covering the same area with the other
// sampler.
func counterpart(reg heightmap.Region) heightmap.Region {
	if reg.Mode == heightmap.ModeApprox {
		return heightmap.Region{
			X: reg.X * 4, Z: reg.Z * 4,
			Width: reg.Width * 4, Height: reg.Height * 4,
			Mode: heightmap.ModeBlock,
		}
	}
	x0, z0 := reg.X>>2, reg.Z>>2
	x1, z1 := (reg.X+reg.Width-1)>>2, (reg.Z+reg.Height-1)>>2
	return heightmap.Region{
		X: x0, Z: z0,
		Width: x1 - x0 + 1, Height: z1 - z0 + 1,
		Mode: heightmap.ModeApprox,
	}
}
