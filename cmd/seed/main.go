// Command seed fills the DevSwipe database with demo data.
package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"devswipe/internal/bootstrap"
	"devswipe/internal/config"
	"devswipe/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	preset := flag.String("preset", "demo", "Seeder preset ("+strings.Join(seed.PresetNames(), ", ")+")")
	shouldClean := flag.Bool("clean", true, "Delete existing rows before seeding")
	dryRun := flag.Bool("dry-run", false, "Build data without writing to the database")
	randSeed := flag.Int64("rand-seed", 0, "Seed for reproducible data (0 = random)")
	flag.Parse()

	p, err := seed.LookupPreset(*preset)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Database seeder: preset=%s users=%d clean=%v dry-run=%v", p.Name, p.Users, *shouldClean, *dryRun)

	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer rt.Close(ctx)

	s := seed.NewSeeder(rt.DB, seed.Options{
		SkipBcrypt: p.SkipBcrypt,
		DryRun:     *dryRun,
		MaxDays:    p.MaxDays,
		BatchSize:  p.BatchSize,
		RandSeed:   *randSeed,
	})

	if *shouldClean && !*dryRun {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	sum, err := s.Run(ctx, p)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done: %d users, %d projects, %d collab posts, %d conversations, %d messages",
		sum.Users, sum.Projects, sum.CollabPosts, sum.Conversations, sum.Messages)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
