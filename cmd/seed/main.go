// Command main runs the database seeder for PawMatch.
package main

import (
	"flag"
	"log"

	"pawmatch/internal/config"
	"pawmatch/internal/database"
	"pawmatch/internal/seed"
)

func main() {
	// Parse command line flags
	numShelters := flag.Int("shelters", 5, "Number of shelter accounts to create")
	numAdopters := flag.Int("adopters", 20, "Number of adopter accounts to create")
	numPets := flag.Int("pets", 60, "Number of pets to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible runs (0 = time-based)")
	defaultsOnly := flag.Bool("defaults-only", false, "Only ensure the default accounts and sample pets")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *defaultsOnly {
		if err := seed.EnsureDefaults(db); err != nil {
			log.Fatalf("❌ Default seeding failed: %v", err)
		}
		log.Println("✨ Default accounts and sample pets are in place.")
		return
	}

	if err := seed.Seed(db, seed.Options{
		NumShelters: *numShelters,
		NumAdopters: *numAdopters,
		NumPets:     *numPets,
		ShouldClean: *shouldClean,
		RandSeed:    *randSeed,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
