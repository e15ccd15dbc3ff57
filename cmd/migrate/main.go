// Command migrate applies the database schema for PawMatch.
//
// Connect only auto-migrates outside production, so production deployments
// run this command explicitly as a release step.
package main

import (
	"log"

	"pawmatch/internal/config"
	"pawmatch/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Schema migration applied")
}
