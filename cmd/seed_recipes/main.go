package main

import (
	"flag"
	"log"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/ingest"
	"github.com/plateful/backend/internal/repository"
)

func main() {
	corpusPath := flag.String("corpus", "", "path to the recipe CSV (defaults to CORPUS_PATH)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	path := *corpusPath
	if path == "" {
		path = cfg.CorpusPath
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	loader := ingest.NewLoader(repository.NewGormRepository(db))
	if err := loader.LoadCSV(path); err != nil {
		log.Fatalf("Failed to seed recipes: %v", err)
	}
	log.Printf("Seed complete")
}
