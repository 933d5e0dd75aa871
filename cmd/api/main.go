package main

import (
	"context"
	"log"
	"os"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/api"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/ingest"
	"github.com/plateful/backend/internal/repository"
	"github.com/plateful/backend/internal/server"
	"github.com/plateful/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	deps := api.Dependencies{JWTSecret: cfg.JWTSecret}

	switch cfg.StorageBackend {
	case "memory":
		mem := repository.NewMemoryRepository()
		loader := ingest.NewLoader(mem)
		if err := loader.LoadCSV(cfg.CorpusPath); err != nil {
			log.Fatalf("Failed to load corpus: %v", err)
		}
		deps.Repo = mem
	default:
		db, err := database.NewGorm(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.RunMigrations(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		deps.Repo = repository.NewGormRepository(db)

		healthDB, err := database.New(cfg)
		if err != nil {
			log.Printf("Warning: health probe connection unavailable: %v", err)
		} else {
			deps.HealthDB = healthDB
		}
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, continuing without cache: %v", err)
		redisClient = nil
	}
	deps.Redis = redisClient

	if os.Getenv("S3_BUCKET_NAME") != "" {
		s3cfg, err := config.NewS3Config(context.Background())
		if err != nil {
			log.Printf("Warning: S3 unavailable, image uploads disabled: %v", err)
		} else {
			if err := s3cfg.SetupBucketPolicy(context.Background()); err != nil {
				log.Printf("Warning: failed to apply bucket policy: %v", err)
			}
			deps.Images = service.NewImageService(s3cfg)
		}
	}

	srv := server.NewServer(deps)
	log.Printf("Starting server on port %s (storage: %s)", cfg.ServerPort, cfg.StorageBackend)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
