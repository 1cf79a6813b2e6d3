package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/glycoguide/backend/config"
	httpDelivery "github.com/glycoguide/backend/internal/delivery/http"
	"github.com/glycoguide/backend/internal/domain"
	"github.com/glycoguide/backend/internal/infrastructure/cache"
	"github.com/glycoguide/backend/internal/infrastructure/imageindex"
	"github.com/glycoguide/backend/internal/infrastructure/manifest"
	"github.com/glycoguide/backend/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting GlycoGuide Curation API v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize infrastructure dependencies
	var cacheRepo domain.CacheRepository
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(context.Background(), cfg.Cache.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		cacheRepo = redisCache
		log.Printf("Redis cache connected")
	} else {
		cacheRepo = cache.NewMemoryCache(cfg.Cache.CleanupInterval)
	}
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize usecase layer
	tokenizer := usecase.NewTokenizer(usecase.TokenizerConfig{})
	matcher := usecase.NewMatchingService(tokenizer, usecase.MatchConfig{
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})
	formatter := usecase.NewInstructionService(cfg.Matching.EnableDebugLogging)

	log.Printf("Matching: debug=%v", cfg.Matching.EnableDebugLogging)

	images := selectImageSource(cfg, tokenizer, logger)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(tokenizer, matcher, formatter, images, cacheRepo, cfg.Cache.TTL)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// selectImageSource picks the candidate source in priority order: remote
// manifest, saved index file, then a fresh directory scan.
func selectImageSource(cfg *config.Config, tokenizer *usecase.Tokenizer, logger *zap.Logger) domain.ImageSource {
	if cfg.Images.ManifestURL != "" {
		log.Printf("Image source: manifest %s", cfg.Images.ManifestURL)
		return manifest.NewClient(cfg.Images.ManifestURL, cfg.Images.HTTPTimeout, logger)
	}
	if _, err := os.Stat(cfg.Images.IndexPath); err == nil {
		log.Printf("Image source: index file %s", cfg.Images.IndexPath)
		return imageindex.NewFileSource(cfg.Images.IndexPath)
	}
	log.Printf("Image source: directory scan %s", cfg.Images.Dir)
	return imageindex.NewDirSource(imageindex.NewBuilder(cfg.Images.Dir, tokenizer, logger))
}

// newLogger builds the structured logger used by the infrastructure layer
func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
