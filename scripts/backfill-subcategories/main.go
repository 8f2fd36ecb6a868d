// Detects missing subcategories for the items of the given users.
//
//	go run scripts/backfill-subcategories/main.go <user-id> [user-id...]
package main

import (
	"context"
	"fmt"
	"os"

	"wardrobe-assistant/config"
	"wardrobe-assistant/internal/model"
	"wardrobe-assistant/internal/wardrobe/classifier"
	wardrobeRepo "wardrobe-assistant/internal/wardrobe/repository/mongo"
	wardrobeUC "wardrobe-assistant/internal/wardrobe/usecase"
	"wardrobe-assistant/pkg/datemath"
	"wardrobe-assistant/pkg/log"
	pkgMongo "wardrobe-assistant/pkg/mongo"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/backfill-subcategories/main.go <user-id> [user-id...]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	ctx := context.Background()

	client, err := pkgMongo.Connect(ctx, pkgMongo.Config{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = pkgMongo.Disconnect(client, cfg.Mongo.ConnectTimeout) }()

	taxonomy := classifier.DefaultTaxonomy()
	if cfg.Taxonomy.Path != "" {
		if taxonomy, err = classifier.LoadTaxonomy(cfg.Taxonomy.Path); err != nil {
			logger.Fatalf(ctx, "Failed to load taxonomy: %v", err)
		}
	}

	dateMath, err := datemath.NewParser("UTC")
	if err != nil {
		logger.Fatalf(ctx, "Failed to create date parser: %v", err)
	}

	repo := wardrobeRepo.New(client.Database(cfg.Mongo.Database), logger)
	uc := wardrobeUC.New(logger, repo, classifier.New(taxonomy), nil, nil, dateMath, nil, "", "UTC")

	failed := false
	for _, userID := range os.Args[1:] {
		out, err := uc.BackfillSubcategories(ctx, model.Scope{UserID: userID})
		if err != nil {
			logger.Errorf(ctx, "user=%s: %v", userID, err)
			failed = true
			continue
		}
		logger.Infof(ctx, "user=%s scanned=%d updated=%d unmatched=%d", userID, out.Scanned, out.Updated, out.Unmatched)
	}

	if failed {
		os.Exit(1)
	}
}
