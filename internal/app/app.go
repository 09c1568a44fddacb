// Package app builds the services shared by the HTTP server and the CLI.
package app

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"mandi-mitra/internal/catalog"
	"mandi-mitra/internal/chat"
	"mandi-mitra/internal/config"
	"mandi-mitra/internal/database"
	"mandi-mitra/internal/negotiation"
	"mandi-mitra/internal/pricing"
	"mandi-mitra/internal/ratings"
	"mandi-mitra/internal/services/agmarknet"
	"mandi-mitra/internal/services/llm"
	"mandi-mitra/internal/services/ocr"
	"mandi-mitra/internal/services/translate"
	"mandi-mitra/internal/signboard"
)

// Services holds every long-lived component of the application.
type Services struct {
	Catalog    *catalog.Catalog
	Resolver   *pricing.Resolver
	Rephraser  *negotiation.Rephraser
	Translator translate.Translator
	Signboard  *signboard.Reader
	Ratings    *ratings.Service
	Chat       *chat.Hub

	db *gorm.DB
}

// NewPricing wires the price resolver and negotiation rephraser. External tiers
// are only added when their credentials are configured.
func NewPricing(ctx context.Context, cfg *config.Config, cat *catalog.Catalog) (*pricing.Resolver, *negotiation.Rephraser, error) {
	var tiers []pricing.Tier

	stats := agmarknet.NewClient(cfg.DataGovAPIKey, cfg.AgmarknetBaseURL, cfg.AgmarknetResourceID, cfg.SourceTimeout)
	if stats.Enabled() {
		tiers = append(tiers, pricing.NewOfficialTier(cat, stats))
	} else {
		log.Println("agmarknet: DATA_GOV_API_KEY not set, skipping official prices")
	}

	model, err := llm.New(ctx, llm.Settings{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		BaseURL:  cfg.LLMBaseURL,
		Model:    cfg.LLMModel,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	var rephraser *negotiation.Rephraser
	if model.Enabled() {
		tiers = append(tiers, pricing.NewGenerativeTier(model, nil))
		rephraser = negotiation.NewRephraser(model)
		log.Printf("llm: using %s", cfg.LLMProvider)
	} else {
		log.Println("llm: not configured, using heuristic prices and fixed phrases")
	}

	fallback := pricing.NewHeuristicTier(cat, nil)
	return pricing.NewResolver(fallback, cfg.SourceTimeout, tiers...), rephraser, nil
}

// New builds all services from configuration.
func New(ctx context.Context, cfg *config.Config) (*Services, error) {
	cat := catalog.Default()

	resolver, rephraser, err := NewPricing(ctx, cfg, cat)
	if err != nil {
		return nil, err
	}

	translator := translate.New(cfg.TranslateURL, cfg.TranslateAPIKey, cfg.SourceTimeout)
	reader := signboard.NewReader(ocr.NewClient(cfg.OCRURL, cfg.OCRAPIKey, cfg.SourceTimeout), translator)

	s := &Services{
		Catalog:    cat,
		Resolver:   resolver,
		Rephraser:  rephraser,
		Translator: translator,
		Signboard:  reader,
		Chat:       chat.NewHub(translator, cfg.ChatOrigins),
	}

	var store ratings.Store
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, keeping vendors in memory")
		store = ratings.NewMemoryStore(ratings.SeedVendors())
	} else {
		db, err := database.Initialize(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		gs := ratings.NewGormStore(db)
		if err := gs.Seed(ctx, ratings.SeedVendors()); err != nil {
			database.Close(db)
			return nil, fmt.Errorf("failed to seed vendors: %w", err)
		}
		s.db = db
		store = gs
	}
	s.Ratings = ratings.NewService(store)

	return s, nil
}

// Close releases the database connection, if any.
func (s *Services) Close() error {
	if s.db == nil {
		return nil
	}
	return database.Close(s.db)
}
