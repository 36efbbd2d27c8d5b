package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/common"
	"github.com/ternarybob/vibecheck/internal/handlers"
	"github.com/ternarybob/vibecheck/internal/interfaces"
	"github.com/ternarybob/vibecheck/internal/services/cache"
	"github.com/ternarybob/vibecheck/internal/services/listing"
	"github.com/ternarybob/vibecheck/internal/services/llm"
	"github.com/ternarybob/vibecheck/internal/services/recommend"
	"github.com/ternarybob/vibecheck/internal/services/reservation"
	"github.com/ternarybob/vibecheck/internal/services/scheduler"
	"github.com/ternarybob/vibecheck/internal/services/vibe"
	"github.com/ternarybob/vibecheck/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	StorageManager interfaces.StorageManager

	// Core services
	CacheService       interfaces.CacheService
	LLMService         interfaces.LLMService
	ListingService     interfaces.ListingService
	ReservationService interfaces.ReservationService
	Analyzer           interfaces.VibeAnalyzer
	Matcher            interfaces.VibeMatcher
	Recommender        *recommend.Service
	SweepScheduler     *scheduler.Service

	// HTTP handlers
	APIHandler        *handlers.APIHandler
	VenueHandler      *handlers.VenueHandler
	RestaurantHandler *handlers.RestaurantHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	storageManager, err := badger.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.StorageManager = storageManager

	app.CacheService = cache.NewService(storageManager, &cfg.Cache, vibe.Synthesize, logger)

	// LLM provider is optional; without one the vibe pipeline runs on
	// deterministic fallbacks.
	llmService, err := llm.NewLLMService(cfg, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("LLM provider unavailable, vibe analysis will use fallbacks")
	} else {
		app.LLMService = llmService
	}

	app.ListingService = listing.NewService(&cfg.Listing, logger)
	app.ReservationService = reservation.NewService(&cfg.Reservations, logger)
	app.Analyzer = vibe.NewAnalyzer(app.LLMService, app.CacheService, logger)
	app.Matcher = vibe.NewMatcher(app.LLMService, logger)

	app.Recommender = recommend.NewService(
		cfg,
		app.ListingService,
		app.CacheService,
		app.Analyzer,
		app.Matcher,
		logger,
	)

	app.SweepScheduler = scheduler.NewService(&cfg.Cache, app.CacheService, logger)
	if err := app.SweepScheduler.Start(); err != nil {
		return nil, fmt.Errorf("failed to start sweep scheduler: %w", err)
	}

	app.APIHandler = handlers.NewAPIHandler()
	app.VenueHandler = handlers.NewVenueHandler(
		app.ListingService,
		app.CacheService,
		app.Analyzer,
		app.Recommender,
		logger,
	)
	app.RestaurantHandler = handlers.NewRestaurantHandler(
		cfg,
		app.ListingService,
		app.ReservationService,
		logger,
	)

	logger.Info().
		Str("environment", cfg.Environment).
		Str("llm_provider", string(cfg.LLM.DefaultProvider)).
		Bool("llm_available", app.LLMService != nil).
		Msg("Application initialization complete")

	return app, nil
}

// Close shuts down application components in reverse order
func (a *App) Close() error {
	a.SweepScheduler.Stop()

	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
		}
	}

	if err := a.StorageManager.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}

	return nil
}
