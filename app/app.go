package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"lmt-crm/app/controller"
	"lmt-crm/app/router"
	"lmt-crm/auth"
	"lmt-crm/config"
	"lmt-crm/content"
	"lmt-crm/db"
	"lmt-crm/proposal"
	"lmt-crm/repository"
	"lmt-crm/service"
)

// Initialize wires repositories, stores, services and routes.
func Initialize(ctx context.Context, cfg *config.Config) error {
	if err := db.InitDB(ctx, cfg.DB.URL); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Repositories
	leadRepo := repository.NewLeadRepository()
	blueprintRepo := repository.NewBlueprintRepository()
	vehicleRepo := repository.NewVehicleRepository()
	userRepo := repository.NewUserRepository()
	stateRepo := repository.NewStateRepository()

	// Content overrides hydrate from the database before any render.
	overrides := content.NewStore(stateRepo)
	if err := overrides.Load(ctx); err != nil {
		return fmt.Errorf("failed to load content overrides: %w", err)
	}

	// Document core and export pipeline
	store := proposal.NewStore()
	layoutService := service.NewLayoutService(overrides, cfg.Agency)
	exportService := service.NewExportService(cfg.App.BaseURL, cfg.Export)
	messageService := service.NewMessageService(cfg.Agency)

	authService := auth.NewService(userRepo, cfg.JWT)

	controllers := &router.Controllers{
		Auth: controller.NewAuthController(authService, stateRepo),
		Proposal: controller.NewProposalController(
			store, layoutService, exportService, messageService,
			leadRepo, blueprintRepo, cfg.Agency),
		Content:   controller.NewContentController(overrides),
		Lead:      controller.NewLeadController(leadRepo),
		Blueprint: controller.NewBlueprintController(blueprintRepo),
		Vehicle:   controller.NewVehicleController(vehicleRepo),
	}

	// Gallery sync only runs with Drive credentials configured.
	if cfg.Drive.Enabled() {
		galleryService, err := service.NewGalleryService(ctx, cfg.Drive)
		if err != nil {
			return fmt.Errorf("failed to initialize gallery service: %w", err)
		}
		controllers.Gallery = controller.NewGalleryController(galleryService)
	} else {
		log.Info().Msg("drive gallery sync disabled, no credentials configured")
	}

	router.SetupRoutes(controllers, authService)
	return nil
}
