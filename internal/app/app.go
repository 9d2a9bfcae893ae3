package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dhiselink/dhiselink/internal/config"
	"github.com/dhiselink/dhiselink/internal/db"
	"github.com/dhiselink/dhiselink/internal/repository"
	"github.com/dhiselink/dhiselink/internal/service"
	"github.com/dhiselink/dhiselink/internal/storage"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	AuthService    *service.AuthService
	UserService    *service.UserService
	ProfileService *service.ProfileService
	EmailService   *service.EmailService
	FileService    *service.FileService
	ContentService *service.ContentService
	ListingService *service.ListingService
	LegalService   *service.LegalService
	ContentRepo    repository.ContentRepository
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	fileRepository := repository.NewFileRepository(database)
	contentRepository := repository.NewContentRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	fileService := service.NewFileService(fileRepository, fileStorage)
	contentService := service.NewContentService(contentRepository)
	listingService := service.NewListingService(contentRepository)
	authService := service.NewAuthService(
		userRepository,
		profileRepository,
		tokenRepository,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
		cfg.TokenEmailChangeExpiry,
		cfg.TokenMagicLinkExpiry,
	)
	userService := service.NewUserService(userRepository, profileRepository, fileService, emailService, contentService)
	profileService := service.NewProfileService(profileRepository)
	legalService := service.NewLegalService(cfg.ContentPath)

	return &App{
		Cfg:            cfg,
		DB:             database,
		AuthService:    authService,
		UserService:    userService,
		ProfileService: profileService,
		EmailService:   emailService,
		FileService:    fileService,
		ContentService: contentService,
		ListingService: listingService,
		LegalService:   legalService,
		ContentRepo:    contentRepository,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
