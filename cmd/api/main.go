package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-applicant-tracker/config"
	_ "go-applicant-tracker/docs" // Important for Swagger
	v1 "go-applicant-tracker/internal/delivery/http/v1"
	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/internal/event"
	"go-applicant-tracker/internal/repository/postgres"
	"go-applicant-tracker/internal/usecase"
	"go-applicant-tracker/migrations"
	"go-applicant-tracker/pkg/auth"
	"go-applicant-tracker/pkg/database"
	"go-applicant-tracker/pkg/email"
	"go-applicant-tracker/pkg/logger"
	"go-applicant-tracker/pkg/redis"
	"go-applicant-tracker/pkg/security"
	"go-applicant-tracker/pkg/security/antivirus"
	"go-applicant-tracker/pkg/storage"

	"go.uber.org/zap"
)

// @title           Applicant Tracker API
// @version         1.0
// @description     Applicant profiles, assessment attempts and shortlisting.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	securityLogger := security.InitSecurityLogger(logger.Log, "applicant-tracker", cfg.AppEnv)
	logger.Log.Info("Starting applicant tracker", zap.String("port", cfg.Port))

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	if cfg.AutoMigrate {
		applied, err := database.NewMigrator(dbPool, migrations.FS).Up(ctx)
		if err != nil {
			logger.Log.Fatal("Migration failed", zap.Error(err))
		}
		logger.Log.Info("Migrations complete", zap.Int("applied", applied))
	}

	// 4. Redis backs rate limits and login blocking; both degrade without it
	if err := redis.Initialize(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", zap.Error(err))
	} else {
		defer redis.Close()
	}

	// 5. Infrastructure
	store, err := storage.NewStorage(ctx, storage.Config{
		Driver:    cfg.StorageDriver,
		BasePath:  cfg.StorageLocalPath,
		BaseURL:   cfg.StoragePublicURL,
		Provider:  cfg.S3Provider,
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKeyID,
		SecretKey: cfg.S3SecretKey,
		Endpoint:  cfg.WasabiEndpoint,
	})
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage", zap.Error(err))
	}
	localStorageDir := ""
	if local, ok := store.(*storage.LocalStorage); ok {
		localStorageDir = local.BasePath()
	}

	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - account emails will fail")
	}

	signer := auth.NewLinkSigner(cfg.AppKey, time.Duration(cfg.VerifyLinkTTLMinutes)*time.Minute, cfg.AppURL)
	dispatcher := event.NewDispatcher()
	certs := usecase.NewCertificateStore(store, antivirus.New(cfg.ClamAVAddress),
		security.NewUploadLimiter(cfg.UploadsPerMinute, cfg.UploadsPerDay))
	loginTracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
	})

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	tokenRepo := postgres.NewTokenRepository(dbPool)
	resetRepo := postgres.NewPasswordResetRepository(dbPool)
	roleRepo := postgres.NewRoleRepository(dbPool)
	personalRepo := postgres.NewPersonalDetailsRepository(dbPool)
	highestRepo := postgres.NewHighestEducationLevelRepository(dbPool)
	secondaryRepo := postgres.NewSecondaryEducationRepository(dbPool)
	qualificationRepo := postgres.NewProfessionalQualificationRepository(dbPool)

	// 7. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo, tokenRepo, roleRepo, emailService, dispatcher, loginTracker, usecase.AuthConfig{
		AppName:         "Applicant Portal",
		LoginURL:        cfg.FrontendURL + "/login",
		DefaultPassword: cfg.DefaultUserPassword,
		DefaultRole:     cfg.DefaultRole,
		BlockMinutes:    cfg.FailedLoginBlockMinutes,
	})
	verificationUC := usecase.NewVerificationUsecase(userRepo, signer, emailService, dispatcher)
	passwordUC := usecase.NewPasswordUsecase(userRepo, resetRepo, emailService, dispatcher,
		cfg.FrontendURL, time.Duration(cfg.ResetTokenTTLMinutes)*time.Minute)
	event.Register(dispatcher, verificationUC, securityLogger)

	profiles := v1.ProfileUsecases{
		PersonalDetails: usecase.NewProfileUsecase[*domain.PersonalDetails](personalRepo, nil, usecase.ProfileResource{
			Name: "Personal details",
		}),
		HighestEducationLevel: usecase.NewProfileUsecase[*domain.HighestEducationLevel](highestRepo, certs, usecase.ProfileResource{
			Name:      "Highest education level",
			Prefix:    domain.PrefixHighestEducationCertificate,
			CertField: "certificate",
		}),
		SecondaryEducation: usecase.NewProfileUsecase[*domain.SecondaryEducation](secondaryRepo, certs, usecase.ProfileResource{
			Name:      "Secondary education",
			Prefix:    domain.PrefixKCSECertificate,
			CertField: "kcseCertificate",
		}),
		ProfessionalQualifications: usecase.NewProfileUsecase[*domain.ProfessionalQualification](qualificationRepo, certs, usecase.ProfileResource{
			Name:      "Professional qualifications",
			Prefix:    domain.PrefixProfessionalCertificate,
			CertField: "professionalCertificate",
		}),
	}

	healthChecks := map[string]usecase.HealthCheck{"database": dbPool.Ping}
	if redis.Client() != nil {
		healthChecks["redis"] = redis.HealthCheck
	}

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:          authUC,
		PasswordUC:      passwordUC,
		VerificationUC:  verificationUC,
		ApplicantUC:     usecase.NewApplicantUsecase(userRepo, personalRepo, highestRepo, secondaryRepo, qualificationRepo),
		Profiles:        profiles,
		AttemptUC:       usecase.NewAttemptUsecase(postgres.NewAttemptRepository(dbPool, domain.KindAssessmentAttempt)),
		ShortlistUC:     usecase.NewAttemptUsecase(postgres.NewAttemptRepository(dbPool, domain.KindShortlistedApplicant)),
		RoleUC:          usecase.NewRoleUsecase(roleRepo),
		HealthUC:        usecase.NewHealthUsecase(healthChecks),
		LocalStorageDir: localStorageDir,
		Config:          cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Listen failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
