package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"mindlift/api/handler"
	apiMiddleware "mindlift/api/middleware"
	"mindlift/api/routes"
	"mindlift/api/ws"
	"mindlift/config"
	"mindlift/internal/repository"
	"mindlift/internal/service"
	"mindlift/internal/storage"
	"mindlift/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	if cfg.InsecureDev {
		logger.Warn("AUTH_INSECURE_DEV is set; using the built-in dev JWT secret")
	}

	db, err := config.ConnectDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}

	validate := validator.New()

	jwtManager := utils.JWTManager{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		TokenTTL: cfg.TokenTTL,
	}
	tokenIssuer := service.JWTSessionIssuer{Manager: &jwtManager}

	userRepo := repository.NewUserRepository(db)
	speakerRepo := repository.NewSpeakerRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	verificationRepo := repository.NewVerificationTokenRepository(db)

	var mediaStore service.MediaStore
	if cfg.StorageConfigured() {
		s3Store, err := storage.NewS3Store(context.Background(), storage.Config{
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
			Bucket:    cfg.StorageBucket,
			Region:    cfg.StorageRegion,
			Endpoint:  cfg.StorageEndpoint,
		})
		if err != nil {
			logger.WithError(err).Fatal("object storage init failed")
		}
		mediaStore = s3Store
	} else {
		logger.Warn("object storage not configured; file uploads are disabled")
	}

	var emailSender service.EmailSender
	if cfg.ResendAPIKey != "" && cfg.EmailFrom != "" {
		emailSender = service.NewResendEmailSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppBaseURL)
	} else {
		logger.Warn("RESEND_API_KEY or EMAIL_FROM not set; outbound email is disabled")
	}
	hub := ws.NewHub(&jwtManager, logger)

	notificationService := service.NewNotificationService(notificationRepo, emailSender, hub, logger)
	authService := service.NewAuthService(
		userRepo,
		verificationRepo,
		service.BcryptPasswordHasher{},
		tokenIssuer,
		notificationService,
		emailSender,
		service.RealClock{},
		service.AuthConfig{
			VerificationTokenTTL: 24 * time.Hour,
			ResetTokenTTL:        30 * time.Minute,
			AppBaseURL:           cfg.AppBaseURL,
		},
		logger,
	)
	speakerService := service.NewSpeakerService(db, speakerRepo, userRepo, videoRepo, notificationService, service.RealClock{}, logger)
	videoService := service.NewVideoService(db, videoRepo, mediaStore, notificationService, service.RealClock{}, logger)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, videoRepo)
	adminService := service.NewAdminService(userRepo, speakerRepo, videoRepo)

	var billingHandler *handler.BillingHandler
	if cfg.StripeSecretKey != "" {
		billingService := service.NewBillingService(
			userRepo,
			notificationService,
			cfg.StripeSecretKey,
			cfg.StripeWebhookSecret,
			cfg.SubscriptionCents,
			cfg.Currency,
			logger,
		)
		billingHandler = handler.NewBillingHandler(billingService)
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set; billing endpoints are disabled")
	}

	authHandler := handler.NewAuthHandler(authService, validate)
	videoHandler := handler.NewVideoHandler(videoService, validate)
	speakerHandler := handler.NewSpeakerHandler(speakerService, videoService, validate)
	adminHandler := handler.NewAdminHandler(adminService, speakerService, videoService, validate)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkService, videoService, validate)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &jwtManager}
	router := routes.NewRouter(
		app,
		authHandler,
		videoHandler,
		speakerHandler,
		adminHandler,
		bookmarkHandler,
		notificationHandler,
		billingHandler,
		hub,
		authMiddleware,
	)
	router.RegisterRoutes()

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go notificationService.RunEmailSweep(sweepCtx, cfg.EmailSweep)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
