package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"coparent/docs"
	"coparent/internal/auth"
	"coparent/internal/cache"
	"coparent/internal/config"
	"coparent/internal/database"
	"coparent/internal/database/migration"
	handlers "coparent/internal/http/handler"
	"coparent/internal/http/middleware"
	"coparent/internal/logger"
	"coparent/internal/notify"
	"coparent/internal/otel"
	"coparent/internal/repository/postgres"
	"coparent/internal/service"
	"coparent/internal/storage"
	"coparent/internal/worker"
)

// @title Co-Parenting Schedule API
// @version 1.0
// @description Shared custody calendar, schedule templates and family organization.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.Any("err", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log)
	slog.SetDefault(log)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	ctx = logger.IntoContext(ctx, log)

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracing shutdown failed", slog.Any("err", err))
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	photos, err := storage.NewS3(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	redisClient := cache.NewRedisClient(ctx, cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}
	custodyCache := cache.NewCustodyCache(redisClient, cfg.Redis.CustodyTTL)

	mailer := notify.NewSMTPMailer(cfg.Mail)
	messenger, err := notify.NewSNS(ctx, cfg.SNS, log)
	if err != nil {
		return fmt.Errorf("init sns: %w", err)
	}
	chat := notify.NewChatClient(cfg.Chat)

	verifier, err := auth.NewVerifier(cfg.Auth)
	if err != nil {
		return fmt.Errorf("init token verifier: %w", err)
	}

	userRepo := postgres.NewUserPostgres(db)
	custodyRepo := postgres.NewCustodyPostgres(db)
	templateRepo := postgres.NewScheduleTemplatePostgres(db)
	reminderRepo := postgres.NewReminderPostgres(db)
	emailRepo := postgres.NewNotificationEmailPostgres(db)
	babysitterRepo := postgres.NewBabysitterPostgres(db)
	contactRepo := postgres.NewEmergencyContactPostgres(db)

	clock := service.SystemClock(cfg.Location())
	services := handlers.Services{
		Users:             service.NewUserService(userRepo, photos, cfg.Storage.PhotoURLExpiry, messenger),
		Family:            service.NewFamilyService(userRepo, photos, cfg.Storage.PhotoURLExpiry),
		Children:          service.NewChildService(postgres.NewChildPostgres(db)),
		Custody:           service.NewCustodyService(custodyRepo, templateRepo, userRepo, custodyCache, messenger, clock),
		Schedules:         service.NewScheduleService(templateRepo, custodyRepo, userRepo, custodyCache, clock),
		Reminders:         service.NewReminderService(reminderRepo, clock),
		Medications:       service.NewMedicationService(postgres.NewMedicationPostgres(db), clock),
		Journal:           service.NewJournalService(postgres.NewJournalPostgres(db), clock),
		Notifications:     service.NewNotificationService(emailRepo),
		Babysitters:       service.NewBabysitterService(babysitterRepo),
		EmergencyContacts: service.NewEmergencyContactService(contactRepo),
		MedicalProviders:  service.NewMedicalProviderService(postgres.NewMedicalProviderPostgres(db)),
		GroupChats:        service.NewGroupChatService(postgres.NewGroupChatPostgres(db), babysitterRepo, contactRepo, chat, clock),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	if cfg.Worker.ReminderEnabled {
		dispatcher, err := worker.NewReminderDispatcher(reminderRepo, emailRepo, userRepo, mailer, messenger,
			cfg.Worker.ReminderInterval, clock, reg)
		if err != nil {
			return fmt.Errorf("init reminder dispatcher: %w", err)
		}
		go dispatcher.Run(logger.IntoContext(ctx, logger.WithComponent(log, "reminder_dispatcher")))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             int(service.MaxPhotoSize) + 1<<20,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.RequestIDHeader,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handlers.RegisterRoutes(app, db, middleware.Auth(verifier, userRepo), services)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("addr", cfg.Addr()), slog.String("timezone", cfg.Timezone))
		if err := app.Listen(cfg.Addr()); err != nil {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-errCh:
		return err
	}

	stop()
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
