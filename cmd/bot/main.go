package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"birthday_notification_bot/internal/app"
	"birthday_notification_bot/internal/catalog"
	"birthday_notification_bot/internal/infra/config"
	idb "birthday_notification_bot/internal/infra/database"
	"birthday_notification_bot/internal/infra/discord"
	"birthday_notification_bot/internal/infra/logger"
	"birthday_notification_bot/internal/infra/scheduler"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("Birthday Notification Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg)
	mainLogger := logger.Log.WithField("component", "main")
	mainLogger.WithFields(logrus.Fields{
		"log_level":      cfg.LogLevel,
		"environment":    cfg.Environment,
		"check_interval": cfg.CheckInterval.String(),
	}).Info("Configuration loaded")

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	mainLogger.Info("Database connection established")

	// Initialize Repositories
	birthdayRepo := idb.NewPostgresBirthdayRepository(db)
	notificationRepo := idb.NewPostgresNotificationRepository(db)
	settingsRepo := idb.NewPostgresSettingsRepository(db)
	mainLogger.Info("Repositories initialized")

	// One-time import from the legacy JSON files, when configured
	if cfg.LegacyDataDir != "" {
		importLogger := logger.Log.WithField("component", "legacy_import")
		if err := idb.ImportLegacyData(context.Background(), cfg.LegacyDataDir, birthdayRepo, notificationRepo, settingsRepo, importLogger); err != nil {
			mainLogger.WithError(err).Fatal("Legacy data import failed")
		}
	}

	// Initialize Discord session
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Discord session")
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	// Initialize services
	birthdayService := app.NewBirthdayService(birthdayRepo)
	messageCatalog := catalog.Default()

	handlerLogger := logger.Log.WithField("component", "command_handler")
	commandHandler := discord.NewCommandHandler(birthdayService, settingsRepo, handlerLogger)
	session.AddHandler(commandHandler.HandleInteraction)

	if err := session.Open(); err != nil {
		mainLogger.WithError(err).Fatal("Could not open Discord gateway connection")
	}
	defer session.Close()
	mainLogger.WithField("bot_user", session.State.User.Username).Info("Discord gateway connection established")

	if err := commandHandler.RegisterCommands(session); err != nil {
		mainLogger.WithError(err).Fatal("Could not register slash commands")
	}

	// Initialize announcer and checker, now that the bot user is known
	announcerLogger := logger.Log.WithField("component", "announcer")
	announcer := discord.NewAnnouncer(session, session.State.User.ID, announcerLogger)

	checkerLogger := logger.Log.WithField("component", "birthday_checker")
	checkerService := app.NewCheckerService(birthdayRepo, notificationRepo, settingsRepo, announcer, messageCatalog, checkerLogger)

	// Initialize and start the scheduler
	schedulerLogger := logger.Log.WithField("component", "scheduler")
	birthdayScheduler := scheduler.NewBirthdayScheduler(checkerService, schedulerLogger, cfg.CheckInterval)
	birthdayScheduler.Start()

	mainLogger.Info("Application setup complete. Bot and scheduler are running")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	birthdayScheduler.Stop()
	mainLogger.Info("Application shut down gracefully")
}
