package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/intakedesk/internal/api"
	"github.com/terraincognita07/intakedesk/internal/cli"
	"github.com/terraincognita07/intakedesk/internal/config"
	"github.com/terraincognita07/intakedesk/internal/db"
	"github.com/terraincognita07/intakedesk/internal/logging"
	"github.com/terraincognita07/intakedesk/internal/security"
	"github.com/terraincognita07/intakedesk/internal/services"
	"github.com/terraincognita07/intakedesk/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	serviceName     = "intakedesk"
	shutdownTimeout = 10 * time.Second
)

const usage = `usage: intakedesk [command]

commands:
  serve                    run the HTTP server (default)
  set-password <email>     set a new password interactively
  reset-password <email>   replace the password with a temporary one
  activate <email>         allow the account to sign in
  deactivate <email>       block the account from signing in
  generate-secret          print a random SECRET_KEY value`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	command, rest := splitCommand(args)
	switch {
	case command == "help" || command == "-h" || command == "--help":
		fmt.Println(usage)
		return nil
	case command == "generate-secret":
		return cli.NewCommands(nil, nil, nil, os.Stdout).Run(command, rest)
	case command != "serve" && !cli.IsCommand(command):
		return fmt.Errorf("%w: %s\n\n%s", cli.ErrUnknownCommand, command, usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	time.Local = cfg.Location

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	database, err := db.OpenSQLiteWithLogger(cfg.DBPath, logging.NewGormWriter(logger))
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			logger.Warn("database close failed", zap.Error(err))
		}
	}()

	if command != "serve" {
		repos := db.NewRepositories(database)
		hasher := security.NewPasswordHasher(cfg.BcryptCost)
		return cli.NewCommands(repos.Users, hasher, cli.TerminalPrompt(os.Stdin, os.Stdout), os.Stdout).Run(command, rest)
	}

	app, err := newServer(cfg, database, logger)
	if err != nil {
		return err
	}
	return serve(app, cfg, logger)
}

func splitCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "serve", nil
	}
	return args[0], args[1:]
}

func newServer(cfg config.Config, database *gorm.DB, logger *zap.Logger) (*fiber.App, error) {
	repos := db.NewRepositories(database)
	hasher := security.NewPasswordHasher(cfg.BcryptCost)
	tokens, err := security.NewTokenIssuer(security.TokenConfig{
		Secret: []byte(cfg.SecretKey),
		TTL:    cfg.TokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("token issuer init failed: %w", err)
	}

	handler, err := api.NewHandler(api.Dependencies{
		Auth:         services.NewAuthService(repos.Users, hasher, tokens),
		Profiles:     services.NewProfileService(repos.Profiles),
		Appointments: services.NewAppointmentService(repos.Appointments, cfg.Location),
		Radiographs:  services.NewRadiographService(repos.Radiographs, storage.NewFileStore(cfg.UploadDir), cfg.SniffUploads),
		HealthCheck: func(ctx context.Context) error {
			return db.Ping(ctx, database)
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	return api.NewApp(handler, api.AppConfig{
		AppName:        serviceName,
		MaxUploadBytes: cfg.MaxUploadBytes,
		CORSOrigins:    cfg.CORSOrigins,
		FrontendDir:    cfg.FrontendDir,
		AccessLog:      true,
	}), nil
}

func serve(app *fiber.App, cfg config.Config, logger *zap.Logger) error {
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("listening",
		zap.String("addr", "0.0.0.0:"+cfg.Port),
		zap.String("db", cfg.DBPath),
		zap.String("uploads", cfg.UploadDir),
		zap.String("tz", cfg.Location.String()),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
