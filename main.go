package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/rpupo63/album-review-backend/api"
	"github.com/rpupo63/album-review-backend/config"
	"github.com/rpupo63/album-review-backend/database"
	"github.com/rpupo63/album-review-backend/models"
	"github.com/rpupo63/album-review-backend/services"
)

var (
	// Global flags
	envFile string

	// migrate flags
	withReport bool

	// generate-models flags
	outPath string

	// create-admin flags
	adminEmail    string
	adminUsername string
	adminPassword string
)

var rootCmd = &cobra.Command{
	Use:   "album-reviews",
	Short: "Album review website backend",
	Long: `Serves the album review API: albums with categories, artists, tags and covers,
user comments with ratings, and account management.

Configuration is read from the environment, an optional .env file and, when
AWS_SSM_PATH is set, from AWS SSM Parameter Store.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load environment variables from .env file
		if err := godotenv.Load(envFile); err != nil {
			log.Warn().Err(err).Str("file", envFile).Msg("no env file loaded")
		}
		setupLogging()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create or update the database schema.

Examples:
  album-reviews migrate            # migrate every table
  album-reviews migrate --report   # migrate, then list columns no model maps to`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.Context())
	},
}

var generateModelsCmd = &cobra.Command{
	Use:   "generate-models",
	Short: "Generate typed query helpers with gorm/gen",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerateModels(cmd.Context())
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a user holding ROLE_ADMIN",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateAdmin(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Env file loaded before reading configuration")

	migrateCmd.Flags().BoolVar(&withReport, "report", false, "Print the column mismatch report after migrating")
	generateModelsCmd.Flags().StringVar(&outPath, "out", "./query", "Output directory of the generated code")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Email of the administrator")
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Username of the administrator")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password of the administrator")
	for _, flag := range []string{"email", "username", "password"} {
		_ = createAdminCmd.MarkFlagRequired(flag)
	}

	rootCmd.AddCommand(serveCmd, migrateCmd, generateModelsCmd, createAdminCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// setupLogging applies LOG_LEVEL and switches to console output when LOG_FORMAT is "console".
func setupLogging() {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv("LOG_FORMAT") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// loadConfig reads the environment and overlays SSM parameters.
func loadConfig(ctx context.Context) (map[string]string, error) {
	c := config.New()
	if err := config.LoadSSM(ctx, c); err != nil {
		return nil, fmt.Errorf("load ssm parameters: %w", err)
	}
	return c, nil
}

func openDatabase(ctx context.Context) (map[string]string, *gorm.DB, error) {
	c, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("dbType", config.GetString(c, "DB_TYPE", "sqlite")).Msg("connecting to database")
	db, err := database.Open(c)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return c, db, nil
}

func closeDatabase(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing database")
		}
	}
}

func runServe(ctx context.Context) error {
	c, db, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	currentDB := database.New(db)
	if config.GetBool(c, "AUTO_MIGRATE", true) {
		if err := currentDB.Migrate(); err != nil {
			return err
		}
	}

	covers, err := services.NewCoverStorage(ctx, c)
	if err != nil {
		return fmt.Errorf("cover storage: %w", err)
	}

	server, err := api.NewServer(c, currentDB, covers, services.NewMailer(c))
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	return server.Run(ctx, config.GetSeconds(c, "SHUTDOWN_TIMEOUT_SECONDS", 30*time.Second))
}

func runMigrate(ctx context.Context) error {
	_, db, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	log.Info().Msg("Starting database migration...")
	if err := models.Migrate(db); err != nil {
		return err
	}
	log.Info().Msg("Database migration completed successfully!")

	if withReport {
		return models.ColumnMismatchReport(db, os.Stdout)
	}
	return nil
}

func runGenerateModels(ctx context.Context) error {
	_, db, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	return models.GenerateModels(db, outPath, os.Stdout)
}

func runCreateAdmin(ctx context.Context) error {
	_, db, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	users := services.NewUserService(database.New(db), services.LogMailer{})
	admin, err := users.CreateAdmin(ctx, services.Registration{
		Email:    adminEmail,
		Username: adminUsername,
		Password: adminPassword,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	log.Info().Str("user", admin.Slug).Str("email", admin.Email).Msg("administrator created")
	return nil
}
