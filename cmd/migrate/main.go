package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/growai/backend/internal/infrastructure/config"
	"github.com/growai/backend/internal/infrastructure/logger"
	"github.com/growai/backend/internal/infrastructure/migration"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
		envFile        string
	)
	flag.StringVar(&migrationsPath, "path", "", "Path to migrations directory (default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before configuration")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("Failed to load env file", zap.String("file", envFile), zap.Error(err))
	}

	path, err := resolveMigrationsPath(migrationsPath)
	if err != nil {
		log.Fatal("Failed to resolve migrations path", zap.Error(err))
	}
	log.Info("Migration CLI started",
		zap.String("command", args[0]),
		zap.String("migrations_path", path),
	)

	if err := run(args, path, log); err != nil {
		var usage usageError
		if errors.As(err, &usage) {
			log.Error(usage.Error())
			printUsage()
			os.Exit(1)
		}
		log.Fatal("Migration command failed", zap.String("command", args[0]), zap.Error(err))
	}
}

type usageError string

func (e usageError) Error() string { return string(e) }

func run(args []string, path string, log *zap.Logger) error {
	command := args[0]

	// create and list work on the directory only
	switch command {
	case "create":
		if len(args) < 2 {
			return usageError("migration name required")
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		mf, err := migration.CreateMigration(path, args[1], description)
		if err != nil {
			return err
		}
		log.Info("Migration created",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return nil
	case "list":
		names, err := migration.ListMigrations(path)
		if err != nil {
			return err
		}
		log.Info("Available migrations", zap.Int("count", len(names)))
		for _, name := range names {
			fmt.Println("  -", name)
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("SQL migrations target postgres; driver %q uses auto-migrate", cfg.Database.Driver)
	}

	m, err := migration.NewFromURL(cfg.Database.PostgresURL(), path, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		n, err := intArg(args, "step count")
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "goto":
		n, err := intArg(args, "version")
		if err != nil {
			return err
		}
		if n < 0 {
			return usageError("version must not be negative")
		}
		return m.GoTo(uint(n))
	case "force":
		n, err := intArg(args, "version")
		if err != nil {
			return err
		}
		log.Warn("Forcing migration version", zap.Int("version", n))
		return m.Force(n)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	case "drop":
		if !slices.Contains(args[1:], "-confirm") && !slices.Contains(args[1:], "--confirm") {
			return usageError("drop requires -confirm")
		}
		return m.Drop()
	default:
		return usageError("unknown command " + strconv.Quote(command))
	}
}

func intArg(args []string, name string) (int, error) {
	if len(args) < 2 {
		return 0, usageError(name + " required")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, usageError("invalid " + name + ": " + args[1])
	}
	return n, nil
}

// resolveMigrationsPath prefers the flag, then ./migrations, then the
// directory two levels above the executable
func resolveMigrationsPath(flagPath string) (string, error) {
	path := flagPath
	if path == "" {
		path = defaultMigrationsPath
		if _, err := os.Stat(path); err != nil {
			if exe, err := os.Executable(); err == nil {
				candidate := filepath.Join(filepath.Dir(exe), "..", "..", defaultMigrationsPath)
				if _, err := os.Stat(candidate); err == nil {
					path = candidate
				}
			}
		}
	}
	return filepath.Abs(path)
}

func printUsage() {
	fmt.Println(`GrowAI database migration tool (PostgreSQL)

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  goto <version>        Migrate to a specific version
  version               Show current migration version
  force <version>       Force set migration version
  drop -confirm         Drop all database objects
  create <name> [desc]  Create a new migration file pair
  list                  List available migrations

Flags:
  -path string          Path to migrations directory (default: ./migrations)
  -log-level string     Log level: debug, info, warn, error (default: info)
  -env-file string      Dotenv file loaded before configuration (default: .env)

Environment:
  GROWAI_DATABASE_HOST, GROWAI_DATABASE_PORT, GROWAI_DATABASE_USER,
  GROWAI_DATABASE_PASSWORD, GROWAI_DATABASE_DBNAME, GROWAI_DATABASE_SSLMODE`)
}
