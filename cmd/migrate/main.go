package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	sqlmigrations "expense-tracker/db"
	"expense-tracker/internal/config"
	"expense-tracker/internal/database"

	_ "github.com/lib/pq"
)

const usage = `usage: migrate [-steps N] <command>

commands:
  up      apply all pending migrations
  down    roll back N migrations (default 1)
  status  print the current version
  seed    execute db/seeds/*.sql`

func main() {
	steps := flag.Int("steps", 1, "number of migrations to roll back")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *steps); err != nil {
		slog.Error("Migration command failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

func run(command string, steps int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	runner := database.NewMigrationRunner(db).
		WithEmbeddedMigrations(sqlmigrations.Migrations, sqlmigrations.MigrationsDir)

	if err := runner.WaitForDatabase(); err != nil {
		return err
	}

	switch command {
	case "up":
		return runner.RunMigrations()
	case "down":
		return runner.RollbackMigrations(steps)
	case "status":
		version, dirty, err := runner.GetMigrationStatus()
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
		return nil
	case "seed":
		return runner.ApplySeeds()
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
