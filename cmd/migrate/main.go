package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/realstatepro/billing/internal/config"
	"github.com/realstatepro/billing/internal/logger"
)

// Applies the SQL files under migrations/ in lexical order. Files are plain
// DDL; each runs in its own transaction.
func main() {
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	dir := flag.String("dir", "migrations", "Directory holding the migration files")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(*dir, "*.sql"))
	if err != nil {
		logger.Fatalw("Failed to list migration files", "error", err)
	}
	if len(files) == 0 {
		logger.Infow("No migration files found", "dir", *dir)
		return
	}
	sort.Strings(files)

	if *dryRun {
		for _, f := range files {
			sql, err := os.ReadFile(f)
			if err != nil {
				logger.Fatalw("Failed to read migration", "file", f, "error", err)
			}
			fmt.Printf("-- %s\n%s\n", f, strings.TrimSpace(string(sql)))
		}
		return
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			logger.Fatalw("Failed to read migration", "file", f, "error", err)
		}

		logger.Infow("Applying migration", "file", f)
		tx, err := db.Beginx()
		if err != nil {
			logger.Fatalw("Failed to begin transaction", "error", err)
		}
		if _, err := tx.Exec(string(sql)); err != nil {
			tx.Rollback()
			logger.Fatalw("Migration failed", "file", f, "error", err)
		}
		if err := tx.Commit(); err != nil {
			logger.Fatalw("Failed to commit migration", "file", f, "error", err)
		}
	}

	logger.Infow("Migrations completed", "applied", len(files))
}
