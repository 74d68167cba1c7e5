package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pageza/sousie/backend/config"
	"github.com/pageza/sousie/backend/internal/database"
	"github.com/pageza/sousie/backend/internal/logging"
)

func main() {
	migrationsDir := flag.String("dir", "migrations", "directory holding the SQL migrations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.Environment)

	db, err := database.Open(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err := database.RunMigrations(db, *migrationsDir, log); err != nil {
		log.WithError(err).Fatal("Migration failed")
	}
	log.Info("All migrations applied successfully")
}
