package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/pollbot/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollbot/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var dbURL string
	flag.StringVar(&dbURL, "db-url", cfg.DatabaseURL, "Database URL")
	flag.Parse()

	if dbURL == "" {
		log.Fatal("a database url is required (use -db-url or POLL_DATABASE_URL)")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := postgres.ApplyMigrations(ctx, db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Println("Migrations executed successfully.")
}
