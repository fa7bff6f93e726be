package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
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

	var (
		dbURL string
		limit int
	)
	flag.StringVar(&dbURL, "db-url", cfg.DatabaseURL, "Database URL")
	flag.IntVar(&limit, "limit", 10, "Number of archived polls to print")
	flag.Parse()

	if dbURL == "" {
		log.Fatal("a database url is required (use -db-url or POLL_DATABASE_URL)")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	archive := postgres.NewResultArchiveRepository(db)

	// Use a timeout so a stuck database does not hang the command
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	archived, err := archive.List(ctx, limit)
	if err != nil {
		log.Fatalf("Error listing archived polls: %v", err)
	}

	for _, a := range archived {
		fmt.Printf("#%d %s (closed %s)\n", a.PollID, a.Title, a.ClosedAt.Format(time.RFC3339))
		for _, q := range a.Results.Questions {
			fmt.Printf("  %d. %s [%d answers]\n", q.Order, q.Text, q.TotalAnswers)
			for _, c := range q.Choices {
				fmt.Printf("     %-30s %3d  %5.1f%%\n", c.Text, c.Count, c.Percentage)
			}
		}
	}
}
