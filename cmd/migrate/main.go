package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Smee1/Mindful-Messaging-Chatbot/config"
	"github.com/Smee1/Mindful-Messaging-Chatbot/pkg/database"
)

const usage = `
Mindful Messaging - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Apply all SQL migrations
  seed        Insert demo users and a demo chat
  status      Show database connection status

Flags:
  -migrations string   Path to migrations directory (default "migrations")

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go -migrations db/migrations up
`

func main() {
	migrationsDir := flag.String("migrations", "migrations", "path to migrations directory")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.LoadConfig()
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	switch command {
	case "up":
		if err := database.ApplyRawMigrations(context.Background(), db, *migrationsDir); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations applied")
	case "seed":
		if err := seed(context.Background(), db); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
		log.Println("Demo data inserted")
	case "status":
		if err := database.HealthCheck(db); err != nil {
			log.Fatalf("Database unreachable: %v", err)
		}
		log.Println("Database connection OK")
	default:
		flag.Usage()
		os.Exit(2)
	}
}
