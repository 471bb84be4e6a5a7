package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/safe-steps/prepared_api/seed/seeders"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, content, videos, schools, settings, admin")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := gorm.Open(postgres.Open(databaseDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "content":
		log.Println("Seeding modules and games only...")
		if err := mainSeeder.SeedContentOnly(); err != nil {
			log.Fatalf("Failed to seed content: %v", err)
		}
	case "videos":
		log.Println("Seeding videos only...")
		if err := mainSeeder.SeedVideosOnly(); err != nil {
			log.Fatalf("Failed to seed videos: %v", err)
		}
	case "schools":
		log.Println("Seeding schools and drills only...")
		if err := mainSeeder.SeedSchoolsOnly(); err != nil {
			log.Fatalf("Failed to seed schools: %v", err)
		}
	case "settings":
		log.Println("Seeding platform settings only...")
		if err := mainSeeder.SeedSettingsOnly(); err != nil {
			log.Fatalf("Failed to seed settings: %v", err)
		}
	case "admin":
		log.Println("Seeding admin user only...")
		if err := mainSeeder.SeedAdminOnly(); err != nil {
			log.Fatalf("Failed to seed admin: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'content', 'videos', 'schools', 'settings' or 'admin'", *seedType)
	}
}

func databaseDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	host := envOr("DB_HOST", "localhost")
	port := envOr("DB_PORT", "5432")
	user := envOr("DB_USER", "postgres")
	password := envOr("DB_PASSWORD", "postgres")
	dbname := envOr("DB_NAME", "prepared_api")
	sslmode := envOr("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func showHelp() {
	fmt.Println("Database seeder")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  go run ./seed [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
