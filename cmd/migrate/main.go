package main

import (
	"log"
	"os"

	"workspace-be/internal/model"
	"workspace-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.Open(dsn, gormlogger.Warn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}
	dialect := database.DialectOf(db)

	color.Cyan("Step 1: Running AutoMigrate for %d tables (%s)...", len(model.All()), dialect)
	if err := model.AutoMigrate(db); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	if dialect != database.DialectPostgres || os.Getenv("SKIP_FULLTEXT") == "true" {
		color.Yellow("Step 2: Skipping full-text vectors, search will use substring matching")
	} else {
		color.Cyan("Step 2: Creating full-text vectors and indexes...")
		for _, stmt := range model.FullTextStatements() {
			if err := db.Exec(stmt).Error; err != nil {
				color.Yellow("Warn: Failed to execute full-text SQL: %v. Continuing...", err)
			}
		}
	}

	color.Green("✅ Success: Database migration completed.")
}
