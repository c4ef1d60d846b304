package main

import (
	"flag"
	"log"

	"github.com/localnerve/movieweb/internal/config"
	"github.com/localnerve/movieweb/internal/database"
	"github.com/localnerve/movieweb/internal/models"
)

func main() {
	var drop bool
	flag.BoolVar(&drop, "drop", false, "drop the users and movies tables before creating them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if drop {
		if err := db.Migrator().DropTable(&models.Movie{}, &models.User{}); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Dropped tables movies, users")
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Printf("Tables ready in %s database %s", cfg.DBType, cfg.DBDatabase)
}
