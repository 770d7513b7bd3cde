package main

import (
	"context"
	"log"

	"digitalshelf/internal/config"
	"digitalshelf/internal/db"
	"digitalshelf/internal/model"
	"digitalshelf/internal/repository"
	"digitalshelf/internal/seed"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Book{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	bookRepo := repository.NewBookRepository(gormDB)

	result, err := seed.EnsureDefaults(context.Background(), userRepo, bookRepo, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to seed data: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", result.UsersCreated)
	log.Printf("  - Books created: %d", result.BooksCreated)
}
