package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "digitalshelf/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"digitalshelf/internal/auth"
	"digitalshelf/internal/cache"
	"digitalshelf/internal/config"
	"digitalshelf/internal/db"
	"digitalshelf/internal/handler"
	"digitalshelf/internal/model"
	"digitalshelf/internal/repository"
	"digitalshelf/internal/router"
	"digitalshelf/internal/seed"
	"digitalshelf/internal/service"
)

// @title The Digital Shelf API
// @version 1.0
// @description Book catalog API with search, filters, stats, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Book{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Book{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	bookRepo := repository.NewBookRepository(gormDB)

	// Seed the admin credential and sample catalog when missing
	if result, err := seed.EnsureDefaults(context.Background(), userRepo, bookRepo, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Printf("Warning: boot seeding failed: %v", err)
	} else if result.UsersCreated+result.BooksCreated > 0 {
		log.Printf("Seeded %d users and %d books", result.UsersCreated, result.BooksCreated)
	}

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, jwtService)
	bookService := service.NewBookService(bookRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(bookService)
	seedHandler := handler.NewSeedHandler(userRepo, bookRepo, cfg)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		bookHandler,
		seedHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
