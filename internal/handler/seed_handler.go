package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"digitalshelf/internal/config"
	"digitalshelf/internal/repository"
	"digitalshelf/internal/seed"
)

// SeedHandler exposes the idempotent sample-data loader.
type SeedHandler struct {
	userRepo repository.UserRepository
	bookRepo repository.BookRepository
	cfg      *config.Config
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(userRepo repository.UserRepository, bookRepo repository.BookRepository, cfg *config.Config) *SeedHandler {
	return &SeedHandler{
		userRepo: userRepo,
		bookRepo: bookRepo,
		cfg:      cfg,
	}
}

// SeedBooks godoc
// @Summary Load the default admin credential and sample catalog
// @Tags seed
// @Produce json
// @Success 200 {object} seed.Result
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed/books [get]
func (h *SeedHandler) SeedBooks(c echo.Context) error {
	result, err := seed.EnsureDefaults(c.Request().Context(), h.userRepo, h.bookRepo, h.cfg.AdminUsername, h.cfg.AdminPassword)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "seeding failed")
	}
	return c.JSON(http.StatusOK, result)
}
