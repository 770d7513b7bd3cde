package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"digitalshelf/internal/config"
	"digitalshelf/internal/handler"
)

// Register wires routes and middleware. The auth matrix follows the
// catalog's access rules: listing, search, filters, and stats are public;
// single-record reads and every mutation require a bearer token.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	bookHandler *handler.BookHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/test", authHandler.Test)
	api.GET("/seed/books", seedHandler.SeedBooks)

	api.GET("/books", bookHandler.List)
	api.GET("/books/search", bookHandler.Search)
	api.GET("/books/author/:author", bookHandler.ByAuthor)
	api.GET("/books/rating/:minRating", bookHandler.ByMinRating)
	api.GET("/books/authors", bookHandler.Authors)
	api.GET("/books/stats/average-rating", bookHandler.AverageRating)
	api.GET("/books/stats/total", bookHandler.Total)
	api.GET("/books/featured", bookHandler.Featured)

	// Secured routes (require a valid bearer token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/books/:id", bookHandler.Get)
	secured.POST("/books", bookHandler.Create)
	secured.PUT("/books/:id", bookHandler.Update)
	secured.DELETE("/books/:id", bookHandler.Delete)
	secured.POST("/books/:id/views", bookHandler.IncrementViews)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
