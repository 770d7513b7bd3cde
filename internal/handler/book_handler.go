package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"digitalshelf/internal/errors"
	"digitalshelf/internal/model"
	"digitalshelf/internal/service"
)

// BookHandler handles catalog endpoints.
type BookHandler struct {
	bookService service.BookService
}

// NewBookHandler creates a new book handler.
func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// ViewsResponse reports the counter after an increment.
type ViewsResponse struct {
	Views int64 `json:"views"`
}

func parseBookID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid book id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

// List godoc
// @Summary List all books
// @Tags books
// @Produce json
// @Success 200 {array} model.Book
// @Router /books [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.bookService.GetAll(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, books)
}

// Get godoc
// @Summary Get a book by id
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} model.Book
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	id, err := parseBookID(c)
	if err != nil {
		return err
	}

	book, err := h.bookService.GetByID(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, book)
}

// Search godoc
// @Summary Search books by title, author, or description
// @Tags books
// @Produce json
// @Param query query string false "Substring to match; blank returns all books"
// @Success 200 {array} model.Book
// @Router /books/search [get]
func (h *BookHandler) Search(c echo.Context) error {
	books, err := h.bookService.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, books)
}

// ByAuthor godoc
// @Summary List books by author substring
// @Tags books
// @Produce json
// @Param author path string true "Author substring"
// @Success 200 {array} model.Book
// @Router /books/author/{author} [get]
func (h *BookHandler) ByAuthor(c echo.Context) error {
	books, err := h.bookService.GetByAuthor(c.Request().Context(), c.Param("author"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, books)
}

// ByMinRating godoc
// @Summary List books rated at or above a threshold
// @Tags books
// @Produce json
// @Param minRating path int true "Minimum rating"
// @Success 200 {array} model.Book
// @Failure 400 {object} errors.ErrorResponse
// @Router /books/rating/{minRating} [get]
func (h *BookHandler) ByMinRating(c echo.Context) error {
	minRating, err := strconv.Atoi(c.Param("minRating"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid rating",
			Code:  "INVALID_RATING",
		})
	}

	books, err := h.bookService.GetByMinRating(c.Request().Context(), minRating)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, books)
}

// Authors godoc
// @Summary List distinct author names
// @Tags books
// @Produce json
// @Success 200 {array} string
// @Router /books/authors [get]
func (h *BookHandler) Authors(c echo.Context) error {
	authors, err := h.bookService.ListAuthors(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, authors)
}

// AverageRating godoc
// @Summary Average rating across the catalog
// @Tags books
// @Produce json
// @Success 200 {number} number
// @Router /books/stats/average-rating [get]
func (h *BookHandler) AverageRating(c echo.Context) error {
	avg, err := h.bookService.AverageRating(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, avg)
}

// Total godoc
// @Summary Total number of books
// @Tags books
// @Produce json
// @Success 200 {integer} integer
// @Router /books/stats/total [get]
func (h *BookHandler) Total(c echo.Context) error {
	total, err := h.bookService.TotalBooks(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, total)
}

// Featured godoc
// @Summary List featured books
// @Tags books
// @Produce json
// @Success 200 {array} model.Book
// @Router /books/featured [get]
func (h *BookHandler) Featured(c echo.Context) error {
	books, err := h.bookService.GetFeatured(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, books)
}

// Create godoc
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.BookDraft true "Book draft; absent optional fields receive defaults"
// @Success 200 {object} model.Book
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var draft model.BookDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	book, err := h.bookService.Create(c.Request().Context(), &draft)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, book)
}

// Update godoc
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param request body model.BookDraft true "Book draft"
// @Success 200 {object} model.Book
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	id, err := parseBookID(c)
	if err != nil {
		return err
	}

	var draft model.BookDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	book, err := h.bookService.Update(c.Request().Context(), id, &draft)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, book)
}

// Delete godoc
// @Summary Delete a book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	id, err := parseBookID(c)
	if err != nil {
		return err
	}

	if err := h.bookService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "book deleted"})
}

// IncrementViews godoc
// @Summary Increment the view counter
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} ViewsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /books/{id}/views [post]
func (h *BookHandler) IncrementViews(c echo.Context) error {
	id, err := parseBookID(c)
	if err != nil {
		return err
	}

	views, err := h.bookService.IncrementViews(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ViewsResponse{Views: views})
}
