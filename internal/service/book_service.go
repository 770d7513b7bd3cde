package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"digitalshelf/internal/cache"
	"digitalshelf/internal/errors"
	"digitalshelf/internal/model"
	"digitalshelf/internal/repository"
)

const (
	bookCacheTTL  = 5 * time.Minute
	statsCacheTTL = time.Minute

	avgRatingCacheKey = "books:stats:average-rating"
	totalCacheKey     = "books:stats:total"
)

// Draft defaults substituted for absent optional fields.
const (
	DefaultAuthor      = "Unknown Author"
	DefaultPublisher   = "Unknown Publisher"
	DefaultDescription = "No description available"
	DefaultCategory    = "General"
)

// BookService handles catalog operations.
type BookService interface {
	GetAll(ctx context.Context) ([]model.Book, error)
	GetByID(ctx context.Context, id uint) (*model.Book, error)
	Search(ctx context.Context, query string) ([]model.Book, error)
	GetByAuthor(ctx context.Context, author string) ([]model.Book, error)
	GetByMinRating(ctx context.Context, minRating int) ([]model.Book, error)
	GetFeatured(ctx context.Context) ([]model.Book, error)
	ListAuthors(ctx context.Context) ([]string, error)
	AverageRating(ctx context.Context) (float64, error)
	TotalBooks(ctx context.Context) (int64, error)
	Create(ctx context.Context, draft *model.BookDraft) (*model.Book, error)
	Update(ctx context.Context, id uint, draft *model.BookDraft) (*model.Book, error)
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) (int64, error)
}

type bookService struct {
	repo  repository.BookRepository
	cache *cache.Client
}

// NewBookService creates a new book service.
func NewBookService(repo repository.BookRepository, cache *cache.Client) BookService {
	return &bookService{
		repo:  repo,
		cache: cache,
	}
}

func (s *bookService) cacheKey(id uint) string {
	return fmt.Sprintf("book:%d", id)
}

// GetAll lists every book.
func (s *bookService) GetAll(ctx context.Context) ([]model.Book, error) {
	return s.repo.FindAll(ctx)
}

// GetByID retrieves a book by ID with caching.
func (s *bookService) GetByID(ctx context.Context, id uint) (*model.Book, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Book
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}

	if payload, err := json.Marshal(book); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, bookCacheTTL)
	}

	return book, nil
}

// Search returns all books for a blank query, otherwise books whose title,
// author, or description contains the query substring.
func (s *bookService) Search(ctx context.Context, query string) ([]model.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.FindAll(ctx)
	}
	return s.repo.Search(ctx, query)
}

// GetByAuthor lists books whose author contains the given substring.
func (s *bookService) GetByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	return s.repo.FindByAuthor(ctx, author)
}

// GetByMinRating lists books rated at or above the threshold.
func (s *bookService) GetByMinRating(ctx context.Context, minRating int) ([]model.Book, error) {
	return s.repo.FindByMinRating(ctx, minRating)
}

// GetFeatured lists featured books.
func (s *bookService) GetFeatured(ctx context.Context) ([]model.Book, error) {
	return s.repo.FindFeatured(ctx)
}

// ListAuthors returns distinct author names.
func (s *bookService) ListAuthors(ctx context.Context) ([]string, error) {
	return s.repo.ListAuthors(ctx)
}

// AverageRating returns the mean rating across the catalog, cached briefly.
func (s *bookService) AverageRating(ctx context.Context) (float64, error) {
	if data, _ := s.cache.Get(ctx, avgRatingCacheKey); data != nil {
		var cached float64
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	avg, err := s.repo.AverageRating(ctx)
	if err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}

	if payload, err := json.Marshal(avg); err == nil {
		_ = s.cache.Set(ctx, avgRatingCacheKey, payload, statsCacheTTL)
	}
	return avg, nil
}

// TotalBooks returns the catalog size, cached briefly.
func (s *bookService) TotalBooks(ctx context.Context) (int64, error) {
	if data, _ := s.cache.Get(ctx, totalCacheKey); data != nil {
		var cached int64
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}

	if payload, err := json.Marshal(count); err == nil {
		_ = s.cache.Set(ctx, totalCacheKey, payload, statsCacheTTL)
	}
	return count, nil
}

// Create validates the draft, applies defaults, and persists a new book.
func (s *bookService) Create(ctx context.Context, draft *model.BookDraft) (*model.Book, error) {
	book, err := bookFromDraft(draft)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.invalidate(ctx, book.ID)
	return book, nil
}

// Update replaces all mutable fields of an existing book in place. The id
// and the view counter survive the replacement.
func (s *bookService) Update(ctx context.Context, id uint, draft *model.BookDraft) (*model.Book, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}

	book, err := bookFromDraft(draft)
	if err != nil {
		return nil, err
	}
	book.ID = existing.ID
	book.ViewCount = existing.ViewCount
	book.CreatedAt = existing.CreatedAt

	if err := s.repo.Save(ctx, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.invalidate(ctx, id)
	return book, nil
}

// Delete removes a book permanently.
func (s *bookService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrBookNotFound
		}
		return fmt.Errorf("find book: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	s.invalidate(ctx, id)
	return nil
}

// IncrementViews atomically bumps the view counter and returns the new
// value.
func (s *bookService) IncrementViews(ctx context.Context, id uint) (int64, error) {
	views, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, errors.ErrBookNotFound
		}
		return 0, fmt.Errorf("increment views: %w", err)
	}

	s.invalidate(ctx, id)
	return views, nil
}

func (s *bookService) invalidate(ctx context.Context, id uint) {
	_ = s.cache.Delete(ctx, s.cacheKey(id), avgRatingCacheKey, totalCacheKey)
}

// bookFromDraft validates the draft title and substitutes the documented
// default for every absent optional field.
func bookFromDraft(draft *model.BookDraft) (*model.Book, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, errors.ErrTitleRequired
	}

	book := &model.Book{
		Title:       title,
		Author:      DefaultAuthor,
		Publisher:   DefaultPublisher,
		Description: DefaultDescription,
		Category:    DefaultCategory,
		Price:       decimal.Zero,
	}

	if draft.Author != nil {
		book.Author = *draft.Author
	}
	if draft.Publisher != nil {
		book.Publisher = *draft.Publisher
	}
	if draft.PublishedDate != nil {
		book.PublishedDate = *draft.PublishedDate
	}
	if draft.Description != nil {
		book.Description = *draft.Description
	}
	if draft.Category != nil {
		book.Category = *draft.Category
	}
	if draft.Image != nil {
		book.Image = *draft.Image
	}
	if draft.URL != nil {
		book.URL = *draft.URL
	}
	if draft.Rating != nil {
		book.Rating = *draft.Rating
	}
	if draft.Price != nil {
		book.Price = *draft.Price
	}
	if draft.Featured != nil {
		book.Featured = *draft.Featured
	}

	return book, nil
}
