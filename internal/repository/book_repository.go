package repository

import (
	"context"

	"gorm.io/gorm"

	"digitalshelf/internal/model"
)

// BookRepository defines book persistence operations.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	Save(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	FindAll(ctx context.Context) ([]model.Book, error)
	Search(ctx context.Context, query string) ([]model.Book, error)
	FindByAuthor(ctx context.Context, author string) ([]model.Book, error)
	FindByMinRating(ctx context.Context, minRating int) ([]model.Book, error)
	FindFeatured(ctx context.Context) ([]model.Book, error)
	ListAuthors(ctx context.Context) ([]string, error)
	AverageRating(ctx context.Context) (float64, error)
	Count(ctx context.Context) (int64, error)
	IncrementViews(ctx context.Context, id uint) (int64, error)
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create creates a new book.
func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// Save persists all fields of an existing book.
func (r *bookRepository) Save(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

// Delete removes a book permanently.
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Book{}, id).Error
}

// FindByID finds a book by ID.
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// FindAll lists every book in store order.
func (r *bookRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Search matches the query as a substring of title, author, or description.
func (r *bookRepository) Search(ctx context.Context, query string) ([]model.Book, error) {
	var books []model.Book
	like := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Where("title LIKE ? OR author LIKE ? OR description LIKE ?", like, like, like).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// FindByAuthor matches the author as a case-insensitive substring.
func (r *bookRepository) FindByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).
		Where("LOWER(author) LIKE LOWER(?)", "%"+author+"%").
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// FindByMinRating lists books rated at or above the threshold.
func (r *bookRepository) FindByMinRating(ctx context.Context, minRating int) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).
		Where("rating >= ?", minRating).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// FindFeatured lists featured books.
func (r *bookRepository) FindFeatured(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).
		Where("featured = ?", true).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// ListAuthors returns distinct author names.
func (r *bookRepository) ListAuthors(ctx context.Context) ([]string, error) {
	var authors []string
	if err := r.db.WithContext(ctx).Model(&model.Book{}).
		Distinct().Pluck("author", &authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

// AverageRating returns the mean rating across all books, 0 when empty.
func (r *bookRepository) AverageRating(ctx context.Context) (float64, error) {
	var avg float64
	if err := r.db.WithContext(ctx).Model(&model.Book{}).
		Select("COALESCE(AVG(rating), 0)").Scan(&avg).Error; err != nil {
		return 0, err
	}
	return avg, nil
}

// Count returns the total number of books.
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Book{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementViews bumps the view counter by one and returns the new value.
// The counter is incremented with a single UPDATE expression so concurrent
// calls on the same id all apply; read-modify-write would lose updates.
func (r *bookRepository) IncrementViews(ctx context.Context, id uint) (int64, error) {
	var views int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Book{}).
			Where("id = ?", id).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var book model.Book
		if err := tx.Select("view_count").First(&book, id).Error; err != nil {
			return err
		}
		views = book.ViewCount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return views, nil
}
