package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"digitalshelf/internal/errors"
	"digitalshelf/internal/model"
)

// MockBookRepository is a mock implementation of BookRepository.
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Save(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookRepository) Search(ctx context.Context, query string) ([]model.Book, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookRepository) FindByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookRepository) FindByMinRating(ctx context.Context, minRating int) ([]model.Book, error) {
	args := m.Called(ctx, minRating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookRepository) FindFeatured(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookRepository) ListAuthors(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookRepository) AverageRating(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockBookRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookRepository) IncrementViews(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestBookService_Create_Defaults(t *testing.T) {
	mockRepo := new(MockBookRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Book")).Return(nil)

	service := NewBookService(mockRepo, nil)
	book, err := service.Create(context.Background(), &model.BookDraft{Title: "Dune"})

	assert.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, DefaultAuthor, book.Author)
	assert.Equal(t, DefaultPublisher, book.Publisher)
	assert.Equal(t, DefaultDescription, book.Description)
	assert.Equal(t, DefaultCategory, book.Category)
	assert.Equal(t, "", book.Image)
	assert.Equal(t, "", book.URL)
	assert.Equal(t, "", book.PublishedDate)
	assert.Equal(t, 0, book.Rating)
	assert.True(t, book.Price.IsZero())
	assert.False(t, book.Featured)
	assert.Equal(t, int64(0), book.ViewCount)

	mockRepo.AssertExpectations(t)
}

func TestBookService_Create_KeepsProvidedFields(t *testing.T) {
	mockRepo := new(MockBookRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Book")).Return(nil)

	price := decimal.NewFromFloat(11.99)
	featured := true
	service := NewBookService(mockRepo, nil)
	book, err := service.Create(context.Background(), &model.BookDraft{
		Title:    "1984",
		Author:   strPtr("George Orwell"),
		Rating:   intPtr(5),
		Price:    &price,
		Featured: &featured,
	})

	assert.NoError(t, err)
	assert.Equal(t, "George Orwell", book.Author)
	assert.Equal(t, 5, book.Rating)
	assert.True(t, book.Price.Equal(price))
	assert.True(t, book.Featured)
	// Missing fields still defaulted.
	assert.Equal(t, DefaultPublisher, book.Publisher)

	mockRepo.AssertExpectations(t)
}

func TestBookService_Create_EmptyTitle(t *testing.T) {
	mockRepo := new(MockBookRepository)
	service := NewBookService(mockRepo, nil)

	for _, title := range []string{"", "   ", "\t\n"} {
		book, err := service.Create(context.Background(), &model.BookDraft{Title: title})
		assert.Equal(t, errors.ErrTitleRequired, err)
		assert.Nil(t, book)
	}

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookService_Update(t *testing.T) {
	t.Run("not found leaves storage untouched", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

		service := NewBookService(mockRepo, nil)
		book, err := service.Update(context.Background(), 42, &model.BookDraft{Title: "Dune"})

		assert.Equal(t, errors.ErrBookNotFound, err)
		assert.Nil(t, book)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("replaces fields, preserves id and views", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.Book{
			ID:        7,
			Title:     "Old Title",
			Author:    "Old Author",
			ViewCount: 12,
		}, nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Book")).Return(nil)

		service := NewBookService(mockRepo, nil)
		book, err := service.Update(context.Background(), 7, &model.BookDraft{Title: "New Title"})

		assert.NoError(t, err)
		assert.Equal(t, uint(7), book.ID)
		assert.Equal(t, "New Title", book.Title)
		assert.Equal(t, DefaultAuthor, book.Author)
		assert.Equal(t, int64(12), book.ViewCount)
		mockRepo.AssertExpectations(t)
	})
}

func TestBookService_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewBookService(mockRepo, nil)
		err := service.Delete(context.Background(), 99)

		assert.Equal(t, errors.ErrBookNotFound, err)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("removes existing record", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.Book{ID: 3, Title: "Dune"}, nil)
		mockRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

		service := NewBookService(mockRepo, nil)
		assert.NoError(t, service.Delete(context.Background(), 3))
		mockRepo.AssertExpectations(t)
	})
}

func TestBookService_IncrementViews(t *testing.T) {
	t.Run("returns new count", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("IncrementViews", mock.Anything, uint(5)).Return(int64(8), nil)

		service := NewBookService(mockRepo, nil)
		views, err := service.IncrementViews(context.Background(), 5)

		assert.NoError(t, err)
		assert.Equal(t, int64(8), views)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("IncrementViews", mock.Anything, uint(5)).Return(int64(0), gorm.ErrRecordNotFound)

		service := NewBookService(mockRepo, nil)
		views, err := service.IncrementViews(context.Background(), 5)

		assert.Equal(t, errors.ErrBookNotFound, err)
		assert.Equal(t, int64(0), views)
	})
}

func TestBookService_Search(t *testing.T) {
	all := []model.Book{{ID: 1, Title: "1984"}, {ID: 2, Title: "Dune"}}
	matched := []model.Book{{ID: 1, Title: "1984", Author: "George Orwell"}}

	t.Run("blank query lists all", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("FindAll", mock.Anything).Return(all, nil)

		service := NewBookService(mockRepo, nil)
		books, err := service.Search(context.Background(), "   ")

		assert.NoError(t, err)
		assert.Equal(t, all, books)
		mockRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("substring query trims and delegates", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("Search", mock.Anything, "Orwell").Return(matched, nil)

		service := NewBookService(mockRepo, nil)
		books, err := service.Search(context.Background(), " Orwell ")

		assert.NoError(t, err)
		assert.Equal(t, matched, books)
		mockRepo.AssertExpectations(t)
	})
}
