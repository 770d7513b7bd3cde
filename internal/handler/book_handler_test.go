package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"digitalshelf/internal/errors"
	"digitalshelf/internal/model"
)

// MockBookService is a mock implementation of service.BookService.
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) GetAll(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookService) GetByID(ctx context.Context, id uint) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookService) Search(ctx context.Context, query string) ([]model.Book, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookService) GetByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookService) GetByMinRating(ctx context.Context, minRating int) ([]model.Book, error) {
	args := m.Called(ctx, minRating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookService) GetFeatured(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookService) ListAuthors(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookService) AverageRating(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockBookService) TotalBooks(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookService) Create(ctx context.Context, draft *model.BookDraft) (*model.Book, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookService) Update(ctx context.Context, id uint, draft *model.BookDraft) (*model.Book, error) {
	args := m.Called(ctx, id, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookService) IncrementViews(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	return httpErr.Code
}

func TestBookHandler_Create_TitleRequired(t *testing.T) {
	mockSvc := new(MockBookService)
	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("*model.BookDraft")).
		Return(nil, errors.ErrTitleRequired)

	h := NewBookHandler(mockSvc)
	c, _ := newContext(http.MethodPost, "/api/books", `{"title":"  "}`)

	err := h.Create(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestBookHandler_Get_NotFound(t *testing.T) {
	mockSvc := new(MockBookService)
	mockSvc.On("GetByID", mock.Anything, uint(42)).Return(nil, errors.ErrBookNotFound)

	h := NewBookHandler(mockSvc)
	c, _ := newContext(http.MethodGet, "/api/books/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	err := h.Get(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestBookHandler_Get_InvalidID(t *testing.T) {
	mockSvc := new(MockBookService)
	h := NewBookHandler(mockSvc)
	c, _ := newContext(http.MethodGet, "/api/books/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.Get(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
	mockSvc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestBookHandler_IncrementViews(t *testing.T) {
	mockSvc := new(MockBookService)
	mockSvc.On("IncrementViews", mock.Anything, uint(7)).Return(int64(3), nil)

	h := NewBookHandler(mockSvc)
	c, rec := newContext(http.MethodPost, "/api/books/7/views", "")
	c.SetParamNames("id")
	c.SetParamValues("7")

	err := h.IncrementViews(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"views":3}`, rec.Body.String())
}

func TestBookHandler_Delete_NotFound(t *testing.T) {
	mockSvc := new(MockBookService)
	mockSvc.On("Delete", mock.Anything, uint(9)).Return(errors.ErrBookNotFound)

	h := NewBookHandler(mockSvc)
	c, _ := newContext(http.MethodDelete, "/api/books/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	err := h.Delete(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}
