package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/lessonbooking/internal/domain"
	"github.com/Domenick1991/lessonbooking/internal/repository"
	"github.com/Domenick1991/lessonbooking/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCatalogUseCase is a mock implementation of catalog.CatalogUseCase
type MockCatalogUseCase struct {
	mock.Mock
}

func (m *MockCatalogUseCase) List(ctx context.Context) ([]domain.Lesson, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Lesson), args.Error(1)
}

func (m *MockCatalogUseCase) Search(ctx context.Context, query string) ([]domain.Lesson, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lesson), args.Error(1)
}

func (m *MockCatalogUseCase) Update(ctx context.Context, id int64, body map[string]any) error {
	args := m.Called(ctx, id, body)
	return args.Error(0)
}

func TestLessonHandler_list(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewLessonHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/lessons", nil)

	lessons := []domain.Lesson{
		{ID: 1, Name: "Piano Basics", Location: "London", Price: 25, Space: 4},
	}

	mockService.On("List", c.Request.Context()).Return(lessons, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Piano Basics")

	mockService.AssertExpectations(t)
}

func TestLessonHandler_list_StoreError(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewLessonHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/lessons", nil)

	mockService.On("List", c.Request.Context()).Return(([]domain.Lesson)(nil), assert.AnError)

	handler.list(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch lessons")
}

func TestLessonHandler_search(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewLessonHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/search?q=pia", nil)

	lessons := []domain.Lesson{
		{ID: 1, Name: "Piano Basics", Location: "London", Price: 25, Space: 4},
	}

	mockService.On("Search", c.Request.Context(), "pia").Return(lessons, nil)

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Piano Basics")

	mockService.AssertExpectations(t)
}

func TestLessonHandler_search_InvalidPattern(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewLessonHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/search?q=%28", nil)

	mockService.On("Search", c.Request.Context(), "(").Return(nil, catalog.ErrInvalidQuery)

	handler.search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid search pattern.")
}

func TestLessonHandler_search_StoreError(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewLessonHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/search?q=pia", nil)

	mockService.On("Search", c.Request.Context(), "pia").Return(nil, assert.AnError)

	handler.search(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Search failed.")
}

func TestLessonHandler_update(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewLessonHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "3"}}
	c.Request = httptest.NewRequest("PUT", "/lessons/3", strings.NewReader(`{"$inc":{"space":-1}}`))
	c.Request.Header.Set("Content-Type", "application/json")

	body := map[string]any{"$inc": map[string]any{"space": float64(-1)}}
	mockService.On("Update", c.Request.Context(), int64(3), body).Return(nil)

	handler.update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lesson updated")

	mockService.AssertExpectations(t)
}

func TestLessonHandler_update_NotFound(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewLessonHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "99"}}
	c.Request = httptest.NewRequest("PUT", "/lessons/99", strings.NewReader(`{"space":5}`))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Update", c.Request.Context(), int64(99), mock.Anything).
		Return(repository.ErrLessonNotFound)

	handler.update(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Lesson not found")
}

func TestLessonHandler_update_InvalidID(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewLessonHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest("PUT", "/lessons/abc", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Update")
}
