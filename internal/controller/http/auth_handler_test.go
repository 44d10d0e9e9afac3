package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/usecase"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthUseCase is a mock implementation of AuthUseCase
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(username, password)
	return args.String(0), args.Error(1)
}

var _ usecase.AuthUseCase = (*MockAuthUseCase)(nil)

func newAuthRouter(mockUseCase *MockAuthUseCase) *gin.Engine {
	handler := NewAuthHandler(mockUseCase, logger.New())
	router := setupTestRouter()
	router.POST("/api/admin/login", handler.Login)
	return router
}

func TestLogin_Success(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	router := newAuthRouter(mockUseCase)

	mockUseCase.On("Login", "admin", "secret").Return("signed-token", nil)

	body := bytes.NewBufferString(`{"username":"admin","password":"secret"}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/admin/login", body)
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "signed-token", response["token"])

	mockUseCase.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	router := newAuthRouter(mockUseCase)

	mockUseCase.On("Login", "admin", "wrong").Return("", usecase.ErrUnauthorized)

	body := bytes.NewBufferString(`{"username":"admin","password":"wrong"}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/admin/login", body)
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "invalid username or password", response["error"])

	mockUseCase.AssertExpectations(t)
}

func TestLogin_MissingFields(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	router := newAuthRouter(mockUseCase)

	mockUseCase.On("Login", "", "").Return("", usecase.ErrInvalidInput)

	body := bytes.NewBufferString(`{}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/admin/login", body)
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestLogin_MalformedBody(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	router := newAuthRouter(mockUseCase)

	body := bytes.NewBufferString(`{not json`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/admin/login", body)
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "Login")
}
