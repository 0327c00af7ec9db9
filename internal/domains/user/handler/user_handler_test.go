package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookreview-backend/internal/domains/user"
	"bookreview-backend/internal/shared/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockService struct{ mock.Mock }

func (m *mockService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	args := m.Called(ctx, req)
	dto, _ := args.Get(0).(*user.UserDTO)
	return dto, args.Error(1)
}

func (m *mockService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*user.LoginResponse)
	return res, args.Error(1)
}

func newRouter(svc user.Service) *gin.Engine {
	h := NewUserHandler(svc)
	r := gin.New()
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	return r
}

func doJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSignup_Created(t *testing.T) {
	svc := new(mockService)
	svc.On("Register", mock.Anything, user.RegisterRequest{
		Username: "alice", Password: "password1", Email: "alice@example.com",
	}).Return(&user.UserDTO{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}, nil)

	w := doJSON(newRouter(svc), "/signup", `{"username":"alice","password":"password1","email":"alice@example.com"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "User registered successfully", body["message"])
	u, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", u["username"])
	assert.NotContains(t, u, "password")
	assert.NotContains(t, u, "passwordHash")
}

func TestSignup_Conflict(t *testing.T) {
	svc := new(mockService)
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, user.ErrEmailAlreadyExists)

	w := doJSON(newRouter(svc), "/signup", `{"username":"bob","password":"password1","email":"alice@example.com"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already exists", decode(t, w)["error"])
}

func TestSignup_ValidationDetails(t *testing.T) {
	svc := new(mockService)
	svc.On("Register", mock.Anything, mock.Anything).
		Return(nil, apperror.Validation("Validation failed", map[string]string{"password": "too short"}))

	w := doJSON(newRouter(svc), "/signup", `{"username":"bob","password":"x","email":"b@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, map[string]interface{}{"password": "too short"}, body["details"])
}

func TestSignup_MalformedBody(t *testing.T) {
	svc := new(mockService)

	w := doJSON(newRouter(svc), "/signup", `{"username":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decode(t, w)["error"])
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestLogin_OK(t *testing.T) {
	svc := new(mockService)
	svc.On("Login", mock.Anything, user.LoginRequest{Username: "alice", Password: "password1"}).
		Return(&user.LoginResponse{Message: "Login successful", Token: "abc", ExpiresAt: time.Now()}, nil)

	w := doJSON(newRouter(svc), "/login", `{"username":"alice","password":"password1"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "abc", body["token"])
	assert.Equal(t, "Login successful", body["message"])
}

func TestLogin_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid credentials", user.ErrInvalidCredentials, http.StatusUnauthorized},
		{"locked out", user.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("Login", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := doJSON(newRouter(svc), "/login", `{"username":"alice","password":"password1"}`)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
