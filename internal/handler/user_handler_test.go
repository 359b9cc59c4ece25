package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"todo/internal/auth"
	"todo/internal/handler"
	"todo/internal/model"
	"todo/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func setupUserRouter() (*gin.Engine, *MockUserRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	users := new(MockUserRepository)
	userHandler := handler.NewUserHandler(users, auth.NewTokenIssuer("test-secret", time.Hour))

	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	return r, users
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	return doJSON(r, http.MethodPost, path, string(raw))
}

func authBody(t *testing.T, resp *httptest.ResponseRecorder) handler.AuthResponse {
	t.Helper()
	var body handler.AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

func userWithPassword(t *testing.T, email, password string) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{ID: uuid.New(), Email: email, HashedPassword: string(hashed), Name: "Ada"}
}

func TestRegister(t *testing.T) {
	router, users := setupUserRouter()
	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	resp := postJSON(router, "/register", handler.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "password123"})

	require.Equal(t, http.StatusCreated, resp.Code)
	body := authBody(t, resp)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "Ada", body.User.Name)
	assert.Equal(t, "ada@example.com", body.User.Email)
	users.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	router, users := setupUserRouter()
	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(userWithPassword(t, "ada@example.com", "secret"), nil)

	resp := postJSON(router, "/register", handler.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "password123"})

	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "User with this email already exists", errorBody(t, resp))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_ConflictOnCreate(t *testing.T) {
	router, users := setupUserRouter()
	users.On("FindByEmail", mock.Anything, "race@example.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(repository.ErrConflict)

	resp := postJSON(router, "/register", handler.RegisterRequest{Name: "Racer", Email: "Race@Example.com", Password: "password123"})

	assert.Equal(t, http.StatusConflict, resp.Code)
	users.AssertExpectations(t)
}

func TestRegister_InvalidInput(t *testing.T) {
	router, users := setupUserRouter()

	resp := doJSON(router, http.MethodPost, "/register", `{"email":"not-an-email"}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	router, users := setupUserRouter()
	ada := userWithPassword(t, "ada@example.com", "password123")
	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(ada, nil)

	resp := postJSON(router, "/login", handler.LoginRequest{Email: "ada@example.com", Password: "password123"})

	require.Equal(t, http.StatusOK, resp.Code)
	body := authBody(t, resp)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, ada.ID.String(), body.User.ID)
	assert.Equal(t, ada.Email, body.User.Email)
}

func TestLogin_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		stored   *model.User
		password string
	}{
		{"wrong password", userWithPassword(t, "ada@example.com", "correct_password"), "wrong_password"},
		{"unknown email", nil, "password123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, users := setupUserRouter()
			if tt.stored == nil {
				users.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, nil)
			} else {
				users.On("FindByEmail", mock.Anything, "ada@example.com").Return(tt.stored, nil)
			}

			resp := postJSON(router, "/login", handler.LoginRequest{Email: "ada@example.com", Password: tt.password})

			assert.Equal(t, http.StatusUnauthorized, resp.Code)
			assert.Equal(t, "Invalid credentials", errorBody(t, resp))
			users.AssertExpectations(t)
		})
	}
}
