package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pawhaven/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestSignup(t *testing.T) {
	s, db := setupTestServer(t)
	app := fiber.New()
	app.Post("/signup", s.Signup)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username":         "testuser",
				"email":            "test@example.com",
				"phone":            "0812345678",
				"password":         "Password123!abc",
				"confirm_password": "Password123!abc",
				"country":          "Thailand",
				"city":             "Bangkok",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate username",
			body: map[string]string{
				"username":         "testuser",
				"email":            "other@example.com",
				"password":         "Password123!abc",
				"confirm_password": "Password123!abc",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Password mismatch",
			body: map[string]string{
				"username":         "another",
				"email":            "another@example.com",
				"password":         "Password123!abc",
				"confirm_password": "different123!ABC",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Short password accepted",
			body: map[string]string{
				"username":         "brief",
				"email":            "brief@example.com",
				"password":         "p1",
				"confirm_password": "p1",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Overlong password",
			body: map[string]string{
				"username":         "verbose",
				"email":            "verbose@example.com",
				"password":         strings.Repeat("a", 73),
				"confirm_password": strings.Repeat("a", 73),
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid phone",
			body: map[string]string{
				"username":         "phoney",
				"email":            "phoney@example.com",
				"phone":            "12345",
				"password":         "Password123!abc",
				"confirm_password": "Password123!abc",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}

	// Profile must be created alongside the user.
	var profile models.Profile
	var user models.User
	assert.NoError(t, db.Where("username = ?", "testuser").First(&user).Error)
	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, models.DefaultProfileScore, profile.Score)
	assert.Equal(t, "0812345678", profile.Phone)
}

// Registration with a minimal password must carry through to a working login.
func TestSignupThenLogin_ShortPassword(t *testing.T) {
	s, _ := setupTestServer(t)
	app := fiber.New()
	app.Post("/signup", s.Signup)
	app.Post("/login", s.Login)

	signup, _ := json.Marshal(map[string]string{
		"username":         "alice",
		"email":            "alice@example.com",
		"phone":            "0911111111",
		"password":         "p1",
		"confirm_password": "p1",
	})
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(signup))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	login, _ := json.Marshal(map[string]string{
		"identifier": "alice",
		"password":   "p1",
	})
	req = httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(login))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Token)
}

func TestLogin(t *testing.T) {
	s, db := setupTestServer(t)
	app := fiber.New()
	app.Post("/login", s.Login)

	createTestUser(t, db, "loginuser", false)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "By username",
			body: map[string]string{
				"identifier": "loginuser",
				"password":   "Password123!abc",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "By email",
			body: map[string]string{
				"identifier": "loginuser@example.com",
				"password":   "Password123!abc",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Wrong password",
			body: map[string]string{
				"identifier": "loginuser",
				"password":   "not-the-password",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Unknown user",
			body: map[string]string{
				"identifier": "nobody",
				"password":   "Password123!abc",
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAuthRequired(t *testing.T) {
	s, db := setupTestServer(t)
	app := fiber.New()
	app.Get("/secure", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})

	user := createTestUser(t, db, "tokenuser", false)
	token, err := s.generateToken(user.ID, user.Username)
	assert.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
