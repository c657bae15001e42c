package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pawhaven/internal/config"
	"pawhaven/internal/database"
	"pawhaven/internal/featureflags"
	"pawhaven/internal/models"
	"pawhaven/internal/repository"
	"pawhaven/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer builds a Server over an in-memory sqlite DB with real
// repositories and services. Redis is left nil; caching and rate limiting
// degrade gracefully.
func setupTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	shelterRepo := repository.NewShelterRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	s := &Server{
		config: &config.Config{
			JWTSecret: "test-secret-at-least-32-characters!",
			Env:       "test",
		},
		db:              db,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		postRepo:        postRepo,
		commentRepo:     commentRepo,
		shelterRepo:     shelterRepo,
		storeRepo:       storeRepo,
		reviewRepo:      reviewRepo,
		approvalService: service.NewApprovalService(shelterRepo, storeRepo),
		reviewService:   service.NewReviewService(reviewRepo, storeRepo),
		featureFlags:    featureflags.NewManager(""),
	}
	return s, db
}

// createTestUser inserts a user with a bcrypt password.
func createTestUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) *models.User {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Password123!abc"), bcrypt.DefaultCost)
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		IsAdmin:  isAdmin,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// asUser wires a handler behind a Locals("userID") shim, bypassing JWT.
func asUser(userID uint, handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return handler(c)
	}
}

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "comment ID", humanizeParam("commentId"))
	assert.Equal(t, "user ID", humanizeParam("userId"))
	assert.Equal(t, "slug", humanizeParam("slug"))
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		p := parsePagination(c, 20)
		return c.JSON(p)
	})

	tests := []struct {
		name  string
		query string
	}{
		{"defaults", ""},
		{"negative offset clamped", "?offset=-5"},
		{"limit above max clamped", "?limit=5000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)
			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestRespondAppErrorStatusMapping(t *testing.T) {
	app := fiber.New()
	app.Get("/nf", func(c *fiber.Ctx) error {
		return respondAppError(c, models.NewNotFoundError("Post", 1))
	})
	app.Get("/dup", func(c *fiber.Ctx) error {
		return respondAppError(c, models.NewDuplicateError("exists"))
	})
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return respondAppError(c, models.NewForbiddenError("no"))
	})

	cases := map[string]int{
		"/nf":        http.StatusNotFound,
		"/dup":       http.StatusConflict,
		"/forbidden": http.StatusForbidden,
	}
	for path, want := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		assert.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, path)
		_ = resp.Body.Close()
	}
}
