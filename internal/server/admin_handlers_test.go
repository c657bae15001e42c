package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pawhaven/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestAdminRequired(t *testing.T) {
	s, db := setupTestServer(t)
	admin := createTestUser(t, db, "realadmin", true)
	regular := createTestUser(t, db, "regularjoe", false)

	app := fiber.New()
	guarded := func(userID uint) fiber.Handler {
		return func(c *fiber.Ctx) error {
			c.Locals("userID", userID)
			return c.Next()
		}
	}
	app.Get("/admin/ok", guarded(admin.ID), s.AdminRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/admin/denied", guarded(regular.ID), s.AdminRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/admin/ok", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/admin/denied", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminDashboard(t *testing.T) {
	s, db := setupTestServer(t)
	admin := createTestUser(t, db, "dashadmin", true)
	user := createTestUser(t, db, "dashuser", false)

	assert.NoError(t, db.Create(&models.Post{Title: "t", Content: "c", AuthorID: user.ID, Tag: models.TagNone}).Error)
	assert.NoError(t, db.Create(&models.ShelterProfile{
		UserID: user.ID, Name: "S", Description: "d", Address: "a",
		Phone: "0812345678", Email: "s@e.com", VerificationDocURL: "https://x/d.pdf",
		Status: models.StatusPending,
	}).Error)
	assert.NoError(t, db.Create(&models.Store{
		OwnerID: user.ID, Name: "St", Description: "d",
		StoreType: models.StoreTypePet, Status: models.StatusApproved,
		VerificationDocURL: "https://x/d.pdf",
	}).Error)

	app := fiber.New()
	app.Get("/admin/dashboard", asUser(admin.ID, s.AdminDashboard))

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Totals  map[string]int64 `json:"totals"`
		Pending map[string]int64 `json:"pending"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, int64(2), out.Totals["users"])
	assert.Equal(t, int64(1), out.Totals["posts"])
	assert.Equal(t, int64(1), out.Totals["shelters"])
	assert.Equal(t, int64(1), out.Totals["stores"])
	assert.Equal(t, int64(1), out.Pending["shelters"])
	assert.Equal(t, int64(0), out.Pending["stores"])
}

func TestApprovalWorkflow(t *testing.T) {
	s, db := setupTestServer(t)
	admin := createTestUser(t, db, "approver", true)
	owner := createTestUser(t, db, "applicant", false)

	shelter := &models.ShelterProfile{
		UserID: owner.ID, Name: "Waiting", Description: "d", Address: "a",
		Phone: "0812345678", Email: "w@e.com", VerificationDocURL: "https://x/d.pdf",
		Status: models.StatusPending,
	}
	store := &models.Store{
		OwnerID: owner.ID, Name: "Waiting Store", Description: "d",
		StoreType: models.StoreTypeSupplies, Status: models.StatusPending,
		VerificationDocURL: "https://x/d.pdf",
	}
	assert.NoError(t, db.Create(shelter).Error)
	assert.NoError(t, db.Create(store).Error)

	app := fiber.New()
	app.Get("/admin/shelters/pending", asUser(admin.ID, s.GetPendingShelters))
	app.Get("/admin/stores/pending", asUser(admin.ID, s.GetPendingStores))
	app.Post("/admin/shelters/:id/approve", asUser(admin.ID, s.ApproveShelter))
	app.Post("/admin/stores/:id/reject", asUser(admin.ID, s.RejectStore))

	// Both show up in the pending queues.
	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/admin/shelters/pending", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var shelters []models.ShelterProfile
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&shelters))
	assert.Len(t, shelters, 1)

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/admin/stores/pending", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var stores []models.Store
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&stores))
	assert.Len(t, stores, 1)

	// Approve the shelter; the decision is audited.
	resp, _ = app.Test(httptest.NewRequest(http.MethodPost, fmt.Sprintf("/admin/shelters/%d/approve", shelter.ID), nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var decided models.ShelterProfile
	assert.NoError(t, db.First(&decided, shelter.ID).Error)
	assert.Equal(t, models.StatusApproved, decided.Status)
	if assert.NotNil(t, decided.ReviewedByUserID) {
		assert.Equal(t, admin.ID, *decided.ReviewedByUserID)
	}
	assert.NotNil(t, decided.ReviewedAt)

	// Reject the store.
	resp, _ = app.Test(httptest.NewRequest(http.MethodPost, fmt.Sprintf("/admin/stores/%d/reject", store.ID), nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var decidedStore models.Store
	assert.NoError(t, db.First(&decidedStore, store.ID).Error)
	assert.Equal(t, models.StatusRejected, decidedStore.Status)

	// Deciding on a missing entity is a 404.
	resp, _ = app.Test(httptest.NewRequest(http.MethodPost, "/admin/shelters/9999/approve", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteUserGuards(t *testing.T) {
	s, db := setupTestServer(t)
	admin := createTestUser(t, db, "deleteadmin", true)
	otherAdmin := createTestUser(t, db, "peeradmin", true)
	victim := createTestUser(t, db, "deleteme", false)

	app := fiber.New()
	app.Delete("/admin/users/:id", asUser(admin.ID, s.DeleteUser))

	// Self-deletion is refused.
	resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/users/%d", admin.ID), nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// So is deleting another admin.
	resp, _ = app.Test(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/users/%d", otherAdmin.ID), nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A regular user goes away.
	resp, _ = app.Test(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/users/%d", victim.ID), nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	assert.NoError(t, db.Model(&models.User{}).Where("id = ?", victim.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	resp, _ = app.Test(httptest.NewRequest(http.MethodDelete, "/admin/users/9999", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
