package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pawhaven/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRegisterShelter(t *testing.T) {
	s, db := setupTestServer(t)
	user := createTestUser(t, db, "shelterreg", false)

	app := fiber.New()
	app.Post("/shelters/register", asUser(user.ID, s.RegisterShelter))

	valid := map[string]string{
		"name":                 "Happy Tails",
		"description":          "A safe place",
		"address":              "1 Main St",
		"phone":                "0812345678",
		"email":                "shelter@example.com",
		"verification_doc_url": "https://docs/x.pdf",
	}

	body, _ := json.Marshal(valid)
	req := httptest.NewRequest(http.MethodPost, "/shelters/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var shelter models.ShelterProfile
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&shelter))
	assert.Equal(t, models.StatusPending, shelter.Status)

	// A second registration for the same user hits the unique index.
	req = httptest.NewRequest(http.MethodPost, "/shelters/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Missing verification document is rejected.
	user2 := createTestUser(t, db, "shelterreg2", false)
	app.Post("/other/register", asUser(user2.ID, s.RegisterShelter))
	invalid := map[string]string{"name": "No Docs"}
	body, _ = json.Marshal(invalid)
	req = httptest.NewRequest(http.MethodPost, "/other/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestShelterVisibility(t *testing.T) {
	s, db := setupTestServer(t)
	approvedOwner := createTestUser(t, db, "approvedshelter", false)
	pendingOwner := createTestUser(t, db, "pendingshelter", false)

	approved := &models.ShelterProfile{
		UserID: approvedOwner.ID, Name: "Visible", Description: "d", Address: "a",
		Phone: "0812345678", Email: "v@e.com", VerificationDocURL: "https://x/d.pdf",
		Status: models.StatusApproved,
	}
	pending := &models.ShelterProfile{
		UserID: pendingOwner.ID, Name: "Hidden", Description: "d", Address: "a",
		Phone: "0812345678", Email: "h@e.com", VerificationDocURL: "https://x/d.pdf",
		Status: models.StatusPending,
	}
	assert.NoError(t, db.Create(approved).Error)
	assert.NoError(t, db.Create(pending).Error)

	app := fiber.New()
	app.Get("/shelters", s.GetShelters)
	app.Get("/shelters/:id", s.GetShelter)
	app.Get("/me", asUser(pendingOwner.ID, s.GetMyShelter))

	// Public list contains only the approved shelter.
	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/shelters", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []models.ShelterProfile
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	assert.Len(t, listed, 1)
	assert.Equal(t, "Visible", listed[0].Name)

	// Public detail of a pending shelter reads as 404.
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/shelters/%d", pending.ID), nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/shelters/%d", approved.ID), nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The owner still sees their pending shelter.
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var mine models.ShelterProfile
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&mine))
	assert.Equal(t, models.StatusPending, mine.Status)
}

func TestUpdateMyShelter_CannotTouchStatus(t *testing.T) {
	s, db := setupTestServer(t)
	owner := createTestUser(t, db, "editshelter", false)

	shelter := &models.ShelterProfile{
		UserID: owner.ID, Name: "Before", Description: "d", Address: "a",
		Phone: "0812345678", Email: "b@e.com", VerificationDocURL: "https://x/d.pdf",
		Status: models.StatusRejected,
	}
	assert.NoError(t, db.Create(shelter).Error)

	app := fiber.New()
	app.Put("/me", asUser(owner.ID, s.UpdateMyShelter))

	// A status field in the payload is simply ignored by the whitelist.
	body := []byte(`{"name":"After","status":"APPROVED"}`)
	req := httptest.NewRequest(http.MethodPut, "/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.ShelterProfile
	assert.NoError(t, db.First(&updated, shelter.ID).Error)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, models.StatusRejected, updated.Status)
}
