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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreateStore(t *testing.T) {
	s, db := setupTestServer(t)
	owner := createTestUser(t, db, "storeowner", false)

	app := fiber.New()
	app.Post("/stores", asUser(owner.ID, s.CreateStore))

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"name":                 "Paw Mart",
				"description":          "Everything for your pet",
				"store_type":           "SUPPLIES",
				"verification_doc_url": "https://docs/biz.pdf",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Statement instead of document",
			body: map[string]string{
				"name":                   "Paw Mart Two",
				"description":            "d",
				"store_type":             "PET",
				"verification_statement": "Registered company 0105561234567",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Unknown store type",
			body: map[string]string{
				"name":                 "Bad Type",
				"description":          "d",
				"store_type":           "FOOD",
				"verification_doc_url": "https://docs/biz.pdf",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "No verification material",
			body: map[string]string{
				"name":        "No Docs",
				"description": "d",
				"store_type":  "PET",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/stores", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var store models.Store
				assert.NoError(t, json.NewDecoder(resp.Body).Decode(&store))
				assert.Equal(t, models.StatusPending, store.Status)
			}
		})
	}

	// A user may own more than one store.
	var count int64
	assert.NoError(t, db.Model(&models.Store{}).Where("owner_id = ?", owner.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestAddProduct_RequiresApprovedStore(t *testing.T) {
	s, db := setupTestServer(t)
	owner := createTestUser(t, db, "productowner", false)

	store := &models.Store{
		OwnerID: owner.ID, Name: "Pending Pets", Description: "d",
		StoreType: models.StoreTypePet, Status: models.StatusPending,
		VerificationDocURL: "https://docs/biz.pdf",
	}
	assert.NoError(t, db.Create(store).Error)

	app := fiber.New()
	app.Post("/stores/:id/products", asUser(owner.ID, s.AddProduct))

	body, _ := json.Marshal(map[string]any{
		"name":        "Chew Toy",
		"description": "Indestructible",
		"price":       "12.50",
		"stock":       3,
	})

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/stores/%d/products", store.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Flip to APPROVED and the same request succeeds.
	assert.NoError(t, db.Model(store).Update("status", models.StatusApproved).Error)

	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/stores/%d/products", store.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var product models.Product
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&product))
	assert.True(t, product.Price.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, 3, product.Stock)

	// Bad price is a 400.
	body, _ = json.Marshal(map[string]string{"name": "Bad", "price": "free"})
	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/stores/%d/products", store.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStoreOwnership(t *testing.T) {
	s, db := setupTestServer(t)
	owner := createTestUser(t, db, "realowner", false)
	other := createTestUser(t, db, "notowner", false)

	store := &models.Store{
		OwnerID: owner.ID, Name: "Mine", Description: "d",
		StoreType: models.StoreTypeSupplies, Status: models.StatusApproved,
		VerificationDocURL: "https://docs/biz.pdf",
	}
	assert.NoError(t, db.Create(store).Error)

	app := fiber.New()
	app.Get("/owner/:id/manage", asUser(owner.ID, s.ManageStore))
	app.Get("/other/:id/manage", asUser(other.ID, s.ManageStore))
	app.Put("/other/:id", asUser(other.ID, s.UpdateStore))

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/owner/%d/manage", store.ID), nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/other/%d/manage", store.ID), nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := json.Marshal(map[string]string{"name": "Hijacked"})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/other/%d", store.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestManageStore_ProductFilter(t *testing.T) {
	s, db := setupTestServer(t)
	owner := createTestUser(t, db, "filterowner", false)

	store := &models.Store{
		OwnerID: owner.ID, Name: "Filters", Description: "d",
		StoreType: models.StoreTypeSupplies, Status: models.StatusApproved,
		VerificationDocURL: "https://docs/biz.pdf",
	}
	assert.NoError(t, db.Create(store).Error)
	assert.NoError(t, db.Create(&models.Product{
		StoreID: store.ID, Name: "Dog Leash", Description: "d", Price: decimal.RequireFromString("9.99"),
	}).Error)
	assert.NoError(t, db.Create(&models.Product{
		StoreID: store.ID, Name: "Cat Tree", Description: "d", Price: decimal.RequireFromString("49.00"),
	}).Error)

	app := fiber.New()
	app.Get("/stores/:id/manage", asUser(owner.ID, s.ManageStore))

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/stores/%d/manage?q=leash", store.ID), nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Products []models.Product `json:"products"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.Products, 1)
	assert.Equal(t, "Dog Leash", out.Products[0].Name)
}

func TestGetStore_PublicVisibility(t *testing.T) {
	s, db := setupTestServer(t)
	owner := createTestUser(t, db, "visowner", false)

	pending := &models.Store{
		OwnerID: owner.ID, Name: "Hidden Store", Description: "d",
		StoreType: models.StoreTypePet, Status: models.StatusPending,
		VerificationDocURL: "https://docs/biz.pdf",
	}
	approved := &models.Store{
		OwnerID: owner.ID, Name: "Open Store", Description: "d",
		StoreType: models.StoreTypePet, Status: models.StatusApproved,
		VerificationDocURL: "https://docs/biz.pdf",
	}
	assert.NoError(t, db.Create(pending).Error)
	assert.NoError(t, db.Create(approved).Error)

	app := fiber.New()
	app.Get("/stores/me", asUser(owner.ID, s.GetMyStores))
	app.Get("/stores/:id", s.GetStore)

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/stores/%d", pending.ID), nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/stores/%d", approved.ID), nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var detail struct {
		Store       models.Store `json:"store"`
		ReviewCount int64        `json:"review_count"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, "Open Store", detail.Store.Name)

	// The owner's own listing shows both, any status.
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/stores/me", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []models.Store
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&mine))
	assert.Len(t, mine, 2)
}

func TestProductLifecycle(t *testing.T) {
	s, db := setupTestServer(t)
	owner := createTestUser(t, db, "plowner", false)
	other := createTestUser(t, db, "plother", false)

	store := &models.Store{
		OwnerID: owner.ID, Name: "Lifecycle", Description: "d",
		StoreType: models.StoreTypeSupplies, Status: models.StatusApproved,
		VerificationDocURL: "https://docs/biz.pdf",
	}
	assert.NoError(t, db.Create(store).Error)
	product := &models.Product{
		StoreID: store.ID, Name: "Bird Cage", Description: "d",
		Price: decimal.RequireFromString("30.00"), Stock: 5,
	}
	assert.NoError(t, db.Create(product).Error)

	app := fiber.New()
	app.Get("/products/:id", s.GetProduct)
	app.Put("/owner/products/:id", asUser(owner.ID, s.UpdateProduct))
	app.Put("/other/products/:id", asUser(other.ID, s.UpdateProduct))
	app.Delete("/owner/products/:id", asUser(owner.ID, s.DeleteProduct))
	app.Delete("/other/products/:id", asUser(other.ID, s.DeleteProduct))

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", product.ID), nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := json.Marshal(map[string]string{"price": "25.00"})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/other/products/%d", product.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPut, fmt.Sprintf("/owner/products/%d", product.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Product
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("25.00")))

	resp, _ = app.Test(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/other/products/%d", product.ID), nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/owner/products/%d", product.ID), nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	assert.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
