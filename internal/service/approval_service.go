// Package service holds domain workflows that span repositories.
package service

import (
	"context"
	"strings"

	"pawhaven/internal/models"
	"pawhaven/internal/observability"
	"pawhaven/internal/repository"
	"pawhaven/internal/validation"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// ApprovalService owns the shelter and store approval workflow: registration
// into PENDING, owner-scoped edits that can never touch status, and admin
// decisions that can move any entity between the three statuses at any time.
type ApprovalService struct {
	shelterRepo repository.ShelterRepository
	storeRepo   repository.StoreRepository
}

// NewApprovalService returns a new ApprovalService.
func NewApprovalService(shelterRepo repository.ShelterRepository, storeRepo repository.StoreRepository) *ApprovalService {
	return &ApprovalService{
		shelterRepo: shelterRepo,
		storeRepo:   storeRepo,
	}
}

// RegisterShelterInput carries the fields a user submits to request a
// shelter profile.
type RegisterShelterInput struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	ProfileImageURL    string `json:"profile_image_url"`
	CoverImageURL      string `json:"cover_image_url"`
	VerificationDocURL string `json:"verification_doc_url"`
}

// UpdateShelterInput carries owner-editable shelter fields. Status is
// deliberately absent.
type UpdateShelterInput struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Address         *string `json:"address"`
	Phone           *string `json:"phone"`
	Email           *string `json:"email"`
	ProfileImageURL *string `json:"profile_image_url"`
	CoverImageURL   *string `json:"cover_image_url"`
}

// RegisterShelter creates a PENDING shelter profile for the user. The unique
// index on user_id makes a second registration fail with DUPLICATE.
func (s *ApprovalService) RegisterShelter(ctx context.Context, userID uint, in RegisterShelterInput) (*models.ShelterProfile, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Shelter name is required")
	}
	if strings.TrimSpace(in.VerificationDocURL) == "" {
		return nil, models.NewValidationError("A verification document is required")
	}
	if err := validation.ValidatePhone(in.Phone); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	shelter := &models.ShelterProfile{
		UserID:             userID,
		Name:               in.Name,
		Description:        in.Description,
		Address:            in.Address,
		Phone:              in.Phone,
		Email:              in.Email,
		ProfileImageURL:    in.ProfileImageURL,
		CoverImageURL:      in.CoverImageURL,
		VerificationDocURL: in.VerificationDocURL,
		Status:             models.StatusPending,
	}
	if err := s.shelterRepo.Create(ctx, shelter); err != nil {
		return nil, err
	}
	return shelter, nil
}

// GetMyShelter returns the caller's shelter profile, any status.
func (s *ApprovalService) GetMyShelter(ctx context.Context, userID uint) (*models.ShelterProfile, error) {
	shelter, err := s.shelterRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if shelter == nil {
		return nil, models.NewNotFoundError("Shelter profile", userID)
	}
	return shelter, nil
}

// UpdateMyShelter applies whitelisted edits to the caller's own shelter.
// A rejected or pending shelter stays editable; status never changes here.
func (s *ApprovalService) UpdateMyShelter(ctx context.Context, userID uint, in UpdateShelterInput) (*models.ShelterProfile, error) {
	shelter, err := s.GetMyShelter(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Phone != nil {
		if err := validation.ValidatePhone(*in.Phone); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		shelter.Phone = *in.Phone
	}
	if in.Email != nil && *in.Email != "" {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		shelter.Email = *in.Email
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, models.NewValidationError("Shelter name cannot be empty")
		}
		shelter.Name = *in.Name
	}
	if in.Description != nil {
		shelter.Description = *in.Description
	}
	if in.Address != nil {
		shelter.Address = *in.Address
	}
	if in.ProfileImageURL != nil {
		shelter.ProfileImageURL = *in.ProfileImageURL
	}
	if in.CoverImageURL != nil {
		shelter.CoverImageURL = *in.CoverImageURL
	}

	if err := s.shelterRepo.Update(ctx, shelter); err != nil {
		return nil, err
	}
	return shelter, nil
}

// SetShelterStatus applies an admin decision. Transitions are unrestricted;
// approving a rejected shelter or re-rejecting an approved one are both legal.
func (s *ApprovalService) SetShelterStatus(ctx context.Context, shelterID uint, status models.ApprovalStatus, reviewerID uint) (*models.ShelterProfile, error) {
	if !status.Valid() {
		return nil, models.NewValidationError("Invalid status")
	}
	span, ctx := observability.NewSpan(ctx, "approval.SetShelterStatus")
	defer span.End()
	span.AddAttributes(
		attribute.Int("shelter.id", int(shelterID)),
		attribute.String("decision", string(status)),
	)

	shelter, err := s.shelterRepo.SetStatus(ctx, shelterID, status, reviewerID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	observability.RecordApprovalDecision("shelter", strings.ToLower(string(status)))
	observability.LogApprovalDecision(ctx, "shelter", shelterID, string(status), reviewerID)
	return shelter, nil
}

// RegisterStoreInput carries the fields a user submits to request a store.
type RegisterStoreInput struct {
	Name                  string `json:"name"`
	Description           string `json:"description"`
	StoreType             string `json:"store_type"`
	ProfileImageURL       string `json:"profile_image_url"`
	CoverImageURL         string `json:"cover_image_url"`
	VerificationDocURL    string `json:"verification_doc_url"`
	VerificationStatement string `json:"verification_statement"`
}

// UpdateStoreInput carries owner-editable store fields.
type UpdateStoreInput struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	ProfileImageURL *string `json:"profile_image_url"`
	CoverImageURL   *string `json:"cover_image_url"`
}

// RegisterStore creates a PENDING store. Users may own several stores; every
// new one starts its own approval cycle.
func (s *ApprovalService) RegisterStore(ctx context.Context, userID uint, in RegisterStoreInput) (*models.Store, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Store name is required")
	}
	storeType := models.StoreType(in.StoreType)
	if !storeType.Valid() {
		return nil, models.NewValidationError("store_type must be PET or SUPPLIES")
	}
	if err := validation.ValidateStoreVerification(in.VerificationDocURL, in.VerificationStatement); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	store := &models.Store{
		OwnerID:               userID,
		Name:                  in.Name,
		Description:           in.Description,
		StoreType:             storeType,
		Status:                models.StatusPending,
		ProfileImageURL:       in.ProfileImageURL,
		CoverImageURL:         in.CoverImageURL,
		VerificationDocURL:    in.VerificationDocURL,
		VerificationStatement: in.VerificationStatement,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// getOwnedStore loads a store and enforces ownership with 403 for
// non-owners, matching the manage/edit surface.
func (s *ApprovalService) getOwnedStore(ctx context.Context, userID, storeID uint) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store.OwnerID != userID {
		return nil, models.NewForbiddenError("You do not own this store")
	}
	return store, nil
}

// GetManagedStore returns the store for its owner, any status.
func (s *ApprovalService) GetManagedStore(ctx context.Context, userID, storeID uint) (*models.Store, error) {
	store, err := s.getOwnedStore(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	full, err := s.storeRepo.GetByIDWithProducts(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	return full, nil
}

// UpdateStore applies whitelisted edits to an owned store. Status and
// verification material are untouchable here.
func (s *ApprovalService) UpdateStore(ctx context.Context, userID, storeID uint, in UpdateStoreInput) (*models.Store, error) {
	store, err := s.getOwnedStore(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, models.NewValidationError("Store name cannot be empty")
		}
		store.Name = *in.Name
	}
	if in.Description != nil {
		store.Description = *in.Description
	}
	if in.ProfileImageURL != nil {
		store.ProfileImageURL = *in.ProfileImageURL
	}
	if in.CoverImageURL != nil {
		store.CoverImageURL = *in.CoverImageURL
	}

	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// SetStoreStatus applies an admin decision to a store.
func (s *ApprovalService) SetStoreStatus(ctx context.Context, storeID uint, status models.ApprovalStatus, reviewerID uint) (*models.Store, error) {
	if !status.Valid() {
		return nil, models.NewValidationError("Invalid status")
	}
	span, ctx := observability.NewSpan(ctx, "approval.SetStoreStatus")
	defer span.End()
	span.AddAttributes(
		attribute.Int("store.id", int(storeID)),
		attribute.String("decision", string(status)),
	)

	store, err := s.storeRepo.SetStatus(ctx, storeID, status, reviewerID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	observability.RecordApprovalDecision("store", strings.ToLower(string(status)))
	observability.LogApprovalDecision(ctx, "store", storeID, string(status), reviewerID)
	return store, nil
}

// ProductInput carries product fields for create and update.
type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
	Stock       *int   `json:"stock"`
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, models.NewValidationError("price must be a decimal number")
	}
	if price.IsNegative() {
		return decimal.Zero, models.NewValidationError("price cannot be negative")
	}
	return price.Round(2), nil
}

// AddProduct creates a product under an owned store. The store must be
// APPROVED at this moment; the gate is not re-checked for existing products
// if the store's status later changes.
func (s *ApprovalService) AddProduct(ctx context.Context, userID, storeID uint, in ProductInput) (*models.Product, error) {
	store, err := s.getOwnedStore(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	if store.Status != models.StatusApproved {
		return nil, models.NewForbiddenError("Store must be approved before adding products")
	}

	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Product name is required")
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	stock := 0
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, models.NewValidationError("stock cannot be negative")
		}
		stock = *in.Stock
	}

	product := &models.Product{
		StoreID:     store.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		ImageURL:    in.ImageURL,
		Stock:       stock,
	}
	if err := s.storeRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// getOwnedProduct loads a product and enforces that the caller owns its
// parent store.
func (s *ApprovalService) getOwnedProduct(ctx context.Context, userID, productID uint) (*models.Product, error) {
	product, err := s.storeRepo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Store == nil || product.Store.OwnerID != userID {
		return nil, models.NewForbiddenError("You do not own this product's store")
	}
	return product, nil
}

// UpdateProduct edits a product owned via its parent store.
func (s *ApprovalService) UpdateProduct(ctx context.Context, userID, productID uint, in ProductInput) (*models.Product, error) {
	product, err := s.getOwnedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.Price != "" {
		price, err := parsePrice(in.Price)
		if err != nil {
			return nil, err
		}
		product.Price = price
	}
	if in.ImageURL != "" {
		product.ImageURL = in.ImageURL
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, models.NewValidationError("stock cannot be negative")
		}
		product.Stock = *in.Stock
	}

	if err := s.storeRepo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product owned via its parent store.
func (s *ApprovalService) DeleteProduct(ctx context.Context, userID, productID uint) error {
	product, err := s.getOwnedProduct(ctx, userID, productID)
	if err != nil {
		return err
	}
	return s.storeRepo.DeleteProduct(ctx, product.ID)
}
