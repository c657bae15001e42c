package repository

import (
	"context"
	"errors"
	"time"

	"pawhaven/internal/cache"
	"pawhaven/internal/models"
	"pawhaven/internal/observability"

	"gorm.io/gorm"
)

// MarketplacePageSize is the fixed page size for marketplace browsing.
const MarketplacePageSize = 12

// MarketplacePage is one page of marketplace results. FoundStores carries
// approved stores whose name matched the search query, alongside the
// matching products.
type MarketplacePage struct {
	Products    []models.Product `json:"products"`
	FoundStores []models.Store   `json:"found_stores"`
	Total       int64            `json:"total"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
}

// StoreRepository defines persistence operations for stores and products.
type StoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	GetByID(ctx context.Context, id uint) (*models.Store, error)
	GetByIDWithProducts(ctx context.Context, id uint) (*models.Store, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Store, error)
	ListByStatus(ctx context.Context, status models.ApprovalStatus, limit, offset int) ([]models.Store, error)
	Update(ctx context.Context, store *models.Store) error
	SetStatus(ctx context.Context, id uint, status models.ApprovalStatus, reviewerID uint) (*models.Store, error)

	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ListProducts(ctx context.Context, storeID uint, query string) ([]models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
	Marketplace(ctx context.Context, query string, storeType models.StoreType, page int) (*MarketplacePage, error)
}

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository returns a new StoreRepository implementation.
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *models.Store) error {
	if err := r.db.WithContext(ctx).Create(store).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *storeRepository) GetByID(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Preload("Owner").First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Store", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &store, nil
}

func (r *storeRepository) GetByIDWithProducts(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Store", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &store, nil
}

func (r *storeRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&stores).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stores, nil
}

func (r *storeRepository) ListByStatus(ctx context.Context, status models.ApprovalStatus, limit, offset int) ([]models.Store, error) {
	var stores []models.Store
	q := r.db.WithContext(ctx).Preload("Owner")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&stores).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stores, nil
}

func (r *storeRepository) Update(ctx context.Context, store *models.Store) error {
	if err := r.db.WithContext(ctx).Save(store).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStore(ctx, store.ID)
	return nil
}

// SetStatus applies an approval decision and records who made it.
func (r *storeRepository) SetStatus(ctx context.Context, id uint, status models.ApprovalStatus, reviewerID uint) (*models.Store, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":              status,
			"reviewed_by_user_id": reviewerID,
			"reviewed_at":         now,
		})
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Store", id)
	}
	cache.InvalidateStore(ctx, id)
	return r.GetByID(ctx, id)
}

func (r *storeRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMarketplace(ctx)
	return nil
}

func (r *storeRepository) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Store").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &product, nil
}

// ListProducts lists a store's products for the manage view, optionally
// narrowed by a case-insensitive name substring.
func (r *storeRepository) ListProducts(ctx context.Context, storeID uint, query string) ([]models.Product, error) {
	var products []models.Product
	q := r.db.WithContext(ctx).Where("store_id = ?", storeID)
	if query != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%")
	}
	if err := q.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return products, nil
}

func (r *storeRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProduct(ctx, product.ID)
	return nil
}

func (r *storeRepository) DeleteProduct(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Product{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProduct(ctx, id)
	return nil
}

// Marketplace returns one page of products belonging to approved stores.
// When query is non-empty it is matched case-insensitively as a substring
// against product name, product description, and the owning store's name,
// and FoundStores lists the approved stores whose name matched directly.
// storeType narrows results to PET or SUPPLIES stores when set.
func (r *storeRepository) Marketplace(ctx context.Context, query string, storeType models.StoreType, page int) (*MarketplacePage, error) {
	if page < 1 {
		page = 1
	}

	result := &MarketplacePage{
		Products:    []models.Product{},
		FoundStores: []models.Store{},
		Page:        page,
		PageSize:    MarketplacePageSize,
	}

	fetch := func() error {
		defer observability.TrackQuery("marketplace", "products")()

		base := r.db.WithContext(ctx).
			Model(&models.Product{}).
			Joins("JOIN stores ON stores.id = products.store_id").
			Where("stores.status = ?", models.StatusApproved)

		if storeType != "" {
			base = base.Where("stores.store_type = ?", storeType)
		}
		if query != "" {
			like := "%" + query + "%"
			base = base.Where(
				"LOWER(products.name) LIKE LOWER(?) OR LOWER(products.description) LIKE LOWER(?) OR LOWER(stores.name) LIKE LOWER(?)",
				like, like, like,
			)
		}

		if err := base.Count(&result.Total).Error; err != nil {
			return models.NewInternalError(err)
		}

		if err := base.
			Preload("Store").
			Order("products.created_at DESC").
			Limit(MarketplacePageSize).
			Offset((page - 1) * MarketplacePageSize).
			Find(&result.Products).Error; err != nil {
			return models.NewInternalError(err)
		}

		if query != "" {
			like := "%" + query + "%"
			if err := r.db.WithContext(ctx).
				Where("status = ? AND LOWER(name) LIKE LOWER(?)", models.StatusApproved, like).
				Order("name ASC").
				Find(&result.FoundStores).Error; err != nil {
				return models.NewInternalError(err)
			}
		}
		return nil
	}

	// Only the unfiltered listing is cached; searches and type filters go
	// straight to the database.
	if query == "" && storeType == "" {
		if err := cache.Aside(ctx, cache.MarketplaceKey(page), result, cache.MarketplaceTTL, fetch); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return result, nil
}
