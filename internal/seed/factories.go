// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pawhaven/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User` with a profile.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %+v", user)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}

	profile := &models.Profile{
		UserID:    user.ID,
		Phone:     fmt.Sprintf("0%d", gofakeit.Number(800000000, 999999999)),
		Country:   gofakeit.Country(),
		City:      gofakeit.City(),
		Score:     models.DefaultProfileScore,
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", user.Username),
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return user, nil
}

var seedTags = []models.PostTag{
	models.TagNone, models.TagMissing, models.TagAdoptionUpdate, models.TagQA,
	models.TagCare, models.TagHealth, models.TagSuccess, models.TagEvent,
	models.TagFound, models.TagOther,
}

// BuildPost constructs a post struct with a realistic created_at spread but
// does not persist it. Useful for batching.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:    gofakeit.Sentence(5),
		Content:  gofakeit.Paragraph(1, 3, 5, "\n"),
		AuthorID: user.ID,
		Tag:      seedTags[f.rng.Intn(len(seedTags))],
		Location: gofakeit.City(),
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample `models.Post` for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, overrides...)

	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		log.Printf("[dry-run] CreatePost: tag=%s user=%d title=%q", post.Tag, post.AuthorID, post.Title)
		return post, nil
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in a single DB call when possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if f.opts.DryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePostsBatch: %d posts (no DB write)", len(posts))
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided post authored by the provided user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  gofakeit.Sentence(8),
		AuthorID: user.ID,
		PostID:   post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `post`.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	return f.db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
}

// CreateBookmark persists a bookmark from `user` on `post`.
func (f *Factory) CreateBookmark(user *models.User, post *models.Post) error {
	return f.db.Create(&models.Bookmark{UserID: user.ID, PostID: post.ID}).Error
}

// CreateShelter constructs and persists a shelter profile for the given user
// in the given status.
func (f *Factory) CreateShelter(user *models.User, status models.ApprovalStatus, overrides ...func(*models.ShelterProfile)) (*models.ShelterProfile, error) {
	shelter := &models.ShelterProfile{
		UserID:             user.ID,
		Name:               gofakeit.Company() + " Shelter",
		Description:        gofakeit.Paragraph(1, 2, 8, " "),
		Address:            gofakeit.Street() + ", " + gofakeit.City(),
		Phone:              fmt.Sprintf("0%d", gofakeit.Number(800000000, 999999999)),
		Email:              gofakeit.Email(),
		VerificationDocURL: fmt.Sprintf("https://docs.pawhaven.dev/%s.pdf", gofakeit.UUID()),
		Status:             status,
	}

	for _, override := range overrides {
		override(shelter)
	}

	if err := f.db.Create(shelter).Error; err != nil {
		return nil, err
	}
	return shelter, nil
}

// CreateStore constructs and persists a store for the given owner in the
// given status.
func (f *Factory) CreateStore(owner *models.User, status models.ApprovalStatus, storeType models.StoreType, overrides ...func(*models.Store)) (*models.Store, error) {
	store := &models.Store{
		OwnerID:            owner.ID,
		Name:               gofakeit.Company(),
		Description:        gofakeit.Sentence(12),
		StoreType:          storeType,
		Status:             status,
		VerificationDocURL: fmt.Sprintf("https://docs.pawhaven.dev/%s.pdf", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(store)
	}

	if err := f.db.Create(store).Error; err != nil {
		return nil, err
	}
	return store, nil
}

// CreateProduct constructs and persists a product under the given store.
func (f *Factory) CreateProduct(store *models.Store, overrides ...func(*models.Product)) (*models.Product, error) {
	product := &models.Product{
		StoreID:     store.ID,
		Name:        gofakeit.PetName() + " " + gofakeit.Word(),
		Description: gofakeit.Sentence(10),
		Price:       decimal.NewFromFloat(gofakeit.Price(1, 500)).Round(2),
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/600/600", gofakeit.UUID()),
		Stock:       gofakeit.Number(0, 200),
	}

	for _, override := range overrides {
		override(product)
	}

	if err := f.db.Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// CreateStoreReview persists a review of `store` by `author`. The unique
// index limits each author to one review per store.
func (f *Factory) CreateStoreReview(author *models.User, store *models.Store) (*models.StoreReview, error) {
	review := &models.StoreReview{
		StoreID:  store.ID,
		AuthorID: author.ID,
		Rating:   gofakeit.Number(models.MinRating, models.MaxRating),
		Comment:  gofakeit.Sentence(10),
	}
	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// CreateProductReview persists a review of `product` by `author`.
func (f *Factory) CreateProductReview(author *models.User, product *models.Product) (*models.ProductReview, error) {
	review := &models.ProductReview{
		ProductID: product.ID,
		AuthorID:  author.ID,
		Rating:    gofakeit.Number(models.MinRating, models.MaxRating),
		Comment:   gofakeit.Sentence(10),
	}
	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}
