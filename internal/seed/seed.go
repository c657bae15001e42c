package seed

import (
	_ "embed"
	"fmt"
	"log"

	"pawhaven/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Options configure seeding behavior.
type Options struct {
	// DryRun logs what would be created without writing to the DB.
	DryRun bool
	// SkipBcrypt stores a plaintext password for speed. Development only.
	SkipBcrypt bool
	// MaxDays is the created_at backdating window for posts.
	MaxDays int
	// BatchSize bounds batched inserts.
	BatchSize int
}

// Seeder orchestrates demo data creation.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder returns a Seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
		opts:    opts,
	}
}

// ClearAll truncates all seeded tables. PostgreSQL only.
func (s *Seeder) ClearAll() error {
	log.Println("clearing existing data...")
	sql := `TRUNCATE TABLE product_reviews, store_reviews, products, stores,
		shelter_profiles, bookmarks, likes, comments, posts, profiles, users
		RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedCommunity creates users, posts, comments, likes, and bookmarks.
// Returns the created users for follow-up seeding.
func (s *Seeder) SeedCommunity(numUsers, numPosts int) ([]*models.User, error) {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
		if i > 0 && i%100 == 0 {
			log.Printf("created %d users...", i)
		}
	}
	log.Printf("created %d users", len(users))

	if len(users) == 0 || numPosts == 0 {
		return users, nil
	}

	posts := make([]*models.Post, 0, numPosts)
	batch := make([]*models.Post, 0, s.opts.BatchSize)
	for i := 0; i < numPosts; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		batch = append(batch, s.factory.BuildPost(author))
		if len(batch) >= s.opts.BatchSize {
			if err := s.factory.CreatePostsBatch(batch); err != nil {
				return nil, fmt.Errorf("create posts: %w", err)
			}
			posts = append(posts, batch...)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := s.factory.CreatePostsBatch(batch); err != nil {
			return nil, fmt.Errorf("create posts: %w", err)
		}
		posts = append(posts, batch...)
	}
	log.Printf("created %d posts", len(posts))

	if s.opts.DryRun {
		return users, nil
	}

	// Engagement: a handful of comments and reactions per post. Likes and
	// bookmarks use distinct users so the unique constraints never trip.
	for _, post := range posts {
		engaged := s.factory.rng.Perm(len(users))
		nComments := s.factory.rng.Intn(4)
		nLikes := s.factory.rng.Intn(min(len(users), 8))
		nBookmarks := s.factory.rng.Intn(min(len(users), 4))

		for i := 0; i < nComments; i++ {
			commenter := users[engaged[i%len(engaged)]]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return nil, fmt.Errorf("create comment: %w", err)
			}
		}
		for i := 0; i < nLikes; i++ {
			if err := s.factory.CreateLike(users[engaged[i]], post); err != nil {
				return nil, fmt.Errorf("create like: %w", err)
			}
		}
		for i := 0; i < nBookmarks; i++ {
			if err := s.factory.CreateBookmark(users[engaged[i]], post); err != nil {
				return nil, fmt.Errorf("create bookmark: %w", err)
			}
		}
	}
	log.Println("seeded engagement")

	return users, nil
}

// SeedApprovals creates shelters and stores across all three statuses, with
// products under the approved stores and reviews from distinct users.
func (s *Seeder) SeedApprovals(users []*models.User, numShelters, numStores, productsPerStore int) error {
	if len(users) == 0 {
		return nil
	}

	statuses := []models.ApprovalStatus{
		models.StatusApproved, models.StatusApproved, models.StatusPending, models.StatusRejected,
	}

	// Shelters: one per user, so walk users rather than sampling.
	for i := 0; i < numShelters && i < len(users); i++ {
		status := statuses[i%len(statuses)]
		if _, err := s.factory.CreateShelter(users[i], status); err != nil {
			return fmt.Errorf("create shelter: %w", err)
		}
	}
	log.Printf("created %d shelters", min(numShelters, len(users)))

	storeTypes := []models.StoreType{models.StoreTypePet, models.StoreTypeSupplies}
	for i := 0; i < numStores; i++ {
		owner := users[s.factory.rng.Intn(len(users))]
		status := statuses[i%len(statuses)]
		store, err := s.factory.CreateStore(owner, status, storeTypes[i%len(storeTypes)])
		if err != nil {
			return fmt.Errorf("create store: %w", err)
		}

		if store.Status != models.StatusApproved {
			continue
		}
		for p := 0; p < productsPerStore; p++ {
			product, err := s.factory.CreateProduct(store)
			if err != nil {
				return fmt.Errorf("create product: %w", err)
			}
			for _, idx := range s.factory.rng.Perm(len(users))[:s.factory.rng.Intn(min(len(users), 4))] {
				if _, err := s.factory.CreateProductReview(users[idx], product); err != nil {
					return fmt.Errorf("create product review: %w", err)
				}
			}
		}
		for _, idx := range s.factory.rng.Perm(len(users))[:s.factory.rng.Intn(min(len(users), 6))] {
			if _, err := s.factory.CreateStoreReview(users[idx], store); err != nil {
				return fmt.Errorf("create store review: %w", err)
			}
		}
	}
	log.Printf("created %d stores", numStores)

	return nil
}

//go:embed presets.yml
var presetsYAML []byte

// Preset is a named seeding profile.
type Preset struct {
	Users            int `yaml:"users"`
	Posts            int `yaml:"posts"`
	Shelters         int `yaml:"shelters"`
	Stores           int `yaml:"stores"`
	ProductsPerStore int `yaml:"products_per_store"`
}

// LoadPresets parses the embedded preset catalog.
func LoadPresets() (map[string]Preset, error) {
	var presets map[string]Preset
	if err := yaml.Unmarshal(presetsYAML, &presets); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	return presets, nil
}

// ApplyPreset runs a named preset from the embedded catalog.
func (s *Seeder) ApplyPreset(name string) error {
	presets, err := LoadPresets()
	if err != nil {
		return err
	}
	preset, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}

	log.Printf("applying preset %q: %+v", name, preset)
	users, err := s.SeedCommunity(preset.Users, preset.Posts)
	if err != nil {
		return err
	}
	return s.SeedApprovals(users, preset.Shelters, preset.Stores, preset.ProductsPerStore)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
