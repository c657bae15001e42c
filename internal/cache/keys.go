package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	ProfileKeyPrefix     = "profile:%d"
	PostKeyPrefix        = "post:%d"
	ShelterKeyPrefix     = "shelter:%d"
	StoreKeyPrefix       = "store:%d"
	ProductKeyPrefix     = "product:%d"
	ShelterListKey       = "shelters:approved"
	MarketplaceKeyPrefix = "marketplace:p%d"
)

const (
	UserTTL        = 5 * time.Minute
	ProfileTTL     = 5 * time.Minute
	PostTTL        = 30 * time.Minute
	ShelterTTL     = 10 * time.Minute
	StoreTTL       = 10 * time.Minute
	ProductTTL     = 10 * time.Minute
	ShelterListTTL = 2 * time.Minute
	MarketplaceTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func ShelterKey(shelterID uint) string {
	return fmt.Sprintf(ShelterKeyPrefix, shelterID)
}

func StoreKey(storeID uint) string {
	return fmt.Sprintf(StoreKeyPrefix, storeID)
}

func ProductKey(productID uint) string {
	return fmt.Sprintf(ProductKeyPrefix, productID)
}

// MarketplaceKey caches the unfiltered marketplace page. Searches are never
// cached.
func MarketplaceKey(page int) string {
	return fmt.Sprintf(MarketplaceKeyPrefix, page)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, ProfileKey(userID))
}

func InvalidateShelter(ctx context.Context, shelterID uint) {
	Invalidate(ctx, ShelterKey(shelterID))
	Invalidate(ctx, ShelterListKey)
}

func InvalidateStore(ctx context.Context, storeID uint) {
	Invalidate(ctx, StoreKey(storeID))
	InvalidateMarketplace(ctx)
}

func InvalidateProduct(ctx context.Context, productID uint) {
	Invalidate(ctx, ProductKey(productID))
	InvalidateMarketplace(ctx)
}

// InvalidateMarketplace drops all cached marketplace pages.
func InvalidateMarketplace(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "marketplace:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
