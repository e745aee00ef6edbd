package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/goserg/storeserver/internal/domain"
)

// ErrSlugTaken reports a unique-index violation on the store slug. The
// service treats it as the signal to retry with a numbered suffix.
var ErrSlugTaken = errors.New("slug already taken")

// Bounds is a lng/lat bounding box used to prefilter geo queries before
// exact distance is computed.
type Bounds struct {
	MinLng float64
	MaxLng float64
	MinLat float64
	MaxLat float64
}

// StoreStorage persists the store directory. Misses are reported as
// sql.ErrNoRows.
type StoreStorage interface {
	CreateStore(ctx context.Context, store domain.Store) error
	UpdateStore(ctx context.Context, store domain.Store) error
	GetStore(ctx context.Context, id uuid.UUID) (domain.Store, error)
	GetStoreBySlug(ctx context.Context, slug string) (domain.Store, error)
	ListStores(ctx context.Context, limit, offset int64) ([]domain.Store, error)
	CountStores(ctx context.Context) (int64, error)
	AllStores(ctx context.Context) ([]domain.Store, error)

	SearchStores(ctx context.Context, query string, limit int64) ([]domain.Store, error)
	StoresWithin(ctx context.Context, bounds Bounds) ([]domain.Store, error)

	ListTags(ctx context.Context) ([]domain.TagCount, error)
	StoresByTag(ctx context.Context, tag string) ([]domain.Store, error)
	TopStores(ctx context.Context, minReviews, limit int64) ([]domain.Store, error)
}

// ReviewStorage persists store reviews.
type ReviewStorage interface {
	AddReview(ctx context.Context, review domain.Review) error
	StoreReviews(ctx context.Context, storeID uuid.UUID) ([]domain.Review, error)
}

// HeartStorage persists the user/store heart relation.
type HeartStorage interface {
	AddHeart(ctx context.Context, userID, storeID uuid.UUID) error
	RemoveHeart(ctx context.Context, userID, storeID uuid.UUID) error
	HeartedStoreIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	HeartedStores(ctx context.Context, userID uuid.UUID) ([]domain.Store, error)
}
