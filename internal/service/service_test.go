package service

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goserg/storeserver/internal/domain"
	"github.com/goserg/storeserver/internal/storage"
)

type memStorage struct {
	stores  map[uuid.UUID]domain.Store
	reviews map[uuid.UUID][]domain.Review
	hearts  map[uuid.UUID]map[uuid.UUID]bool
}

var _ storage.StoreStorage = (*memStorage)(nil)
var _ storage.ReviewStorage = (*memStorage)(nil)
var _ storage.HeartStorage = (*memStorage)(nil)

func newMemStorage() *memStorage {
	return &memStorage{
		stores:  make(map[uuid.UUID]domain.Store),
		reviews: make(map[uuid.UUID][]domain.Review),
		hearts:  make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (m *memStorage) CreateStore(_ context.Context, store domain.Store) error {
	for _, existing := range m.stores {
		if existing.Slug == store.Slug {
			return storage.ErrSlugTaken
		}
	}
	m.stores[store.ID] = store
	return nil
}

func (m *memStorage) UpdateStore(_ context.Context, store domain.Store) error {
	if _, ok := m.stores[store.ID]; !ok {
		return sql.ErrNoRows
	}
	for id, existing := range m.stores {
		if id != store.ID && existing.Slug == store.Slug {
			return storage.ErrSlugTaken
		}
	}
	m.stores[store.ID] = store
	return nil
}

func (m *memStorage) GetStore(_ context.Context, id uuid.UUID) (domain.Store, error) {
	store, ok := m.stores[id]
	if !ok {
		return domain.Store{}, sql.ErrNoRows
	}
	return store, nil
}

func (m *memStorage) GetStoreBySlug(_ context.Context, slug string) (domain.Store, error) {
	for _, store := range m.stores {
		if store.Slug == slug {
			return store, nil
		}
	}
	return domain.Store{}, sql.ErrNoRows
}

func (m *memStorage) sorted() []domain.Store {
	stores := make([]domain.Store, 0, len(m.stores))
	for _, store := range m.stores {
		stores = append(stores, store)
	}
	sort.SliceStable(stores, func(i, j int) bool {
		return stores[i].CreatedAt.After(stores[j].CreatedAt)
	})
	return stores
}

func (m *memStorage) ListStores(_ context.Context, limit, offset int64) ([]domain.Store, error) {
	stores := m.sorted()
	if offset >= int64(len(stores)) {
		return nil, nil
	}
	stores = stores[offset:]
	if int64(len(stores)) > limit {
		stores = stores[:limit]
	}
	return stores, nil
}

func (m *memStorage) CountStores(_ context.Context) (int64, error) {
	return int64(len(m.stores)), nil
}

func (m *memStorage) AllStores(_ context.Context) ([]domain.Store, error) {
	return m.sorted(), nil
}

func (m *memStorage) SearchStores(_ context.Context, query string, limit int64) ([]domain.Store, error) {
	var out []domain.Store
	for _, store := range m.sorted() {
		if int64(len(out)) == limit {
			break
		}
		if store.Name == query || store.Description == query {
			out = append(out, store)
		}
	}
	return out, nil
}

func (m *memStorage) StoresWithin(_ context.Context, b storage.Bounds) ([]domain.Store, error) {
	var out []domain.Store
	for _, store := range m.stores {
		loc := store.Location
		if loc.Lng >= b.MinLng && loc.Lng <= b.MaxLng && loc.Lat >= b.MinLat && loc.Lat <= b.MaxLat {
			out = append(out, store)
		}
	}
	return out, nil
}

func (m *memStorage) ListTags(_ context.Context) ([]domain.TagCount, error) {
	counts := make(map[string]int)
	for _, store := range m.stores {
		for _, tag := range store.Tags {
			counts[tag]++
		}
	}
	tags := make([]domain.TagCount, 0, len(counts))
	for tag, count := range counts {
		tags = append(tags, domain.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Count > tags[j].Count
	})
	return tags, nil
}

func (m *memStorage) StoresByTag(_ context.Context, tag string) ([]domain.Store, error) {
	var out []domain.Store
	for _, store := range m.sorted() {
		for _, t := range store.Tags {
			if t == tag {
				out = append(out, store)
				break
			}
		}
	}
	return out, nil
}

func (m *memStorage) TopStores(_ context.Context, minReviews, limit int64) ([]domain.Store, error) {
	var out []domain.Store
	for id, reviews := range m.reviews {
		if int64(len(reviews)) < minReviews {
			continue
		}
		store := m.stores[id]
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		store.AvgRating = float64(sum) / float64(len(reviews))
		store.ReviewCount = len(reviews)
		out = append(out, store)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgRating > out[j].AvgRating
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStorage) AddReview(_ context.Context, review domain.Review) error {
	m.reviews[review.StoreID] = append(m.reviews[review.StoreID], review)
	return nil
}

func (m *memStorage) StoreReviews(_ context.Context, storeID uuid.UUID) ([]domain.Review, error) {
	return m.reviews[storeID], nil
}

func (m *memStorage) AddHeart(_ context.Context, userID, storeID uuid.UUID) error {
	if m.hearts[userID] == nil {
		m.hearts[userID] = make(map[uuid.UUID]bool)
	}
	m.hearts[userID][storeID] = true
	return nil
}

func (m *memStorage) RemoveHeart(_ context.Context, userID, storeID uuid.UUID) error {
	delete(m.hearts[userID], storeID)
	return nil
}

func (m *memStorage) HeartedStoreIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(m.hearts[userID]))
	for id := range m.hearts[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memStorage) HeartedStores(_ context.Context, userID uuid.UUID) ([]domain.Store, error) {
	var out []domain.Store
	for _, store := range m.sorted() {
		if m.hearts[userID][store.ID] {
			out = append(out, store)
		}
	}
	return out, nil
}

func newTestService() (*StoreService, *memStorage) {
	st := newMemStorage()
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return New(st, st, st, l), st
}

func TestCreateStoreSlugRetry(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	author := uuid.New()

	first, err := svc.CreateStore(ctx, domain.Store{Name: "Coffee Shop", AuthorID: author})
	require.NoError(t, err)
	assert.Equal(t, "coffee-shop", first.Slug)

	second, err := svc.CreateStore(ctx, domain.Store{Name: "Coffee Shop", AuthorID: author})
	require.NoError(t, err)
	assert.Equal(t, "coffee-shop-1", second.Slug)

	third, err := svc.CreateStore(ctx, domain.Store{Name: "Coffee  Shop", AuthorID: author})
	require.NoError(t, err)
	assert.Equal(t, "coffee-shop-2", third.Slug)
}

func TestUpdateStoreOwnerOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	author := uuid.New()

	store, err := svc.CreateStore(ctx, domain.Store{Name: "Taqueria", AuthorID: author})
	require.NoError(t, err)

	store.Description = "tacos"
	_, err = svc.UpdateStore(ctx, store, uuid.New())
	require.ErrorIs(t, err, ErrNotOwner)

	updated, err := svc.UpdateStore(ctx, store, author)
	require.NoError(t, err)
	assert.Equal(t, "tacos", updated.Description)
	assert.Equal(t, "taqueria", updated.Slug)
}

func TestUpdateStoreKeepsSuffixedSlug(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	author := uuid.New()

	_, err := svc.CreateStore(ctx, domain.Store{Name: "Bakery", AuthorID: author})
	require.NoError(t, err)
	second, err := svc.CreateStore(ctx, domain.Store{Name: "Bakery", AuthorID: author})
	require.NoError(t, err)
	require.Equal(t, "bakery-1", second.Slug)

	// editing without renaming must not churn the slug
	second.Description = "bread"
	updated, err := svc.UpdateStore(ctx, second, author)
	require.NoError(t, err)
	assert.Equal(t, "bakery-1", updated.Slug)
}

func TestListPageClampsOutOfRange(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		id := uuid.New()
		st.stores[id] = domain.Store{
			ID:        id,
			Name:      "store",
			Slug:      uuid.NewString(),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}

	page, err := svc.ListPage(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, int64(9), page.Total)
	assert.Len(t, page.Stores, 1)

	first, err := svc.ListPage(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page)
	assert.Len(t, first.Stores, 4)
	// newest first
	assert.Equal(t, base.Add(8*time.Hour), first.Stores[0].CreatedAt)
}

func TestNearFiltersAndSorts(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	// roughly 0 km, 5.5 km and 22 km north of the origin
	for i, lat := range []float64{0, 0.05, 0.2} {
		id := uuid.New()
		st.stores[id] = domain.Store{
			ID:       id,
			Name:     []string{"here", "close", "far"}[i],
			Slug:     uuid.NewString(),
			Location: domain.Location{Lng: 0, Lat: lat},
		}
	}

	near, err := svc.Near(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, near, 2)
	assert.Equal(t, "here", near[0].Name)
	assert.Equal(t, "close", near[1].Name)
}

func TestToggleHeart(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	user := uuid.New()

	store, err := svc.CreateStore(ctx, domain.Store{Name: "Deli", AuthorID: uuid.New()})
	require.NoError(t, err)

	hearted, count, err := svc.ToggleHeart(ctx, user, store.ID)
	require.NoError(t, err)
	assert.True(t, hearted)
	assert.Equal(t, 1, count)

	hearted, count, err = svc.ToggleHeart(ctx, user, store.ID)
	require.NoError(t, err)
	assert.False(t, hearted)
	assert.Zero(t, count)

	stores, err := svc.HeartedStores(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, stores)
}

func TestSuggestUsesCache(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateStore(ctx, domain.Store{Name: "Blue Bottle", AuthorID: uuid.New()})
	require.NoError(t, err)
	_, err = svc.CreateStore(ctx, domain.Store{Name: "Blue Barn", AuthorID: uuid.New()})
	require.NoError(t, err)
	_, err = svc.CreateStore(ctx, domain.Store{Name: "Green Leaf", AuthorID: uuid.New()})
	require.NoError(t, err)

	got, err := svc.Suggest(ctx, "blue")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Blue Barn", got[0].Name)
	assert.Equal(t, "Blue Bottle", got[1].Name)
}

func TestNotifications(t *testing.T) {
	svc, _ := newTestService()
	ch := make(chan Notification, 1)
	svc.WithNotifications(ch)
	ctx := context.Background()

	store, err := svc.CreateStore(ctx, domain.Store{Name: "Noodle Bar", AuthorID: uuid.New()})
	require.NoError(t, err)
	n := <-ch
	assert.Equal(t, EventNewStore, n.Event)
	assert.Equal(t, "Noodle Bar", n.StoreName)

	_, err = svc.AddReview(ctx, domain.Review{
		StoreID:    store.ID,
		AuthorID:   uuid.New(),
		AuthorName: "alice",
		Text:       "great noodles",
		Rating:     5,
	})
	require.NoError(t, err)
	n = <-ch
	assert.Equal(t, EventNewReview, n.Event)

	// a full channel drops the event instead of blocking the request
	_, err = svc.CreateStore(ctx, domain.Store{Name: "Another", AuthorID: uuid.New()})
	require.NoError(t, err)
	_, err = svc.CreateStore(ctx, domain.Store{Name: "One More", AuthorID: uuid.New()})
	require.NoError(t, err)
}
