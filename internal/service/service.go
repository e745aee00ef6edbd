package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"github.com/goserg/storeserver/internal/cache/mem"
	"github.com/goserg/storeserver/internal/domain"
	"github.com/goserg/storeserver/internal/geo"
	"github.com/goserg/storeserver/internal/storage"
)

const (
	pageSize      = 4
	searchLimit   = 5
	nearRadiusM   = 10000
	nearLimit     = 10
	topMinReviews = 2
	topLimit      = 10

	// slug collisions are rare, the retry loop is a safety net against a
	// runaway suffix
	maxSlugRetries = 100
)

// ErrNotOwner rejects edits from anyone but the store's author.
var ErrNotOwner = errors.New("you must own a store in order to edit it")

// Notification is pushed to the optional notifier on store and review
// mutations.
type Notification struct {
	Event     string
	StoreName string
	Text      string
}

const (
	EventNewStore  = "new store"
	EventNewReview = "new review"
)

type StoreService struct {
	storeStorage  storage.StoreStorage
	reviewStorage storage.ReviewStorage
	heartStorage  storage.HeartStorage
	cache         *mem.Cache
	notifications chan<- Notification
	log           *logrus.Entry
}

func New(
	st storage.StoreStorage,
	rs storage.ReviewStorage,
	hs storage.HeartStorage,
	l *logrus.Logger,
) *StoreService {
	return &StoreService{
		storeStorage:  st,
		reviewStorage: rs,
		heartStorage:  hs,
		cache:         mem.New(),
		log: l.WithFields(map[string]interface{}{
			"from": "store-service",
		}),
	}
}

// WithNotifications makes the service push mutation events to the channel.
// The channel is never closed by the service and a full channel drops the
// event.
func (s *StoreService) WithNotifications(ch chan<- Notification) *StoreService {
	s.notifications = ch
	return s
}

// CreateStore slugs the name and inserts the store. A slug collision is
// retried with a numbered suffix until the unique index accepts it.
func (s *StoreService) CreateStore(ctx context.Context, store domain.Store) (domain.Store, error) {
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	store.CreatedAt = time.Now()
	base := slug.Make(store.Name)
	store.Slug = base
	for i := 1; ; i++ {
		err := s.storeStorage.CreateStore(ctx, store)
		if err == nil {
			break
		}
		if !errors.Is(err, storage.ErrSlugTaken) {
			return domain.Store{}, fmt.Errorf("create store: %w", err)
		}
		if i > maxSlugRetries {
			return domain.Store{}, fmt.Errorf("create store: %w", err)
		}
		store.Slug = base + "-" + strconv.Itoa(i)
	}
	s.refreshCache(ctx)
	s.notify(Notification{
		Event:     EventNewStore,
		StoreName: store.Name,
		Text:      store.Name + " just joined the directory",
	})
	return store, nil
}

// UpdateStore applies edits after checking the editor is the author. The
// slug follows the name, with the same collision retry as creation.
func (s *StoreService) UpdateStore(ctx context.Context, store domain.Store, editorID uuid.UUID) (domain.Store, error) {
	current, err := s.storeStorage.GetStore(ctx, store.ID)
	if err != nil {
		return domain.Store{}, err
	}
	if current.AuthorID != editorID {
		return domain.Store{}, ErrNotOwner
	}
	store.AuthorID = current.AuthorID
	store.CreatedAt = current.CreatedAt
	base := slug.Make(store.Name)
	store.Slug = base
	if base == slugBase(current.Slug) {
		store.Slug = current.Slug
	}
	for i := 1; ; i++ {
		err := s.storeStorage.UpdateStore(ctx, store)
		if err == nil {
			break
		}
		if !errors.Is(err, storage.ErrSlugTaken) {
			return domain.Store{}, fmt.Errorf("update store: %w", err)
		}
		if i > maxSlugRetries {
			return domain.Store{}, fmt.Errorf("update store: %w", err)
		}
		store.Slug = base + "-" + strconv.Itoa(i)
	}
	s.refreshCache(ctx)
	return store, nil
}

func slugBase(s string) string {
	for i := len(s) - 1; i > 0; i-- {
		if s[i] == '-' {
			if _, err := strconv.Atoi(s[i+1:]); err == nil {
				return s[:i]
			}
			break
		}
		if s[i] < '0' || s[i] > '9' {
			break
		}
	}
	return s
}

func (s *StoreService) GetStore(ctx context.Context, id uuid.UUID) (domain.Store, error) {
	return s.storeStorage.GetStore(ctx, id)
}

func (s *StoreService) GetStoreBySlug(ctx context.Context, storeSlug string) (domain.Store, error) {
	return s.storeStorage.GetStoreBySlug(ctx, storeSlug)
}

// ListPage returns one page of the directory, newest first. A page past the
// end is clamped to the last page so the caller can redirect.
func (s *StoreService) ListPage(ctx context.Context, page int) (domain.StorePage, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.storeStorage.CountStores(ctx)
	if err != nil {
		return domain.StorePage{}, err
	}
	pages := int((total + pageSize - 1) / pageSize)
	if pages < 1 {
		pages = 1
	}
	if page > pages {
		page = pages
	}
	stores, err := s.storeStorage.ListStores(ctx, pageSize, int64(page-1)*pageSize)
	if err != nil {
		return domain.StorePage{}, err
	}
	return domain.StorePage{
		Stores:   stores,
		Page:     page,
		Pages:    pages,
		Total:    total,
		PageSize: pageSize,
	}, nil
}

func (s *StoreService) Search(ctx context.Context, query string) ([]domain.Store, error) {
	return s.storeStorage.SearchStores(ctx, query, searchLimit)
}

// Near returns stores within 10 km of the point, closest first. The storage
// prefilters with a bounding box, the exact cut is haversine.
func (s *StoreService) Near(ctx context.Context, lng, lat float64) ([]domain.Store, error) {
	minLng, maxLng, minLat, maxLat := geo.BoundingBox(lng, lat, nearRadiusM)
	candidates, err := s.storeStorage.StoresWithin(ctx, storage.Bounds{
		MinLng: minLng,
		MaxLng: maxLng,
		MinLat: minLat,
		MaxLat: maxLat,
	})
	if err != nil {
		return nil, err
	}
	type withDistance struct {
		store domain.Store
		m     float64
	}
	near := make([]withDistance, 0, len(candidates))
	for _, store := range candidates {
		d := geo.Distance(lng, lat, store.Location.Lng, store.Location.Lat)
		if d <= nearRadiusM {
			near = append(near, withDistance{store: store, m: d})
		}
	}
	sort.SliceStable(near, func(i, j int) bool {
		return near[i].m < near[j].m
	})
	if len(near) > nearLimit {
		near = near[:nearLimit]
	}
	stores := make([]domain.Store, 0, len(near))
	for _, n := range near {
		stores = append(stores, n.store)
	}
	return stores, nil
}

func (s *StoreService) Tags(ctx context.Context) ([]domain.TagCount, error) {
	return s.storeStorage.ListTags(ctx)
}

func (s *StoreService) StoresByTag(ctx context.Context, tag string) ([]domain.Store, error) {
	return s.storeStorage.StoresByTag(ctx, tag)
}

func (s *StoreService) TopStores(ctx context.Context) ([]domain.Store, error) {
	return s.storeStorage.TopStores(ctx, topMinReviews, topLimit)
}

func (s *StoreService) AddReview(ctx context.Context, review domain.Review) (domain.Review, error) {
	store, err := s.storeStorage.GetStore(ctx, review.StoreID)
	if err != nil {
		return domain.Review{}, err
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = time.Now()
	if err := s.reviewStorage.AddReview(ctx, review); err != nil {
		return domain.Review{}, err
	}
	s.notify(Notification{
		Event:     EventNewReview,
		StoreName: store.Name,
		Text:      review.AuthorName + " rated " + store.Name + " " + strconv.Itoa(review.Rating) + "/5",
	})
	return review, nil
}

func (s *StoreService) StoreReviews(ctx context.Context, storeID uuid.UUID) ([]domain.Review, error) {
	return s.reviewStorage.StoreReviews(ctx, storeID)
}

// ToggleHeart flips the user's heart on the store and reports the new
// state along with the user's heart count.
func (s *StoreService) ToggleHeart(ctx context.Context, userID, storeID uuid.UUID) (hearted bool, count int, err error) {
	ids, err := s.heartStorage.HeartedStoreIDs(ctx, userID)
	if err != nil {
		return false, 0, err
	}
	hearts := mapset.NewSet(ids...)
	if hearts.Contains(storeID) {
		if err := s.heartStorage.RemoveHeart(ctx, userID, storeID); err != nil {
			return false, 0, err
		}
		hearts.Remove(storeID)
		return false, hearts.Cardinality(), nil
	}
	if err := s.heartStorage.AddHeart(ctx, userID, storeID); err != nil {
		return false, 0, err
	}
	hearts.Add(storeID)
	return true, hearts.Cardinality(), nil
}

func (s *StoreService) HeartedStoreIDs(ctx context.Context, userID uuid.UUID) (mapset.Set[uuid.UUID], error) {
	ids, err := s.heartStorage.HeartedStoreIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapset.NewSet(ids...), nil
}

func (s *StoreService) HeartedStores(ctx context.Context, userID uuid.UUID) ([]domain.Store, error) {
	return s.heartStorage.HeartedStores(ctx, userID)
}

// Suggest serves the typeahead from the in-memory cache, falling back to a
// storage search when the cache has not been warmed yet.
func (s *StoreService) Suggest(ctx context.Context, prefix string) ([]domain.Store, error) {
	if !s.cache.Valid() {
		s.refreshCache(ctx)
	}
	if s.cache.Valid() {
		return s.cache.Suggest(prefix, searchLimit), nil
	}
	return s.storeStorage.SearchStores(ctx, prefix, searchLimit)
}

func (s *StoreService) refreshCache(ctx context.Context) {
	stores, err := s.storeStorage.AllStores(ctx)
	if err != nil {
		s.log.WithError(err).Error("store cache refresh failed")
		s.cache.Invalidate()
		return
	}
	s.cache.Update(stores)
}

func (s *StoreService) notify(n Notification) {
	if s.notifications == nil {
		return
	}
	select {
	case s.notifications <- n:
	default:
		s.log.WithField("event", n.Event).Warn("notification dropped")
	}
}
