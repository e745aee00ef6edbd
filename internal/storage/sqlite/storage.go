package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	sqlite3driver "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/goserg/storeserver/gen/model"
	"github.com/goserg/storeserver/gen/table"
	"github.com/goserg/storeserver/internal/domain"
	sqlite3 "github.com/goserg/storeserver/internal/migrate"
	"github.com/goserg/storeserver/internal/storage"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.StoreStorage = (*Storage)(nil)
var _ storage.ReviewStorage = (*Storage)(nil)
var _ storage.HeartStorage = (*Storage)(nil)

func New(l *logrus.Logger, file string) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "store-storage",
	})
	db, err := sql.Open("sqlite3", "file:"+file+"?cache=shared")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = sqlite3.UpServerDB(db)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}
	log.Info("store storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

// storeRow carries a store together with its tag rows; qrm groups the
// left-joined tags under the store's primary key.
type storeRow struct {
	model.Stores

	Tags []model.StoreTags
}

func (s *Storage) CreateStore(ctx context.Context, store domain.Store) error {
	dbStore := convertStoreFromDomain(store)
	_, err := table.Stores.
		INSERT(table.Stores.AllColumns).
		MODEL(dbStore).
		ExecContext(ctx, s.db)
	if err != nil {
		return convertSlugErr(err)
	}
	return s.replaceTags(ctx, store)
}

func (s *Storage) UpdateStore(ctx context.Context, store domain.Store) error {
	res, err := table.Stores.
		UPDATE(
			table.Stores.Name,
			table.Stores.Slug,
			table.Stores.Description,
			table.Stores.Address,
			table.Stores.Lng,
			table.Stores.Lat,
			table.Stores.Photo,
		).
		SET(
			store.Name,
			store.Slug,
			store.Description,
			store.Location.Address,
			store.Location.Lng,
			store.Location.Lat,
			store.Photo,
		).
		WHERE(table.Stores.ID.EQ(sqlite.String(store.ID.String()))).
		ExecContext(ctx, s.db)
	if err != nil {
		return convertSlugErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return s.replaceTags(ctx, store)
}

func (s *Storage) replaceTags(ctx context.Context, store domain.Store) error {
	_, err := table.StoreTags.
		DELETE().
		WHERE(table.StoreTags.StoreID.EQ(sqlite.String(store.ID.String()))).
		ExecContext(ctx, s.db)
	if err != nil {
		return err
	}
	if len(store.Tags) == 0 {
		return nil
	}
	rows := make([]model.StoreTags, 0, len(store.Tags))
	for _, tag := range store.Tags {
		rows = append(rows, model.StoreTags{
			StoreID: store.ID.String(),
			Tag:     tag,
		})
	}
	_, err = table.StoreTags.
		INSERT(table.StoreTags.AllColumns).
		MODELS(rows).
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) GetStore(ctx context.Context, id uuid.UUID) (domain.Store, error) {
	return s.getStore(ctx, table.Stores.ID.EQ(sqlite.String(id.String())))
}

func (s *Storage) GetStoreBySlug(ctx context.Context, slug string) (domain.Store, error) {
	return s.getStore(ctx, table.Stores.Slug.EQ(sqlite.String(slug)))
}

func (s *Storage) getStore(ctx context.Context, cond sqlite.BoolExpression) (domain.Store, error) {
	var row storeRow
	err := table.Stores.
		SELECT(table.Stores.AllColumns, table.StoreTags.AllColumns).
		FROM(table.Stores.LEFT_JOIN(table.StoreTags, table.StoreTags.StoreID.EQ(table.Stores.ID))).
		WHERE(cond).
		QueryContext(ctx, s.db, &row)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.Store{}, sql.ErrNoRows
		}
		return domain.Store{}, err
	}
	return convertStoreToDomain(row)
}

func (s *Storage) ListStores(ctx context.Context, limit, offset int64) ([]domain.Store, error) {
	var rows []storeRow
	err := table.Stores.
		SELECT(table.Stores.AllColumns, table.StoreTags.AllColumns).
		FROM(table.Stores.LEFT_JOIN(table.StoreTags, table.StoreTags.StoreID.EQ(table.Stores.ID))).
		ORDER_BY(table.Stores.CreatedAt.DESC()).
		LIMIT(limit).
		OFFSET(offset).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, err
	}
	return convertStoresToDomain(rows)
}

func (s *Storage) CountStores(ctx context.Context) (int64, error) {
	var dest struct {
		Count int64 `alias:"count"`
	}
	err := table.Stores.
		SELECT(sqlite.COUNT(table.Stores.ID).AS("count")).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		return 0, err
	}
	return dest.Count, nil
}

func (s *Storage) AllStores(ctx context.Context) ([]domain.Store, error) {
	var rows []storeRow
	err := table.Stores.
		SELECT(table.Stores.AllColumns, table.StoreTags.AllColumns).
		FROM(table.Stores.LEFT_JOIN(table.StoreTags, table.StoreTags.StoreID.EQ(table.Stores.ID))).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, err
	}
	return convertStoresToDomain(rows)
}

// SearchStores matches the query against store names first and pads the
// result with description hits, up to limit.
func (s *Storage) SearchStores(ctx context.Context, query string, limit int64) ([]domain.Store, error) {
	pattern := sqlite.String("%" + query + "%")
	var nameRows []storeRow
	err := table.Stores.
		SELECT(table.Stores.AllColumns, table.StoreTags.AllColumns).
		FROM(table.Stores.LEFT_JOIN(table.StoreTags, table.StoreTags.StoreID.EQ(table.Stores.ID))).
		WHERE(table.Stores.Name.LIKE(pattern)).
		ORDER_BY(table.Stores.CreatedAt.DESC()).
		LIMIT(limit).
		QueryContext(ctx, s.db, &nameRows)
	if err != nil {
		return nil, err
	}
	stores, err := convertStoresToDomain(nameRows)
	if err != nil {
		return nil, err
	}
	rest := limit - int64(len(stores))
	if rest <= 0 {
		return stores, nil
	}
	var descRows []storeRow
	err = table.Stores.
		SELECT(table.Stores.AllColumns, table.StoreTags.AllColumns).
		FROM(table.Stores.LEFT_JOIN(table.StoreTags, table.StoreTags.StoreID.EQ(table.Stores.ID))).
		WHERE(table.Stores.Description.LIKE(pattern).AND(table.Stores.Name.NOT_LIKE(pattern))).
		ORDER_BY(table.Stores.CreatedAt.DESC()).
		LIMIT(rest).
		QueryContext(ctx, s.db, &descRows)
	if err != nil {
		return nil, err
	}
	descStores, err := convertStoresToDomain(descRows)
	if err != nil {
		return nil, err
	}
	return append(stores, descStores...), nil
}

func (s *Storage) StoresWithin(ctx context.Context, bounds storage.Bounds) ([]domain.Store, error) {
	var rows []storeRow
	err := table.Stores.
		SELECT(table.Stores.AllColumns, table.StoreTags.AllColumns).
		FROM(table.Stores.LEFT_JOIN(table.StoreTags, table.StoreTags.StoreID.EQ(table.Stores.ID))).
		WHERE(
			table.Stores.Lng.GT_EQ(sqlite.Float(bounds.MinLng)).
				AND(table.Stores.Lng.LT_EQ(sqlite.Float(bounds.MaxLng))).
				AND(table.Stores.Lat.GT_EQ(sqlite.Float(bounds.MinLat))).
				AND(table.Stores.Lat.LT_EQ(sqlite.Float(bounds.MaxLat))),
		).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, err
	}
	return convertStoresToDomain(rows)
}

func (s *Storage) ListTags(ctx context.Context) ([]domain.TagCount, error) {
	var dest []struct {
		Tag   string `alias:"tag"`
		Count int64  `alias:"count"`
	}
	err := table.StoreTags.
		SELECT(
			table.StoreTags.Tag.AS("tag"),
			sqlite.COUNT(table.StoreTags.StoreID).AS("count"),
		).
		GROUP_BY(table.StoreTags.Tag).
		ORDER_BY(sqlite.COUNT(table.StoreTags.StoreID).DESC()).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		return nil, err
	}
	tags := make([]domain.TagCount, 0, len(dest))
	for _, row := range dest {
		tags = append(tags, domain.TagCount{Tag: row.Tag, Count: int(row.Count)})
	}
	return tags, nil
}

func (s *Storage) StoresByTag(ctx context.Context, tag string) ([]domain.Store, error) {
	tagged := table.StoreTags.AS("tagged")
	var rows []storeRow
	err := table.Stores.
		SELECT(table.Stores.AllColumns, table.StoreTags.AllColumns).
		FROM(
			table.Stores.
				INNER_JOIN(tagged, tagged.StoreID.EQ(table.Stores.ID)).
				LEFT_JOIN(table.StoreTags, table.StoreTags.StoreID.EQ(table.Stores.ID)),
		).
		WHERE(tagged.Tag.EQ(sqlite.String(tag))).
		ORDER_BY(table.Stores.CreatedAt.DESC()).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, err
	}
	return convertStoresToDomain(rows)
}

func (s *Storage) TopStores(ctx context.Context, minReviews, limit int64) ([]domain.Store, error) {
	var dest []struct {
		model.Stores

		AvgRating   float64 `alias:"avg_rating"`
		ReviewCount int64   `alias:"review_count"`
	}
	err := table.Stores.
		SELECT(
			table.Stores.AllColumns,
			sqlite.AVG(table.Reviews.Rating).AS("avg_rating"),
			sqlite.COUNT(table.Reviews.ID).AS("review_count"),
		).
		FROM(table.Stores.INNER_JOIN(table.Reviews, table.Reviews.StoreID.EQ(table.Stores.ID))).
		GROUP_BY(table.Stores.ID).
		HAVING(sqlite.COUNT(table.Reviews.ID).GT_EQ(sqlite.Int(minReviews))).
		ORDER_BY(sqlite.AVG(table.Reviews.Rating).DESC()).
		LIMIT(limit).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		return nil, err
	}
	stores := make([]domain.Store, 0, len(dest))
	for _, row := range dest {
		store, err := convertStoreToDomain(storeRow{Stores: row.Stores})
		if err != nil {
			return nil, err
		}
		store.AvgRating = row.AvgRating
		store.ReviewCount = int(row.ReviewCount)
		stores = append(stores, store)
	}
	return stores, nil
}

func (s *Storage) AddReview(ctx context.Context, review domain.Review) error {
	_, err := table.Reviews.
		INSERT(table.Reviews.AllColumns).
		MODEL(convertReviewFromDomain(review)).
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) StoreReviews(ctx context.Context, storeID uuid.UUID) ([]domain.Review, error) {
	var rows []model.Reviews
	err := table.Reviews.
		SELECT(table.Reviews.AllColumns).
		FROM(table.Reviews).
		WHERE(table.Reviews.StoreID.EQ(sqlite.String(storeID.String()))).
		ORDER_BY(table.Reviews.CreatedAt.DESC()).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, err
	}
	return convertReviewsToDomain(rows)
}

func (s *Storage) AddHeart(ctx context.Context, userID, storeID uuid.UUID) error {
	_, err := table.Hearts.
		INSERT(table.Hearts.AllColumns).
		MODEL(model.Hearts{
			UserID:  userID.String(),
			StoreID: storeID.String(),
		}).
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) RemoveHeart(ctx context.Context, userID, storeID uuid.UUID) error {
	_, err := table.Hearts.
		DELETE().
		WHERE(
			table.Hearts.UserID.EQ(sqlite.String(userID.String())).
				AND(table.Hearts.StoreID.EQ(sqlite.String(storeID.String()))),
		).
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) HeartedStoreIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var rows []model.Hearts
	err := table.Hearts.
		SELECT(table.Hearts.AllColumns).
		FROM(table.Hearts).
		WHERE(table.Hearts.UserID.EQ(sqlite.String(userID.String()))).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.StoreID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Storage) HeartedStores(ctx context.Context, userID uuid.UUID) ([]domain.Store, error) {
	var rows []storeRow
	err := table.Stores.
		SELECT(table.Stores.AllColumns, table.StoreTags.AllColumns).
		FROM(
			table.Stores.
				INNER_JOIN(table.Hearts, table.Hearts.StoreID.EQ(table.Stores.ID)).
				LEFT_JOIN(table.StoreTags, table.StoreTags.StoreID.EQ(table.Stores.ID)),
		).
		WHERE(table.Hearts.UserID.EQ(sqlite.String(userID.String()))).
		ORDER_BY(table.Stores.CreatedAt.DESC()).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, err
	}
	return convertStoresToDomain(rows)
}

func convertSlugErr(err error) error {
	var sqliteErr sqlite3driver.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3driver.ErrConstraint {
		return storage.ErrSlugTaken
	}
	return err
}
