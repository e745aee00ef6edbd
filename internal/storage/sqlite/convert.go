package sqlite

import (
	"sort"

	"github.com/google/uuid"

	"github.com/goserg/storeserver/gen/model"
	"github.com/goserg/storeserver/internal/domain"
)

func convertStoreToDomain(row storeRow) (domain.Store, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return domain.Store{}, err
	}
	authorID, err := uuid.Parse(row.AuthorID)
	if err != nil {
		return domain.Store{}, err
	}
	tags := make([]string, 0, len(row.Tags))
	for _, tag := range row.Tags {
		tags = append(tags, tag.Tag)
	}
	sort.Strings(tags)
	return domain.Store{
		ID:          id,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		Tags:        tags,
		Photo:       row.Photo,
		Location: domain.Location{
			Address: row.Address,
			Lng:     row.Lng,
			Lat:     row.Lat,
		},
		AuthorID:  authorID,
		CreatedAt: row.CreatedAt,
	}, nil
}

func convertStoresToDomain(rows []storeRow) ([]domain.Store, error) {
	stores := make([]domain.Store, 0, len(rows))
	for _, row := range rows {
		store, err := convertStoreToDomain(row)
		if err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return stores, nil
}

func convertStoreFromDomain(store domain.Store) model.Stores {
	return model.Stores{
		ID:          store.ID.String(),
		Name:        store.Name,
		Slug:        store.Slug,
		Description: store.Description,
		Address:     store.Location.Address,
		Lng:         store.Location.Lng,
		Lat:         store.Location.Lat,
		Photo:       store.Photo,
		AuthorID:    store.AuthorID.String(),
		CreatedAt:   store.CreatedAt,
	}
}

func convertReviewFromDomain(review domain.Review) model.Reviews {
	return model.Reviews{
		ID:         review.ID.String(),
		StoreID:    review.StoreID.String(),
		AuthorID:   review.AuthorID.String(),
		AuthorName: review.AuthorName,
		Text:       review.Text,
		Rating:     int32(review.Rating),
		CreatedAt:  review.CreatedAt,
	}
}

func convertReviewsToDomain(rows []model.Reviews) ([]domain.Review, error) {
	reviews := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, err
		}
		storeID, err := uuid.Parse(row.StoreID)
		if err != nil {
			return nil, err
		}
		authorID, err := uuid.Parse(row.AuthorID)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, domain.Review{
			ID:         id,
			StoreID:    storeID,
			AuthorID:   authorID,
			AuthorName: row.AuthorName,
			Text:       row.Text,
			Rating:     int(row.Rating),
			CreatedAt:  row.CreatedAt,
		})
	}
	return reviews, nil
}
