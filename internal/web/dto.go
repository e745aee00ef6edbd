package web

import (
	"github.com/goserg/storeserver/internal/domain"
)

type storeDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Photo       string   `json:"photo,omitempty"`
	Address     string   `json:"address,omitempty"`
	Lng         float64  `json:"lng"`
	Lat         float64  `json:"lat"`
}

func convertStoreDTO(store domain.Store) storeDTO {
	return storeDTO{
		ID:          store.ID.String(),
		Name:        store.Name,
		Slug:        store.Slug,
		Description: store.Description,
		Tags:        store.Tags,
		Photo:       store.Photo,
		Address:     store.Location.Address,
		Lng:         store.Location.Lng,
		Lat:         store.Location.Lat,
	}
}

func convertStoreDTOs(stores []domain.Store) []storeDTO {
	dtos := make([]storeDTO, 0, len(stores))
	for _, store := range stores {
		dtos = append(dtos, convertStoreDTO(store))
	}
	return dtos
}

type heartDTO struct {
	Hearted bool `json:"hearted"`
	Hearts  int  `json:"hearts"`
}
