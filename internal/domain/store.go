package domain

import (
	"time"

	"github.com/google/uuid"
)

// Location is a point on the map together with its street address.
type Location struct {
	Address string
	Lng     float64
	Lat     float64
}

type Store struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	Tags        []string
	Photo       string
	Location    Location
	AuthorID    uuid.UUID
	CreatedAt   time.Time

	// AvgRating and ReviewCount are filled only by aggregating queries
	// (top stores), zero elsewhere.
	AvgRating   float64
	ReviewCount int

	// Hearted is valid only when the store was loaded for a concrete
	// viewer.
	Hearted bool
}

type Review struct {
	ID         uuid.UUID
	StoreID    uuid.UUID
	AuthorID   uuid.UUID
	AuthorName string
	Text       string
	Rating     int
	CreatedAt  time.Time
}

// TagCount is a single row of the tag aggregation.
type TagCount struct {
	Tag   string
	Count int
}

// StorePage is one page of the paginated listing.
type StorePage struct {
	Stores   []Store
	Page     int
	Pages    int
	Total    int64
	PageSize int
}
