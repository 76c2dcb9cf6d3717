package analytics

import (
	"time"

	"pet-marketplace/internal/domain/pets"
)

// TrailingMonths es la ventana de monthlyData, incluyendo el mes actual.
const TrailingMonths = 6

const (
	RecentLimit        = 10
	TopCategoriesLimit = 5
	UnknownLabel       = "Unknown"
)

type Stats struct {
	TotalListings   int
	ActiveListings  int
	SoldListings    int
	PendingListings int
	TotalUsers      int
	TotalRevenue    float64
	AveragePrice    float64
}

// CategoryCount conserva el orden de primera aparición; topCategories desempata con ese orden.
type CategoryCount struct {
	Category string
	Count    int
}

// MonthBucket cubre un mes calendario en la zona configurada.
type MonthBucket struct {
	Start    time.Time
	Listings int
	Sales    int
	Revenue  float64
}

func (b MonthBucket) Label() string { return b.Start.Format("Jan") }

type RecentListing struct {
	pets.Listing
	OwnerName string
}

// Report es el resultado completo; se calcula en cada llamada, sin cache.
type Report struct {
	Stats         Stats
	CategoryStats []CategoryCount
	MonthlyData   []MonthBucket
	RecentPets    []RecentListing
	TopCategories []CategoryCount
}
