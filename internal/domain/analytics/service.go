package analytics

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/logger"
)

// ListingSource y ProfileSource son los scans que necesita el agregador.
type ListingSource interface {
	List(ctx context.Context) ([]pets.Listing, error)
}

type ProfileSource interface {
	List(ctx context.Context) ([]users.Profile, error)
}

type Service struct {
	listings ListingSource
	profiles ProfileSource
	log      logger.Logger
	now      func() time.Time
	loc      *time.Location
}

// NewService: loc define los límites de mes calendario (nil => UTC).
func NewService(listings ListingSource, profiles ProfileSource, log logger.Logger, loc *time.Location) *Service {
	if log == nil {
		log = logger.NewDiscard()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		listings: listings,
		profiles: profiles,
		log:      log,
		now:      time.Now,
		loc:      loc,
	}
}

// Compute arma el reporte sobre un scan completo de pet:* y user:*. Solo admin.
// No hay snapshot: una mutación concurrente puede verse a medias.
func (s *Service) Compute(ctx context.Context, caller users.Profile) (Report, error) {
	if err := users.RequireUser(caller, ""); err != nil {
		return Report{}, err
	}
	if err := users.RequireRole(caller, users.RoleAdmin); err != nil {
		return Report{}, err
	}

	listings, err := s.listings.List(ctx)
	if err != nil {
		return Report{}, apperr.Internal("scan listings", err)
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return Report{}, apperr.Internal("scan users", err)
	}

	return Aggregate(listings, profiles, s.now().In(s.loc)), nil
}

// Aggregate es puro: mismo input, mismo reporte. now fija el mes actual y su zona.
func Aggregate(listings []pets.Listing, profiles []users.Profile, now time.Time) Report {
	r := Report{
		Stats: Stats{
			TotalListings: len(listings),
			TotalUsers:    len(profiles),
		},
	}

	categoryIdx := map[string]int{}
	for _, l := range listings {
		switch l.Status {
		case pets.StatusActive:
			r.Stats.ActiveListings++
		case pets.StatusSold:
			r.Stats.SoldListings++
			r.Stats.TotalRevenue += l.Price.Float64()
		case pets.StatusPending:
			r.Stats.PendingListings++
		}

		cat := l.Category
		if cat == "" {
			cat = UnknownLabel
		}
		if i, ok := categoryIdx[cat]; ok {
			r.CategoryStats[i].Count++
		} else {
			categoryIdx[cat] = len(r.CategoryStats)
			r.CategoryStats = append(r.CategoryStats, CategoryCount{Category: cat, Count: 1})
		}
	}

	r.Stats.TotalRevenue = finite(r.Stats.TotalRevenue)
	if r.Stats.SoldListings > 0 {
		r.Stats.AveragePrice = r.Stats.TotalRevenue / float64(r.Stats.SoldListings)
	}

	r.MonthlyData = monthlyBuckets(listings, now)
	r.RecentPets = recent(listings, profiles)
	r.TopCategories = topCategories(r.CategoryStats)
	return r
}

func monthlyBuckets(listings []pets.Listing, now time.Time) []MonthBucket {
	loc := now.Location()
	out := make([]MonthBucket, 0, TrailingMonths)
	for i := TrailingMonths - 1; i >= 0; i-- {
		// time.Date normaliza meses negativos (enero - 1 => diciembre del año anterior).
		start := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, loc)
		out = append(out, MonthBucket{Start: start})
	}

	for _, l := range listings {
		if l.CreatedAt.IsZero() {
			continue
		}
		c := l.CreatedAt.In(loc)
		for i := range out {
			if c.Year() != out[i].Start.Year() || c.Month() != out[i].Start.Month() {
				continue
			}
			out[i].Listings++
			if l.Status == pets.StatusSold {
				out[i].Sales++
				out[i].Revenue += l.Price.Float64()
			}
			break
		}
	}
	for i := range out {
		out[i].Revenue = finite(out[i].Revenue)
	}
	return out
}

// finite trata una suma desbordada como 0, igual que un precio no numérico.
func finite(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

func recent(listings []pets.Listing, profiles []users.Profile) []RecentListing {
	sorted := make([]pets.Listing, len(listings))
	copy(sorted, listings)
	pets.SortNewestFirst(sorted)
	if len(sorted) > RecentLimit {
		sorted = sorted[:RecentLimit]
	}

	names := make(map[string]string, len(profiles))
	for _, p := range profiles {
		names[p.ID] = p.Name
	}

	out := make([]RecentListing, 0, len(sorted))
	for _, l := range sorted {
		name := strings.TrimSpace(names[l.OwnerID])
		if name == "" {
			name = UnknownLabel
		}
		out = append(out, RecentListing{Listing: l, OwnerName: name})
	}
	return out
}

func topCategories(stats []CategoryCount) []CategoryCount {
	out := make([]CategoryCount, len(stats))
	copy(out, stats)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > TopCategoriesLimit {
		out = out[:TopCategoriesLimit]
	}
	return out
}
