package analytics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/platform/apperr"
)

type listingSource struct {
	items []pets.Listing
	err   error
}

func (s listingSource) List(context.Context) ([]pets.Listing, error) { return s.items, s.err }

type profileSource struct {
	items []users.Profile
	err   error
}

func (s profileSource) List(context.Context) ([]users.Profile, error) { return s.items, s.err }

var now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func listing(id, owner, category string, status pets.Status, price pets.FlexValue, created time.Time) pets.Listing {
	return pets.Listing{ID: id, OwnerID: owner, Category: category, Status: status, Price: price, CreatedAt: created}
}

func TestAggregate_StatsAndRevenue(t *testing.T) {
	items := []pets.Listing{
		listing("1", "u1", "Dogs", pets.StatusSold, pets.Number(100), now.AddDate(0, 0, -1)),
		listing("2", "u1", "Dogs", pets.StatusSold, pets.Text("200"), now.AddDate(0, -1, 0)),
		listing("3", "u2", "Cats", pets.StatusActive, pets.Number(300), now),
		listing("4", "u2", "", pets.StatusPending, pets.Text("400 ZAR"), now),
	}
	profiles := []users.Profile{{ID: "u1", Name: "Ana"}, {ID: "u2", Name: "Ben"}, {ID: "u3"}}

	rep := Aggregate(items, profiles, now)

	assert.Equal(t, Stats{
		TotalListings:   4,
		ActiveListings:  1,
		SoldListings:    2,
		PendingListings: 1,
		TotalUsers:      3,
		TotalRevenue:    300,
		AveragePrice:    150,
	}, rep.Stats)

	assert.Equal(t, []CategoryCount{
		{Category: "Dogs", Count: 2},
		{Category: "Cats", Count: 1},
		{Category: UnknownLabel, Count: 1},
	}, rep.CategoryStats)
}

func TestAggregate_MixedStatusScenario(t *testing.T) {
	rep := Aggregate([]pets.Listing{
		listing("1", "u1", "Dogs", pets.StatusActive, pets.Number(100), now),
		listing("2", "u1", "Dogs", pets.StatusActive, pets.Number(200), now),
		listing("3", "u1", "Cats", pets.StatusSold, pets.Number(300), now),
		listing("4", "u1", "Cats", pets.StatusPending, pets.Number(400), now),
	}, nil, now)

	assert.Equal(t, 300.0, rep.Stats.TotalRevenue)
	assert.Equal(t, 300.0, rep.Stats.AveragePrice)
	assert.Equal(t, 2, rep.Stats.ActiveListings)
	assert.Equal(t, 1, rep.Stats.SoldListings)
	assert.Equal(t, 1, rep.Stats.PendingListings)
}

func TestAggregate_OverflowingRevenueIsZero(t *testing.T) {
	rep := Aggregate([]pets.Listing{
		listing("1", "u1", "Dogs", pets.StatusSold, pets.Text("1e308"), now),
		listing("2", "u1", "Dogs", pets.StatusSold, pets.Text("1e308"), now),
	}, nil, now)

	assert.Zero(t, rep.Stats.TotalRevenue)
	assert.Zero(t, rep.Stats.AveragePrice)
	assert.Equal(t, 2, rep.Stats.SoldListings)
	last := rep.MonthlyData[len(rep.MonthlyData)-1]
	assert.Equal(t, 2, last.Sales)
	assert.Zero(t, last.Revenue)
}

func TestAggregate_NoSalesMeansZeroAverage(t *testing.T) {
	rep := Aggregate([]pets.Listing{
		listing("1", "u1", "Dogs", pets.StatusActive, pets.Number(100), now),
	}, nil, now)

	assert.Zero(t, rep.Stats.TotalRevenue)
	assert.Zero(t, rep.Stats.AveragePrice)
}

func TestAggregate_EmptyInput(t *testing.T) {
	rep := Aggregate(nil, nil, now)

	assert.Equal(t, Stats{}, rep.Stats)
	assert.Empty(t, rep.CategoryStats)
	assert.Empty(t, rep.RecentPets)
	assert.Empty(t, rep.TopCategories)
	require.Len(t, rep.MonthlyData, TrailingMonths)
	for _, m := range rep.MonthlyData {
		assert.Zero(t, m.Listings)
		assert.Zero(t, m.Revenue)
	}
}

func TestAggregate_MonthlyBucketsTrailingSixMonths(t *testing.T) {
	items := []pets.Listing{
		listing("cur", "u1", "Dogs", pets.StatusSold, pets.Number(100), now),
		listing("feb", "u1", "Dogs", pets.StatusActive, pets.Number(50), time.Date(2025, 2, 28, 23, 0, 0, 0, time.UTC)),
		listing("oct", "u1", "Dogs", pets.StatusSold, pets.Text("250"), time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)),
		listing("too-old", "u1", "Dogs", pets.StatusSold, pets.Number(999), time.Date(2024, 9, 30, 23, 59, 0, 0, time.UTC)),
		listing("no-date", "u1", "Dogs", pets.StatusSold, pets.Number(1), time.Time{}),
	}

	rep := Aggregate(items, nil, now)
	require.Len(t, rep.MonthlyData, 6)

	labels := make([]string, 0, 6)
	for _, m := range rep.MonthlyData {
		labels = append(labels, fmt.Sprintf("%s %d", m.Label(), m.Start.Year()))
	}
	assert.Equal(t, []string{"Oct 2024", "Nov 2024", "Dec 2024", "Jan 2025", "Feb 2025", "Mar 2025"}, labels)

	oct, feb, mar := rep.MonthlyData[0], rep.MonthlyData[4], rep.MonthlyData[5]
	assert.Equal(t, 1, oct.Listings)
	assert.Equal(t, 1, oct.Sales)
	assert.Equal(t, 250.0, oct.Revenue)
	assert.Equal(t, 1, feb.Listings)
	assert.Zero(t, feb.Sales)
	assert.Equal(t, 1, mar.Listings)
	assert.Equal(t, 100.0, mar.Revenue)

	// las ventas fuera de la ventana cuentan en stats igual
	assert.Equal(t, 100.0+250+999+1, rep.Stats.TotalRevenue)
}

func TestAggregate_MonthBoundariesUseLocation(t *testing.T) {
	loc := time.FixedZone("SAST", 2*60*60)
	// 31 de marzo 23:30 UTC ya es abril en SAST
	created := time.Date(2025, 3, 31, 23, 30, 0, 0, time.UTC)
	localNow := time.Date(2025, 4, 2, 10, 0, 0, 0, loc)

	rep := Aggregate([]pets.Listing{
		listing("1", "u1", "Dogs", pets.StatusActive, pets.Number(1), created),
	}, nil, localNow)

	last := rep.MonthlyData[len(rep.MonthlyData)-1]
	assert.Equal(t, "Apr", last.Label())
	assert.Equal(t, 1, last.Listings)
}

func TestAggregate_RecentPets(t *testing.T) {
	items := make([]pets.Listing, 0, 12)
	for i := 0; i < 12; i++ {
		owner := "u1"
		if i%2 == 1 {
			owner = "ghost"
		}
		items = append(items, listing(fmt.Sprintf("p%02d", i), owner, "Dogs", pets.StatusActive, pets.Number(1), now.Add(time.Duration(i)*time.Minute)))
	}

	rep := Aggregate(items, []users.Profile{{ID: "u1", Name: "Ana"}}, now)

	require.Len(t, rep.RecentPets, RecentLimit)
	assert.Equal(t, "p11", rep.RecentPets[0].ID)
	assert.Equal(t, "p02", rep.RecentPets[RecentLimit-1].ID)
	assert.Equal(t, UnknownLabel, rep.RecentPets[0].OwnerName)
	assert.Equal(t, "Ana", rep.RecentPets[1].OwnerName)
}

func TestAggregate_TopCategoriesStableAndCapped(t *testing.T) {
	cats := []string{"A", "B", "B", "C", "D", "E", "F", "F", "F"}
	items := make([]pets.Listing, 0, len(cats))
	for i, c := range cats {
		items = append(items, listing(fmt.Sprint(i), "u1", c, pets.StatusActive, pets.Number(1), now))
	}

	rep := Aggregate(items, nil, now)

	assert.Equal(t, []CategoryCount{
		{Category: "F", Count: 3},
		{Category: "B", Count: 2},
		{Category: "A", Count: 1},
		{Category: "C", Count: 1},
		{Category: "D", Count: 1},
	}, rep.TopCategories)
	// categoryStats no se reordena
	assert.Equal(t, "A", rep.CategoryStats[0].Category)
}

func TestCompute_Authorization(t *testing.T) {
	svc := NewService(listingSource{}, profileSource{}, nil, nil)
	ctx := context.Background()

	_, err := svc.Compute(ctx, users.Anonymous)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, err = svc.Compute(ctx, users.Profile{ID: "u1", Role: users.RoleUser})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Equal(t, "Forbidden - admin access required", apperr.Message(err))

	_, err = svc.Compute(ctx, users.Profile{ID: "a1", Role: users.RoleAdmin})
	assert.NoError(t, err)
}

func TestCompute_ScanFailureIsInternal(t *testing.T) {
	admin := users.Profile{ID: "a1", Role: users.RoleAdmin}

	svc := NewService(listingSource{err: errors.New("kv down")}, profileSource{}, nil, time.UTC)
	_, err := svc.Compute(context.Background(), admin)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	svc = NewService(listingSource{}, profileSource{err: errors.New("kv down")}, nil, time.UTC)
	_, err = svc.Compute(context.Background(), admin)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestCompute_UsesClock(t *testing.T) {
	svc := NewService(listingSource{items: []pets.Listing{
		listing("1", "u1", "Dogs", pets.StatusActive, pets.Number(1), now),
	}}, profileSource{}, nil, time.UTC)
	svc.now = func() time.Time { return now }

	rep, err := svc.Compute(context.Background(), users.Profile{ID: "a1", Role: users.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "Mar", rep.MonthlyData[5].Label())
	assert.Equal(t, 1, rep.MonthlyData[5].Listings)
}
