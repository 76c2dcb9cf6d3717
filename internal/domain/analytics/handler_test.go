package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/ports/auth"
)

type profileRepo map[string]users.Profile

func (r profileRepo) Save(_ context.Context, p users.Profile) error {
	r[p.ID] = p
	return nil
}

func (r profileRepo) GetByID(_ context.Context, id string) (users.Profile, error) {
	p, ok := r[id]
	if !ok {
		return users.Profile{}, users.ErrNotFound
	}
	return p, nil
}

func (r profileRepo) List(context.Context) ([]users.Profile, error) {
	out := make([]users.Profile, 0, len(r))
	for _, p := range r {
		out = append(out, p)
	}
	return out, nil
}

func TestCategoryStats_KeepsInsertionOrder(t *testing.T) {
	b, err := json.Marshal(categoryStats{
		{Category: "Zebras", Count: 1},
		{Category: "Ants", Count: 3},
		{Category: `Quo"te`, Count: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"Zebras":1,"Ants":3,"Quo\"te":2}`, string(b))

	b, err = json.Marshal(categoryStats(nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}

func TestAnalyticsHandler(t *testing.T) {
	profiles := profileRepo{
		"admin-1": {ID: "admin-1", Name: "Root", Role: users.RoleAdmin},
		"user-1":  {ID: "user-1", Name: "Ana", Role: users.RoleUser},
	}
	items := []pets.Listing{
		listing("1", "user-1", "Dogs", pets.StatusSold, pets.Text("1500"), now),
	}
	svc := NewService(listingSource{items: items}, profiles, nil, nil)

	r := chi.NewRouter()
	RegisterRoutes(r, svc, users.NewGuard(profiles))

	call := func(uid string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin/analytics", nil)
		if uid != "" {
			req = req.WithContext(middleware.WithClaims(req.Context(), auth.Claims{UserID: uid}))
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusUnauthorized, call("").Code)
	assert.Equal(t, http.StatusForbidden, call("user-1").Code)

	rr := call("admin-1")
	require.Equal(t, http.StatusOK, rr.Code)

	var out struct {
		Stats struct {
			SoldListings int     `json:"soldListings"`
			TotalRevenue float64 `json:"totalRevenue"`
		} `json:"stats"`
		MonthlyData []struct {
			Month string `json:"month"`
			Year  int    `json:"year"`
		} `json:"monthlyData"`
		RecentPets []struct {
			ID        string `json:"id"`
			Price     any    `json:"price"`
			OwnerName string `json:"ownerName"`
		} `json:"recentPets"`
		TopCategories []struct {
			Category string `json:"category"`
			Count    int    `json:"count"`
		} `json:"topCategories"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))

	assert.Equal(t, 1, out.Stats.SoldListings)
	assert.Equal(t, 1500.0, out.Stats.TotalRevenue)
	assert.Len(t, out.MonthlyData, TrailingMonths)
	require.Len(t, out.RecentPets, 1)
	assert.Equal(t, "Ana", out.RecentPets[0].OwnerName)
	assert.Equal(t, "1500", out.RecentPets[0].Price)
	require.Len(t, out.TopCategories, 1)
	assert.Equal(t, "Dogs", out.TopCategories[0].Category)
}

func TestAnalyticsHandler_HugePricesStillEncode(t *testing.T) {
	profiles := profileRepo{"admin-1": {ID: "admin-1", Role: users.RoleAdmin}}
	created := time.Now()
	items := []pets.Listing{
		listing("1", "admin-1", "Dogs", pets.StatusSold, pets.Text("1e308"), created),
		listing("2", "admin-1", "Dogs", pets.StatusSold, pets.Text("1e308"), created),
	}
	svc := NewService(listingSource{items: items}, profiles, nil, nil)

	r := chi.NewRouter()
	RegisterRoutes(r, svc, users.NewGuard(profiles))

	req := httptest.NewRequest(http.MethodGet, "/admin/analytics", nil)
	req = req.WithContext(middleware.WithClaims(req.Context(), auth.Claims{UserID: "admin-1"}))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotEmpty(t, rr.Body.Bytes())

	var out struct {
		Stats struct {
			SoldListings int     `json:"soldListings"`
			TotalRevenue float64 `json:"totalRevenue"`
			AveragePrice float64 `json:"averagePrice"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, 2, out.Stats.SoldListings)
	assert.Zero(t, out.Stats.TotalRevenue)
	assert.Zero(t, out.Stats.AveragePrice)
}
