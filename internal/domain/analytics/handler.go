package analytics

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service, guard *users.Guard) {
	r.Get("/admin/analytics", analyticsHandler(svc, guard))
}

type statsResponse struct {
	TotalListings   int     `json:"totalListings"`
	ActiveListings  int     `json:"activeListings"`
	SoldListings    int     `json:"soldListings"`
	PendingListings int     `json:"pendingListings"`
	TotalUsers      int     `json:"totalUsers"`
	TotalRevenue    float64 `json:"totalRevenue"`
	AveragePrice    float64 `json:"averagePrice"`
}

type monthResponse struct {
	Month    string  `json:"month"`
	Year     int     `json:"year"`
	Listings int     `json:"listings"`
	Sales    int     `json:"sales"`
	Revenue  float64 `json:"revenue"`
}

type recentPetResponse struct {
	pets.PetResponse
	OwnerName string `json:"ownerName"`
}

type topCategoryResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// categoryStats se serializa como objeto {categoria: count} respetando el orden de aparición.
type categoryStats []CategoryCount

func (c categoryStats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cc := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(cc.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(cc.Count)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type reportResponse struct {
	Stats         statsResponse         `json:"stats"`
	CategoryStats categoryStats         `json:"categoryStats" swaggertype:"object"`
	MonthlyData   []monthResponse       `json:"monthlyData"`
	RecentPets    []recentPetResponse   `json:"recentPets"`
	TopCategories []topCategoryResponse `json:"topCategories"`
}

// analyticsHandler godoc
// @Summary Analytics del marketplace (admin)
// @Description Se calcula en cada request sobre un scan completo. monthlyData cubre los últimos 6 meses calendario (incluye el actual).
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} reportResponse
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - admin access required"
// @Router /admin/analytics [get]
func analyticsHandler(svc *Service, guard *users.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := guard.ResolveIdentity(r.Context())
		if err != nil {
			respond.Error(w, err)
			return
		}

		rep, err := svc.Compute(r.Context(), caller)
		if err != nil {
			respond.Error(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, toReportResponse(rep))
	}
}

func toReportResponse(rep Report) reportResponse {
	out := reportResponse{
		Stats: statsResponse{
			TotalListings:   rep.Stats.TotalListings,
			ActiveListings:  rep.Stats.ActiveListings,
			SoldListings:    rep.Stats.SoldListings,
			PendingListings: rep.Stats.PendingListings,
			TotalUsers:      rep.Stats.TotalUsers,
			TotalRevenue:    rep.Stats.TotalRevenue,
			AveragePrice:    rep.Stats.AveragePrice,
		},
		CategoryStats: categoryStats(rep.CategoryStats),
		MonthlyData:   make([]monthResponse, 0, len(rep.MonthlyData)),
		RecentPets:    make([]recentPetResponse, 0, len(rep.RecentPets)),
		TopCategories: make([]topCategoryResponse, 0, len(rep.TopCategories)),
	}

	for _, m := range rep.MonthlyData {
		out.MonthlyData = append(out.MonthlyData, monthResponse{
			Month:    m.Label(),
			Year:     m.Start.Year(),
			Listings: m.Listings,
			Sales:    m.Sales,
			Revenue:  m.Revenue,
		})
	}
	for _, rp := range rep.RecentPets {
		out.RecentPets = append(out.RecentPets, recentPetResponse{
			PetResponse: pets.ToPetResponse(rp.Listing),
			OwnerName:   rp.OwnerName,
		})
	}
	for _, c := range rep.TopCategories {
		out.TopCategories = append(out.TopCategories, topCategoryResponse{Category: c.Category, Count: c.Count})
	}
	return out
}
