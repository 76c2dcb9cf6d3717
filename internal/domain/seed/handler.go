package seed

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/platform/respond"
)

// RegisterRoutes monta POST /seed. Solo se llama si SEED_ENDPOINT_ENABLED=true.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/seed", seedHandler(svc))
}

type seedAccountResponse struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type seedResponse struct {
	Message  string                `json:"message"`
	Accounts []seedAccountResponse `json:"accounts"`
	Created  []string              `json:"created"`
	Skipped  []string              `json:"skipped"`
	Listings int                   `json:"listings"`
}

// seedHandler godoc
// @Summary Crear datos demo
// @Description Solo para desarrollo. Idempotente: cuentas existentes se saltean.
// @Tags dev
// @Produce json
// @Success 200 {object} seedResponse
// @Failure 500 {object} map[string]string "internal error"
// @Router /seed [post]
func seedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Run(r.Context())
		if err != nil {
			respond.Error(w, err)
			return
		}

		out := seedResponse{
			Message:  "Demo accounts created successfully",
			Accounts: make([]seedAccountResponse, 0, len(res.Accounts)),
			Created:  nonNil(res.Created),
			Skipped:  nonNil(res.Skipped),
			Listings: res.Listings,
		}
		for _, a := range res.Accounts {
			role := a.Role
			if role == "" {
				role = "user"
			}
			out.Accounts = append(out.Accounts, seedAccountResponse{Email: a.Email, Password: a.Password, Role: role})
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
