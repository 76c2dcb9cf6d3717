package users

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/platform/respond"
)

// RegisterRoutes monta /auth/* y /admin/users.
// authMW se aplica solo a /auth/signup y /auth/signin (rate limit); puede ser nil.
func RegisterRoutes(r chi.Router, svc *Service, authMW func(http.Handler) http.Handler) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Group(func(lr chi.Router) {
			if authMW != nil {
				lr.Use(authMW)
			}
			lr.Post("/signup", signUpHandler(svc))
			lr.Post("/signin", signInHandler(svc))
		})
		ar.Get("/me", meHandler(svc))
	})

	r.Get("/admin/users", listUsersHandler(svc))
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role" enums:"user,admin"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileResponse es el perfil saneado (sin material de credenciales).
type ProfileResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type userEnvelope struct {
	User ProfileResponse `json:"user"`
}

type signInResponse struct {
	AccessToken string          `json:"accessToken"`
	User        ProfileResponse `json:"user"`
}

type usersEnvelope struct {
	Users []ProfileResponse `json:"users"`
}

// signUpHandler godoc
// @Summary Registrar usuario
// @Description Crea la identidad y el perfil. role es opcional (default user). Password mínimo 6 caracteres.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body signUpRequest true "Datos de registro"
// @Success 201 {object} userEnvelope
// @Failure 400 {object} map[string]string "campos faltantes / password corto / email ya registrado"
// @Router /auth/signup [post]
func signUpHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Message(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.SignUp(r.Context(), SignUpInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
			Role:     req.Role,
		})
		if err != nil {
			respond.Error(w, err)
			return
		}

		// El alta responde {id, email, name, role}.
		resp := ToProfileResponse(p)
		resp.CreatedAt = nil
		respond.JSON(w, http.StatusCreated, userEnvelope{User: resp})
	}
}

// signInHandler godoc
// @Summary Iniciar sesión
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body signInRequest true "Credenciales"
// @Success 200 {object} signInResponse
// @Failure 400 {object} map[string]string "email/password faltantes"
// @Failure 401 {object} map[string]string "credenciales inválidas"
// @Router /auth/signin [post]
func signInHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Message(w, http.StatusBadRequest, "invalid json")
			return
		}

		token, p, err := svc.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			respond.Error(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, signInResponse{AccessToken: token, User: ToProfileResponse(p)})
	}
}

// meHandler godoc
// @Summary Perfil del usuario actual
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} userEnvelope
// @Failure 401 {object} map[string]string "unauthorized"
// @Router /auth/me [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Guard().ResolveIdentity(r.Context())
		if err != nil {
			respond.Error(w, err)
			return
		}
		if err := RequireUser(p, ""); err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, userEnvelope{User: ToProfileResponse(p)})
	}
}

// listUsersHandler godoc
// @Summary Listar usuarios (admin)
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} usersEnvelope
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 403 {object} map[string]string "forbidden"
// @Router /admin/users [get]
func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := svc.Guard().ResolveIdentity(r.Context())
		if err != nil {
			respond.Error(w, err)
			return
		}

		items, err := svc.List(r.Context(), caller)
		if err != nil {
			respond.Error(w, err)
			return
		}

		out := make([]ProfileResponse, 0, len(items))
		for _, p := range items {
			out = append(out, ToProfileResponse(p))
		}
		respond.JSON(w, http.StatusOK, usersEnvelope{Users: out})
	}
}

// ToProfileResponse lo usan también pets y messages para embeber perfiles.
func ToProfileResponse(p Profile) ProfileResponse {
	out := ProfileResponse{
		ID:    p.ID,
		Email: p.Email,
		Name:  p.Name,
		Role:  p.Role,
	}
	if !p.CreatedAt.IsZero() {
		t := p.CreatedAt
		out.CreatedAt = &t
	}
	return out
}
