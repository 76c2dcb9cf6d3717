package pets

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service, guard *users.Guard) {
	r.Route("/pets", func(pr chi.Router) {
		// Público
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))

		// Requieren sesión (owner o admin para mutar)
		pr.Post("/", createPetHandler(svc, guard))
		pr.Put("/{petID}", updatePetHandler(svc, guard))
		pr.Delete("/{petID}", deletePetHandler(svc, guard))
	})
}

type createPetRequest struct {
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Category    string    `json:"category"`
	Age         FlexValue `json:"age" swaggertype:"string"`
	Price       FlexValue `json:"price" swaggertype:"string"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	HealthInfo  string    `json:"healthInfo"`
	Images      []string  `json:"images"`
}

type updatePetRequest struct {
	// Punteros para merge: nil = no tocar. id/ownerId se ignoran aunque vengan en el body.
	Name        *string    `json:"name"`
	Breed       *string    `json:"breed"`
	Category    *string    `json:"category"`
	Age         *FlexValue `json:"age" swaggertype:"string"`
	Price       *FlexValue `json:"price" swaggertype:"string"`
	Location    *string    `json:"location"`
	Description *string    `json:"description"`
	HealthInfo  *string    `json:"healthInfo"`
	Images      *[]string  `json:"images"`
	Status      *string    `json:"status" enums:"active,pending,sold"`
}

// PetResponse es la forma pública del aviso; analytics la reutiliza para recentPets.
type PetResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	OwnerEmail  string    `json:"ownerEmail"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Category    string    `json:"category"`
	Age         FlexValue `json:"age" swaggertype:"string"`
	Price       FlexValue `json:"price" swaggertype:"string"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	HealthInfo  string    `json:"healthInfo"`
	Images      []string  `json:"images"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type petDetailResponse struct {
	PetResponse
	OwnerInfo *users.ProfileResponse `json:"ownerInfo"`
}

type petEnvelope struct {
	Pet PetResponse `json:"pet"`
}

type petDetailEnvelope struct {
	Pet petDetailResponse `json:"pet"`
}

type petsEnvelope struct {
	Pets []PetResponse `json:"pets"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// listPetsHandler godoc
// @Summary Listar avisos
// @Description Público. Filtros opcionales; orden por createdAt desc.
// @Tags pets
// @Produce json
// @Param category query string false "Categoría (case-insensitive, 'all' = todas)"
// @Param status query string false "active | pending | sold"
// @Param search query string false "Substring en name/breed/description"
// @Success 200 {object} petsEnvelope
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), Filter{
			Category: q.Get("category"),
			Status:   q.Get("status"),
			Search:   q.Get("search"),
		})
		if err != nil {
			respond.Error(w, err)
			return
		}

		out := make([]PetResponse, 0, len(items))
		for _, l := range items {
			out = append(out, ToPetResponse(l))
		}
		respond.JSON(w, http.StatusOK, petsEnvelope{Pets: out})
	}
}

// getPetHandler godoc
// @Summary Obtener aviso
// @Description Público. Incluye ownerInfo (null si el perfil del dueño no existe).
// @Tags pets
// @Produce json
// @Param petID path string true "ID del aviso"
// @Success 200 {object} petDetailEnvelope
// @Failure 404 {object} map[string]string "Pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Get(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			respond.Error(w, err)
			return
		}

		resp := petDetailResponse{PetResponse: ToPetResponse(d.Listing)}
		if d.Owner != nil {
			o := users.ToProfileResponse(*d.Owner)
			resp.OwnerInfo = &o
		}
		respond.JSON(w, http.StatusOK, petDetailEnvelope{Pet: resp})
	}
}

// createPetHandler godoc
// @Summary Crear aviso
// @Description El dueño sale del token; status siempre arranca en active.
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body createPetRequest true "Datos del aviso"
// @Success 201 {object} petEnvelope
// @Failure 400 {object} map[string]string "invalid json"
// @Failure 401 {object} map[string]string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service, guard *users.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := guard.ResolveIdentity(r.Context())
		if err != nil {
			respond.Error(w, err)
			return
		}
		if err := users.RequireUser(caller, "Unauthorized - please sign in to create listings"); err != nil {
			respond.Error(w, err)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Message(w, http.StatusBadRequest, "invalid json")
			return
		}

		l, err := svc.Create(r.Context(), caller, CreateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			Category:    req.Category,
			Age:         req.Age,
			Price:       req.Price,
			Location:    req.Location,
			Description: req.Description,
			HealthInfo:  req.HealthInfo,
			Images:      req.Images,
		})
		if err != nil {
			respond.Error(w, err)
			return
		}

		respond.JSON(w, http.StatusCreated, petEnvelope{Pet: ToPetResponse(l)})
	}
}

// updatePetHandler godoc
// @Summary Actualizar aviso
// @Description Merge sobre el aviso guardado. Solo dueño o admin. id y ownerId no se pueden cambiar.
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path string true "ID del aviso"
// @Param payload body updatePetRequest true "Campos a cambiar"
// @Success 200 {object} petEnvelope
// @Failure 400 {object} map[string]string "invalid json / status inválido"
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 403 {object} map[string]string "forbidden"
// @Failure 404 {object} map[string]string "Pet not found"
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service, guard *users.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := guard.ResolveIdentity(r.Context())
		if err != nil {
			respond.Error(w, err)
			return
		}
		if err := users.RequireUser(caller, ""); err != nil {
			respond.Error(w, err)
			return
		}

		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Message(w, http.StatusBadRequest, "invalid json")
			return
		}

		l, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), caller, UpdateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			Category:    req.Category,
			Age:         req.Age,
			Price:       req.Price,
			Location:    req.Location,
			Description: req.Description,
			HealthInfo:  req.HealthInfo,
			Images:      req.Images,
			Status:      req.Status,
		})
		if err != nil {
			respond.Error(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, petEnvelope{Pet: ToPetResponse(l)})
	}
}

// deletePetHandler godoc
// @Summary Borrar aviso
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path string true "ID del aviso"
// @Success 200 {object} messageResponse
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 403 {object} map[string]string "forbidden"
// @Failure 404 {object} map[string]string "Pet not found"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service, guard *users.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := guard.ResolveIdentity(r.Context())
		if err != nil {
			respond.Error(w, err)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), caller); err != nil {
			respond.Error(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, messageResponse{Message: "Pet listing deleted successfully"})
	}
}

func ToPetResponse(l Listing) PetResponse {
	images := l.Images
	if images == nil {
		images = []string{}
	}
	return PetResponse{
		ID:          l.ID,
		OwnerID:     l.OwnerID,
		OwnerEmail:  l.OwnerEmail,
		Name:        l.Name,
		Breed:       l.Breed,
		Category:    l.Category,
		Age:         l.Age,
		Price:       l.Price,
		Location:    l.Location,
		Description: l.Description,
		HealthInfo:  l.HealthInfo,
		Images:      images,
		Status:      l.Status,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
