package pets

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"petmate/internal/middleware"
	"petmate/internal/platform/httpjson"
	"petmate/internal/platform/i18n"
	"petmate/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type petResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"ownerId"`
	Name        string    `json:"name"`
	Species     Species   `json:"type"`
	Breed       string    `json:"breed"`
	Age         int       `json:"age"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// createPetHandler godoc
// @Summary  Crear perfil de mascota
// @Tags     pets
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body ProfileInput true "perfil"
// @Success  201 {object} petResponse
// @Failure  400 {object} httpjson.ErrorBody
// @Failure  401 {object} httpjson.ErrorBody
// @Router   /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpjson.WriteAuthError(w, r, http.StatusUnauthorized, i18n.CodeUnauthorized)
			return
		}

		var req ProfileInput
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, r, http.StatusBadRequest, "invalid_json", i18n.MsgGeneric)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary  Mis mascotas
// @Tags     pets
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} petResponse
// @Router   /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpjson.WriteAuthError(w, r, http.StatusUnauthorized, i18n.CodeUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpjson.WriteJSON(w, http.StatusOK, out)
	}
}

// getPetHandler: cualquier usuario autenticado puede ver un perfil (el feed los muestra igual).
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpjson.WriteAuthError(w, r, http.StatusUnauthorized, i18n.CodeUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary  Actualizar perfil (solo dueño)
// @Tags     pets
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    petID path string true "pet id"
// @Param    body body PatchInput true "campos a cambiar"
// @Success  200 {object} petResponse
// @Failure  403 {object} httpjson.ErrorBody
// @Failure  404 {object} httpjson.ErrorBody
// @Router   /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpjson.WriteAuthError(w, r, http.StatusUnauthorized, i18n.CodeUnauthorized)
			return
		}

		var req PatchInput
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, r, http.StatusBadRequest, "invalid_json", i18n.MsgGeneric)
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), claims.UserID, req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpjson.WriteAuthError(w, r, http.StatusUnauthorized, i18n.CodeUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), claims.UserID); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		httpjson.WriteValidation(w, r, verr.Fields)
		return
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		httpjson.WriteError(w, r, http.StatusBadRequest, "invalid_input", i18n.MsgGeneric)
	case errors.Is(err, ErrNotFound):
		httpjson.WriteError(w, r, http.StatusNotFound, "pet_not_found", i18n.MsgGeneric)
	case errors.Is(err, ErrForbidden):
		httpjson.WriteError(w, r, http.StatusForbidden, "forbidden", i18n.MsgGeneric)
	default:
		httpjson.WriteError(w, r, http.StatusInternalServerError, "internal", i18n.MsgGeneric)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		Age:         p.Age,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
