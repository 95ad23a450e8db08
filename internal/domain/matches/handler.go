package matches

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"petmate/internal/domain/feed"
	"petmate/internal/domain/pets"
	"petmate/internal/middleware"
	"petmate/internal/platform/httpjson"
	"petmate/internal/platform/i18n"
	"petmate/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, rec *Recommender) {
	r.Route("/feed", func(fr chi.Router) {
		fr.Get("/recommendations", recommendationsHandler(rec))
		fr.Post("/decisions", decisionHandler(svc))
	})

	r.Get("/matches", listMatchesHandler(svc))
}

type decisionResponse struct {
	PetID     string       `json:"pet_id"`
	Outcome   feed.Outcome `json:"outcome"`
	DecidedAt time.Time    `json:"decided_at"`
	Matched   bool         `json:"matched"`
	MatchID   string       `json:"match_id,omitempty"`
}

type petSummary struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Species pets.Species `json:"type"`
	Breed   string       `json:"breed"`
	Age     int          `json:"age"`
	Image   string       `json:"image,omitempty"`
}

type ownerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type matchResponse struct {
	ID        string        `json:"id"`
	MyPet     petSummary    `json:"myPet"`
	Pet       petSummary    `json:"pet"`
	Owner     ownerResponse `json:"owner"`
	MatchDate time.Time     `json:"matchDate"`
}

// recommendationsHandler godoc
// @Summary  Recomendaciones para el feed
// @Tags     feed
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} feed.Profile
// @Failure  401 {object} httpjson.ErrorBody
// @Router   /feed/recommendations [get]
func recommendationsHandler(rec *Recommender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpjson.WriteAuthError(w, r, http.StatusUnauthorized, i18n.CodeUnauthorized)
			return
		}

		items, err := rec.ForUser(claims.UserID).Fetch(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if items == nil {
			items = []feed.Profile{}
		}
		httpjson.WriteJSON(w, http.StatusOK, items)
	}
}

// decisionHandler godoc
// @Summary  Registrar like/dislike
// @Description Idempotente por (usuario, mascota): reenviar la misma decisión no duplica nada.
// @Tags     feed
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body DecisionInput true "decisión"
// @Success  200 {object} decisionResponse
// @Failure  400 {object} httpjson.ErrorBody
// @Failure  404 {object} httpjson.ErrorBody
// @Failure  422 {object} httpjson.ErrorBody
// @Router   /feed/decisions [post]
func decisionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpjson.WriteAuthError(w, r, http.StatusUnauthorized, i18n.CodeUnauthorized)
			return
		}

		var req DecisionInput
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, r, http.StatusBadRequest, "invalid_json", i18n.MsgGeneric)
			return
		}

		d, m, err := svc.Record(r.Context(), claims.UserID, req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		resp := decisionResponse{
			PetID:     d.PetID,
			Outcome:   d.Outcome,
			DecidedAt: d.DecidedAt,
		}
		if m != nil {
			resp.Matched = true
			resp.MatchID = m.ID
		}
		httpjson.WriteJSON(w, http.StatusOK, resp)
	}
}

// listMatchesHandler godoc
// @Summary  Mis matches
// @Tags     matches
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} matchResponse
// @Router   /matches [get]
func listMatchesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpjson.WriteAuthError(w, r, http.StatusUnauthorized, i18n.CodeUnauthorized)
			return
		}

		items, err := svc.ListMatches(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		out := make([]matchResponse, 0, len(items))
		for _, v := range items {
			out = append(out, matchResponse{
				ID:    v.ID,
				MyPet: toPetSummary(v.MyPet),
				Pet:   toPetSummary(v.OtherPet),
				Owner: ownerResponse{
					ID:      v.Owner.ID,
					Name:    v.Owner.Name,
					Contact: v.Owner.Contact,
				},
				MatchDate: v.MatchedAt,
			})
		}
		httpjson.WriteJSON(w, http.StatusOK, out)
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
	case errors.Is(err, ErrPetNotFound):
		httpjson.WriteError(w, r, http.StatusNotFound, "pet_not_found", i18n.MsgGeneric)
	case errors.Is(err, ErrOwnPet):
		httpjson.WriteError(w, r, http.StatusUnprocessableEntity, "own_pet", i18n.MsgGeneric)
	default:
		httpjson.WriteError(w, r, http.StatusInternalServerError, "internal", i18n.MsgGeneric)
	}
}

func toPetSummary(p pets.Pet) petSummary {
	return petSummary{
		ID:      p.ID,
		Name:    p.Name,
		Species: p.Species,
		Breed:   p.Breed,
		Age:     p.Age,
		Image:   p.ImageURL,
	}
}
