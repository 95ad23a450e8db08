package users

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
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc))
		ar.Post("/login", loginHandler(svc))
		ar.Post("/password-reset", resetPasswordHandler(svc))
		ar.Post("/password-reset/confirm", confirmResetHandler(svc))
		ar.Post("/signout", signOutHandler(svc))
	})

	r.Get("/me", meHandler(svc))
}

type userResponse struct {
	UID              string    `json:"uid"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	UserType         UserType  `json:"userType"`
	CreatedAt        time.Time `json:"createdAt"`
	ProfileCompleted bool      `json:"profileCompleted"`
}

type sessionResponse struct {
	User      userResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

// registerHandler godoc
// @Summary  Registrar usuario
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body RegisterInput true "datos de registro"
// @Success  201 {object} sessionResponse
// @Failure  400 {object} httpjson.ErrorBody
// @Failure  409 {object} httpjson.ErrorBody
// @Router   /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterInput
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, r, http.StatusBadRequest, "invalid_json", i18n.MsgGeneric)
			return
		}

		sess, err := svc.Register(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusCreated, toSessionResponse(sess))
	}
}

// loginHandler godoc
// @Summary  Iniciar sesión
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body LoginInput true "credenciales"
// @Success  200 {object} sessionResponse
// @Failure  401 {object} httpjson.ErrorBody
// @Failure  404 {object} httpjson.ErrorBody
// @Router   /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginInput
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, r, http.StatusBadRequest, "invalid_json", i18n.MsgGeneric)
			return
		}

		sess, err := svc.Login(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

func resetPasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetPasswordRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, r, http.StatusBadRequest, "invalid_json", i18n.MsgGeneric)
			return
		}

		if err := svc.ResetPassword(r.Context(), req.Email); err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusAccepted, map[string]bool{"sent": true})
	}
}

func confirmResetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConfirmResetInput
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, r, http.StatusBadRequest, "invalid_json", i18n.MsgGeneric)
			return
		}

		if err := svc.ConfirmPasswordReset(r.Context(), req); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func signOutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpjson.WriteAuthError(w, r, http.StatusUnauthorized, CodeUnauthorized)
			return
		}

		if err := svc.SignOut(r.Context(), claims); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// meHandler godoc
// @Summary  Usuario actual
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} userResponse
// @Failure  401 {object} httpjson.ErrorBody
// @Router   /me [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpjson.WriteAuthError(w, r, http.StatusUnauthorized, CodeUnauthorized)
			return
		}

		u, err := svc.Me(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// writeServiceError: códigos de auth -> mensaje localizado (con campos si los hay); validación -> 400;
// el resto -> mensaje genérico.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validate.Error
	hasFields := errors.As(err, &verr)

	if code, ok := CodeOf(err); ok {
		var fields map[string]string
		if hasFields {
			fields = verr.Fields
		}
		httpjson.WriteAuthErrorFields(w, r, statusForCode(code), code, fields)
		return
	}

	if hasFields {
		httpjson.WriteValidation(w, r, verr.Fields)
		return
	}

	switch {
	case errors.Is(err, ErrNotFound):
		httpjson.WriteAuthError(w, r, http.StatusNotFound, CodeUserNotFound)
	case errors.Is(err, ErrInvalidInput):
		httpjson.WriteError(w, r, http.StatusBadRequest, "invalid_input", i18n.MsgGeneric)
	default:
		httpjson.WriteError(w, r, http.StatusInternalServerError, "internal", i18n.MsgGeneric)
	}
}

func statusForCode(code string) int {
	switch code {
	case CodeEmailInUse:
		return http.StatusConflict
	case CodeUserNotFound:
		return http.StatusNotFound
	case CodeWrongPassword, CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		UID:              u.ID,
		Email:            u.Email,
		Name:             u.Name,
		UserType:         u.Type,
		CreatedAt:        u.CreatedAt,
		ProfileCompleted: u.ProfileCompleted,
	}
}

func toSessionResponse(s Session) sessionResponse {
	return sessionResponse{
		User:      toUserResponse(s.User),
		Token:     s.Token.Value,
		ExpiresAt: s.Token.ExpiresAt,
	}
}
