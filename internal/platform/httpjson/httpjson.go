package httpjson

import (
	"encoding/json"
	"net/http"

	"petmate/internal/platform/i18n"

	"golang.org/x/text/language"
)

// writeJSON estaba duplicado en cada módulo; con users/pets/matches ya conviene tenerlo acá.

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorBody es el formato de error que consume el cliente.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Lang resuelve el idioma del request (Accept-Language, o ?lang=).
func Lang(r *http.Request) language.Tag {
	if v := r.URL.Query().Get("lang"); v != "" {
		return i18n.Resolve(v)
	}
	return i18n.Resolve(r.Header.Get("Accept-Language"))
}

// WriteError escribe un error con mensaje ya localizado a partir de msgKey.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, msgKey string) {
	WriteJSON(w, status, ErrorBody{Error: ErrorDetail{
		Code:    code,
		Message: i18n.T(Lang(r), msgKey),
	}})
}

// WriteAuthError mapea un código de auth a su mensaje localizado.
func WriteAuthError(w http.ResponseWriter, r *http.Request, status int, code string) {
	WriteAuthErrorFields(w, r, status, code, nil)
}

// WriteAuthErrorFields es WriteAuthError con errores por campo (p.ej. auth/invalid-email).
func WriteAuthErrorFields(w http.ResponseWriter, r *http.Request, status int, code string, fields map[string]string) {
	tag := Lang(r)
	detail := ErrorDetail{
		Code:    code,
		Message: i18n.AuthMessage(tag, code),
	}
	if len(fields) > 0 {
		detail.Fields = i18n.Fields(tag, fields)
	}
	WriteJSON(w, status, ErrorBody{Error: detail})
}

// WriteValidation devuelve 400 con los errores por campo localizados.
func WriteValidation(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	tag := Lang(r)
	WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: ErrorDetail{
		Code:    "validation_failed",
		Message: i18n.T(tag, i18n.MsgValidationFail),
		Fields:  i18n.Fields(tag, fields),
	}})
}

// Decode lee el body JSON rechazando campos desconocidos.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
