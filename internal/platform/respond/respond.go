// Package respond centraliza la escritura de respuestas JSON.
// Antes writeJSON estaba duplicado en cada módulo; con cuatro módulos ya convenía extraerlo.
package respond

import (
	"encoding/json"
	"net/http"

	"pet-marketplace/internal/platform/apperr"
)

type errorBody struct {
	Error string `json:"error"`
}

// JSON escribe v como JSON con el status indicado.
// Si v no se puede serializar responde 500 antes de escribir el header.
func JSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorBody{Error: defaultMessage(apperr.KindInternal)})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// Message responde {"error": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}

// Error traduce un error de dominio a status + mensaje.
// Los internos nunca exponen el detalle del storage.
func Error(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := StatusFor(kind)

	msg := apperr.Message(err)
	if kind == apperr.KindInternal || msg == "" {
		msg = defaultMessage(kind)
	}
	Message(w, status, msg)
}

func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		// Los clientes existentes esperan 400 para "already registered".
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func defaultMessage(kind apperr.Kind) string {
	switch kind {
	case apperr.KindBadRequest:
		return "invalid request"
	case apperr.KindUnauthorized:
		return "unauthorized"
	case apperr.KindForbidden:
		return "forbidden"
	case apperr.KindNotFound:
		return "not found"
	case apperr.KindConflict:
		return "conflict"
	default:
		return "internal error"
	}
}
