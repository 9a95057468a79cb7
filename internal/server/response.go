package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/at-ishikawa/wordbank/internal/dictionary"
	"github.com/at-ishikawa/wordbank/internal/review"
	"github.com/at-ishikawa/wordbank/internal/wordbank"
)

const maxRequestBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode a response", slog.Any("error", err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Any("error", err),
	)
	h.respondJSON(w, status, errorResponse{Error: message})
}

// respondDomainError maps the word bank errors to a status. Unknown errors are not exposed.
func (h *Handler) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, wordbank.ErrWordNotFound):
		h.respondError(w, r, http.StatusNotFound, "word not found", err)
	case errors.Is(err, dictionary.ErrWordNotFound):
		h.respondError(w, r, http.StatusNotFound, "word not found in the dictionary", err)
	case errors.Is(err, wordbank.ErrWordAlreadyExists):
		h.respondError(w, r, http.StatusConflict, "word already exists", err)
	case errors.Is(err, review.ErrInvalidRating):
		h.respondError(w, r, http.StatusBadRequest, "invalid rating", err)
	default:
		h.respondError(w, r, http.StatusInternalServerError, "internal server error", err)
	}
}

// decodeRequest reads a JSON body into dst and validates it. It writes the error
// response itself and returns false on failure.
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.respondError(w, r, http.StatusBadRequest, translateValidationError(err, h.translator), err)
		return false
	}
	return true
}

func translateValidationError(err error, trans ut.Translator) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, e.Translate(trans))
	}
	return strings.Join(messages, "; ")
}
