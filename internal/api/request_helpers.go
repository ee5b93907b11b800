package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// callerFromRequest returns the authenticated caller, writing a 401 when absent.
func callerFromRequest(w http.ResponseWriter, r *http.Request, log *slog.Logger) (domain.User, bool) {
	caller, ok := shared.UserFromContext(r.Context())
	if !ok {
		log.Warn("caller not found in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return domain.User{}, false
	}
	return caller, true
}

// callerAndPathUUID combines callerFromRequest and getPathUUID, writing the
// error response when either fails.
func callerAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (domain.User, uuid.UUID, bool) {
	caller, ok := callerFromRequest(w, r, log)
	if !ok {
		return domain.User{}, uuid.Nil, false
	}

	id, err := getPathUUID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return domain.User{}, uuid.Nil, false
	}

	return caller, id, true
}
