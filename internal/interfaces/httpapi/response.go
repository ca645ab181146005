package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/leagueops/league-office/internal/domain/bid"
	"github.com/leagueops/league-office/internal/usecase"
)

type responseEnvelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Code       string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, responseEnvelope{
		Success: true,
		Data:    data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, responseEnvelope{
		Success: false,
		Error: &errorBody{
			Code:    mapped.Code,
			Status:  mapped.HTTPStatus,
			Message: err.Error(),
		},
	})
}

// writeInternalError hides the cause behind a generic message; panics and raw
// failures never leak internals to clients.
func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, responseEnvelope{
		Success: false,
		Error: &errorBody{
			Code:    "internalError",
			Status:  http.StatusInternalServerError,
			Message: "internal server error",
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, bid.ErrActiveBidExists):
		return mappedError{HTTPStatus: http.StatusBadRequest, Code: "invalidInput"}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Code: "notFound"}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Code: "unauthorized"}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{HTTPStatus: http.StatusForbidden, Code: "forbidden"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Code: "dependencyUnavailable"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Code: "internalError"}
	}
}
