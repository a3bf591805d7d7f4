package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DougPeron/backend-agendamento-firebase/internal/domain"
)

const (
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidInterval    = "invalid_interval"
	codeInvalidID          = "invalid_id"
	codeCourtNotFound      = "court_not_found"
	codeCourtNameRequired  = "court_name_required"
	codeCourtExists        = "court_already_exists"
	codeBookingNotFound    = "booking_not_found"
	codeBookingCancelled   = "booking_cancelled"
	codeSlotConflict       = "slot_conflict"
	codeForbidden          = "forbidden"
	codeLeadTimeViolation  = "lead_time_violation"
	codeStoreTransient     = "store_transient"
	codeUnauthenticated    = "unauthenticated"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeServiceError maps domain sentinels to HTTP statuses and stable
// error codes. Lead-time violations are 403 like the original API.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInterval):
		writeError(w, http.StatusBadRequest, codeInvalidInterval, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrCourtNameRequired):
		writeError(w, http.StatusBadRequest, codeCourtNameRequired, err.Error())
	case errors.Is(err, domain.ErrCourtNotFound):
		writeError(w, http.StatusNotFound, codeCourtNotFound, err.Error())
	case errors.Is(err, domain.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, codeBookingNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, err.Error())
	case errors.Is(err, domain.ErrLeadTimeViolation):
		writeError(w, http.StatusForbidden, codeLeadTimeViolation, err.Error())
	case errors.Is(err, domain.ErrSlotConflict):
		writeError(w, http.StatusConflict, codeSlotConflict, err.Error())
	case errors.Is(err, domain.ErrBookingCancelled):
		writeError(w, http.StatusConflict, codeBookingCancelled, err.Error())
	case errors.Is(err, domain.ErrCourtAlreadyExists):
		writeError(w, http.StatusConflict, codeCourtExists, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, err.Error())
	case errors.Is(err, domain.ErrStoreTransient):
		writeError(w, http.StatusServiceUnavailable, codeStoreTransient, "temporarily unable to process the request")
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
