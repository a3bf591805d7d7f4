package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/DougPeron/backend-agendamento-firebase/internal/app"
	"github.com/DougPeron/backend-agendamento-firebase/internal/auth"
	"github.com/DougPeron/backend-agendamento-firebase/internal/domain"
	"github.com/gorilla/mux"
)

// BookingAPI is the slice of the booking service the handlers need.
type BookingAPI interface {
	Create(ctx context.Context, callerID string, in app.CreateBookingInput) (domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error)
	Update(ctx context.Context, callerID, id string, in app.UpdateBookingInput) (domain.Booking, error)
	Cancel(ctx context.Context, callerID, id string) (domain.Booking, error)
}

// HandleCreateBooking handles POST /bookings.
func HandleCreateBooking(svc BookingAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthenticated, "missing identity")
			return
		}

		var req bookingRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.CourtID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "court_id is required")
			return
		}
		if req.StartTime.IsZero() || req.EndTime.IsZero() {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "start_time and end_time are required")
			return
		}

		booking, err := svc.Create(r.Context(), identity.Subject, app.CreateBookingInput{
			CourtID: req.CourtID,
			Start:   req.StartTime,
			End:     req.EndTime,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toBookingResponse(booking))
	}
}

// HandleListMyBookings handles GET /bookings/mine.
func HandleListMyBookings(svc BookingAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthenticated, "missing identity")
			return
		}

		bookings, err := svc.ListByOwner(r.Context(), identity.Subject)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := make([]bookingResponse, 0, len(bookings))
		for _, b := range bookings {
			resp = append(resp, toBookingResponse(b))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleUpdateBooking handles PUT /bookings/{id}.
func HandleUpdateBooking(svc BookingAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthenticated, "missing identity")
			return
		}
		id := mux.Vars(r)["id"]

		var req updateBookingRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.StartTime.IsZero() || req.EndTime.IsZero() {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "start_time and end_time are required")
			return
		}

		booking, err := svc.Update(r.Context(), identity.Subject, id, app.UpdateBookingInput{
			Start: req.StartTime,
			End:   req.EndTime,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toBookingResponse(booking))
	}
}

// HandleCancelBooking handles DELETE /bookings/{id}.
func HandleCancelBooking(svc BookingAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthenticated, "missing identity")
			return
		}
		id := mux.Vars(r)["id"]

		booking, err := svc.Cancel(r.Context(), identity.Subject, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, cancelBookingResponse{
			Message: fmt.Sprintf("booking %s cancelled", booking.ID),
			Status:  string(booking.Status),
		})
	}
}

type bookingRequest struct {
	CourtID   string    `json:"court_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type updateBookingRequest struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type bookingResponse struct {
	ID        string    `json:"id"`
	CourtID   string    `json:"court_id"`
	OwnerID   string    `json:"owner_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type cancelBookingResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:        b.ID,
		CourtID:   b.CourtID,
		OwnerID:   b.OwnerID,
		StartTime: b.Interval.Start,
		EndTime:   b.Interval.End,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
