package http

import (
	"log"
	"net/http"

	"github.com/DougPeron/backend-agendamento-firebase/internal/auth"
	"github.com/gorilla/mux"
)

// NewRouter wires all routes. Booking routes sit behind the bearer
// token middleware; court admin routes and health do not.
func NewRouter(bookings BookingAPI, courts CourtAPI, verifier auth.Verifier, logger *log.Logger, corsOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = NotFoundHandler()
	r.MethodNotAllowedHandler = NotFoundHandler()

	r.HandleFunc("/health", HealthHandler).Methods(http.MethodGet)

	authed := r.PathPrefix("/bookings").Subrouter()
	authed.Use(func(next http.Handler) http.Handler {
		return auth.RequireAuth(verifier, next)
	})
	authed.Handle("", HandleCreateBooking(bookings)).Methods(http.MethodPost)
	authed.Handle("/mine", HandleListMyBookings(bookings)).Methods(http.MethodGet)
	authed.Handle("/{id}", HandleUpdateBooking(bookings)).Methods(http.MethodPut)
	authed.Handle("/{id}", HandleCancelBooking(bookings)).Methods(http.MethodDelete)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Handle("/courts", HandleCreateCourt(courts)).Methods(http.MethodPost)
	admin.Handle("/courts", HandleListCourts(courts)).Methods(http.MethodGet)

	return RequestLogger(CORS(corsOrigins, r), logger)
}
