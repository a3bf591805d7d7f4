package http

import (
	"context"
	"net/http"
	"time"

	"github.com/DougPeron/backend-agendamento-firebase/internal/app"
	"github.com/DougPeron/backend-agendamento-firebase/internal/domain"
)

// CourtAPI is the slice of the catalog service the handlers need.
type CourtAPI interface {
	Create(ctx context.Context, in app.CreateCourtInput) (domain.Court, error)
	List(ctx context.Context) ([]domain.Court, error)
}

// HandleCreateCourt handles POST /admin/courts.
func HandleCreateCourt(svc CourtAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCourtRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		court, err := svc.Create(r.Context(), app.CreateCourtInput{Name: req.Name})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toCourtResponse(court))
	}
}

// HandleListCourts handles GET /admin/courts.
func HandleListCourts(svc CourtAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courts, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := make([]courtResponse, 0, len(courts))
		for _, c := range courts {
			resp = append(resp, toCourtResponse(c))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type createCourtRequest struct {
	Name string `json:"name"`
}

type courtResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toCourtResponse(c domain.Court) courtResponse {
	return courtResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}
