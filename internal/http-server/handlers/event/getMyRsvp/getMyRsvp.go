package getMyRsvp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"eventhub/internal/http-server/middleware/authmw"
	"eventhub/internal/lib/api/response"
	"eventhub/internal/lib/logger/sl"
	"eventhub/internal/models"
	"eventhub/internal/storage"
)

type Response struct {
	response.Response
	RSVP *models.RSVP `json:"rsvp"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RSVPProvider
type RSVPProvider interface {
	GetUserRSVP(eventID, userID string) (*models.RSVP, error)
}

// New handles GET /rsvps/event/{id}: the caller's own RSVP for the
// event. 404 means the caller has not responded yet.
func New(log *slog.Logger, rsvps RSVPProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getMyRsvp.New"

		log = log.With(slog.String("op", op))

		userID, ok := authmw.UserID(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authorization required"))

			return
		}

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))

			return
		}

		record, err := rsvps.GetUserRSVP(eventID, userID)
		if err != nil {
			if errors.Is(err, storage.ErrRSVPNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("rsvp not found"))

				return
			}

			log.Error("failed to get rsvp", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get rsvp"))

			return
		}

		render.JSON(w, r, Response{
			Response: response.OK(),
			RSVP:     record,
		})
	}
}
