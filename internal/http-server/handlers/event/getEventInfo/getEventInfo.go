package getEventInfo

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
	"eventhub/internal/rsvp"
	"eventhub/internal/storage"
)

// Response includes the display state derived from the RSVP list so a
// client can render RSVP controls without recounting, though it is free
// to recompute from RSVPs itself.
type Response struct {
	response.Response
	Event           *models.Event `json:"event"`
	RSVPs           []models.RSVP `json:"rsvps"`
	IsFull          bool          `json:"is_full"`
	FillRatio       float64       `json:"fill_ratio"`
	CurrentUserRSVP string        `json:"current_user_rsvp,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventProvider
type EventProvider interface {
	GetEventWithRSVPs(id string) (*models.Event, []models.RSVP, error)
}

func New(log *slog.Logger, events EventProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEventInfo.New"

		log = log.With(slog.String("op", op))

		viewerID, ok := authmw.UserID(r.Context())
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

		log = log.With(slog.String("event_id", eventID))

		event, rsvps, err := events.GetEventWithRSVPs(eventID)
		if err != nil {
			if errors.Is(err, storage.ErrEventNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))

				return
			}

			log.Error("failed to get event information", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get event information"))

			return
		}

		if !event.IsPublic && event.CreatedBy != viewerID {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("not authorized to view this event"))

			return
		}

		// Derived state always comes from the fetched RSVP list, never
		// from a stored counter.
		event.AttendeesCount = rsvp.AttendingCount(rsvps)

		log.Info("event info successfully received")

		render.JSON(w, r, Response{
			Response:        response.OK(),
			Event:           event,
			RSVPs:           rsvps,
			IsFull:          rsvp.IsFull(event.MaxAttendees, rsvps),
			FillRatio:       rsvp.FillRatio(event.MaxAttendees, rsvps),
			CurrentUserRSVP: rsvp.ViewerStatus(rsvps, viewerID),
		})
	}
}
