package rsvpEvent

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"eventhub/internal/http-server/middleware/authmw"
	"eventhub/internal/lib/api/response"
	"eventhub/internal/lib/logger/sl"
	"eventhub/internal/models"
	"eventhub/internal/rsvp"
	"eventhub/internal/storage"
)

type Request struct {
	Status string `json:"status" validate:"required,oneof=going maybe not_going"`
}

type Response struct {
	response.Response
	RSVP *models.RSVP `json:"rsvp"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventRSVPer
type EventRSVPer interface {
	GetEventWithRSVPs(id string) (*models.Event, []models.RSVP, error)
	UpsertRSVP(eventID, userID, status string) (*models.RSVP, error)
}

// New handles POST /events/{id}/rsvp. The capacity gate is computed
// from the event's current RSVP list: "going" on a full event is
// rejected unless the caller already attends, while "maybe" and
// "not_going" always pass.
func New(log *slog.Logger, events EventRSVPer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.rsvpEvent.New"

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

		log = log.With(slog.String("event_id", eventID))

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		event, rsvps, err := events.GetEventWithRSVPs(eventID)
		if err != nil {
			if errors.Is(err, storage.ErrEventNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))

				return
			}

			log.Error("failed to get event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to rsvp"))

			return
		}

		full := rsvp.IsFull(event.MaxAttendees, rsvps)
		viewerStatus := rsvp.ViewerStatus(rsvps, userID)

		if !rsvp.CanRSVP(req.Status, full, viewerStatus) {
			log.Info("rsvp rejected, event is full",
				slog.String("user_id", userID),
				slog.String("status", req.Status),
			)
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event is full"))

			return
		}

		record, err := events.UpsertRSVP(eventID, userID, req.Status)
		if err != nil {
			if errors.Is(err, storage.ErrEventNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))

				return
			}

			log.Error("failed to upsert rsvp", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to rsvp"))

			return
		}

		log.Info("rsvp recorded",
			slog.String("user_id", userID),
			slog.String("status", record.Status),
		)

		render.JSON(w, r, Response{
			Response: response.OK(),
			RSVP:     record,
		})
	}
}
