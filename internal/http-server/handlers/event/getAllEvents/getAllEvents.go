package getAllEvents

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"eventhub/internal/http-server/middleware/authmw"
	"eventhub/internal/lib/api/response"
	"eventhub/internal/lib/logger/sl"
	"eventhub/internal/models"
)

type Response struct {
	response.Response
	Events []models.Event `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsProvider
type EventsProvider interface {
	GetAllEvents(viewerID string) ([]models.Event, error)
}

func New(log *slog.Logger, events EventsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getAllEvents.New"

		log = log.With(slog.String("op", op))

		viewerID, ok := authmw.UserID(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authorization required"))

			return
		}

		list, err := events.GetAllEvents(viewerID)
		if err != nil {
			log.Error("failed to get events", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get events"))

			return
		}

		log.Info("events listed", slog.Int("count", len(list)))

		render.JSON(w, r, Response{
			Response: response.OK(),
			Events:   list,
		})
	}
}
