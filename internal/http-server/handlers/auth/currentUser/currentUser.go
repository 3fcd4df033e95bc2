package currentUser

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"eventhub/internal/http-server/middleware/authmw"
	"eventhub/internal/lib/api/response"
	"eventhub/internal/lib/logger/sl"
	"eventhub/internal/models"
	"eventhub/internal/storage"
)

type Response struct {
	response.Response
	User *models.User `json:"user"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserProvider
type UserProvider interface {
	GetUserByID(id string) (*models.User, error)
}

// New handles GET /auth/me behind the auth middleware. A token whose
// user no longer exists counts as an invalid credential.
func New(log *slog.Logger, users UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.currentUser.New"

		log = log.With(slog.String("op", op))

		userID, ok := authmw.UserID(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authorization required"))

			return
		}

		user, err := users.GetUserByID(userID)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				log.Info("token references missing user", slog.String("user_id", userID))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))

				return
			}

			log.Error("failed to get user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get current user"))

			return
		}

		render.JSON(w, r, Response{
			Response: response.OK(),
			User:     user,
		})
	}
}
