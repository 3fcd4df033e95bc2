package login

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/crypto/bcrypt"

	"eventhub/internal/lib/api/response"
	"eventhub/internal/lib/jwt"
	"eventhub/internal/lib/logger/sl"
	"eventhub/internal/models"
	"eventhub/internal/storage"
)

// Response matches the register response so a client handles both the
// same way.
type Response struct {
	response.Response
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserProvider
type UserProvider interface {
	GetUserByEmail(email string) (*models.User, error)
}

// New handles POST /auth/token. The body is form-encoded
// (username/password), OAuth2 password-grant style.
func New(log *slog.Logger, users UserProvider, secret string, tokenTTL time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.New"

		log = log.With(slog.String("op", op))

		if err := r.ParseForm(); err != nil {
			log.Error("failed to parse form", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to parse form"))

			return
		}

		email := r.PostFormValue("username")
		password := r.PostFormValue("password")

		if email == "" || password == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("username and password are required"))

			return
		}

		user, err := users.GetUserByEmail(email)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				// Same answer as a wrong password: no account probing.
				log.Info("unknown email", slog.String("email", email))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("incorrect email or password"))

				return
			}

			log.Error("failed to get user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to sign in"))

			return
		}

		if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			log.Info("wrong password", slog.String("user_id", user.ID))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("incorrect email or password"))

			return
		}

		token, err := jwt.NewToken(user, secret, tokenTTL)
		if err != nil {
			log.Error("failed to issue token", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to sign in"))

			return
		}

		log.Info("user signed in", slog.String("user_id", user.ID))

		render.JSON(w, r, Response{
			Response:    response.OK(),
			AccessToken: token,
			TokenType:   "bearer",
			User:        user,
		})
	}
}
