package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"eventhub/internal/http-server/middleware/authmw"
	"eventhub/internal/lib/api/response"
)

// New handles POST /auth/logout. Tokens are stateless, so there is
// nothing to revoke server-side; the call exists so clients have a
// best-effort endpoint to hit before clearing their credential.
func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.logout.New"

		if userID, ok := authmw.UserID(r.Context()); ok {
			log.With(slog.String("op", op)).
				Info("user signed out", slog.String("user_id", userID))
		}

		render.JSON(w, r, response.OK())
	}
}
