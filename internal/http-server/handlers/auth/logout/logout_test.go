package logout_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"eventhub/internal/http-server/handlers/auth/logout"
	"eventhub/internal/http-server/middleware/authmw"
	"eventhub/internal/lib/logger/handlers/slogdiscard"
)

func TestLogout(t *testing.T) {
	handler := logout.New(slogdiscard.NewDiscardLogger())

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	req = req.WithContext(authmw.ContextWithUserID(req.Context(), "user-1"))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, 200, rr.Code)
	require.JSONEq(t, `{"status":"OK"}`, rr.Body.String())
}
