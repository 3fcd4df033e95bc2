package authmw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/lib/jwt"
	"eventhub/internal/lib/logger/handlers/slogdiscard"
	"eventhub/internal/models"
)

const secret = "test-secret"

func protected(t *testing.T) (http.Handler, *string) {
	t.Helper()

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserID(r.Context())
		require.True(t, ok)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})

	return New(slogdiscard.NewDiscardLogger(), secret)(next), &gotUserID
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	validToken, err := jwt.NewToken(&models.User{ID: "user-1", Email: "a@b.c"}, secret, time.Hour)
	require.NoError(t, err)

	expiredToken, err := jwt.NewToken(&models.User{ID: "user-1", Email: "a@b.c"}, secret, -time.Hour)
	require.NoError(t, err)

	foreignToken, err := jwt.NewToken(&models.User{ID: "user-1", Email: "a@b.c"}, "other-secret", time.Hour)
	require.NoError(t, err)

	testCases := []struct {
		name           string
		header         string
		expectedStatus int
		expectedUserID string
	}{
		{name: "valid token", header: "Bearer " + validToken, expectedStatus: http.StatusOK, expectedUserID: "user-1"},
		{name: "missing header", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", expectedStatus: http.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", expectedStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expiredToken, expectedStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + foreignToken, expectedStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer garbage", expectedStatus: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler, gotUserID := protected(t)

			req := httptest.NewRequest(http.MethodGet, "/events", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusOK {
				assert.Equal(t, tc.expectedUserID, *gotUserID)
			} else {
				assert.Contains(t, rr.Body.String(), `"status":"Error"`)
			}
		})
	}
}

func TestUserIDAbsent(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := UserID(req.Context())
	assert.False(t, ok)
}
