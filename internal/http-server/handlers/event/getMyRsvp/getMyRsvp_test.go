package getMyRsvp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/http-server/handlers/event/getMyRsvp/mocks"
	"eventhub/internal/http-server/middleware/authmw"
	"eventhub/internal/lib/logger/handlers/slogdiscard"
	"eventhub/internal/models"
	"eventhub/internal/storage"
)

func request(userID, eventID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/rsvps/event/"+eventID, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", eventID)

	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userID != "" {
		ctx = authmw.ContextWithUserID(ctx, userID)
	}

	return req.WithContext(ctx)
}

func TestGetMyRsvpHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		userID         string
		mockSetup      func(m *mocks.RSVPProvider)
		expectedStatus int
		expectedError  string
	}{
		{
			name:   "Success",
			userID: "user-1",
			mockSetup: func(m *mocks.RSVPProvider) {
				m.On("GetUserRSVP", "ev-1", "user-1").
					Return(&models.RSVP{ID: "r-1", EventID: "ev-1", UserID: "user-1", Status: "going"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "No rsvp yet",
			userID: "user-1",
			mockSetup: func(m *mocks.RSVPProvider) {
				m.On("GetUserRSVP", "ev-1", "user-1").Return(nil, storage.ErrRSVPNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "rsvp not found",
		},
		{
			name:           "Unauthenticated",
			userID:         "",
			mockSetup:      func(m *mocks.RSVPProvider) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "Storage failure",
			userID: "user-1",
			mockSetup: func(m *mocks.RSVPProvider) {
				m.On("GetUserRSVP", "ev-1", "user-1").Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "failed to get rsvp",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockProvider := mocks.NewRSVPProvider(t)
			tc.mockSetup(mockProvider)

			handler := New(logger, mockProvider)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, request(tc.userID, "ev-1"))

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedError != "" {
				assert.Contains(t, rr.Body.String(), tc.expectedError)
				return
			}

			var resp Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			require.NotNil(t, resp.RSVP)
			assert.Equal(t, "going", resp.RSVP.Status)
		})
	}
}
