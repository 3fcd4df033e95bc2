package getAllEvents

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/http-server/handlers/event/getAllEvents/mocks"
	"eventhub/internal/http-server/middleware/authmw"
	"eventhub/internal/lib/logger/handlers/slogdiscard"
	"eventhub/internal/models"
)

func TestGetAllEventsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		userID         string
		mockSetup      func(m *mocks.EventsProvider)
		expectedStatus int
		expectedCount  int
		expectedError  string
	}{
		{
			name:   "Success",
			userID: "user-1",
			mockSetup: func(m *mocks.EventsProvider) {
				m.On("GetAllEvents", "user-1").Return([]models.Event{
					{ID: "ev-1", Title: "First", AttendeesCount: 2},
					{ID: "ev-2", Title: "Second"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:   "Empty list",
			userID: "user-1",
			mockSetup: func(m *mocks.EventsProvider) {
				m.On("GetAllEvents", "user-1").Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "Unauthenticated",
			userID:         "",
			mockSetup:      func(m *mocks.EventsProvider) {},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "authorization required",
		},
		{
			name:   "Storage failure",
			userID: "user-1",
			mockSetup: func(m *mocks.EventsProvider) {
				m.On("GetAllEvents", "user-1").Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "failed to get events",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockProvider := mocks.NewEventsProvider(t)
			tc.mockSetup(mockProvider)

			handler := New(logger, mockProvider)

			req := httptest.NewRequest(http.MethodGet, "/events", nil)
			if tc.userID != "" {
				req = req.WithContext(authmw.ContextWithUserID(req.Context(), tc.userID))
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedError != "" {
				assert.Contains(t, rr.Body.String(), tc.expectedError)
				return
			}

			var resp Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Len(t, resp.Events, tc.expectedCount)
		})
	}
}
