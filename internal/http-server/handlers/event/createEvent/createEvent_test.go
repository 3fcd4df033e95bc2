package createEvent

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventhub/internal/http-server/handlers/event/createEvent/mocks"
	"eventhub/internal/http-server/middleware/authmw"
	"eventhub/internal/lib/logger/handlers/slogdiscard"
	"eventhub/internal/models"
)

func TestCreateEventHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	start := time.Date(2025, 12, 25, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	testCases := []struct {
		name           string
		userID         string
		requestBody    string
		mockSetup      func(m *mocks.EventCreator)
		expectedStatus int
		expectedError  string
	}{
		{
			name:   "Success",
			userID: "user-1",
			requestBody: `{
				"title": "Holiday Party",
				"location": "Main Hall",
				"start_time": "2025-12-25T18:00:00Z",
				"end_time": "2025-12-25T20:00:00Z",
				"max_attendees": 50
			}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("CreateEvent", "user-1", mock.MatchedBy(func(in models.EventCreate) bool {
					return in.Title == "Holiday Party" &&
						in.StartTime.Equal(start) &&
						in.EndTime.Equal(end) &&
						in.MaxAttendees != nil && *in.MaxAttendees == 50
				})).Return(&models.Event{ID: "ev-1", Title: "Holiday Party", CreatedBy: "user-1"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Unauthenticated",
			userID:         "",
			requestBody:    `{}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "authorization required",
		},
		{
			name:           "Invalid JSON",
			userID:         "user-1",
			requestBody:    `not json`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "failed to decode request",
		},
		{
			name:   "Missing title",
			userID: "user-1",
			requestBody: `{
				"start_time": "2025-12-25T18:00:00Z",
				"end_time": "2025-12-25T20:00:00Z"
			}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Title",
		},
		{
			name:   "Title too short",
			userID: "user-1",
			requestBody: `{
				"title": "ab",
				"start_time": "2025-12-25T18:00:00Z",
				"end_time": "2025-12-25T20:00:00Z"
			}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Title",
		},
		{
			name:   "End before start",
			userID: "user-1",
			requestBody: `{
				"title": "Holiday Party",
				"start_time": "2025-12-25T18:00:00Z",
				"end_time": "2025-12-25T17:00:00Z"
			}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "EndTime",
		},
		{
			name:   "Zero capacity rejected",
			userID: "user-1",
			requestBody: `{
				"title": "Holiday Party",
				"start_time": "2025-12-25T18:00:00Z",
				"end_time": "2025-12-25T20:00:00Z",
				"max_attendees": 0
			}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "MaxAttendees",
		},
		{
			name:   "Storage failure",
			userID: "user-1",
			requestBody: `{
				"title": "Holiday Party",
				"start_time": "2025-12-25T18:00:00Z",
				"end_time": "2025-12-25T20:00:00Z"
			}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("CreateEvent", "user-1", mock.Anything).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "failed to create event",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockCreator := mocks.NewEventCreator(t)
			tc.mockSetup(mockCreator)

			handler := New(logger, mockCreator)

			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(tc.requestBody))
			if tc.userID != "" {
				req = req.WithContext(authmw.ContextWithUserID(req.Context(), tc.userID))
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedError != "" {
				assert.Contains(t, rr.Body.String(), tc.expectedError)
			}
		})
	}
}

// Round trip of input fields through create: the response event echoes
// what was submitted, with server-assigned id and creator.
func TestCreateEventEchoesInput(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 12, 25, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	capacity := 50

	mockCreator := mocks.NewEventCreator(t)
	mockCreator.On("CreateEvent", "user-1", mock.Anything).
		Return(func(userID string, in models.EventCreate) *models.Event {
			isPublic := true
			if in.IsPublic != nil {
				isPublic = *in.IsPublic
			}
			return &models.Event{
				ID:           "ev-1",
				Title:        in.Title,
				Description:  in.Description,
				Location:     in.Location,
				StartTime:    in.StartTime,
				EndTime:      in.EndTime,
				IsPublic:     isPublic,
				MaxAttendees: in.MaxAttendees,
				CreatedBy:    userID,
			}
		}, nil)

	handler := New(slogdiscard.NewDiscardLogger(), mockCreator)

	body := `{
		"title": "Holiday Party",
		"description": "Yearly gathering",
		"location": "Main Hall",
		"start_time": "2025-12-25T18:00:00Z",
		"end_time": "2025-12-25T20:00:00Z",
		"max_attendees": 50
	}`

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(body))
	req = req.WithContext(authmw.ContextWithUserID(req.Context(), "user-1"))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Event)

	assert.Equal(t, "ev-1", resp.Event.ID)
	assert.Equal(t, "Holiday Party", resp.Event.Title)
	assert.Equal(t, "Yearly gathering", resp.Event.Description)
	assert.Equal(t, "Main Hall", resp.Event.Location)
	assert.True(t, resp.Event.StartTime.Equal(start))
	assert.True(t, resp.Event.EndTime.Equal(end))
	assert.True(t, resp.Event.IsPublic)
	require.NotNil(t, resp.Event.MaxAttendees)
	assert.Equal(t, capacity, *resp.Event.MaxAttendees)
	assert.Equal(t, "user-1", resp.Event.CreatedBy)
}
