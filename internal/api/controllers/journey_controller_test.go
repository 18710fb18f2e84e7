package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripiki/internal/aggregates"
	"tripiki/internal/models/response_models"
	"tripiki/internal/services"
)

// mockJourneyService returns canned values so the tests only exercise the
// binding and error mapping of the controller.
type mockJourneyService struct {
	err       error
	journeyID string
	pikmiID   string
	pikiIDs   []string
	detail    *response_models.JourneyDetailResponse

	lastUserID string
}

var _ services.JourneyServiceInterface = (*mockJourneyService)(nil)

func (m *mockJourneyService) CreateJourney(ctx context.Context, name string, start, end int64, themePath string, tags []aggregates.TagSpec, creatorID string) (string, error) {
	m.lastUserID = creatorID
	return m.journeyID, m.err
}

func (m *mockJourneyService) AddParticipant(ctx context.Context, journeyID, userID string) error {
	m.lastUserID = userID
	return m.err
}

func (m *mockJourneyService) RemoveParticipant(ctx context.Context, journeyID, userID string) error {
	m.lastUserID = userID
	return m.err
}

func (m *mockJourneyService) SetTags(ctx context.Context, journeyID string, tags []aggregates.TagSpec, actingUserID string) error {
	return m.err
}

func (m *mockJourneyService) AddPikmi(ctx context.Context, journeyID string, place aggregates.PlaceSpec, actingUserID string) (string, error) {
	return m.pikmiID, m.err
}

func (m *mockJourneyService) LikePikmi(ctx context.Context, journeyID, pikmiID, userID string) error {
	return m.err
}

func (m *mockJourneyService) UnlikePikmi(ctx context.Context, journeyID, pikmiID, userID string) error {
	return m.err
}

func (m *mockJourneyService) ScheduleDay(ctx context.Context, journeyID string, dayIndex int, places []aggregates.PlaceSpec, actingUserID string) ([]string, error) {
	return m.pikiIDs, m.err
}

func (m *mockJourneyService) GetJourney(ctx context.Context, journeyID string) (*response_models.JourneyDetailResponse, error) {
	return m.detail, m.err
}

func (m *mockJourneyService) GetListOfJourneyByUserId(ctx context.Context, page, pageSize int, userID string) ([]response_models.JourneyResponse, error) {
	return nil, m.err
}

func newControllerTestRouter(svc services.JourneyServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("trace_id", "test-trace")
		c.Set("user_id", "u1")
	})
	controller := NewJourneyController(svc)
	r.POST("/journeys/create-journey", controller.CreateJourney)
	r.POST("/journeys/add-participant", controller.AddParticipant)
	r.POST("/journeys/like-pikmi", controller.LikePikmi)
	r.POST("/journeys/schedule-day", controller.ScheduleDay)
	r.GET("/journeys/get-journey-by-id/:journeyId", controller.GetJourneyById)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateJourneyHandler(t *testing.T) {
	svc := &mockJourneyService{journeyID: "j1"}
	r := newControllerTestRouter(svc)

	w := postJSON(t, r, "/journeys/create-journey", gin.H{
		"name":       "trip",
		"start_date": 1661299200,
		"end_date":   1661558400,
		"theme_path": "theme",
		"tags":       []gin.H{{"topic": "topic1", "orientation": "like"}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "j1")
	assert.Equal(t, "u1", svc.lastUserID, "acting user comes from the auth context")
}

func TestCreateJourneyHandlerBadBody(t *testing.T) {
	r := newControllerTestRouter(&mockJourneyService{})

	w := postJSON(t, r, "/journeys/create-journey", gin.H{"name": "trip"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddParticipantHandlerErrorMapping(t *testing.T) {
	journeyID := "3f0e3f0f-4a29-4f8f-9b39-0d44dbb045f1"

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"limit exceeded", aggregates.LimitError("participants", aggregates.MaxParticipants), http.StatusUnprocessableEntity},
		{"already member", aggregates.ErrAlreadyMember, http.StatusConflict},
		{"not found", aggregates.ErrNotFound, http.StatusNotFound},
		{"conflict exhaustion", aggregates.ErrConflict, http.StatusConflict},
		{"store down", aggregates.ErrUnavailable, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newControllerTestRouter(&mockJourneyService{err: tt.err})
			w := postJSON(t, r, "/journeys/add-participant", gin.H{"journey_id": journeyID})
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestScheduleDayHandlerDayZero(t *testing.T) {
	svc := &mockJourneyService{pikiIDs: []string{"p1"}}
	r := newControllerTestRouter(svc)

	w := postJSON(t, r, "/journeys/schedule-day", gin.H{
		"journey_id": "3f0e3f0f-4a29-4f8f-9b39-0d44dbb045f1",
		"day_index":  0,
		"places": []gin.H{{
			"name": "Hyeopjae", "category": "OCEAN", "longitude": 126.2396, "latitude": 33.3940,
		}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "p1")
}

func TestScheduleDayHandlerMissingDayIndex(t *testing.T) {
	r := newControllerTestRouter(&mockJourneyService{})

	w := postJSON(t, r, "/journeys/schedule-day", gin.H{
		"journey_id": "3f0e3f0f-4a29-4f8f-9b39-0d44dbb045f1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetJourneyByIdHandler(t *testing.T) {
	svc := &mockJourneyService{detail: &response_models.JourneyDetailResponse{ID: "j1", Name: "trip"}}
	r := newControllerTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/journeys/get-journey-by-id/j1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "trip")
}
