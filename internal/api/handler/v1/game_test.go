package v1

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
)

func newGameRouter(svc GameService) *gin.Engine {
	h := NewGameHandler(svc)
	r := gin.New()
	r.GET("/game/status", h.HandleGetStatus)
	r.PUT("/admin/game/status", h.HandleUpdateStatus)

	return r
}

func TestGameHandler_HandleGetStatus(t *testing.T) {
	start := time.Date(2024, 12, 24, 18, 0, 0, 0, time.UTC)
	svc := &mockGameService{}
	svc.On("Status", mock.Anything).Return(domain.GameSetting{Status: domain.GameScheduled, StartTime: &start}, nil)

	w := performRequest(t, newGameRouter(svc), http.MethodGet, "/game/status", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"status": "SCHEDULED", "startTime": "2024-12-24T18:00:00Z"}, decodeBody(t, w))
}

func TestGameHandler_HandleUpdateStatus(t *testing.T) {
	start := time.Date(2024, 12, 24, 18, 0, 0, 0, time.UTC)

	t.Run("schedules the game", func(t *testing.T) {
		svc := &mockGameService{}
		setting := domain.GameSetting{Status: domain.GameScheduled, StartTime: &start}
		svc.On("Update", mock.Anything, mock.MatchedBy(func(s domain.GameSetting) bool {
			return s.Status == domain.GameScheduled && s.StartTime != nil && s.StartTime.Equal(start)
		})).Return(setting, nil)

		w := performRequest(t, newGameRouter(svc), http.MethodPut, "/admin/game/status",
			map[string]string{"status": "SCHEDULED", "startTime": "2024-12-24T18:00:00Z"})

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "unknown status", body: map[string]string{"status": "PAUSED"}},
		{name: "scheduled without start time", body: map[string]string{"status": "SCHEDULED"}},
		{name: "bad start time", body: map[string]string{"status": "SCHEDULED", "startTime": "tomorrow"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockGameService{}

			w := performRequest(t, newGameRouter(svc), http.MethodPut, "/admin/game/status", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}
