package v1

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/service"
)

func newDrawRouter(svc DrawService) *gin.Engine {
	r := gin.New()
	r.POST("/draw", NewDrawHandler(svc).HandleDraw)

	return r
}

func TestDrawHandler_HandleDraw(t *testing.T) {
	validBody := map[string]string{"name": "Alice", "phone": "+33 6 12 34 56 78", "department": "IT"}
	startTime := time.Date(2024, 12, 24, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       interface{}
		assignment domain.Assignment
		err        error
		wantStatus int
		wantBody   map[string]interface{}
		noCall     bool
	}{
		{
			name:       "success",
			body:       validBody,
			assignment: domain.Assignment{RecipientID: 2, RecipientName: "Carol", RecipientDepartment: "HR"},
			wantStatus: http.StatusOK,
			wantBody: map[string]interface{}{
				"status": "SUCCESS",
				"result": map[string]interface{}{"name": "Carol", "department": "HR"},
			},
		},
		{
			name:       "already done",
			body:       validBody,
			assignment: domain.Assignment{AlreadyAssigned: true, RecipientID: 2, RecipientName: "Carol", RecipientDepartment: domain.UnknownDepartment},
			wantStatus: http.StatusOK,
			wantBody: map[string]interface{}{
				"status": "ALREADY_DONE",
				"result": map[string]interface{}{"name": "Carol", "department": "unknown"},
			},
		},
		{
			name:       "unknown identity",
			body:       validBody,
			err:        service.ErrIdentityNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]interface{}{"error": "User not found"},
		},
		{
			name:       "ambiguous identity",
			body:       validBody,
			err:        fmt.Errorf("wrapped -> %w", service.ErrIdentityAmbiguous),
			wantStatus: http.StatusConflict,
			wantBody:   map[string]interface{}{"error": "IDENTITY_AMBIGUOUS"},
		},
		{
			name:       "no candidates left",
			body:       validBody,
			err:        service.ErrNoCandidatesLeft,
			wantStatus: http.StatusConflict,
			wantBody:   map[string]interface{}{"error": "NO_CANDIDATES_LEFT"},
		},
		{
			name:       "lost the claim race",
			body:       validBody,
			err:        service.ErrConcurrencyConflict,
			wantStatus: http.StatusConflict,
			wantBody:   map[string]interface{}{"error": "CONCURRENCY_RETRY"},
		},
		{
			name:       "game closed",
			body:       validBody,
			err:        service.ErrGameClosed,
			wantStatus: http.StatusForbidden,
			wantBody:   map[string]interface{}{"error": "Game is closed."},
		},
		{
			name:       "game not started",
			body:       validBody,
			err:        &service.GameNotStartedError{StartTime: startTime},
			wantStatus: http.StatusForbidden,
			wantBody:   map[string]interface{}{"error": "Game not started yet", "startTime": "2024-12-24T18:00:00Z"},
		},
		{
			name:       "store failure",
			body:       validBody,
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]interface{}{"error": "Internal server error"},
		},
		{
			name:       "malformed json",
			body:       `{"name": "Alice",`,
			wantStatus: http.StatusBadRequest,
			noCall:     true,
		},
		{
			name:       "missing department",
			body:       map[string]string{"name": "Alice", "phone": "0601020304"},
			wantStatus: http.StatusBadRequest,
			noCall:     true,
		},
		{
			name:       "missing phone and pin",
			body:       map[string]string{"name": "Alice", "department": "IT"},
			wantStatus: http.StatusBadRequest,
			noCall:     true,
		},
		{
			name:       "invalid phone",
			body:       map[string]string{"name": "Alice", "phone": "12ab", "department": "IT"},
			wantStatus: http.StatusBadRequest,
			noCall:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockDrawService{}
			if !tt.noCall {
				svc.On("Draw", mock.Anything, domain.DrawRequest{
					Name:       "Alice",
					Phone:      "+33 6 12 34 56 78",
					Department: "IT",
				}).Return(tt.assignment, tt.err)
			}

			w := performRequest(t, newDrawRouter(svc), http.MethodPost, "/draw", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != nil {
				assert.Equal(t, tt.wantBody, decodeBody(t, w))
			}
			svc.AssertExpectations(t)
			if tt.noCall {
				svc.AssertNotCalled(t, "Draw", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestDrawHandler_HandleDraw_WithPIN(t *testing.T) {
	svc := &mockDrawService{}
	svc.On("Draw", mock.Anything, domain.DrawRequest{Name: "Alice", PIN: "1234", Department: "IT"}).
		Return(domain.Assignment{RecipientID: 3, RecipientName: "Dan", RecipientDepartment: "Sales"}, nil)

	w := performRequest(t, newDrawRouter(svc), http.MethodPost, "/draw",
		map[string]string{"name": " Alice ", "pin": "1234", "department": "IT"})

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
