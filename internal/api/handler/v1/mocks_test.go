package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			encoded, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(encoded)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

type mockDrawService struct {
	mock.Mock
}

func (m *mockDrawService) Draw(ctx context.Context, req domain.DrawRequest) (domain.Assignment, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Assignment), args.Error(1)
}

type mockGameService struct {
	mock.Mock
}

func (m *mockGameService) Status(ctx context.Context) (domain.GameSetting, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.GameSetting), args.Error(1)
}

func (m *mockGameService) Update(ctx context.Context, setting domain.GameSetting) (domain.GameSetting, error) {
	args := m.Called(ctx, setting)
	return args.Get(0).(domain.GameSetting), args.Error(1)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(username, password string) error {
	return m.Called(username, password).Error(0)
}

type mockParticipantService struct {
	mock.Mock
}

func (m *mockParticipantService) AddParticipants(ctx context.Context, participants []domain.Participant) ([]domain.Participant, error) {
	args := m.Called(ctx, participants)
	return args.Get(0).([]domain.Participant), args.Error(1)
}

func (m *mockParticipantService) ListParticipants(ctx context.Context) ([]domain.Participant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Participant), args.Error(1)
}

func (m *mockParticipantService) UpdateParticipant(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	args := m.Called(ctx, participant)
	return args.Get(0).(domain.Participant), args.Error(1)
}

func (m *mockParticipantService) DeleteParticipant(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockParticipantService) ResetPool(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockParticipantService) SetPIN(ctx context.Context, name, phone, pin string) error {
	return m.Called(ctx, name, phone, pin).Error(0)
}

func (m *mockParticipantService) PoolStats(ctx context.Context) (domain.PoolStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.PoolStats), args.Error(1)
}

func (m *mockParticipantService) OrphanedClaims(ctx context.Context) ([]domain.Participant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Participant), args.Error(1)
}

func (m *mockParticipantService) ReleaseOrphanedClaim(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockParticipantService) ExportAssignments(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	if fn, ok := args.Get(0).(func(io.Writer) error); ok {
		return fn(w)
	}
	return args.Error(0)
}

type mockRegistrationService struct {
	mock.Mock
}

func (m *mockRegistrationService) RequestJoin(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	args := m.Called(ctx, registration)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationService) ListPending(ctx context.Context) ([]domain.Registration, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Registration), args.Error(1)
}

func (m *mockRegistrationService) UpdatePending(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	args := m.Called(ctx, registration)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationService) Approve(ctx context.Context, id uint) (domain.Participant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Participant), args.Error(1)
}

func (m *mockRegistrationService) Reject(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
