package request

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
)

func TestValidPhone(t *testing.T) {
	valid := []string{
		"0601020304",
		"+33 6 12 34 56 78",
		"(555) 123-4567",
		"06.01.02.03.04",
		"123456",
		"+123456789012345",
	}
	for _, phone := range valid {
		assert.NoError(t, validPhone(phone), phone)
	}

	invalid := []string{
		"12345",
		"+1234567890123456",
		"06 01 02 03 0a",
		"phone",
		"++33612345678",
		"--",
	}
	for _, phone := range invalid {
		assert.ErrorIs(t, validPhone(phone), errInvalidPhone, phone)
	}
}

func TestDrawRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     DrawRequest
		wantErr bool
	}{
		{name: "phone", req: DrawRequest{Name: "Alice", Phone: "0601020304", Department: "IT"}},
		{name: "pin only", req: DrawRequest{Name: "Alice", PIN: "1234", Department: "IT"}},
		{name: "missing name", req: DrawRequest{Phone: "0601020304", Department: "IT"}, wantErr: true},
		{name: "blank name", req: DrawRequest{Name: "   ", Phone: "0601020304", Department: "IT"}, wantErr: true},
		{name: "missing department", req: DrawRequest{Name: "Alice", Phone: "0601020304"}, wantErr: true},
		{name: "missing phone and pin", req: DrawRequest{Name: "Alice", Department: "IT"}, wantErr: true},
		{name: "short pin", req: DrawRequest{Name: "Alice", PIN: "123", Department: "IT"}, wantErr: true},
		{name: "bad phone", req: DrawRequest{Name: "Alice", Phone: "abc", Department: "IT"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("trims fields", func(t *testing.T) {
		req := DrawRequest{Name: "  Alice ", Phone: " 0601020304 ", Department: " IT "}
		require.NoError(t, req.Validate())

		assert.Equal(t, DrawRequest{Name: "Alice", Phone: "0601020304", Department: "IT"}, req)
	})
}

func TestAddParticipantsRequest_Validate(t *testing.T) {
	ok := AddParticipantsRequest{Players: []ParticipantInput{
		{Name: "Alice", Phone: "0601020304"},
		{Name: "Bob", Phone: "0602030405", Department: "HR", Email: "bob@example.com"},
	}}
	assert.NoError(t, ok.Validate())

	empty := AddParticipantsRequest{}
	assert.Error(t, empty.Validate())

	badSecond := AddParticipantsRequest{Players: []ParticipantInput{
		{Name: "Alice", Phone: "0601020304"},
		{Name: "Bob"},
	}}
	err := badSecond.Validate()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "players[1]"))

	tooMany := AddParticipantsRequest{Players: make([]ParticipantInput, maxPlayersPerImport+1)}
	assert.Error(t, tooMany.Validate())
}

func TestGameStatusRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     GameStatusRequest
		wantErr bool
	}{
		{name: "open", req: GameStatusRequest{Status: "OPEN"}},
		{name: "closed", req: GameStatusRequest{Status: "CLOSED"}},
		{name: "scheduled", req: GameStatusRequest{Status: "SCHEDULED", StartTime: "2024-12-24T18:00:00+01:00"}},
		{name: "lowercase status", req: GameStatusRequest{Status: "open"}, wantErr: true},
		{name: "scheduled without start", req: GameStatusRequest{Status: "SCHEDULED"}, wantErr: true},
		{name: "unparseable start", req: GameStatusRequest{Status: "SCHEDULED", StartTime: "24/12/2024"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("setting", func(t *testing.T) {
		req := GameStatusRequest{Status: "SCHEDULED", StartTime: "2024-12-24T18:00:00+01:00"}

		setting := req.Setting()

		assert.Equal(t, domain.GameScheduled, setting.Status)
		require.NotNil(t, setting.StartTime)
		assert.True(t, setting.StartTime.Equal(time.Date(2024, 12, 24, 17, 0, 0, 0, time.UTC)))
	})
}

func TestSetPINRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SetPINRequest{Name: "Alice", Phone: "0601020304", PIN: "0042"}).Validate())
	assert.Error(t, (&SetPINRequest{Name: "Alice", Phone: "0601020304", PIN: "42"}).Validate())
	assert.Error(t, (&SetPINRequest{Name: "Alice", PIN: "0042"}).Validate())
}

func TestParticipantRequests_RejectBlankNames(t *testing.T) {
	assert.Error(t, (&ParticipantInput{Name: "   ", Phone: "0601020304"}).Validate())
	assert.Error(t, (&JoinRequest{Name: "\t", Phone: "0601020304"}).Validate())
	assert.Error(t, (&UpdateParticipantRequest{Name: "  ", Phone: "0601020304", Department: "IT"}).Validate())
	assert.Error(t, (&UpdateParticipantRequest{Name: "Alice", Phone: "0601020304", Department: "  "}).Validate())
	assert.Error(t, (&SetPINRequest{Name: " ", Phone: "0601020304", PIN: "0042"}).Validate())

	t.Run("trims fields", func(t *testing.T) {
		in := ParticipantInput{Name: " Alice ", Phone: " 0601020304", Department: "IT ", Email: " alice@example.com "}
		require.NoError(t, in.Validate())
		assert.Equal(t, ParticipantInput{Name: "Alice", Phone: "0601020304", Department: "IT", Email: "alice@example.com"}, in)

		join := JoinRequest{Name: " Bob", Phone: "0602030405 ", Department: " HR"}
		require.NoError(t, join.Validate())
		assert.Equal(t, JoinRequest{Name: "Bob", Phone: "0602030405", Department: "HR"}, join)
	})
}
