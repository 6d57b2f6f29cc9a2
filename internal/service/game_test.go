package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
)

type stubGameRepository struct {
	setting domain.GameSetting
	err     error
	saved   []domain.GameSetting
}

func (r *stubGameRepository) Get(context.Context) (domain.GameSetting, error) {
	return r.setting, r.err
}

func (r *stubGameRepository) Save(_ context.Context, setting domain.GameSetting) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, setting)
	if setting.StartTime == nil {
		setting.StartTime = r.setting.StartTime
	}
	r.setting = setting

	return nil
}

func TestGameService_CheckOpen(t *testing.T) {
	now := time.Date(2024, 12, 20, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		setting domain.GameSetting
		wantErr error
	}{
		{
			name:    "open",
			setting: domain.GameSetting{Status: domain.GameOpen},
		},
		{
			name:    "closed",
			setting: domain.GameSetting{Status: domain.GameClosed},
			wantErr: ErrGameClosed,
		},
		{
			name:    "scheduled in the past",
			setting: domain.GameSetting{Status: domain.GameScheduled, StartTime: &past},
		},
		{
			name:    "scheduled exactly now",
			setting: domain.GameSetting{Status: domain.GameScheduled, StartTime: &now},
		},
		{
			name:    "scheduled without start time",
			setting: domain.GameSetting{Status: domain.GameScheduled},
			wantErr: ErrGameClosed,
		},
		{
			name:    "unknown status",
			setting: domain.GameSetting{Status: "PAUSED"},
			wantErr: ErrGameClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewGameService(&stubGameRepository{setting: tt.setting})
			s.now = func() time.Time { return now }

			err := s.CheckOpen(context.Background())
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("scheduled in the future", func(t *testing.T) {
		s := NewGameService(&stubGameRepository{setting: domain.GameSetting{Status: domain.GameScheduled, StartTime: &future}})
		s.now = func() time.Time { return now }

		err := s.CheckOpen(context.Background())

		var notStarted *GameNotStartedError
		require.ErrorAs(t, err, &notStarted)
		assert.Equal(t, future, notStarted.StartTime)
	})

	t.Run("store failure", func(t *testing.T) {
		s := NewGameService(&stubGameRepository{err: errors.New("timeout")})

		err := s.CheckOpen(context.Background())

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrGameClosed)
	})
}

func TestGameService_Update(t *testing.T) {
	t.Run("saves a valid status", func(t *testing.T) {
		repo := &stubGameRepository{}
		s := NewGameService(repo)

		got, err := s.Update(context.Background(), domain.GameSetting{Status: domain.GameOpen})
		require.NoError(t, err)

		assert.Equal(t, domain.GameOpen, got.Status)
		assert.Len(t, repo.saved, 1)
	})

	t.Run("returns the stored start time", func(t *testing.T) {
		start := time.Date(2024, 12, 24, 17, 0, 0, 0, time.UTC)
		repo := &stubGameRepository{setting: domain.GameSetting{Status: domain.GameScheduled, StartTime: &start}}
		s := NewGameService(repo)

		got, err := s.Update(context.Background(), domain.GameSetting{Status: domain.GameOpen})
		require.NoError(t, err)

		assert.Equal(t, domain.GameOpen, got.Status)
		require.NotNil(t, got.StartTime)
		assert.True(t, got.StartTime.Equal(start))
	})

	t.Run("rejects an invalid status", func(t *testing.T) {
		repo := &stubGameRepository{}
		s := NewGameService(repo)

		_, err := s.Update(context.Background(), domain.GameSetting{Status: "maybe"})

		assert.Error(t, err)
		assert.Empty(t, repo.saved)
	})
}
