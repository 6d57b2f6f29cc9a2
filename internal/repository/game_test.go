package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/repository/dao"
)

type mapSettingDAO struct {
	values map[string]string
}

func (d *mapSettingDAO) FindAll(context.Context) (map[string]string, error) {
	return d.values, nil
}

func (d *mapSettingDAO) Upsert(_ context.Context, values map[string]string) error {
	for k, v := range values {
		d.values[k] = v
	}
	return nil
}

func TestGameRepository_Get(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		want   domain.GameSetting
	}{
		{
			name:   "empty store",
			values: map[string]string{},
			want:   domain.GameSetting{Status: domain.GameClosed},
		},
		{
			name:   "unknown status",
			values: map[string]string{dao.SettingStatus: "maybe"},
			want:   domain.GameSetting{Status: domain.GameClosed},
		},
		{
			name:   "unparseable start time",
			values: map[string]string{dao.SettingStatus: "SCHEDULED", dao.SettingStartTime: "soon"},
			want:   domain.GameSetting{Status: domain.GameScheduled},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewGameRepository(&mapSettingDAO{values: tt.values})

			got, err := r.Get(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGameRepository_SaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := &mapSettingDAO{values: map[string]string{}}
	r := NewGameRepository(store)
	start := time.Date(2024, 12, 24, 18, 0, 0, 0, time.FixedZone("CET", 3600))

	require.NoError(t, r.Save(ctx, domain.GameSetting{Status: domain.GameScheduled, StartTime: &start}))
	assert.Equal(t, "2024-12-24T17:00:00Z", store.values[dao.SettingStartTime])

	got, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.GameScheduled, got.Status)
	require.NotNil(t, got.StartTime)
	assert.True(t, got.StartTime.Equal(start))

	require.NoError(t, r.Save(ctx, domain.GameSetting{Status: domain.GameOpen}))
	got, err = r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.GameOpen, got.Status)
	require.NotNil(t, got.StartTime, "a status-only update keeps the start time")
	assert.True(t, got.StartTime.Equal(start))
}
