package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/repository/dao"
)

type GameSettingDAO interface {
	FindAll(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, values map[string]string) error
}

type GameRepository struct {
	dao GameSettingDAO
}

func NewGameRepository(dao GameSettingDAO) *GameRepository {
	return &GameRepository{
		dao: dao,
	}
}

// Get falls back to CLOSED without a start time for missing or
// unparseable values.
func (r *GameRepository) Get(ctx context.Context) (domain.GameSetting, error) {
	values, err := r.dao.FindAll(ctx)
	if err != nil {
		return domain.GameSetting{}, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	setting := domain.GameSetting{Status: domain.GameStatus(values[dao.SettingStatus])}
	if !setting.Status.Valid() {
		setting.Status = domain.GameClosed
	}

	if raw := values[dao.SettingStartTime]; raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			setting.StartTime = &t
		}
	}

	return setting, nil
}

// Save keeps the stored start time when setting.StartTime is nil.
func (r *GameRepository) Save(ctx context.Context, setting domain.GameSetting) error {
	values := map[string]string{
		dao.SettingStatus: string(setting.Status),
	}
	if setting.StartTime != nil {
		values[dao.SettingStartTime] = setting.StartTime.UTC().Format(time.RFC3339)
	}

	err := r.dao.Upsert(ctx, values)
	if err != nil {
		return fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return nil
}
