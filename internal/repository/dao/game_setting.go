package dao

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	SettingStatus    = "status"
	SettingStartTime = "start_time"
)

type GameSetting struct {
	SettingKey   string `gorm:"primaryKey"`
	SettingValue string `gorm:"not null;default:''"`
}

type GameSettingDAO struct {
	db *gorm.DB
}

func NewGameSettingDAO(db *gorm.DB) *GameSettingDAO {
	return &GameSettingDAO{
		db: db,
	}
}

func (d *GameSettingDAO) FindAll(ctx context.Context) (map[string]string, error) {
	var settings []GameSetting

	result := d.db.WithContext(ctx).Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	values := make(map[string]string, len(settings))
	for _, s := range settings {
		values[s.SettingKey] = s.SettingValue
	}

	return values, nil
}

// Upsert writes every given key in one transaction.
func (d *GameSettingDAO) Upsert(ctx context.Context, values map[string]string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "setting_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"setting_value"}),
			}).Create(&GameSetting{SettingKey: key, SettingValue: value}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func seedGameSettings(db *gorm.DB) error {
	defaults := []GameSetting{
		{SettingKey: SettingStatus, SettingValue: "CLOSED"},
		{SettingKey: SettingStartTime, SettingValue: ""},
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults).Error
}
