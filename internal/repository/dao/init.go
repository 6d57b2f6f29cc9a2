package dao

import (
	"fmt"

	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Participant{},
		&GameSetting{},
		&PendingRegistration{},
	)
	if err != nil {
		return err
	}

	// Expression indexes are not expressible with struct tags.
	createIndex := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON participants (LOWER(name), phone)",
		identityIndexName,
	)
	if err := db.Exec(createIndex).Error; err != nil {
		return err
	}

	return seedGameSettings(db)
}
