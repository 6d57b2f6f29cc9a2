package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/config"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/repository/dao"
)

func TestMigrate(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("api:\n  environment: test\n  jwt_signing_key: k\n"), 0o600))

	var opened *gorm.DB
	openDB = func(*config.AppConfig) (*gorm.DB, error) {
		db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "santa.db")), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, err
		}
		opened = db

		return db, dao.InitTables(db)
	}
	t.Cleanup(func() { openDB = openDatabase })

	require.NoError(t, Migrate(configPath))
	require.NotNil(t, opened)

	sqlDB, err := opened.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping(), "Migrate closes the connection pool")
}
