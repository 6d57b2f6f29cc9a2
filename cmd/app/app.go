package app

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/api"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/config"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/db"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/logger"
)

const (
	defaultConfigPath = "./cmd/app/config.yml"
	limiterSweepEvery = time.Minute
)

// openDB is replaced in tests.
var openDB = openDatabase

func Start(configPath string) error {
	conf, err := setup(configPath)
	if err != nil {
		return err
	}

	postgresDB, err := openDB(conf)
	if err != nil {
		return err
	}

	redisClient, err := db.OpenRedis(conf.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize redis -> %w", err)
	}
	if redisClient == nil {
		zap.L().Info("redis not configured, rate limiting in memory")
	}

	s := api.NewServer(conf, postgresDB, redisClient)

	go s.Feed.Run()
	if s.MemoryLimiter != nil {
		go func() {
			ticker := time.NewTicker(limiterSweepEvery)
			defer ticker.Stop()
			for range ticker.C {
				s.MemoryLimiter.Sweep()
			}
		}()
	}

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// Migrate creates or updates the tables and seeds the game settings, then
// exits.
func Migrate(configPath string) error {
	conf, err := setup(configPath)
	if err != nil {
		return err
	}

	postgresDB, err := openDB(conf)
	if err != nil {
		return err
	}

	sqlDB, err := postgresDB.DB()
	if err != nil {
		return fmt.Errorf("postgresDB.DB -> %w", err)
	}
	defer sqlDB.Close()

	zap.L().Info("database schema is up to date")

	return nil
}

func setup(configPath string) (*config.AppConfig, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	conf, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}

	return conf, nil
}

func openDatabase(conf *config.AppConfig) (*gorm.DB, error) {
	var (
		postgresDB *gorm.DB
		err        error
	)

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	return postgresDB, nil
}
