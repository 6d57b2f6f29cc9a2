package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
)

var ErrGameClosed = errors.New("game is closed")

// GameNotStartedError is returned while a scheduled game waits for its
// start time.
type GameNotStartedError struct {
	StartTime time.Time
}

func (e *GameNotStartedError) Error() string {
	return fmt.Sprintf("game not started yet, starts at %s", e.StartTime.Format(time.RFC3339))
}

type GameRepository interface {
	Get(ctx context.Context) (domain.GameSetting, error)
	Save(ctx context.Context, setting domain.GameSetting) error
}

type GameService struct {
	repo GameRepository
	now  func() time.Time
}

func NewGameService(repo GameRepository) *GameService {
	return &GameService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *GameService) Status(ctx context.Context) (domain.GameSetting, error) {
	setting, err := s.repo.Get(ctx)
	if err != nil {
		return domain.GameSetting{}, fmt.Errorf("s.repo.Get -> %w", err)
	}

	return setting, nil
}

func (s *GameService) Update(ctx context.Context, setting domain.GameSetting) (domain.GameSetting, error) {
	if !setting.Status.Valid() {
		return domain.GameSetting{}, fmt.Errorf("invalid game status %q", setting.Status)
	}

	if err := s.repo.Save(ctx, setting); err != nil {
		return domain.GameSetting{}, fmt.Errorf("s.repo.Save -> %w", err)
	}

	return s.Status(ctx)
}

// CheckOpen returns nil when draws are currently permitted.
func (s *GameService) CheckOpen(ctx context.Context) error {
	setting, err := s.Status(ctx)
	if err != nil {
		return err
	}

	switch setting.Status {
	case domain.GameOpen:
		return nil
	case domain.GameScheduled:
		if setting.StartTime == nil {
			return ErrGameClosed
		}
		if s.now().Before(*setting.StartTime) {
			return &GameNotStartedError{StartTime: *setting.StartTime}
		}
		return nil
	default:
		return ErrGameClosed
	}
}
